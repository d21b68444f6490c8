package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskhub/labor-marketplace/internal/audit"
	"github.com/taskhub/labor-marketplace/internal/config"
	"github.com/taskhub/labor-marketplace/internal/infra/cache"
	"github.com/taskhub/labor-marketplace/internal/infra/memory"
	"github.com/taskhub/labor-marketplace/internal/models"
	"github.com/taskhub/labor-marketplace/internal/seed"
)

type envelope struct {
	Value        json.RawMessage `json:"value"`
	Success      bool            `json:"success"`
	ErrorCode    string          `json:"error_code"`
	ErrorMessage string          `json:"error_message"`
}

type api struct {
	t     *testing.T
	r     *gin.Engine
	audit *audit.Dispatcher
	store *memory.Store
}

func newAPI(t *testing.T) *api {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log, _ := test.NewNullLogger()

	store := memory.NewStore()
	users := memory.NewUserRepo(store)
	tasks := memory.NewTaskRepo(store)
	require.NoError(t, seed.Run(context.Background(), users, tasks, log))

	cfg := &config.Config{
		JWTSecret:       "routes-test-secret-0123456789abcdef",
		TokenTTL:        time.Hour,
		DisputeWindow:   48 * time.Hour,
		RateLimitLimit:  100,
		RateLimitPeriod: time.Minute,
	}
	dispatcher := audit.NewDispatcher(audit.New(store), log)
	t.Cleanup(dispatcher.Close)

	r := gin.New()
	RegisterRoutes(r, Deps{
		Config:     cfg,
		Log:        log,
		Users:      users,
		Tasks:      tasks,
		Apps:       memory.NewApplicationRepo(store),
		Bookings:   memory.NewBookingRepo(store),
		Disputes:   memory.NewDisputeRepo(store),
		Ratings:    memory.NewRatingRepo(store),
		Cache:      cache.NoopRatingCache{},
		AuditStore: store,
		Audit:      dispatcher,
	})
	return &api{t: t, r: r, audit: dispatcher, store: store}
}

func (a *api) do(method, path, token string, body any) (int, envelope) {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, req)

	var env envelope
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func (a *api) login(email string) (token, id string) {
	a.t.Helper()
	code, env := a.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": email, "password": seed.DemoPassword})
	require.Equal(a.t, http.StatusOK, code, env.ErrorCode)

	var v struct {
		Token string `json:"token"`
		User  struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	require.NoError(a.t, json.Unmarshal(env.Value, &v))
	return v.Token, v.User.ID
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Value, &v))
	return v
}

type bookingView struct {
	ID      uint   `json:"id"`
	Status  string `json:"status"`
	Version uint   `json:"version"`
}

func TestLogin(t *testing.T) {
	a := newAPI(t)

	code, env := a.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "alice@example.com", "password": "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.False(t, env.Success)
	assert.Equal(t, "invalid_credentials", env.ErrorCode)

	code, env = a.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "nobody@example.com", "password": seed.DemoPassword})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "invalid_credentials", env.ErrorCode)

	code, env = a.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "invalid_request", env.ErrorCode)

	token, _ := a.login("Dave@Example.com")
	code, env = a.do(http.MethodGet, "/api/me", token, nil)
	require.Equal(t, http.StatusOK, code)
	me := decode[struct {
		Email string   `json:"email"`
		Roles []string `json:"roles"`
	}](t, env)
	assert.Equal(t, "dave@example.com", me.Email)
	assert.ElementsMatch(t, []string{"worker", "poster"}, me.Roles)
}

func TestSecuredRoutesRequireToken(t *testing.T) {
	a := newAPI(t)

	code, env := a.do(http.MethodGet, "/api/bookings", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "missing_authorization_header", env.ErrorCode)

	worker, _ := a.login("bob@example.com")
	code, env = a.do(http.MethodGet, "/api/admin/disputes/stats", worker, nil)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "forbidden", env.ErrorCode)
}

func TestBookingDisputeAndRatingFlow(t *testing.T) {
	a := newAPI(t)
	poster, _ := a.login("alice@example.com")
	worker, workerID := a.login("bob@example.com")
	admin, _ := a.login("admin@example.com")

	start := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Hour)
	end := start.Add(2 * time.Hour)

	// create
	code, env := a.do(http.MethodPost, "/api/bookings", poster, gin.H{
		"task_id": 1, "worker_id": workerID, "agreed_rate": 40, "start_time": start, "end_time": end,
	})
	require.Equal(t, http.StatusCreated, code, env.ErrorCode)
	b := decode[bookingView](t, env)
	assert.Equal(t, "scheduled", b.Status)

	// the same slot is now taken
	code, env = a.do(http.MethodPost, "/api/bookings", poster, gin.H{
		"task_id": 1, "worker_id": workerID, "start_time": start.Add(time.Hour), "end_time": end.Add(time.Hour),
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "worker_unavailable", env.ErrorCode)

	q := fmt.Sprintf("/api/workers/%s/availability?start=%s&end=%s", workerID, start.Format(time.RFC3339), end.Format(time.RFC3339))
	code, env = a.do(http.MethodGet, q, poster, nil)
	require.Equal(t, http.StatusOK, code)
	avail := decode[struct {
		Available   bool   `json:"available"`
		Conflicting []uint `json:"conflicting_booking_ids"`
	}](t, env)
	assert.False(t, avail.Available)
	assert.Equal(t, []uint{b.ID}, avail.Conflicting)

	path := fmt.Sprintf("/api/bookings/%d", b.ID)

	// the poster cannot start the work
	code, env = a.do(http.MethodPatch, path+"/start", poster, nil)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "poster_cannot_start", env.ErrorCode)

	for _, step := range []struct {
		suffix, token, status string
	}{
		{"/start", worker, "in_progress"},
		{"/complete-worker", worker, "completed_from_worker"},
		{"/complete", poster, "completed"},
	} {
		code, env = a.do(http.MethodPatch, path+step.suffix, step.token, nil)
		require.Equal(t, http.StatusOK, code, env.ErrorCode)
		assert.Equal(t, step.status, decode[bookingView](t, env).Status)
	}

	// rating
	code, env = a.do(http.MethodPut, "/api/ratings", poster, gin.H{"ratee_id": workerID, "booking_id": b.ID, "score": 4})
	require.Equal(t, http.StatusOK, code, env.ErrorCode)
	code, env = a.do(http.MethodPut, "/api/ratings", poster, gin.H{"ratee_id": workerID, "booking_id": b.ID, "score": 5})
	require.Equal(t, http.StatusOK, code, env.ErrorCode)

	code, env = a.do(http.MethodGet, "/api/users/"+workerID+"/rating", poster, nil)
	require.Equal(t, http.StatusOK, code)
	summary := decode[struct {
		Average float64 `json:"average"`
		Count   int     `json:"count"`
	}](t, env)
	assert.Equal(t, 5.0, summary.Average)
	assert.Equal(t, 1, summary.Count)

	code, env = a.do(http.MethodPut, "/api/ratings", poster, gin.H{"ratee_id": workerID, "booking_id": b.ID, "score": 6})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "invalid_score", env.ErrorCode)

	// dispute
	code, env = a.do(http.MethodGet, path+"/dispute-eligibility", worker, nil)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, decode[struct {
		Eligible bool `json:"eligible"`
	}](t, env).Eligible)

	code, env = a.do(http.MethodPost, "/api/disputes", worker, gin.H{"booking_id": b.ID, "reason": "short"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "invalid_reason", env.ErrorCode)

	code, env = a.do(http.MethodPost, "/api/disputes", worker, gin.H{
		"booking_id": b.ID, "reason": "The poster refused to pay the agreed amount.",
	})
	require.Equal(t, http.StatusCreated, code, env.ErrorCode)
	disputeID := decode[struct {
		ID uint `json:"id"`
	}](t, env).ID

	code, env = a.do(http.MethodGet, path, poster, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "disputed", decode[bookingView](t, env).Status)

	code, env = a.do(http.MethodGet, "/api/admin/disputes/stats", admin, nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"open":1,"under_review":0,"resolved":0,"total":1}`, string(env.Value))

	code, env = a.do(http.MethodGet, "/api/admin/disputes/open-count", admin, nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"open":1}`, string(env.Value))

	disputePath := fmt.Sprintf("/api/admin/disputes/%d", disputeID)
	code, env = a.do(http.MethodPatch, disputePath+"/status", admin, gin.H{"status": "under_review"})
	require.Equal(t, http.StatusOK, code, env.ErrorCode)

	code, env = a.do(http.MethodPost, disputePath+"/resolve", admin, gin.H{
		"resolution_type": "split_evenly", "resolution": "Both parties share the cost.",
	})
	require.Equal(t, http.StatusOK, code, env.ErrorCode)
	resolved := decode[struct {
		Status           string `json:"status"`
		WorkerPercentage *int   `json:"worker_percentage"`
	}](t, env)
	assert.Equal(t, "resolved", resolved.Status)
	require.NotNil(t, resolved.WorkerPercentage)
	assert.Equal(t, 50, *resolved.WorkerPercentage)

	code, env = a.do(http.MethodGet, path, worker, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "completed", decode[bookingView](t, env).Status)

	code, env = a.do(http.MethodGet, "/api/disputes", worker, nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `1`, string(decode[struct {
		Total json.RawMessage `json:"total"`
	}](t, env).Total))

	// audit trail
	a.audit.Close()
	code, env = a.do(http.MethodGet, "/api/admin/audit-logs?entity=booking", admin, nil)
	require.Equal(t, http.StatusOK, code)
	page := decode[struct {
		Total int64 `json:"total"`
	}](t, env)
	assert.Positive(t, page.Total)
}

func TestAcceptApplication(t *testing.T) {
	a := newAPI(t)
	poster, _ := a.login("alice@example.com")
	worker, workerID := a.login("bob@example.com")

	app := a.store.PutApplication(models.TaskApplication{TaskID: 1, WorkerID: workerID, ProposedBudget: 75})
	path := fmt.Sprintf("/api/applications/%d/accept", app.ID)

	code, env := a.do(http.MethodPost, path, worker, nil)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "not_booking_poster", env.ErrorCode)

	code, env = a.do(http.MethodPost, path, poster, nil)
	require.Equal(t, http.StatusCreated, code, env.ErrorCode)
	b := decode[bookingView](t, env)
	assert.Equal(t, "scheduled", b.Status)

	code, env = a.do(http.MethodPost, path, poster, nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "application_processed", env.ErrorCode)

	code, env = a.do(http.MethodPost, "/api/applications/abc/accept", poster, nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "invalid_id", env.ErrorCode)

	code, env = a.do(http.MethodPost, "/api/applications/999/accept", poster, nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "application_not_found", env.ErrorCode)
}

func TestBookingIDValidation(t *testing.T) {
	a := newAPI(t)
	poster, _ := a.login("alice@example.com")

	code, env := a.do(http.MethodGet, "/api/bookings/abc", poster, nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "invalid_id", env.ErrorCode)

	code, env = a.do(http.MethodGet, "/api/bookings/999", poster, nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "booking_not_found", env.ErrorCode)
}
