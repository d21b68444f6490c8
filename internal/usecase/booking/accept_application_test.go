package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/taskhub/labor-marketplace/internal/domain/booking"
	"github.com/taskhub/labor-marketplace/internal/domain/task"
	"github.com/taskhub/labor-marketplace/internal/domain/user"
	"github.com/taskhub/labor-marketplace/internal/models"
)

func TestAcceptApplication_BooksWorkerAndClosesTask(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tk := f.datedTask(14, 16)
	chosen := f.apply(tk.ID, worker.ID, 120)
	other := f.apply(tk.ID, worker2.ID, 90)
	elsewhere := f.apply(f.task.ID, worker2.ID, 70)

	b, err := f.accept().Execute(ctx, poster, chosen.ID)
	require.NoError(t, err)
	assert.Equal(t, tk.ID, b.TaskID)
	assert.Equal(t, worker.ID, b.WorkerID)
	assert.Equal(t, poster.ID, b.PosterID)
	assert.Equal(t, 120.0, b.AgreedRate)
	assert.Equal(t, *at(14), *b.StartTime)
	assert.Equal(t, *at(16), *b.EndTime)
	assert.Equal(t, string(domain.StatusScheduled), b.Status)
	assert.Equal(t, fixedNow, b.CreatedAt)

	stored, ok := f.store.Booking(b.ID)
	require.True(t, ok)
	assert.Equal(t, b.WorkerID, stored.WorkerID)

	gotTask, _ := f.store.Task(tk.ID)
	assert.Equal(t, string(task.StatusAssigned), gotTask.Status)
	require.NotNil(t, gotTask.AssignedAt)
	assert.Equal(t, fixedNow, *gotTask.AssignedAt)

	gotChosen, _ := f.store.Application(chosen.ID)
	assert.Equal(t, string(task.ApplicationAccepted), gotChosen.Status)
	require.NotNil(t, gotChosen.RespondedAt)
	assert.Equal(t, fixedNow, *gotChosen.RespondedAt)

	gotOther, _ := f.store.Application(other.ID)
	assert.Equal(t, string(task.ApplicationRejected), gotOther.Status)
	require.NotNil(t, gotOther.RejectionReason)
	assert.Equal(t, task.RejectedForOther, *gotOther.RejectionReason)

	gotElsewhere, _ := f.store.Application(elsewhere.ID)
	assert.Equal(t, string(task.ApplicationPending), gotElsewhere.Status)

	// The rejected application cannot be accepted afterwards.
	_, err = f.accept().Execute(ctx, poster, other.ID)
	assert.ErrorIs(t, err, task.ErrApplicationProcessed)
	assert.Len(t, f.store.BookingsForTask(tk.ID), 1)
}

func TestAcceptApplication_Guards(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tk := f.datedTask(14, 16)
	app := f.apply(tk.ID, worker.ID, 100)

	_, err := f.accept().Execute(ctx, poster, 999)
	assert.ErrorIs(t, err, task.ErrApplicationMissing)

	_, err = f.accept().Execute(ctx, outside, app.ID)
	assert.ErrorIs(t, err, domain.ErrNotPoster)

	ghost := f.apply(tk.ID, "ghost", 100)
	_, err = f.accept().Execute(ctx, poster, ghost.ID)
	assert.ErrorIs(t, err, domain.ErrWorkerNotFound)

	notWorker := f.apply(tk.ID, outside.ID, 100)
	_, err = f.accept().Execute(ctx, poster, notWorker.ID)
	assert.ErrorIs(t, err, domain.ErrNotAWorker)

	self := f.apply(f.bothTask.ID, both.ID, 100)
	_, err = f.accept().Execute(ctx, both, self.ID)
	assert.ErrorIs(t, err, domain.ErrSelfBooking)

	assigned := f.store.PutTask(models.Task{PosterID: poster.ID, Title: "Taken", Status: string(task.StatusAssigned)})
	late := f.apply(assigned.ID, worker.ID, 100)
	_, err = f.accept().Execute(ctx, poster, late.ID)
	assert.ErrorIs(t, err, task.ErrTaskNotOpen)

	// Admins may accept on behalf of the poster.
	b, err := f.accept().Execute(ctx, admin, app.ID)
	require.NoError(t, err)
	assert.Equal(t, poster.ID, b.PosterID)
}

func TestAcceptApplication_OverlapRollsBackEverything(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(worker.ID, 9, 12, domain.StatusScheduled)

	tk := f.datedTask(11, 13)
	app := f.apply(tk.ID, worker.ID, 100)
	other := f.apply(tk.ID, worker2.ID, 100)

	_, err := f.accept().Execute(ctx, poster, app.ID)
	assert.ErrorIs(t, err, domain.ErrWorkerUnavailable)

	gotTask, _ := f.store.Task(tk.ID)
	assert.Equal(t, string(task.StatusOpen), gotTask.Status)
	assert.Nil(t, gotTask.AssignedAt)
	for _, id := range []uint{app.ID, other.ID} {
		a, _ := f.store.Application(id)
		assert.Equal(t, string(task.ApplicationPending), a.Status)
	}
	assert.Empty(t, f.store.BookingsForTask(tk.ID))

	// The other applicant is free, so the task can still be filled.
	_, err = f.accept().Execute(ctx, poster, other.ID)
	assert.NoError(t, err)
}

func TestAcceptApplication_UndatedTaskBooksWithoutSchedule(t *testing.T) {
	f := newFixture(t)
	f.seed(worker.ID, 9, 12, domain.StatusScheduled)
	app := f.apply(f.task.ID, worker.ID, 60)

	b, err := f.accept().Execute(context.Background(), poster, app.ID)
	require.NoError(t, err)
	assert.Nil(t, b.StartTime)
	assert.Nil(t, b.EndTime)
}

func TestAcceptApplication_ConcurrentAcceptsAssignOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tk := f.datedTask(14, 16)

	const applicants = 8
	ids := make([]uint, 0, applicants)
	for i := 0; i < applicants; i++ {
		id := fmt.Sprintf("applicant-%d", i)
		f.store.PutUser(models.User{ID: id, Name: id, Email: id + "@example.com", Roles: uint8(user.RoleWorker)})
		ids = append(ids, f.apply(tk.ID, id, 100).ID)
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for _, id := range ids {
		wg.Add(1)
		go func(appID uint) {
			defer wg.Done()
			_, err := f.accept().Execute(ctx, poster, appID)

			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				succeeded++
				return
			}
			if !errors.Is(err, task.ErrTaskNotOpen) {
				assert.ErrorIs(t, err, task.ErrApplicationProcessed)
			}
		}(id)
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Len(t, f.store.BookingsForTask(tk.ID), 1)

	accepted := 0
	for _, id := range ids {
		a, _ := f.store.Application(id)
		if a.Status == string(task.ApplicationAccepted) {
			accepted++
		} else {
			assert.Equal(t, string(task.ApplicationRejected), a.Status)
		}
	}
	assert.Equal(t, 1, accepted)
}
