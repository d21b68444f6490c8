// Package memory keeps every aggregate in process. It backs the use case
// tests and the STORAGE=memory mode; transactions are a store-wide lock plus
// a snapshot that is restored when the callback fails.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/taskhub/labor-marketplace/internal/audit"
	"github.com/taskhub/labor-marketplace/internal/models"
)

type Store struct {
	mu sync.Mutex

	users    map[string]models.User
	tasks    map[uint]models.Task
	apps     map[uint]models.TaskApplication
	bookings map[uint]models.Booking
	disputes map[uint]models.Dispute
	ratings  map[uint]models.Rating
	audit    []models.AuditLog

	nextTask    uint
	nextApp     uint
	nextBooking uint
	nextDispute uint
	nextRating  uint
}

func NewStore() *Store {
	return &Store{
		users:    map[string]models.User{},
		tasks:    map[uint]models.Task{},
		apps:     map[uint]models.TaskApplication{},
		bookings: map[uint]models.Booking{},
		disputes: map[uint]models.Dispute{},
		ratings:  map[uint]models.Rating{},
	}
}

type snapshot struct {
	users    map[string]models.User
	tasks    map[uint]models.Task
	apps     map[uint]models.TaskApplication
	bookings map[uint]models.Booking
	disputes map[uint]models.Dispute
	ratings  map[uint]models.Rating

	nextTask, nextApp, nextBooking, nextDispute, nextRating uint
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *Store) snapshot() snapshot {
	return snapshot{
		users:       cloneMap(s.users),
		tasks:       cloneMap(s.tasks),
		apps:        cloneMap(s.apps),
		bookings:    cloneMap(s.bookings),
		disputes:    cloneMap(s.disputes),
		ratings:     cloneMap(s.ratings),
		nextTask:    s.nextTask,
		nextApp:     s.nextApp,
		nextBooking: s.nextBooking,
		nextDispute: s.nextDispute,
		nextRating:  s.nextRating,
	}
}

func (s *Store) restore(snap snapshot) {
	s.users = snap.users
	s.tasks = snap.tasks
	s.apps = snap.apps
	s.bookings = snap.bookings
	s.disputes = snap.disputes
	s.ratings = snap.ratings
	s.nextTask = snap.nextTask
	s.nextApp = snap.nextApp
	s.nextBooking = snap.nextBooking
	s.nextDispute = snap.nextDispute
	s.nextRating = snap.nextRating
}

// guard locks the store unless the caller already holds it.
func (s *Store) guard(held bool) func() {
	if held {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// atomically runs fn under the store lock and rolls back on error.
func (s *Store) atomically(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	if err := fn(); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// --------------------------------------------------
// Seeding
// --------------------------------------------------

func (s *Store) PutUser(u models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

func (s *Store) PutTask(t models.Task) models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == 0 {
		s.nextTask++
		t.ID = s.nextTask
	} else if t.ID > s.nextTask {
		s.nextTask = t.ID
	}
	s.tasks[t.ID] = t
	return t
}

// PutApplication stores a as-is, assigning an id when it has none.
func (s *Store) PutApplication(a models.TaskApplication) models.TaskApplication {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == 0 {
		s.nextApp++
		a.ID = s.nextApp
	} else if a.ID > s.nextApp {
		s.nextApp = a.ID
	}
	if a.Status == "" {
		a.Status = "pending"
	}
	s.apps[a.ID] = a
	return a
}

// PutBooking stores b as-is, assigning an id when it has none.
func (s *Store) PutBooking(b models.Booking) models.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b.ID == 0 {
		s.nextBooking++
		b.ID = s.nextBooking
	} else if b.ID > s.nextBooking {
		s.nextBooking = b.ID
	}
	if b.Version == 0 {
		b.Version = 1
	}
	s.bookings[b.ID] = b
	return b
}

func (s *Store) User(id string) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	return u, ok
}

func (s *Store) Task(id uint) (models.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	return t, ok
}

func (s *Store) Application(id uint) (models.TaskApplication, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.apps[id]
	return a, ok
}

// BookingsForTask returns the live bookings of a task.
func (s *Store) BookingsForTask(taskID uint) []models.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Booking
	for _, b := range s.bookings {
		if b.TaskID == taskID && b.DeletedAt == nil {
			out = append(out, b)
		}
	}
	sortByStart(out)
	return out
}

func (s *Store) Booking(id uint) (models.Booking, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	return b, ok
}

// RatingCount is the number of stored rating rows.
func (s *Store) RatingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ratings)
}

// --------------------------------------------------
// Audit
// --------------------------------------------------

func (s *Store) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	log.ID = uint(len(s.audit) + 1)
	s.audit = append(s.audit, *log)
	return nil
}

func (s *Store) ListAuditLogs(ctx context.Context, f audit.Filter) ([]models.AuditLog, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []models.AuditLog
	for _, l := range s.audit {
		if f.Action != "" && l.Action != f.Action {
			continue
		}
		if f.Entity != "" && l.Entity != f.Entity {
			continue
		}
		if f.UserID != "" && (l.UserID == nil || *l.UserID != f.UserID) {
			continue
		}
		if f.From != nil && l.CreatedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && l.CreatedAt.After(*f.To) {
			continue
		}
		matched = append(matched, l)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	return paginate(matched, f.Offset, f.Limit), total, nil
}

func paginate[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func byNewest[T any](items []T, created func(T) time.Time) {
	sort.SliceStable(items, func(i, j int) bool {
		return created(items[i]).After(created(items[j]))
	})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
