package memory

import (
	"context"
	"time"

	"github.com/taskhub/labor-marketplace/internal/domain/task"
	"github.com/taskhub/labor-marketplace/internal/domain/user"
	"github.com/taskhub/labor-marketplace/internal/models"
)

type UserRepo struct {
	s    *Store
	held bool
}

func NewUserRepo(s *Store) *UserRepo {
	return &UserRepo{s: s}
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer r.s.guard(r.held)()

	u, ok := r.s.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return &u, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer r.s.guard(r.held)()

	email = normalizeEmail(email)
	for _, u := range r.s.users {
		if normalizeEmail(u.Email) == email {
			found := u
			return &found, nil
		}
	}
	return nil, user.ErrNotFound
}

// Create adds u unless the email is already registered.
func (r *UserRepo) Create(ctx context.Context, u *models.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	defer r.s.guard(r.held)()

	for _, existing := range r.s.users {
		if existing.ID == u.ID || normalizeEmail(existing.Email) == normalizeEmail(u.Email) {
			return user.ErrEmailTaken
		}
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r *UserRepo) UpdateAverageRating(ctx context.Context, userID string, average float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	defer r.s.guard(r.held)()

	u, ok := r.s.users[userID]
	if !ok {
		return user.ErrNotFound
	}
	u.AverageRating = average
	r.s.users[userID] = u
	return nil
}

type TaskRepo struct {
	s    *Store
	held bool
}

func NewTaskRepo(s *Store) *TaskRepo {
	return &TaskRepo{s: s}
}

func (r *TaskRepo) GetByID(ctx context.Context, id uint) (*models.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer r.s.guard(r.held)()

	t, ok := r.s.tasks[id]
	if !ok {
		return nil, task.ErrNotFound
	}
	return &t, nil
}

func (r *TaskRepo) Assign(ctx context.Context, id uint, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	defer r.s.guard(r.held)()

	t, ok := r.s.tasks[id]
	if !ok {
		return task.ErrNotFound
	}
	if task.Status(t.Status) != task.StatusOpen {
		return task.ErrNotOpen
	}
	t.Status = string(task.StatusAssigned)
	t.AssignedAt = &at
	t.UpdatedAt = at
	r.s.tasks[id] = t
	return nil
}

func (r *TaskRepo) Create(ctx context.Context, t *models.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	*t = r.s.PutTask(*t)
	return nil
}

var (
	_ user.Repository = (*UserRepo)(nil)
	_ task.Repository = (*TaskRepo)(nil)
)
