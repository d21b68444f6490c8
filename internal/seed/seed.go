// Package seed loads a small set of demo accounts and tasks so the API can
// be exercised without a signup flow.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskhub/labor-marketplace/internal/domain/user"
	"github.com/taskhub/labor-marketplace/internal/models"
)

// DemoPassword is shared by every seeded account.
const DemoPassword = "password123"

type UserWriter interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, u *models.User) error
}

type TaskWriter interface {
	Create(ctx context.Context, t *models.Task) error
}

type demoUser struct {
	name  string
	email string
	roles user.Role
}

var demoUsers = []demoUser{
	{"Alice Poster", "alice@example.com", user.RolePoster},
	{"Bob Worker", "bob@example.com", user.RoleWorker},
	{"Carol Worker", "carol@example.com", user.RoleWorker},
	{"Dave Both", "dave@example.com", user.RoleWorker | user.RolePoster},
	{"Admin", "admin@example.com", user.RoleAdmin},
}

// Run creates the demo users that do not exist yet and one task for each
// new poster. It is safe to call on every start.
func Run(ctx context.Context, users UserWriter, tasks TaskWriter, log logrus.FieldLogger) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed: hash password: %w", err)
	}

	created := 0
	for _, d := range demoUsers {
		_, err := users.GetByEmail(ctx, d.email)
		if err == nil {
			continue
		}
		if !errors.Is(err, user.ErrNotFound) {
			return fmt.Errorf("seed: lookup %s: %w", d.email, err)
		}

		u := &models.User{
			ID:           uuid.NewString(),
			Name:         d.name,
			Email:        d.email,
			PasswordHash: string(hash),
			Roles:        uint8(d.roles),
		}
		if err := users.Create(ctx, u); err != nil {
			return fmt.Errorf("seed: create %s: %w", d.email, err)
		}
		created++

		if !d.roles.Has(user.RolePoster) {
			continue
		}
		t := &models.Task{
			PosterID:    u.ID,
			Title:       "Help moving furniture",
			Description: "Two rooms, ground floor.",
			Status:      "open",
		}
		if err := tasks.Create(ctx, t); err != nil {
			return fmt.Errorf("seed: create task for %s: %w", d.email, err)
		}
	}

	log.WithField("created_users", created).Info("demo data seeded")
	return nil
}
