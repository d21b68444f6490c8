package seed

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskhub/labor-marketplace/internal/domain/user"
	"github.com/taskhub/labor-marketplace/internal/infra/memory"
)

func TestRun_SeedsOnceAndHashesPasswords(t *testing.T) {
	store := memory.NewStore()
	users := memory.NewUserRepo(store)
	tasks := memory.NewTaskRepo(store)
	log, hook := test.NewNullLogger()

	ctx := context.Background()
	require.NoError(t, Run(ctx, users, tasks, log))
	require.NoError(t, Run(ctx, users, tasks, log))

	require.Len(t, hook.AllEntries(), 2)
	assert.Equal(t, len(demoUsers), hook.AllEntries()[0].Data["created_users"])
	assert.Equal(t, 0, hook.LastEntry().Data["created_users"])
	assert.Equal(t, logrus.InfoLevel, hook.LastEntry().Level)

	admin, err := users.GetByEmail(ctx, "ADMIN@example.com")
	require.NoError(t, err)
	assert.True(t, user.RolesOf(admin).Has(user.RoleAdmin))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(DemoPassword)))

	task, err := tasks.GetByID(ctx, 1)
	require.NoError(t, err)
	alice, err := users.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, task.PosterID)
}
