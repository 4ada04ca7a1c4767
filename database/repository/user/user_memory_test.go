package userRepo

import (
	"context"
	"testing"

	"kisansaarthi/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryUserRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepo()

	u, err := repo.GetByPhone(ctx, "9876543210")
	require.NoError(t, err)
	assert.Nil(t, u)

	require.NoError(t, repo.Create(ctx, &models.User{ID: "u1", Email: "a@b.co", Phone: "9876543210", PasswordHash: "h1"}))
	assert.ErrorIs(t, repo.Create(ctx, &models.User{ID: "u2", Email: "a@b.co", Phone: "1111111111"}), ErrDuplicateUser)
	assert.ErrorIs(t, repo.Create(ctx, &models.User{ID: "u3", Email: "c@d.co", Phone: "9876543210"}), ErrDuplicateUser)
	assert.Equal(t, 1, repo.Len())

	u, err = repo.GetByEmail(ctx, "a@b.co")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "u1", u.ID)
	assert.False(t, u.CreatedAt.IsZero())

	require.NoError(t, repo.UpdatePassword(ctx, "u1", "h2"))
	u, _ = repo.GetByPhone(ctx, "9876543210")
	assert.Equal(t, "h2", u.PasswordHash)

	assert.ErrorIs(t, repo.UpdatePassword(ctx, "missing", "x"), ErrUserNotFound)
}
