package pg

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aicom-dev/aicom/shared/domain"
	internal_errors "github.com/aicom-dev/aicom/shared/errors"
)

func TestUsers(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	user := mkUser(t)

	got, err := storage.GetUser(ctx, user.Id)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)
	assert.False(t, got.Admin)

	t.Run("conflicts name the field", func(t *testing.T) {
		tests := []struct {
			name  string
			user  domain.User
			field string
		}{
			{"email", domain.User{Id: uuid.New(), Email: user.Email, DisplayName: generateString(t)}, "email"},
			{"display name", domain.User{Id: uuid.New(), Email: generateString(t) + "@x.io", DisplayName: user.DisplayName}, "display_name"},
			{"id", domain.User{Id: user.Id, Email: generateString(t) + "@x.io", DisplayName: generateString(t)}, "id"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				err := storage.CreateUser(ctx, tt.user)
				conflict, ok := internal_errors.As[*internal_errors.ConflictError](err)
				require.True(t, ok, "got %v", err)
				assert.Equal(t, tt.field, conflict.Field)
			})
		}
	})

	t.Run("ensure syncs admin flag only", func(t *testing.T) {
		synced, err := storage.EnsureUser(ctx, domain.User{Id: user.Id, Email: "new@example.com", DisplayName: "new", Admin: true})
		require.NoError(t, err)
		assert.True(t, synced.Admin)
		assert.Equal(t, user.Email, synced.Email)
		assert.Equal(t, user.DisplayName, synced.DisplayName)
	})

	t.Run("ensure inserts unknown user", func(t *testing.T) {
		name := generateString(t)
		created, err := storage.EnsureUser(ctx, domain.User{Id: uuid.New(), Email: name + "@example.com", DisplayName: name})
		require.NoError(t, err)
		assert.Equal(t, name, created.DisplayName)
	})

	_, err = storage.GetUser(ctx, uuid.New())
	assert.True(t, internal_errors.Is[*internal_errors.NotFoundError](err))
}
