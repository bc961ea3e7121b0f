package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/workshop-users/internal/auth/domain"
	"github.com/allisson/workshop-users/internal/user/domain"
)

func TestMapUserToResponse(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	user := &domain.User{
		ID:        uuid.Must(uuid.NewV7()),
		Username:  "alice",
		Email:     "alice@example.com",
		Password:  "secret-hash",
		Roles:     []authDomain.Role{authDomain.RoleAdmin},
		Enabled:   true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	response := MapUserToResponse(user)
	assert.Equal(t, user.ID.String(), response.ID)
	assert.Equal(t, []string{"ADMIN"}, response.Roles)
	assert.True(t, response.Enabled)

	body, err := json.Marshal(response)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "secret-hash")
	assert.NotContains(t, string(body), "password")
}

func TestMapUsersToListResponse(t *testing.T) {
	t.Run("Empty list serializes as array", func(t *testing.T) {
		response := MapUsersToListResponse(nil)

		body, err := json.Marshal(response)
		require.NoError(t, err)
		assert.JSONEq(t, `{"data":[]}`, string(body))
	})

	t.Run("Keeps order", func(t *testing.T) {
		users := []*domain.User{{Username: "bob"}, {Username: "alice"}}

		response := MapUsersToListResponse(users)
		require.Len(t, response.Data, 2)
		assert.Equal(t, "bob", response.Data[0].Username)
		assert.Equal(t, "alice", response.Data[1].Username)
	})
}
