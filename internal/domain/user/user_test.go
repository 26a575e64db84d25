package user

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("defaults type to user", func(t *testing.T) {
		u, err := NewUser("  alice ", "alice@example.com", "")
		require.NoError(t, err)
		assert.Equal(t, "alice", u.Username())
		assert.Equal(t, UserTypeUser, u.UserType())
		assert.Zero(t, u.ID())
		assert.False(t, u.CreatedAt().IsZero())
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		_, err := NewUser("bob", "bob@example.com", UserType("root"))
		assert.ErrorIs(t, err, ErrInvalidUserType)
	})

	t.Run("requires username and email", func(t *testing.T) {
		_, err := NewUser("", "x@example.com", UserTypeAdmin)
		assert.Error(t, err)
		_, err = NewUser("carol", " ", UserTypeAdmin)
		assert.Error(t, err)
	})
}

func TestUser_SetID(t *testing.T) {
	u, err := NewUser("alice", "alice@example.com", UserTypeOwner)
	require.NoError(t, err)

	assert.Error(t, u.SetID(0))
	require.NoError(t, u.SetID(7))
	assert.Equal(t, uint(7), u.ID())
	assert.Error(t, u.SetID(8))
}

func TestUser_Updates(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	u, err := ReconstructUser(1, "alice", "alice@example.com", "viewer", created, created)
	require.NoError(t, err)

	require.NoError(t, u.UpdateEmail("alice@example.com"))
	assert.Equal(t, created, u.UpdatedAt(), "unchanged email must not touch updated_at")

	require.NoError(t, u.ChangeType(UserTypeOperator))
	assert.Equal(t, UserTypeOperator, u.UserType())
	assert.True(t, u.UpdatedAt().After(created))

	assert.Error(t, u.UpdateUsername(""))
	assert.ErrorIs(t, u.ChangeType("superuser"), ErrInvalidUserType)
}

func TestReconstructUser_Invalid(t *testing.T) {
	now := time.Now()
	_, err := ReconstructUser(0, "a", "a@example.com", "user", now, now)
	assert.Error(t, err)

	_, err = ReconstructUser(1, "a", "a@example.com", "guest", now, now)
	assert.ErrorIs(t, err, ErrInvalidUserType)
}
