package access

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPermission(t *testing.T) {
	p, err := NewPermission(1, 2, 3, "")
	require.NoError(t, err)

	assert.Equal(t, LevelRead, p.Level())
	assert.True(t, p.IsActive())
	assert.Nil(t, p.RevokedAt())
	assert.False(t, p.IsRevoked())

	_, err = NewPermission(1, 2, 3, Level("root"))
	assert.ErrorIs(t, err, ErrInvalidLevel)

	_, err = NewPermission(0, 2, 3, LevelAdmin)
	assert.Error(t, err)
}

func TestPermission_Revoke(t *testing.T) {
	p, err := NewPermission(1, 2, 3, LevelWrite)
	require.NoError(t, err)

	first := p.CreatedAt().Add(time.Minute)
	p.Revoke(first)
	assert.False(t, p.IsActive())
	require.NotNil(t, p.RevokedAt())
	assert.True(t, p.RevokedAt().Equal(first))
	assert.False(t, p.RevokedAt().Before(p.CreatedAt()))

	second := first.Add(time.Hour)
	p.Revoke(second)
	assert.True(t, p.RevokedAt().Equal(second), "revoking again re-stamps revoked_at")
}

func TestPermission_SetActiveLeavesRevokedAt(t *testing.T) {
	p, err := NewPermission(1, 2, 3, LevelRead)
	require.NoError(t, err)

	p.SetActive(false)
	assert.False(t, p.IsActive())
	assert.Nil(t, p.RevokedAt())

	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	p.Revoke(at)
	p.SetActive(true)
	assert.True(t, p.IsActive())
	require.NotNil(t, p.RevokedAt())
	assert.True(t, p.RevokedAt().Equal(at))
}

func TestPermission_ChangeLevel(t *testing.T) {
	p, err := NewPermission(1, 2, 3, LevelRead)
	require.NoError(t, err)

	require.NoError(t, p.ChangeLevel(LevelExecute))
	assert.Equal(t, LevelExecute, p.Level())
	assert.ErrorIs(t, p.ChangeLevel("sudo"), ErrInvalidLevel)
	assert.Equal(t, LevelExecute, p.Level())
}

func TestLevel_Ordering(t *testing.T) {
	assert.True(t, LevelAdmin.Covers(LevelRead))
	assert.True(t, LevelWrite.Covers(LevelWrite))
	assert.False(t, LevelRead.Covers(LevelExecute))
	assert.False(t, Level("bogus").Covers(LevelRead))
	assert.Less(t, LevelRead.Rank(), LevelWrite.Rank())
	assert.Less(t, LevelExecute.Rank(), LevelAdmin.Rank())
}

func TestReconstructPermission(t *testing.T) {
	now := time.Now().UTC()
	revoked := now.Add(time.Second)

	p, err := ReconstructPermission(5, 1, 2, 3, "admin", false, now, revoked, &revoked)
	require.NoError(t, err)
	assert.Equal(t, uint(5), p.ID())
	assert.True(t, p.IsRevoked())

	_, err = ReconstructPermission(5, 1, 2, 3, "owner", true, now, now, nil)
	assert.ErrorIs(t, err, ErrInvalidLevel)
}
