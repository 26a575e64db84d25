package mirror

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keygate/internal/domain/access"
	"keygate/internal/domain/digitalkey"
)

func TestAddress(t *testing.T) {
	assert.Equal(t, "12_db-key", Address(BucketDigitalKeys, 12, "db-key"))
	assert.Equal(t, "perm_7", Address(BucketPermissions, 7, "ignored"))
}

func TestParseBucket(t *testing.T) {
	b, err := ParseBucket("permissions")
	require.NoError(t, err)
	assert.Equal(t, BucketPermissions, b)

	_, err = ParseBucket("users")
	assert.Error(t, err)
}

func TestKeyRecord(t *testing.T) {
	k, err := digitalkey.NewDigitalKey("db-key", "secret", "ops", 3)
	require.NoError(t, err)
	require.NoError(t, k.SetID(12))

	rec := NewKeyRecord(k)
	at := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	rec.Stamp(at)

	assert.Equal(t, at, rec.UploadedAt)
	assert.Equal(t, KeyData{KeyName: "db-key", KeyValue: "secret", Owner: "ops", MachineID: 3}, rec.OriginalData)
}

func TestPermissionRecord_Stamp(t *testing.T) {
	p, err := access.NewPermission(1, 2, 3, access.LevelWrite)
	require.NoError(t, err)
	require.NoError(t, p.SetID(4))
	at := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	t.Run("upload", func(t *testing.T) {
		rec := NewPermissionUpload(p)
		rec.Stamp(at)

		raw, err := json.Marshal(rec)
		require.NoError(t, err)

		var fields map[string]any
		require.NoError(t, json.Unmarshal(raw, &fields))
		assert.Contains(t, fields, "uploaded_at")
		assert.NotContains(t, fields, "updated_at")
		assert.NotContains(t, fields, "revoked_at")
		assert.NotNil(t, rec.OriginalData.CreatedAt)
	})

	t.Run("update after revoke", func(t *testing.T) {
		p.Revoke(at.Add(-time.Minute))
		rec := NewPermissionUpdate(p)
		rec.Stamp(at)

		require.NotNil(t, rec.UpdatedAt)
		require.NotNil(t, rec.RevokedAt)
		assert.Nil(t, rec.UploadedAt)
		assert.False(t, rec.IsActive)
		assert.True(t, rec.OriginalData.RevokedAt.Equal(at.Add(-time.Minute)))
	})
}
