package mirrorstore

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keygate/internal/domain/access"
	"keygate/internal/domain/digitalkey"
	"keygate/internal/domain/mirror"
	"keygate/internal/shared/config"
	"keygate/internal/shared/logger"
)

func newTestStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	root := t.TempDir()
	store := NewFileStore(config.MirrorConfig{
		Root:              root,
		KeysBucket:        "digital-keys",
		PermissionsBucket: "permissions",
	}, logger.NewNopLogger())
	return store, root
}

func newKey(t *testing.T, id uint, name string) *digitalkey.DigitalKey {
	t.Helper()
	k, err := digitalkey.NewDigitalKey(name, "value-"+name, "ops", 1)
	require.NoError(t, err)
	require.NoError(t, k.SetID(id))
	return k
}

func newPermission(t *testing.T, id uint) *access.Permission {
	t.Helper()
	p, err := access.NewPermission(1, 2, 3, access.LevelWrite)
	require.NoError(t, err)
	require.NoError(t, p.SetID(id))
	return p
}

func TestFileStore_KeyRoundTrip(t *testing.T) {
	store, root := newTestStore(t)
	ctx := context.Background()
	k := newKey(t, 12, "db-key")

	require.True(t, store.Write(ctx, mirror.BucketDigitalKeys, k.ID(), k.Name(), mirror.NewKeyRecord(k)))
	assert.FileExists(t, filepath.Join(root, "digital-keys", "12_db-key.json"))

	snap, ok := store.Read(ctx, mirror.BucketDigitalKeys, 12, "db-key")
	require.True(t, ok)
	assert.Equal(t, "digital-keys/12_db-key.json", snap.Path)

	var rec mirror.KeyRecord
	require.NoError(t, snap.Decode(&rec))
	assert.Equal(t, uint(12), rec.ID)
	assert.Equal(t, mirror.KeyData{KeyName: "db-key", KeyValue: "value-db-key", Owner: "ops", MachineID: 1}, rec.OriginalData)
	assert.False(t, rec.UploadedAt.IsZero())

	require.True(t, store.Delete(ctx, mirror.BucketDigitalKeys, 12, "db-key"))
	_, ok = store.Read(ctx, mirror.BucketDigitalKeys, 12, "db-key")
	assert.False(t, ok)
}

func TestFileStore_DeleteMissingReportsFalse(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	assert.False(t, store.Delete(ctx, mirror.BucketPermissions, 99, ""))

	p := newPermission(t, 1)
	require.True(t, store.Write(ctx, mirror.BucketPermissions, 1, "", mirror.NewPermissionUpload(p)))
	require.True(t, store.Delete(ctx, mirror.BucketPermissions, 1, ""))
	assert.False(t, store.Delete(ctx, mirror.BucketPermissions, 1, ""))
}

func TestFileStore_WriteOverwritesAndRestamps(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	first := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)
	clock := first
	store.now = func() time.Time { return clock }

	p := newPermission(t, 7)
	require.True(t, store.Write(ctx, mirror.BucketPermissions, 7, "", mirror.NewPermissionUpload(p)))

	clock = second
	require.NoError(t, p.ChangeLevel(access.LevelAdmin))
	require.True(t, store.Write(ctx, mirror.BucketPermissions, 7, "", mirror.NewPermissionUpdate(p)))

	all := store.ListAll(ctx, mirror.BucketPermissions)
	require.Len(t, all, 1)

	var rec mirror.PermissionRecord
	require.NoError(t, all[0].Decode(&rec))
	assert.Equal(t, "admin", rec.PermissionLevel)
	require.NotNil(t, rec.UpdatedAt)
	assert.True(t, rec.UpdatedAt.Equal(second))
	assert.Nil(t, rec.UploadedAt)

	idx := store.Index(ctx, mirror.BucketPermissions)
	require.Len(t, idx.Entries, 1)
	assert.Equal(t, uint(7), idx.Entries[0].ID)
	assert.Equal(t, "permissions/perm_7.json", idx.Entries[0].FilePath)
	assert.True(t, idx.Entries[0].IndexedAt.Equal(second))
}

func TestFileStore_ListAllAfterWritesAndDeletes(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	const n, m = 6, 2
	for i := uint(1); i <= n; i++ {
		k := newKey(t, i, "key")
		require.True(t, store.Write(ctx, mirror.BucketDigitalKeys, i, "key", mirror.NewKeyRecord(k)))
	}
	for i := uint(1); i <= m; i++ {
		require.True(t, store.Delete(ctx, mirror.BucketDigitalKeys, i, "key"))
	}

	all := store.ListAll(ctx, mirror.BucketDigitalKeys)
	assert.Len(t, all, n-m)

	seen := map[uint]bool{}
	for _, s := range all {
		seen[s.ID] = true
		assert.Equal(t, "key", s.Name)
	}
	assert.Len(t, seen, n-m)
	assert.Len(t, store.Index(ctx, mirror.BucketDigitalKeys).Entries, n-m)
}

func TestFileStore_IndexChecksumMatchesSnapshot(t *testing.T) {
	store, root := newTestStore(t)
	ctx := context.Background()
	k := newKey(t, 3, "api")

	require.True(t, store.Write(ctx, mirror.BucketDigitalKeys, 3, "api", mirror.NewKeyRecord(k)))

	data, err := os.ReadFile(filepath.Join(root, "digital-keys", "3_api.json"))
	require.NoError(t, err)

	idx := store.Index(ctx, mirror.BucketDigitalKeys)
	require.Len(t, idx.Entries, 1)
	assert.Equal(t, checksum(data), idx.Entries[0].Checksum)
	assert.Len(t, idx.Entries[0].Checksum, 64)
}

func TestFileStore_ReadIgnoresIndexDrift(t *testing.T) {
	store, root := newTestStore(t)
	ctx := context.Background()
	k := newKey(t, 5, "drift")

	require.True(t, store.Write(ctx, mirror.BucketDigitalKeys, 5, "drift", mirror.NewKeyRecord(k)))
	require.NoError(t, os.Remove(filepath.Join(root, "digital-keys", indexFileName)))

	_, ok := store.Read(ctx, mirror.BucketDigitalKeys, 5, "drift")
	assert.True(t, ok)
	assert.Empty(t, store.Index(ctx, mirror.BucketDigitalKeys).Entries)

	require.NoError(t, os.WriteFile(filepath.Join(root, "digital-keys", indexFileName), []byte("{not json"), 0o644))
	assert.Empty(t, store.Index(ctx, mirror.BucketDigitalKeys).Entries)
	assert.Len(t, store.ListAll(ctx, mirror.BucketDigitalKeys), 1)
}

func TestFileStore_ConcurrentWritesKeepEveryIndexEntry(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	const writers = 20
	var wg sync.WaitGroup
	for i := uint(1); i <= writers; i++ {
		wg.Add(1)
		go func(id uint) {
			defer wg.Done()
			p, err := access.NewPermission(1, 2, 3, access.LevelRead)
			if err != nil {
				return
			}
			_ = p.SetID(id)
			store.Write(ctx, mirror.BucketPermissions, id, "", mirror.NewPermissionUpload(p))
		}(i)
	}
	wg.Wait()

	assert.Len(t, store.Index(ctx, mirror.BucketPermissions).Entries, writers)
	assert.Len(t, store.ListAll(ctx, mirror.BucketPermissions), writers)
}

func TestFileStore_EmptyAndUnknownBuckets(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	assert.Empty(t, store.ListAll(ctx, mirror.BucketDigitalKeys))
	assert.Empty(t, store.Index(ctx, mirror.BucketDigitalKeys).Entries)

	k := newKey(t, 1, "x")
	assert.False(t, store.Write(ctx, mirror.Bucket("users"), 1, "x", mirror.NewKeyRecord(k)))
	_, ok := store.Read(ctx, mirror.Bucket("users"), 1, "x")
	assert.False(t, ok)
}

func TestFileStore_CanceledContextSkipsWrite(t *testing.T) {
	store, _ := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	k := newKey(t, 1, "x")
	assert.False(t, store.Write(ctx, mirror.BucketDigitalKeys, 1, "x", mirror.NewKeyRecord(k)))
}

func TestFileStore_RefusesAddressesOutsideBucket(t *testing.T) {
	store, root := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	for _, name := range []string{"../../../../escaped", "team/a"} {
		t.Run(name, func(t *testing.T) {
			// Reconstruct skips name validation, as a row loaded from an
			// older database would.
			k, err := digitalkey.ReconstructDigitalKey(7, name, "v", "ops", 1, now, now)
			require.NoError(t, err)

			assert.False(t, store.Write(ctx, mirror.BucketDigitalKeys, 7, name, mirror.NewKeyRecord(k)))
			_, ok := store.Read(ctx, mirror.BucketDigitalKeys, 7, name)
			assert.False(t, ok)
			assert.False(t, store.Delete(ctx, mirror.BucketDigitalKeys, 7, name))
		})
	}

	assert.NoFileExists(t, filepath.Join(root, "..", "escaped.json"))
	assert.NoDirExists(t, filepath.Join(root, "digital-keys", "7_team"))
	assert.Empty(t, store.ListAll(ctx, mirror.BucketDigitalKeys))
}
