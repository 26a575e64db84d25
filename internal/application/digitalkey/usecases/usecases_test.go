package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keygate/internal/application/digitalkey/dto"
	"keygate/internal/domain/digitalkey"
	"keygate/internal/domain/machine"
	"keygate/internal/domain/mirror"
	"keygate/internal/infrastructure/mirrorstore"
	"keygate/internal/infrastructure/repository"
	"keygate/internal/shared/config"
	"keygate/internal/shared/errors"
	"keygate/internal/shared/logger"
	"keygate/internal/shared/testutil"
)

type fixture struct {
	keys     digitalkey.Repository
	machines machine.Repository
	store    *mirrorstore.FileStore
	log      logger.Interface
	db01     uint
	db02     uint
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	log := logger.NewNopLogger()
	f := &fixture{
		keys:     repository.NewDigitalKeyRepository(db, log),
		machines: repository.NewMachineRepository(db, log),
		store: mirrorstore.NewFileStore(config.MirrorConfig{
			Root:              t.TempDir(),
			KeysBucket:        "digital-keys",
			PermissionsBucket: "permissions",
		}, log),
		log: log,
	}
	for _, name := range []string{"db-01", "db-02"} {
		m, err := machine.NewMachine(name, machine.MachineTypeDatabase, "", "")
		require.NoError(t, err)
		require.NoError(t, f.machines.Create(context.Background(), m))
		if name == "db-01" {
			f.db01 = m.ID()
		} else {
			f.db02 = m.ID()
		}
	}
	return f
}

func (f *fixture) create(t *testing.T, name, value, owner string, machineID uint) *dto.DigitalKeyResponse {
	t.Helper()
	k, err := NewCreateDigitalKeyUseCase(f.keys, f.machines, f.store, f.log).Execute(context.Background(), CreateDigitalKeyCommand{
		KeyName: name, KeyValue: value, Owner: owner, MachineID: machineID,
	})
	require.NoError(t, err)
	return k
}

type stubMirror struct {
	mirror.Store
	writes  int
	deletes []string
}

func (s *stubMirror) Write(context.Context, mirror.Bucket, uint, string, mirror.Record) bool {
	s.writes++
	return false
}

func (s *stubMirror) Delete(_ context.Context, _ mirror.Bucket, _ uint, name string) bool {
	s.deletes = append(s.deletes, name)
	return false
}

func TestCreateDigitalKeyUseCase(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	created := f.create(t, "db-01-key", "ssh-ed25519 AAAA", "ops", f.db01)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "ssh-ed25519 AAAA", created.KeyValue)

	snap, ok := f.store.Read(ctx, mirror.BucketDigitalKeys, created.ID, "db-01-key")
	require.True(t, ok)
	var rec mirror.KeyRecord
	require.NoError(t, snap.Decode(&rec))
	assert.Equal(t, mirror.KeyData{KeyName: "db-01-key", KeyValue: "ssh-ed25519 AAAA", Owner: "ops", MachineID: f.db01}, rec.OriginalData)
	assert.False(t, rec.UploadedAt.IsZero())

	uc := NewCreateDigitalKeyUseCase(f.keys, f.machines, f.store, f.log)
	tests := []struct {
		name    string
		cmd     CreateDigitalKeyCommand
		wantErr error
	}{
		{"unknown machine", CreateDigitalKeyCommand{KeyName: "k", KeyValue: "v", Owner: "ops", MachineID: 404}, digitalkey.ErrUnknownMachine},
		{"duplicate name", CreateDigitalKeyCommand{KeyName: "db-01-key", KeyValue: "other", Owner: "ops", MachineID: f.db01}, digitalkey.ErrKeyNameExists},
		{"duplicate value", CreateDigitalKeyCommand{KeyName: "other", KeyValue: "ssh-ed25519 AAAA", Owner: "ops", MachineID: f.db02}, digitalkey.ErrKeyValueExists},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(ctx, tt.cmd)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("unknown machine still matches machine not found", func(t *testing.T) {
		_, err := uc.Execute(ctx, CreateDigitalKeyCommand{KeyName: "k", KeyValue: "v", Owner: "ops", MachineID: 404})
		assert.ErrorIs(t, err, machine.ErrMachineNotFound)
	})

	t.Run("missing owner", func(t *testing.T) {
		_, err := uc.Execute(ctx, CreateDigitalKeyCommand{KeyName: "k", KeyValue: "v", MachineID: f.db01})
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("name with path separator", func(t *testing.T) {
		for _, name := range []string{"team/a", "../../../../escaped"} {
			_, err := uc.Execute(ctx, CreateDigitalKeyCommand{KeyName: name, KeyValue: "v-" + name, Owner: "ops", MachineID: f.db01})
			assert.True(t, errors.IsValidationError(err), name)

			stored, err := f.keys.GetByName(ctx, name)
			require.NoError(t, err)
			assert.Nil(t, stored, "rejected key must not be persisted")
		}
	})
}

func TestCreateDigitalKeyUseCase_MirrorFailure(t *testing.T) {
	f := newFixture(t)
	store := &stubMirror{}

	created, err := NewCreateDigitalKeyUseCase(f.keys, f.machines, store, f.log).Execute(context.Background(), CreateDigitalKeyCommand{
		KeyName: "k1", KeyValue: "v1", Owner: "ops", MachineID: f.db01,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, store.writes)

	stored, err := f.keys.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored)
}

func TestGetAndListDigitalKeys(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	k1 := f.create(t, "k1", "v1", "ops", f.db01)
	f.create(t, "k2", "v2", "ops", f.db02)
	f.create(t, "k3", "v3", "dba", f.db01)

	get := NewGetDigitalKeyUseCase(f.keys, f.log)
	byID, err := get.ExecuteByID(ctx, k1.ID)
	require.NoError(t, err)
	assert.Equal(t, "k1", byID.KeyName)

	byName, err := get.ExecuteByName(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, k1.ID, byName.ID)

	_, err = get.ExecuteByID(ctx, 404)
	assert.ErrorIs(t, err, digitalkey.ErrKeyNotFound)
	_, err = get.ExecuteByName(ctx, "nope")
	assert.ErrorIs(t, err, digitalkey.ErrKeyNotFound)

	list := NewListDigitalKeysUseCase(f.keys, f.log)
	all, err := list.Execute(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	onDB01, err := list.ExecuteByMachine(ctx, f.db01)
	require.NoError(t, err)
	assert.Len(t, onDB01, 2)

	ops, err := list.ExecuteByOwner(ctx, "ops")
	require.NoError(t, err)
	assert.Len(t, ops, 2)

	none, err := list.ExecuteByOwner(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestUpdateDigitalKeyUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("rename rebinds and moves the snapshot", func(t *testing.T) {
		f := newFixture(t)
		k := f.create(t, "k1", "v1", "ops", f.db01)

		updated, err := NewUpdateDigitalKeyUseCase(f.keys, f.machines, f.store, f.log).Execute(ctx, UpdateDigitalKeyCommand{
			ID: k.ID, KeyName: "k1-rotated", KeyValue: "v1b", Owner: "dba", MachineID: f.db02,
		})
		require.NoError(t, err)
		assert.Equal(t, "k1-rotated", updated.KeyName)
		assert.Equal(t, f.db02, updated.MachineID)

		_, ok := f.store.Read(ctx, mirror.BucketDigitalKeys, k.ID, "k1")
		assert.False(t, ok)

		snap, ok := f.store.Read(ctx, mirror.BucketDigitalKeys, k.ID, "k1-rotated")
		require.True(t, ok)
		var rec mirror.KeyRecord
		require.NoError(t, snap.Decode(&rec))
		assert.Equal(t, "v1b", rec.OriginalData.KeyValue)
		assert.Equal(t, f.db02, rec.OriginalData.MachineID)

		assert.Len(t, f.store.ListAll(ctx, mirror.BucketDigitalKeys), 1)
	})

	t.Run("unchanged values keep their own name and value", func(t *testing.T) {
		f := newFixture(t)
		k := f.create(t, "k1", "v1", "ops", f.db01)

		_, err := NewUpdateDigitalKeyUseCase(f.keys, f.machines, f.store, f.log).Execute(ctx, UpdateDigitalKeyCommand{
			ID: k.ID, KeyName: "k1", KeyValue: "v1", Owner: "ops", MachineID: f.db01,
		})
		require.NoError(t, err)
	})

	t.Run("rejections", func(t *testing.T) {
		f := newFixture(t)
		k1 := f.create(t, "k1", "v1", "ops", f.db01)
		f.create(t, "k2", "v2", "ops", f.db01)
		store := &stubMirror{}
		uc := NewUpdateDigitalKeyUseCase(f.keys, f.machines, store, f.log)

		_, err := uc.Execute(ctx, UpdateDigitalKeyCommand{ID: 404, KeyName: "x", KeyValue: "x", Owner: "ops", MachineID: f.db01})
		assert.ErrorIs(t, err, digitalkey.ErrKeyNotFound)

		_, err = uc.Execute(ctx, UpdateDigitalKeyCommand{ID: k1.ID, KeyName: "k1", KeyValue: "v1", Owner: "ops", MachineID: 404})
		assert.ErrorIs(t, err, digitalkey.ErrUnknownMachine)

		_, err = uc.Execute(ctx, UpdateDigitalKeyCommand{ID: k1.ID, KeyName: "k2", KeyValue: "v1", Owner: "ops", MachineID: f.db01})
		assert.ErrorIs(t, err, digitalkey.ErrKeyNameExists)

		_, err = uc.Execute(ctx, UpdateDigitalKeyCommand{ID: k1.ID, KeyName: "k1", KeyValue: "v2", Owner: "ops", MachineID: f.db01})
		assert.ErrorIs(t, err, digitalkey.ErrKeyValueExists)

		assert.Zero(t, store.writes)
		assert.Empty(t, store.deletes)
	})

	t.Run("mirror failure does not fail the update", func(t *testing.T) {
		f := newFixture(t)
		k := f.create(t, "k1", "v1", "ops", f.db01)
		store := &stubMirror{}

		_, err := NewUpdateDigitalKeyUseCase(f.keys, f.machines, store, f.log).Execute(ctx, UpdateDigitalKeyCommand{
			ID: k.ID, KeyName: "k1-new", KeyValue: "v1", Owner: "ops", MachineID: f.db01,
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"k1"}, store.deletes)
		assert.Equal(t, 1, store.writes)
	})
}

func TestDeleteDigitalKeyUseCase(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	k := f.create(t, "k1", "v1", "ops", f.db01)
	uc := NewDeleteDigitalKeyUseCase(f.keys, f.store, f.log)

	require.NoError(t, uc.Execute(ctx, k.ID))

	_, ok := f.store.Read(ctx, mirror.BucketDigitalKeys, k.ID, "k1")
	assert.False(t, ok)
	stored, err := f.keys.GetByID(ctx, k.ID)
	require.NoError(t, err)
	assert.Nil(t, stored)

	assert.ErrorIs(t, uc.Execute(ctx, k.ID), digitalkey.ErrKeyNotFound)
}

func TestMirroredKeys(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	k1 := f.create(t, "k1", "v1", "ops", f.db01)
	f.create(t, "k2", "v2", "ops", f.db02)

	records := NewListMirroredKeysUseCase(f.store, f.log).Execute(ctx)
	assert.Len(t, records, 2)

	download := NewDownloadMirroredKeyUseCase(f.store, f.log)
	rec, err := download.Execute(ctx, k1.ID, "k1")
	require.NoError(t, err)
	assert.Equal(t, "v1", rec.OriginalData.KeyValue)

	_, err = download.Execute(ctx, k1.ID, "k2")
	assert.ErrorIs(t, err, mirror.ErrSnapshotNotFound)
}
