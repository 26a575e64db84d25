package usecases

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keygate/internal/domain/access"
	"keygate/internal/domain/digitalkey"
	"keygate/internal/domain/machine"
	"keygate/internal/domain/mirror"
	"keygate/internal/domain/user"
	apperrors "keygate/internal/shared/errors"
)

func TestGrantAccessUseCase_Success(t *testing.T) {
	h := newHarness(t)
	u, m, k := h.triple(t)
	ctx := context.Background()

	result, err := h.grant(nil).Execute(ctx, GrantAccessCommand{
		UserID:       u.ID(),
		MachineID:    m.ID(),
		DigitalKeyID: k.ID(),
	})
	require.NoError(t, err)

	assert.NotZero(t, result.ID)
	assert.Equal(t, "read", result.PermissionLevel)
	assert.True(t, result.IsActive)
	assert.Nil(t, result.RevokedAt)

	snap, ok := h.store.Read(ctx, mirror.BucketPermissions, result.ID, "")
	require.True(t, ok)

	var rec mirror.PermissionRecord
	require.NoError(t, snap.Decode(&rec))
	assert.NotNil(t, rec.UploadedAt)
	assert.Nil(t, rec.UpdatedAt)
	assert.Equal(t, mirror.PermissionData{
		UserID:          u.ID(),
		MachineID:       m.ID(),
		DigitalKeyID:    k.ID(),
		PermissionLevel: "read",
		IsActive:        true,
		CreatedAt:       rec.OriginalData.CreatedAt,
	}, rec.OriginalData)
}

func TestGrantAccessUseCase_CheckOrder(t *testing.T) {
	h := newHarness(t)
	u, m, _ := h.triple(t)
	other := h.seedMachine(t, "db-02")
	otherKey := h.seedKey(t, "db-02-key", other.ID())

	tests := []struct {
		name    string
		cmd     GrantAccessCommand
		wantErr error
	}{
		{
			name:    "everything missing reports the user first",
			cmd:     GrantAccessCommand{UserID: 900, MachineID: 901, DigitalKeyID: 902},
			wantErr: user.ErrUserNotFound,
		},
		{
			name:    "missing machine before missing key",
			cmd:     GrantAccessCommand{UserID: u.ID(), MachineID: 901, DigitalKeyID: 902},
			wantErr: machine.ErrMachineNotFound,
		},
		{
			name:    "missing key",
			cmd:     GrantAccessCommand{UserID: u.ID(), MachineID: m.ID(), DigitalKeyID: 902},
			wantErr: digitalkey.ErrKeyNotFound,
		},
		{
			name:    "key bound to another machine",
			cmd:     GrantAccessCommand{UserID: u.ID(), MachineID: m.ID(), DigitalKeyID: otherKey.ID()},
			wantErr: access.ErrKeyMachineMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockMirrorStore{}
			_, err := h.grant(store).Execute(context.Background(), tt.cmd)

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, store.writeCount(), "failed grant must not write the mirror")
		})
	}

	all, err := h.permissions.ListByUser(context.Background(), u.ID(), false)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestGrantAccessUseCase_MismatchCarriesMachineIDs(t *testing.T) {
	h := newHarness(t)
	u, m, _ := h.triple(t)
	other := h.seedMachine(t, "db-02")
	otherKey := h.seedKey(t, "db-02-key", other.ID())

	_, err := h.grant(nil).Execute(context.Background(), GrantAccessCommand{
		UserID:       u.ID(),
		MachineID:    m.ID(),
		DigitalKeyID: otherKey.ID(),
	})

	var mismatch *access.KeyMachineMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, other.ID(), mismatch.KeyMachineID)
	assert.Equal(t, m.ID(), mismatch.RequestedMachineID)
}

func TestGrantAccessUseCase_Validation(t *testing.T) {
	h := newHarness(t)

	_, err := h.grant(nil).Execute(context.Background(), GrantAccessCommand{UserID: 1, MachineID: 1, DigitalKeyID: 1, PermissionLevel: "root"})
	assert.True(t, apperrors.IsValidationError(err))

	_, err = h.grant(nil).Execute(context.Background(), GrantAccessCommand{MachineID: 1, DigitalKeyID: 1})
	assert.True(t, apperrors.IsValidationError(err))
}

func TestGrantAccessUseCase_RegrantAfterRevoke(t *testing.T) {
	h := newHarness(t)
	u, m, k := h.triple(t)
	ctx := context.Background()
	grant := h.grant(nil)
	cmd := GrantAccessCommand{UserID: u.ID(), MachineID: m.ID(), DigitalKeyID: k.ID(), PermissionLevel: "write"}

	first, err := grant.Execute(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, "write", first.PermissionLevel)

	_, err = grant.Execute(ctx, cmd)
	assert.ErrorIs(t, err, access.ErrDuplicateActiveGrant)

	revoked, err := NewRevokePermissionUseCase(h.permissions, h.store, false, h.log).Execute(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, revoked.IsActive)
	require.NotNil(t, revoked.RevokedAt)

	second, err := grant.Execute(ctx, cmd)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.True(t, second.IsActive)
}

func TestGrantAccessUseCase_MirrorFailureDoesNotFailGrant(t *testing.T) {
	h := newHarness(t)
	u, m, k := h.triple(t)
	store := &mockMirrorStore{
		WriteFunc: func(context.Context, mirror.Bucket, uint, string, mirror.Record) bool { return false },
	}

	result, err := h.grant(store).Execute(context.Background(), GrantAccessCommand{
		UserID:       u.ID(),
		MachineID:    m.ID(),
		DigitalKeyID: k.ID(),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, store.writeCount())

	stored, err := h.permissions.GetByID(context.Background(), result.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, stored.IsActive())
}

func TestGrantAccessUseCase_LockUnavailable(t *testing.T) {
	h := newHarness(t)
	u, m, k := h.triple(t)
	store := &mockMirrorStore{}

	uc := NewGrantAccessUseCase(h.permissions, h.users, h.machines, h.keys, failingLocker{}, store, h.log)
	_, err := uc.Execute(context.Background(), GrantAccessCommand{UserID: u.ID(), MachineID: m.ID(), DigitalKeyID: k.ID()})

	assert.ErrorIs(t, err, access.ErrGrantLockUnavailable)
	assert.Zero(t, store.writeCount())

	all, err := h.permissions.ListByUser(context.Background(), u.ID(), false)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestGrantAccessUseCase_ConcurrentGrantsForOnePair(t *testing.T) {
	h := newHarness(t)
	u, m, k := h.triple(t)
	grant := h.grant(nil)
	cmd := GrantAccessCommand{UserID: u.ID(), MachineID: m.ID(), DigitalKeyID: k.ID()}

	const callers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		dupes     int
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := grant.Execute(context.Background(), cmd)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, access.ErrDuplicateActiveGrant):
				dupes++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, callers-1, dupes)

	active, err := h.permissions.ListByMachine(context.Background(), m.ID(), true)
	require.NoError(t, err)
	assert.Len(t, active, 1)
}
