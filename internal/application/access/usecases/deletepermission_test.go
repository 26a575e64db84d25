package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keygate/internal/domain/access"
	"keygate/internal/domain/mirror"
)

func TestDeletePermissionUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("removes row and snapshot", func(t *testing.T) {
		h := newHarness(t)
		granted := grantFor(t, h)

		require.NoError(t, NewDeletePermissionUseCase(h.permissions, h.store, h.log).Execute(ctx, granted.ID))

		stored, err := h.permissions.GetByID(ctx, granted.ID)
		require.NoError(t, err)
		assert.Nil(t, stored)

		_, ok := h.store.Read(ctx, mirror.BucketPermissions, granted.ID, "")
		assert.False(t, ok)
		assert.Empty(t, h.store.Index(ctx, mirror.BucketPermissions).Entries)
	})

	t.Run("missing snapshot does not fail the delete", func(t *testing.T) {
		h := newHarness(t)
		granted := grantFor(t, h)
		store := &mockMirrorStore{
			DeleteFunc: func(context.Context, mirror.Bucket, uint, string) bool { return false },
		}

		require.NoError(t, NewDeletePermissionUseCase(h.permissions, store, h.log).Execute(ctx, granted.ID))
		assert.Equal(t, 1, store.deleteCount())
	})

	t.Run("not found leaves the mirror alone", func(t *testing.T) {
		h := newHarness(t)
		store := &mockMirrorStore{}

		err := NewDeletePermissionUseCase(h.permissions, store, h.log).Execute(ctx, 99)
		assert.ErrorIs(t, err, access.ErrPermissionNotFound)
		assert.Zero(t, store.deleteCount())
	})
}
