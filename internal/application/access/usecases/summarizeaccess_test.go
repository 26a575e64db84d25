package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keygate/internal/domain/machine"
	"keygate/internal/domain/user"
)

func TestSummarizeUserAccessUseCase(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	u, m, k := h.triple(t)
	gone := h.seedMachine(t, "decommissioned")
	goneKey := h.seedKey(t, "decommissioned-key", gone.ID())

	_, err := h.grant(nil).Execute(ctx, GrantAccessCommand{UserID: u.ID(), MachineID: m.ID(), DigitalKeyID: k.ID(), PermissionLevel: "write"})
	require.NoError(t, err)
	_, err = h.grant(nil).Execute(ctx, GrantAccessCommand{UserID: u.ID(), MachineID: gone.ID(), DigitalKeyID: goneKey.ID()})
	require.NoError(t, err)
	require.NoError(t, h.machines.Delete(ctx, gone.ID()))

	uc := NewSummarizeUserAccessUseCase(h.permissions, h.users, h.machines, h.log)
	entries, err := uc.Execute(ctx, u.ID())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "alice", entries[0].Username)
	assert.Equal(t, "db-01", entries[0].MachineName)
	assert.Equal(t, "write", entries[0].PermissionLevel)
	assert.True(t, entries[0].IsActive)

	_, err = uc.Execute(ctx, 999)
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestSummarizeMachineAccessUseCase(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	u, m, k := h.triple(t)
	leaver := h.seedUser(t, "leaver")

	_, err := h.grant(nil).Execute(ctx, GrantAccessCommand{UserID: u.ID(), MachineID: m.ID(), DigitalKeyID: k.ID()})
	require.NoError(t, err)
	_, err = h.grant(nil).Execute(ctx, GrantAccessCommand{UserID: leaver.ID(), MachineID: m.ID(), DigitalKeyID: k.ID()})
	require.NoError(t, err)
	require.NoError(t, h.users.Delete(ctx, leaver.ID()))

	uc := NewSummarizeMachineAccessUseCase(h.permissions, h.users, h.machines, h.log)
	entries, err := uc.Execute(ctx, m.ID())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "alice", entries[0].Username)
	assert.Equal(t, "operator", entries[0].UserType)

	_, err = uc.Execute(ctx, 999)
	assert.ErrorIs(t, err, machine.ErrMachineNotFound)
}
