package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"keygate/internal/domain/access"
	"keygate/internal/domain/digitalkey"
	"keygate/internal/domain/machine"
	"keygate/internal/domain/mirror"
	"keygate/internal/domain/user"
	"keygate/internal/infrastructure/lock"
	"keygate/internal/infrastructure/mirrorstore"
	"keygate/internal/infrastructure/repository"
	"keygate/internal/shared/config"
	"keygate/internal/shared/logger"
	"keygate/internal/shared/testutil"
)

// harness wires the use cases to SQLite repositories, a file mirror in a
// temp dir and an in-process locker.
type harness struct {
	permissions access.Repository
	users       user.Repository
	machines    machine.Repository
	keys        digitalkey.Repository
	store       *mirrorstore.FileStore
	locker      *lock.LocalLocker
	log         logger.Interface
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db := testutil.NewTestDB(t)
	log := logger.NewNopLogger()
	return &harness{
		permissions: repository.NewPermissionRepository(db, log),
		users:       repository.NewUserRepository(db, log),
		machines:    repository.NewMachineRepository(db, log),
		keys:        repository.NewDigitalKeyRepository(db, log),
		store: mirrorstore.NewFileStore(config.MirrorConfig{
			Root:              t.TempDir(),
			KeysBucket:        "digital-keys",
			PermissionsBucket: "permissions",
		}, log),
		locker: lock.NewLocalLocker(time.Second),
		log:    log,
	}
}

func (h *harness) grant(store mirror.Store) *GrantAccessUseCase {
	if store == nil {
		store = h.store
	}
	return NewGrantAccessUseCase(h.permissions, h.users, h.machines, h.keys, h.locker, store, h.log)
}

func (h *harness) seedUser(t *testing.T, username string) *user.User {
	t.Helper()
	u, err := user.NewUser(username, username+"@example.com", user.UserTypeOperator)
	require.NoError(t, err)
	require.NoError(t, h.users.Create(context.Background(), u))
	return u
}

func (h *harness) seedMachine(t *testing.T, name string) *machine.Machine {
	t.Helper()
	m, err := machine.NewMachine(name, machine.MachineTypeDatabase, "10.0.0.5", "")
	require.NoError(t, err)
	require.NoError(t, h.machines.Create(context.Background(), m))
	return m
}

func (h *harness) seedKey(t *testing.T, name string, machineID uint) *digitalkey.DigitalKey {
	t.Helper()
	k, err := digitalkey.NewDigitalKey(name, "value-"+name, "ops", machineID)
	require.NoError(t, err)
	require.NoError(t, h.keys.Create(context.Background(), k))
	return k
}

// triple seeds a user, a machine and a key bound to it.
func (h *harness) triple(t *testing.T) (*user.User, *machine.Machine, *digitalkey.DigitalKey) {
	t.Helper()
	u := h.seedUser(t, "alice")
	m := h.seedMachine(t, "db-01")
	k := h.seedKey(t, "db-01-key", m.ID())
	return u, m, k
}
