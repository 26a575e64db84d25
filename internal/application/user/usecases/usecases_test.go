package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keygate/internal/domain/user"
	"keygate/internal/infrastructure/repository"
	"keygate/internal/shared/errors"
	"keygate/internal/shared/logger"
	"keygate/internal/shared/testutil"
)

func newUserRepo(t *testing.T) user.Repository {
	t.Helper()
	return repository.NewUserRepository(testutil.NewTestDB(t), logger.NewNopLogger())
}

func strPtr(s string) *string { return &s }

func TestCreateUserUseCase(t *testing.T) {
	ctx := context.Background()
	repo := newUserRepo(t)
	uc := NewCreateUserUseCase(repo, logger.NewNopLogger())

	created, err := uc.Execute(ctx, CreateUserCommand{Username: "alice", Email: "alice@example.com"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "user", created.UserType)

	tests := []struct {
		name    string
		cmd     CreateUserCommand
		wantErr error
	}{
		{"duplicate username", CreateUserCommand{Username: "alice", Email: "other@example.com"}, user.ErrUsernameExists},
		{"duplicate email", CreateUserCommand{Username: "alice2", Email: "alice@example.com"}, user.ErrEmailExists},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(ctx, tt.cmd)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("validation", func(t *testing.T) {
		_, err := uc.Execute(ctx, CreateUserCommand{Username: "bob", Email: "not-an-email"})
		assert.True(t, errors.IsValidationError(err))

		_, err = uc.Execute(ctx, CreateUserCommand{Username: "bob", Email: "bob@example.com", UserType: "root"})
		assert.True(t, errors.IsValidationError(err))
	})
}

func TestGetUserUseCase(t *testing.T) {
	ctx := context.Background()
	repo := newUserRepo(t)
	created, err := NewCreateUserUseCase(repo, logger.NewNopLogger()).Execute(ctx, CreateUserCommand{
		Username: "alice", Email: "alice@example.com", UserType: "admin",
	})
	require.NoError(t, err)

	uc := NewGetUserUseCase(repo, logger.NewNopLogger())

	byID, err := uc.ExecuteByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "admin", byID.UserType)

	byName, err := uc.ExecuteByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)

	_, err = uc.ExecuteByID(ctx, 404)
	assert.ErrorIs(t, err, user.ErrUserNotFound)

	_, err = uc.ExecuteByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, user.ErrUserNotFound)

	_, err = uc.ExecuteByID(ctx, 0)
	assert.True(t, errors.IsValidationError(err))
}

func TestListUsersUseCase(t *testing.T) {
	ctx := context.Background()
	repo := newUserRepo(t)
	create := NewCreateUserUseCase(repo, logger.NewNopLogger())
	for _, c := range []CreateUserCommand{
		{Username: "alice", Email: "alice@example.com", UserType: "admin"},
		{Username: "bob", Email: "bob@example.com", UserType: "viewer"},
		{Username: "carol", Email: "carol@example.com", UserType: "admin"},
	} {
		_, err := create.Execute(ctx, c)
		require.NoError(t, err)
	}

	uc := NewListUsersUseCase(repo, logger.NewNopLogger())

	page, err := uc.Execute(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	require.Len(t, page.Users, 2)
	assert.Equal(t, "alice", page.Users[0].Username)

	admins, err := uc.ExecuteByType(ctx, "admin")
	require.NoError(t, err)
	assert.Len(t, admins, 2)

	owners, err := uc.ExecuteByType(ctx, "owner")
	require.NoError(t, err)
	assert.Empty(t, owners)

	_, err = uc.ExecuteByType(ctx, "root")
	assert.True(t, errors.IsValidationError(err))
}

func TestUpdateUserUseCase(t *testing.T) {
	ctx := context.Background()
	repo := newUserRepo(t)
	create := NewCreateUserUseCase(repo, logger.NewNopLogger())
	alice, err := create.Execute(ctx, CreateUserCommand{Username: "alice", Email: "alice@example.com"})
	require.NoError(t, err)
	_, err = create.Execute(ctx, CreateUserCommand{Username: "bob", Email: "bob@example.com"})
	require.NoError(t, err)

	uc := NewUpdateUserUseCase(repo, logger.NewNopLogger())

	updated, err := uc.Execute(ctx, UpdateUserCommand{ID: alice.ID, Email: strPtr("alice@corp.example.com"), UserType: strPtr("owner")})
	require.NoError(t, err)
	assert.Equal(t, "alice", updated.Username)
	assert.Equal(t, "alice@corp.example.com", updated.Email)
	assert.Equal(t, "owner", updated.UserType)

	unchanged, err := uc.Execute(ctx, UpdateUserCommand{ID: alice.ID, Username: strPtr("alice")})
	require.NoError(t, err)
	assert.Equal(t, "alice", unchanged.Username)

	_, err = uc.Execute(ctx, UpdateUserCommand{ID: alice.ID, Username: strPtr("bob")})
	assert.ErrorIs(t, err, user.ErrUsernameExists)

	_, err = uc.Execute(ctx, UpdateUserCommand{ID: alice.ID, Email: strPtr("bob@example.com")})
	assert.ErrorIs(t, err, user.ErrEmailExists)

	_, err = uc.Execute(ctx, UpdateUserCommand{ID: 404, Username: strPtr("ghost")})
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestDeleteUserUseCase(t *testing.T) {
	ctx := context.Background()
	repo := newUserRepo(t)
	alice, err := NewCreateUserUseCase(repo, logger.NewNopLogger()).Execute(ctx, CreateUserCommand{Username: "alice", Email: "alice@example.com"})
	require.NoError(t, err)

	uc := NewDeleteUserUseCase(repo, logger.NewNopLogger())
	require.NoError(t, uc.Execute(ctx, alice.ID))
	assert.ErrorIs(t, uc.Execute(ctx, alice.ID), user.ErrUserNotFound)
}
