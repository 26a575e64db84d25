package handlers

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keygate/internal/domain/access"
	"keygate/internal/domain/digitalkey"
	"keygate/internal/domain/machine"
	"keygate/internal/domain/mirror"
	"keygate/internal/domain/user"
	"keygate/internal/interfaces/http/handlers/testutil"
	"keygate/internal/shared/errors"
)

func TestToAppError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"user not found", fmt.Errorf("get user: %w", user.ErrUserNotFound), http.StatusNotFound},
		{"machine not found", machine.ErrMachineNotFound, http.StatusNotFound},
		{"key not found", digitalkey.ErrKeyNotFound, http.StatusNotFound},
		{"permission not found", access.ErrPermissionNotFound, http.StatusNotFound},
		{"snapshot not found", mirror.ErrSnapshotNotFound, http.StatusNotFound},
		{"username taken", user.ErrUsernameExists, http.StatusConflict},
		{"machine name taken", machine.ErrMachineNameExists, http.StatusConflict},
		{"key value taken", digitalkey.ErrKeyValueExists, http.StatusConflict},
		{"duplicate grant", access.ErrDuplicateActiveGrant, http.StatusConflict},
		{"mismatch", &access.KeyMachineMismatchError{KeyID: 1, KeyMachineID: 2, RequestedMachineID: 3}, http.StatusBadRequest},
		{
			"unknown machine wins over not found",
			fmt.Errorf("%w: machine 9: %w", digitalkey.ErrUnknownMachine, machine.ErrMachineNotFound),
			http.StatusBadRequest,
		},
		{"lock unavailable", fmt.Errorf("%w: timeout", access.ErrGrantLockUnavailable), http.StatusServiceUnavailable},
		{"invalid level", access.ErrInvalidLevel, http.StatusBadRequest},
		{"invalid machine type", machine.ErrInvalidMachineType, http.StatusBadRequest},
		{"key name with separator", fmt.Errorf("%w: %q", digitalkey.ErrInvalidKeyName, "team/a"), http.StatusBadRequest},
		{"app error passes through", errors.NewValidationError("bad"), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := errors.GetAppError(toAppError(tt.err))
			require.NotNil(t, appErr)
			assert.Equal(t, tt.wantCode, appErr.Code)
		})
	}
}

func TestToAppError_UnknownStaysInternal(t *testing.T) {
	err := toAppError(stderrors.New("disk on fire"))
	assert.Nil(t, errors.GetAppError(err))

	c, w := testutil.NewTestContext(http.MethodGet, "/", nil)
	respondError(c, err)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRespondError_Envelope(t *testing.T) {
	c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/permissions/grant", nil)

	respondError(c, fmt.Errorf("grant: %w", access.ErrDuplicateActiveGrant))

	assert.Equal(t, http.StatusConflict, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "conflict", resp.Error.Type)
	assert.Contains(t, resp.Error.Message, "active permission")
}

func TestBindJSON_RejectsMalformedBody(t *testing.T) {
	c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/users", `{"username":`)

	var req struct {
		Username string `json:"username" binding:"required"`
	}
	assert.False(t, bindJSON(c, &req))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "validation_error", resp.Error.Type)
}
