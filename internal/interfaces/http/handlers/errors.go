package handlers

import (
	stderrors "errors"

	"github.com/gin-gonic/gin"

	"keygate/internal/domain/access"
	"keygate/internal/domain/digitalkey"
	"keygate/internal/domain/machine"
	"keygate/internal/domain/mirror"
	"keygate/internal/domain/user"
	"keygate/internal/shared/errors"
	"keygate/internal/shared/utils"
)

var (
	notFoundErrors = []error{
		user.ErrUserNotFound,
		machine.ErrMachineNotFound,
		digitalkey.ErrKeyNotFound,
		access.ErrPermissionNotFound,
		mirror.ErrSnapshotNotFound,
	}
	conflictErrors = []error{
		user.ErrUsernameExists,
		user.ErrEmailExists,
		machine.ErrMachineNameExists,
		digitalkey.ErrKeyNameExists,
		digitalkey.ErrKeyValueExists,
		access.ErrDuplicateActiveGrant,
	}
	validationErrors = []error{
		user.ErrInvalidUserType,
		machine.ErrInvalidMachineType,
		access.ErrInvalidLevel,
		digitalkey.ErrInvalidKeyName,
	}
)

// toAppError classifies domain errors for the transport. AppErrors pass
// through and anything unrecognised stays internal.
func toAppError(err error) error {
	if errors.GetAppError(err) != nil {
		return err
	}

	// Checked before not-found: a key pointing at a missing machine is a bad
	// request, not a missing resource.
	if stderrors.Is(err, digitalkey.ErrUnknownMachine) {
		return errors.NewBadRequestError(err.Error())
	}
	// A key bound to another machine is a malformed grant request rather
	// than a state conflict; existing clients expect 400 here.
	if stderrors.Is(err, access.ErrKeyMachineMismatch) {
		return errors.NewBadRequestError(err.Error())
	}
	if stderrors.Is(err, access.ErrGrantLockUnavailable) {
		return errors.NewUnavailableError(access.ErrGrantLockUnavailable.Error())
	}
	if matchAny(err, notFoundErrors) {
		return errors.NewNotFoundError(err.Error())
	}
	if matchAny(err, conflictErrors) {
		return errors.NewConflictError(err.Error())
	}
	if matchAny(err, validationErrors) {
		return errors.NewValidationError(err.Error())
	}
	return err
}

func matchAny(err error, targets []error) bool {
	for _, target := range targets {
		if stderrors.Is(err, target) {
			return true
		}
	}
	return false
}

func respondError(c *gin.Context, err error) {
	_ = c.Error(err)
	utils.ErrorResponseWithError(c, toAppError(err))
}

// bindJSON decodes the body into req and answers 400 on failure.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return false
	}
	return true
}
