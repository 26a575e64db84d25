package access

import (
	"errors"
	"fmt"
)

var (
	ErrPermissionNotFound   = errors.New("permission not found")
	ErrDuplicateActiveGrant = errors.New("user already has active permission for this machine")
	ErrKeyMachineMismatch   = errors.New("digital key does not belong to the specified machine")
	ErrInvalidLevel         = errors.New("invalid permission level")
	ErrGrantLockUnavailable = errors.New("grant lock unavailable")
)

// KeyMachineMismatchError carries the two machine IDs that disagreed.
type KeyMachineMismatchError struct {
	KeyID              uint
	KeyMachineID       uint
	RequestedMachineID uint
}

func (e *KeyMachineMismatchError) Error() string {
	return fmt.Sprintf("digital key %d is bound to machine %d, not machine %d",
		e.KeyID, e.KeyMachineID, e.RequestedMachineID)
}

func (e *KeyMachineMismatchError) Is(target error) bool {
	return target == ErrKeyMachineMismatch
}
