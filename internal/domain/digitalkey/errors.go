package digitalkey

import "errors"

var (
	ErrKeyNotFound    = errors.New("digital key not found")
	ErrKeyNameExists  = errors.New("key name already exists")
	ErrKeyValueExists = errors.New("key value already exists")
	ErrInvalidKeyName = errors.New("key name must not contain path separators or be . or ..")

	// ErrUnknownMachine is returned when a key is created or rebound to a
	// machine that does not exist.
	ErrUnknownMachine = errors.New("digital key references a machine that does not exist")
)
