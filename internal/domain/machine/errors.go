package machine

import "errors"

var (
	ErrMachineNotFound    = errors.New("machine not found")
	ErrMachineNameExists  = errors.New("machine name already exists")
	ErrInvalidMachineType = errors.New("invalid machine type")
)
