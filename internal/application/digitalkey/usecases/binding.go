package usecases

import (
	"errors"
	"fmt"

	"keygate/internal/domain/digitalkey"
	"keygate/internal/domain/machine"
)

// bindingError turns a missing machine into ErrUnknownMachine so the key
// request is reported as invalid rather than as a missing resource.
func bindingError(machineID uint, err error) error {
	if errors.Is(err, machine.ErrMachineNotFound) {
		return fmt.Errorf("%w: machine %d: %w", digitalkey.ErrUnknownMachine, machineID, err)
	}
	return fmt.Errorf("failed to validate machine binding: %w", err)
}
