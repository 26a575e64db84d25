package access

import (
	"context"
	"fmt"

	"keygate/internal/domain/digitalkey"
	"keygate/internal/domain/machine"
)

// BindingValidator enforces that a key only authorizes access to the
// machine it was issued for, and that keys reference existing machines.
type BindingValidator struct {
	machines machine.Repository
}

func NewBindingValidator(machines machine.Repository) *BindingValidator {
	return &BindingValidator{machines: machines}
}

// ValidateKeyCreation checks that machineID names an existing machine.
func (v *BindingValidator) ValidateKeyCreation(ctx context.Context, machineID uint) error {
	return v.machineExists(ctx, machineID)
}

// ValidateKeyUpdate checks the machine a key is being (re)bound to.
func (v *BindingValidator) ValidateKeyUpdate(ctx context.Context, newMachineID uint) error {
	return v.machineExists(ctx, newMachineID)
}

// ValidatePermissionBinding checks that key was issued for requestedMachineID.
func (v *BindingValidator) ValidatePermissionBinding(key *digitalkey.DigitalKey, requestedMachineID uint) error {
	if key.IsBoundTo(requestedMachineID) {
		return nil
	}
	return &KeyMachineMismatchError{
		KeyID:              key.ID(),
		KeyMachineID:       key.MachineID(),
		RequestedMachineID: requestedMachineID,
	}
}

func (v *BindingValidator) machineExists(ctx context.Context, machineID uint) error {
	m, err := v.machines.GetByID(ctx, machineID)
	if err != nil {
		return fmt.Errorf("failed to look up machine %d: %w", machineID, err)
	}
	if m == nil {
		return machine.ErrMachineNotFound
	}
	return nil
}
