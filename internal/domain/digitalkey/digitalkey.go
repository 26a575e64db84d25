// Package digitalkey provides the credential that mediates an access grant.
// A key is bound to exactly one machine; its value is opaque.
package digitalkey

import (
	"fmt"
	"strings"
	"time"
)

// DigitalKey is a named credential issued for one machine. Owner is free
// text and is never resolved against users.
type DigitalKey struct {
	id        uint
	name      string
	value     string
	owner     string
	machineID uint
	createdAt time.Time
	updatedAt time.Time
}

// NewDigitalKey creates a key bound to machineID. The caller is expected
// to have checked that the machine exists.
func NewDigitalKey(name, value, owner string, machineID uint) (*DigitalKey, error) {
	if err := validateFields(name, value, owner, machineID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &DigitalKey{
		name:      strings.TrimSpace(name),
		value:     value,
		owner:     strings.TrimSpace(owner),
		machineID: machineID,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructDigitalKey reconstructs a key from persistence
func ReconstructDigitalKey(id uint, name, value, owner string, machineID uint, createdAt, updatedAt time.Time) (*DigitalKey, error) {
	if id == 0 {
		return nil, fmt.Errorf("digital key ID cannot be zero")
	}
	return &DigitalKey{
		id:        id,
		name:      name,
		value:     value,
		owner:     owner,
		machineID: machineID,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func (k *DigitalKey) ID() uint             { return k.id }
func (k *DigitalKey) Name() string         { return k.name }
func (k *DigitalKey) Value() string        { return k.value }
func (k *DigitalKey) Owner() string        { return k.owner }
func (k *DigitalKey) MachineID() uint      { return k.machineID }
func (k *DigitalKey) CreatedAt() time.Time { return k.createdAt }
func (k *DigitalKey) UpdatedAt() time.Time { return k.updatedAt }

// SetID sets the key ID (only for persistence layer use)
func (k *DigitalKey) SetID(id uint) error {
	if k.id != 0 {
		return fmt.Errorf("digital key ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("digital key ID cannot be zero")
	}
	k.id = id
	return nil
}

// IsBoundTo reports whether the key was issued for machineID.
func (k *DigitalKey) IsBoundTo(machineID uint) bool {
	return k.machineID == machineID
}

// Replace overwrites every mutable field. Rebinding to another machine is
// allowed; the caller re-validates the machine reference.
func (k *DigitalKey) Replace(name, value, owner string, machineID uint) error {
	if err := validateFields(name, value, owner, machineID); err != nil {
		return err
	}
	k.name = strings.TrimSpace(name)
	k.value = value
	k.owner = strings.TrimSpace(owner)
	k.machineID = machineID
	k.updatedAt = time.Now().UTC()
	return nil
}

func validateFields(name, value, owner string, machineID uint) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("key name is required")
	}
	if err := validateName(strings.TrimSpace(name)); err != nil {
		return err
	}
	if value == "" {
		return fmt.Errorf("key value is required")
	}
	if strings.TrimSpace(owner) == "" {
		return fmt.Errorf("owner is required")
	}
	if machineID == 0 {
		return fmt.Errorf("machine ID is required")
	}
	return nil
}

// validateName keeps a key name usable as a single file name segment in
// the mirror address.
func validateName(name string) error {
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidKeyName, name)
	}
	return nil
}
