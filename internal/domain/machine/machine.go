// Package machine provides the resource side of an access grant.
package machine

import (
	"fmt"
	"strings"
	"time"
)

// MachineType classifies a machine.
type MachineType string

const (
	MachineTypeServer      MachineType = "server"
	MachineTypeWorkstation MachineType = "workstation"
	MachineTypeIoTDevice   MachineType = "iot_device"
	MachineTypeDatabase    MachineType = "database"
	MachineTypeStorage     MachineType = "storage"
	MachineTypeOther       MachineType = "other"
)

var validMachineTypes = map[MachineType]bool{
	MachineTypeServer:      true,
	MachineTypeWorkstation: true,
	MachineTypeIoTDevice:   true,
	MachineTypeDatabase:    true,
	MachineTypeStorage:     true,
	MachineTypeOther:       true,
}

func (t MachineType) IsValid() bool {
	return validMachineTypes[t]
}

func (t MachineType) String() string {
	return string(t)
}

// Machine is a named resource. Deactivating it does not touch the
// permissions that reference it.
type Machine struct {
	id          uint
	name        string
	machineType MachineType
	ipAddress   string
	description string
	isActive    bool
	createdAt   time.Time
	updatedAt   time.Time
}

// NewMachine creates an active machine.
func NewMachine(name string, machineType MachineType, ipAddress, description string) (*Machine, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("machine name is required")
	}
	if !machineType.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidMachineType, machineType)
	}

	now := time.Now().UTC()
	return &Machine{
		name:        name,
		machineType: machineType,
		ipAddress:   strings.TrimSpace(ipAddress),
		description: description,
		isActive:    true,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructMachine reconstructs a machine from persistence
func ReconstructMachine(
	id uint,
	name string,
	machineType string,
	ipAddress string,
	description string,
	isActive bool,
	createdAt, updatedAt time.Time,
) (*Machine, error) {
	if id == 0 {
		return nil, fmt.Errorf("machine ID cannot be zero")
	}
	t := MachineType(machineType)
	if !t.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidMachineType, machineType)
	}
	return &Machine{
		id:          id,
		name:        name,
		machineType: t,
		ipAddress:   ipAddress,
		description: description,
		isActive:    isActive,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (m *Machine) ID() uint                 { return m.id }
func (m *Machine) Name() string             { return m.name }
func (m *Machine) MachineType() MachineType { return m.machineType }
func (m *Machine) IPAddress() string        { return m.ipAddress }
func (m *Machine) Description() string      { return m.description }
func (m *Machine) IsActive() bool           { return m.isActive }
func (m *Machine) CreatedAt() time.Time     { return m.createdAt }
func (m *Machine) UpdatedAt() time.Time     { return m.updatedAt }

// SetID sets the machine ID (only for persistence layer use)
func (m *Machine) SetID(id uint) error {
	if m.id != 0 {
		return fmt.Errorf("machine ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("machine ID cannot be zero")
	}
	m.id = id
	return nil
}

func (m *Machine) UpdateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("machine name cannot be empty")
	}
	if m.name == name {
		return nil
	}
	m.name = name
	m.touch()
	return nil
}

func (m *Machine) ChangeType(machineType MachineType) error {
	if !machineType.IsValid() {
		return fmt.Errorf("%w: %s", ErrInvalidMachineType, machineType)
	}
	if m.machineType == machineType {
		return nil
	}
	m.machineType = machineType
	m.touch()
	return nil
}

func (m *Machine) UpdateIPAddress(ip string) {
	ip = strings.TrimSpace(ip)
	if m.ipAddress == ip {
		return
	}
	m.ipAddress = ip
	m.touch()
}

func (m *Machine) UpdateDescription(description string) {
	if m.description == description {
		return
	}
	m.description = description
	m.touch()
}

func (m *Machine) Activate() {
	if m.isActive {
		return
	}
	m.isActive = true
	m.touch()
}

func (m *Machine) Deactivate() {
	if !m.isActive {
		return
	}
	m.isActive = false
	m.touch()
}

func (m *Machine) touch() {
	m.updatedAt = time.Now().UTC()
}
