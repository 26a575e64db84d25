// Package access models permissions: the grant of a scoped level to a user
// on a machine through a digital key bound to that machine.
package access

import (
	"fmt"
	"time"
)

// Permission links a user to a machine through a key.
//
// revokedAt is written only by Revoke; toggling is_active through
// SetActive leaves it alone.
type Permission struct {
	id           uint
	userID       uint
	machineID    uint
	digitalKeyID uint
	level        Level
	isActive     bool
	createdAt    time.Time
	updatedAt    time.Time
	revokedAt    *time.Time
}

// NewPermission creates an active, unrevoked permission. An empty level
// defaults to LevelRead.
func NewPermission(userID, machineID, digitalKeyID uint, level Level) (*Permission, error) {
	if userID == 0 || machineID == 0 || digitalKeyID == 0 {
		return nil, fmt.Errorf("user, machine and digital key IDs are required")
	}
	if level == "" {
		level = LevelRead
	}
	if !level.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidLevel, level)
	}

	now := time.Now().UTC()
	return &Permission{
		userID:       userID,
		machineID:    machineID,
		digitalKeyID: digitalKeyID,
		level:        level,
		isActive:     true,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructPermission reconstructs a permission from persistence
func ReconstructPermission(
	id, userID, machineID, digitalKeyID uint,
	level string,
	isActive bool,
	createdAt, updatedAt time.Time,
	revokedAt *time.Time,
) (*Permission, error) {
	if id == 0 {
		return nil, fmt.Errorf("permission ID cannot be zero")
	}
	l := Level(level)
	if !l.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidLevel, level)
	}
	return &Permission{
		id:           id,
		userID:       userID,
		machineID:    machineID,
		digitalKeyID: digitalKeyID,
		level:        l,
		isActive:     isActive,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
		revokedAt:    revokedAt,
	}, nil
}

func (p *Permission) ID() uint              { return p.id }
func (p *Permission) UserID() uint          { return p.userID }
func (p *Permission) MachineID() uint       { return p.machineID }
func (p *Permission) DigitalKeyID() uint    { return p.digitalKeyID }
func (p *Permission) Level() Level          { return p.level }
func (p *Permission) IsActive() bool        { return p.isActive }
func (p *Permission) CreatedAt() time.Time  { return p.createdAt }
func (p *Permission) UpdatedAt() time.Time  { return p.updatedAt }
func (p *Permission) RevokedAt() *time.Time { return p.revokedAt }

// IsRevoked reports whether the permission has ever been revoked.
func (p *Permission) IsRevoked() bool {
	return p.revokedAt != nil
}

// SetID sets the permission ID (only for persistence layer use)
func (p *Permission) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("permission ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("permission ID cannot be zero")
	}
	p.id = id
	return nil
}

func (p *Permission) ChangeLevel(level Level) error {
	if !level.IsValid() {
		return fmt.Errorf("%w: %s", ErrInvalidLevel, level)
	}
	if p.level == level {
		return nil
	}
	p.level = level
	p.touch()
	return nil
}

// SetActive flips is_active without recording a revocation.
func (p *Permission) SetActive(active bool) {
	if p.isActive == active {
		return
	}
	p.isActive = active
	p.touch()
}

// Revoke deactivates the permission and stamps revokedAt with at. Calling
// it on an already revoked permission stamps again.
func (p *Permission) Revoke(at time.Time) {
	at = at.UTC()
	p.isActive = false
	p.revokedAt = &at
	p.updatedAt = at
}

func (p *Permission) touch() {
	p.updatedAt = time.Now().UTC()
}
