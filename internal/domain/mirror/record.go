package mirror

import (
	"time"

	"keygate/internal/domain/access"
	"keygate/internal/domain/digitalkey"
)

// Record is a snapshot payload. Stamp is called by the store on every
// write with the write time.
type Record interface {
	Stamp(at time.Time)
}

// KeyData is the key as it was submitted.
type KeyData struct {
	KeyName   string `json:"key_name"`
	KeyValue  string `json:"key_value"`
	Owner     string `json:"owner"`
	MachineID uint   `json:"machine_id"`
}

// KeyRecord is the snapshot of a digital key.
type KeyRecord struct {
	ID           uint      `json:"id"`
	KeyName      string    `json:"key_name"`
	Owner        string    `json:"owner"`
	UploadedAt   time.Time `json:"uploaded_at"`
	OriginalData KeyData   `json:"original_data"`
}

func NewKeyRecord(k *digitalkey.DigitalKey) *KeyRecord {
	return &KeyRecord{
		ID:      k.ID(),
		KeyName: k.Name(),
		Owner:   k.Owner(),
		OriginalData: KeyData{
			KeyName:   k.Name(),
			KeyValue:  k.Value(),
			Owner:     k.Owner(),
			MachineID: k.MachineID(),
		},
	}
}

func (r *KeyRecord) Stamp(at time.Time) {
	r.UploadedAt = at
}

// PermissionData is the permission state that triggered the write.
type PermissionData struct {
	UserID          uint       `json:"user_id"`
	MachineID       uint       `json:"machine_id"`
	DigitalKeyID    uint       `json:"digital_key_id"`
	PermissionLevel string     `json:"permission_level"`
	IsActive        bool       `json:"is_active"`
	CreatedAt       *time.Time `json:"created_at,omitempty"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
	RevokedAt       *time.Time `json:"revoked_at,omitempty"`
}

// PermissionRecord is the snapshot of a permission. A record built by
// NewPermissionUpload carries uploaded_at; one built by NewPermissionUpdate
// carries updated_at.
type PermissionRecord struct {
	ID              uint           `json:"id"`
	UserID          uint           `json:"user_id"`
	MachineID       uint           `json:"machine_id"`
	DigitalKeyID    uint           `json:"digital_key_id"`
	PermissionLevel string         `json:"permission_level"`
	IsActive        bool           `json:"is_active"`
	UploadedAt      *time.Time     `json:"uploaded_at,omitempty"`
	UpdatedAt       *time.Time     `json:"updated_at,omitempty"`
	RevokedAt       *time.Time     `json:"revoked_at,omitempty"`
	OriginalData    PermissionData `json:"original_data"`

	update bool
}

// NewPermissionUpload builds the record written when a permission is
// granted.
func NewPermissionUpload(p *access.Permission) *PermissionRecord {
	r := newPermissionRecord(p)
	created := p.CreatedAt()
	r.OriginalData.CreatedAt = &created
	return r
}

// NewPermissionUpdate builds the record written when a permission changes.
// The revocation time is included once the permission has been revoked.
func NewPermissionUpdate(p *access.Permission) *PermissionRecord {
	r := newPermissionRecord(p)
	r.update = true
	if rev := p.RevokedAt(); rev != nil {
		t := *rev
		r.RevokedAt = &t
		r.OriginalData.RevokedAt = &t
	}
	return r
}

func newPermissionRecord(p *access.Permission) *PermissionRecord {
	return &PermissionRecord{
		ID:              p.ID(),
		UserID:          p.UserID(),
		MachineID:       p.MachineID(),
		DigitalKeyID:    p.DigitalKeyID(),
		PermissionLevel: p.Level().String(),
		IsActive:        p.IsActive(),
		OriginalData: PermissionData{
			UserID:          p.UserID(),
			MachineID:       p.MachineID(),
			DigitalKeyID:    p.DigitalKeyID(),
			PermissionLevel: p.Level().String(),
			IsActive:        p.IsActive(),
		},
	}
}

func (r *PermissionRecord) Stamp(at time.Time) {
	if r.update {
		r.UpdatedAt = &at
		r.OriginalData.UpdatedAt = &at
		return
	}
	r.UploadedAt = &at
}
