package digitalkey

import "context"

// Repository defines persistence operations for digital keys. Getters
// return (nil, nil) when no key matches.
type Repository interface {
	Create(ctx context.Context, k *DigitalKey) error
	Update(ctx context.Context, k *DigitalKey) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*DigitalKey, error)
	GetByName(ctx context.Context, name string) (*DigitalKey, error)
	GetByValue(ctx context.Context, value string) (*DigitalKey, error)
	List(ctx context.Context, filter ListFilter) ([]*DigitalKey, error)
}

// ListFilter narrows List. Empty fields match everything.
type ListFilter struct {
	MachineID *uint
	Owner     string
}
