package machine

import "context"

// Repository defines persistence operations for machines. Getters return
// (nil, nil) when no machine matches.
type Repository interface {
	Create(ctx context.Context, m *Machine) error
	Update(ctx context.Context, m *Machine) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Machine, error)
	GetByName(ctx context.Context, name string) (*Machine, error)
	List(ctx context.Context, filter ListFilter) ([]*Machine, int64, error)
}

// ListFilter narrows List. Zero Page or PageSize returns every match.
type ListFilter struct {
	MachineType *MachineType
	IsActive    *bool
	Page        int
	PageSize    int
}
