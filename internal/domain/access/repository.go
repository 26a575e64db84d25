package access

import "context"

// Repository defines persistence operations for permissions. Getters return
// (nil, nil) when no permission matches.
type Repository interface {
	Create(ctx context.Context, p *Permission) error
	Update(ctx context.Context, p *Permission) error
	// Delete returns ErrPermissionNotFound when no row was removed.
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Permission, error)
	// FindActiveByUserMachine returns the active permission for the pair.
	FindActiveByUserMachine(ctx context.Context, userID, machineID uint) (*Permission, error)
	// FindLatestByUserMachine returns the most recently created permission
	// for the pair regardless of state.
	FindLatestByUserMachine(ctx context.Context, userID, machineID uint) (*Permission, error)
	ListByUser(ctx context.Context, userID uint, activeOnly bool) ([]*Permission, error)
	ListByMachine(ctx context.Context, machineID uint, activeOnly bool) ([]*Permission, error)
	List(ctx context.Context, page, pageSize int) ([]*Permission, int64, error)
}
