package user

import "context"

// Repository defines persistence operations for users. Getters return
// (nil, nil) when no user matches.
type Repository interface {
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
	// Delete removes the user row; permissions referencing it are left alone.
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, filter ListFilter) ([]*User, int64, error)
}

// ListFilter narrows List. Zero Page or PageSize returns every match.
type ListFilter struct {
	UserType *UserType
	Page     int
	PageSize int
}
