// Package user provides the actor side of an access grant.
package user

import (
	"fmt"
	"strings"
	"time"
)

// UserType is the role tag of a user.
type UserType string

const (
	UserTypeAdmin    UserType = "admin"
	UserTypeUser     UserType = "user"
	UserTypeOperator UserType = "operator"
	UserTypeViewer   UserType = "viewer"
	UserTypeOwner    UserType = "owner"
)

var validUserTypes = map[UserType]bool{
	UserTypeAdmin:    true,
	UserTypeUser:     true,
	UserTypeOperator: true,
	UserTypeViewer:   true,
	UserTypeOwner:    true,
}

// IsValid checks if the user type is one of the known roles
func (t UserType) IsValid() bool {
	return validUserTypes[t]
}

func (t UserType) String() string {
	return string(t)
}

// User is identified by a unique username and a unique email.
type User struct {
	id        uint
	username  string
	email     string
	userType  UserType
	createdAt time.Time
	updatedAt time.Time
}

// NewUser creates a new user. An empty userType defaults to UserTypeUser.
func NewUser(username, email string, userType UserType) (*User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if userType == "" {
		userType = UserTypeUser
	}
	if !userType.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidUserType, userType)
	}

	now := time.Now().UTC()
	return &User{
		username:  username,
		email:     email,
		userType:  userType,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructUser reconstructs a user from persistence
func ReconstructUser(id uint, username, email, userType string, createdAt, updatedAt time.Time) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	t := UserType(userType)
	if !t.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidUserType, userType)
	}
	return &User{
		id:        id,
		username:  username,
		email:     email,
		userType:  t,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func (u *User) ID() uint             { return u.id }
func (u *User) Username() string     { return u.username }
func (u *User) Email() string        { return u.email }
func (u *User) UserType() UserType   { return u.userType }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

// SetID sets the user ID (only for persistence layer use)
func (u *User) SetID(id uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("user ID cannot be zero")
	}
	u.id = id
	return nil
}

func (u *User) UpdateUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}
	if u.username == username {
		return nil
	}
	u.username = username
	u.touch()
	return nil
}

func (u *User) UpdateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}
	if u.email == email {
		return nil
	}
	u.email = email
	u.touch()
	return nil
}

func (u *User) ChangeType(userType UserType) error {
	if !userType.IsValid() {
		return fmt.Errorf("%w: %s", ErrInvalidUserType, userType)
	}
	if u.userType == userType {
		return nil
	}
	u.userType = userType
	u.touch()
	return nil
}

func (u *User) touch() {
	u.updatedAt = time.Now().UTC()
}
