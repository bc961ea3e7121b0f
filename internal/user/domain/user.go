// Package domain defines the user account entity and its errors.
package domain

import (
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	authDomain "github.com/allisson/workshop-users/internal/auth/domain"
	"github.com/allisson/workshop-users/internal/errors"
	customValidation "github.com/allisson/workshop-users/internal/validation"
)

// User is a stored account. Password holds the encoded hash, never the plain password.
type User struct {
	ID        uuid.UUID
	Username  string
	Email     string
	Password  string
	Roles     []authDomain.Role
	Enabled   bool
	Locked    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RoleNames returns the user's roles as plain strings.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, role := range u.Roles {
		names = append(names, string(role))
	}
	return names
}

// CreateUserInput contains the data required to create an account.
type CreateUserInput struct {
	Username string
	Email    string
	Password string
	Roles    []string
}

// Validate checks the account fields. Role names are resolved separately against
// the role model.
func (i *CreateUserInput) Validate() error {
	return validation.ValidateStruct(i,
		validation.Field(&i.Username,
			validation.Required,
			validation.Length(3, 64),
			customValidation.Username,
		),
		validation.Field(&i.Email,
			validation.Required,
			validation.Length(3, 255),
			customValidation.Email,
		),
		validation.Field(&i.Password,
			validation.Required,
			validation.Length(6, 128),
			customValidation.AccountPassword,
		),
		validation.Field(&i.Roles,
			validation.Required,
		),
	)
}

// Domain-specific errors for user operations.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrUserAlreadyExists indicates a user with the same email or username already exists.
	ErrUserAlreadyExists = errors.Wrap(errors.ErrConflict, "user already exists")
)
