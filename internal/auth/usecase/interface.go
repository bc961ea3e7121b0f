// Package usecase defines business logic interfaces for authentication operations.
package usecase

import (
	"context"

	authDomain "github.com/allisson/workshop-users/internal/auth/domain"
	userDomain "github.com/allisson/workshop-users/internal/user/domain"
)

// UserRepository is the read side of the account store used to resolve credentials.
// Both lookups return userDomain.ErrUserNotFound when no account matches.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*userDomain.User, error)
	GetByUsername(ctx context.Context, username string) (*userDomain.User, error)
}

// AuthUseCase authenticates credentials and issues and introspects tokens.
type AuthUseCase interface {
	// Authenticate verifies identifier and password and returns the principal with
	// authorities resolved from the stored roles.
	//
	// An unknown identifier and a wrong password both return ErrBadCredentials. A
	// disabled or locked account returns ErrAccountDisabled or ErrAccountLocked, but
	// only once the password has been verified.
	Authenticate(ctx context.Context, identifier, password string) (*authDomain.Principal, error)

	// Login authenticates the credentials and issues a token for the principal.
	Login(ctx context.Context, input *authDomain.LoginInput) (*authDomain.LoginOutput, error)

	// Introspect verifies token and returns its claims. A blank token returns
	// ErrTokenMissing. Other failures are the token codec errors.
	Introspect(ctx context.Context, token string) (*authDomain.TokenClaims, error)
}
