// Package usecase implements business logic orchestration for authentication operations.
package usecase

import (
	"context"
	"errors"
	"strings"

	authDomain "github.com/allisson/workshop-users/internal/auth/domain"
	authService "github.com/allisson/workshop-users/internal/auth/service"
	userDomain "github.com/allisson/workshop-users/internal/user/domain"
)

// authUseCase implements AuthUseCase on top of the account store, the password
// hasher and the token codec.
type authUseCase struct {
	userRepo       UserRepository
	passwordHasher authService.PasswordHasher
	tokenCodec     authService.TokenCodec
	roleModel      *authDomain.RoleModel
	lookup         authDomain.LoginLookup
}

// NewAuthUseCase creates a new AuthUseCase. An empty lookup defaults to email.
func NewAuthUseCase(
	userRepo UserRepository,
	passwordHasher authService.PasswordHasher,
	tokenCodec authService.TokenCodec,
	roleModel *authDomain.RoleModel,
	lookup authDomain.LoginLookup,
) AuthUseCase {
	if lookup == "" {
		lookup = authDomain.LookupByEmail
	}
	return &authUseCase{
		userRepo:       userRepo,
		passwordHasher: passwordHasher,
		tokenCodec:     tokenCodec,
		roleModel:      roleModel,
		lookup:         lookup,
	}
}

// Authenticate resolves the account by the configured identifier and verifies the password.
//
// Security Notes:
//   - A missing account still costs one full hash comparison so response timing does
//     not reveal which identifiers exist
//   - Account status is checked after the password, so only the account owner can
//     learn that an account is disabled or locked
//   - The stored hash never leaves this method
func (a *authUseCase) Authenticate(
	ctx context.Context,
	identifier, password string,
) (*authDomain.Principal, error) {
	user, err := a.findUser(ctx, identifier)
	if err != nil {
		if errors.Is(err, userDomain.ErrUserNotFound) {
			a.passwordHasher.CompareDummy(password)
			return nil, authDomain.ErrBadCredentials
		}
		return nil, err
	}

	if !a.passwordHasher.Compare(password, user.Password) {
		return nil, authDomain.ErrBadCredentials
	}

	if !user.Enabled {
		return nil, authDomain.ErrAccountDisabled
	}
	if user.Locked {
		return nil, authDomain.ErrAccountLocked
	}

	authorities, err := a.roleModel.AuthoritiesForRoles(user.Roles)
	if err != nil {
		return nil, err
	}

	return &authDomain.Principal{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		Roles:       append([]authDomain.Role(nil), user.Roles...),
		Authorities: authorities,
	}, nil
}

// Login authenticates the credentials and signs a token for the resulting principal.
func (a *authUseCase) Login(
	ctx context.Context,
	input *authDomain.LoginInput,
) (*authDomain.LoginOutput, error) {
	principal, err := a.Authenticate(ctx, input.Identifier, input.Password)
	if err != nil {
		return nil, err
	}

	token, err := a.tokenCodec.Issue(principal)
	if err != nil {
		return nil, err
	}

	return &authDomain.LoginOutput{
		Principal: principal,
		Token:     token,
	}, nil
}

// Introspect verifies token through the codec.
func (a *authUseCase) Introspect(ctx context.Context, token string) (*authDomain.TokenClaims, error) {
	if strings.TrimSpace(token) == "" {
		return nil, authDomain.ErrTokenMissing
	}
	return a.tokenCodec.Parse(token)
}

func (a *authUseCase) findUser(ctx context.Context, identifier string) (*userDomain.User, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, userDomain.ErrUserNotFound
	}

	if a.lookup == authDomain.LookupByUsername {
		return a.userRepo.GetByUsername(ctx, identifier)
	}
	return a.userRepo.GetByEmail(ctx, strings.ToLower(identifier))
}
