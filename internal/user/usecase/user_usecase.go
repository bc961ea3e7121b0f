// Package usecase implements business logic orchestration for user accounts.
package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/workshop-users/internal/auth/domain"
	authService "github.com/allisson/workshop-users/internal/auth/service"
	"github.com/allisson/workshop-users/internal/database"
	"github.com/allisson/workshop-users/internal/user/domain"
	appValidation "github.com/allisson/workshop-users/internal/validation"
)

// userUseCase implements UserUseCase.
type userUseCase struct {
	txManager      database.TxManager
	userRepo       UserRepository
	passwordHasher authService.PasswordHasher
	roleModel      *authDomain.RoleModel
	now            func() time.Time
}

// NewUserUseCase creates a new UserUseCase with the provided dependencies.
func NewUserUseCase(
	txManager database.TxManager,
	userRepo UserRepository,
	passwordHasher authService.PasswordHasher,
	roleModel *authDomain.RoleModel,
) UserUseCase {
	return &userUseCase{
		txManager:      txManager,
		userRepo:       userRepo,
		passwordHasher: passwordHasher,
		roleModel:      roleModel,
		now:            time.Now,
	}
}

// Create normalizes and validates the input, then stores the account inside a
// transaction. The existence checks give a clean conflict for the common case;
// the unique indexes still catch concurrent inserts.
func (u *userUseCase) Create(ctx context.Context, input *domain.CreateUserInput) (*domain.User, error) {
	normalized := domain.CreateUserInput{
		Username: strings.TrimSpace(input.Username),
		Email:    strings.ToLower(strings.TrimSpace(input.Email)),
		Password: input.Password,
		Roles:    input.Roles,
	}
	if err := normalized.Validate(); err != nil {
		return nil, appValidation.WrapValidationError(err)
	}

	roles, err := u.roleModel.ParseRoles(normalized.Roles)
	if err != nil {
		return nil, err
	}

	hash, err := u.passwordHasher.Hash(normalized.Password)
	if err != nil {
		return nil, err
	}

	now := u.now().UTC()
	user := &domain.User{
		ID:        uuid.Must(uuid.NewV7()),
		Username:  normalized.Username,
		Email:     normalized.Email,
		Password:  hash,
		Roles:     roles,
		Enabled:   true,
		Locked:    false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = u.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := u.ensureAvailable(ctx, user.Email, user.Username); err != nil {
			return err
		}
		return u.userRepo.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Get retrieves a user by ID.
func (u *userUseCase) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return u.userRepo.GetByID(ctx, id)
}

// List retrieves users ordered by ID descending with pagination support.
func (u *userUseCase) List(ctx context.Context, offset, limit int) ([]*domain.User, error) {
	return u.userRepo.List(ctx, offset, limit)
}

// Delete removes a user.
func (u *userUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	return u.userRepo.Delete(ctx, id)
}

func (u *userUseCase) ensureAvailable(ctx context.Context, email, username string) error {
	if _, err := u.userRepo.GetByEmail(ctx, email); err == nil {
		return domain.ErrUserAlreadyExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	if _, err := u.userRepo.GetByUsername(ctx, username); err == nil {
		return domain.ErrUserAlreadyExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	return nil
}
