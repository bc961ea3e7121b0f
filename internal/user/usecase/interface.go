// Package usecase defines business logic interfaces for user account management.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/allisson/workshop-users/internal/user/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context, offset, limit int) ([]*domain.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserUseCase manages user accounts.
type UserUseCase interface {
	// Create validates the input, hashes the password and stores an enabled account.
	// Returns ErrUserAlreadyExists when the email or username is taken and an error
	// wrapping ErrInvalidInput for invalid input or unknown roles.
	Create(ctx context.Context, input *domain.CreateUserInput) (*domain.User, error)

	// Get retrieves a user by ID. Returns ErrUserNotFound if it doesn't exist.
	Get(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// List retrieves users ordered by ID descending with pagination support.
	List(ctx context.Context, offset, limit int) ([]*domain.User, error)

	// Delete removes a user. Returns ErrUserNotFound if it doesn't exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
