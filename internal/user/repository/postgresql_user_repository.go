// Package repository provides data persistence implementations for user accounts.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/allisson/workshop-users/internal/database"
	apperrors "github.com/allisson/workshop-users/internal/errors"
	"github.com/allisson/workshop-users/internal/user/domain"
)

const postgresUserColumns = `id, username, email, password, roles, enabled, locked, created_at, updated_at`

// PostgreSQLUserRepository implements User persistence for PostgreSQL.
// Uses native UUID and JSONB columns with transaction support via database.GetTx().
type PostgreSQLUserRepository struct {
	db *sql.DB
}

// NewPostgreSQLUserRepository creates a new PostgreSQL User repository.
func NewPostgreSQLUserRepository(db *sql.DB) *PostgreSQLUserRepository {
	return &PostgreSQLUserRepository{db: db}
}

// Create inserts a new User. Returns ErrUserAlreadyExists when the email or the
// username is already taken.
func (r *PostgreSQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	rolesJSON, err := marshalRoles(user.Roles)
	if err != nil {
		return err
	}

	query := `INSERT INTO users (id, username, email, password, roles, enabled, locked, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err = querier.ExecContext(
		ctx,
		query,
		user.ID,
		user.Username,
		user.Email,
		user.Password,
		string(rolesJSON),
		user.Enabled,
		user.Locked,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrUserAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create user")
	}
	return nil
}

// GetByID retrieves a User by ID. Returns ErrUserNotFound if no row matches.
func (r *PostgreSQLUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT ` + postgresUserColumns + ` FROM users WHERE id = $1`
	return r.getOne(ctx, "failed to get user by id", query, id)
}

// GetByEmail retrieves a User by email. The caller is expected to pass the
// lower-cased address.
func (r *PostgreSQLUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + postgresUserColumns + ` FROM users WHERE email = $1`
	return r.getOne(ctx, "failed to get user by email", query, email)
}

// GetByUsername retrieves a User by username.
func (r *PostgreSQLUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + postgresUserColumns + ` FROM users WHERE username = $1`
	return r.getOne(ctx, "failed to get user by username", query, username)
}

// List retrieves users ordered by ID descending with pagination support.
// Returns an empty slice when no users are found.
func (r *PostgreSQLUserRepository) List(ctx context.Context, offset, limit int) ([]*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + postgresUserColumns + `
			  FROM users
			  ORDER BY id DESC
			  LIMIT $1 OFFSET $2`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list users")
	}
	defer func() {
		_ = rows.Close()
	}()

	users := make([]*domain.User, 0)
	for rows.Next() {
		user, err := scanPostgreSQLUser(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan user row")
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "error iterating user rows")
	}

	return users, nil
}

// Delete removes the User with id. Returns ErrUserNotFound if no row was deleted.
func (r *PostgreSQLUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete user")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get affected rows")
	}
	if affected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *PostgreSQLUserRepository) getOne(
	ctx context.Context,
	errMessage, query string,
	args ...any,
) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	user, err := scanPostgreSQLUser(querier.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, errMessage)
	}
	return user, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPostgreSQLUser(row rowScanner) (*domain.User, error) {
	var user domain.User
	var rolesJSON []byte

	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.Password,
		&rolesJSON,
		&user.Enabled,
		&user.Locked,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	roles, err := unmarshalRoles(rolesJSON)
	if err != nil {
		return nil, err
	}
	user.Roles = roles

	return &user, nil
}
