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

const mysqlUserColumns = `id, username, email, password, roles, enabled, locked, created_at, updated_at`

// MySQLUserRepository implements User persistence for MySQL.
// Uses BINARY(16) for UUID storage with transaction support via database.GetTx().
type MySQLUserRepository struct {
	db *sql.DB
}

// NewMySQLUserRepository creates a new MySQL User repository.
func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{db: db}
}

// Create inserts a new User using BINARY(16) for the ID. Returns ErrUserAlreadyExists
// when the email or the username is already taken.
func (m *MySQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, m.db)

	rolesJSON, err := marshalRoles(user.Roles)
	if err != nil {
		return err
	}

	id, err := user.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user id")
	}

	query := `INSERT INTO users (id, username, email, password, roles, enabled, locked, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		user.Username,
		user.Email,
		user.Password,
		rolesJSON,
		user.Enabled,
		user.Locked,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return domain.ErrUserAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create user")
	}
	return nil
}

// GetByID retrieves a User by ID. Returns ErrUserNotFound if no row matches.
func (m *MySQLUserRepository) GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	id, err := userID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal user id")
	}

	query := `SELECT ` + mysqlUserColumns + ` FROM users WHERE id = ?`
	return m.getOne(ctx, "failed to get user by id", query, id)
}

// GetByEmail retrieves a User by email.
func (m *MySQLUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + mysqlUserColumns + ` FROM users WHERE email = ?`
	return m.getOne(ctx, "failed to get user by email", query, email)
}

// GetByUsername retrieves a User by username.
func (m *MySQLUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + mysqlUserColumns + ` FROM users WHERE username = ?`
	return m.getOne(ctx, "failed to get user by username", query, username)
}

// List retrieves users ordered by ID descending with pagination support.
func (m *MySQLUserRepository) List(ctx context.Context, offset, limit int) ([]*domain.User, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + mysqlUserColumns + `
			  FROM users
			  ORDER BY id DESC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list users")
	}
	defer func() {
		_ = rows.Close()
	}()

	// Initialize empty slice to avoid returning nil for empty results
	users := make([]*domain.User, 0)
	for rows.Next() {
		user, err := scanMySQLUser(rows)
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

// Delete removes the User with userID. Returns ErrUserNotFound if no row was deleted.
func (m *MySQLUserRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	id, err := userID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user id")
	}

	result, err := querier.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
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

func (m *MySQLUserRepository) getOne(
	ctx context.Context,
	errMessage, query string,
	args ...any,
) (*domain.User, error) {
	querier := database.GetTx(ctx, m.db)

	user, err := scanMySQLUser(querier.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, errMessage)
	}
	return user, nil
}

func scanMySQLUser(row rowScanner) (*domain.User, error) {
	var user domain.User
	var idBytes []byte
	var rolesJSON []byte

	err := row.Scan(
		&idBytes,
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

	if err := user.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal user id")
	}

	roles, err := unmarshalRoles(rolesJSON)
	if err != nil {
		return nil, err
	}
	user.Roles = roles

	return &user, nil
}
