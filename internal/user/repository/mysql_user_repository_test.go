package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/workshop-users/internal/auth/domain"
	"github.com/allisson/workshop-users/internal/testutil"
	"github.com/allisson/workshop-users/internal/user/domain"
)

func TestNewMySQLUserRepository(t *testing.T) {
	db, _ := testutil.NewSQLMock(t)

	repo := NewMySQLUserRepository(db)
	assert.NotNil(t, repo)
	assert.IsType(t, &MySQLUserRepository{}, repo)
}

func TestMySQLUserRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		repo := NewMySQLUserRepository(db)
		user := newTestUser()

		idBytes, err := user.ID.MarshalBinary()
		require.NoError(t, err)

		mock.ExpectExec("INSERT INTO users").
			WithArgs(
				idBytes,
				user.Username,
				user.Email,
				user.Password,
				[]byte(`["ADMIN","ESTIMATOR"]`),
				true,
				false,
				user.CreatedAt,
				user.UpdatedAt,
			).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Create(ctx, user))
	})

	t.Run("Error_DuplicateEntry", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		repo := NewMySQLUserRepository(db)

		mock.ExpectExec("INSERT INTO users").
			WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'alice' for key 'idx_users_username'"))

		assert.ErrorIs(t, repo.Create(ctx, newTestUser()), domain.ErrUserAlreadyExists)
	})
}

func TestMySQLUserRepository_Get(t *testing.T) {
	ctx := context.Background()
	user := newTestUser()

	idBytes, err := user.ID.MarshalBinary()
	require.NoError(t, err)

	userRow := func() *sqlmock.Rows {
		return sqlmock.NewRows(userColumnNames).AddRow(
			idBytes,
			user.Username,
			user.Email,
			user.Password,
			[]byte(`["ADMIN","ESTIMATOR"]`),
			true,
			false,
			user.CreatedAt,
			user.UpdatedAt,
		)
	}

	t.Run("Success_GetByID", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		repo := NewMySQLUserRepository(db)

		mock.ExpectQuery("SELECT (.+) FROM users WHERE id = ").WithArgs(idBytes).WillReturnRows(userRow())

		got, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, user, got)
	})

	t.Run("Success_GetByUsername", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		repo := NewMySQLUserRepository(db)

		mock.ExpectQuery("SELECT (.+) FROM users WHERE username = ").WithArgs("alice").WillReturnRows(userRow())

		got, err := repo.GetByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		repo := NewMySQLUserRepository(db)

		mock.ExpectQuery("SELECT (.+) FROM users WHERE email = ").WillReturnError(sql.ErrNoRows)

		got, err := repo.GetByEmail(ctx, "ghost@example.com")
		assert.Nil(t, got)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("Error_InvalidStoredID", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		repo := NewMySQLUserRepository(db)

		rows := sqlmock.NewRows(userColumnNames).AddRow(
			[]byte{0x01, 0x02}, "alice", "alice@example.com", "hash", []byte(`[]`),
			true, false, user.CreatedAt, user.UpdatedAt,
		)
		mock.ExpectQuery("SELECT (.+) FROM users WHERE username = ").WillReturnRows(rows)

		got, err := repo.GetByUsername(ctx, "alice")
		assert.Nil(t, got)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to unmarshal user id")
	})
}

func TestMySQLUserRepository_List(t *testing.T) {
	db, mock := testutil.NewSQLMock(t)
	repo := NewMySQLUserRepository(db)
	user := newTestUser()

	idBytes, err := user.ID.MarshalBinary()
	require.NoError(t, err)

	rows := sqlmock.NewRows(userColumnNames).
		AddRow(idBytes, "alice", "alice@example.com", "hash", []byte(`["ESTIMATORTRAINEE"]`),
			false, false, user.CreatedAt, user.UpdatedAt)
	mock.ExpectQuery("SELECT (.+) FROM users ORDER BY id DESC LIMIT").WithArgs(5, 0).WillReturnRows(rows)

	users, err := repo.List(context.Background(), 0, 5)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, user.ID, users[0].ID)
	assert.False(t, users[0].Enabled)
	assert.Equal(t, []authDomain.Role{authDomain.RoleEstimatorTrainee}, users[0].Roles)
}

func TestMySQLUserRepository_Delete(t *testing.T) {
	ctx := context.Background()
	id := uuid.Must(uuid.NewV7())
	idBytes, err := id.MarshalBinary()
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		repo := NewMySQLUserRepository(db)

		mock.ExpectExec("DELETE FROM users WHERE id = ").WithArgs(idBytes).WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(ctx, id))
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		repo := NewMySQLUserRepository(db)

		mock.ExpectExec("DELETE FROM users").WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(ctx, id), domain.ErrUserNotFound)
	})
}

func TestIsMySQLUniqueViolation(t *testing.T) {
	assert.False(t, isMySQLUniqueViolation(nil))
	assert.True(t, isMySQLUniqueViolation(errors.New("Error 1062: Duplicate entry 'a' for key 'b'")))
	assert.False(t, isMySQLUniqueViolation(errors.New("Error 1045: Access denied")))
}
