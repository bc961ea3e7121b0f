package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/workshop-users/internal/auth/domain"
	apperrors "github.com/allisson/workshop-users/internal/errors"
	userDomain "github.com/allisson/workshop-users/internal/user/domain"
)

// mockUserRepository is a mock implementation of UserRepository for testing.
type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*userDomain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

func (m *mockUserRepository) GetByUsername(ctx context.Context, username string) (*userDomain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

// mockPasswordHasher is a mock implementation of PasswordHasher for testing.
type mockPasswordHasher struct {
	mock.Mock
}

func (m *mockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *mockPasswordHasher) Compare(password string, encodedHash string) bool {
	args := m.Called(password, encodedHash)
	return args.Bool(0)
}

func (m *mockPasswordHasher) CompareDummy(password string) {
	m.Called(password)
}

// mockTokenCodec is a mock implementation of TokenCodec for testing.
type mockTokenCodec struct {
	mock.Mock
}

func (m *mockTokenCodec) Issue(principal *authDomain.Principal) (*authDomain.IssuedToken, error) {
	args := m.Called(principal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.IssuedToken), args.Error(1)
}

func (m *mockTokenCodec) Parse(token string) (*authDomain.TokenClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.TokenClaims), args.Error(1)
}

func (m *mockTokenCodec) ExtractPrincipalClaims(token string) (*authDomain.Principal, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Principal), args.Error(1)
}

//nolint:gosec // test fixture, not a real credential
const storedHash = "$argon2id$v=19$m=65536,t=3,p=4$test-hash"

func newStoredUser(roles ...authDomain.Role) *userDomain.User {
	return &userDomain.User{
		ID:       uuid.Must(uuid.NewV7()),
		Username: "alice",
		Email:    "alice@example.com",
		Password: storedHash,
		Roles:    roles,
		Enabled:  true,
	}
}

type authFixture struct {
	repo   *mockUserRepository
	hasher *mockPasswordHasher
	codec  *mockTokenCodec
}

func newAuthFixture() *authFixture {
	return &authFixture{
		repo:   &mockUserRepository{},
		hasher: &mockPasswordHasher{},
		codec:  &mockTokenCodec{},
	}
}

func (f *authFixture) useCase(lookup authDomain.LoginLookup) AuthUseCase {
	return NewAuthUseCase(f.repo, f.hasher, f.codec, authDomain.NewRoleModel(), lookup)
}

func (f *authFixture) assertExpectations(t *testing.T) {
	f.repo.AssertExpectations(t)
	f.hasher.AssertExpectations(t)
	f.codec.AssertExpectations(t)
}

func TestAuthUseCase_Authenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_ByEmail", func(t *testing.T) {
		f := newAuthFixture()
		user := newStoredUser(authDomain.RoleEstimatorTrainee)

		f.repo.On("GetByEmail", ctx, "alice@example.com").Return(user, nil).Once()
		f.hasher.On("Compare", "Secret123", storedHash).Return(true).Once()

		principal, err := f.useCase("").Authenticate(ctx, "  Alice@Example.COM ", "Secret123")
		require.NoError(t, err)
		assert.Equal(t, user.ID, principal.ID)
		assert.Equal(t, "alice", principal.Username)
		assert.Equal(t, []authDomain.Role{authDomain.RoleEstimatorTrainee}, principal.Roles)
		assert.ElementsMatch(t,
			[]string{"ROLE_ESTIMATORTRAINEE", "estimator:read", "project:read"},
			principal.Authorities.Strings(),
		)
		f.assertExpectations(t)
	})

	t.Run("Success_ByUsername", func(t *testing.T) {
		f := newAuthFixture()
		user := newStoredUser(authDomain.RoleAdmin, authDomain.RoleEstimator)

		f.repo.On("GetByUsername", ctx, "alice").Return(user, nil).Once()
		f.hasher.On("Compare", "Secret123", storedHash).Return(true).Once()

		principal, err := f.useCase(authDomain.LookupByUsername).Authenticate(ctx, "alice", "Secret123")
		require.NoError(t, err)
		assert.True(t, principal.HasAuthority(authDomain.Authority(authDomain.AdminWrite)))
		assert.True(t, principal.HasAnyRole(authDomain.RoleEstimator))
		f.assertExpectations(t)
	})

	t.Run("Success_NoRolesNoAuthorities", func(t *testing.T) {
		f := newAuthFixture()
		user := newStoredUser()

		f.repo.On("GetByEmail", ctx, "alice@example.com").Return(user, nil).Once()
		f.hasher.On("Compare", "Secret123", storedHash).Return(true).Once()

		principal, err := f.useCase(authDomain.LookupByEmail).Authenticate(ctx, "alice@example.com", "Secret123")
		require.NoError(t, err)
		assert.Equal(t, 0, principal.Authorities.Len())
		f.assertExpectations(t)
	})

	t.Run("Error_UnknownIdentifierRunsDummyCompare", func(t *testing.T) {
		f := newAuthFixture()

		f.repo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, userDomain.ErrUserNotFound).Once()
		f.hasher.On("CompareDummy", "Secret123").Return().Once()

		principal, err := f.useCase("").Authenticate(ctx, "ghost@example.com", "Secret123")
		assert.ErrorIs(t, err, authDomain.ErrBadCredentials)
		assert.Nil(t, principal)
		f.assertExpectations(t)
	})

	t.Run("Error_BlankIdentifier", func(t *testing.T) {
		f := newAuthFixture()
		f.hasher.On("CompareDummy", "Secret123").Return().Once()

		principal, err := f.useCase("").Authenticate(ctx, "   ", "Secret123")
		assert.ErrorIs(t, err, authDomain.ErrBadCredentials)
		assert.Nil(t, principal)
		f.assertExpectations(t)
	})

	t.Run("Error_WrongPassword", func(t *testing.T) {
		f := newAuthFixture()
		user := newStoredUser(authDomain.RoleAdmin)

		f.repo.On("GetByEmail", ctx, "alice@example.com").Return(user, nil).Once()
		f.hasher.On("Compare", "wrong", storedHash).Return(false).Once()

		principal, err := f.useCase("").Authenticate(ctx, "alice@example.com", "wrong")
		assert.ErrorIs(t, err, authDomain.ErrBadCredentials)
		assert.Equal(t, authDomain.ErrBadCredentials, err)
		assert.Nil(t, principal)
		f.assertExpectations(t)
	})

	t.Run("Error_DisabledAfterPasswordMatch", func(t *testing.T) {
		f := newAuthFixture()
		user := newStoredUser(authDomain.RoleAdmin)
		user.Enabled = false

		f.repo.On("GetByEmail", ctx, "alice@example.com").Return(user, nil).Once()
		f.hasher.On("Compare", "Secret123", storedHash).Return(true).Once()

		principal, err := f.useCase("").Authenticate(ctx, "alice@example.com", "Secret123")
		assert.ErrorIs(t, err, authDomain.ErrAccountDisabled)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
		assert.Nil(t, principal)
		f.assertExpectations(t)
	})

	t.Run("Error_DisabledWithWrongPasswordLooksLikeBadCredentials", func(t *testing.T) {
		f := newAuthFixture()
		user := newStoredUser(authDomain.RoleAdmin)
		user.Enabled = false

		f.repo.On("GetByEmail", ctx, "alice@example.com").Return(user, nil).Once()
		f.hasher.On("Compare", "wrong", storedHash).Return(false).Once()

		_, err := f.useCase("").Authenticate(ctx, "alice@example.com", "wrong")
		assert.ErrorIs(t, err, authDomain.ErrBadCredentials)
		f.assertExpectations(t)
	})

	t.Run("Error_Locked", func(t *testing.T) {
		f := newAuthFixture()
		user := newStoredUser(authDomain.RoleAdmin)
		user.Locked = true

		f.repo.On("GetByEmail", ctx, "alice@example.com").Return(user, nil).Once()
		f.hasher.On("Compare", "Secret123", storedHash).Return(true).Once()

		principal, err := f.useCase("").Authenticate(ctx, "alice@example.com", "Secret123")
		assert.ErrorIs(t, err, authDomain.ErrAccountLocked)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
		assert.Nil(t, principal)
		f.assertExpectations(t)
	})

	t.Run("Error_StoredUnknownRole", func(t *testing.T) {
		f := newAuthFixture()
		user := newStoredUser(authDomain.Role("SUPERUSER"))

		f.repo.On("GetByEmail", ctx, "alice@example.com").Return(user, nil).Once()
		f.hasher.On("Compare", "Secret123", storedHash).Return(true).Once()

		principal, err := f.useCase("").Authenticate(ctx, "alice@example.com", "Secret123")
		assert.ErrorIs(t, err, authDomain.ErrUnknownRole)
		assert.Nil(t, principal)
		f.assertExpectations(t)
	})

	t.Run("Error_RepositoryFailure", func(t *testing.T) {
		f := newAuthFixture()
		dbErr := errors.New("connection refused")

		f.repo.On("GetByEmail", ctx, "alice@example.com").Return(nil, dbErr).Once()

		principal, err := f.useCase("").Authenticate(ctx, "alice@example.com", "Secret123")
		assert.Equal(t, dbErr, err)
		assert.Nil(t, principal)
		f.assertExpectations(t)
	})
}

func TestAuthUseCase_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newAuthFixture()
		user := newStoredUser(authDomain.RoleEstimator)
		issued := &authDomain.IssuedToken{
			Token:     "header.payload.signature",
			TokenID:   uuid.NewString(),
			IssuedAt:  time.Now().UTC(),
			ExpiresAt: time.Now().UTC().Add(authDomain.TokenValidity),
		}

		f.repo.On("GetByEmail", ctx, "alice@example.com").Return(user, nil).Once()
		f.hasher.On("Compare", "Secret123", storedHash).Return(true).Once()
		f.codec.On("Issue", mock.MatchedBy(func(p *authDomain.Principal) bool {
			return p.ID == user.ID && p.HasAuthority(authDomain.RoleMarker(authDomain.RoleEstimator))
		})).Return(issued, nil).Once()

		output, err := f.useCase("").Login(ctx, &authDomain.LoginInput{
			Identifier: "alice@example.com",
			Password:   "Secret123",
		})
		require.NoError(t, err)
		assert.Equal(t, issued, output.Token)
		assert.Equal(t, user.ID, output.Principal.ID)
		f.assertExpectations(t)
	})

	t.Run("Error_BadCredentialsNoToken", func(t *testing.T) {
		f := newAuthFixture()

		f.repo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, userDomain.ErrUserNotFound).Once()
		f.hasher.On("CompareDummy", "Secret123").Return().Once()

		output, err := f.useCase("").Login(ctx, &authDomain.LoginInput{
			Identifier: "ghost@example.com",
			Password:   "Secret123",
		})
		assert.ErrorIs(t, err, authDomain.ErrBadCredentials)
		assert.Nil(t, output)
		f.codec.AssertNotCalled(t, "Issue", mock.Anything)
		f.assertExpectations(t)
	})

	t.Run("Error_IssueFails", func(t *testing.T) {
		f := newAuthFixture()
		user := newStoredUser(authDomain.RoleEstimator)
		signErr := errors.New("failed to sign token")

		f.repo.On("GetByEmail", ctx, "alice@example.com").Return(user, nil).Once()
		f.hasher.On("Compare", "Secret123", storedHash).Return(true).Once()
		f.codec.On("Issue", mock.Anything).Return(nil, signErr).Once()

		output, err := f.useCase("").Login(ctx, &authDomain.LoginInput{
			Identifier: "alice@example.com",
			Password:   "Secret123",
		})
		assert.Equal(t, signErr, err)
		assert.Nil(t, output)
		f.assertExpectations(t)
	})
}

func TestAuthUseCase_Introspect(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newAuthFixture()
		claims := &authDomain.TokenClaims{TokenID: "jti", UserID: uuid.Must(uuid.NewV7())}
		f.codec.On("Parse", "token").Return(claims, nil).Once()

		result, err := f.useCase("").Introspect(ctx, "token")
		require.NoError(t, err)
		assert.Equal(t, claims, result)
		f.assertExpectations(t)
	})

	t.Run("Error_Missing", func(t *testing.T) {
		f := newAuthFixture()

		result, err := f.useCase("").Introspect(ctx, "  ")
		assert.ErrorIs(t, err, authDomain.ErrTokenMissing)
		assert.Nil(t, result)
		f.codec.AssertNotCalled(t, "Parse", mock.Anything)
	})

	t.Run("Error_Expired", func(t *testing.T) {
		f := newAuthFixture()
		f.codec.On("Parse", "token").Return(nil, authDomain.ErrTokenExpired).Once()

		result, err := f.useCase("").Introspect(ctx, "token")
		assert.ErrorIs(t, err, authDomain.ErrTokenExpired)
		assert.Nil(t, result)
		f.assertExpectations(t)
	})
}
