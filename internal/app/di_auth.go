package app

import (
	"fmt"
	"sync"

	authDomain "github.com/allisson/workshop-users/internal/auth/domain"
	authHTTP "github.com/allisson/workshop-users/internal/auth/http"
	authService "github.com/allisson/workshop-users/internal/auth/service"
	authUseCase "github.com/allisson/workshop-users/internal/auth/usecase"
	cryptoDomain "github.com/allisson/workshop-users/internal/crypto/domain"
	cryptoService "github.com/allisson/workshop-users/internal/crypto/service"
)

type authComponents struct {
	roleModel      *authDomain.RoleModel
	kmsService     cryptoService.KMSService
	passwordHasher authService.PasswordHasher
	tokenCodec     authService.TokenCodec
	authUseCase    authUseCase.AuthUseCase
	authenticator  *authHTTP.Authenticator
	authHandler    *authHTTP.AuthHandler

	roleModelInit      sync.Once
	kmsServiceInit     sync.Once
	passwordHasherInit sync.Once
	tokenCodecInit     sync.Once
	authUseCaseInit    sync.Once
	authenticatorInit  sync.Once
	authHandlerInit    sync.Once
}

// RoleModel returns the role to authority table.
func (c *Container) RoleModel() *authDomain.RoleModel {
	c.roleModelInit.Do(func() {
		c.roleModel = authDomain.NewRoleModel()
	})
	return c.roleModel
}

// KMSService returns the KMS service used to unwrap the signing secret.
func (c *Container) KMSService() cryptoService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = cryptoService.NewKMSService()
	})
	return c.kmsService
}

// PasswordHasher returns the password hasher.
func (c *Container) PasswordHasher() (authService.PasswordHasher, error) {
	var err error
	c.passwordHasherInit.Do(func() {
		c.passwordHasher, err = authService.NewPasswordHasher()
		if err != nil {
			c.initErrors["passwordHasher"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["passwordHasher"]; exists {
		return nil, storedErr
	}
	return c.passwordHasher, nil
}

// TokenCodec returns the token codec signing with the configured secret.
func (c *Container) TokenCodec() (authService.TokenCodec, error) {
	var err error
	c.tokenCodecInit.Do(func() {
		c.tokenCodec, err = c.initTokenCodec()
		if err != nil {
			c.initErrors["tokenCodec"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenCodec"]; exists {
		return nil, storedErr
	}
	return c.tokenCodec, nil
}

// AuthUseCase returns the auth use case.
func (c *Container) AuthUseCase() (authUseCase.AuthUseCase, error) {
	var err error
	c.authUseCaseInit.Do(func() {
		c.authUseCase, err = c.initAuthUseCase()
		if err != nil {
			c.initErrors["authUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["authUseCase"]; exists {
		return nil, storedErr
	}
	return c.authUseCase, nil
}

// Authenticator returns the request authenticator used by the authentication middleware.
func (c *Container) Authenticator() (*authHTTP.Authenticator, error) {
	var err error
	c.authenticatorInit.Do(func() {
		c.authenticator, err = c.initAuthenticator()
		if err != nil {
			c.initErrors["authenticator"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["authenticator"]; exists {
		return nil, storedErr
	}
	return c.authenticator, nil
}

// AuthHandler returns the HTTP handler for login, validate and me.
func (c *Container) AuthHandler() (*authHTTP.AuthHandler, error) {
	var err error
	c.authHandlerInit.Do(func() {
		var useCase authUseCase.AuthUseCase
		useCase, err = c.AuthUseCase()
		if err != nil {
			err = fmt.Errorf("failed to get auth use case for auth handler: %w", err)
			c.initErrors["authHandler"] = err
			return
		}
		c.authHandler = authHTTP.NewAuthHandler(useCase, c.Logger())
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["authHandler"]; exists {
		return nil, storedErr
	}
	return c.authHandler, nil
}

// initTokenCodec resolves the signing key, unwrapping it through KMS when a key URI
// is configured, and builds the codec with the configured issuer and audience.
func (c *Container) initTokenCodec() (authService.TokenCodec, error) {
	key, err := cryptoService.LoadSigningKey(
		c.ctx,
		c.KMSService(),
		c.config.AuthJWTSecret,
		c.config.KMSKeyURI,
		c.Logger(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load token signing key: %w", err)
	}
	// The codec keeps its own copy.
	defer cryptoDomain.Zero(key)

	codec, err := authService.NewJWTTokenCodec(
		key,
		authService.WithIssuer(c.config.AuthJWTIssuer),
		authService.WithAudience(c.config.AuthJWTAudience),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create token codec: %w", err)
	}
	return codec, nil
}

// initAuthUseCase creates the auth use case with all its dependencies.
func (c *Container) initAuthUseCase() (authUseCase.AuthUseCase, error) {
	userRepo, err := c.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for auth use case: %w", err)
	}

	passwordHasher, err := c.PasswordHasher()
	if err != nil {
		return nil, fmt.Errorf("failed to get password hasher for auth use case: %w", err)
	}

	tokenCodec, err := c.TokenCodec()
	if err != nil {
		return nil, fmt.Errorf("failed to get token codec for auth use case: %w", err)
	}

	baseUseCase := authUseCase.NewAuthUseCase(
		userRepo,
		passwordHasher,
		tokenCodec,
		c.RoleModel(),
		authDomain.LoginLookup(c.config.AuthLoginLookup),
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for auth use case: %w", err)
		}
		return authUseCase.NewAuthUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

func (c *Container) initAuthenticator() (*authHTTP.Authenticator, error) {
	tokenCodec, err := c.TokenCodec()
	if err != nil {
		return nil, fmt.Errorf("failed to get token codec for authenticator: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for authenticator: %w", err)
	}

	return authHTTP.NewAuthenticator(tokenCodec, businessMetrics, c.Logger()), nil
}
