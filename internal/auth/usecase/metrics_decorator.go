package usecase

import (
	"context"
	"time"

	authDomain "github.com/allisson/workshop-users/internal/auth/domain"
	"github.com/allisson/workshop-users/internal/metrics"
)

// authUseCaseWithMetrics decorates AuthUseCase with metrics instrumentation.
type authUseCaseWithMetrics struct {
	next    AuthUseCase
	metrics metrics.BusinessMetrics
}

// NewAuthUseCaseWithMetrics wraps an AuthUseCase with metrics recording.
func NewAuthUseCaseWithMetrics(useCase AuthUseCase, m metrics.BusinessMetrics) AuthUseCase {
	return &authUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Authenticate records metrics for credential authentication operations.
func (a *authUseCaseWithMetrics) Authenticate(
	ctx context.Context,
	identifier, password string,
) (*authDomain.Principal, error) {
	start := time.Now()
	principal, err := a.next.Authenticate(ctx, identifier, password)
	a.record(ctx, "authenticate", start, err)
	return principal, err
}

// Login records metrics for login operations.
func (a *authUseCaseWithMetrics) Login(
	ctx context.Context,
	input *authDomain.LoginInput,
) (*authDomain.LoginOutput, error) {
	start := time.Now()
	output, err := a.next.Login(ctx, input)
	a.record(ctx, "login", start, err)
	return output, err
}

// Introspect records metrics for token introspection operations.
func (a *authUseCaseWithMetrics) Introspect(ctx context.Context, token string) (*authDomain.TokenClaims, error) {
	start := time.Now()
	claims, err := a.next.Introspect(ctx, token)
	a.record(ctx, "token_introspect", start, err)
	return claims, err
}

func (a *authUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "auth", operation, status)
	a.metrics.RecordDuration(ctx, "auth", operation, time.Since(start), status)
}
