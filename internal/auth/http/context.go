// Package http provides the authentication interceptor, the authorization gate and the
// login and token introspection handlers.
package http

import (
	"context"

	authDomain "github.com/allisson/workshop-users/internal/auth/domain"
)

// securityContextKey is a context key type for storing the request security context.
type securityContextKey struct{}

// processedKey marks a request the authentication interceptor has already seen.
type processedKey struct{}

// WithSecurityContext stores the security context of an authenticated request.
func WithSecurityContext(ctx context.Context, sc *authDomain.SecurityContext) context.Context {
	return context.WithValue(ctx, securityContextKey{}, sc)
}

// GetSecurityContext retrieves the security context from ctx.
// Returns (nil, false) for anonymous requests.
func GetSecurityContext(ctx context.Context) (*authDomain.SecurityContext, bool) {
	sc, ok := ctx.Value(securityContextKey{}).(*authDomain.SecurityContext)
	if !ok || sc == nil || sc.Principal == nil {
		return nil, false
	}
	return sc, true
}

// GetPrincipal is a shortcut for the principal of the security context.
func GetPrincipal(ctx context.Context) (*authDomain.Principal, bool) {
	sc, ok := GetSecurityContext(ctx)
	if !ok {
		return nil, false
	}
	return sc.Principal, true
}

func markProcessed(ctx context.Context) context.Context {
	return context.WithValue(ctx, processedKey{}, true)
}

func isProcessed(ctx context.Context) bool {
	processed, _ := ctx.Value(processedKey{}).(bool)
	return processed
}
