package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/workshop-users/internal/auth/domain"
	authService "github.com/allisson/workshop-users/internal/auth/service"
	apperrors "github.com/allisson/workshop-users/internal/errors"
	"github.com/allisson/workshop-users/internal/httputil"
	"github.com/allisson/workshop-users/internal/metrics"
)

// Outcome is the result of identifying the caller of a request.
type Outcome int

const (
	// OutcomeAnonymous means the request carries no usable credentials.
	OutcomeAnonymous Outcome = iota

	// OutcomeAuthenticated means a security context was established.
	OutcomeAuthenticated

	// OutcomeRejected means the request must be refused outright. The bearer
	// authenticator never returns it; invalid tokens fall back to anonymous.
	OutcomeRejected
)

// String returns the outcome name used in logs.
func (o Outcome) String() string {
	switch o {
	case OutcomeAnonymous:
		return "anonymous"
	case OutcomeAuthenticated:
		return "authenticated"
	case OutcomeRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Authenticator resolves the caller of a request from its bearer token.
type Authenticator struct {
	tokenCodec authService.TokenCodec
	metrics    metrics.BusinessMetrics
	logger     *slog.Logger
}

// NewAuthenticator creates an Authenticator. A nil metrics recorder disables metrics.
func NewAuthenticator(
	tokenCodec authService.TokenCodec,
	businessMetrics metrics.BusinessMetrics,
	logger *slog.Logger,
) *Authenticator {
	if businessMetrics == nil {
		businessMetrics = metrics.NewNoOpBusinessMetrics()
	}
	return &Authenticator{
		tokenCodec: tokenCodec,
		metrics:    businessMetrics,
		logger:     logger,
	}
}

// Identify inspects the Authorization header of r.
//
// A missing header, a prefix other than exactly "Bearer " and a token the codec rejects
// all give OutcomeAnonymous with a nil context.
func (a *Authenticator) Identify(r *http.Request) (Outcome, *authDomain.SecurityContext) {
	token, ok := BearerToken(r)
	if !ok {
		return OutcomeAnonymous, nil
	}

	claims, err := a.tokenCodec.Parse(token)
	if err != nil {
		reason := authDomain.TokenFailureReason(err)
		a.logger.Debug("bearer token rejected",
			slog.String("reason", reason),
			slog.Any("error", err))
		a.metrics.RecordOperation(r.Context(), "auth", "token_rejected", reason)
		return OutcomeAnonymous, nil
	}

	return OutcomeAuthenticated, &authDomain.SecurityContext{
		Principal: claims.Principal(),
		Claims:    claims,
	}
}

// BearerToken extracts the token from the Authorization header. The header is read
// verbatim and the "Bearer " prefix is case sensitive.
func BearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, authDomain.BearerPrefix) {
		return "", false
	}
	token := header[len(authDomain.BearerPrefix):]
	if token == "" {
		return "", false
	}
	return token, true
}

// AuthenticationMiddleware establishes the security context of each request.
//
// The middleware never rejects a request. Requests without a valid bearer token
// continue anonymously and the authorization gates on protected routes answer them
// with 401. Each request is processed once; a request whose context is already
// marked is passed through untouched.
//
// Usage:
//
//	router.Use(AuthenticationMiddleware(authenticator, logger))
//	router.GET("/api/v1/users",
//	    RequireAuthority(authDomain.Authority(authDomain.AdminRead), logger),
//	    handler)
func AuthenticationMiddleware(authenticator *Authenticator, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if isProcessed(ctx) {
			c.Next()
			return
		}
		ctx = markProcessed(ctx)

		outcome, sc := authenticator.Identify(c.Request)
		switch outcome {
		case OutcomeAuthenticated:
			ctx = WithSecurityContext(ctx, sc)
			logger.Debug("request authenticated",
				slog.String("user_id", sc.Principal.ID.String()),
				slog.String("username", sc.Principal.Username))
		case OutcomeRejected:
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireAuthority allows the request only when the principal holds authority.
//
// Error handling:
//   - No security context → 401 Unauthorized
//   - Authority not granted → 403 Forbidden
func RequireAuthority(authority authDomain.Authority, logger *slog.Logger) gin.HandlerFunc {
	return gate(logger, func(p *authDomain.Principal) bool {
		return p.HasAuthority(authority)
	}, slog.String("authority", string(authority)))
}

// RequireAnyAuthority allows the request when the principal holds at least one of authorities.
func RequireAnyAuthority(logger *slog.Logger, authorities ...authDomain.Authority) gin.HandlerFunc {
	names := make([]string, 0, len(authorities))
	for _, a := range authorities {
		names = append(names, string(a))
	}
	return gate(logger, func(p *authDomain.Principal) bool {
		return p.Authorities.HasAny(authorities...)
	}, slog.Any("authorities", names))
}

// RequireAnyRole allows the request when the principal holds the marker of at least one of roles.
func RequireAnyRole(logger *slog.Logger, roles ...authDomain.Role) gin.HandlerFunc {
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, string(r))
	}
	return gate(logger, func(p *authDomain.Principal) bool {
		return p.HasAnyRole(roles...)
	}, slog.Any("roles", names))
}

func gate(logger *slog.Logger, allowed func(*authDomain.Principal) bool, requirement slog.Attr) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c.Request.Context())
		if !ok {
			logger.Debug("authorization failed: no security context", requirement)
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		if !allowed(principal) {
			logger.Debug("authorization failed: insufficient authority",
				slog.String("user_id", principal.ID.String()),
				slog.String("path", c.Request.URL.Path),
				requirement)
			httputil.HandleForbiddenGin(c, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}
