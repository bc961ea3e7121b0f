package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/workshop-users/internal/auth/domain"
	"github.com/allisson/workshop-users/internal/auth/http/dto"
	authUseCase "github.com/allisson/workshop-users/internal/auth/usecase"
	apperrors "github.com/allisson/workshop-users/internal/errors"
	"github.com/allisson/workshop-users/internal/httputil"
	customValidation "github.com/allisson/workshop-users/internal/validation"
)

// Caller-facing messages of the login and introspection endpoints.
const (
	MessageBadCredentials = "Invalid credentials"
	MessageTokenMissing   = "Token is missing"
	MessageTokenValid     = "Token is valid"
)

var tokenFailureMessages = map[string]string{
	authDomain.TokenFailureExpired:      "Expired JWT token",
	authDomain.TokenFailureMalformed:    "Malformed JWT token",
	authDomain.TokenFailureBadSignature: "Invalid JWT signature",
	authDomain.TokenFailureUnsupported:  "Unsupported JWT token",
	authDomain.TokenFailureInvalid:      "Invalid JWT token",
}

// TokenFailureMessage returns the caller-facing message for a token codec error.
func TokenFailureMessage(err error) string {
	return tokenFailureMessages[authDomain.TokenFailureReason(err)]
}

// AuthHandler handles HTTP requests for login and token introspection.
type AuthHandler struct {
	authUseCase authUseCase.AuthUseCase
	logger      *slog.Logger
}

// NewAuthHandler creates a new auth handler with required dependencies.
func NewAuthHandler(authUseCase authUseCase.AuthUseCase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
		logger:      logger,
	}
}

// LoginHandler authenticates credentials and returns a signed token.
// POST /api/v1/auth/login - No authentication required.
// Returns 200 OK with the token in the body. Every credential failure gives the same 401.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req dto.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	output, err := h.authUseCase.Login(c.Request.Context(), req.ToDomain())
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			h.logger.Info("login failed", slog.Any("error", err))
			httputil.HandleUnauthorizedGin(c, MessageBadCredentials, nil)
			return
		}
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.logger.Info("login succeeded",
		slog.String("user_id", output.Principal.ID.String()),
		slog.String("token_id", output.Token.TokenID))

	c.JSON(http.StatusOK, dto.MapLoginOutputToResponse(output))
}

// ValidateHandler introspects the bearer token of the request.
// GET /api/v1/auth/validate - No authentication required.
// Returns 200 with the claims, 400 without a token and 401 with the failure kind otherwise.
func (h *AuthHandler) ValidateHandler(c *gin.Context) {
	token, ok := BearerToken(c.Request)
	if !ok {
		c.JSON(http.StatusBadRequest, dto.StatusResponse{
			Status:  http.StatusBadRequest,
			Message: MessageTokenMissing,
		})
		return
	}

	claims, err := h.authUseCase.Introspect(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, authDomain.ErrTokenMissing) {
			c.JSON(http.StatusBadRequest, dto.StatusResponse{
				Status:  http.StatusBadRequest,
				Message: MessageTokenMissing,
			})
			return
		}
		if !errors.Is(err, apperrors.ErrUnauthorized) {
			httputil.HandleErrorGin(c, err, h.logger)
			return
		}

		h.logger.Debug("token introspection failed", slog.Any("error", err))
		c.JSON(http.StatusUnauthorized, dto.StatusResponse{
			Status:  http.StatusUnauthorized,
			Message: TokenFailureMessage(err),
		})
		return
	}

	c.JSON(http.StatusOK, dto.StatusResponse{
		Status:  http.StatusOK,
		Message: MessageTokenValid,
		Data:    claims,
	})
}

// MeHandler returns the caller's principal from the security context.
// GET /api/v1/users/me - Requires any role.
func (h *AuthHandler) MeHandler(c *gin.Context) {
	principal, ok := GetPrincipal(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapPrincipalToResponse(principal))
}
