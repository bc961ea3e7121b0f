package dto

import (
	"time"

	authDomain "github.com/allisson/workshop-users/internal/auth/domain"
)

// LoginResponse is returned after a successful login.
type LoginResponse struct {
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
}

// MapLoginOutputToResponse converts a login output to its API response.
func MapLoginOutputToResponse(output *authDomain.LoginOutput) LoginResponse {
	return LoginResponse{
		Email:     output.Principal.Email,
		Username:  output.Principal.Username,
		Token:     output.Token.Token,
		TokenType: authDomain.TokenTypeBearer,
		ExpiresAt: output.Token.ExpiresAt,
	}
}

// StatusResponse is the envelope of the token introspection endpoint.
type StatusResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// PrincipalResponse describes an authenticated caller.
type PrincipalResponse struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	Roles       []string `json:"roles"`
	Authorities []string `json:"authorities"`
}

// MapPrincipalToResponse converts a principal to its API response.
func MapPrincipalToResponse(principal *authDomain.Principal) PrincipalResponse {
	roles := make([]string, 0, len(principal.Roles))
	for _, role := range principal.Roles {
		roles = append(roles, string(role))
	}
	return PrincipalResponse{
		ID:          principal.ID.String(),
		Username:    principal.Username,
		Email:       principal.Email,
		Roles:       roles,
		Authorities: principal.Authorities.Strings(),
	}
}
