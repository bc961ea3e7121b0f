package domain

import (
	"time"

	"github.com/google/uuid"
)

// TokenClaims is the decoded, verified payload of a token.
type TokenClaims struct {
	TokenID     string    `json:"jti"`
	Issuer      string    `json:"iss"`
	Subject     string    `json:"sub"`
	Audience    []string  `json:"aud,omitempty"`
	IssuedAt    time.Time `json:"iat"`
	ExpiresAt   time.Time `json:"exp"`
	UserID      uuid.UUID `json:"userId"`
	Email       string    `json:"email"`
	Username    string    `json:"username"`
	Roles       []string  `json:"roles"`
	Authorities []string  `json:"authorities"`
}

// Principal projects the identity and authority fields of the claims.
func (c *TokenClaims) Principal() *Principal {
	roles := make([]Role, 0, len(c.Roles))
	for _, r := range c.Roles {
		roles = append(roles, Role(r))
	}
	return &Principal{
		ID:          c.UserID,
		Username:    c.Username,
		Email:       c.Email,
		Roles:       roles,
		Authorities: AuthoritySetFromStrings(c.Authorities),
	}
}

// IssuedToken is the compact signed token handed to a client.
type IssuedToken struct {
	Token     string
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// LoginInput carries the credentials submitted to the login endpoint.
type LoginInput struct {
	Identifier string
	Password   string
}

// LoginOutput is the result of a successful login.
type LoginOutput struct {
	Principal *Principal
	Token     *IssuedToken
}
