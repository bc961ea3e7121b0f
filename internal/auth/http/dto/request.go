// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"strings"

	validation "github.com/jellydator/validation"

	authDomain "github.com/allisson/workshop-users/internal/auth/domain"
	customValidation "github.com/allisson/workshop-users/internal/validation"
)

// LoginRequest contains the credentials submitted to the login endpoint.
// Email is accepted as an alias of Identifier.
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Email      string `json:"email"`
	Password   string `json:"password"`
}

// Normalize fills Identifier from Email when only the alias was sent.
func (r *LoginRequest) Normalize() {
	if strings.TrimSpace(r.Identifier) == "" {
		r.Identifier = r.Email
	}
	r.Identifier = strings.TrimSpace(r.Identifier)
}

// Validate checks if the login request is valid.
func (r *LoginRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Identifier,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(3, 128),
		),
		validation.Field(&r.Password,
			validation.Required,
			validation.Length(6, 128),
		),
	)
}

// ToDomain converts the request to a login input.
func (r *LoginRequest) ToDomain() *authDomain.LoginInput {
	return &authDomain.LoginInput{
		Identifier: r.Identifier,
		Password:   r.Password,
	}
}
