// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"strings"

	validation "github.com/jellydator/validation"

	"github.com/allisson/workshop-users/internal/user/domain"
	customValidation "github.com/allisson/workshop-users/internal/validation"
)

// CreateUserRequest contains the parameters for creating a user account.
type CreateUserRequest struct {
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Roles    []string `json:"roles"`
}

// Validate checks if the create user request is valid.
func (r *CreateUserRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Username,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(3, 64),
		),
		validation.Field(&r.Email,
			validation.Required,
			customValidation.Email,
			validation.Length(3, 255),
		),
		validation.Field(&r.Password,
			validation.Required,
			validation.Length(6, 128),
			customValidation.AccountPassword,
		),
		validation.Field(&r.Roles,
			validation.Required,
			validation.Each(validation.Required),
		),
	)
}

// ToDomain converts the request to a domain input. Email is lower-cased.
func (r *CreateUserRequest) ToDomain() *domain.CreateUserInput {
	return &domain.CreateUserInput{
		Username: strings.TrimSpace(r.Username),
		Email:    strings.ToLower(strings.TrimSpace(r.Email)),
		Password: r.Password,
		Roles:    r.Roles,
	}
}
