package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateUserRequest_Validate(t *testing.T) {
	valid := func() CreateUserRequest {
		return CreateUserRequest{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "Secret123",
			Roles:    []string{"ADMIN"},
		}
	}

	t.Run("Success", func(t *testing.T) {
		req := valid()
		assert.NoError(t, req.Validate())
	})

	tests := []struct {
		name   string
		mutate func(r *CreateUserRequest)
		field  string
	}{
		{"MissingUsername", func(r *CreateUserRequest) { r.Username = "" }, "username"},
		{"BlankUsername", func(r *CreateUserRequest) { r.Username = "    " }, "username"},
		{"InvalidEmail", func(r *CreateUserRequest) { r.Email = "alice" }, "email"},
		{"ShortPassword", func(r *CreateUserRequest) { r.Password = "Ab1" }, "password"},
		{"PasswordWithoutDigit", func(r *CreateUserRequest) { r.Password = "SecretPass" }, "password"},
		{"NoRoles", func(r *CreateUserRequest) { r.Roles = []string{} }, "roles"},
		{"EmptyRoleName", func(r *CreateUserRequest) { r.Roles = []string{"ADMIN", ""} }, "roles"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(&req)

			err := req.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestCreateUserRequest_ToDomain(t *testing.T) {
	req := CreateUserRequest{
		Username: " alice ",
		Email:    "Alice@Example.com",
		Password: "Secret123",
		Roles:    []string{"ADMIN"},
	}

	input := req.ToDomain()
	assert.Equal(t, "alice", input.Username)
	assert.Equal(t, "alice@example.com", input.Email)
	assert.Equal(t, "Secret123", input.Password)
	assert.Equal(t, []string{"ADMIN"}, input.Roles)
}
