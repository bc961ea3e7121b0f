package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	userDomain "github.com/allisson/workshop-users/internal/user/domain"
	userUseCase "github.com/allisson/workshop-users/internal/user/usecase"
)

// RunCreateUser creates a user account from the command line. It is the way to
// bootstrap the first ADMIN account, since every user endpoint requires one.
//
// Requirements: Database must be migrated and accessible.
func RunCreateUser(
	ctx context.Context,
	userUseCase userUseCase.UserUseCase,
	logger *slog.Logger,
	writer io.Writer,
	username, email, password string,
	roles []string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	logger.Info("creating new user", slog.String("username", username))

	user, err := userUseCase.Create(ctx, &userDomain.CreateUserInput{
		Username: username,
		Email:    email,
		Password: password,
		Roles:    splitRoles(roles),
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	if format == "json" {
		if err := writeJSON(writer, map[string]any{
			"id":       user.ID.String(),
			"username": user.Username,
			"email":    user.Email,
			"roles":    user.RoleNames(),
		}); err != nil {
			return err
		}
	} else {
		_, _ = fmt.Fprintln(writer, "\nUser created successfully!")
		_, _ = fmt.Fprintf(writer, "User ID: %s\n", user.ID.String())
		_, _ = fmt.Fprintf(writer, "Username: %s\n", user.Username)
		_, _ = fmt.Fprintf(writer, "Email: %s\n", user.Email)
		_, _ = fmt.Fprintf(writer, "Roles: %s\n", strings.Join(user.RoleNames(), ", "))
	}

	logger.Info("user created successfully",
		slog.String("user_id", user.ID.String()),
		slog.String("username", user.Username),
	)

	return nil
}

// splitRoles accepts repeated flags as well as comma-separated values.
func splitRoles(values []string) []string {
	roles := make([]string, 0, len(values))
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if role := strings.TrimSpace(part); role != "" {
				roles = append(roles, role)
			}
		}
	}
	return roles
}
