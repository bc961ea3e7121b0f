package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	authDomain "github.com/allisson/workshop-users/internal/auth/domain"
	authUseCase "github.com/allisson/workshop-users/internal/auth/usecase"
)

// RunIssueToken logs in with identifier and password and prints the issued bearer token.
func RunIssueToken(
	ctx context.Context,
	authUseCase authUseCase.AuthUseCase,
	logger *slog.Logger,
	writer io.Writer,
	identifier, password string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	output, err := authUseCase.Login(ctx, &authDomain.LoginInput{
		Identifier: identifier,
		Password:   password,
	})
	if err != nil {
		return fmt.Errorf("failed to issue token: %w", err)
	}

	if format == "json" {
		if err := writeJSON(writer, map[string]any{
			"email":      output.Principal.Email,
			"username":   output.Principal.Username,
			"token":      output.Token.Token,
			"token_type": "Bearer",
			"expires_at": output.Token.ExpiresAt.UTC().Format(time.RFC3339),
		}); err != nil {
			return err
		}
	} else {
		_, _ = fmt.Fprintf(writer, "Token: %s\n", output.Token.Token)
		_, _ = fmt.Fprintf(writer, "Expires At: %s\n", output.Token.ExpiresAt.UTC().Format(time.RFC3339))
	}

	logger.Info("token issued",
		slog.String("user_id", output.Principal.ID.String()),
		slog.String("token_id", output.Token.TokenID),
	)

	return nil
}
