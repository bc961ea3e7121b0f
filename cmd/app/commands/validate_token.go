package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	authDomain "github.com/allisson/workshop-users/internal/auth/domain"
	authUseCase "github.com/allisson/workshop-users/internal/auth/usecase"
)

// RunValidateToken introspects token and prints its claims. A rejected token is an
// error carrying the failure reason.
func RunValidateToken(
	ctx context.Context,
	authUseCase authUseCase.AuthUseCase,
	logger *slog.Logger,
	writer io.Writer,
	token string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	claims, err := authUseCase.Introspect(ctx, token)
	if err != nil {
		logger.Debug("token rejected", slog.String("reason", authDomain.TokenFailureReason(err)))
		return fmt.Errorf("token is not valid (%s): %w", authDomain.TokenFailureReason(err), err)
	}

	if format == "json" {
		return writeJSON(writer, claims)
	}

	_, _ = fmt.Fprintln(writer, "Token is valid")
	_, _ = fmt.Fprintf(writer, "User ID: %s\n", claims.UserID.String())
	_, _ = fmt.Fprintf(writer, "Username: %s\n", claims.Username)
	_, _ = fmt.Fprintf(writer, "Email: %s\n", claims.Email)
	_, _ = fmt.Fprintf(writer, "Authorities: %s\n", strings.Join(claims.Authorities, ", "))
	_, _ = fmt.Fprintf(writer, "Expires At: %s\n", claims.ExpiresAt.UTC().Format(time.RFC3339))

	return nil
}
