package http

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/workshop-users/internal/auth/domain"
)

func TestSecurityContext(t *testing.T) {
	t.Run("Anonymous", func(t *testing.T) {
		sc, ok := GetSecurityContext(context.Background())
		assert.False(t, ok)
		assert.Nil(t, sc)

		principal, ok := GetPrincipal(context.Background())
		assert.False(t, ok)
		assert.Nil(t, principal)
	})

	t.Run("RoundTrip", func(t *testing.T) {
		principal := &authDomain.Principal{ID: uuid.Must(uuid.NewV7()), Username: "alice"}
		ctx := WithSecurityContext(context.Background(), &authDomain.SecurityContext{Principal: principal})

		sc, ok := GetSecurityContext(ctx)
		require.True(t, ok)
		assert.Equal(t, principal, sc.Principal)

		got, ok := GetPrincipal(ctx)
		require.True(t, ok)
		assert.Equal(t, principal, got)
	})

	t.Run("NilPrincipalIsAnonymous", func(t *testing.T) {
		ctx := WithSecurityContext(context.Background(), &authDomain.SecurityContext{})
		_, ok := GetSecurityContext(ctx)
		assert.False(t, ok)
	})

	t.Run("ProcessedFlag", func(t *testing.T) {
		ctx := context.Background()
		assert.False(t, isProcessed(ctx))
		assert.True(t, isProcessed(markProcessed(ctx)))
	})
}
