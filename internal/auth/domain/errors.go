package domain

import (
	"github.com/allisson/workshop-users/internal/errors"
)

// Credential and token errors. All of them wrap ErrUnauthorized so the HTTP layer
// answers them with the same 401 response.
var (
	// ErrBadCredentials is returned for an unknown identifier and for a wrong password alike.
	ErrBadCredentials = errors.Wrap(errors.ErrUnauthorized, "bad credentials")

	// ErrAccountDisabled indicates the password matched but the account is disabled.
	ErrAccountDisabled = errors.Wrap(errors.ErrUnauthorized, "account disabled")

	// ErrAccountLocked indicates the password matched but the account is locked.
	ErrAccountLocked = errors.Wrap(errors.ErrUnauthorized, "account locked")

	// ErrTokenExpired indicates the token's exp claim is in the past.
	ErrTokenExpired = errors.Wrap(errors.ErrUnauthorized, "expired token")

	// ErrTokenMalformed indicates the token is not a structurally valid compact token.
	ErrTokenMalformed = errors.Wrap(errors.ErrUnauthorized, "malformed token")

	// ErrTokenBadSignature indicates the signature does not verify with the configured key.
	ErrTokenBadSignature = errors.Wrap(errors.ErrUnauthorized, "invalid token signature")

	// ErrTokenUnsupported indicates the token uses a signing algorithm other than the configured one.
	ErrTokenUnsupported = errors.Wrap(errors.ErrUnauthorized, "unsupported token")

	// ErrTokenInvalid covers every other reason a token is rejected.
	ErrTokenInvalid = errors.Wrap(errors.ErrUnauthorized, "invalid token")
)

// Input errors.
var (
	// ErrTokenMissing indicates no token was supplied where one is required.
	ErrTokenMissing = errors.Wrap(errors.ErrInvalidInput, "token is missing")

	// ErrUnknownRole indicates a role name outside the fixed enumeration.
	ErrUnknownRole = errors.Wrap(errors.ErrInvalidInput, "unknown role")
)

// Token failure reasons, used as metric labels and log attributes.
const (
	TokenFailureExpired      = "expired"
	TokenFailureMalformed    = "malformed"
	TokenFailureBadSignature = "bad_signature"
	TokenFailureUnsupported  = "unsupported"
	TokenFailureInvalid      = "invalid"
)

// TokenFailureReason classifies a token codec error. Errors outside the token
// taxonomy are reported as invalid.
func TokenFailureReason(err error) string {
	switch {
	case errors.Is(err, ErrTokenExpired):
		return TokenFailureExpired
	case errors.Is(err, ErrTokenMalformed):
		return TokenFailureMalformed
	case errors.Is(err, ErrTokenBadSignature):
		return TokenFailureBadSignature
	case errors.Is(err, ErrTokenUnsupported):
		return TokenFailureUnsupported
	default:
		return TokenFailureInvalid
	}
}
