// Package service provides the technical building blocks of authentication: the
// signed token codec and password hashing.
package service

import (
	authDomain "github.com/allisson/workshop-users/internal/auth/domain"
)

// TokenCodec issues and verifies signed bearer tokens.
//
// Implementations are stateless: issued tokens are never stored, and a token stays
// valid until its exp claim passes.
type TokenCodec interface {
	// Issue signs a token carrying the principal's identity and granted authorities.
	Issue(principal *authDomain.Principal) (*authDomain.IssuedToken, error)

	// Parse verifies the token and returns its claims. Failures are one of
	// ErrTokenExpired, ErrTokenMalformed, ErrTokenBadSignature, ErrTokenUnsupported
	// or ErrTokenInvalid.
	Parse(token string) (*authDomain.TokenClaims, error)

	// ExtractPrincipalClaims is Parse followed by a projection onto a Principal.
	// It fails with the same errors as Parse.
	ExtractPrincipalClaims(token string) (*authDomain.Principal, error)
}

// PasswordHasher hashes and verifies user passwords.
type PasswordHasher interface {
	// Hash returns an encoded hash of password suitable for storage.
	Hash(password string) (string, error)

	// Compare reports whether password matches the encoded hash. Malformed hashes
	// never match.
	Compare(password string, encodedHash string) bool

	// CompareDummy spends the same work as a real comparison against a fixed hash.
	// It keeps an unknown identifier indistinguishable from a wrong password.
	CompareDummy(password string)
}
