package service

import (
	"strings"

	"github.com/allisson/go-pwdhash"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/allisson/workshop-users/internal/errors"
)

// bcryptPrefixes identify hashes written by bcrypt implementations.
var bcryptPrefixes = []string{"$2a$", "$2b$", "$2y$"}

// passwordHasher hashes new passwords with Argon2id and still verifies bcrypt
// hashes carried over from older account stores.
type passwordHasher struct {
	hasher    *pwdhash.PasswordHasher
	dummyHash string
}

// NewPasswordHasher creates a PasswordHasher using the interactive Argon2id policy.
func NewPasswordHasher() (PasswordHasher, error) {
	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyInteractive))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create password hasher")
	}

	dummyHash, err := hasher.Hash([]byte("workshop-users-dummy-password"))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to prepare dummy hash")
	}

	return &passwordHasher{
		hasher:    hasher,
		dummyHash: dummyHash,
	}, nil
}

// Hash returns the Argon2id encoding of password.
func (p *passwordHasher) Hash(password string) (string, error) {
	hash, err := p.hasher.Hash([]byte(password))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash password")
	}
	return hash, nil
}

// Compare verifies password against an Argon2id or bcrypt hash in constant time.
func (p *passwordHasher) Compare(password string, encodedHash string) bool {
	if encodedHash == "" {
		return false
	}

	if isBcryptHash(encodedHash) {
		return bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password)) == nil
	}

	ok, err := p.hasher.Verify([]byte(password), encodedHash)
	if err != nil {
		return false
	}
	return ok
}

// CompareDummy runs a full Argon2id verification whose result is discarded.
func (p *passwordHasher) CompareDummy(password string) {
	_, _ = p.hasher.Verify([]byte(password), p.dummyHash)
}

func isBcryptHash(encodedHash string) bool {
	for _, prefix := range bcryptPrefixes {
		if strings.HasPrefix(encodedHash, prefix) {
			return true
		}
	}
	return false
}
