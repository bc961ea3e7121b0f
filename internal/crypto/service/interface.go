// Package service unwraps configuration secrets through a Key Management Service.
// The token signing secret can be stored encrypted and only decrypted at startup.
package service

import (
	"context"
)

// KMSService opens key keepers used to unwrap configuration secrets.
type KMSService interface {
	// OpenKeeper opens the keeper addressed by keyURI.
	// Returns an error if the KMS provider URI is invalid or connection fails.
	OpenKeeper(ctx context.Context, keyURI string) (KMSKeeper, error)
}

// KMSKeeper decrypts data wrapped by a KMS key. *secrets.Keeper satisfies it.
type KMSKeeper interface {
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}
