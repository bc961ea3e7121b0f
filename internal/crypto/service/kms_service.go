package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"

	"gocloud.dev/secrets"

	apperrors "github.com/allisson/workshop-users/internal/errors"

	// Register all KMS provider drivers
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// ErrSigningKeyMissing is returned when no signing secret is configured.
var ErrSigningKeyMissing = apperrors.Wrap(apperrors.ErrInvalidInput, "signing secret is not configured")

// kmsService implements KMSService using gocloud.dev/secrets.
type kmsService struct{}

// NewKMSService creates a new KMS service instance.
func NewKMSService() KMSService {
	return &kmsService{}
}

// OpenKeeper opens a secrets.Keeper for keyURI.
// Supports: gcpkms://, awskms://, azurekeyvault://, hashivault://, base64key://
func (k *kmsService) OpenKeeper(ctx context.Context, keyURI string) (KMSKeeper, error) {
	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	return keeper, nil
}

// LoadSigningKey resolves the token signing key.
//
// Without a keyURI the secret is used as is. With a keyURI the secret must be the
// standard base64 encoding of a ciphertext produced by that KMS key, and the
// decrypted bytes become the signing key. The keeper is closed before returning.
func LoadSigningKey(
	ctx context.Context,
	kms KMSService,
	secret string,
	keyURI string,
	logger *slog.Logger,
) ([]byte, error) {
	if secret == "" {
		return nil, ErrSigningKeyMissing
	}

	if keyURI == "" {
		return []byte(secret), nil
	}

	ciphertext, err := base64.StdEncoding.DecodeString(secret)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "signing secret is not valid base64 ciphertext")
	}

	keeper, err := kms.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := keeper.Close(); closeErr != nil {
			logger.Warn("failed to close KMS keeper", slog.Any("error", closeErr))
		}
	}()

	key, err := keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt signing secret: %w", err)
	}

	logger.Info("signing secret unwrapped with KMS")
	return key, nil
}
