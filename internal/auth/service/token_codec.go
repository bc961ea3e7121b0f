package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	authDomain "github.com/allisson/workshop-users/internal/auth/domain"
	apperrors "github.com/allisson/workshop-users/internal/errors"
)

// MinSigningKeyLength is the shortest HMAC-SHA256 key the codec accepts (256 bits).
const MinSigningKeyLength = 32

// ErrWeakSigningKey is returned when the configured secret is shorter than MinSigningKeyLength.
var ErrWeakSigningKey = apperrors.Wrap(
	apperrors.ErrInvalidInput,
	fmt.Sprintf("signing key must be at least %d bytes", MinSigningKeyLength),
)

// jwtClaims is the wire form of the token payload.
type jwtClaims struct {
	jwtlib.RegisteredClaims
	UserID      string   `json:"userId"`
	Email       string   `json:"email"`
	Username    string   `json:"username"`
	Roles       []string `json:"roles"`
	Authorities []string `json:"authorities"`
}

// Validate runs after the registered-claim checks of the parser.
func (c *jwtClaims) Validate() error {
	if c.IssuedAt == nil {
		return errors.New("missing iat claim")
	}
	if c.ID == "" {
		return errors.New("missing jti claim")
	}
	if c.Subject == "" || c.Subject != c.UserID {
		return errors.New("sub claim does not match userId")
	}
	if _, err := uuid.Parse(c.UserID); err != nil {
		return fmt.Errorf("userId claim is not a uuid: %w", err)
	}
	if c.Email == "" || c.Username == "" {
		return errors.New("missing identity claims")
	}
	return nil
}

// CodecOption customizes a JWT token codec.
type CodecOption func(*jwtTokenCodec)

// WithClock replaces the time source used for iat, exp and expiry checks.
func WithClock(now func() time.Time) CodecOption {
	return func(c *jwtTokenCodec) {
		c.now = now
	}
}

// WithIssuer overrides the iss claim written and required by the codec.
func WithIssuer(issuer string) CodecOption {
	return func(c *jwtTokenCodec) {
		c.issuer = issuer
	}
}

// WithAudience overrides the aud claim. An empty audience disables the claim.
func WithAudience(audience string) CodecOption {
	return func(c *jwtTokenCodec) {
		c.audience = audience
	}
}

// jwtTokenCodec implements TokenCodec with HS256-signed JWTs.
type jwtTokenCodec struct {
	secret   []byte
	method   jwtlib.SigningMethod
	issuer   string
	audience string
	now      func() time.Time
	parser   *jwtlib.Parser
}

// NewJWTTokenCodec creates a TokenCodec signing with HMAC-SHA256 over secret.
// The secret is copied; later changes to the caller's slice have no effect.
func NewJWTTokenCodec(secret []byte, opts ...CodecOption) (TokenCodec, error) {
	if len(secret) < MinSigningKeyLength {
		return nil, ErrWeakSigningKey
	}

	c := &jwtTokenCodec{
		secret:   append([]byte(nil), secret...),
		method:   jwtlib.SigningMethodHS256,
		issuer:   authDomain.DefaultTokenIssuer,
		audience: authDomain.DefaultTokenAudience,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	parserOpts := []jwtlib.ParserOption{
		jwtlib.WithTimeFunc(func() time.Time { return c.now() }),
		jwtlib.WithExpirationRequired(),
		jwtlib.WithIssuedAt(),
		jwtlib.WithIssuer(c.issuer),
	}
	if c.audience != "" {
		parserOpts = append(parserOpts, jwtlib.WithAudience(c.audience))
	}
	c.parser = jwtlib.NewParser(parserOpts...)

	return c, nil
}

// Issue signs a token for principal valid for authDomain.TokenValidity.
func (c *jwtTokenCodec) Issue(principal *authDomain.Principal) (*authDomain.IssuedToken, error) {
	if principal == nil || principal.ID == uuid.Nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "principal without identity")
	}

	issuedAt := jwtlib.NewNumericDate(c.now().UTC())
	expiresAt := jwtlib.NewNumericDate(issuedAt.Add(authDomain.TokenValidity))
	tokenID := uuid.NewString()

	roles := make([]string, 0, len(principal.Roles))
	for _, role := range principal.Roles {
		roles = append(roles, string(role))
	}

	claims := jwtClaims{
		RegisteredClaims: jwtlib.RegisteredClaims{
			Issuer:    c.issuer,
			Subject:   principal.ID.String(),
			IssuedAt:  issuedAt,
			ExpiresAt: expiresAt,
			ID:        tokenID,
		},
		UserID:      principal.ID.String(),
		Email:       principal.Email,
		Username:    principal.Username,
		Roles:       roles,
		Authorities: principal.Authorities.Strings(),
	}
	if c.audience != "" {
		claims.Audience = jwtlib.ClaimStrings{c.audience}
	}

	signed, err := jwtlib.NewWithClaims(c.method, claims).SignedString(c.secret)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to sign token")
	}

	return &authDomain.IssuedToken{
		Token:     signed,
		TokenID:   tokenID,
		IssuedAt:  issuedAt.Time,
		ExpiresAt: expiresAt.Time,
	}, nil
}

// Parse verifies signature and claims, then maps the payload to domain claims.
func (c *jwtTokenCodec) Parse(token string) (*authDomain.TokenClaims, error) {
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("%w: empty token", authDomain.ErrTokenInvalid)
	}

	claims := &jwtClaims{}
	if _, err := c.parser.ParseWithClaims(token, claims, c.keyFunc); err != nil {
		return nil, c.classify(token, err)
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", authDomain.ErrTokenInvalid, err)
	}

	return &authDomain.TokenClaims{
		TokenID:     claims.ID,
		Issuer:      claims.Issuer,
		Subject:     claims.Subject,
		Audience:    []string(claims.Audience),
		IssuedAt:    claims.IssuedAt.Time,
		ExpiresAt:   claims.ExpiresAt.Time,
		UserID:      userID,
		Email:       claims.Email,
		Username:    claims.Username,
		Roles:       claims.Roles,
		Authorities: claims.Authorities,
	}, nil
}

// ExtractPrincipalClaims parses token and projects its identity and authorities.
func (c *jwtTokenCodec) ExtractPrincipalClaims(token string) (*authDomain.Principal, error) {
	claims, err := c.Parse(token)
	if err != nil {
		return nil, err
	}
	return claims.Principal(), nil
}

// keyFunc only releases the key for the configured algorithm, so "none" and
// asymmetric algorithms surface as unverifiable instead of a signature mismatch.
func (c *jwtTokenCodec) keyFunc(token *jwtlib.Token) (any, error) {
	if token.Method == nil || token.Method.Alg() != c.method.Alg() {
		return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
	}
	return c.secret, nil
}

// classify maps golang-jwt errors onto the domain token taxonomy.
func (c *jwtTokenCodec) classify(token string, err error) error {
	var kind error
	switch {
	case errors.Is(err, jwtlib.ErrTokenMalformed):
		kind = authDomain.ErrTokenMalformed
	case errors.Is(err, jwtlib.ErrTokenUnverifiable):
		kind = authDomain.ErrTokenUnsupported
	case errors.Is(err, jwtlib.ErrTokenSignatureInvalid):
		kind = authDomain.ErrTokenBadSignature
		if c.expiredUnverified(token) {
			kind = authDomain.ErrTokenExpired
		}
	case errors.Is(err, jwtlib.ErrTokenExpired):
		kind = authDomain.ErrTokenExpired
	default:
		kind = authDomain.ErrTokenInvalid
	}
	return fmt.Errorf("%w: %v", kind, err)
}

// expiredUnverified reports whether the token's exp claim has passed, without
// trusting anything else in it. An expired token is reported as expired even
// when its signature is also wrong.
func (c *jwtTokenCodec) expiredUnverified(token string) bool {
	claims := &jwtClaims{}
	if _, _, err := jwtlib.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	return claims.ExpiresAt != nil && !c.now().Before(claims.ExpiresAt.Time)
}
