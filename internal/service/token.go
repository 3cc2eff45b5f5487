package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"go-auth-service/internal/model"
)

// TokenClaims is the decoded content of a bearer token.
type TokenClaims struct {
	Subject     string
	Authorities []string
	IssuedAt    time.Time
	ExpiresAt   time.Time
}

type signedClaims struct {
	Authorities []string `json:"authorities"`
	jwt.RegisteredClaims
}

// TokenCodec signs and parses short-lived HS256 bearer tokens. The secret is
// fixed at construction; rotation requires a restart.
type TokenCodec struct {
	secret   []byte
	lifetime time.Duration
	now      func() time.Time
}

func NewTokenCodec(secret string, lifetime time.Duration) *TokenCodec {
	return &TokenCodec{
		secret:   []byte(secret),
		lifetime: lifetime,
		now:      time.Now,
	}
}

func (c *TokenCodec) Lifetime() time.Duration {
	return c.lifetime
}

// Issue signs a token for subject carrying the ROLE_USER authority,
// expiring lifetime from now.
func (c *TokenCodec) Issue(subject string) (string, error) {
	now := c.now().UTC()

	claims := signedClaims{
		Authorities: []string{model.RoleUser},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.lifetime)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// Parse verifies the signature and expiry and returns the decoded claims.
// Failures map onto the malformed / bad-signature / expired taxonomy so
// callers can log the distinction without surfacing it.
func (c *TokenCodec) Parse(raw string) (*TokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(raw, &signedClaims{},
		func(*jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, fmt.Errorf("%w: %w", model.ErrTokenMalformed, err)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, fmt.Errorf("%w: %w", model.ErrTokenSignature, err)
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, fmt.Errorf("%w: %w", model.ErrTokenExpired, err)
		default:
			return nil, fmt.Errorf("%w: %w", model.ErrTokenMalformed, err)
		}
	}

	claims, ok := parsed.Claims.(*signedClaims)
	if !ok || claims.Subject == "" || claims.ExpiresAt == nil {
		return nil, model.ErrTokenMalformed
	}

	out := &TokenClaims{
		Subject:     claims.Subject,
		Authorities: claims.Authorities,
		ExpiresAt:   claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}

	return out, nil
}

// Validate reports whether raw is a well-signed, unexpired token issued for
// expectedSubject.
func (c *TokenCodec) Validate(raw string, expectedSubject string) bool {
	claims, err := c.Parse(raw)
	if err != nil {
		return false
	}
	return claims.Subject == expectedSubject
}
