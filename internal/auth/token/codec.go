// Package token signs and verifies the bearer credentials issued to
// principals. Tokens are HS256 JWTs carrying only the subject id, issue time
// and expiry; they are never stored server-side.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fieldgate/fieldgate/internal/core/domain"
)

const defaultTTL = 24 * time.Hour

// Codec is a stateless signer/verifier: a pure function of the configured
// secret, the clock, and the payload. Safe for concurrent use.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewCodec creates a Codec for the given process-wide secret. A non-positive
// ttl falls back to 24 hours. Rotating the secret invalidates every
// previously issued token.
func NewCodec(secret string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Codec{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Sign issues a token bound to the given principal id, expiring after the
// configured ttl.
func (c *Codec) Sign(subjectID string) (string, error) {
	now := c.now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   subjectID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify returns the subject id embedded in a valid token. Every failure —
// bad signature, undecodable payload, expiry — collapses to ErrInvalidToken,
// so callers cannot distinguish why a token was rejected.
func (c *Codec) Verify(raw string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return c.now() }))
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return "", domain.ErrInvalidToken
	}
	return claims.Subject, nil
}
