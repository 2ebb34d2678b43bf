// Package token implements the signed-token codec: stateless HS256 signing and
// verification of short-lived claims with expiry enforcement.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrExpired is returned by Verify when the token's signature is valid
	// but its expiry has passed. Any other verification failure is reported
	// as a generic invalid-token error.
	ErrExpired = errors.New("token expired")

	// ErrInvalid is returned by Verify for a malformed token, a bad
	// signature, or an unexpected signing method.
	ErrInvalid = errors.New("token invalid")

	// ErrBadLifetime is returned by Sign when the lifetime is not a valid
	// duration string. Bare numbers are rejected on purpose: they read like
	// minutes but would be interpreted as seconds by most token primitives.
	ErrBadLifetime = errors.New("token lifetime must be a duration string like \"10m\"")
)

// Claims carries the subject of a signed token plus the standard temporal
// claims. Any temporal claims present on input to Sign are discarded and
// recomputed.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
}

// Codec signs and verifies tokens with a shared HMAC secret.
type Codec struct {
	secret []byte
}

func NewCodec(secret []byte) *Codec {
	return &Codec{secret: secret}
}

// Sign produces a signed token for claims expiring after lifetime. The
// lifetime must be a duration string ("10m", "1h"); anything else, including
// a bare number, fails with ErrBadLifetime.
func (c *Codec) Sign(claims Claims, lifetime string) (string, error) {
	d, err := time.ParseDuration(lifetime)
	if err != nil || d <= 0 {
		return "", fmt.Errorf("%w: %q", ErrBadLifetime, lifetime)
	}

	now := time.Now()

	// Recompute temporal claims so a caller-supplied exp/iat/nbf can never
	// conflict with the configured lifetime.
	claims.RegisteredClaims = jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(d)),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(c.secret)
	if err != nil {
		return "", err
	}

	return signed, nil
}

// Verify parses and validates a signed token, returning its claims. Expiry is
// reported as ErrExpired; every other failure mode collapses to ErrInvalid.
func (c *Codec) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}

	t, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	if !t.Valid {
		return nil, ErrInvalid
	}

	return claims, nil
}
