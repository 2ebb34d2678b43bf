package authkit

import (
	"errors"

	"github.com/dsmirnov/authkit/token"
)

// DefaultAccessTokenLifetime is used when the configuration leaves the access
// token lifetime empty.
const DefaultAccessTokenLifetime = "10m"

// AccessTokenService issues and verifies short-lived signed tokens bound to a
// user id.
type AccessTokenService struct {
	codec    *token.Codec
	lifetime string
}

func NewAccessTokenService(secret []byte, lifetime string) *AccessTokenService {
	if lifetime == "" {
		lifetime = DefaultAccessTokenLifetime
	}
	return &AccessTokenService{
		codec:    token.NewCodec(secret),
		lifetime: lifetime,
	}
}

// Generate returns a signed token embedding userID, expiring after the
// configured lifetime.
func (s *AccessTokenService) Generate(userID string) (string, error) {
	signed, err := s.codec.Sign(token.Claims{UserID: userID}, s.lifetime)
	if err != nil {
		return "", NewOpError(CodeTokenSignFailed, err)
	}
	return signed, nil
}

// Verify decodes a signed token. An empty token fails with
// ErrMissingAccessToken and an expired one with ErrAccessTokenExpired; any
// other codec failure (bad signature, structural corruption) propagates
// unchanged so callers can inspect it.
func (s *AccessTokenService) Verify(tokenStr string) (*token.Claims, error) {
	if tokenStr == "" {
		return nil, ErrMissingAccessToken
	}

	claims, err := s.codec.Verify(tokenStr)
	if err != nil {
		if errors.Is(err, token.ErrExpired) {
			return nil, ErrAccessTokenExpired
		}
		return nil, err
	}

	return claims, nil
}
