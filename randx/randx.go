// Package randx provides URL-safe random token generation for opaque
// credentials such as refresh tokens and signing secrets.
package randx

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
)

// Token generates size random bytes and encodes them as unpadded base64url.
// The resulting string is safe for use in URLs, headers, and cookies.
//
// It returns an error only if the system's random number generator fails.
func Token(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// HexString generates size random bytes encoded as a hexadecimal string. The
// final string length is twice the size, since each byte expands to two hex
// characters.
func HexString(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
