package cryptox

import (
	"crypto/sha256"
	"encoding/base64"
)

// FingerprintToken returns a SHA-256 fingerprint of a token, base64url
// encoded. Safe to log; the token itself is not.
func FingerprintToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
