package jwtx

import "errors"

// Token errors. Verification never reports more than one of these, and a
// signature failure always wins over expiry.
var (
	ErrConfig       = errors.New("jwtx: missing secret or expiration")
	ErrMalformed    = errors.New("jwtx: malformed token")
	ErrInvalidSig   = errors.New("jwtx: invalid signature")
	ErrExpired      = errors.New("jwtx: token expired")
	ErrInvalidClaim = errors.New("jwtx: invalid claims")
)

// AccessVerifier verifies access tokens. It is what the HTTP middleware
// depends on; *Issuer satisfies it.
type AccessVerifier interface {
	VerifyAccess(token string) (SessionClaims, error)
}
