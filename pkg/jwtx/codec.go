package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Codec signs and verifies HS256 session tokens against a caller-supplied
// secret. The zero value uses the wall clock.
type Codec struct {
	// Now overrides the clock. Used by tests.
	Now func() time.Time
}

func (c *Codec) now() time.Time {
	if c != nil && c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// Issue signs claims with secret, stamping iat and exp = now + ttl.
func (c *Codec) Issue(claims SessionClaims, secret string, ttl time.Duration) (string, error) {
	if secret == "" || ttl <= 0 {
		return "", ErrConfig
	}

	now := c.now()
	mc := claims.mapClaims()
	mc["iat"] = jwt.NewNumericDate(now)
	mc["exp"] = jwt.NewNumericDate(now.Add(ttl))

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, mc).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("jwtx: sign: %w", err)
	}
	return signed, nil
}

// Verify checks the signature first and expiry second, then returns only the
// allow-listed session claims.
func (c *Codec) Verify(token, secret string) (SessionClaims, error) {
	if secret == "" {
		return SessionClaims{}, ErrConfig
	}
	if token == "" {
		return SessionClaims{}, ErrMalformed
	}

	// Registered-claim validation is done below so that expiry can never
	// mask a bad signature.
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	mc := jwt.MapClaims{}
	_, err := parser.ParseWithClaims(token, mc, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid),
			errors.Is(err, jwt.ErrTokenUnverifiable):
			return SessionClaims{}, ErrInvalidSig
		default:
			return SessionClaims{}, ErrMalformed
		}
	}

	exp, err := mc.GetExpirationTime()
	if err != nil || exp == nil {
		return SessionClaims{}, fmt.Errorf("%w: missing exp", ErrInvalidClaim)
	}
	if !c.now().Before(exp.Time) {
		return SessionClaims{}, ErrExpired
	}

	return claimsFromMap(mc)
}
