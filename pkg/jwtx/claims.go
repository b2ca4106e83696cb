package jwtx

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Roles carried in the "role" claim.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// SessionClaims is the identity carried by every token kind. These are the
// only fields placed into a token and the only fields read back out of one.
type SessionClaims struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Role    string `json:"role"`
}

// IsAdmin reports whether the session holds the ADMIN role.
func (c SessionClaims) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// mapClaims renders the session as a claim set ready for signing. Registered
// claims (iat, exp) are added by the codec.
func (c SessionClaims) mapClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"id":      c.ID,
		"email":   c.Email,
		"name":    c.Name,
		"surname": c.Surname,
		"role":    c.Role,
	}
}

// claimsFromMap copies the allow-listed session fields out of a decoded claim
// set. Everything else (iat, exp, jti, anything a third party slipped in) is
// dropped here.
func claimsFromMap(m jwt.MapClaims) (SessionClaims, error) {
	var out SessionClaims
	fields := []struct {
		name string
		dst  *string
	}{
		{"id", &out.ID},
		{"email", &out.Email},
		{"name", &out.Name},
		{"surname", &out.Surname},
		{"role", &out.Role},
	}

	for _, f := range fields {
		v, ok := m[f.name]
		if !ok || v == nil {
			continue
		}
		s, ok := v.(string)
		if !ok {
			return SessionClaims{}, fmt.Errorf("%w: %q is not a string", ErrInvalidClaim, f.name)
		}
		*f.dst = s
	}

	if out.ID == "" {
		return SessionClaims{}, fmt.Errorf("%w: missing id", ErrInvalidClaim)
	}

	return out, nil
}
