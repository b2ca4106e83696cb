package httpx

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// TokenTransport is how a deployment carries tokens. One per deployment.
type TokenTransport string

const (
	TransportHeader TokenTransport = "header"
	TransportCookie TokenTransport = "cookie"
)

// Cookie names used by TransportCookie.
const (
	CookieAccessToken  = "token"
	CookieRefreshToken = "refreshToken"
)

// ParseTransport parses "header" or "cookie". Empty means header.
func ParseTransport(s string) (TokenTransport, error) {
	switch TokenTransport(strings.ToLower(strings.TrimSpace(s))) {
	case "", TransportHeader:
		return TransportHeader, nil
	case TransportCookie:
		return TransportCookie, nil
	}
	return "", fmt.Errorf("httpx: unknown token transport %q", s)
}

// AccessToken extracts the access token from r. Header mode expects
// "Authorization: Bearer <token>"; cookie mode reads the first
// space-separated segment of the "token" cookie.
func (t TokenTransport) AccessToken(r *http.Request) string {
	if t == TransportCookie {
		return cookieValue(r, CookieAccessToken)
	}

	authz := r.Header.Get("Authorization")
	scheme, raw, ok := strings.Cut(authz, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return FirstField(raw)
}

// RefreshCookie reads the refresh token cookie.
func RefreshCookie(r *http.Request) string {
	return cookieValue(r, CookieRefreshToken)
}

func cookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return FirstField(c.Value)
}

// SetTokenCookie sets an HttpOnly session cookie that expires with the token.
func SetTokenCookie(w http.ResponseWriter, name, value string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
