package authsdk

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/tollgate/pkg/httpx"
)

// ============================================================================
// APIError
// ============================================================================

// APIError is a {success:false,message} response. It is used both by the
// server, to write the response, and by the client, to surface it. Message
// is meant to be shown to the user as is.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
}

// Is matches on status code and message so predefined errors can be used
// with errors.Is against decoded responses.
func (e *APIError) Is(target error) bool {
	var t *APIError
	if !errors.As(target, &t) {
		return false
	}
	return e.StatusCode == t.StatusCode && e.Message == t.Message
}

// WriteError writes this error as a failure envelope.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.WriteFailure(w, e.StatusCode, e.Message)
}

// Expired reports whether the server asked for a token refresh.
func (e *APIError) Expired() bool {
	return e.StatusCode == httpx.StatusTokenExpired
}

// ============================================================================
// Predefined Server Errors
// ============================================================================

var (
	ErrMissingCredentials  = &APIError{http.StatusBadRequest, "Missing email or password"}
	ErrInvalidCredentials  = &APIError{http.StatusUnauthorized, "Invalid email or password"}
	ErrMissingRefreshToken = &APIError{http.StatusBadRequest, "Missing refresh token"}
	ErrRefreshMismatch     = &APIError{http.StatusUnauthorized, "Refresh token mismatch"}
	ErrMissingTwoFactor    = &APIError{http.StatusBadRequest, "Missing two factor token"}
	ErrInvalidTwoFactor    = &APIError{http.StatusUnauthorized, "Invalid two factor token"}
	ErrInvalidPostID       = &APIError{http.StatusBadRequest, "Invalid post id"}
	ErrInvalidVoteKind     = &APIError{http.StatusBadRequest, "Invalid vote kind"}
	ErrPostNotFound        = &APIError{http.StatusNotFound, "Post not found"}
	ErrInvalidRequestBody  = &APIError{http.StatusBadRequest, httpx.MsgInvalidRequestBody}

	ErrMissingToken      = &APIError{http.StatusUnauthorized, httpx.MsgMissingToken}
	ErrTokenExpired      = &APIError{httpx.StatusTokenExpired, httpx.MsgTokenExpired}
	ErrInvalidToken      = &APIError{http.StatusUnauthorized, httpx.MsgInvalidToken}
	ErrTwoFactorRequired = &APIError{http.StatusUnauthorized, httpx.MsgTwoFactorRequired}
	ErrForbidden         = &APIError{http.StatusForbidden, httpx.MsgUnauthorized}
	ErrServerError       = &APIError{http.StatusInternalServerError, httpx.MsgInternal}
)

// ============================================================================
// Client Errors
// ============================================================================

var (
	// ErrRefreshTokenNotFound means there is no refresh token in memory or
	// storage to refresh with.
	ErrRefreshTokenNotFound = errors.New("refresh token not found")

	// ErrUnableToRefresh is returned when a request still fails with an
	// expired token after one refresh, or the refresh itself fails.
	ErrUnableToRefresh = errors.New("unable to refresh token")

	// ErrNotAuthenticated is returned by calls that need a session when
	// there is none.
	ErrNotAuthenticated = errors.New("not authenticated")
)

// NetworkError wraps a transport failure. It is never retried.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return "network error: " + e.Err.Error() }
func (e *NetworkError) Unwrap() error { return e.Err }
