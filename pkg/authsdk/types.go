package authsdk

import (
	"time"

	"github.com/aussiebroadwan/tollgate/pkg/jwtx"
)

// ============================================================================
// Envelope
// ============================================================================

// Envelope is the body of every API response. Data is only present on
// success, Message mostly on failure.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data,omitempty"`
}

// ============================================================================
// Session Types
// ============================================================================

// Claims is the claim set carried by every token and returned at login.
type Claims = jwtx.SessionClaims

// LoginRequest is the body of POST /api/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned by POST /api/login.
type LoginResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	Session      Claims `json:"session"`

	// TwoFactorRequired means a confirmation link was emailed and protected
	// routes answer 401 until it is used.
	TwoFactorRequired bool `json:"twoFactorRequired"`
}

// RefreshRequest is the body of POST /api/refresh in header mode. In cookie
// mode the refresh token travels in the refreshToken cookie instead.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// RefreshResponse carries the new access token. RefreshToken is only set
// when the server rotates refresh tokens.
type RefreshResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// TwoFactorRequest is the body of POST /api/2fa.
type TwoFactorRequest struct {
	Token string `json:"token"`
}

// ============================================================================
// Post Types
// ============================================================================

const (
	VoteUp   = "UPVOTE"
	VoteDown = "DOWNVOTE"
)

type Post struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	ImageURL  string    `json:"imageUrl"`
	Upvotes   int       `json:"upvotes"`
	Downvotes int       `json:"downvotes"`
	CreatedAt time.Time `json:"createdAt"`
}

type Vote struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"postId"`
	UserID    string    `json:"userId"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"createdAt"`
}

// VoteRequest is the body of POST /api/posts/{id}/vote.
type VoteRequest struct {
	Kind string `json:"kind"`
}

// VoteResponse is the post's counters after a vote plus the caller's votes
// on it.
type VoteResponse struct {
	Upvotes   int    `json:"upvotes"`
	Downvotes int    `json:"downvotes"`
	Votes     []Vote `json:"votes"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse represents the response structure for health check endpoints.
// Used by both /livez and /readyz endpoints (readyz includes additional Checks field).
type HealthResponse struct {
	// Status indicates the overall health status (e.g., "ok")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	// Checks contains readiness check results for critical dependencies (only for /readyz)
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks represents the status of critical service dependencies.
type HealthChecks struct {
	Database string `json:"database"`

	// Tokens reports whether every token kind has a secret and expiration.
	Tokens string `json:"tokens"`
}
