package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/tollgate/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers implement this.
// Sub-repositories hang off it so a Tx can expose the same repos and nobody
// accidentally opens a transaction inside a transaction.
type Store interface {
	Users() Users
	Posts() Posts

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing if fn returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail matches case-insensitively.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user. ErrAlreadyExists on a duplicate email.
	CreateUser(ctx context.Context, u domain.User) error

	IsEmpty(ctx context.Context) (bool, error)

	// SetSessionTokens records the refresh token issued at login, replacing
	// any previous one, and sets or clears (twoFactorToken == "") the pending
	// second factor.
	SetSessionTokens(ctx context.Context, userID, refreshToken string, refreshExpiresAt time.Time, twoFactorToken string) error

	// ClearTwoFactorToken clears the pending second factor only if it is
	// exactly token. ErrNotFound if nothing matched, which includes a second
	// attempt with the same token.
	ClearTwoFactorToken(ctx context.Context, userID, token string) error

	// RotateRefreshToken replaces oldToken with newToken only if oldToken is
	// still the stored value. ErrNotFound otherwise.
	RotateRefreshToken(ctx context.Context, userID, oldToken, newToken string, expiresAt time.Time) error

	// ClearExpiredRefreshTokens drops refresh tokens whose expiry is at or
	// before now and returns how many were dropped.
	ClearExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error)
}

type Posts interface {
	// ListPosts returns every post, newest first.
	ListPosts(ctx context.Context) ([]domain.Post, error)

	GetPost(ctx context.Context, id int64) (domain.Post, error)

	CreatePost(ctx context.Context, p domain.Post) (int64, error)

	// GetVote returns the user's vote on the post, ErrNotFound if none.
	GetVote(ctx context.Context, postID int64, userID string) (domain.Vote, error)

	ListUserVotes(ctx context.Context, postID int64, userID string) ([]domain.Vote, error)

	CreateVote(ctx context.Context, postID int64, userID string, kind domain.VoteKind) error

	DeleteVote(ctx context.Context, id int64) error

	// AdjustCounters adds the deltas to the post's counters, never going
	// below zero. ErrNotFound if the post does not exist.
	AdjustCounters(ctx context.Context, postID int64, upDelta, downDelta int) error

	// ClearVotes deletes every vote on the post and zeroes its counters.
	ClearVotes(ctx context.Context, postID int64) error
}
