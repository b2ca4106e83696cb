package sqlite

import (
	"context"
	"database/sql"
	"time"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx so repos run unchanged
// inside and outside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const userColumns = `id, email, name, surname, password_hash, role,
	refresh_token, refresh_expires_at, two_factor_token, created_at, updated_at`

const (
	getUserByID    = `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	getUserByEmail = `SELECT ` + userColumns + ` FROM users WHERE email = ?`
	createUser     = `INSERT INTO users (id, email, name, surname, password_hash, role) VALUES (?, ?, ?, ?, ?, ?)`
	countUsers     = `SELECT COUNT(*) FROM users`

	setSessionTokens = `UPDATE users
	SET refresh_token = ?, refresh_expires_at = ?, two_factor_token = ?, updated_at = CURRENT_TIMESTAMP
	WHERE id = ?`

	clearTwoFactorToken = `UPDATE users
	SET two_factor_token = NULL, updated_at = CURRENT_TIMESTAMP
	WHERE id = ? AND two_factor_token = ?`

	rotateRefreshToken = `UPDATE users
	SET refresh_token = ?, refresh_expires_at = ?, updated_at = CURRENT_TIMESTAMP
	WHERE id = ? AND refresh_token = ?`

	clearExpiredRefreshTokens = `UPDATE users
	SET refresh_token = NULL, refresh_expires_at = NULL
	WHERE refresh_token IS NOT NULL AND refresh_expires_at <= ?`
)

const postColumns = `id, title, content, image_url, upvotes, downvotes, created_at`

const (
	listPosts  = `SELECT ` + postColumns + ` FROM posts ORDER BY created_at DESC, id DESC`
	getPost    = `SELECT ` + postColumns + ` FROM posts WHERE id = ?`
	createPost = `INSERT INTO posts (title, content, image_url, created_at) VALUES (?, ?, ?, ?)`

	adjustCounters = `UPDATE posts
	SET upvotes = MAX(upvotes + ?, 0), downvotes = MAX(downvotes + ?, 0)
	WHERE id = ?`

	resetCounters = `UPDATE posts SET upvotes = 0, downvotes = 0 WHERE id = ?`
)

const voteColumns = `id, post_id, user_id, kind, created_at`

const (
	getVote         = `SELECT ` + voteColumns + ` FROM votes WHERE post_id = ? AND user_id = ?`
	listUserVotes   = `SELECT ` + voteColumns + ` FROM votes WHERE post_id = ? AND user_id = ? ORDER BY id`
	createVote      = `INSERT INTO votes (post_id, user_id, kind) VALUES (?, ?, ?)`
	deleteVote      = `DELETE FROM votes WHERE id = ?`
	deletePostVotes = `DELETE FROM votes WHERE post_id = ?`
)

type rowScanner interface {
	Scan(dest ...any) error
}

type userRow struct {
	ID               string
	Email            string
	Name             string
	Surname          string
	PasswordHash     string
	Role             string
	RefreshToken     sql.NullString
	RefreshExpiresAt sql.NullInt64
	TwoFactorToken   sql.NullString
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func scanUser(s rowScanner) (userRow, error) {
	var r userRow
	err := s.Scan(
		&r.ID,
		&r.Email,
		&r.Name,
		&r.Surname,
		&r.PasswordHash,
		&r.Role,
		&r.RefreshToken,
		&r.RefreshExpiresAt,
		&r.TwoFactorToken,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	return r, err
}

type postRow struct {
	ID        int64
	Title     string
	Content   string
	ImageURL  string
	Upvotes   int
	Downvotes int
	CreatedAt time.Time
}

func scanPost(s rowScanner) (postRow, error) {
	var r postRow
	err := s.Scan(&r.ID, &r.Title, &r.Content, &r.ImageURL, &r.Upvotes, &r.Downvotes, &r.CreatedAt)
	return r, err
}

type voteRow struct {
	ID        int64
	PostID    int64
	UserID    string
	Kind      string
	CreatedAt time.Time
}

func scanVote(s rowScanner) (voteRow, error) {
	var r voteRow
	err := s.Scan(&r.ID, &r.PostID, &r.UserID, &r.Kind, &r.CreatedAt)
	return r, err
}
