package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/tollgate/internal/auth/domain"
)

type postsRepo struct {
	db DBTX
}

func (r *postsRepo) ListPosts(ctx context.Context) ([]domain.Post, error) {
	rows, err := r.db.QueryContext(ctx, listPosts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []domain.Post{}
	for rows.Next() {
		row, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, mapPost(row))
	}
	return posts, rows.Err()
}

func (r *postsRepo) GetPost(ctx context.Context, id int64) (domain.Post, error) {
	row, err := scanPost(r.db.QueryRowContext(ctx, getPost, id))
	if err != nil {
		return domain.Post{}, mapNotFound(err)
	}
	return mapPost(row), nil
}

func (r *postsRepo) CreatePost(ctx context.Context, p domain.Post) (int64, error) {
	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	res, err := r.db.ExecContext(ctx, createPost, p.Title, p.Content, p.ImageURL, createdAt.UTC())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *postsRepo) GetVote(ctx context.Context, postID int64, userID string) (domain.Vote, error) {
	row, err := scanVote(r.db.QueryRowContext(ctx, getVote, postID, userID))
	if err != nil {
		return domain.Vote{}, mapNotFound(err)
	}
	return mapVote(row), nil
}

func (r *postsRepo) ListUserVotes(ctx context.Context, postID int64, userID string) ([]domain.Vote, error) {
	rows, err := r.db.QueryContext(ctx, listUserVotes, postID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	votes := []domain.Vote{}
	for rows.Next() {
		row, err := scanVote(rows)
		if err != nil {
			return nil, err
		}
		votes = append(votes, mapVote(row))
	}
	return votes, rows.Err()
}

func (r *postsRepo) CreateVote(ctx context.Context, postID int64, userID string, kind domain.VoteKind) error {
	_, err := r.db.ExecContext(ctx, createVote, postID, userID, string(kind))
	return mapConstraint(err)
}

func (r *postsRepo) DeleteVote(ctx context.Context, id int64) error {
	return requireRows(r.db.ExecContext(ctx, deleteVote, id))
}

func (r *postsRepo) AdjustCounters(ctx context.Context, postID int64, upDelta, downDelta int) error {
	return requireRows(r.db.ExecContext(ctx, adjustCounters, upDelta, downDelta, postID))
}

func (r *postsRepo) ClearVotes(ctx context.Context, postID int64) error {
	if _, err := r.db.ExecContext(ctx, deletePostVotes, postID); err != nil {
		return err
	}
	return requireRows(r.db.ExecContext(ctx, resetCounters, postID))
}
