package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aussiebroadwan/tollgate/internal/auth/domain"
	"github.com/aussiebroadwan/tollgate/internal/auth/store"
	"github.com/aussiebroadwan/tollgate/pkg/slogx"
)

var ErrPostNotFound = errors.New("post_not_found")

type PostService struct {
	Store store.Store
}

func (s *PostService) ListPosts(ctx context.Context) ([]domain.Post, error) {
	return s.Store.Posts().ListPosts(ctx)
}

// delta returns the counter change for adding (sign 1) or removing (sign -1)
// a vote of kind.
func delta(kind domain.VoteKind, sign int) (up, down int) {
	if kind == domain.VoteUp {
		return sign, 0
	}
	return 0, sign
}

// Vote toggles the user's vote on a post. Voting the same kind twice removes
// the vote; voting the other kind switches it. Returns the post's counters
// and the user's remaining votes on it.
func (s *PostService) Vote(ctx context.Context, postID int64, userID string, kind domain.VoteKind) (domain.VoteTally, error) {
	l := slogx.FromContext(ctx)

	if _, err := domain.ParseVoteKind(string(kind)); err != nil {
		return domain.VoteTally{}, err
	}

	var tally domain.VoteTally
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		posts := tx.Posts()

		if _, err := posts.GetPost(ctx, postID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrPostNotFound
			}
			return err
		}

		up, down := delta(kind, 1)
		existing, err := posts.GetVote(ctx, postID, userID)
		switch {
		case errors.Is(err, store.ErrNotFound):
			if err := posts.CreateVote(ctx, postID, userID, kind); err != nil {
				return err
			}
		case err != nil:
			return err
		case existing.Kind == kind:
			if err := posts.DeleteVote(ctx, existing.ID); err != nil {
				return err
			}
			up, down = delta(kind, -1)
		default:
			if err := posts.DeleteVote(ctx, existing.ID); err != nil {
				return err
			}
			if err := posts.CreateVote(ctx, postID, userID, kind); err != nil {
				return err
			}
			oldUp, oldDown := delta(existing.Kind, -1)
			up, down = up+oldUp, down+oldDown
		}

		if err := posts.AdjustCounters(ctx, postID, up, down); err != nil {
			return err
		}

		post, err := posts.GetPost(ctx, postID)
		if err != nil {
			return err
		}
		votes, err := posts.ListUserVotes(ctx, postID, userID)
		if err != nil {
			return err
		}
		tally = domain.VoteTally{Upvotes: post.Upvotes, Downvotes: post.Downvotes, Votes: votes}
		return nil
	})
	if err != nil {
		return domain.VoteTally{}, err
	}

	l.Debug("vote recorded",
		slog.Int64("post_id", postID),
		slog.String("kind", string(kind)),
		slog.Int("upvotes", tally.Upvotes),
		slog.Int("downvotes", tally.Downvotes),
	)
	return tally, nil
}

// ClearVotes removes every vote on the post and resets its counters.
func (s *PostService) ClearVotes(ctx context.Context, postID int64) error {
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Posts().GetPost(ctx, postID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrPostNotFound
			}
			return err
		}
		return tx.Posts().ClearVotes(ctx, postID)
	})
	if err != nil {
		return err
	}
	slogx.FromContext(ctx).Info("votes cleared", slog.Int64("post_id", postID))
	return nil
}
