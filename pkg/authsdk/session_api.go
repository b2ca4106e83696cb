package authsdk

import (
	"context"
	"fmt"
	"net/http"
)

// Me returns the signed-in user's claims as the server sees them.
func (s *Session) Me(ctx context.Context) (*Claims, error) {
	var out Claims
	if err := s.Do(ctx, http.MethodGet, "/api/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ConfirmTwoFactor submits the emailed two-factor token.
func (s *Session) ConfirmTwoFactor(ctx context.Context, token string) error {
	if !s.IsAuthenticated() {
		return ErrNotAuthenticated
	}
	return s.Do(ctx, http.MethodPost, "/api/2fa", TwoFactorRequest{Token: token}, nil)
}

// ListPosts returns every post, newest first.
func (s *Session) ListPosts(ctx context.Context) ([]Post, error) {
	var out []Post
	if err := s.Do(ctx, http.MethodGet, "/api/posts", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Vote toggles the user's vote of kind (VoteUp or VoteDown) on a post.
func (s *Session) Vote(ctx context.Context, postID int64, kind string) (*VoteResponse, error) {
	var out VoteResponse
	path := fmt.Sprintf("/api/posts/%d/vote", postID)
	if err := s.Do(ctx, http.MethodPost, path, VoteRequest{Kind: kind}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) Upvote(ctx context.Context, postID int64) (*VoteResponse, error) {
	return s.voteRoute(ctx, postID, "upvote")
}

func (s *Session) Downvote(ctx context.Context, postID int64) (*VoteResponse, error) {
	return s.voteRoute(ctx, postID, "downvote")
}

func (s *Session) voteRoute(ctx context.Context, postID int64, route string) (*VoteResponse, error) {
	var out VoteResponse
	path := fmt.Sprintf("/api/posts/%d/%s", postID, route)
	if err := s.Do(ctx, http.MethodPost, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ClearVotes removes every vote on a post. Admin only.
func (s *Session) ClearVotes(ctx context.Context, postID int64) error {
	return s.Do(ctx, http.MethodPost, fmt.Sprintf("/api/posts/%d/clear", postID), nil, nil)
}
