package domain

import (
	"errors"
	"time"
)

type VoteKind string

const (
	VoteUp   VoteKind = "UPVOTE"
	VoteDown VoteKind = "DOWNVOTE"
)

var ErrInvalidVoteKind = errors.New("domain: invalid vote kind")

func ParseVoteKind(s string) (VoteKind, error) {
	switch k := VoteKind(s); k {
	case VoteUp, VoteDown:
		return k, nil
	}
	return "", ErrInvalidVoteKind
}

type Post struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	ImageURL  string    `json:"imageUrl"`
	Upvotes   int       `json:"upvotes"`
	Downvotes int       `json:"downvotes"`
	CreatedAt time.Time `json:"createdAt"`
}

// Vote is one user's vote on one post. A user holds at most one vote per
// post.
type Vote struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"postId"`
	UserID    string    `json:"userId"`
	Kind      VoteKind  `json:"kind"`
	CreatedAt time.Time `json:"createdAt"`
}

// VoteTally is the post's counters after a vote plus the caller's votes on
// it.
type VoteTally struct {
	Upvotes   int    `json:"upvotes"`
	Downvotes int    `json:"downvotes"`
	Votes     []Vote `json:"votes"`
}
