package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/tollgate/internal/auth/domain"
	"github.com/aussiebroadwan/tollgate/internal/auth/service"
	"github.com/aussiebroadwan/tollgate/pkg/authsdk"
	"github.com/aussiebroadwan/tollgate/pkg/httpx"
	"github.com/aussiebroadwan/tollgate/pkg/slogx"
)

const msgVotesCleared = "Votes cleared"

type PostsHandler struct {
	PostService *service.PostService
}

// HandleList godoc
//
//	@Summary		List posts
//	@Tags			Posts
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	httpx.Envelope{data=[]authsdk.Post}
//	@Failure		401	{object}	httpx.Envelope
//	@Failure		498	{object}	httpx.Envelope	"Token expired"
//	@Router			/api/posts [get].
func (h *PostsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	posts, err := h.PostService.ListPosts(r.Context())
	if err != nil {
		slogx.FromContext(r.Context()).Error("failed to list posts", "err", err)
		authsdk.ErrServerError.WriteError(w)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, posts)
}

// HandleVote godoc
//
//	@Summary		Vote on a post
//	@Description	Toggles the caller's vote. Voting the same kind again removes it; voting the other kind switches it.
//	@Tags			Posts
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int					true	"Post id"
//	@Param			request	body		authsdk.VoteRequest	true	"UPVOTE or DOWNVOTE"
//	@Success		200		{object}	httpx.Envelope{data=authsdk.VoteResponse}
//	@Failure		400		{object}	httpx.Envelope	"Invalid post id, or Invalid vote kind"
//	@Failure		404		{object}	httpx.Envelope	"Post not found"
//	@Router			/api/posts/{id}/vote [post].
func (h *PostsHandler) HandleVote(w http.ResponseWriter, r *http.Request) {
	var req authsdk.VoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		authsdk.ErrInvalidRequestBody.WriteError(w)
		return
	}
	h.vote(w, r, domain.VoteKind(req.Kind))
}

// VoteKindHandler votes with a fixed kind, for the /upvote and /downvote
// routes.
//
//	@Summary		Upvote or downvote a post
//	@Description	Same toggle as /vote with the kind taken from the path.
//	@Tags			Posts
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Post id"
//	@Success		200	{object}	httpx.Envelope{data=authsdk.VoteResponse}
//	@Failure		400	{object}	httpx.Envelope	"Invalid post id"
//	@Failure		404	{object}	httpx.Envelope	"Post not found"
//	@Router			/api/posts/{id}/upvote [post]
//	@Router			/api/posts/{id}/downvote [post].
func (h *PostsHandler) VoteKindHandler(kind domain.VoteKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.vote(w, r, kind)
	}
}

func (h *PostsHandler) vote(w http.ResponseWriter, r *http.Request, kind domain.VoteKind) {
	ctx := r.Context()

	postID, ok := postIDFromPath(r)
	if !ok {
		authsdk.ErrInvalidPostID.WriteError(w)
		return
	}
	if _, err := domain.ParseVoteKind(string(kind)); err != nil {
		authsdk.ErrInvalidVoteKind.WriteError(w)
		return
	}

	tally, err := h.PostService.Vote(ctx, postID, httpx.UserIDFromContext(ctx), kind)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			authsdk.ErrPostNotFound.WriteError(w)
		default:
			slogx.FromContext(ctx).Error("vote failed", "post_id", postID, "err", err)
			authsdk.ErrServerError.WriteError(w)
		}
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, tally)
}

// HandleClear godoc
//
//	@Summary		Clear votes
//	@Description	Removes every vote on the post and resets its counters. Admin only.
//	@Tags			Posts
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Post id"
//	@Success		200	{object}	httpx.Envelope	"Votes cleared"
//	@Failure		400	{object}	httpx.Envelope	"Invalid post id"
//	@Failure		403	{object}	httpx.Envelope	"Unauthorized"
//	@Failure		404	{object}	httpx.Envelope	"Post not found"
//	@Router			/api/posts/{id}/clear [post].
func (h *PostsHandler) HandleClear(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	postID, ok := postIDFromPath(r)
	if !ok {
		authsdk.ErrInvalidPostID.WriteError(w)
		return
	}

	if err := h.PostService.ClearVotes(ctx, postID); err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			authsdk.ErrPostNotFound.WriteError(w)
		default:
			slogx.FromContext(ctx).Error("clear votes failed", "post_id", postID, "err", err)
			authsdk.ErrServerError.WriteError(w)
		}
		return
	}
	httpx.WriteMessage(w, http.StatusOK, msgVotesCleared)
}

func postIDFromPath(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
