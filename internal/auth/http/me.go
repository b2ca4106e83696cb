package http

import (
	"net/http"

	"github.com/aussiebroadwan/tollgate/pkg/authsdk"
	"github.com/aussiebroadwan/tollgate/pkg/httpx"
)

// MeHandler godoc
//
//	@Summary		Current session
//	@Description	Returns the claims of the presented access token.
//	@Tags			Session
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	httpx.Envelope{data=authsdk.Claims}
//	@Failure		401	{object}	httpx.Envelope	"Missing token, Invalid token, or two-factor pending"
//	@Failure		498	{object}	httpx.Envelope	"Token expired"
//	@Router			/api/me [get].
func MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := httpx.SessionFromContext(r.Context())
		if !ok {
			authsdk.ErrInvalidToken.WriteError(w)
			return
		}
		httpx.WriteSuccess(w, http.StatusOK, claims)
	}
}
