package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aussiebroadwan/tollgate/internal/auth/metrics"
	"github.com/aussiebroadwan/tollgate/internal/auth/service"
	"github.com/aussiebroadwan/tollgate/pkg/authsdk"
	"github.com/aussiebroadwan/tollgate/pkg/httpx"
	"github.com/aussiebroadwan/tollgate/pkg/slogx"
)

const msgTwoFactorConfirmed = "Two factor authentication successful"

type TwoFactorHandler struct {
	TwoFactorService *service.TwoFactorService
	Metrics          *metrics.Metrics
}

// ServeHTTP confirms the emailed second factor for the signed-in user.
//
//	@Summary		Confirm two-factor
//	@Description	Submits the token from the emailed link. It must equal the user's pending token exactly and succeeds only once.
//	@Description	This route accepts access tokens whose user still has a pending second factor.
//	@Tags			Session
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.TwoFactorRequest	true	"Two-factor token"
//	@Success		200		{object}	httpx.Envelope	"Two factor authentication successful"
//	@Failure		400		{object}	httpx.Envelope	"Missing two factor token"
//	@Failure		401		{object}	httpx.Envelope	"Invalid two factor token"
//	@Failure		498		{object}	httpx.Envelope	"Token expired"
//	@Router			/api/2fa [post].
func (h *TwoFactorHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := httpx.UserIDFromContext(ctx)
	if userID == "" {
		authsdk.ErrInvalidToken.WriteError(w)
		return
	}

	var req authsdk.TwoFactorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Metrics.ObserveSession(metrics.EventTwoFactor, "bad_request")
		authsdk.ErrInvalidRequestBody.WriteError(w)
		return
	}

	err := h.TwoFactorService.Confirm(ctx, userID, req.Token)
	switch {
	case err == nil:
		h.Metrics.ObserveSession(metrics.EventTwoFactor, "ok")
		httpx.WriteMessage(w, http.StatusOK, msgTwoFactorConfirmed)
	case errors.Is(err, service.ErrMissingTwoFactorToken):
		h.Metrics.ObserveSession(metrics.EventTwoFactor, "missing")
		authsdk.ErrMissingTwoFactor.WriteError(w)
	case errors.Is(err, service.ErrInvalidTwoFactor):
		h.Metrics.ObserveSession(metrics.EventTwoFactor, "invalid")
		authsdk.ErrInvalidTwoFactor.WriteError(w)
	default:
		h.Metrics.ObserveSession(metrics.EventTwoFactor, "error")
		slogx.FromContext(ctx).Error("two factor confirm failed", "err", err)
		authsdk.ErrServerError.WriteError(w)
	}
}
