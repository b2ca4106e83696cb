package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/aussiebroadwan/tollgate/internal/auth/metrics"
	"github.com/aussiebroadwan/tollgate/internal/auth/service"
	"github.com/aussiebroadwan/tollgate/pkg/authsdk"
	"github.com/aussiebroadwan/tollgate/pkg/httpx"
	"github.com/aussiebroadwan/tollgate/pkg/jwtx"
	"github.com/aussiebroadwan/tollgate/pkg/slogx"
)

type SessionHandler struct {
	SessionService *service.SessionService
	Issuer         *jwtx.Issuer
	Transport      httpx.TokenTransport
	Metrics        *metrics.Metrics
}

// HandleLogin exchanges an email and password for a token pair.
//
//	@Summary		Log in
//	@Description	Verifies the credentials and returns an access token, a refresh token and the session claims.
//	@Description	When two-factor is enabled a confirmation link is emailed and protected routes answer 401 until POST /api/2fa succeeds.
//	@Description	In cookie mode the tokens are also set as the HttpOnly cookies token and refreshToken.
//	@Tags			Session
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	httpx.Envelope{data=authsdk.LoginResponse}
//	@Failure		400		{object}	httpx.Envelope	"Missing email or password"
//	@Failure		401		{object}	httpx.Envelope	"Invalid email or password"
//	@Failure		429		{object}	httpx.Envelope	"Too many requests"
//	@Router			/api/login [post].
func (h *SessionHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req authsdk.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Metrics.ObserveSession(metrics.EventLogin, "bad_request")
		authsdk.ErrInvalidRequestBody.WriteError(w)
		return
	}

	res, err := h.SessionService.Login(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingCredentials):
			h.Metrics.ObserveSession(metrics.EventLogin, "missing")
			authsdk.ErrMissingCredentials.WriteError(w)
		case errors.Is(err, service.ErrInvalidCredentials):
			h.Metrics.ObserveSession(metrics.EventLogin, "invalid")
			authsdk.ErrInvalidCredentials.WriteError(w)
		default:
			h.Metrics.ObserveSession(metrics.EventLogin, "error")
			slogx.FromContext(ctx).Error("login failed", "err", err)
			authsdk.ErrServerError.WriteError(w)
		}
		return
	}

	if h.Transport == httpx.TransportCookie {
		httpx.SetTokenCookie(w, httpx.CookieAccessToken, res.AccessToken, h.Issuer.TTL(jwtx.KindAccess))
		httpx.SetTokenCookie(w, httpx.CookieRefreshToken, res.RefreshToken, h.Issuer.TTL(jwtx.KindRefresh))
	}

	h.Metrics.ObserveSession(metrics.EventLogin, "ok")
	httpx.WriteSuccess(w, http.StatusOK, authsdk.LoginResponse{
		Token:             res.AccessToken,
		RefreshToken:      res.RefreshToken,
		Session:           res.Session,
		TwoFactorRequired: res.TwoFactorRequired,
	})
}

// HandleRefresh trades the stored refresh token for a new access token.
//
//	@Summary		Refresh the access token
//	@Description	Verifies the refresh token and checks it is the one stored for its user, then issues a new access token.
//	@Description	Header mode reads {refreshToken} from the body; cookie mode reads the refreshToken cookie.
//	@Description	The refresh token is only replaced when AUTH_REFRESH_ROTATION is on.
//	@Tags			Session
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.RefreshRequest	false	"Refresh token (header mode)"
//	@Success		200		{object}	httpx.Envelope{data=authsdk.RefreshResponse}
//	@Failure		400		{object}	httpx.Envelope	"Missing refresh token"
//	@Failure		401		{object}	httpx.Envelope	"Invalid token, or Refresh token mismatch"
//	@Failure		498		{object}	httpx.Envelope	"Token expired"
//	@Router			/api/refresh [post].
func (h *SessionHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var presented string
	if h.Transport == httpx.TransportCookie {
		presented = httpx.RefreshCookie(r)
	} else {
		var req authsdk.RefreshRequest
		// An empty body is a missing token, not a malformed request.
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			h.Metrics.ObserveSession(metrics.EventRefresh, "bad_request")
			authsdk.ErrInvalidRequestBody.WriteError(w)
			return
		}
		presented = req.RefreshToken
	}

	res, err := h.SessionService.Refresh(ctx, presented)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingRefreshToken):
			h.Metrics.ObserveSession(metrics.EventRefresh, "missing")
			authsdk.ErrMissingRefreshToken.WriteError(w)
		case errors.Is(err, service.ErrRefreshExpired):
			h.Metrics.ObserveSession(metrics.EventRefresh, "expired")
			authsdk.ErrTokenExpired.WriteError(w)
		case errors.Is(err, service.ErrInvalidRefresh):
			h.Metrics.ObserveSession(metrics.EventRefresh, "invalid")
			authsdk.ErrInvalidToken.WriteError(w)
		case errors.Is(err, service.ErrRefreshMismatch):
			h.Metrics.ObserveSession(metrics.EventRefresh, "mismatch")
			authsdk.ErrRefreshMismatch.WriteError(w)
		default:
			h.Metrics.ObserveSession(metrics.EventRefresh, "error")
			slogx.FromContext(ctx).Error("refresh failed", "err", err)
			authsdk.ErrServerError.WriteError(w)
		}
		return
	}

	if h.Transport == httpx.TransportCookie {
		httpx.SetTokenCookie(w, httpx.CookieAccessToken, res.AccessToken, h.Issuer.TTL(jwtx.KindAccess))
		if res.RefreshToken != "" {
			httpx.SetTokenCookie(w, httpx.CookieRefreshToken, res.RefreshToken, h.Issuer.TTL(jwtx.KindRefresh))
		}
	}

	h.Metrics.ObserveSession(metrics.EventRefresh, "ok")
	httpx.WriteSuccess(w, http.StatusOK, authsdk.RefreshResponse{
		Token:        res.AccessToken,
		RefreshToken: res.RefreshToken,
	})
}
