package httpx

import (
	"context"
	"errors"
	"net/http"

	"github.com/aussiebroadwan/tollgate/pkg/cryptox"
	"github.com/aussiebroadwan/tollgate/pkg/jwtx"
	"github.com/aussiebroadwan/tollgate/pkg/slogx"
)

// UserLookup reports whether the user behind a verified token still exists
// and whether they have a two-factor confirmation outstanding.
type UserLookup interface {
	TwoFactorState(ctx context.Context, userID string) (exists, pending bool, err error)
}

// AuthObserver receives one outcome per request. Optional.
type AuthObserver interface {
	ObserveAuth(outcome string)
}

// Outcomes reported to AuthObserver.
const (
	AuthOK                = "ok"
	AuthMissing           = "missing"
	AuthExpired           = "expired"
	AuthInvalid           = "invalid"
	AuthUnknownUser       = "unknown_user"
	AuthTwoFactorRequired = "two_factor_required"
	AuthError             = "error"
)

// AuthnConfig configures AuthnMiddleware.
type AuthnConfig struct {
	Verifier  jwtx.AccessVerifier
	Users     UserLookup
	Transport TokenTransport

	// EnforceTwoFactor rejects users that have a pending two-factor token.
	// The route that confirms the second factor runs with this off.
	EnforceTwoFactor bool

	Observer AuthObserver
}

// AuthnMiddleware verifies the access token, checks the user still exists,
// applies the two-factor gate and attaches the claims to the request
// context.
func AuthnMiddleware(cfg AuthnConfig) Middleware {
	observe := func(outcome string) {
		if cfg.Observer != nil {
			cfg.Observer.ObserveAuth(outcome)
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw := cfg.Transport.AccessToken(r)
			if raw == "" {
				observe(AuthMissing)
				log.Error("authn failed", "path", r.URL.Path, "reason", AuthMissing)
				WriteFailure(w, http.StatusUnauthorized, MsgMissingToken)
				return
			}

			claims, err := cfg.Verifier.VerifyAccess(raw)
			if err != nil {
				if errors.Is(err, jwtx.ErrExpired) {
					observe(AuthExpired)
					log.Error("authn failed", "path", r.URL.Path, "reason", AuthExpired, "token_fp", cryptox.FingerprintToken(raw))
					WriteFailure(w, StatusTokenExpired, MsgTokenExpired)
					return
				}
				observe(AuthInvalid)
				log.Error("authn failed", "path", r.URL.Path, "reason", AuthInvalid, "err", err, "token_fp", cryptox.FingerprintToken(raw))
				WriteFailure(w, http.StatusUnauthorized, MsgInvalidToken)
				return
			}

			exists, pending, err := cfg.Users.TwoFactorState(ctx, claims.ID)
			switch {
			case err != nil:
				observe(AuthError)
				log.Error("authn user lookup failed", "path", r.URL.Path, "user_id", claims.ID, "err", err)
				WriteFailure(w, http.StatusInternalServerError, MsgInternal)
				return
			case !exists:
				observe(AuthUnknownUser)
				log.Error("authn failed", "path", r.URL.Path, "reason", AuthUnknownUser, "user_id", claims.ID)
				WriteFailure(w, http.StatusUnauthorized, MsgInvalidToken)
				return
			case pending && cfg.EnforceTwoFactor:
				observe(AuthTwoFactorRequired)
				log.Error("authn failed", "path", r.URL.Path, "reason", AuthTwoFactorRequired, "user_id", claims.ID)
				WriteFailure(w, http.StatusUnauthorized, MsgTwoFactorRequired)
				return
			}

			observe(AuthOK)
			ctx = ContextWithSession(ctx, claims)
			ctx = slogx.WithUserID(ctx, claims.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
