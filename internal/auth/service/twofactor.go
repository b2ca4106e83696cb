package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aussiebroadwan/tollgate/internal/auth/store"
	"github.com/aussiebroadwan/tollgate/pkg/jwtx"
	"github.com/aussiebroadwan/tollgate/pkg/slogx"
)

var (
	ErrMissingTwoFactorToken = errors.New("missing_two_factor_token")
	ErrInvalidTwoFactor      = errors.New("invalid_two_factor_token")
)

type TwoFactorService struct {
	Store  store.Store
	Issuer *jwtx.Issuer
}

// Confirm clears the user's pending second factor if token is exactly the
// stored value. The check and the clear are a single conditional update, so
// the same token only ever succeeds once.
func (s *TwoFactorService) Confirm(ctx context.Context, userID, token string) error {
	l := slogx.FromContext(ctx)

	if token == "" {
		return ErrMissingTwoFactorToken
	}

	claims, err := s.Issuer.VerifyTwoFactor(token)
	if err != nil {
		if errors.Is(err, jwtx.ErrConfig) {
			return err
		}
		l.Warn("two factor token rejected", slog.String("user_id", userID), slog.Any("error", err))
		return ErrInvalidTwoFactor
	}
	if claims.ID != userID {
		l.Warn("two factor token issued for another user", slog.String("user_id", userID))
		return ErrInvalidTwoFactor
	}

	if err := s.Store.Users().ClearTwoFactorToken(ctx, userID, token); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			l.Warn("two factor token does not match pending value", slog.String("user_id", userID))
			return ErrInvalidTwoFactor
		}
		return err
	}

	l.Info("two factor confirmed", slog.String("user_id", userID))
	return nil
}
