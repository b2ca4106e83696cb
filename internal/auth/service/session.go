package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/aussiebroadwan/tollgate/internal/auth/domain"
	"github.com/aussiebroadwan/tollgate/internal/auth/store"
	"github.com/aussiebroadwan/tollgate/pkg/cryptox"
	"github.com/aussiebroadwan/tollgate/pkg/jwtx"
	"github.com/aussiebroadwan/tollgate/pkg/mailx"
	"github.com/aussiebroadwan/tollgate/pkg/slogx"
)

var (
	ErrMissingCredentials  = errors.New("missing_credentials")
	ErrInvalidCredentials  = errors.New("invalid_credentials")
	ErrMissingRefreshToken = errors.New("missing_refresh_token")
	ErrInvalidRefresh      = errors.New("invalid_refresh_token")
	ErrRefreshExpired      = errors.New("refresh_token_expired")
	ErrRefreshMismatch     = errors.New("refresh_token_mismatch")
)

// mailTimeout bounds the out-of-band two-factor email. The login response
// does not wait for it.
const mailTimeout = 30 * time.Second

type SessionService struct {
	Store  store.Store
	Issuer *jwtx.Issuer
	Mailer mailx.Sender

	// AppURL is the public base URL used to build the two-factor link.
	AppURL string

	TwoFactorEnabled bool

	// RotateRefresh issues a new refresh token on every refresh and
	// invalidates the presented one.
	RotateRefresh bool
}

// Login checks the password and issues an access and refresh token. When
// two-factor is enabled a two-factor token is stored against the user and
// emailed; the session stays gated until it is confirmed.
func (s *SessionService) Login(ctx context.Context, email, password string) (domain.LoginResult, error) {
	l := slogx.FromContext(ctx)

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return domain.LoginResult{}, ErrMissingCredentials
	}

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			l.Warn("login for unknown email")
			return domain.LoginResult{}, ErrInvalidCredentials
		}
		return domain.LoginResult{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		l.Warn("login password mismatch", slog.String("user_id", user.ID))
		return domain.LoginResult{}, ErrInvalidCredentials
	}

	claims := user.Session()
	access, err := s.Issuer.IssueAccess(claims)
	if err != nil {
		return domain.LoginResult{}, fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := s.Issuer.IssueRefresh(claims)
	if err != nil {
		return domain.LoginResult{}, fmt.Errorf("issue refresh token: %w", err)
	}

	var twoFactor string
	if s.TwoFactorEnabled {
		twoFactor, err = s.Issuer.IssueTwoFactor(claims)
		if err != nil {
			return domain.LoginResult{}, fmt.Errorf("issue two factor token: %w", err)
		}
	}

	expiresAt := s.Issuer.ExpiresAt(jwtx.KindRefresh)
	if err := s.Store.Users().SetSessionTokens(ctx, user.ID, refresh, expiresAt, twoFactor); err != nil {
		return domain.LoginResult{}, fmt.Errorf("store session tokens: %w", err)
	}

	if twoFactor != "" {
		s.sendTwoFactorMail(l, user, twoFactor)
	}

	l.Info("login succeeded",
		slog.String("user_id", user.ID),
		slog.Bool("two_factor_required", twoFactor != ""),
	)
	return domain.LoginResult{
		AccessToken:       access,
		RefreshToken:      refresh,
		Session:           claims,
		TwoFactorRequired: twoFactor != "",
	}, nil
}

func (s *SessionService) sendTwoFactorMail(l *slog.Logger, user domain.User, token string) {
	if s.Mailer == nil {
		l.Warn("two factor token issued but no mailer configured", slog.String("user_id", user.ID))
		return
	}

	msg := twoFactorMessage(s.AppURL, user.Email, token)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), mailTimeout)
		defer cancel()
		if err := s.Mailer.Send(slogx.WithContext(ctx, l), msg); err != nil {
			l.Error("failed to send two factor email",
				slog.String("user_id", user.ID),
				slog.Any("error", err),
			)
		}
	}()
}

func twoFactorMessage(appURL, to, token string) mailx.Message {
	link := strings.TrimRight(appURL, "/") + "/two-factor?token=" + url.QueryEscape(token)
	return mailx.Message{
		To:      []string{to},
		Subject: "Your sign-in confirmation link",
		Text: "Hi,\n\n" +
			"Click the link below to finish signing in:\n" +
			link + "\n\n" +
			"If you did not try to sign in you can ignore this email.\n",
		HTML: "<p>Hi,</p>" +
			"<p>Click the link below to finish signing in:</p>" +
			`<p><a href="` + link + `">Confirm sign-in</a></p>` +
			"<p>If you did not try to sign in you can ignore this email.</p>",
	}
}

// Refresh mints a new access token for a refresh token that verifies and is
// still the one stored for its user. The compare and the optional rotation
// happen in one transaction.
func (s *SessionService) Refresh(ctx context.Context, refreshToken string) (domain.RefreshResult, error) {
	l := slogx.FromContext(ctx)

	if refreshToken == "" {
		return domain.RefreshResult{}, ErrMissingRefreshToken
	}

	claims, err := s.Issuer.VerifyRefresh(refreshToken)
	if err != nil {
		if errors.Is(err, jwtx.ErrExpired) {
			l.Warn("refresh token expired", slog.String("token_fp", cryptox.FingerprintToken(refreshToken)))
			return domain.RefreshResult{}, ErrRefreshExpired
		}
		if errors.Is(err, jwtx.ErrConfig) {
			return domain.RefreshResult{}, err
		}
		l.Error("refresh token rejected",
			slog.String("token_fp", cryptox.FingerprintToken(refreshToken)),
			slog.Any("error", err),
		)
		return domain.RefreshResult{}, ErrInvalidRefresh
	}

	var res domain.RefreshResult
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		user, err := tx.Users().GetUserByID(ctx, claims.ID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvalidRefresh
			}
			return err
		}

		if subtle.ConstantTimeCompare([]byte(user.RefreshToken), []byte(refreshToken)) != 1 {
			return ErrRefreshMismatch
		}

		// Claims come from the stored user so a role change shows up on the
		// next refresh.
		session := user.Session()
		res.AccessToken, err = s.Issuer.IssueAccess(session)
		if err != nil {
			return fmt.Errorf("issue access token: %w", err)
		}

		if !s.RotateRefresh {
			return nil
		}
		next, err := s.Issuer.IssueRefresh(session)
		if err != nil {
			return fmt.Errorf("issue refresh token: %w", err)
		}
		expiresAt := s.Issuer.ExpiresAt(jwtx.KindRefresh)
		if err := tx.Users().RotateRefreshToken(ctx, user.ID, refreshToken, next, expiresAt); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrRefreshMismatch
			}
			return err
		}
		res.RefreshToken = next
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrRefreshMismatch) {
			l.Warn("refresh token mismatch",
				slog.String("user_id", claims.ID),
				slog.String("token_fp", cryptox.FingerprintToken(refreshToken)),
			)
		}
		return domain.RefreshResult{}, err
	}

	l.Info("session refreshed", slog.String("user_id", claims.ID), slog.Bool("rotated", res.RefreshToken != ""))
	return res, nil
}
