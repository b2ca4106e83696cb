package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/tollgate/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials", func(t *testing.T) {
		f := newFixture(t)
		res, err := f.sessions(false, false).Login(ctx, " User@Example.com ", "password")
		require.NoError(t, err)

		require.NotEmpty(t, res.AccessToken)
		require.NotEmpty(t, res.RefreshToken)
		require.False(t, res.TwoFactorRequired)
		require.Equal(t, SeedUserEmail, res.Session.Email)
		require.Equal(t, jwtx.RoleUser, res.Session.Role)

		claims, err := f.issuer.VerifyAccess(res.AccessToken)
		require.NoError(t, err)
		require.Equal(t, res.Session, claims)

		u := f.user(t, SeedUserEmail)
		require.Equal(t, res.RefreshToken, u.RefreshToken)
		require.NotNil(t, u.RefreshExpiresAt)
		require.False(t, u.TwoFactorPending())
	})

	t.Run("missing fields", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.sessions(false, false).Login(ctx, "", "password")
		require.ErrorIs(t, err, ErrMissingCredentials)
		_, err = f.sessions(false, false).Login(ctx, SeedUserEmail, "")
		require.ErrorIs(t, err, ErrMissingCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.sessions(false, false).Login(ctx, SeedUserEmail, "nope")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.sessions(false, false).Login(ctx, "nobody@example.com", "password")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("two factor enabled", func(t *testing.T) {
		f := newFixture(t)
		res, err := f.sessions(true, false).Login(ctx, SeedUserEmail, "password")
		require.NoError(t, err)
		require.True(t, res.TwoFactorRequired)
		require.NotEmpty(t, res.AccessToken)

		u := f.user(t, SeedUserEmail)
		require.True(t, u.TwoFactorPending())

		msg := f.mailer.wait(t)
		require.Equal(t, []string{SeedUserEmail}, msg.To)
		require.Contains(t, msg.Text, "https://app.example.com/two-factor?token="+u.TwoFactorToken)
		require.Contains(t, msg.HTML, "two-factor?token=")
	})

	t.Run("second login replaces refresh token", func(t *testing.T) {
		f := newFixture(t)
		svc := f.sessions(false, false)
		first, err := svc.Login(ctx, SeedUserEmail, "password")
		require.NoError(t, err)
		second, err := svc.Login(ctx, SeedUserEmail, "password")
		require.NoError(t, err)
		require.NotEqual(t, first.RefreshToken, second.RefreshToken)

		_, err = svc.Refresh(ctx, first.RefreshToken)
		require.ErrorIs(t, err, ErrRefreshMismatch)
	})
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()

	t.Run("stored token issues new access token", func(t *testing.T) {
		f := newFixture(t)
		svc := f.sessions(false, false)
		login, err := svc.Login(ctx, SeedUserEmail, "password")
		require.NoError(t, err)

		res, err := svc.Refresh(ctx, login.RefreshToken)
		require.NoError(t, err)
		require.NotEmpty(t, res.AccessToken)
		require.Empty(t, res.RefreshToken, "no rotation by default")

		claims, err := f.issuer.VerifyAccess(res.AccessToken)
		require.NoError(t, err)
		require.Equal(t, login.Session, claims)

		// Without rotation the same refresh token keeps working.
		_, err = svc.Refresh(ctx, login.RefreshToken)
		require.NoError(t, err)
	})

	t.Run("missing token", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.sessions(false, false).Refresh(ctx, "")
		require.ErrorIs(t, err, ErrMissingRefreshToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.sessions(false, false).Refresh(ctx, "not.a.jwt")
		require.ErrorIs(t, err, ErrInvalidRefresh)
	})

	t.Run("access token is not a refresh token", func(t *testing.T) {
		f := newFixture(t)
		svc := f.sessions(false, false)
		login, err := svc.Login(ctx, SeedUserEmail, "password")
		require.NoError(t, err)
		_, err = svc.Refresh(ctx, login.AccessToken)
		require.ErrorIs(t, err, ErrInvalidRefresh)
	})

	t.Run("signed but not stored is a mismatch", func(t *testing.T) {
		f := newFixture(t)
		svc := f.sessions(false, false)
		login, err := svc.Login(ctx, SeedUserEmail, "password")
		require.NoError(t, err)

		forged := login.Session
		forged.Name = "Someone Else"
		tok, err := f.issuer.IssueRefresh(forged)
		require.NoError(t, err)

		_, err = svc.Refresh(ctx, tok)
		require.ErrorIs(t, err, ErrRefreshMismatch)
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newFixture(t)
		tok, err := f.issuer.IssueRefresh(jwtx.SessionClaims{ID: "01ARZ3NDEKTSV4RRFFQ69G5FAV"})
		require.NoError(t, err)
		_, err = f.sessions(false, false).Refresh(ctx, tok)
		require.ErrorIs(t, err, ErrInvalidRefresh)
	})

	t.Run("expired token", func(t *testing.T) {
		f := newFixture(t)
		past := jwtx.NewIssuer(jwtx.IssuerConfig{
			Refresh: jwtx.KindConfig{Secret: "refresh-secret", TTL: time.Minute},
		}, &jwtx.Codec{Now: func() time.Time { return time.Now().Add(-time.Hour) }})

		u := f.user(t, SeedUserEmail)
		tok, err := past.IssueRefresh(u.Session())
		require.NoError(t, err)

		_, err = f.sessions(false, false).Refresh(ctx, tok)
		require.ErrorIs(t, err, ErrRefreshExpired)
	})

	t.Run("rotation invalidates the presented token", func(t *testing.T) {
		f := newFixture(t)
		svc := f.sessions(false, true)
		login, err := svc.Login(ctx, SeedUserEmail, "password")
		require.NoError(t, err)

		res, err := svc.Refresh(ctx, login.RefreshToken)
		require.NoError(t, err)
		require.NotEmpty(t, res.RefreshToken)
		require.NotEqual(t, login.RefreshToken, res.RefreshToken)
		require.Equal(t, res.RefreshToken, f.user(t, SeedUserEmail).RefreshToken)

		_, err = svc.Refresh(ctx, login.RefreshToken)
		require.ErrorIs(t, err, ErrRefreshMismatch)

		_, err = svc.Refresh(ctx, res.RefreshToken)
		require.NoError(t, err)
	})
}

func TestRefreshExpiryFollowsIssuerClock(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	now := time.Now().Add(72 * time.Hour).Truncate(time.Second)
	f.issuer = jwtx.NewIssuer(jwtx.IssuerConfig{
		Access:    jwtx.KindConfig{Secret: "access-secret", TTL: time.Minute},
		Refresh:   jwtx.KindConfig{Secret: "refresh-secret", TTL: time.Hour},
		TwoFactor: jwtx.KindConfig{Secret: "two-factor-secret", TTL: 10 * time.Minute},
	}, &jwtx.Codec{Now: func() time.Time { return now }})
	want := now.Add(time.Hour)
	require.Equal(t, want, f.issuer.ExpiresAt(jwtx.KindRefresh))

	t.Run("login", func(t *testing.T) {
		_, err := f.sessions(false, false).Login(ctx, SeedUserEmail, "password")
		require.NoError(t, err)

		u := f.user(t, SeedUserEmail)
		require.NotNil(t, u.RefreshExpiresAt)
		require.WithinDuration(t, want, *u.RefreshExpiresAt, time.Second)
	})

	t.Run("rotation", func(t *testing.T) {
		svc := f.sessions(false, true)
		login, err := svc.Login(ctx, SeedAdminEmail, "password")
		require.NoError(t, err)

		now = now.Add(time.Minute)
		_, err = svc.Refresh(ctx, login.RefreshToken)
		require.NoError(t, err)

		u := f.user(t, SeedAdminEmail)
		require.NotNil(t, u.RefreshExpiresAt)
		require.WithinDuration(t, now.Add(time.Hour), *u.RefreshExpiresAt, time.Second)
	})
}

func TestTwoFactorMessage(t *testing.T) {
	msg := twoFactorMessage("https://app.example.com/", "a@example.com", "a.b+c")
	require.Equal(t, []string{"a@example.com"}, msg.To)
	require.NotEmpty(t, msg.Subject)
	require.True(t, strings.Contains(msg.Text, "https://app.example.com/two-factor?token=a.b%2Bc"))
}
