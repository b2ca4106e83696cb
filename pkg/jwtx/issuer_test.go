package jwtx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/tollgate/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func testIssuer() *jwtx.Issuer {
	return jwtx.NewIssuer(jwtx.IssuerConfig{
		Access:    jwtx.KindConfig{Secret: "access-secret", TTL: 15 * time.Minute},
		Refresh:   jwtx.KindConfig{Secret: "refresh-secret", TTL: 7 * 24 * time.Hour},
		TwoFactor: jwtx.KindConfig{Secret: "two-factor-secret", TTL: 10 * time.Minute},
	}, nil)
}

func TestIssuerKindsAreIsolated(t *testing.T) {
	iss := testIssuer()

	access, err := iss.IssueAccess(testClaims)
	require.NoError(t, err)
	refresh, err := iss.IssueRefresh(testClaims)
	require.NoError(t, err)
	twoFactor, err := iss.IssueTwoFactor(testClaims)
	require.NoError(t, err)

	got, err := iss.VerifyAccess(access)
	require.NoError(t, err)
	require.Equal(t, testClaims, got)

	_, err = iss.VerifyRefresh(refresh)
	require.NoError(t, err)
	_, err = iss.VerifyTwoFactor(twoFactor)
	require.NoError(t, err)

	_, err = iss.VerifyAccess(refresh)
	require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	_, err = iss.VerifyRefresh(access)
	require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	_, err = iss.VerifyTwoFactor(access)
	require.ErrorIs(t, err, jwtx.ErrInvalidSig)
}

func TestIssuerConfig(t *testing.T) {
	t.Run("complete config validates", func(t *testing.T) {
		require.NoError(t, testIssuer().Validate())
	})

	t.Run("missing two factor secret", func(t *testing.T) {
		iss := jwtx.NewIssuer(jwtx.IssuerConfig{
			Access:    jwtx.KindConfig{Secret: "a", TTL: time.Minute},
			Refresh:   jwtx.KindConfig{Secret: "r", TTL: time.Hour},
			TwoFactor: jwtx.KindConfig{TTL: time.Minute},
		}, nil)

		require.ErrorIs(t, iss.Validate(), jwtx.ErrConfig)

		_, err := iss.IssueTwoFactor(testClaims)
		require.ErrorIs(t, err, jwtx.ErrConfig)
		_, err = iss.VerifyTwoFactor("anything")
		require.ErrorIs(t, err, jwtx.ErrConfig)

		// Other kinds keep working.
		_, err = iss.IssueAccess(testClaims)
		require.NoError(t, err)
	})

	t.Run("missing refresh expiration", func(t *testing.T) {
		iss := jwtx.NewIssuer(jwtx.IssuerConfig{
			Access:    jwtx.KindConfig{Secret: "a", TTL: time.Minute},
			Refresh:   jwtx.KindConfig{Secret: "r"},
			TwoFactor: jwtx.KindConfig{Secret: "t", TTL: time.Minute},
		}, nil)

		require.ErrorIs(t, iss.Validate(), jwtx.ErrConfig)
		_, err := iss.IssueRefresh(testClaims)
		require.ErrorIs(t, err, jwtx.ErrConfig)
	})
}

func TestIssuerExpiry(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	clock := now
	codec := &jwtx.Codec{Now: func() time.Time { return clock }}
	iss := jwtx.NewIssuer(jwtx.IssuerConfig{
		Access:    jwtx.KindConfig{Secret: "a", TTL: time.Minute},
		Refresh:   jwtx.KindConfig{Secret: "r", TTL: time.Hour},
		TwoFactor: jwtx.KindConfig{Secret: "t", TTL: time.Minute},
	}, codec)

	access, err := iss.IssueAccess(testClaims)
	require.NoError(t, err)
	refresh, err := iss.IssueRefresh(testClaims)
	require.NoError(t, err)

	clock = now.Add(2 * time.Minute)

	_, err = iss.VerifyAccess(access)
	require.ErrorIs(t, err, jwtx.ErrExpired)
	_, err = iss.VerifyRefresh(refresh)
	require.NoError(t, err)
	require.Equal(t, time.Hour, iss.TTL(jwtx.KindRefresh))
}
