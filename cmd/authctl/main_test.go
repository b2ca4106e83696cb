package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	httpapi "github.com/aussiebroadwan/tollgate/internal/auth/http"
	"github.com/aussiebroadwan/tollgate/internal/auth/service"
	"github.com/aussiebroadwan/tollgate/internal/auth/store/drivers/sqlite"
	"github.com/aussiebroadwan/tollgate/pkg/authsdk"
	"github.com/aussiebroadwan/tollgate/pkg/cryptox"
	"github.com/aussiebroadwan/tollgate/pkg/httpx"
	"github.com/aussiebroadwan/tollgate/pkg/jwtx"
	"github.com/aussiebroadwan/tollgate/pkg/mailx"
	"github.com/aussiebroadwan/tollgate/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "authctl")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	st, err := sqlite.NewStore(sqlite.FileDSN(filepath.Join(t.TempDir(), "auth.db")))
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	_, err = (&service.SeedService{Store: st, Password: "password"}).Seed(context.Background())
	require.NoError(t, err)

	issuer := jwtx.NewIssuer(jwtx.IssuerConfig{
		Access:    jwtx.KindConfig{Secret: "access", TTL: time.Minute},
		Refresh:   jwtx.KindConfig{Secret: "refresh", TTL: time.Hour},
		TwoFactor: jwtx.KindConfig{Secret: "two-factor", TTL: time.Minute},
	}, nil)

	router := httpapi.NewRouter(issuer, httpx.TransportHeader, "test", st, slogx.Discard(), nil)
	router.SessionService = &service.SessionService{
		Store:  st,
		Issuer: issuer,
		Mailer: mailx.LogSender{Logger: slogx.Discard()},
	}
	router.TwoFactorService = &service.TwoFactorService{Store: st, Issuer: issuer}
	router.UserService = &service.UserService{Store: st}
	router.PostService = &service.PostService{Store: st}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

// run executes authctl with args and returns stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSessionCommands(t *testing.T) {
	srv := newServer(t)
	state := filepath.Join(t.TempDir(), "state", "session.db")
	global := []string{"--server", srv.URL, "--state", state}
	with := func(args ...string) []string { return append(append([]string{}, args...), global...) }

	_, err := run(t, "", with("whoami")...)
	require.ErrorIs(t, err, authsdk.ErrMissingToken)

	out, err := run(t, "password\n", with("login", "--email", "admin@example.com")...)
	require.NoError(t, err)
	require.Contains(t, out, "Jane White <admin@example.com> (ADMIN)")

	// State survives between invocations.
	out, err = run(t, "", with("whoami")...)
	require.NoError(t, err)
	require.Contains(t, out, "admin@example.com")

	out, err = run(t, "", with("refresh")...)
	require.NoError(t, err)
	require.Contains(t, out, "refreshed")

	out, err = run(t, "", with("posts", "list")...)
	require.NoError(t, err)
	require.Contains(t, out, "Cute cats")

	out, err = run(t, "", with("posts", "vote", "1", "up")...)
	require.NoError(t, err)
	require.Contains(t, out, "1 up, 0 down (your vote: UPVOTE)")

	out, err = run(t, "", with("posts", "clear", "1")...)
	require.NoError(t, err)
	require.Contains(t, out, "Votes cleared")

	_, err = run(t, "", with("logout")...)
	require.NoError(t, err)

	_, err = run(t, "", with("whoami", "--local")...)
	require.ErrorIs(t, err, authsdk.ErrNotAuthenticated)
}

func TestLoginFailure(t *testing.T) {
	srv := newServer(t)
	state := filepath.Join(t.TempDir(), "session.db")

	_, err := run(t, "", "login", "-e", "user@example.com", "-p", "wrong", "--server", srv.URL, "--state", state)
	require.ErrorIs(t, err, authsdk.ErrInvalidCredentials)

	_, err = run(t, "", "login", "--server", srv.URL, "--state", state)
	require.ErrorContains(t, err, "--email is required")
}

func TestTwoFactorToken(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"bare token", " abc.def.ghi ", "abc.def.ghi", false},
		{"emailed link", "http://localhost:3000/two-factor?token=abc.def.ghi", "abc.def.ghi", false},
		{"link without token", "http://localhost:3000/two-factor", "", true},
		{"empty", "  ", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := twoFactorToken(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseVoteKind(t *testing.T) {
	for in, want := range map[string]string{"up": authsdk.VoteUp, "DOWN": authsdk.VoteDown, "upvote": authsdk.VoteUp} {
		got, err := parseVoteKind(in)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	_, err := parseVoteKind("sideways")
	require.Error(t, err)

	_, err = parsePostID("0")
	require.Error(t, err)
}
