package service

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aussiebroadwan/tollgate/internal/auth/domain"
	"github.com/aussiebroadwan/tollgate/internal/auth/store/drivers/sqlite"
	"github.com/aussiebroadwan/tollgate/pkg/cryptox"
	"github.com/aussiebroadwan/tollgate/pkg/jwtx"
	"github.com/aussiebroadwan/tollgate/pkg/mailx"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "tollgate-service")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

// captureMailer records sent messages. Login sends asynchronously, so
// tests wait on sent.
type captureMailer struct {
	mu   sync.Mutex
	msgs []mailx.Message
	sent chan struct{}
}

func newCaptureMailer() *captureMailer {
	return &captureMailer{sent: make(chan struct{}, 16)}
}

func (m *captureMailer) Send(_ context.Context, msg mailx.Message) error {
	m.mu.Lock()
	m.msgs = append(m.msgs, msg)
	m.mu.Unlock()
	m.sent <- struct{}{}
	return nil
}

func (m *captureMailer) wait(t *testing.T) mailx.Message {
	t.Helper()
	select {
	case <-m.sent:
	case <-time.After(5 * time.Second):
		t.Fatal("no mail sent")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.msgs[len(m.msgs)-1]
}

// tickingCodec advances one second per call so every issued token differs.
func tickingCodec() *jwtx.Codec {
	base := time.Now()
	var ticks atomic.Int64
	return &jwtx.Codec{Now: func() time.Time {
		return base.Add(time.Duration(ticks.Add(1)) * time.Second)
	}}
}

type fixture struct {
	store  *sqlite.Store
	issuer *jwtx.Issuer
	mailer *captureMailer
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	s, err := sqlite.NewStore(sqlite.FileDSN(filepath.Join(t.TempDir(), "auth.db")))
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })

	seed := &SeedService{Store: s, Password: "password"}
	seeded, err := seed.Seed(context.Background())
	require.NoError(t, err)
	require.True(t, seeded)

	return fixture{
		store: s,
		issuer: jwtx.NewIssuer(jwtx.IssuerConfig{
			Access:    jwtx.KindConfig{Secret: "access-secret", TTL: time.Minute},
			Refresh:   jwtx.KindConfig{Secret: "refresh-secret", TTL: time.Hour},
			TwoFactor: jwtx.KindConfig{Secret: "two-factor-secret", TTL: 10 * time.Minute},
		}, tickingCodec()),
		mailer: newCaptureMailer(),
	}
}

func (f fixture) sessions(twoFactor, rotate bool) *SessionService {
	return &SessionService{
		Store:            f.store,
		Issuer:           f.issuer,
		Mailer:           f.mailer,
		AppURL:           "https://app.example.com/",
		TwoFactorEnabled: twoFactor,
		RotateRefresh:    rotate,
	}
}

func (f fixture) user(t *testing.T, email string) domain.User {
	t.Helper()
	u, err := f.store.Users().GetUserByEmail(context.Background(), email)
	require.NoError(t, err)
	return u
}

func (f fixture) firstPost(t *testing.T) domain.Post {
	t.Helper()
	posts, err := f.store.Posts().ListPosts(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, posts)
	return posts[0]
}
