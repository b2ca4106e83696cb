package sqlite_test

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aussiebroadwan/tollgate/internal/auth/domain"
	"github.com/aussiebroadwan/tollgate/internal/auth/store"
	"github.com/aussiebroadwan/tollgate/internal/auth/store/drivers/sqlite"
	"github.com/aussiebroadwan/tollgate/pkg/idx"
	"github.com/aussiebroadwan/tollgate/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.NewStore(sqlite.FileDSN(filepath.Join(t.TempDir(), "auth.db")))
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func createUser(t *testing.T, s store.Store, email string) domain.User {
	t.Helper()
	u := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		Name:         "John",
		Surname:      "Rossi",
		PasswordHash: "hash",
		Role:         jwtx.RoleUser,
	}
	require.NoError(t, s.Users().CreateUser(context.Background(), u))
	return u
}

func TestMigrationsAreIdempotent(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.Ping(context.Background()))
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	empty, err := s.Users().IsEmpty(ctx)
	require.NoError(t, err)
	require.True(t, empty)

	u := createUser(t, s, "User@Example.com")

	t.Run("lookup by id and email", func(t *testing.T) {
		got, err := s.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, "user@example.com", got.Email)
		require.Equal(t, jwtx.RoleUser, got.Role)
		require.False(t, got.CreatedAt.IsZero())
		require.False(t, got.TwoFactorPending())

		got, err = s.Users().GetUserByEmail(ctx, "USER@example.com")
		require.NoError(t, err)
		require.Equal(t, u.ID, got.ID)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := s.Users().GetUserByID(ctx, "nope")
		require.ErrorIs(t, err, store.ErrNotFound)
		_, err = s.Users().GetUserByEmail(ctx, "nobody@example.com")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("duplicate email", func(t *testing.T) {
		err := s.Users().CreateUser(ctx, domain.User{
			ID:           idx.New().String(),
			Email:        "user@example.com",
			PasswordHash: "x",
			Role:         jwtx.RoleUser,
		})
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("session tokens", func(t *testing.T) {
		exp := time.Now().Add(time.Hour).Truncate(time.Second)
		require.NoError(t, s.Users().SetSessionTokens(ctx, u.ID, "refresh-1", exp, "2fa-1"))

		got, err := s.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, "refresh-1", got.RefreshToken)
		require.Equal(t, "2fa-1", got.TwoFactorToken)
		require.NotNil(t, got.RefreshExpiresAt)
		require.True(t, exp.Equal(*got.RefreshExpiresAt))

		// A later login overwrites both.
		require.NoError(t, s.Users().SetSessionTokens(ctx, u.ID, "refresh-2", exp, ""))
		got, err = s.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, "refresh-2", got.RefreshToken)
		require.Empty(t, got.TwoFactorToken)

		require.ErrorIs(t, s.Users().SetSessionTokens(ctx, "ghost", "r", exp, ""), store.ErrNotFound)
	})
}

func TestClearTwoFactorToken(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	u := createUser(t, s, "user@example.com")
	exp := time.Now().Add(time.Hour)

	require.NoError(t, s.Users().SetSessionTokens(ctx, u.ID, "refresh", exp, "pending-token"))

	t.Run("wrong token leaves pending value", func(t *testing.T) {
		require.ErrorIs(t, s.Users().ClearTwoFactorToken(ctx, u.ID, "other"), store.ErrNotFound)
		require.ErrorIs(t, s.Users().ClearTwoFactorToken(ctx, u.ID, "PENDING-TOKEN"), store.ErrNotFound)
		require.ErrorIs(t, s.Users().ClearTwoFactorToken(ctx, u.ID, ""), store.ErrNotFound)

		got, err := s.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.True(t, got.TwoFactorPending())
	})

	t.Run("matching token clears once", func(t *testing.T) {
		require.NoError(t, s.Users().ClearTwoFactorToken(ctx, u.ID, "pending-token"))
		require.ErrorIs(t, s.Users().ClearTwoFactorToken(ctx, u.ID, "pending-token"), store.ErrNotFound)

		got, err := s.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.False(t, got.TwoFactorPending())
	})
}

func TestClearTwoFactorTokenConcurrent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	u := createUser(t, s, "user@example.com")
	require.NoError(t, s.Users().SetSessionTokens(ctx, u.ID, "refresh", time.Now().Add(time.Hour), "race-token"))

	const attempts = 8
	var wins atomic.Int32
	var wg sync.WaitGroup
	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.Users().ClearTwoFactorToken(ctx, u.ID, "race-token"); err == nil {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	require.EqualValues(t, 1, wins.Load())
}

func TestRotateAndExpireRefreshTokens(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	u := createUser(t, s, "user@example.com")
	v := createUser(t, s, "other@example.com")

	now := time.Now()
	require.NoError(t, s.Users().SetSessionTokens(ctx, u.ID, "old", now.Add(time.Hour), ""))
	require.NoError(t, s.Users().SetSessionTokens(ctx, v.ID, "stale", now.Add(-time.Minute), ""))

	require.ErrorIs(t, s.Users().RotateRefreshToken(ctx, u.ID, "wrong", "new", now.Add(time.Hour)), store.ErrNotFound)
	require.NoError(t, s.Users().RotateRefreshToken(ctx, u.ID, "old", "new", now.Add(2*time.Hour)))
	require.ErrorIs(t, s.Users().RotateRefreshToken(ctx, u.ID, "old", "newer", now.Add(time.Hour)), store.ErrNotFound)

	n, err := s.Users().ClearExpiredRefreshTokens(ctx, now)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	got, err := s.Users().GetUserByID(ctx, v.ID)
	require.NoError(t, err)
	require.Empty(t, got.RefreshToken)
	require.Nil(t, got.RefreshExpiresAt)

	got, err = s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "new", got.RefreshToken)
}

func TestWithTxRollsBack(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	u := createUser(t, s, "user@example.com")

	err := s.WithTx(ctx, func(tx store.Tx) error {
		require.NoError(t, tx.Users().SetSessionTokens(ctx, u.ID, "in-tx", time.Now().Add(time.Hour), ""))
		_, nestedErr := tx.Tx(ctx)
		require.Error(t, nestedErr)
		return store.ErrNotFound
	})
	require.ErrorIs(t, err, store.ErrNotFound)

	got, err := s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Empty(t, got.RefreshToken)
}
