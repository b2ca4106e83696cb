package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/tollgate/internal/auth/domain"
	"github.com/aussiebroadwan/tollgate/internal/auth/store"
	"github.com/aussiebroadwan/tollgate/pkg/cryptox"
	"github.com/aussiebroadwan/tollgate/pkg/idx"
	"github.com/aussiebroadwan/tollgate/pkg/jwtx"
	"github.com/aussiebroadwan/tollgate/pkg/slogx"
)

var ErrSeedFailed = errors.New("failed to seed demo data")

const (
	SeedUserEmail  = "user@example.com"
	SeedAdminEmail = "admin@example.com"
)

var seedUsers = []domain.User{
	{Email: SeedUserEmail, Name: "John", Surname: "Rossi", Role: jwtx.RoleUser},
	{Email: SeedAdminEmail, Name: "Jane", Surname: "White", Role: jwtx.RoleAdmin},
}

var seedPosts = []domain.Post{
	{
		Title:    "Cute dogs",
		Content:  "This is a post about cute dogs, come and see them!",
		ImageURL: "https://images.unsplash.com/photo-1534361960057-19889db9621e?ixlib=rb-4.0.3&ixid=MnwxMjA3fDB8MHxwaG90by1wYWdlfHx8fGVufDB8fHx8&auto=format&fit=crop&w=200",
	},
	{
		Title:    "Cute cats",
		Content:  "This is a post about cute cats, come and see them!",
		ImageURL: "https://images.unsplash.com/photo-1555008872-f03b347ffb53?ixlib=rb-4.0.3&ixid=MnwxMjA3fDB8MHxwaG90by1wYWdlfHx8fGVufDB8fHx8&auto=format&fit=crop&w=200&q=80",
	},
}

// SeedService fills an empty database with a demo user, a demo admin and a
// couple of posts to vote on.
type SeedService struct {
	Store store.Store

	// Password is shared by both demo accounts.
	Password string
}

// IsSeeded reports whether any user exists yet.
func (s *SeedService) IsSeeded(ctx context.Context) (bool, error) {
	empty, err := s.Store.Users().IsEmpty(ctx)
	if err != nil {
		return false, err
	}
	return !empty, nil
}

// Seed creates the demo data unless a user already exists. It returns false
// when nothing was written.
func (s *SeedService) Seed(ctx context.Context) (bool, error) {
	l := slogx.FromContext(ctx)

	if seeded, err := s.IsSeeded(ctx); err != nil {
		return false, err
	} else if seeded {
		l.Debug("database already seeded")
		return false, nil
	}

	passHash, err := cryptox.HashPassword(s.Password)
	if err != nil {
		l.Error("failed to hash seed password", slog.Any("error", err))
		return false, ErrSeedFailed
	}

	now := time.Now()
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		for _, u := range seedUsers {
			u.ID = idx.New().String()
			u.PasswordHash = passHash
			if err := tx.Users().CreateUser(ctx, u); err != nil {
				l.Error("failed to create seed user",
					slog.String("email", u.Email),
					slog.Any("error", err),
				)
				return ErrSeedFailed
			}
		}

		for i, p := range seedPosts {
			p.CreatedAt = now.Add(-time.Duration(len(seedPosts)-i) * 24 * time.Hour)
			if _, err := tx.Posts().CreatePost(ctx, p); err != nil {
				l.Error("failed to create seed post",
					slog.String("title", p.Title),
					slog.Any("error", err),
				)
				return ErrSeedFailed
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	l.Info("seeded demo data",
		slog.Int("users", len(seedUsers)),
		slog.Int("posts", len(seedPosts)),
	)
	return true, nil
}
