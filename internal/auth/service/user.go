package service

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/tollgate/internal/auth/domain"
	"github.com/aussiebroadwan/tollgate/internal/auth/store"
	"github.com/aussiebroadwan/tollgate/pkg/idx"
)

type UserService struct {
	Store store.Store
}

// GetUserByID fetches a user by id.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, userID)
}

// TwoFactorState reports whether the user exists and whether a second factor
// is still pending. Ids that are not well formed are treated as unknown.
func (s *UserService) TwoFactorState(ctx context.Context, userID string) (exists, pending bool, err error) {
	if _, err := idx.Parse(userID); err != nil {
		return false, false, nil
	}

	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, false, nil
		}
		return false, false, err
	}
	return true, u.TwoFactorPending(), nil
}
