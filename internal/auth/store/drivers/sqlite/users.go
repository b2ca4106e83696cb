package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/aussiebroadwan/tollgate/internal/auth/domain"
	"github.com/aussiebroadwan/tollgate/internal/auth/store"
)

type usersRepo struct {
	db DBTX
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row, err := scanUser(r.db.QueryRowContext(ctx, getUserByID, id))
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row, err := scanUser(r.db.QueryRowContext(ctx, getUserByEmail, strings.TrimSpace(email)))
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx, createUser,
		u.ID,
		strings.ToLower(strings.TrimSpace(u.Email)),
		u.Name,
		u.Surname,
		u.PasswordHash,
		u.Role,
	)
	return mapConstraint(err)
}

func (r *usersRepo) IsEmpty(ctx context.Context) (bool, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, countUsers).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}

func (r *usersRepo) SetSessionTokens(
	ctx context.Context,
	userID, refreshToken string,
	refreshExpiresAt time.Time,
	twoFactorToken string,
) error {
	return requireRows(r.db.ExecContext(ctx, setSessionTokens,
		mapStringNull(refreshToken),
		refreshExpiresAt.Unix(),
		mapStringNull(twoFactorToken),
		userID,
	))
}

func (r *usersRepo) ClearTwoFactorToken(ctx context.Context, userID, token string) error {
	if token == "" {
		return store.ErrNotFound
	}
	return requireRows(r.db.ExecContext(ctx, clearTwoFactorToken, userID, token))
}

func (r *usersRepo) RotateRefreshToken(
	ctx context.Context,
	userID, oldToken, newToken string,
	expiresAt time.Time,
) error {
	if oldToken == "" {
		return store.ErrNotFound
	}
	return requireRows(r.db.ExecContext(ctx, rotateRefreshToken,
		newToken,
		expiresAt.Unix(),
		userID,
		oldToken,
	))
}

func (r *usersRepo) ClearExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, clearExpiredRefreshTokens, now.Unix())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
