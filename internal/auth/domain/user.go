package domain

import (
	"time"

	"github.com/aussiebroadwan/tollgate/pkg/jwtx"
)

type User struct {
	ID               string
	Email            string
	Name             string
	Surname          string
	PasswordHash     string     // argon2id PHC, or legacy bcrypt
	Role             string     // jwtx.RoleUser or jwtx.RoleAdmin
	RefreshToken     string     // the single honoured refresh token, "" if none
	RefreshExpiresAt *time.Time // when RefreshToken stops verifying
	TwoFactorToken   string     // pending second factor, "" if none
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TwoFactorPending reports whether the user still has to confirm the
// emailed second factor.
func (u User) TwoFactorPending() bool {
	return u.TwoFactorToken != ""
}

// Session is the claim set placed in every token issued for u.
func (u User) Session() jwtx.SessionClaims {
	return jwtx.SessionClaims{
		ID:      u.ID,
		Email:   u.Email,
		Name:    u.Name,
		Surname: u.Surname,
		Role:    u.Role,
	}
}
