package domain

import "github.com/aussiebroadwan/tollgate/pkg/jwtx"

// LoginResult is what a successful password login hands back.
type LoginResult struct {
	AccessToken       string
	RefreshToken      string
	Session           jwtx.SessionClaims
	TwoFactorRequired bool
}

// RefreshResult carries the new access token. RefreshToken is only set when
// rotation is enabled.
type RefreshResult struct {
	AccessToken  string
	RefreshToken string
}
