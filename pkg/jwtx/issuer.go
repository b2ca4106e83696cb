package jwtx

import (
	"fmt"
	"time"
)

// Kind identifies a token family. Each kind has its own secret and lifetime
// and is only ever verified with its own secret.
type Kind string

const (
	KindAccess    Kind = "access"
	KindRefresh   Kind = "refresh"
	KindTwoFactor Kind = "two_factor"
)

// KindConfig is the secret and lifetime of one token kind.
type KindConfig struct {
	Secret string
	TTL    time.Duration
}

func (k KindConfig) validate(kind Kind) error {
	if k.Secret == "" {
		return fmt.Errorf("%w: %s secret not set", ErrConfig, kind)
	}
	if k.TTL <= 0 {
		return fmt.Errorf("%w: %s expiration not set", ErrConfig, kind)
	}
	return nil
}

// IssuerConfig holds the per-kind settings. There is no shared fallback.
type IssuerConfig struct {
	Access    KindConfig
	Refresh   KindConfig
	TwoFactor KindConfig
}

// Issuer mints and verifies the three token kinds.
type Issuer struct {
	codec *Codec
	cfg   IssuerConfig
}

// NewIssuer returns an Issuer. A nil codec uses the wall clock. Configuration
// problems surface from Validate or from the first call that needs the
// missing kind.
func NewIssuer(cfg IssuerConfig, codec *Codec) *Issuer {
	if codec == nil {
		codec = &Codec{}
	}
	return &Issuer{codec: codec, cfg: cfg}
}

// Validate checks every kind. Called once at startup.
func (i *Issuer) Validate() error {
	for _, kind := range []Kind{KindAccess, KindRefresh, KindTwoFactor} {
		if err := i.config(kind).validate(kind); err != nil {
			return err
		}
	}
	return nil
}

// TTL returns the configured lifetime of kind.
func (i *Issuer) TTL(kind Kind) time.Duration {
	return i.config(kind).TTL
}

// Now reads the clock tokens are stamped with.
func (i *Issuer) Now() time.Time {
	return i.codec.now()
}

// ExpiresAt is when a token of kind issued now expires.
func (i *Issuer) ExpiresAt(kind Kind) time.Time {
	return i.Now().Add(i.TTL(kind))
}

func (i *Issuer) config(kind Kind) KindConfig {
	switch kind {
	case KindAccess:
		return i.cfg.Access
	case KindRefresh:
		return i.cfg.Refresh
	case KindTwoFactor:
		return i.cfg.TwoFactor
	}
	return KindConfig{}
}

func (i *Issuer) issue(kind Kind, claims SessionClaims) (string, error) {
	kc := i.config(kind)
	if err := kc.validate(kind); err != nil {
		return "", err
	}
	return i.codec.Issue(claims, kc.Secret, kc.TTL)
}

func (i *Issuer) verify(kind Kind, token string) (SessionClaims, error) {
	kc := i.config(kind)
	if err := kc.validate(kind); err != nil {
		return SessionClaims{}, err
	}
	return i.codec.Verify(token, kc.Secret)
}

func (i *Issuer) IssueAccess(c SessionClaims) (string, error)    { return i.issue(KindAccess, c) }
func (i *Issuer) IssueRefresh(c SessionClaims) (string, error)   { return i.issue(KindRefresh, c) }
func (i *Issuer) IssueTwoFactor(c SessionClaims) (string, error) { return i.issue(KindTwoFactor, c) }

func (i *Issuer) VerifyAccess(token string) (SessionClaims, error) {
	return i.verify(KindAccess, token)
}

func (i *Issuer) VerifyRefresh(token string) (SessionClaims, error) {
	return i.verify(KindRefresh, token)
}

func (i *Issuer) VerifyTwoFactor(token string) (SessionClaims, error) {
	return i.verify(KindTwoFactor, token)
}
