package app

import (
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/tollgate/pkg/jwtx"
	"github.com/aussiebroadwan/tollgate/pkg/mailx"
)

// InitIssuer builds the token issuer and refuses to start unless every kind
// (access, refresh, two-factor) has its own secret and expiration. There is
// no shared fallback secret.
func InitIssuer(cfg Config, logger *slog.Logger) (*jwtx.Issuer, error) {
	issuer := jwtx.NewIssuer(cfg.Tokens, nil)
	if err := issuer.Validate(); err != nil {
		return nil, fmt.Errorf("invalid token configuration: %w", err)
	}

	logger.Info("token issuer configured",
		"access_ttl", issuer.TTL(jwtx.KindAccess),
		"refresh_ttl", issuer.TTL(jwtx.KindRefresh),
		"two_factor_ttl", issuer.TTL(jwtx.KindTwoFactor),
	)

	if cfg.Tokens.Access.Secret == cfg.Tokens.Refresh.Secret ||
		cfg.Tokens.Access.Secret == cfg.Tokens.TwoFactor.Secret ||
		cfg.Tokens.Refresh.Secret == cfg.Tokens.TwoFactor.Secret {
		logger.Warn("token kinds share a secret, tokens of one kind will verify as another")
	}

	return issuer, nil
}

// InitMailer returns an SMTP sender when SMTP_HOST is set and a log-only
// sender otherwise.
func InitMailer(cfg Config, logger *slog.Logger) (mailx.Sender, error) {
	if cfg.SMTP.Host == "" {
		if cfg.TwoFactorEnabled {
			logger.Warn("two-factor enabled without SMTP, confirmation links are only logged")
		}
		return mailx.LogSender{Logger: logger}, nil
	}

	sender, err := mailx.NewSMTPSender(cfg.SMTP)
	if err != nil {
		return nil, fmt.Errorf("failed to configure smtp: %w", err)
	}

	logger.Info("smtp mailer configured", "host", cfg.SMTP.Host, "port", cfg.SMTP.Port, "secure", cfg.SMTP.Secure)
	return sender, nil
}
