// Package mailx sends transactional email. The SMTP sender is used when a
// host is configured; otherwise messages are only logged.
package mailx

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aussiebroadwan/tollgate/pkg/slogx"
)

var ErrNoRecipient = errors.New("mailx: message has no recipient")

// Message is a multipart/alternative email with a plain text body and an
// optional HTML body.
type Message struct {
	To      []string
	Subject string
	Text    string
	HTML    string
}

func (m Message) validate() error {
	if len(m.To) == 0 {
		return ErrNoRecipient
	}
	return nil
}

// Sender delivers messages.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// LogSender writes messages to the log instead of delivering them. Used in
// development when SMTP is not configured.
type LogSender struct {
	Logger *slog.Logger
}

func (s LogSender) Send(ctx context.Context, msg Message) error {
	if err := msg.validate(); err != nil {
		return err
	}

	l := s.Logger
	if l == nil {
		l = slogx.FromContext(ctx)
	}
	l.Info("mail not sent, smtp disabled",
		"to", msg.To,
		"subject", msg.Subject,
		"body", msg.Text,
	)
	return nil
}
