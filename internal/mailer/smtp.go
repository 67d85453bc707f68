// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package mailer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/wneessen/go-mail"
)

// HeaderSubmissionID carries Message.ID on outgoing mail.
const HeaderSubmissionID mail.Header = "X-Submission-Id"

// SMTPConfig holds the transport settings. They are read once at startup.
type SMTPConfig struct {
	Host      string
	Port      int
	User      string
	Pass      string
	Secure    bool // implicit TLS; otherwise STARTTLS when offered
	// Auth names the SMTP AUTH mechanism ("plain", "login", "plain-noenc",
	// ...). Empty selects auto-discovery, which over an unencrypted
	// connection only picks challenge-response mechanisms.
	Auth      string
	Recipient string
	Timeout   time.Duration
}

// SMTP sends messages through an SMTP server.
type SMTP struct {
	cfg    SMTPConfig
	auth   mail.SMTPAuthType
	opts   []mail.Option
	logger *slog.Logger
}

// NewSMTP validates cfg and returns a mailer for it.
func NewSMTP(cfg SMTPConfig, logger *slog.Logger) (*SMTP, error) {
	if cfg.Host == "" {
		return nil, errors.New("smtp host is required")
	}
	if cfg.Recipient == "" {
		return nil, errors.New("smtp recipient is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTimeout(cfg.Timeout),
	}
	if cfg.Secure {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}
	auth := mail.SMTPAuthAutoDiscover
	if cfg.Auth != "" {
		if err := auth.UnmarshalString(cfg.Auth); err != nil {
			return nil, fmt.Errorf("parsing smtp auth: %w", err)
		}
	}
	if cfg.User != "" {
		opts = append(opts,
			mail.WithSMTPAuth(auth),
			mail.WithUsername(cfg.User),
			mail.WithPassword(cfg.Pass),
		)
	}

	// Fail at startup on options the client rejects.
	if _, err := mail.NewClient(cfg.Host, opts...); err != nil {
		return nil, fmt.Errorf("configuring smtp client: %w", err)
	}

	return &SMTP{cfg: cfg, auth: auth, opts: opts, logger: logger}, nil
}

// Send implements Mailer. There is no retry.
func (s *SMTP) Send(ctx context.Context, msg Message) error {
	m, err := s.build(msg)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}

	client, err := mail.NewClient(s.cfg.Host, s.opts...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}

	start := time.Now()
	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		s.logger.ErrorContext(ctx, "smtp send failed",
			"host", s.cfg.Host, "id", msg.ID, "error", err)
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	s.logger.DebugContext(ctx, "smtp message sent",
		"id", msg.ID, "duration", time.Since(start))
	return nil
}

// build creates the outgoing message. The sender is the SMTP user, or the
// recipient when the relay needs no auth.
func (s *SMTP) build(msg Message) (*mail.Msg, error) {
	m := mail.NewMsg()
	from := s.cfg.User
	if from == "" {
		from = s.cfg.Recipient
	}
	if err := m.From(from); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", from, err)
	}
	if err := m.To(s.cfg.Recipient); err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", s.cfg.Recipient, err)
	}
	m.Subject(msg.Subject)
	m.SetDate()
	m.SetMessageID()
	if msg.ID != "" {
		m.SetGenHeader(HeaderSubmissionID, msg.ID)
	}
	m.SetBodyString(mail.TypeTextHTML, msg.HTML)
	return m, nil
}
