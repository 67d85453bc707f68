// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package mailer delivers form notifications by email.
package mailer

import (
	"context"
	"errors"
	"log/slog"
)

// ErrTransport is returned when a message could not be handed to the mail transport.
var ErrTransport = errors.New("mail transport failed")

// Message is a single notification.
type Message struct {
	Subject string
	HTML    string
	// ID correlates the message with the submission that produced it.
	ID string
}

// Mailer sends a message. Implementations make exactly one attempt.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// Disabled is used when no transport is configured. Every send fails.
type Disabled struct{}

// Send implements Mailer.
func (Disabled) Send(context.Context, Message) error {
	return ErrTransport
}

// LogMailer writes messages to the log instead of sending them.
// Used in development when MAIL_HOST is empty.
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer creates a LogMailer. A nil logger uses slog.Default().
func NewLogMailer(logger *slog.Logger) *LogMailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogMailer{logger: logger}
}

// Send implements Mailer.
func (m *LogMailer) Send(ctx context.Context, msg Message) error {
	m.logger.InfoContext(ctx, "mail not sent (no transport configured)",
		"subject", msg.Subject,
		"id", msg.ID,
		"body", msg.HTML,
	)
	return nil
}
