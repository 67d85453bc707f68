// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package forms

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/olegiv/cargo-site/internal/logging"
	"github.com/olegiv/cargo-site/internal/mailer"
)

// Dispatcher delivers the notification for a valid submission.
type Dispatcher interface {
	Send(ctx context.Context, msg mailer.Message) error
}

// Result describes a dispatched submission.
type Result struct {
	ID   string
	Kind Kind
}

// Intake runs a submission through parsing, validation and dispatch.
type Intake struct {
	dispatcher Dispatcher
	logger     *slog.Logger
}

// NewIntake creates an Intake. A nil logger uses slog.Default().
func NewIntake(dispatcher Dispatcher, logger *slog.Logger) *Intake {
	if logger == nil {
		logger = slog.Default()
	}
	return &Intake{dispatcher: dispatcher, logger: logger}
}

// Handle validates values as a formType submission and sends it synchronously.
// A returned error matches either ErrValidation or ErrInternal.
// Field values are never logged.
func (in *Intake) Handle(ctx context.Context, formType string, values map[string]any) (Result, error) {
	id := uuid.NewString()
	ctx = logging.AppendCtx(ctx,
		slog.String("submission_id", id),
		slog.String("form_type", formType),
	)

	sub, err := Parse(formType, values)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			in.logRejected(ctx, err)
			return Result{}, err
		}
		in.logger.WarnContext(ctx, "submission rejected", "error", err)
		return Result{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	if err := sub.Validate(); err != nil {
		in.logRejected(ctx, err)
		return Result{}, err
	}

	msg := mailer.Message{Subject: sub.Subject(), HTML: Body(sub), ID: id}
	if err := in.dispatcher.Send(ctx, msg); err != nil {
		in.logger.ErrorContext(ctx, "submission dispatch failed", "error", err)
		return Result{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	in.logger.InfoContext(ctx, "submission dispatched")
	return Result{ID: id, Kind: sub.Kind()}, nil
}

func (in *Intake) logRejected(ctx context.Context, err error) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		in.logger.InfoContext(ctx, "submission invalid", "field", ve.Field)
		return
	}
	in.logger.InfoContext(ctx, "submission invalid")
}
