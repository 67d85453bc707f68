// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler periodically replaces the page cache.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// runTimeout bounds a single purge and warm-up cycle.
const runTimeout = 5 * time.Minute

// Revalidator drops and rebuilds cached pages. Warm returns the number of
// pages that could not be rebuilt.
type Revalidator interface {
	Purge(ctx context.Context) error
	Warm(ctx context.Context, locales []string) int
}

// Scheduler runs a full cache revalidation on a cron schedule.
type Scheduler struct {
	pages   Revalidator
	locales []string
	spec    string
	warm    bool
	cron    *cron.Cron
	logger  *slog.Logger

	mu      sync.Mutex
	entryID cron.EntryID
	lastRun time.Time
}

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// New creates a new scheduler. spec is a five-field cron expression or a
// descriptor such as "@every 1h". When warm is set every purge is followed
// by a warm-up of all pages in locales.
func New(pages Revalidator, locales []string, spec string, warm bool, logger *slog.Logger) (*Scheduler, error) {
	if _, err := parser.Parse(spec); err != nil {
		return nil, fmt.Errorf("invalid cron expression %q: %w", spec, err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	cl := cronLogger{logger: logger}
	return &Scheduler{
		pages:   pages,
		locales: locales,
		spec:    spec,
		warm:    warm,
		cron:    cron.New(cron.WithParser(parser), cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl))),
		logger:  logger,
	}, nil
}

// Start registers the revalidation job and starts the cron loop.
func (s *Scheduler) Start() error {
	id, err := s.cron.AddFunc(s.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()
		if err := s.RunOnce(ctx); err != nil {
			s.logger.Error("scheduled revalidation failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.entryID = id
	s.mu.Unlock()

	s.cron.Start()
	s.logger.Info("scheduler started", "schedule", s.spec, "next_run", s.NextRun())
	return nil
}

// Stop gracefully stops the scheduler, waiting for a running job.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// RunOnce purges the cache and, if enabled, warms it again. The cache is
// replaced wholesale; a failed purge skips the warm-up.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	start := time.Now()
	if err := s.pages.Purge(ctx); err != nil {
		return fmt.Errorf("purging pages: %w", err)
	}

	failed := 0
	if s.warm {
		failed = s.pages.Warm(ctx, s.locales)
	}

	s.mu.Lock()
	s.lastRun = start
	s.mu.Unlock()

	s.logger.Info("pages revalidated", "warm_failures", failed, "duration", time.Since(start))
	return nil
}

// LastRun returns the start time of the last successful revalidation.
func (s *Scheduler) LastRun() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRun
}

// NextRun returns the next scheduled revalidation, or the zero time when
// the scheduler is not running.
func (s *Scheduler) NextRun() time.Time {
	s.mu.Lock()
	id := s.entryID
	s.mu.Unlock()
	if id == 0 {
		return time.Time{}
	}
	return s.cron.Entry(id).Next
}

// cronLogger adapts slog to the cron.Logger interface.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
