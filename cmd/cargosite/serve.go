// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/olegiv/cargo-site/internal/forms"
	"github.com/olegiv/cargo-site/internal/scheduler"
)

// warmTimeout bounds the warm-up performed before the server starts.
const warmTimeout = 2 * time.Minute

func runServe(ctx context.Context) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	cfg := a.cfg

	pages, store, err := a.newPageCache()
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			slog.Error("error closing cache", "error", err)
		}
	}()

	m, err := a.newMailer()
	if err != nil {
		return err
	}

	sched, err := scheduler.New(pages, a.resolver.Supported(), cfg.RevalidateCron, cfg.WarmCache, a.logger)
	if err != nil {
		return fmt.Errorf("initializing scheduler: %w", err)
	}
	if cfg.WarmCache {
		warmCtx, cancel := context.WithTimeout(ctx, warmTimeout)
		n := pages.Warm(warmCtx, a.resolver.Supported())
		cancel()
		slog.Info("page cache warmed", "failures", n)
	}
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	r := newRouter(routerDeps{
		cfg:      cfg,
		logger:   a.logger,
		pages:    pages,
		resolver: a.resolver,
		intake:   forms.NewIntake(m, a.logger),
		cms:      a.cms,
		store:    store,
		schedule: sched,
		info:     versionInfo(),
	})

	// Create server with appropriate timeouts
	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB max header size
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", appVersion)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serveErr:
		return fmt.Errorf("server error: %w", err)
	}

	slog.Info("shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
