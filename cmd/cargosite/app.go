// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/olegiv/cargo-site/internal/cache"
	"github.com/olegiv/cargo-site/internal/config"
	"github.com/olegiv/cargo-site/internal/content"
	"github.com/olegiv/cargo-site/internal/directus"
	"github.com/olegiv/cargo-site/internal/locale"
	"github.com/olegiv/cargo-site/internal/logging"
	"github.com/olegiv/cargo-site/internal/mailer"
	"github.com/olegiv/cargo-site/internal/richtext"
	"github.com/olegiv/cargo-site/internal/site"
)

// app holds the components shared by the commands.
type app struct {
	cfg       *config.Config
	logger    *slog.Logger
	cms       *directus.Client
	resolver  *locale.Resolver
	assembler *site.Assembler
}

// newApp loads the configuration and builds the CMS-facing components.
func newApp() (*app, error) {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	slog.SetDefault(logger)

	resolver, err := locale.New(cfg.Locales, cfg.DefaultLocale)
	if err != nil {
		return nil, fmt.Errorf("initializing locales: %w", err)
	}

	cms, err := directus.New(cfg.DirectusURL,
		directus.WithToken(cfg.DirectusToken),
		directus.WithTimeout(cfg.DirectusTimeout),
		directus.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("initializing cms client: %w", err)
	}

	rich, err := richtext.New(cfg.ContentFormat)
	if err != nil {
		return nil, fmt.Errorf("initializing rich text: %w", err)
	}

	assembler := site.NewAssembler(
		site.NewCMSGateway(cms),
		content.NewAssetURLs(cms.BaseURL()),
		rich,
		logger,
	)

	return &app{
		cfg:       cfg,
		logger:    logger,
		cms:       cms,
		resolver:  resolver,
		assembler: assembler,
	}, nil
}

// newPageCache wraps the assembler in the revalidating page cache.
func (a *app) newPageCache() (*site.CachedPages, cache.Cacher, error) {
	store, info, err := cache.New(cache.Config{
		RedisURL:         a.cfg.RedisURL,
		Prefix:           a.cfg.CachePrefix,
		DefaultTTL:       a.cfg.RevalidateTTL(),
		MaxSize:          a.cfg.CacheMaxSize,
		CleanupInterval:  5 * time.Minute,
		FallbackToMemory: true,
	}, a.logger)
	if err != nil {
		return nil, nil, fmt.Errorf("initializing cache: %w", err)
	}
	a.logger.Info("page cache ready", "backend", info.Backend, "fallback", info.IsFallback,
		"ttl", a.cfg.RevalidateTTL())

	return site.NewCachedPages(a.assembler, store, a.cfg.RevalidateTTL(), a.logger), store, nil
}

// newMailer selects the submission transport. Without MAIL_HOST submissions
// are logged in development and rejected otherwise.
func (a *app) newMailer() (mailer.Mailer, error) {
	if !a.cfg.MailEnabled() {
		if a.cfg.IsDevelopment() {
			a.logger.Warn("mail transport not configured, submissions are only logged")
			return mailer.NewLogMailer(a.logger), nil
		}
		a.logger.Warn("mail transport not configured, submissions will fail")
		return mailer.Disabled{}, nil
	}

	m, err := mailer.NewSMTP(mailer.SMTPConfig{
		Host:      a.cfg.MailHost,
		Port:      a.cfg.MailPort,
		User:      a.cfg.MailUser,
		Pass:      a.cfg.MailPass,
		Secure:    a.cfg.MailSecure,
		Auth:      a.cfg.MailAuth,
		Recipient: a.cfg.MailRecipient,
	}, a.logger)
	if err != nil {
		return nil, fmt.Errorf("initializing mail transport: %w", err)
	}
	return m, nil
}
