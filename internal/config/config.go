// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads process-wide settings from environment variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Content formats accepted for CMS rich-text fields.
const (
	ContentFormatHTML     = "html"
	ContentFormatMarkdown = "markdown"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	// CMS
	DirectusURL     string        `env:"DIRECTUS_URL,required"`
	DirectusToken   string        `env:"DIRECTUS_TOKEN"`
	DirectusTimeout time.Duration `env:"DIRECTUS_TIMEOUT" envDefault:"10s"`

	// Mail transport
	MailHost      string `env:"MAIL_HOST"`
	MailPort      int    `env:"MAIL_PORT" envDefault:"587"`
	MailUser      string `env:"MAIL_USER"`
	MailPass      string `env:"MAIL_PASS"`
	MailSecure    bool   `env:"MAIL_SECURE" envDefault:"false"`
	MailAuth      string `env:"MAIL_AUTH"`
	MailRecipient string `env:"MAIL_RECIPIENT"`

	// Server
	Env        string `env:"SITE_ENV" envDefault:"development"`
	LogLevel   string `env:"SITE_LOG_LEVEL" envDefault:"info"`
	LogFormat  string `env:"SITE_LOG_FORMAT" envDefault:"text"`
	ServerHost string `env:"SITE_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"SITE_SERVER_PORT" envDefault:"8080"`
	SiteURL    string `env:"SITE_URL" envDefault:"http://localhost:8080"`

	// Locales
	Locales       []string `env:"SITE_LOCALES" envDefault:"ru,en" envSeparator:","`
	DefaultLocale string   `env:"SITE_DEFAULT_LOCALE" envDefault:"ru"`

	// Revalidation and cache
	Revalidate     int    `env:"SITE_REVALIDATE" envDefault:"3600"` // seconds
	RevalidateCron string `env:"SITE_REVALIDATE_CRON" envDefault:"@every 1h"`
	WarmCache      bool   `env:"SITE_WARM_CACHE" envDefault:"true"`
	RedisURL       string `env:"SITE_REDIS_URL"`
	CachePrefix    string `env:"SITE_CACHE_PREFIX" envDefault:"site:"`
	CacheMaxSize   int    `env:"SITE_CACHE_MAX_SIZE" envDefault:"10000"`

	ContentFormat string `env:"SITE_CONTENT_FORMAT" envDefault:"html"`

	// Submission endpoint protection
	AllowedOrigins []string `env:"SITE_ALLOWED_ORIGINS" envSeparator:","`
	SubmitRPS      float64  `env:"SITE_SUBMIT_RPS" envDefault:"0.2"`
	SubmitBurst    int      `env:"SITE_SUBMIT_BURST" envDefault:"3"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// RevalidateTTL returns the revalidation window as a duration.
func (c Config) RevalidateTTL() time.Duration {
	return time.Duration(c.Revalidate) * time.Second
}

// MailEnabled returns true if a mail transport host is configured.
func (c Config) MailEnabled() bool {
	return c.MailHost != ""
}

// Load parses environment variables and returns a validated Config.
// A missing or malformed DIRECTUS_URL is an error: the site cannot serve
// anything without its content backend.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.DirectusURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("DIRECTUS_URL must be an absolute URL, got %q", c.DirectusURL)
	}

	c.Locales = normalizeLocales(c.Locales)
	if len(c.Locales) == 0 {
		return errors.New("SITE_LOCALES must list at least one locale")
	}
	c.DefaultLocale = strings.ToLower(strings.TrimSpace(c.DefaultLocale))
	if !slices.Contains(c.Locales, c.DefaultLocale) {
		return fmt.Errorf("SITE_DEFAULT_LOCALE %q is not in SITE_LOCALES %v", c.DefaultLocale, c.Locales)
	}

	if c.Revalidate <= 0 {
		return fmt.Errorf("SITE_REVALIDATE must be positive, got %d", c.Revalidate)
	}

	switch c.ContentFormat {
	case ContentFormatHTML, ContentFormatMarkdown:
	default:
		return fmt.Errorf("SITE_CONTENT_FORMAT must be %q or %q, got %q",
			ContentFormatHTML, ContentFormatMarkdown, c.ContentFormat)
	}

	if c.MailEnabled() && c.MailRecipient == "" {
		return errors.New("MAIL_RECIPIENT is required when MAIL_HOST is set")
	}

	c.SiteURL = strings.TrimRight(c.SiteURL, "/")
	return nil
}

func normalizeLocales(in []string) []string {
	out := make([]string, 0, len(in))
	for _, l := range in {
		l = strings.ToLower(strings.TrimSpace(l))
		if l != "" && !slices.Contains(out, l) {
			out = append(out, l)
		}
	}
	return out
}
