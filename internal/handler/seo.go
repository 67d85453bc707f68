// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/olegiv/cargo-site/internal/locale"
	"github.com/olegiv/cargo-site/internal/seo"
	"github.com/olegiv/cargo-site/internal/site"
)

// NewsPather lists the news detail paths.
type NewsPather interface {
	NewsPaths(ctx context.Context, locales []string) ([]site.NewsPath, error)
}

// SEOHandler serves the sitemap and robots.txt.
type SEOHandler struct {
	news        NewsPather
	locale      *locale.Resolver
	siteURL     string
	disallowAll bool
	logger      *slog.Logger
}

// NewSEOHandler creates a new SEO handler. disallowAll blocks crawlers,
// for non-production deployments.
func NewSEOHandler(news NewsPather, res *locale.Resolver, siteURL string, disallowAll bool, logger *slog.Logger) *SEOHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SEOHandler{
		news:        news,
		locale:      res,
		siteURL:     siteURL,
		disallowAll: disallowAll,
		logger:      logger,
	}
}

// Sitemap handles GET /sitemap.xml. When the news list cannot be loaded
// the sitemap still lists the static pages.
func (h *SEOHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	locales := h.locale.Supported()
	b := seo.NewSitemapBuilder(h.siteURL, locales, h.locale.Default())
	b.AddPaths(site.StaticPaths)

	paths, err := h.news.NewsPaths(r.Context(), locales)
	if err != nil {
		h.logger.WarnContext(r.Context(), "sitemap without news", "error", err)
	}
	for _, p := range paths {
		b.AddLocalizedPath(p.Locale, site.PathNews+"/"+p.ID, time.Time{})
	}

	data, err := b.Build()
	if err != nil {
		h.logger.ErrorContext(r.Context(), "sitemap build failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write(data)
}

// Robots handles GET /robots.txt.
func (h *SEOHandler) Robots(w http.ResponseWriter, _ *http.Request) {
	body := seo.NewRobotsBuilder(seo.RobotsConfig{
		SiteURL:     h.siteURL,
		DisallowAll: h.disallowAll,
	}).Build()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(body))
}
