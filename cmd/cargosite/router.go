// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/olegiv/cargo-site/internal/config"
	"github.com/olegiv/cargo-site/internal/handler"
	"github.com/olegiv/cargo-site/internal/locale"
	"github.com/olegiv/cargo-site/internal/middleware"
	"github.com/olegiv/cargo-site/internal/site"
	"github.com/olegiv/cargo-site/internal/version"
)

type routerDeps struct {
	cfg      *config.Config
	logger   *slog.Logger
	pages    site.Pages
	resolver *locale.Resolver
	intake   handler.Submitter
	cms      handler.Pinger
	store    handler.Pinger
	schedule handler.Revalidation
	info     version.Info
}

func newRouter(d routerDeps) http.Handler {
	cfg := d.cfg

	pagesHandler := handler.NewPagesHandler(d.pages, d.resolver, d.logger)
	submitHandler := handler.NewSubmitHandler(d.intake, d.logger)
	healthHandler := handler.NewHealthHandler(d.cms, d.store, d.info, d.logger)
	if d.schedule != nil {
		healthHandler.WithRevalidation(d.schedule)
	}
	seoHandler := handler.NewSEOHandler(d.pages, d.resolver, cfg.SiteURL, cfg.IsDevelopment(), d.logger)

	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(d.logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))                    // Gzip compression with level 5
	r.Use(chimw.GetHead)                        // Handle HEAD requests for uptime monitoring
	r.Use(middleware.Timeout(30 * time.Second)) // 30 second request timeout
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))

	// Health check routes (no auth, no rate limiting)
	r.Get(handler.RouteHealth, healthHandler.Health)
	r.Get(handler.RouteHealthLive, healthHandler.Liveness)
	r.Get(handler.RouteHealthReady, healthHandler.Readiness)

	r.Get(handler.RouteSitemap, seoHandler.Sitemap)
	r.Get(handler.RouteRobots, seoHandler.Robots)

	// Page data API
	r.Route(handler.RouteAPI, func(r chi.Router) {
		r.Use(middleware.CORS(cfg.AllowedOrigins))

		r.Get(handler.RoutePathsNews, pagesHandler.NewsPaths)

		// Unprefixed routes serve the default locale; only the home page
		// negotiates from the cookie and Accept-Language.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Locale(d.resolver, handler.RouteHomeAPIPath))
			pagesHandler.Routes(r)
		})

		r.Route(handler.RouteLangPrefix, func(r chi.Router) {
			r.Use(middleware.RequireLocale(d.resolver))
			r.Use(middleware.Locale(d.resolver))
			pagesHandler.Routes(r)
		})
	})

	// Form submissions
	limiter := middleware.NewRateLimiter(cfg.SubmitRPS, cfg.SubmitBurst, d.logger)
	r.Group(func(r chi.Router) {
		r.Use(middleware.CORS(cfg.AllowedOrigins))
		r.Options(handler.RouteSubmit, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})
		r.With(limiter.Middleware(), middleware.CrossOrigin(cfg.AllowedOrigins, d.logger)).
			Post(handler.RouteSubmit, submitHandler.Submit)
	})

	return r
}
