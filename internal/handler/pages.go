// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/cargo-site/internal/locale"
	"github.com/olegiv/cargo-site/internal/site"
)

// PagesHandler serves page props as JSON.
type PagesHandler struct {
	pages  site.Pages
	locale *locale.Resolver
	logger *slog.Logger
}

// NewPagesHandler creates a new pages handler.
func NewPagesHandler(pages site.Pages, res *locale.Resolver, logger *slog.Logger) *PagesHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PagesHandler{pages: pages, locale: res, logger: logger}
}

// Routes registers the page routes on r. The caller installs the locale
// middleware on r.
func (h *PagesHandler) Routes(r chi.Router) {
	r.Get(RoutePages+RouteHome, h.Home)
	r.Get(RoutePages+RouteServices, h.Services)
	r.Get(RoutePages+RouteContainers, h.Containers)
	r.Get(RoutePages+RouteAbout, h.About)
	r.Get(RoutePages+RoutePrivacy, h.Privacy)
	r.Get(RoutePages+RouteContacts, h.Contacts)
	r.Get(RoutePages+RouteNews, h.News)
	r.Get(RoutePages+RouteNewsID, h.NewsDetail)
}

func (h *PagesHandler) localeOf(r *http.Request) string {
	if code := locale.FromContext(r.Context()); code != "" {
		return code
	}
	return h.locale.Default()
}

// servePage loads props and writes them, or a 404 when the page is unavailable.
func servePage[T any](h *PagesHandler, w http.ResponseWriter, r *http.Request,
	load func(ctx context.Context, locale string) (T, error)) {
	props, err := load(r.Context(), h.localeOf(r))
	if err != nil {
		h.notFound(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, props)
}

func (h *PagesHandler) notFound(w http.ResponseWriter, r *http.Request, err error) {
	if !errors.Is(err, site.ErrPageUnavailable) {
		h.logger.ErrorContext(r.Context(), "page load failed", "path", r.URL.Path, "error", err)
	}
	writeJSONError(w, http.StatusNotFound, "Not Found")
}

// Home handles GET /pages/home.
func (h *PagesHandler) Home(w http.ResponseWriter, r *http.Request) {
	servePage(h, w, r, h.pages.Home)
}

// Services handles GET /pages/services. ?slug= selects the expanded item.
func (h *PagesHandler) Services(w http.ResponseWriter, r *http.Request) {
	servePage(h, w, r, func(ctx context.Context, l string) (site.ServicesProps, error) {
		props, err := h.pages.Services(ctx, l)
		if err != nil {
			return site.ServicesProps{}, err
		}
		return props.WithSlug(r.URL.Query().Get("slug")), nil
	})
}

// Containers handles GET /pages/containers.
func (h *PagesHandler) Containers(w http.ResponseWriter, r *http.Request) {
	servePage(h, w, r, h.pages.Containers)
}

// About handles GET /pages/about.
func (h *PagesHandler) About(w http.ResponseWriter, r *http.Request) {
	servePage(h, w, r, h.pages.About)
}

// Privacy handles GET /pages/privacy.
func (h *PagesHandler) Privacy(w http.ResponseWriter, r *http.Request) {
	servePage(h, w, r, h.pages.Privacy)
}

// Contacts handles GET /pages/contacts.
func (h *PagesHandler) Contacts(w http.ResponseWriter, r *http.Request) {
	servePage(h, w, r, h.pages.Contacts)
}

// News handles GET /pages/news. ?page=N returns the first N*5 items.
func (h *PagesHandler) News(w http.ResponseWriter, r *http.Request) {
	page := parsePage(r.URL.Query().Get("page"))
	servePage(h, w, r, func(ctx context.Context, l string) (site.NewsPage, error) {
		props, err := h.pages.News(ctx, l)
		if err != nil {
			return site.NewsPage{}, err
		}
		return props.Window(page), nil
	})
}

// NewsDetail handles GET /pages/news/{id}.
func (h *PagesHandler) NewsDetail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if n, err := strconv.Atoi(id); err != nil || n <= 0 {
		writeJSONError(w, http.StatusNotFound, "Not Found")
		return
	}
	servePage(h, w, r, func(ctx context.Context, l string) (*site.NewsDetailProps, error) {
		return h.pages.NewsDetail(ctx, l, id)
	})
}

// NewsPaths handles GET /paths/news: every news id in every locale.
func (h *PagesHandler) NewsPaths(w http.ResponseWriter, r *http.Request) {
	paths, err := h.pages.NewsPaths(r.Context(), h.locale.Supported())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "news paths failed", "error", err)
		writeJSONError(w, http.StatusBadGateway, "Content backend unavailable")
		return
	}
	if paths == nil {
		paths = []site.NewsPath{}
	}
	writeJSONSuccess(w, map[string]any{"paths": paths})
}

// parsePage returns the 1-based page number, defaulting to 1.
func parsePage(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 1
	}
	return n
}
