// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/olegiv/cargo-site/internal/logging"
	"github.com/olegiv/cargo-site/internal/site"
)

func TestSEOHandler_Sitemap(t *testing.T) {
	pages := &fakePages{paths: []site.NewsPath{{ID: "7", Locale: "ru"}, {ID: "7", Locale: "en"}}}
	h := NewSEOHandler(pages, newTestResolver(t), "https://example.com", false, logging.Discard())

	w := httptest.NewRecorder()
	h.Sitemap(w, httptest.NewRequest(http.MethodGet, RouteSitemap, nil))

	assertStatus(t, w.Code, http.StatusOK)
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/xml") {
		t.Errorf("Content-Type = %q", ct)
	}
	out := w.Body.String()
	for _, want := range []string{
		"<loc>https://example.com</loc>",
		"<loc>https://example.com/en/services</loc>",
		"<loc>https://example.com/privacy</loc>",
		"<loc>https://example.com/news/7</loc>",
		"<loc>https://example.com/en/news/7</loc>",
		"<changefreq>daily</changefreq>",
		"<priority>0.7</priority>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("sitemap missing %q", want)
		}
	}
}

func TestSEOHandler_SitemapWithoutNews(t *testing.T) {
	pages := &fakePages{err: errors.New("cms down")}
	h := NewSEOHandler(pages, newTestResolver(t), "https://example.com", false, logging.Discard())

	w := httptest.NewRecorder()
	h.Sitemap(w, httptest.NewRequest(http.MethodGet, RouteSitemap, nil))

	assertStatus(t, w.Code, http.StatusOK)
	if out := w.Body.String(); !strings.Contains(out, "<loc>https://example.com/contacts</loc>") || strings.Contains(out, "/news/") {
		t.Errorf("sitemap = %s", out)
	}
}

func TestSEOHandler_Robots(t *testing.T) {
	h := NewSEOHandler(&fakePages{}, newTestResolver(t), "https://example.com", false, logging.Discard())
	w := httptest.NewRecorder()
	h.Robots(w, httptest.NewRequest(http.MethodGet, RouteRobots, nil))

	assertStatus(t, w.Code, http.StatusOK)
	if !strings.Contains(w.Body.String(), "Sitemap: https://example.com/sitemap.xml") {
		t.Errorf("robots = %s", w.Body.String())
	}

	h = NewSEOHandler(&fakePages{}, newTestResolver(t), "https://example.com", true, logging.Discard())
	w = httptest.NewRecorder()
	h.Robots(w, httptest.NewRequest(http.MethodGet, RouteRobots, nil))
	if !strings.Contains(w.Body.String(), "Disallow: /\n") {
		t.Errorf("robots = %s", w.Body.String())
	}
}
