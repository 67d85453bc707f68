// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/cargo-site/internal/locale"
)

func newResolver(t *testing.T) *locale.Resolver {
	t.Helper()
	res, err := locale.New([]string{"ru", "en"}, "ru")
	if err != nil {
		t.Fatalf("locale.New failed: %v", err)
	}
	return res
}

func localeRouter(t *testing.T) http.Handler {
	t.Helper()
	r := chi.NewRouter()
	// Inline middleware runs after routing, so {lang} is populated.
	withLocale := r.With(Locale(newResolver(t), "/pages/home"))
	echo := func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(locale.FromContext(r.Context())))
	}
	withLocale.Get("/pages/{page}", echo)
	withLocale.Get("/{lang}/pages/{page}", echo)
	return r
}

func TestLocale(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		cookie     string
		accept     string
		want       string
		wantCookie bool
	}{
		{name: "default", path: "/pages/about", want: "ru"},
		{name: "query lang", path: "/pages/about?lang=en", want: "en", wantCookie: true},
		{name: "query locale", path: "/pages/about?locale=EN", want: "en", wantCookie: true},
		{name: "unsupported query ignored", path: "/pages/about?lang=de", want: "ru"},
		{name: "query beats url param", path: "/en/pages/about?lang=ru", want: "ru", wantCookie: true},
		{name: "url param", path: "/en/pages/about", want: "en"},
		{name: "unsupported url param", path: "/de/pages/about", want: "ru"},
		{name: "accept-language on home", path: "/pages/home", accept: "en-US,en;q=0.9", want: "en"},
		{name: "accept-language ignored elsewhere", path: "/pages/about", accept: "en-US", want: "ru"},
		{name: "cookie on home", path: "/pages/home", cookie: "en", accept: "ru", want: "en"},
		{name: "cookie ignored elsewhere", path: "/pages/news", cookie: "en", want: "ru"},
		{name: "bad cookie falls to header", path: "/pages/home", cookie: "xx", accept: "en", want: "en"},
	}

	h := localeRouter(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: LocaleCookieName, Value: tt.cookie})
			}
			if tt.accept != "" {
				req.Header.Set("Accept-Language", tt.accept)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if got := rec.Body.String(); got != tt.want {
				t.Errorf("locale = %q, want %q", got, tt.want)
			}
			hasCookie := false
			for _, c := range rec.Result().Cookies() {
				if c.Name == LocaleCookieName {
					hasCookie = true
					if c.Value != tt.want || !c.HttpOnly || c.SameSite != http.SameSiteLaxMode {
						t.Errorf("cookie = %+v", c)
					}
				}
			}
			if hasCookie != tt.wantCookie {
				t.Errorf("cookie set = %v, want %v", hasCookie, tt.wantCookie)
			}
		})
	}
}

func TestRequireLocale(t *testing.T) {
	r := chi.NewRouter()
	r.With(RequireLocale(newResolver(t))).Get("/{lang}/pages/home", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := map[string]int{
		"/en/pages/home": http.StatusOK,
		"/RU/pages/home": http.StatusOK,
		"/de/pages/home": http.StatusNotFound,
	}
	for path, want := range tests {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != want {
			t.Errorf("%s: status = %d, want %d", path, rec.Code, want)
		}
	}
}
