// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides the HTTP middleware of the site API.
package middleware

import (
	"log/slog"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/cargo-site/internal/locale"
	"github.com/olegiv/cargo-site/internal/logging"
)

// LocaleCookieName is the cookie name for the locale preference.
const LocaleCookieName = "site_lang"

// Locale creates middleware that resolves the request locale and stores it
// in the context (see locale.FromContext).
// Priority order:
// 1. Query parameter ?lang=XX or ?locale=XX (explicit switch, updates cookie)
// 2. URL parameter {lang} from chi router (e.g., /api/v1/en/pages/home)
// 3. For negotiatePaths only: cookie preference, then Accept-Language header
// 4. Default locale
//
// Unsupported values at any step are ignored. Install it on routes (With or
// inside Route) so that {lang} is already populated.
func Locale(res *locale.Resolver, negotiatePaths ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			code := resolveLocale(w, r, res, negotiatePaths)

			ctx := locale.WithLocale(r.Context(), code)
			ctx = logging.AppendCtx(ctx, slog.String("locale", code))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func resolveLocale(w http.ResponseWriter, r *http.Request, res *locale.Resolver, negotiatePaths []string) string {
	q := r.URL.Query()
	for _, key := range []string{"lang", "locale"} {
		if v := q.Get(key); v != "" && res.IsSupported(v) {
			code := res.Resolve(v)
			SetLocaleCookie(w, code)
			return code
		}
	}

	if v := chi.URLParam(r, "lang"); v != "" && res.IsSupported(v) {
		return res.Resolve(v)
	}

	if slices.Contains(negotiatePaths, r.URL.Path) {
		if cookie, err := r.Cookie(LocaleCookieName); err == nil && res.IsSupported(cookie.Value) {
			return res.Resolve(cookie.Value)
		}
		if accept := r.Header.Get("Accept-Language"); accept != "" {
			return res.Negotiate(accept)
		}
	}

	return res.Default()
}

// SetLocaleCookie sets the locale preference cookie.
func SetLocaleCookie(w http.ResponseWriter, code string) {
	http.SetCookie(w, &http.Cookie{
		Name:     LocaleCookieName,
		Value:    code,
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60, // 1 year
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// RequireLocale responds 404 when the {lang} URL parameter is present but
// names an unsupported locale.
func RequireLocale(res *locale.Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if v := chi.URLParam(r, "lang"); v != "" && !res.IsSupported(v) {
				writeError(w, http.StatusNotFound, "NOT_FOUND")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
