// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"filippo.io/csrf/gorilla"
)

// CrossOrigin rejects cross-origin browser POSTs unless the origin is trusted.
// It uses Fetch metadata headers, so requests from non-browser clients
// (no Origin or Sec-Fetch-Site) pass through.
// trustedOrigins may be full URLs or bare hosts.
func CrossOrigin(trustedOrigins []string, logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	opts := []csrf.Option{
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reason := "unknown"
			if err := csrf.FailureReason(r); err != nil {
				reason = err.Error()
			}
			logger.WarnContext(r.Context(), "cross-origin request rejected",
				"reason", reason,
				"method", r.Method,
				"path", r.URL.Path,
				"origin", r.Header.Get("Origin"),
				"sec_fetch_site", r.Header.Get("Sec-Fetch-Site"),
			)
			writeError(w, http.StatusForbidden, "FORBIDDEN")
		})),
	}
	if hosts := originHosts(trustedOrigins); len(hosts) > 0 {
		opts = append(opts, csrf.TrustedOrigins(hosts))
	}

	// The auth key is unused by the Fetch metadata implementation.
	return csrf.Protect(nil, opts...)
}

// originHosts converts origins to the host-only form csrf expects.
func originHosts(origins []string) []string {
	hosts := make([]string, 0, len(origins))
	for _, o := range origins {
		o = strings.TrimSpace(o)
		if o == "" || o == "*" {
			continue
		}
		if u, err := url.Parse(o); err == nil && u.Host != "" {
			hosts = append(hosts, u.Host)
			continue
		}
		hosts = append(hosts, o)
	}
	return hosts
}
