// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/olegiv/cargo-site/internal/cache"
	"github.com/olegiv/cargo-site/internal/logging"
	"github.com/olegiv/cargo-site/internal/version"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func newHealth(err error) *HealthHandler {
	return NewHealthHandler(pingFunc(func(ctx context.Context) error {
		if _, ok := ctx.Deadline(); !ok {
			return errors.New("ping without deadline")
		}
		return err
	}), nil, version.Info{Version: "v1.2.3"}, logging.Discard())
}

func TestHealthHandler_Liveness(t *testing.T) {
	w := httptest.NewRecorder()
	newHealth(errors.New("down")).Liveness(w, httptest.NewRequest(http.MethodGet, RouteHealthLive, nil))

	assertStatus(t, w.Code, http.StatusOK)
	if got := decodeBody(t, w)["status"]; got != "alive" {
		t.Errorf("status = %v; want alive", got)
	}
}

func TestHealthHandler_Readiness(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   int
		wantStatus string
	}{
		{"cms up", nil, http.StatusOK, "ready"},
		{"cms down", errors.New("connection refused"), http.StatusServiceUnavailable, "not_ready"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			newHealth(tt.err).Readiness(w, httptest.NewRequest(http.MethodGet, RouteHealthReady, nil))

			assertStatus(t, w.Code, tt.wantCode)
			body := decodeBody(t, w)
			if body["status"] != tt.wantStatus {
				t.Errorf("status = %v; want %s", body["status"], tt.wantStatus)
			}
			if _, ok := body["message"]; ok {
				t.Error("readiness should not expose error details")
			}
		})
	}
}

func TestHealthHandler_Health(t *testing.T) {
	w := httptest.NewRecorder()
	newHealth(nil).Health(w, httptest.NewRequest(http.MethodGet, RouteHealth, nil))

	assertStatus(t, w.Code, http.StatusOK)
	body := decodeBody(t, w)
	if body["status"] != "healthy" || body["version"] != "v1.2.3" {
		t.Errorf("body = %v", body)
	}
	checks := body["checks"].(map[string]any)
	if checks["cms"].(map[string]any)["status"] != "healthy" {
		t.Errorf("checks = %v", checks)
	}

	w = httptest.NewRecorder()
	newHealth(errors.New("down")).Health(w, httptest.NewRequest(http.MethodGet, RouteHealth, nil))
	assertStatus(t, w.Code, http.StatusServiceUnavailable)
	if got := decodeBody(t, w)["status"]; got != "degraded" {
		t.Errorf("status = %v; want degraded", got)
	}
}

func TestHealthHandler_HealthWithCache(t *testing.T) {
	mem := cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: time.Hour})
	_ = mem.Set(context.Background(), "page:home:ru", []byte("{}"), 0)
	up := pingFunc(func(context.Context) error { return nil })

	w := httptest.NewRecorder()
	NewHealthHandler(up, mem, version.Info{}, logging.Discard()).
		Health(w, httptest.NewRequest(http.MethodGet, RouteHealth, nil))

	assertStatus(t, w.Code, http.StatusOK)
	body := decodeBody(t, w)
	if body["status"] != "healthy" {
		t.Errorf("status = %v; want healthy", body["status"])
	}
	stats, ok := body["cache"].(map[string]any)
	if !ok || stats["items"] != float64(1) {
		t.Errorf("cache = %v", body["cache"])
	}

	// A closed cache degrades the service but keeps it available.
	_ = mem.Close()
	w = httptest.NewRecorder()
	NewHealthHandler(up, mem, version.Info{}, logging.Discard()).
		Health(w, httptest.NewRequest(http.MethodGet, RouteHealth, nil))

	assertStatus(t, w.Code, http.StatusOK)
	body = decodeBody(t, w)
	if body["status"] != "degraded" {
		t.Errorf("status = %v; want degraded", body["status"])
	}
	if c := body["checks"].(map[string]any)["cache"].(map[string]any); c["status"] != "unhealthy" {
		t.Errorf("cache check = %v", c)
	}
}

type fixedSchedule struct{ last, next time.Time }

func (s fixedSchedule) LastRun() time.Time { return s.last }
func (s fixedSchedule) NextRun() time.Time { return s.next }

func TestHealthHandler_HealthWithRevalidation(t *testing.T) {
	next := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	w := httptest.NewRecorder()
	newHealth(nil).WithRevalidation(fixedSchedule{next: next}).
		Health(w, httptest.NewRequest(http.MethodGet, RouteHealth, nil))

	assertStatus(t, w.Code, http.StatusOK)
	reval, ok := decodeBody(t, w)["revalidation"].(map[string]any)
	if !ok {
		t.Fatal("revalidation missing from health report")
	}
	if _, ok := reval["last_run"]; ok {
		t.Errorf("last_run = %v before any run; want omitted", reval["last_run"])
	}
	if reval["next_run"] != "2026-03-01T12:00:00Z" {
		t.Errorf("next_run = %v; want 2026-03-01T12:00:00Z", reval["next_run"])
	}

	w = httptest.NewRecorder()
	newHealth(nil).Health(w, httptest.NewRequest(http.MethodGet, RouteHealth, nil))
	if _, ok := decodeBody(t, w)["revalidation"]; ok {
		t.Error("revalidation reported without a schedule")
	}
}
