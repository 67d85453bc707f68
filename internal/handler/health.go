// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/olegiv/cargo-site/internal/cache"
	"github.com/olegiv/cargo-site/internal/version"
)

// readinessTimeout bounds the CMS ping of a readiness check.
const readinessTimeout = 5 * time.Second

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Revalidation reports the page cache revalidation schedule.
type Revalidation interface {
	LastRun() time.Time
	NextRun() time.Time
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	cms       Pinger
	store     Pinger
	schedule  Revalidation
	version   version.Info
	startTime time.Time
	logger    *slog.Logger
}

// NewHealthHandler creates a new health handler. store is the page cache;
// it may be nil.
func NewHealthHandler(cms, store Pinger, info version.Info, logger *slog.Logger) *HealthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthHandler{
		cms:       cms,
		store:     store,
		version:   info,
		startTime: time.Now(),
		logger:    logger,
	}
}

// WithRevalidation adds the revalidation schedule to the health report.
func (h *HealthHandler) WithRevalidation(r Revalidation) *HealthHandler {
	h.schedule = r
	return h
}

// HealthStatus represents the overall health status.
type HealthStatus struct {
	Status       string              `json:"status"`
	Timestamp    time.Time           `json:"timestamp"`
	Uptime       string              `json:"uptime"`
	Version      string              `json:"version"`
	Checks       map[string]Check    `json:"checks"`
	Cache        *cache.Stats        `json:"cache,omitempty"`
	Revalidation *RevalidationStatus `json:"revalidation,omitempty"`
}

// RevalidationStatus holds the last and next revalidation times.
// A field is omitted when that run has not happened or is not scheduled.
type RevalidationStatus struct {
	LastRun *time.Time `json:"last_run,omitempty"`
	NextRun *time.Time `json:"next_run,omitempty"`
}

// Check represents a single health check result.
type Check struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
}

// Health handles GET /health. Ping errors are logged, never returned.
// An unreachable CMS makes the service unavailable; an unreachable cache
// only degrades it, since pages can still be assembled.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Version:   h.version.Version,
		Checks:    map[string]Check{"cms": h.check(r.Context(), "cms", h.cms)},
	}
	code := http.StatusOK

	if h.store != nil {
		status.Checks["cache"] = h.check(r.Context(), "cache", h.store)
		if sp, ok := h.store.(cache.StatsProvider); ok {
			stats := sp.Stats()
			status.Cache = &stats
		}
		if status.Checks["cache"].Status != "healthy" {
			status.Status = "degraded"
		}
	}
	if h.schedule != nil {
		status.Revalidation = &RevalidationStatus{
			LastRun: timeOrNil(h.schedule.LastRun()),
			NextRun: timeOrNil(h.schedule.NextRun()),
		}
	}
	if status.Checks["cms"].Status != "healthy" {
		status.Status = "degraded"
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, status)
}

func timeOrNil(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	t = t.UTC()
	return &t
}

// Liveness handles GET /health/live - simple liveness check.
func (h *HealthHandler) Liveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// Readiness handles GET /health/ready - the CMS must answer a ping.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	if h.check(r.Context(), "cms", h.cms).Status != "healthy" {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not_ready"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (h *HealthHandler) check(ctx context.Context, name string, p Pinger) Check {
	ctx, cancel := context.WithTimeout(ctx, readinessTimeout)
	defer cancel()

	start := time.Now()
	err := p.Ping(ctx)
	latency := time.Since(start)

	if err != nil {
		h.logger.WarnContext(ctx, "health check failed", "check", name, "error", err)
		return Check{Status: "unhealthy", Latency: latency.String()}
	}
	return Check{Status: "healthy", Latency: latency.String()}
}
