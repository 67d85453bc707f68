// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cache provides the caching layer that holds assembled page props
// for the duration of a revalidation window.
package cache

import (
	"context"
	"errors"
	"time"
)

// Cacher stores encoded values by key. Implementations are safe for
// concurrent use.
type Cacher interface {
	// Get returns the value stored under key, or ErrCacheMiss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key. A zero ttl selects the default TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// DeleteByPrefix removes every key starting with prefix.
	DeleteByPrefix(ctx context.Context, prefix string) error

	// Ping reports whether the backend is usable.
	Ping(ctx context.Context) error

	Close() error
}

// StatsProvider is implemented by caches that count their traffic.
type StatsProvider interface {
	Stats() Stats
}

// Stats is a snapshot of cache counters. Items and Size are only known
// for the memory backend.
type Stats struct {
	Hits      int64   `json:"hits"`
	Misses    int64   `json:"misses"`
	Sets      int64   `json:"sets"`
	Evictions int64   `json:"evictions"`
	Items     int     `json:"items,omitempty"`
	Size      int64   `json:"size_bytes,omitempty"`
	HitRate   float64 `json:"hit_rate"`
}

var (
	// ErrCacheMiss is returned by Get when the key is absent or expired.
	ErrCacheMiss = errors.New("cache miss")

	// ErrCacheClosed is returned by every operation after Close.
	ErrCacheClosed = errors.New("cache closed")
)

// counters holds the traffic counters shared by both backends.
type counters struct {
	hits, misses, sets, evictions int64
}

func (c counters) stats() Stats {
	s := Stats{Hits: c.hits, Misses: c.misses, Sets: c.sets, Evictions: c.evictions}
	if total := c.hits + c.misses; total > 0 {
		s.HitRate = float64(c.hits) / float64(total) * 100
	}
	return s
}
