// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"log/slog"
	"time"
)

// Config holds configuration for cache creation.
type Config struct {
	// RedisURL selects the Redis backend when non-empty.
	RedisURL string

	// Prefix is the key prefix for Redis.
	Prefix string

	DefaultTTL time.Duration

	// MaxSize is the maximum number of entries for the memory cache (0 = unlimited).
	MaxSize int

	CleanupInterval time.Duration

	// FallbackToMemory uses the memory cache when Redis is unreachable.
	FallbackToMemory bool
}

// Info describes the backend New actually produced.
type Info struct {
	Backend    string `json:"backend"`
	IsFallback bool   `json:"is_fallback"`
}

// New creates a cache based on cfg.
func New(cfg Config, logger *slog.Logger) (Cacher, Info, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if cfg.RedisURL != "" {
		rc, err := NewRedisCache(RedisCacheOptions{
			URL:        cfg.RedisURL,
			Prefix:     cfg.Prefix,
			DefaultTTL: cfg.DefaultTTL,
			PoolSize:   10,
		})
		if err == nil {
			return rc, Info{Backend: "redis"}, nil
		}
		if !cfg.FallbackToMemory {
			return nil, Info{}, err
		}
		logger.Warn("redis unavailable, using memory cache", "error", err)
		return newMemoryFromConfig(cfg), Info{Backend: "memory", IsFallback: true}, nil
	}

	return newMemoryFromConfig(cfg), Info{Backend: "memory"}, nil
}

func newMemoryFromConfig(cfg Config) *MemoryCache {
	return NewMemoryCache(MemoryCacheOptions{
		DefaultTTL:      cfg.DefaultTTL,
		MaxSize:         cfg.MaxSize,
		CleanupInterval: cfg.CleanupInterval,
	})
}
