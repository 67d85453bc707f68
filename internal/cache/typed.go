// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"encoding/json"
	"time"

	"golang.org/x/sync/singleflight"
)

// TypedCache stores values of type T as JSON in a Cacher. Concurrent
// misses on the same key share a single load.
type TypedCache[T any] struct {
	store Cacher
	ttl   time.Duration
	loads singleflight.Group
}

// NewTypedCache creates a TypedCache whose entries live for ttl.
func NewTypedCache[T any](store Cacher, ttl time.Duration) *TypedCache[T] {
	return &TypedCache[T]{store: store, ttl: ttl}
}

// Get returns the value under key. Backend errors and entries that fail
// to decode are reported as a miss.
func (c *TypedCache[T]) Get(ctx context.Context, key string) (*T, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		return nil, false
	}
	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, false
	}
	return &value, true
}

// Set stores value under key.
func (c *TypedCache[T]) Set(ctx context.Context, key string, value *T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.store.Set(ctx, key, data, c.ttl)
}

// SharedLoadTimeout bounds a load that outlives the caller that started it.
const SharedLoadTimeout = 30 * time.Second

// GetOrSet returns the cached value, or calls load and stores its result.
// Errors from load are returned as-is and never cached. Callers that share
// a load receive the same pointer and must not modify it.
//
// The load runs on a context detached from the caller's cancellation and
// bounded by SharedLoadTimeout, so a caller that goes away does not fail
// the others waiting on the same key. Each caller still returns as soon as
// its own ctx is done.
func (c *TypedCache[T]) GetOrSet(ctx context.Context, key string, load func(context.Context) (*T, error)) (*T, error) {
	if value, ok := c.Get(ctx, key); ok {
		return value, nil
	}

	ch := c.loads.DoChan(key, func() (any, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), SharedLoadTimeout)
		defer cancel()

		value, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		// A failed write still leaves a valid value to return.
		_ = c.Set(loadCtx, key, value)
		return value, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*T), nil
	}
}
