// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

func newTestMemoryCache(ttl time.Duration, maxSize int) *MemoryCache {
	return NewMemoryCache(MemoryCacheOptions{
		DefaultTTL:      ttl,
		MaxSize:         maxSize,
		CleanupInterval: 0, // No background cleanup for tests
	})
}

func TestMemoryCache_BasicOperations(t *testing.T) {
	cache := newTestMemoryCache(time.Hour, 100)
	defer func() { _ = cache.Close() }()
	ctx := context.Background()

	if err := cache.Set(ctx, "page:home:ru", []byte("value1"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, err := cache.Get(ctx, "page:home:ru")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(val) != "value1" {
		t.Errorf("Get = %q, want %q", val, "value1")
	}

	if _, err := cache.Get(ctx, "page:home:en"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected ErrCacheMiss, got %v", err)
	}
	if err := cache.Ping(ctx); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
}

func TestMemoryCache_Expiration(t *testing.T) {
	cache := newTestMemoryCache(50*time.Millisecond, 0)
	defer func() { _ = cache.Close() }()
	ctx := context.Background()

	_ = cache.Set(ctx, "short", []byte("v"), 0)
	time.Sleep(70 * time.Millisecond)

	if _, err := cache.Get(ctx, "short"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected ErrCacheMiss after expiry, got %v", err)
	}
	if _, err := cache.Get(ctx, "short"); err == nil {
		t.Error("expected expired key to be gone")
	}
}

func TestMemoryCache_ReturnsCopy(t *testing.T) {
	cache := newTestMemoryCache(time.Hour, 0)
	defer func() { _ = cache.Close() }()
	ctx := context.Background()

	src := []byte("abc")
	_ = cache.Set(ctx, "k", src, 0)
	src[0] = 'x'

	got, _ := cache.Get(ctx, "k")
	got[1] = 'y'

	again, _ := cache.Get(ctx, "k")
	if string(again) != "abc" {
		t.Errorf("cached value mutated: %q", again)
	}
}

func TestMemoryCache_DeleteByPrefix(t *testing.T) {
	cache := newTestMemoryCache(time.Hour, 0)
	defer func() { _ = cache.Close() }()
	ctx := context.Background()

	for _, k := range []string{"page:home:ru", "page:home:en", "page:news:ru", "other"} {
		_ = cache.Set(ctx, k, []byte(k), 0)
	}

	if err := cache.DeleteByPrefix(ctx, "page:"); err != nil {
		t.Fatalf("DeleteByPrefix failed: %v", err)
	}

	for _, k := range []string{"page:home:ru", "page:home:en", "page:news:ru"} {
		if _, err := cache.Get(ctx, k); err == nil {
			t.Errorf("expected %s to be deleted", k)
		}
	}
	if _, err := cache.Get(ctx, "other"); err != nil {
		t.Error("expected unrelated key to survive")
	}
	if size := cache.Stats().Size; size != int64(len("other")) {
		t.Errorf("Size = %d, want %d", size, len("other"))
	}
}

func TestMemoryCache_MaxSizeEvictsSoonestExpiry(t *testing.T) {
	cache := newTestMemoryCache(time.Hour, 2)
	defer func() { _ = cache.Close() }()
	ctx := context.Background()

	_ = cache.Set(ctx, "a", []byte("1"), 2*time.Hour)
	_ = cache.Set(ctx, "b", []byte("2"), time.Minute)
	_ = cache.Set(ctx, "c", []byte("3"), 0)

	stats := cache.Stats()
	if stats.Items != 2 || stats.Evictions != 1 {
		t.Errorf("stats = %+v, want 2 items and 1 eviction", stats)
	}
	if _, err := cache.Get(ctx, "b"); err == nil {
		t.Error("expected b (soonest expiry) to be evicted")
	}
	if got, _ := cache.Get(ctx, "c"); string(got) != "3" {
		t.Errorf("Get(c) = %q, want %q", got, "3")
	}

	// Overwriting an existing key never evicts.
	if err := cache.Set(ctx, "a", []byte("11"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if got, _ := cache.Get(ctx, "a"); string(got) != "11" {
		t.Errorf("Get(a) = %q, want %q", got, "11")
	}
	if ev := cache.Stats().Evictions; ev != 1 {
		t.Errorf("Evictions = %d, want 1", ev)
	}
}

func TestMemoryCache_MaxSizePrefersExpired(t *testing.T) {
	cache := newTestMemoryCache(time.Hour, 2)
	defer func() { _ = cache.Close() }()
	ctx := context.Background()

	now := time.Now()
	cache.now = func() time.Time { return now }

	_ = cache.Set(ctx, "stale", []byte("1"), time.Minute)
	_ = cache.Set(ctx, "fresh", []byte("2"), time.Hour)

	now = now.Add(2 * time.Minute)
	_ = cache.Set(ctx, "new", []byte("3"), time.Hour)

	if ev := cache.Stats().Evictions; ev != 0 {
		t.Errorf("Evictions = %d, want 0 when an expired entry frees room", ev)
	}
	for _, k := range []string{"fresh", "new"} {
		if _, err := cache.Get(ctx, k); err != nil {
			t.Errorf("expected %s to be cached", k)
		}
	}
}

func TestMemoryCache_Closed(t *testing.T) {
	cache := newTestMemoryCache(time.Hour, 0)
	_ = cache.Close()
	ctx := context.Background()

	if err := cache.Set(ctx, "k", []byte("v"), 0); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("Set after Close = %v, want ErrCacheClosed", err)
	}
	if _, err := cache.Get(ctx, "k"); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("Get after Close = %v, want ErrCacheClosed", err)
	}
	if err := cache.Ping(ctx); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("Ping after Close = %v, want ErrCacheClosed", err)
	}
	// Closing twice must not panic.
	_ = cache.Close()
}

func TestMemoryCache_Stats(t *testing.T) {
	cache := newTestMemoryCache(time.Hour, 0)
	defer func() { _ = cache.Close() }()
	ctx := context.Background()

	_ = cache.Set(ctx, "k", []byte("v"), 0)
	_, _ = cache.Get(ctx, "k")
	_, _ = cache.Get(ctx, "missing")

	stats := cache.Stats()
	if stats.Hits != 1 || stats.Misses != 1 || stats.Sets != 1 {
		t.Errorf("stats = %+v, want 1 hit, 1 miss, 1 set", stats)
	}
	if stats.HitRate != 50 {
		t.Errorf("HitRate = %v, want 50", stats.HitRate)
	}
}

func TestMemoryCache_Concurrent(t *testing.T) {
	cache := newTestMemoryCache(time.Hour, 0)
	defer func() { _ = cache.Close() }()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("page:news:ru:%d", i%10)
			_ = cache.Set(ctx, key, []byte{byte(i)}, 0)
			_, _ = cache.Get(ctx, key)
			_ = cache.DeleteByPrefix(ctx, "page:news:")
			_ = cache.Stats()
		}(i)
	}
	wg.Wait()
}
