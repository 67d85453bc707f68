// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package site

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/olegiv/cargo-site/internal/cache"
)

// PageKeyPrefix prefixes every cached page entry.
const PageKeyPrefix = "page:"

// PageKey returns the cache key of a page, e.g. page:news:en:7.
func PageKey(name, locale string, args ...string) string {
	key := PageKeyPrefix + name + ":" + locale
	for _, a := range args {
		key += ":" + a
	}
	return key
}

// CachedPages serves page props from a cache for the revalidation window.
// Failed assemblies are never cached.
type CachedPages struct {
	next   Pages
	store  cache.Cacher
	logger *slog.Logger

	home       *cache.TypedCache[HomeProps]
	services   *cache.TypedCache[ServicesProps]
	containers *cache.TypedCache[ContainersProps]
	articles   *cache.TypedCache[ArticleProps]
	contacts   *cache.TypedCache[ContactsProps]
	news       *cache.TypedCache[NewsProps]
	newsDetail *cache.TypedCache[NewsDetailProps]
	newsPaths  *cache.TypedCache[[]NewsPath]
}

var _ Pages = (*CachedPages)(nil)

// NewCachedPages wraps next with a cache whose entries live for ttl.
func NewCachedPages(next Pages, store cache.Cacher, ttl time.Duration, logger *slog.Logger) *CachedPages {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedPages{
		next:       next,
		store:      store,
		logger:     logger,
		home:       cache.NewTypedCache[HomeProps](store, ttl),
		services:   cache.NewTypedCache[ServicesProps](store, ttl),
		containers: cache.NewTypedCache[ContainersProps](store, ttl),
		articles:   cache.NewTypedCache[ArticleProps](store, ttl),
		contacts:   cache.NewTypedCache[ContactsProps](store, ttl),
		news:       cache.NewTypedCache[NewsProps](store, ttl),
		newsDetail: cache.NewTypedCache[NewsDetailProps](store, ttl),
		newsPaths:  cache.NewTypedCache[[]NewsPath](store, ttl),
	}
}

// Home implements Pages.
func (c *CachedPages) Home(ctx context.Context, locale string) (*HomeProps, error) {
	return c.home.GetOrSet(ctx, PageKey("home", locale), func(ctx context.Context) (*HomeProps, error) {
		return c.next.Home(ctx, locale)
	})
}

// Services implements Pages.
func (c *CachedPages) Services(ctx context.Context, locale string) (*ServicesProps, error) {
	return c.services.GetOrSet(ctx, PageKey("services", locale), func(ctx context.Context) (*ServicesProps, error) {
		return c.next.Services(ctx, locale)
	})
}

// Containers implements Pages.
func (c *CachedPages) Containers(ctx context.Context, locale string) (*ContainersProps, error) {
	return c.containers.GetOrSet(ctx, PageKey("containers", locale), func(ctx context.Context) (*ContainersProps, error) {
		return c.next.Containers(ctx, locale)
	})
}

// About implements Pages.
func (c *CachedPages) About(ctx context.Context, locale string) (*ArticleProps, error) {
	return c.articles.GetOrSet(ctx, PageKey("about", locale), func(ctx context.Context) (*ArticleProps, error) {
		return c.next.About(ctx, locale)
	})
}

// Privacy implements Pages.
func (c *CachedPages) Privacy(ctx context.Context, locale string) (*ArticleProps, error) {
	return c.articles.GetOrSet(ctx, PageKey("privacy", locale), func(ctx context.Context) (*ArticleProps, error) {
		return c.next.Privacy(ctx, locale)
	})
}

// Contacts implements Pages.
func (c *CachedPages) Contacts(ctx context.Context, locale string) (*ContactsProps, error) {
	return c.contacts.GetOrSet(ctx, PageKey("contacts", locale), func(ctx context.Context) (*ContactsProps, error) {
		return c.next.Contacts(ctx, locale)
	})
}

// News implements Pages.
func (c *CachedPages) News(ctx context.Context, locale string) (*NewsProps, error) {
	return c.news.GetOrSet(ctx, PageKey("news", locale), func(ctx context.Context) (*NewsProps, error) {
		return c.next.News(ctx, locale)
	})
}

// NewsDetail implements Pages.
func (c *CachedPages) NewsDetail(ctx context.Context, locale, id string) (*NewsDetailProps, error) {
	return c.newsDetail.GetOrSet(ctx, PageKey("news", locale, id), func(ctx context.Context) (*NewsDetailProps, error) {
		return c.next.NewsDetail(ctx, locale, id)
	})
}

// NewsPaths implements Pages. The path set is cached per locale list.
func (c *CachedPages) NewsPaths(ctx context.Context, locales []string) ([]NewsPath, error) {
	key := PageKey("paths", strings.Join(locales, ","))
	paths, err := c.newsPaths.GetOrSet(ctx, key, func(ctx context.Context) (*[]NewsPath, error) {
		p, err := c.next.NewsPaths(ctx, locales)
		if err != nil {
			return nil, err
		}
		return &p, nil
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(*paths), nil
}

// Purge drops every cached page. The next request rebuilds from the CMS.
func (c *CachedPages) Purge(ctx context.Context) error {
	return c.store.DeleteByPrefix(ctx, PageKeyPrefix)
}

// Warm assembles the listing pages of every locale so they are cached
// before the first request. It returns the number of pages that failed.
func (c *CachedPages) Warm(ctx context.Context, locales []string) int {
	type loader struct {
		name string
		load func(context.Context, string) error
	}
	loaders := []loader{
		{"home", func(ctx context.Context, l string) error { _, err := c.Home(ctx, l); return err }},
		{"services", func(ctx context.Context, l string) error { _, err := c.Services(ctx, l); return err }},
		{"containers", func(ctx context.Context, l string) error { _, err := c.Containers(ctx, l); return err }},
		{"about", func(ctx context.Context, l string) error { _, err := c.About(ctx, l); return err }},
		{"privacy", func(ctx context.Context, l string) error { _, err := c.Privacy(ctx, l); return err }},
		{"contacts", func(ctx context.Context, l string) error { _, err := c.Contacts(ctx, l); return err }},
		{"news", func(ctx context.Context, l string) error { _, err := c.News(ctx, l); return err }},
	}

	failed := 0
	for _, locale := range locales {
		for _, ld := range loaders {
			if ctx.Err() != nil {
				return failed
			}
			if err := ld.load(ctx, locale); err != nil {
				failed++
				c.logger.WarnContext(ctx, "cache warm-up failed", "page", ld.name, "locale", locale, "error", err)
			}
		}
	}
	return failed
}
