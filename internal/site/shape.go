// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package site

import (
	"slices"

	"github.com/olegiv/cargo-site/internal/content"
)

// Shaping constants of the page layouts.
const (
	HomeServiceGroupSize = 4
	HomeServiceMax       = 8
	NewsPageSize         = 5
)

// Group is a run of items sharing a key.
type Group[K comparable, T any] struct {
	Key   K
	Items []T
}

// GroupByFirstSeen groups items by key. Groups are ordered by the first
// occurrence of their key and items keep their input order within a group.
func GroupByFirstSeen[T any, K comparable](items []T, key func(T) K) []Group[K, T] {
	index := make(map[K]int)
	var groups []Group[K, T]
	for _, item := range items {
		k := key(item)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group[K, T]{Key: k})
		}
		groups[i].Items = append(groups[i].Items, item)
	}
	return groups
}

// Page is the visible window of a "load more" listing.
type Page[T any] struct {
	Items    []T  `json:"items"`
	Page     int  `json:"page"`
	PageSize int  `json:"pageSize"`
	Total    int  `json:"total"`
	HasMore  bool `json:"hasMore"`
}

// Paginate returns the first page*pageSize items. Each "load more" step
// increments page by one. page and pageSize below 1 are treated as 1.
func Paginate[T any](items []T, pageSize, page int) Page[T] {
	if pageSize < 1 {
		pageSize = 1
	}
	if page < 1 {
		page = 1
	}
	visible := len(items)
	if page <= len(items)/pageSize {
		visible = page * pageSize
	}
	return Page[T]{
		Items:    slices.Clone(items[:visible]),
		Page:     page,
		PageSize: pageSize,
		Total:    len(items),
		HasMore:  visible < len(items),
	}
}

// SortByLocaleAffinity returns reviews written in locale first, followed by
// the rest. The relative order inside each part is preserved.
func SortByLocaleAffinity(reviews []content.Review, locale string) []content.Review {
	out := slices.Clone(reviews)
	slices.SortStableFunc(out, func(a, b content.Review) int {
		am, bm := a.Language == locale, b.Language == locale
		switch {
		case am && !bm:
			return -1
		case bm && !am:
			return 1
		default:
			return 0
		}
	})
	return out
}

// SplitServices takes the first HomeServiceMax services and splits them into
// two layout slots of HomeServiceGroupSize by position.
func SplitServices(services []content.Service) (first, second []content.Service) {
	n := min(len(services), HomeServiceMax)
	split := min(n, HomeServiceGroupSize)
	first = slices.Clone(services[:split])
	second = slices.Clone(services[split:n])
	return first, second
}

// SortNewsByDate returns news ordered by creation date, newest first.
// Items with equal dates keep their input order.
func SortNewsByDate(news []content.News) []content.News {
	out := slices.Clone(news)
	slices.SortStableFunc(out, func(a, b content.News) int {
		return b.CreatedAt().Compare(a.CreatedAt())
	})
	return out
}

// ServiceIndex returns the position of the service with the given slug,
// or -1 when slug is empty or not found.
func ServiceIndex(services []content.Service, slug string) int {
	if slug == "" {
		return -1
	}
	return slices.IndexFunc(services, func(s content.Service) bool {
		return s.Slug == slug
	})
}

// NewsPath identifies one prerenderable news detail page.
type NewsPath struct {
	ID     string `json:"id"`
	Locale string `json:"locale"`
}

// NewsPathSet returns every (id, locale) combination.
func NewsPathSet(ids []int, locales []string) []NewsPath {
	paths := make([]NewsPath, 0, len(ids)*len(locales))
	for _, id := range ids {
		for _, locale := range locales {
			paths = append(paths, NewsPath{ID: newsID(id), Locale: locale})
		}
	}
	return paths
}
