// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import "strings"

// AssetResolver turns a CMS asset id into a public URL.
type AssetResolver interface {
	URL(id string) string
}

// AssetURLs builds asset URLs of the form <base>/assets/<id>.
// URL is not idempotent: passing an already rewritten value prefixes it again.
type AssetURLs struct {
	base string
}

// NewAssetURLs creates an AssetURLs for the CMS at base.
func NewAssetURLs(base string) AssetURLs {
	return AssetURLs{base: strings.TrimRight(base, "/")}
}

// URL returns the public URL of the asset. An empty id stays empty.
func (a AssetURLs) URL(id string) string {
	if id == "" {
		return ""
	}
	return a.base + "/assets/" + id
}

// Rewriter is implemented by entities carrying asset references.
// WithAssetURLs returns a copy whose asset fields are public URLs.
type Rewriter[T any] interface {
	WithAssetURLs(r AssetResolver) T
}

// RewriteAll returns a new slice with every item rewritten once.
// The input slice is left untouched.
func RewriteAll[T Rewriter[T]](items []T, r AssetResolver) []T {
	if items == nil {
		return nil
	}
	out := make([]T, len(items))
	for i, item := range items {
		out[i] = item.WithAssetURLs(r)
	}
	return out
}
