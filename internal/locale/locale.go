// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package locale decides which content locale a request is served in.
package locale

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/language"
)

// Resolver maps explicit locale parameters and Accept-Language headers onto
// the configured set of supported locales.
type Resolver struct {
	supported []string
	tags      []language.Tag
	matcher   language.Matcher
	def       string
}

// New creates a Resolver. The default locale must be one of supported.
func New(supported []string, def string) (*Resolver, error) {
	if len(supported) == 0 {
		return nil, fmt.Errorf("no supported locales")
	}

	codes := make([]string, 0, len(supported))
	tags := make([]language.Tag, 0, len(supported))
	for _, code := range supported {
		code = normalize(code)
		tag, err := language.Parse(code)
		if err != nil {
			return nil, fmt.Errorf("parsing locale %q: %w", code, err)
		}
		codes = append(codes, code)
		tags = append(tags, tag)
	}

	def = normalize(def)
	if !slices.Contains(codes, def) {
		return nil, fmt.Errorf("default locale %q is not supported", def)
	}

	return &Resolver{
		supported: codes,
		tags:      tags,
		matcher:   language.NewMatcher(tags),
		def:       def,
	}, nil
}

// Resolve returns explicit when it names a supported locale, otherwise the default.
func (r *Resolver) Resolve(explicit string) string {
	if code := normalize(explicit); r.IsSupported(code) {
		return code
	}
	return r.def
}

// Negotiate picks the best supported locale for an Accept-Language header.
// The default locale is returned when nothing matches.
func (r *Resolver) Negotiate(acceptLanguage string) string {
	if strings.TrimSpace(acceptLanguage) == "" {
		return r.def
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return r.def
	}

	_, idx, conf := r.matcher.Match(tags...)
	if conf == language.No || idx < 0 || idx >= len(r.supported) {
		return r.def
	}
	return r.supported[idx]
}

// Supported returns a copy of the supported locale codes in configured order.
func (r *Resolver) Supported() []string {
	return slices.Clone(r.supported)
}

// Default returns the default locale code.
func (r *Resolver) Default() string {
	return r.def
}

// IsSupported reports whether code is a supported locale (case-insensitive).
func (r *Resolver) IsSupported(code string) bool {
	return slices.Contains(r.supported, normalize(code))
}

func normalize(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

type ctxKey struct{}

// WithLocale stores the resolved locale code in ctx.
func WithLocale(ctx context.Context, code string) context.Context {
	return context.WithValue(ctx, ctxKey{}, code)
}

// FromContext returns the locale stored by WithLocale, or "" if none.
func FromContext(ctx context.Context) string {
	code, _ := ctx.Value(ctxKey{}).(string)
	return code
}
