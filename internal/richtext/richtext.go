// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package richtext renders CMS rich-text fields into safe HTML.
package richtext

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Supported source formats.
const (
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
)

// Renderer converts rich-text source into sanitized HTML.
// It is safe for concurrent use.
type Renderer struct {
	format   string
	md       goldmark.Markdown
	sanitize *bluemonday.Policy
}

// New creates a Renderer for the given source format.
func New(format string) (*Renderer, error) {
	r := &Renderer{
		format:   format,
		sanitize: bluemonday.UGCPolicy(),
	}
	switch format {
	case FormatHTML:
	case FormatMarkdown:
		r.md = goldmark.New(goldmark.WithExtensions(extension.GFM))
	default:
		return nil, fmt.Errorf("unknown rich-text format %q", format)
	}
	return r, nil
}

// Format returns the source format.
func (r *Renderer) Format() string {
	return r.format
}

// Render returns sanitized HTML for src. Markdown that fails to convert
// falls back to the sanitized source.
func (r *Renderer) Render(src string) string {
	if src == "" {
		return ""
	}
	if r.md != nil {
		var buf bytes.Buffer
		if err := r.md.Convert([]byte(src), &buf); err == nil {
			return r.sanitize.Sanitize(buf.String())
		}
	}
	return r.sanitize.Sanitize(src)
}
