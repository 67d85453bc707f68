// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/olegiv/cargo-site/internal/site"
)

// runPaths writes the news path set straight from the CMS, bypassing the cache.
func runPaths(ctx context.Context, out io.Writer) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	paths, err := a.assembler.NewsPaths(ctx, a.resolver.Supported())
	if err != nil {
		return fmt.Errorf("loading news paths: %w", err)
	}
	return writePaths(out, paths)
}

func writePaths(out io.Writer, paths []site.NewsPath) error {
	if paths == nil {
		paths = []site.NewsPath{}
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(paths)
}
