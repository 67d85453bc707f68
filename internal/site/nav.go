// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package site

import (
	_ "embed"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

//go:embed nav.yaml
var navYAML []byte

// NavItem is one navigation entry. Key doubles as the translation key of its label.
type NavItem struct {
	Key     string `yaml:"key" json:"key"`
	Href    string `yaml:"href" json:"href"`
	Main    bool   `yaml:"main" json:"main"`
	Footer  bool   `yaml:"footer" json:"footer"`
	Current bool   `yaml:"-" json:"current"`
}

var navigation = mustParseNav(navYAML)

func parseNav(data []byte) ([]NavItem, error) {
	var items []NavItem
	if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parsing navigation: %w", err)
	}
	for i, item := range items {
		if item.Key == "" || item.Href == "" {
			return nil, fmt.Errorf("navigation item %d: key and href are required", i)
		}
	}
	return items, nil
}

func mustParseNav(data []byte) []NavItem {
	items, err := parseNav(data)
	if err != nil {
		panic(err)
	}
	return items
}

// Navigation returns a copy of the site navigation with nothing marked current.
func Navigation() []NavItem {
	return slices.Clone(navigation)
}

// MarkCurrent returns a new slice in which exactly the items whose Href equals
// path are marked current. nav is not modified.
func MarkCurrent(nav []NavItem, path string) []NavItem {
	out := make([]NavItem, len(nav))
	for i, item := range nav {
		item.Current = item.Href == path
		out[i] = item
	}
	return out
}
