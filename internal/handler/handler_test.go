// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/olegiv/cargo-site/internal/content"
	"github.com/olegiv/cargo-site/internal/locale"
	"github.com/olegiv/cargo-site/internal/site"
)

func newTestResolver(t *testing.T) *locale.Resolver {
	t.Helper()
	res, err := locale.New([]string{"ru", "en"}, "ru")
	if err != nil {
		t.Fatalf("locale.New failed: %v", err)
	}
	return res
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal response: %v (%q)", err, w.Body.String())
	}
	return body
}

func assertStatus(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("status = %d; want %d", got, want)
	}
}

// fakePages returns canned props and records the locale of each call.
type fakePages struct {
	mu      sync.Mutex
	locales []string
	err     error
	news    []content.News
	paths   []site.NewsPath
}

func (f *fakePages) record(l string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.locales = append(f.locales, l)
	return f.err
}

func (f *fakePages) lastLocale() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.locales) == 0 {
		return ""
	}
	return f.locales[len(f.locales)-1]
}

func layout(l string) site.Layout {
	return site.Layout{Locale: l, Navigation: site.Navigation()}
}

func (f *fakePages) Home(_ context.Context, l string) (*site.HomeProps, error) {
	if err := f.record(l); err != nil {
		return nil, err
	}
	return &site.HomeProps{Layout: layout(l), Home: content.HomeTranslation{Title: "Welcome"}}, nil
}

func (f *fakePages) Services(_ context.Context, l string) (*site.ServicesProps, error) {
	if err := f.record(l); err != nil {
		return nil, err
	}
	return &site.ServicesProps{
		Layout:    layout(l),
		Items:     []content.Service{{ID: 1, Slug: "sea"}, {ID: 2, Slug: "rail"}},
		OpenIndex: -1,
	}, nil
}

func (f *fakePages) Containers(_ context.Context, l string) (*site.ContainersProps, error) {
	if err := f.record(l); err != nil {
		return nil, err
	}
	return &site.ContainersProps{Layout: layout(l)}, nil
}

func (f *fakePages) About(_ context.Context, l string) (*site.ArticleProps, error) {
	if err := f.record(l); err != nil {
		return nil, err
	}
	return &site.ArticleProps{Layout: layout(l), Article: content.ArticleTranslation{Title: "About"}}, nil
}

func (f *fakePages) Privacy(_ context.Context, l string) (*site.ArticleProps, error) {
	if err := f.record(l); err != nil {
		return nil, err
	}
	return &site.ArticleProps{Layout: layout(l)}, nil
}

func (f *fakePages) Contacts(_ context.Context, l string) (*site.ContactsProps, error) {
	if err := f.record(l); err != nil {
		return nil, err
	}
	return &site.ContactsProps{Layout: layout(l)}, nil
}

func (f *fakePages) News(_ context.Context, l string) (*site.NewsProps, error) {
	if err := f.record(l); err != nil {
		return nil, err
	}
	return &site.NewsProps{Layout: layout(l), Items: f.news}, nil
}

func (f *fakePages) NewsDetail(_ context.Context, l, id string) (*site.NewsDetailProps, error) {
	if err := f.record(l); err != nil {
		return nil, err
	}
	if id != "7" {
		return nil, fmt.Errorf("%w: news/%s", site.ErrPageUnavailable, id)
	}
	return &site.NewsDetailProps{Layout: layout(l), ID: 7}, nil
}

func (f *fakePages) NewsPaths(_ context.Context, locales []string) ([]site.NewsPath, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.paths, nil
}

var _ site.Pages = (*fakePages)(nil)
