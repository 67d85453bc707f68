// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"testing"
	"time"
)

const testBase = "https://cms.example.com"

func TestAssetURLs_URL(t *testing.T) {
	tests := []struct {
		base string
		id   string
		want string
	}{
		{testBase, "abc", "https://cms.example.com/assets/abc"},
		{testBase + "/", "abc", "https://cms.example.com/assets/abc"},
		{testBase, "", ""},
	}

	for _, tt := range tests {
		if got := NewAssetURLs(tt.base).URL(tt.id); got != tt.want {
			t.Errorf("URL(%q) with base %q = %q, want %q", tt.id, tt.base, got, tt.want)
		}
	}
}

func TestAssetURLs_NotIdempotent(t *testing.T) {
	a := NewAssetURLs(testBase)
	once := a.URL("abc")
	twice := a.URL(once)

	want := "https://cms.example.com/assets/https://cms.example.com/assets/abc"
	if twice != want {
		t.Errorf("double rewrite = %q, want %q", twice, want)
	}
}

func TestRewriteAll_DoesNotMutateInput(t *testing.T) {
	in := []Service{
		{Slug: "sea", Picture: "p1", Translations: []ServiceTranslation{{Title: "Sea"}}},
		{Slug: "rail", Picture: "p2"},
	}

	out := RewriteAll(in, NewAssetURLs(testBase))

	if in[0].Picture != "p1" || in[1].Picture != "p2" {
		t.Errorf("input mutated: %+v", in)
	}
	if out[0].Picture != testBase+"/assets/p1" || out[1].Picture != testBase+"/assets/p2" {
		t.Errorf("output = %+v", out)
	}

	out[0].Translations[0].Title = "changed"
	if in[0].Translations[0].Title != "Sea" {
		t.Error("output shares translations with input")
	}
}

func TestRewriteAll_Nil(t *testing.T) {
	if got := RewriteAll[News](nil, NewAssetURLs(testBase)); got != nil {
		t.Errorf("RewriteAll(nil) = %v, want nil", got)
	}
}

func TestWithAssetURLs_Fields(t *testing.T) {
	a := NewAssetURLs(testBase)

	if got := (Container{Image: "c"}).WithAssetURLs(a).Image; got != testBase+"/assets/c" {
		t.Errorf("Container.Image = %q", got)
	}
	if got := (News{Image: "n"}).WithAssetURLs(a).Image; got != testBase+"/assets/n" {
		t.Errorf("News.Image = %q", got)
	}
	if got := (Review{Photo: "r"}).WithAssetURLs(a).Photo; got != testBase+"/assets/r" {
		t.Errorf("Review.Photo = %q", got)
	}
	if got := (Customer{Logo: "l"}).WithAssetURLs(a).Logo; got != testBase+"/assets/l" {
		t.Errorf("Customer.Logo = %q", got)
	}
	if got := (Customer{Selection: true}).WithAssetURLs(a).Logo; got != "" {
		t.Errorf("text customer Logo = %q, want empty", got)
	}
}

func TestFirst(t *testing.T) {
	if _, ok := First[ArticleTranslation](nil); ok {
		t.Error("First(nil) ok = true, want false")
	}
	got, ok := First([]ArticleTranslation{{Title: "a"}, {Title: "b"}})
	if !ok || got.Title != "a" {
		t.Errorf("First = %+v, %v; want a, true", got, ok)
	}
}

func TestNews_CreatedAt(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-03-05T10:20:30.000Z", time.Date(2024, 3, 5, 10, 20, 30, 0, time.UTC)},
		{"2024-03-05T10:20:30Z", time.Date(2024, 3, 5, 10, 20, 30, 0, time.UTC)},
		{"2024-03-05T10:20:30", time.Date(2024, 3, 5, 10, 20, 30, 0, time.UTC)},
		{"2024-03-05", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
		{"garbage", time.Time{}},
		{"", time.Time{}},
	}

	for _, tt := range tests {
		if got := (News{DateCreated: tt.in}).CreatedAt(); !got.Equal(tt.want) {
			t.Errorf("CreatedAt(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCustomer_Validate(t *testing.T) {
	tests := []struct {
		name    string
		c       Customer
		wantErr bool
	}{
		{"logo entry", Customer{ID: 1, Logo: "file"}, false},
		{"logo entry without logo", Customer{ID: 2}, true},
		{"text entry", Customer{ID: 3, Selection: true, Translations: []CustomerTranslation{{Text: "Great"}}}, false},
		{"text entry without translations", Customer{ID: 4, Selection: true}, true},
		{"text entry with empty text", Customer{ID: 5, Selection: true, Translations: []CustomerTranslation{{}}}, true},
		{"text entry ignores logo", Customer{ID: 6, Selection: true, Translations: []CustomerTranslation{{Text: "ok"}}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCustomer_Rendering(t *testing.T) {
	logo := Customer{Logo: "x"}
	text := Customer{Selection: true, Translations: []CustomerTranslation{{Text: "quote"}}}

	if !logo.IsLogo() || text.IsLogo() {
		t.Error("IsLogo must follow Selection only")
	}
	if text.Quote() != "quote" {
		t.Errorf("Quote() = %q, want %q", text.Quote(), "quote")
	}
	if logo.Quote() != "" {
		t.Errorf("logo Quote() = %q, want empty", logo.Quote())
	}
}
