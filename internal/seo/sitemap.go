// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package seo builds the sitemap and robots.txt of the site.
package seo

import (
	"encoding/xml"
	"time"
)

// Sitemap XML namespaces.
const (
	XMLNamespace      = "http://www.sitemaps.org/schemas/sitemap/0.9"
	XHTMLXMLNamespace = "http://www.w3.org/1999/xhtml"
)

// ChangeFreq represents the change frequency of a URL.
type ChangeFreq string

// Valid change frequency values.
const (
	ChangeFreqHourly  ChangeFreq = "hourly"
	ChangeFreqDaily   ChangeFreq = "daily"
	ChangeFreqWeekly  ChangeFreq = "weekly"
	ChangeFreqMonthly ChangeFreq = "monthly"
)

// Defaults applied to every URL.
const (
	DefaultChangeFreq = ChangeFreqDaily
	DefaultPriority   = "0.7"
)

// AlternateLink points to the same page in another locale.
type AlternateLink struct {
	Rel      string `xml:"rel,attr"`
	Hreflang string `xml:"hreflang,attr"`
	Href     string `xml:"href,attr"`
}

// SitemapURL represents a single URL entry in the sitemap.
type SitemapURL struct {
	Loc        string          `xml:"loc"`
	LastMod    string          `xml:"lastmod,omitempty"`
	ChangeFreq ChangeFreq      `xml:"changefreq,omitempty"`
	Priority   string          `xml:"priority,omitempty"`
	Alternates []AlternateLink `xml:"xhtml:link,omitempty"`
}

// Sitemap represents the complete sitemap document.
type Sitemap struct {
	XMLName    xml.Name     `xml:"urlset"`
	XMLNS      string       `xml:"xmlns,attr"`
	XMLNSXHTML string       `xml:"xmlns:xhtml,attr,omitempty"`
	URLs       []SitemapURL `xml:"url"`
}

// SitemapBuilder builds sitemap XML for a multi-locale site. The default
// locale lives at the root; every other locale under /<locale>.
type SitemapBuilder struct {
	siteURL       string
	locales       []string
	defaultLocale string
	urls          []SitemapURL
}

// NewSitemapBuilder creates a new sitemap builder.
func NewSitemapBuilder(siteURL string, locales []string, defaultLocale string) *SitemapBuilder {
	return &SitemapBuilder{
		siteURL:       siteURL,
		locales:       locales,
		defaultLocale: defaultLocale,
		urls:          make([]SitemapURL, 0),
	}
}

// LocalizedURL returns the absolute URL of path in locale.
func (b *SitemapBuilder) LocalizedURL(locale, path string) string {
	prefix := ""
	if locale != b.defaultLocale {
		prefix = "/" + locale
	}
	if path == "/" || path == "" {
		if prefix == "" {
			return b.siteURL
		}
		return b.siteURL + prefix
	}
	return b.siteURL + prefix + path
}

// AddPath adds path once per locale, each entry linking to the others.
func (b *SitemapBuilder) AddPath(path string, lastMod time.Time) {
	var alternates []AlternateLink
	if len(b.locales) > 1 {
		alternates = make([]AlternateLink, 0, len(b.locales))
		for _, l := range b.locales {
			alternates = append(alternates, AlternateLink{
				Rel:      "alternate",
				Hreflang: l,
				Href:     b.LocalizedURL(l, path),
			})
		}
	}

	for _, l := range b.locales {
		u := b.entry(b.LocalizedURL(l, path), lastMod)
		u.Alternates = alternates
		b.urls = append(b.urls, u)
	}
}

// AddPaths adds every path with AddPath.
func (b *SitemapBuilder) AddPaths(paths []string) {
	for _, p := range paths {
		b.AddPath(p, time.Time{})
	}
}

// AddLocalizedPath adds path for a single locale.
func (b *SitemapBuilder) AddLocalizedPath(locale, path string, lastMod time.Time) {
	b.urls = append(b.urls, b.entry(b.LocalizedURL(locale, path), lastMod))
}

func (b *SitemapBuilder) entry(loc string, lastMod time.Time) SitemapURL {
	u := SitemapURL{
		Loc:        loc,
		ChangeFreq: DefaultChangeFreq,
		Priority:   DefaultPriority,
	}
	if !lastMod.IsZero() {
		u.LastMod = lastMod.Format(time.RFC3339)
	}
	return u
}

// Len returns the number of URLs added so far.
func (b *SitemapBuilder) Len() int {
	return len(b.urls)
}

// Build generates the sitemap XML.
func (b *SitemapBuilder) Build() ([]byte, error) {
	sitemap := Sitemap{
		XMLNS: XMLNamespace,
		URLs:  b.urls,
	}
	if len(b.locales) > 1 {
		sitemap.XMLNSXHTML = XHTMLXMLNamespace
	}

	output := []byte(xml.Header)
	xmlBytes, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return nil, err
	}

	return append(output, xmlBytes...), nil
}
