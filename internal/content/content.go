// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package content defines the CMS entities served by the site and the pure
// transforms applied to them after fetching.
package content

import (
	"strings"
	"time"
)

// CMS collection names.
const (
	CollectionHome       = "home"
	CollectionServices   = "services"
	CollectionContainers = "containers"
	CollectionAbout      = "about"
	CollectionPrivacy    = "privacy"
	CollectionNews       = "news"
	CollectionContacts   = "contacts"
	CollectionReviews    = "reviews"
	CollectionCustomers  = "customers"
	CollectionFooter     = "footer"
)

// SingletonID is the id of singleton collections (home, about, privacy, footer).
const SingletonID = "1"

// First returns the first element of translations.
// The CMS filters translations by locale, so the first one is the requested locale.
func First[T any](translations []T) (T, bool) {
	var zero T
	if len(translations) == 0 {
		return zero, false
	}
	return translations[0], true
}

// HomeTranslation is the localized content of the home page.
type HomeTranslation struct {
	LanguagesCode        string `json:"languages_code,omitempty"`
	SloganP1             string `json:"slogan_p1"`
	SloganP2             string `json:"slogan_p2,omitempty"`
	Advantage            string `json:"advantage"`
	Title                string `json:"title"`
	Content              string `json:"content"`
	SloganInServices     string `json:"slogan_in_services"`
	SloganInServicesInfo string `json:"slogan_in_services_info,omitempty"`
	MetaTitle            string `json:"meta_title"`
	MetaDescription      string `json:"meta_description,omitempty"`
}

// Home is the home page singleton.
type Home struct {
	Status       string            `json:"status,omitempty"`
	Translations []HomeTranslation `json:"translations"`
}

// ServiceTranslation is the localized content of a service.
type ServiceTranslation struct {
	LanguagesCode string `json:"languages_code,omitempty"`
	Title         string `json:"title"`
	ShortTitle    string `json:"short_title,omitempty"`
	Content       string `json:"content,omitempty"`
}

// Service is a service offering. Slug is unique among published services.
type Service struct {
	ID           int                  `json:"id,omitempty"`
	Status       string               `json:"status,omitempty"`
	Slug         string               `json:"slug"`
	Icon         string               `json:"icon,omitempty"`
	Picture      string               `json:"picture,omitempty"`
	Translations []ServiceTranslation `json:"translations"`
}

// WithAssetURLs implements Rewriter.
func (s Service) WithAssetURLs(r AssetResolver) Service {
	s.Picture = r.URL(s.Picture)
	s.Translations = cloneSlice(s.Translations)
	return s
}

// ContainerTranslation is the localized content of a container.
type ContainerTranslation struct {
	LanguagesCode string `json:"languages_code,omitempty"`
	Title         string `json:"title"`
	Description   string `json:"description"`
}

// Container is a shippable container specification.
type Container struct {
	ID               int                    `json:"id"`
	Status           string                 `json:"status,omitempty"`
	Category         string                 `json:"category"`
	Capacity         string                 `json:"capacity,omitempty"`
	DimensionsInside string                 `json:"dimensions_inside,omitempty"`
	Cargo            string                 `json:"cargo,omitempty"`
	MaxWeight        string                 `json:"max_weight,omitempty"`
	Image            string                 `json:"image,omitempty"`
	Translations     []ContainerTranslation `json:"translations"`
}

// WithAssetURLs implements Rewriter.
func (c Container) WithAssetURLs(r AssetResolver) Container {
	c.Image = r.URL(c.Image)
	c.Translations = cloneSlice(c.Translations)
	return c
}

// ArticleTranslation is the localized content of a text page.
type ArticleTranslation struct {
	LanguagesCode   string `json:"languages_code,omitempty"`
	Title           string `json:"title"`
	Content         string `json:"content"`
	MetaTitle       string `json:"meta_title"`
	MetaDescription string `json:"meta_description,omitempty"`
}

// Article is a singleton text page such as About or Privacy.
type Article struct {
	Status       string               `json:"status,omitempty"`
	Translations []ArticleTranslation `json:"translations"`
}

// NewsTranslation is the localized content of a news item.
type NewsTranslation struct {
	LanguagesCode   string `json:"languages_code,omitempty"`
	Title           string `json:"title"`
	Content         string `json:"content,omitempty"`
	MetaTitle       string `json:"meta_title,omitempty"`
	MetaDescription string `json:"meta_description,omitempty"`
}

// News is a news item.
type News struct {
	ID           int               `json:"id"`
	Status       string            `json:"status,omitempty"`
	DateCreated  string            `json:"date_created"`
	Image        string            `json:"image,omitempty"`
	Translations []NewsTranslation `json:"translations"`
}

// WithAssetURLs implements Rewriter.
func (n News) WithAssetURLs(r AssetResolver) News {
	n.Image = r.URL(n.Image)
	n.Translations = cloneSlice(n.Translations)
	return n
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// CreatedAt parses DateCreated. Unparsable values yield the zero time.
func (n News) CreatedAt() time.Time {
	s := strings.TrimSpace(n.DateCreated)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// ContactTranslation is the localized content of an office contact.
type ContactTranslation struct {
	LanguagesCode string `json:"languages_code,omitempty"`
	Location      string `json:"location"`
	Phone         string `json:"phone"`
	Mail          string `json:"mail"`
	Address       string `json:"address"`
}

// Contact is an office location shown on the contacts page.
type Contact struct {
	Status       string               `json:"status,omitempty"`
	Longitude    string               `json:"longitude"`
	Latitude     string               `json:"latitude"`
	Translations []ContactTranslation `json:"translations"`
}

// Review is a customer testimonial. Language is the locale it is written in.
type Review struct {
	ID       int    `json:"id"`
	Status   string `json:"status,omitempty"`
	Language string `json:"language"`
	Name     string `json:"name"`
	Content  string `json:"content"`
	Photo    string `json:"photo,omitempty"`
}

// WithAssetURLs implements Rewriter.
func (r Review) WithAssetURLs(res AssetResolver) Review {
	r.Photo = res.URL(r.Photo)
	return r
}

// FooterTranslation is the localized shared footer.
type FooterTranslation struct {
	LanguagesCode   string `json:"languages_code,omitempty"`
	Company         string `json:"company"`
	Description     string `json:"description"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	Address         string `json:"address"`
	LinkVK          string `json:"link_vk,omitempty"`
	LinkTelegram    string `json:"link_telegram,omitempty"`
	LinkDzen        string `json:"link_dzen,omitempty"`
	CompanyFullName string `json:"company_full_name"`
}

// Footer is the site-wide footer singleton.
type Footer struct {
	Translations []FooterTranslation `json:"translations"`
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}
