// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package site

import "github.com/olegiv/cargo-site/internal/content"

// Page paths used for navigation highlighting and the sitemap.
const (
	PathHome       = "/"
	PathServices   = "/services"
	PathContainers = "/containers"
	PathAbout      = "/about"
	PathPrivacy    = "/privacy"
	PathContacts   = "/contacts"
	PathNews       = "/news"
)

// StaticPaths lists the pages that exist in every locale.
var StaticPaths = []string{PathHome, PathServices, PathContainers, PathAbout, PathContacts, PathNews, PathPrivacy}

// ServiceLink is a service entry in the header and footer menus.
type ServiceLink struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

// Layout is the data shared by every page.
type Layout struct {
	Locale     string                    `json:"locale"`
	Navigation []NavItem                 `json:"navigation"`
	Footer     content.FooterTranslation `json:"footer"`
	Services   []ServiceLink             `json:"services"`
}

// HomeProps is the data of the home page.
type HomeProps struct {
	Layout
	Home          content.HomeTranslation `json:"home"`
	FirstServices []content.Service       `json:"firstServices"`
	MoreServices  []content.Service       `json:"moreServices"`
	Reviews       []content.Review        `json:"reviews"`
	Customers     []CustomerCard          `json:"customers"`
}

// CustomerCard is a customer entry as shown on the home page. Exactly one
// of Logo and Quote is set.
type CustomerCard struct {
	ID      int    `json:"id"`
	Company string `json:"company,omitempty"`
	Logo    string `json:"logo,omitempty"`
	Quote   string `json:"quote,omitempty"`
}

// ServicesProps is the data of the combined services page.
// OpenIndex is the accordion item expanded on load, or -1.
type ServicesProps struct {
	Layout
	Items     []content.Service `json:"items"`
	OpenIndex int               `json:"openIndex"`
}

// WithSlug returns a copy with OpenIndex set for slug.
func (p ServicesProps) WithSlug(slug string) ServicesProps {
	p.OpenIndex = ServiceIndex(p.Items, slug)
	return p
}

// ContainerGroup is the containers of one category.
// LabelKey is the translation key of the category heading.
type ContainerGroup struct {
	Category string              `json:"category"`
	LabelKey string              `json:"labelKey"`
	Items    []content.Container `json:"items"`
}

// ContainersProps is the data of the containers page.
type ContainersProps struct {
	Layout
	Groups []ContainerGroup `json:"groups"`
}

// ArticleProps is the data of a single text page (about, privacy).
type ArticleProps struct {
	Layout
	Article content.ArticleTranslation `json:"article"`
}

// ContactView is a contact with its translation resolved.
type ContactView struct {
	Longitude string                     `json:"longitude"`
	Latitude  string                     `json:"latitude"`
	Details   content.ContactTranslation `json:"details"`
}

// ContactsProps is the data of the contacts page.
type ContactsProps struct {
	Layout
	Contacts []ContactView `json:"contacts"`
}

// NewsProps is the data of the news listing. Items holds every published
// item, newest first; Window narrows it to what is visible.
type NewsProps struct {
	Layout
	Items []content.News `json:"items"`
}

// Window returns the listing after page-1 "load more" steps.
func (p NewsProps) Window(page int) NewsPage {
	return NewsPage{
		Layout: p.Layout,
		Page:   Paginate(p.Items, NewsPageSize, page),
	}
}

// NewsPage is a paginated news listing.
type NewsPage struct {
	Layout
	Page[content.News]
}

// NewsDetailProps is the data of a news detail page.
type NewsDetailProps struct {
	Layout
	ID          int                     `json:"id"`
	DateCreated string                  `json:"dateCreated"`
	News        content.NewsTranslation `json:"news"`
}
