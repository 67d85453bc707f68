// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package site

import (
	"context"
	"strconv"

	"github.com/olegiv/cargo-site/internal/content"
	"github.com/olegiv/cargo-site/internal/directus"
)

// ReviewsLimit is the number of reviews shown on the home page.
const ReviewsLimit = 5

// Gateway is the set of CMS reads the page assemblers need.
// Every locale-aware method filters only the nested translations.
type Gateway interface {
	Home(ctx context.Context, locale string) (content.Home, error)
	Services(ctx context.Context, locale string) ([]content.Service, error)
	ServiceLinks(ctx context.Context, locale string) ([]content.Service, error)
	Containers(ctx context.Context, locale string) ([]content.Container, error)
	About(ctx context.Context, locale string) (content.Article, error)
	Privacy(ctx context.Context, locale string) (content.Article, error)
	Contacts(ctx context.Context, locale string) ([]content.Contact, error)
	News(ctx context.Context, locale string) ([]content.News, error)
	NewsItem(ctx context.Context, locale, id string) (content.News, error)
	NewsIDs(ctx context.Context) ([]int, error)
	Reviews(ctx context.Context, limit int) ([]content.Review, error)
	Customers(ctx context.Context, locale string) ([]content.Customer, error)
	Footer(ctx context.Context, locale string) (content.Footer, error)
}

// Reader is the subset of directus.Client used by CMSGateway.
type Reader interface {
	ReadItem(ctx context.Context, collection, id string, q directus.Query, out any) error
	ReadItems(ctx context.Context, collection string, q directus.Query, out any) error
}

// CMSGateway implements Gateway on top of the Directus REST API.
type CMSGateway struct {
	cms Reader
}

// NewCMSGateway creates a Gateway reading from cms.
func NewCMSGateway(cms Reader) *CMSGateway {
	return &CMSGateway{cms: cms}
}

var (
	homeFields = directus.Nested(directus.TranslationsRelation,
		"slogan_p1", "slogan_p2", "advantage", "title", "content",
		"slogan_in_services", "slogan_in_services_info", "meta_title", "meta_description")
	serviceFields = directus.Fields(
		[]string{"id", "slug"},
		directus.Nested(directus.TranslationsRelation, "title", "short_title", "content"),
		[]string{"icon", "picture"})
	serviceLinkFields = directus.Fields(
		[]string{"slug"},
		directus.Nested(directus.TranslationsRelation, "title"))
	containerFields = directus.Fields(
		[]string{"id", "category"},
		directus.Nested(directus.TranslationsRelation, "title", "description"),
		[]string{"capacity", "dimensions_inside", "cargo", "max_weight", "image"})
	articleFields = directus.Nested(directus.TranslationsRelation,
		"title", "content", "meta_title", "meta_description")
	contactFields = directus.Fields(
		directus.Nested(directus.TranslationsRelation, "location", "phone", "mail", "address"),
		[]string{"longitude", "latitude"})
	newsListFields = directus.Fields(
		[]string{"id", "date_created"},
		directus.Nested(directus.TranslationsRelation, "title"),
		[]string{"image"})
	newsItemFields = directus.Fields(
		[]string{"id", "date_created"},
		directus.Nested(directus.TranslationsRelation, "title", "content", "meta_title", "meta_description"))
	reviewFields   = []string{"id", "language", "name", "content", "photo"}
	customerFields = directus.Fields(
		[]string{"id", "selection", "company", "logo"},
		directus.Nested(directus.TranslationsRelation, "text"))
	footerFields = directus.Nested(directus.TranslationsRelation,
		"company", "description", "phone", "email", "address",
		"link_vk", "link_telegram", "link_dzen", "company_full_name")
)

func localized(locale string, fields []string) directus.Query {
	return directus.NewQuery(fields...).Published().TranslationsIn(locale)
}

func readItem[T any](ctx context.Context, r Reader, collection, id string, q directus.Query) (T, error) {
	var out T
	err := r.ReadItem(ctx, collection, id, q, &out)
	return out, err
}

func readItems[T any](ctx context.Context, r Reader, collection string, q directus.Query) ([]T, error) {
	var out []T
	if err := r.ReadItems(ctx, collection, q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Home implements Gateway.
func (g *CMSGateway) Home(ctx context.Context, locale string) (content.Home, error) {
	return readItem[content.Home](ctx, g.cms, content.CollectionHome, content.SingletonID, localized(locale, homeFields))
}

// Services implements Gateway.
func (g *CMSGateway) Services(ctx context.Context, locale string) ([]content.Service, error) {
	return readItems[content.Service](ctx, g.cms, content.CollectionServices,
		localized(locale, serviceFields).WithLimit(directus.LimitAll))
}

// ServiceLinks implements Gateway. Only slug and title are projected.
func (g *CMSGateway) ServiceLinks(ctx context.Context, locale string) ([]content.Service, error) {
	return readItems[content.Service](ctx, g.cms, content.CollectionServices,
		localized(locale, serviceLinkFields).WithLimit(directus.LimitAll))
}

// Containers implements Gateway.
func (g *CMSGateway) Containers(ctx context.Context, locale string) ([]content.Container, error) {
	return readItems[content.Container](ctx, g.cms, content.CollectionContainers,
		localized(locale, containerFields).WithLimit(directus.LimitAll))
}

// About implements Gateway.
func (g *CMSGateway) About(ctx context.Context, locale string) (content.Article, error) {
	return readItem[content.Article](ctx, g.cms, content.CollectionAbout, content.SingletonID, localized(locale, articleFields))
}

// Privacy implements Gateway.
func (g *CMSGateway) Privacy(ctx context.Context, locale string) (content.Article, error) {
	return readItem[content.Article](ctx, g.cms, content.CollectionPrivacy, content.SingletonID, localized(locale, articleFields))
}

// Contacts implements Gateway.
func (g *CMSGateway) Contacts(ctx context.Context, locale string) ([]content.Contact, error) {
	return readItems[content.Contact](ctx, g.cms, content.CollectionContacts,
		localized(locale, contactFields).WithLimit(directus.LimitAll))
}

// News implements Gateway. Items are requested newest first; the order is
// not relied on and callers still apply SortNewsByDate.
func (g *CMSGateway) News(ctx context.Context, locale string) ([]content.News, error) {
	return readItems[content.News](ctx, g.cms, content.CollectionNews,
		localized(locale, newsListFields).WithLimit(directus.LimitAll).WithSort("-date_created"))
}

// NewsItem implements Gateway.
func (g *CMSGateway) NewsItem(ctx context.Context, locale, id string) (content.News, error) {
	return readItem[content.News](ctx, g.cms, content.CollectionNews, id, localized(locale, newsItemFields))
}

// NewsIDs implements Gateway.
func (g *CMSGateway) NewsIDs(ctx context.Context) ([]int, error) {
	items, err := readItems[content.News](ctx, g.cms, content.CollectionNews,
		directus.NewQuery("id").Published().WithLimit(directus.LimitAll))
	if err != nil {
		return nil, err
	}
	ids := make([]int, len(items))
	for i, n := range items {
		ids[i] = n.ID
	}
	return ids, nil
}

// Reviews implements Gateway. Reviews are not translated; each carries its own language.
func (g *CMSGateway) Reviews(ctx context.Context, limit int) ([]content.Review, error) {
	return readItems[content.Review](ctx, g.cms, content.CollectionReviews,
		directus.NewQuery(reviewFields...).Published().WithLimit(limit))
}

// Customers implements Gateway.
func (g *CMSGateway) Customers(ctx context.Context, locale string) ([]content.Customer, error) {
	return readItems[content.Customer](ctx, g.cms, content.CollectionCustomers,
		localized(locale, customerFields).WithLimit(directus.LimitAll))
}

// Footer implements Gateway. The footer singleton has no status field.
func (g *CMSGateway) Footer(ctx context.Context, locale string) (content.Footer, error) {
	q := directus.NewQuery(footerFields...).TranslationsIn(locale)
	return readItem[content.Footer](ctx, g.cms, content.CollectionFooter, content.SingletonID, q)
}

// newsID formats a news id for use in paths and item reads.
func newsID(id int) string {
	return strconv.Itoa(id)
}
