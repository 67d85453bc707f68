// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package site assembles page data from CMS content.
package site

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/olegiv/cargo-site/internal/content"
	"github.com/olegiv/cargo-site/internal/richtext"
)

// ErrPageUnavailable is returned when any dataset a page requires could not
// be loaded. Callers render a generic not-found response.
var ErrPageUnavailable = errors.New("page unavailable")

// Pages returns the props of every page for a locale.
type Pages interface {
	Home(ctx context.Context, locale string) (*HomeProps, error)
	Services(ctx context.Context, locale string) (*ServicesProps, error)
	Containers(ctx context.Context, locale string) (*ContainersProps, error)
	About(ctx context.Context, locale string) (*ArticleProps, error)
	Privacy(ctx context.Context, locale string) (*ArticleProps, error)
	Contacts(ctx context.Context, locale string) (*ContactsProps, error)
	News(ctx context.Context, locale string) (*NewsProps, error)
	NewsDetail(ctx context.Context, locale, id string) (*NewsDetailProps, error)
	NewsPaths(ctx context.Context, locales []string) ([]NewsPath, error)
}

// Assembler builds page props from a Gateway. Every page fetches its
// datasets concurrently, waits for all of them, and fails as a whole.
type Assembler struct {
	gw     Gateway
	assets content.AssetResolver
	rich   *richtext.Renderer
	logger *slog.Logger
}

var _ Pages = (*Assembler)(nil)

// NewAssembler creates an Assembler.
func NewAssembler(gw Gateway, assets content.AssetResolver, rich *richtext.Renderer, logger *slog.Logger) *Assembler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Assembler{gw: gw, assets: assets, rich: rich, logger: logger}
}

// unavailable logs err and wraps it as ErrPageUnavailable.
func (a *Assembler) unavailable(ctx context.Context, page, locale string, err error) error {
	a.logger.WarnContext(ctx, "page unavailable", "page", page, "locale", locale, "error", err)
	return fmt.Errorf("%w: %s/%s: %w", ErrPageUnavailable, page, locale, err)
}

var errNoTranslation = errors.New("no translation for locale")

// layoutLoader collects the datasets shared by every page.
type layoutLoader struct {
	footer content.Footer
	links  []content.Service
}

func (l *layoutLoader) fetchFooter(ctx context.Context, gw Gateway, locale string) func() error {
	return func() error {
		f, err := gw.Footer(ctx, locale)
		if err != nil {
			return fmt.Errorf("footer: %w", err)
		}
		l.footer = f
		return nil
	}
}

func (l *layoutLoader) fetchLinks(ctx context.Context, gw Gateway, locale string) func() error {
	return func() error {
		links, err := gw.ServiceLinks(ctx, locale)
		if err != nil {
			return fmt.Errorf("service links: %w", err)
		}
		l.links = links
		return nil
	}
}

// build resolves the shared layout for a page at path.
func (l *layoutLoader) build(locale, path string) (Layout, error) {
	footer, ok := content.First(l.footer.Translations)
	if !ok {
		return Layout{}, fmt.Errorf("footer: %w", errNoTranslation)
	}
	return Layout{
		Locale:     locale,
		Navigation: MarkCurrent(Navigation(), path),
		Footer:     footer,
		Services:   serviceLinks(l.links),
	}, nil
}

func serviceLinks(services []content.Service) []ServiceLink {
	links := make([]ServiceLink, 0, len(services))
	for _, s := range services {
		t, ok := content.First(s.Translations)
		if !ok {
			continue
		}
		links = append(links, ServiceLink{Slug: s.Slug, Title: t.Title})
	}
	return links
}

// translatedServices drops services without a translation and renders their content.
func (a *Assembler) translatedServices(services []content.Service) []content.Service {
	out := make([]content.Service, 0, len(services))
	for _, s := range services {
		if len(s.Translations) == 0 {
			continue
		}
		s.Translations[0].Content = a.rich.Render(s.Translations[0].Content)
		out = append(out, s)
	}
	return out
}

// Home implements Pages.
func (a *Assembler) Home(ctx context.Context, locale string) (*HomeProps, error) {
	var (
		lay       layoutLoader
		home      content.Home
		services  []content.Service
		reviews   []content.Review
		customers []content.Customer
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		home, err = a.gw.Home(gctx, locale)
		return wrap("home", err)
	})
	g.Go(func() (err error) {
		services, err = a.gw.Services(gctx, locale)
		return wrap("services", err)
	})
	g.Go(func() (err error) {
		reviews, err = a.gw.Reviews(gctx, ReviewsLimit)
		return wrap("reviews", err)
	})
	g.Go(func() (err error) {
		customers, err = a.gw.Customers(gctx, locale)
		return wrap("customers", err)
	})
	g.Go(lay.fetchFooter(gctx, a.gw, locale))
	if err := g.Wait(); err != nil {
		return nil, a.unavailable(ctx, "home", locale, err)
	}

	t, ok := content.First(home.Translations)
	if !ok {
		return nil, a.unavailable(ctx, "home", locale, errNoTranslation)
	}
	t.Content = a.rich.Render(t.Content)

	lay.links = services
	layout, err := lay.build(locale, PathHome)
	if err != nil {
		return nil, a.unavailable(ctx, "home", locale, err)
	}

	// Slots follow CMS order; an untranslated service leaves its slot short.
	first, more := SplitServices(content.RewriteAll(services, a.assets))

	return &HomeProps{
		Layout:        layout,
		Home:          t,
		FirstServices: a.translatedServices(first),
		MoreServices:  a.translatedServices(more),
		Reviews:       SortByLocaleAffinity(content.RewriteAll(reviews, a.assets), locale),
		Customers:     a.validCustomers(ctx, content.RewriteAll(customers, a.assets)),
	}, nil
}

func (a *Assembler) validCustomers(ctx context.Context, customers []content.Customer) []CustomerCard {
	out := make([]CustomerCard, 0, len(customers))
	for _, c := range customers {
		if err := c.Validate(); err != nil {
			a.logger.WarnContext(ctx, "skipping invalid customer", "id", c.ID, "error", err)
			continue
		}
		card := CustomerCard{ID: c.ID, Company: c.Company}
		if c.IsLogo() {
			card.Logo = c.Logo
		} else {
			card.Quote = c.Quote()
		}
		out = append(out, card)
	}
	return out
}

// Services implements Pages. OpenIndex is -1; use ServicesProps.WithSlug.
func (a *Assembler) Services(ctx context.Context, locale string) (*ServicesProps, error) {
	var (
		lay      layoutLoader
		services []content.Service
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		services, err = a.gw.Services(gctx, locale)
		return wrap("services", err)
	})
	g.Go(lay.fetchFooter(gctx, a.gw, locale))
	if err := g.Wait(); err != nil {
		return nil, a.unavailable(ctx, "services", locale, err)
	}

	lay.links = services
	layout, err := lay.build(locale, PathServices)
	if err != nil {
		return nil, a.unavailable(ctx, "services", locale, err)
	}

	return &ServicesProps{
		Layout:    layout,
		Items:     a.translatedServices(content.RewriteAll(services, a.assets)),
		OpenIndex: -1,
	}, nil
}

// Containers implements Pages.
func (a *Assembler) Containers(ctx context.Context, locale string) (*ContainersProps, error) {
	var (
		lay        layoutLoader
		containers []content.Container
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		containers, err = a.gw.Containers(gctx, locale)
		return wrap("containers", err)
	})
	g.Go(lay.fetchFooter(gctx, a.gw, locale))
	g.Go(lay.fetchLinks(gctx, a.gw, locale))
	if err := g.Wait(); err != nil {
		return nil, a.unavailable(ctx, "containers", locale, err)
	}

	layout, err := lay.build(locale, PathContainers)
	if err != nil {
		return nil, a.unavailable(ctx, "containers", locale, err)
	}

	translated := make([]content.Container, 0, len(containers))
	for _, c := range content.RewriteAll(containers, a.assets) {
		if len(c.Translations) > 0 {
			translated = append(translated, c)
		}
	}

	groups := GroupByFirstSeen(translated, func(c content.Container) string { return c.Category })
	out := make([]ContainerGroup, len(groups))
	for i, grp := range groups {
		out[i] = ContainerGroup{
			Category: grp.Key,
			LabelKey: "containers." + grp.Key,
			Items:    grp.Items,
		}
	}

	return &ContainersProps{Layout: layout, Groups: out}, nil
}

// About implements Pages.
func (a *Assembler) About(ctx context.Context, locale string) (*ArticleProps, error) {
	return a.article(ctx, "about", PathAbout, locale, a.gw.About)
}

// Privacy implements Pages.
func (a *Assembler) Privacy(ctx context.Context, locale string) (*ArticleProps, error) {
	return a.article(ctx, "privacy", PathPrivacy, locale, a.gw.Privacy)
}

func (a *Assembler) article(ctx context.Context, page, path, locale string,
	fetch func(context.Context, string) (content.Article, error)) (*ArticleProps, error) {
	var (
		lay     layoutLoader
		article content.Article
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		article, err = fetch(gctx, locale)
		return wrap(page, err)
	})
	g.Go(lay.fetchFooter(gctx, a.gw, locale))
	g.Go(lay.fetchLinks(gctx, a.gw, locale))
	if err := g.Wait(); err != nil {
		return nil, a.unavailable(ctx, page, locale, err)
	}

	t, ok := content.First(article.Translations)
	if !ok {
		return nil, a.unavailable(ctx, page, locale, errNoTranslation)
	}
	t.Content = a.rich.Render(t.Content)

	layout, err := lay.build(locale, path)
	if err != nil {
		return nil, a.unavailable(ctx, page, locale, err)
	}
	return &ArticleProps{Layout: layout, Article: t}, nil
}

// Contacts implements Pages. Contacts without a translation are skipped.
func (a *Assembler) Contacts(ctx context.Context, locale string) (*ContactsProps, error) {
	var (
		lay      layoutLoader
		contacts []content.Contact
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		contacts, err = a.gw.Contacts(gctx, locale)
		return wrap("contacts", err)
	})
	g.Go(lay.fetchFooter(gctx, a.gw, locale))
	g.Go(lay.fetchLinks(gctx, a.gw, locale))
	if err := g.Wait(); err != nil {
		return nil, a.unavailable(ctx, "contacts", locale, err)
	}

	layout, err := lay.build(locale, PathContacts)
	if err != nil {
		return nil, a.unavailable(ctx, "contacts", locale, err)
	}

	views := make([]ContactView, 0, len(contacts))
	for _, c := range contacts {
		t, ok := content.First(c.Translations)
		if !ok {
			continue
		}
		views = append(views, ContactView{Longitude: c.Longitude, Latitude: c.Latitude, Details: t})
	}
	return &ContactsProps{Layout: layout, Contacts: views}, nil
}

// News implements Pages. Items are sorted newest first.
func (a *Assembler) News(ctx context.Context, locale string) (*NewsProps, error) {
	var (
		lay  layoutLoader
		news []content.News
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		news, err = a.gw.News(gctx, locale)
		return wrap("news", err)
	})
	g.Go(lay.fetchFooter(gctx, a.gw, locale))
	g.Go(lay.fetchLinks(gctx, a.gw, locale))
	if err := g.Wait(); err != nil {
		return nil, a.unavailable(ctx, "news", locale, err)
	}

	layout, err := lay.build(locale, PathNews)
	if err != nil {
		return nil, a.unavailable(ctx, "news", locale, err)
	}

	translated := make([]content.News, 0, len(news))
	for _, n := range content.RewriteAll(news, a.assets) {
		if len(n.Translations) > 0 {
			translated = append(translated, n)
		}
	}
	return &NewsProps{Layout: layout, Items: SortNewsByDate(translated)}, nil
}

// NewsDetail implements Pages. A news item without a translation for
// locale is unavailable.
func (a *Assembler) NewsDetail(ctx context.Context, locale, id string) (*NewsDetailProps, error) {
	var (
		lay  layoutLoader
		item content.News
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		item, err = a.gw.NewsItem(gctx, locale, id)
		return wrap("news item", err)
	})
	g.Go(lay.fetchFooter(gctx, a.gw, locale))
	g.Go(lay.fetchLinks(gctx, a.gw, locale))
	if err := g.Wait(); err != nil {
		return nil, a.unavailable(ctx, "news/"+id, locale, err)
	}

	t, ok := content.First(item.Translations)
	if !ok {
		return nil, a.unavailable(ctx, "news/"+id, locale, errNoTranslation)
	}
	t.Content = a.rich.Render(t.Content)

	layout, err := lay.build(locale, PathNews)
	if err != nil {
		return nil, a.unavailable(ctx, "news/"+id, locale, err)
	}
	return &NewsDetailProps{
		Layout:      layout,
		ID:          item.ID,
		DateCreated: item.DateCreated,
		News:        t,
	}, nil
}

// NewsPaths implements Pages.
func (a *Assembler) NewsPaths(ctx context.Context, locales []string) ([]NewsPath, error) {
	ids, err := a.gw.NewsIDs(ctx)
	if err != nil {
		a.logger.ErrorContext(ctx, "listing news ids", "error", err)
		return nil, fmt.Errorf("listing news ids: %w", err)
	}
	return NewsPathSet(ids, locales), nil
}

func wrap(what string, err error) error {
	if err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}
	return nil
}
