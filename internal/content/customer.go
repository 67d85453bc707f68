// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CustomerTranslation holds the quote of a text customer entry.
type CustomerTranslation struct {
	LanguagesCode string `json:"languages_code,omitempty"`
	Text          string `json:"text,omitempty"`
}

// Customer is a client entry on the home page. Selection chooses the
// rendering: false shows Logo, true shows the first translation's text.
type Customer struct {
	ID           int                   `json:"id"`
	Status       string                `json:"status,omitempty"`
	Selection    bool                  `json:"selection"`
	Company      string                `json:"company,omitempty"`
	Logo         string                `json:"logo,omitempty"`
	Translations []CustomerTranslation `json:"translations,omitempty"`
}

// ErrCustomerQuoteMissing is returned for a text entry without a quote.
var ErrCustomerQuoteMissing = errors.New("customer quote is required")

// Validate checks that the field required by Selection is present.
func (c Customer) Validate() error {
	if err := validation.ValidateStruct(&c,
		validation.Field(&c.Logo, validation.When(!c.Selection, validation.Required)),
	); err != nil {
		return err
	}
	if c.Selection {
		if t, ok := First(c.Translations); !ok || t.Text == "" {
			return ErrCustomerQuoteMissing
		}
	}
	return nil
}

// IsLogo reports whether the entry renders as a logo image.
func (c Customer) IsLogo() bool {
	return !c.Selection
}

// Quote returns the text of a text entry.
func (c Customer) Quote() string {
	if t, ok := First(c.Translations); ok {
		return t.Text
	}
	return ""
}

// WithAssetURLs implements Rewriter. Text entries keep an empty logo.
func (c Customer) WithAssetURLs(r AssetResolver) Customer {
	c.Logo = r.URL(c.Logo)
	c.Translations = cloneSlice(c.Translations)
	return c
}
