// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package forms validates contact and review submissions and hands them to the mailer.
package forms

import (
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/microcosm-cc/bluemonday"
)

// Errors returned by Parse, Validate and Intake.Handle.
var (
	ErrUnknownFormType = errors.New("unknown form type")
	ErrValidation      = errors.New("form validation failed")
	ErrInternal        = errors.New("internal error")
)

// Kind discriminates the supported forms.
type Kind string

// Supported form kinds.
const (
	KindCallback Kind = "callback"
	KindReview   Kind = "review"
)

// Field is a submitted value in declared order.
type Field struct {
	Name  string
	Value string
}

// Submission is a parsed form of a known kind.
type Submission interface {
	Kind() Kind
	// Subject is the notification subject line.
	Subject() string
	// Fields returns the declared fields in order.
	Fields() []Field
	// Validate returns a *ValidationError for the first field that fails.
	Validate() error
}

// ValidationError reports the first invalid field.
// It matches ErrValidation with errors.Is.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Is reports whether target is ErrValidation.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Callback is a request for a phone call.
type Callback struct {
	Name     string
	Phone    string
	Question string
}

func (Callback) Kind() Kind      { return KindCallback }
func (Callback) Subject() string { return "Обратный звонок" }

func (c Callback) Fields() []Field {
	return []Field{{"name", c.Name}, {"phone", c.Phone}, {"question", c.Question}}
}

func (c Callback) Validate() error {
	return firstInvalid(
		lengthCheck{"name", c.Name, 2, 50},
		lengthCheck{"phone", c.Phone, 4, 50},
		lengthCheck{"question", c.Question, 2, 1000},
	)
}

// Review is a customer testimonial.
type Review struct {
	Name   string
	Review string
}

func (Review) Kind() Kind      { return KindReview }
func (Review) Subject() string { return "Отзыв" }

func (r Review) Fields() []Field {
	return []Field{{"name", r.Name}, {"review", r.Review}}
}

func (r Review) Validate() error {
	return firstInvalid(
		lengthCheck{"name", r.Name, 2, 50},
		lengthCheck{"review", r.Review, 2, 1000},
	)
}

type lengthCheck struct {
	field    string
	value    string
	min, max int
}

// firstInvalid runs checks in order and stops at the first failure.
// Lengths are counted in characters, not bytes.
func firstInvalid(checks ...lengthCheck) error {
	for _, c := range checks {
		err := validation.Validate(c.value,
			validation.Required,
			validation.RuneLength(c.min, c.max),
		)
		if err != nil {
			return &ValidationError{Field: c.field, Err: err}
		}
	}
	return nil
}

// Parse builds the submission for formType from raw values.
// Values of a known form must be strings; anything else is a validation
// error for that field. Missing fields are left empty for Validate to reject.
func Parse(formType string, values map[string]any) (Submission, error) {
	var names []string
	switch Kind(formType) {
	case KindCallback:
		names = []string{"name", "phone", "question"}
	case KindReview:
		names = []string{"name", "review"}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormType, formType)
	}

	str := make(map[string]string, len(names))
	for _, name := range names {
		raw, ok := values[name]
		if !ok || raw == nil {
			continue
		}
		s, ok := raw.(string)
		if !ok {
			return nil, &ValidationError{Field: name, Err: fmt.Errorf("must be a string, got %T", raw)}
		}
		str[name] = s
	}

	switch Kind(formType) {
	case KindCallback:
		return Callback{Name: str["name"], Phone: str["phone"], Question: str["question"]}, nil
	default:
		return Review{Name: str["name"], Review: str["review"]}, nil
	}
}

var bodyPolicy = bluemonday.StrictPolicy()

// Body renders the notification HTML: one "field: value" line per declared
// field, in order. Values are stripped of markup.
func Body(s Submission) string {
	var b strings.Builder
	b.WriteString("<p>\n")
	for _, f := range s.Fields() {
		b.WriteString(f.Name)
		b.WriteString(": ")
		b.WriteString(bodyPolicy.Sanitize(f.Value))
		b.WriteString(" <br />\n")
	}
	b.WriteString("</p>")
	return b.String()
}
