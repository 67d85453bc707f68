// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package forms

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_UnknownType(t *testing.T) {
	for _, formType := range []string{"", "newsletter", "Callback"} {
		_, err := Parse(formType, map[string]any{"name": "Ann"})
		assert.ErrorIs(t, err, ErrUnknownFormType, "formType %q", formType)
		assert.NotErrorIs(t, err, ErrValidation)
	}
}

func TestParse_Kinds(t *testing.T) {
	sub, err := Parse("callback", map[string]any{
		"name": "Ann", "phone": "+7 900", "question": "How much?", "extra": "ignored",
	})
	require.NoError(t, err)
	assert.Equal(t, KindCallback, sub.Kind())
	assert.Equal(t, Callback{Name: "Ann", Phone: "+7 900", Question: "How much?"}, sub)

	sub, err = Parse("review", map[string]any{"name": "Bob", "review": "Fast delivery"})
	require.NoError(t, err)
	assert.Equal(t, KindReview, sub.Kind())
	assert.Equal(t, []Field{{"name", "Bob"}, {"review", "Fast delivery"}}, sub.Fields())
}

func TestParse_NonStringValue(t *testing.T) {
	_, err := Parse("review", map[string]any{"name": "Bob", "review": 42})
	require.ErrorIs(t, err, ErrValidation)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "review", ve.Field)
}

func TestParse_NullIsMissing(t *testing.T) {
	sub, err := Parse("review", map[string]any{"name": nil})
	require.NoError(t, err)
	assert.Equal(t, Review{}, sub)
}

func TestCallback_Validate(t *testing.T) {
	valid := Callback{Name: "Ann", Phone: "1234", Question: "Hi"}

	tests := []struct {
		name      string
		mutate    func(c *Callback)
		wantField string
	}{
		{"valid", func(*Callback) {}, ""},
		{"name too short", func(c *Callback) { c.Name = "A" }, "name"},
		{"name empty", func(c *Callback) { c.Name = "" }, "name"},
		{"name at max", func(c *Callback) { c.Name = strings.Repeat("a", 50) }, ""},
		{"name too long", func(c *Callback) { c.Name = strings.Repeat("a", 51) }, "name"},
		{"phone too short", func(c *Callback) { c.Phone = "123" }, "phone"},
		{"question too long", func(c *Callback) { c.Question = strings.Repeat("q", 1001) }, "question"},
		{"question at max", func(c *Callback) { c.Question = strings.Repeat("q", 1000) }, ""},
		{"first failure wins", func(c *Callback) { c.Phone = ""; c.Question = "" }, "phone"},
		{"cyrillic counted by character", func(c *Callback) { c.Name = strings.Repeat("я", 50) }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantField, ve.Field)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestReview_Validate(t *testing.T) {
	assert.NoError(t, Review{Name: "Bo", Review: "ok"}.Validate())

	err := Review{Name: "Bob", Review: "x"}.Validate()
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "review", ve.Field)

	err = Review{Name: "", Review: ""}.Validate()
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "name", ve.Field)
}

func TestSubjects(t *testing.T) {
	assert.Equal(t, "Обратный звонок", Callback{}.Subject())
	assert.Equal(t, "Отзыв", Review{}.Subject())
}

func TestBody(t *testing.T) {
	body := Body(Callback{Name: "Ann", Phone: "1234", Question: "<b>Price</b>?"})

	assert.Equal(t, "<p>\nname: Ann <br />\nphone: 1234 <br />\nquestion: Price? <br />\n</p>", body)
}

func TestBody_DeclaredOrder(t *testing.T) {
	body := Body(Review{Name: "Bob", Review: "Great"})

	assert.Less(t, strings.Index(body, "name:"), strings.Index(body, "review:"))
}
