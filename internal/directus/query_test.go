// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package directus

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestQuery_Values(t *testing.T) {
	q := NewQuery(Fields([]string{"id", "slug"}, Nested(TranslationsRelation, "title", "content"))...).
		Published().
		TranslationsIn("en").
		WithLimit(LimitAll).
		WithSort("-date_created")

	v, err := q.Values()
	if err != nil {
		t.Fatalf("Values failed: %v", err)
	}

	if got := v.Get("fields"); got != "id,slug,translations.title,translations.content" {
		t.Errorf("fields = %q", got)
	}
	if got := v.Get("limit"); got != "-1" {
		t.Errorf("limit = %q, want -1", got)
	}
	if got := v.Get("sort"); got != "-date_created" {
		t.Errorf("sort = %q, want -date_created", got)
	}

	var filter map[string]any
	if err := json.Unmarshal([]byte(v.Get("filter")), &filter); err != nil {
		t.Fatalf("filter is not JSON: %v", err)
	}
	wantFilter := map[string]any{
		"_and": []any{
			map[string]any{"status": map[string]any{"_eq": "published"}},
		},
	}
	if !reflect.DeepEqual(filter, wantFilter) {
		t.Errorf("filter = %v, want %v", filter, wantFilter)
	}

	var deep map[string]any
	if err := json.Unmarshal([]byte(v.Get("deep")), &deep); err != nil {
		t.Fatalf("deep is not JSON: %v", err)
	}
	wantDeep := map[string]any{
		"translations": map[string]any{
			"_filter": map[string]any{
				"_and": []any{
					map[string]any{"languages_code": map[string]any{"_eq": "en"}},
				},
			},
		},
	}
	if !reflect.DeepEqual(deep, wantDeep) {
		t.Errorf("deep = %v, want %v", deep, wantDeep)
	}
}

func TestQuery_ZeroValue(t *testing.T) {
	v, err := Query{}.Values()
	if err != nil {
		t.Fatalf("Values failed: %v", err)
	}
	if len(v) != 0 {
		t.Errorf("zero query encoded to %v, want no params", v)
	}
}

func TestQuery_BuildersDoNotAlias(t *testing.T) {
	base := NewQuery("id").Published()
	ru := base.TranslationsIn("ru")
	en := base.TranslationsIn("en")

	if base.Deep != nil {
		t.Error("TranslationsIn mutated the receiver")
	}
	ruDeep, _ := ru.Values()
	enDeep, _ := en.Values()
	if ruDeep.Get("deep") == enDeep.Get("deep") {
		t.Error("derived queries share deep filter")
	}

	twice := base.Published()
	conds, _ := twice.Filter["_and"].([]any)
	if len(conds) != 2 {
		t.Errorf("_and has %d conditions, want 2", len(conds))
	}
	conds, _ = base.Filter["_and"].([]any)
	if len(conds) != 1 {
		t.Errorf("receiver _and has %d conditions, want 1", len(conds))
	}
}

func TestNested(t *testing.T) {
	got := Nested("translations", "title", "text")
	want := []string{"translations.title", "translations.text"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Nested = %v, want %v", got, want)
	}
}
