// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package directus

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
)

// StatusPublished is the status value of items visible on the public site.
const StatusPublished = "published"

// TranslationsRelation is the name of the nested translations relation.
const TranslationsRelation = "translations"

// LimitAll asks the CMS to return every matching item.
const LimitAll = -1

// Query describes the read parameters of one CMS request.
// The zero value requests every field with server defaults.
type Query struct {
	Filter map[string]any
	Deep   map[string]any
	Fields []string
	Limit  int // 0 leaves the server default in place
	Sort   []string
}

// NewQuery returns a query projecting the given fields.
func NewQuery(fields ...string) Query {
	return Query{Fields: fields}
}

// Published restricts the query to items with status = published.
func (q Query) Published() Query {
	q.Filter = and(q.Filter, map[string]any{
		"status": map[string]any{"_eq": StatusPublished},
	})
	return q
}

// TranslationsIn filters the nested translations relation to one locale.
// The parent items themselves are not filtered.
func (q Query) TranslationsIn(locale string) Query {
	deep := make(map[string]any, len(q.Deep)+1)
	for k, v := range q.Deep {
		deep[k] = v
	}
	deep[TranslationsRelation] = map[string]any{
		"_filter": map[string]any{
			"_and": []any{
				map[string]any{"languages_code": map[string]any{"_eq": locale}},
			},
		},
	}
	q.Deep = deep
	return q
}

// WithLimit sets the item limit. Use LimitAll for no limit.
func (q Query) WithLimit(n int) Query {
	q.Limit = n
	return q
}

// WithSort sets the sort fields; prefix a field with "-" for descending order.
func (q Query) WithSort(fields ...string) Query {
	q.Sort = fields
	return q
}

// Values encodes the query as URL parameters understood by the CMS REST API.
func (q Query) Values() (url.Values, error) {
	v := url.Values{}
	if len(q.Fields) > 0 {
		v.Set("fields", strings.Join(q.Fields, ","))
	}
	if len(q.Filter) > 0 {
		b, err := json.Marshal(q.Filter)
		if err != nil {
			return nil, err
		}
		v.Set("filter", string(b))
	}
	if len(q.Deep) > 0 {
		b, err := json.Marshal(q.Deep)
		if err != nil {
			return nil, err
		}
		v.Set("deep", string(b))
	}
	if q.Limit != 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if len(q.Sort) > 0 {
		v.Set("sort", strings.Join(q.Sort, ","))
	}
	return v, nil
}

// Nested expands fields of a relation into dot notation,
// e.g. Nested("translations", "title") -> ["translations.title"].
func Nested(relation string, fields ...string) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = relation + "." + f
	}
	return out
}

// Fields concatenates field lists, keeping order.
func Fields(groups ...[]string) []string {
	var out []string
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// and appends cond to the _and list of filter, creating it if needed.
func and(filter map[string]any, cond map[string]any) map[string]any {
	out := make(map[string]any, len(filter)+1)
	for k, v := range filter {
		out[k] = v
	}
	var list []any
	if existing, ok := out["_and"].([]any); ok {
		list = append(list, existing...)
	}
	out["_and"] = append(list, cond)
	return out
}
