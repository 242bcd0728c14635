// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quarkdown

import (
	"fmt"
	"sort"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Localization holds localization tables: for each table name,
// the entries of each locale, mapping keys to localized text.
type Localization struct {
	tables map[string]map[language.Tag]map[string]string
}

// NewLocalization returns an empty set of tables.
func NewLocalization() *Localization {
	return &Localization{tables: make(map[string]map[language.Tag]map[string]string)}
}

// Add adds entries for locale to table, replacing existing keys.
func (l *Localization) Add(table string, locale language.Tag, entries map[string]string) {
	t := l.tables[table]
	if t == nil {
		t = make(map[language.Tag]map[string]string)
		l.tables[table] = t
	}
	m := t[locale]
	if m == nil {
		m = make(map[string]string)
		t[locale] = m
	}
	for k, v := range entries {
		m[k] = v
	}
}

// Merge adds all tables of o to l.
func (l *Localization) Merge(o *Localization) {
	if o == nil {
		return
	}
	for name, t := range o.tables {
		for locale, entries := range t {
			l.Add(name, locale, entries)
		}
	}
}

// Tables returns the table names, sorted.
func (l *Localization) Tables() []string {
	var names []string
	for name := range l.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseLocalization parses localization tables written in YAML:
//
//	table:
//	  en:
//	    key: text
//	  it:
//	    key: testo
func ParseLocalization(data []byte) (*Localization, error) {
	var raw map[string]map[string]map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	l := NewLocalization()
	for name, locales := range raw {
		for locale, entries := range locales {
			tag, err := language.Parse(locale)
			if err != nil {
				return nil, fmt.Errorf("table %s: locale %q: %v", name, locale, err)
			}
			l.Add(name, tag, entries)
		}
	}
	return l, nil
}

// Lookup returns the text for key in table for locale.
// If the table has no entries for locale itself, the entries
// of a locale with the same base language are used:
// a lookup for en-US can find en, and one for en can find en-GB.
func (l *Localization) Lookup(table string, locale language.Tag, key string) (string, error) {
	fail := func(reason string) (string, error) {
		return "", &LocalizationError{Table: table, Locale: locale.String(), Key: key, Reason: reason}
	}
	t, ok := l.tables[table]
	if !ok {
		return fail("no such table")
	}
	entries, ok := t[locale]
	if !ok {
		entries, ok = sameBase(t, locale)
	}
	if !ok {
		return fail("no entries for locale")
	}
	s, ok := entries[key]
	if !ok {
		return fail("no such key")
	}
	return s, nil
}

// sameBase returns the entries of the locale in t with the same base
// language as locale. The base language itself is preferred; after it,
// the first matching locale in tag order.
func sameBase(t map[language.Tag]map[string]string, locale language.Tag) (map[string]string, bool) {
	base, conf := locale.Base()
	if conf == language.No {
		return nil, false
	}
	var tags []language.Tag
	for tag := range t {
		if b, _ := tag.Base(); b == base {
			tags = append(tags, tag)
		}
	}
	if len(tags) == 0 {
		return nil, false
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].String() < tags[j].String() })
	for _, tag := range tags {
		if tag.String() == base.String() {
			return t[tag], true
		}
	}
	return t[tags[0]], true
}

// Localize returns the text for key in table for the document language.
func (c *Context) Localize(table, key string) (string, error) {
	locale := c.doc.info.Lang
	if locale == language.Und {
		return "", &LocalizationError{Table: table, Key: key, Reason: "document language is not set"}
	}
	return c.s.localization.Lookup(table, locale, key)
}
