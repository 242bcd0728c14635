// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stdlib

import (
	"fmt"
	"strings"

	qd "github.com/qdlang/quarkdown"
	"golang.org/x/text/language"
)

func localizationFunctions() []*qd.Function {
	return []*qd.Function{
		{
			// .localization {table}
			//     - en
			//         - key: text
			//     - it
			//         - key: testo
			Name:   "localization",
			Params: []qd.Parameter{param("name", qd.TypeString), body("locales", qd.TypeDictionary)},
			Invoke: func(x *qd.Invocation) (qd.Value, error) {
				table := x.String("name")
				locales := x.Arg("locales").(*qd.DictionaryValue)
				for _, locale := range locales.Keys() {
					tag, err := language.Parse(locale)
					if err != nil {
						return nil, fmt.Errorf("locale %q: %v", locale, err)
					}
					v, _ := locales.Get(locale)
					entries, ok := v.(*qd.DictionaryValue)
					if !ok {
						return nil, &qd.StructuralError{Text: locale, Reason: "localization locale without entries"}
					}
					m := make(map[string]string)
					for _, k := range entries.Keys() {
						e, _ := entries.Get(k)
						s, err := qd.Stringify(e)
						if err != nil {
							return nil, err
						}
						m[k] = s
					}
					x.Context.Localization().Add(table, tag, m)
				}
				return qd.VoidValue{}, nil
			},
		},
		{
			// .localize {table:key}
			Name:   "localize",
			Params: []qd.Parameter{param("key", qd.TypeString)},
			Invoke: func(x *qd.Invocation) (qd.Value, error) {
				table, key, ok := strings.Cut(x.String("key"), ":")
				if !ok {
					return nil, &qd.LocalizationError{Key: x.String("key"), Reason: "want table:key"}
				}
				s, err := x.Context.Localize(table, key)
				if err != nil {
					return nil, err
				}
				return qd.StringValue(s), nil
			},
		},
	}
}
