// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stdlib

import (
	qd "github.com/qdlang/quarkdown"
)

func collectionFunctions() []*qd.Function {
	return []*qd.Function{
		{
			// .dictionary
			//     - key: value
			Name:   "dictionary",
			Params: []qd.Parameter{body("entries", qd.TypeDictionary)},
			Invoke: func(x *qd.Invocation) (qd.Value, error) {
				return x.Arg("entries"), nil
			},
		},
		{
			Name:   "collection",
			Params: []qd.Parameter{body("items", qd.TypeIterable)},
			Invoke: func(x *qd.Invocation) (qd.Value, error) {
				return x.Arg("items"), nil
			},
		},
		{
			// .get {key} from:{dictionary}, or .get {index} from:{collection}
			// with 1-based indexes. A missing entry is none.
			// A list of plain items is a dictionary without values,
			// so an index falls back to the items when no key matches.
			Name:   "get",
			Params: []qd.Parameter{param("key", qd.TypeString), param("from", qd.TypeAny)},
			Invoke: func(x *qd.Invocation) (qd.Value, error) {
				key := x.String("key")
				from := x.Arg("from")
				if _, ok := from.(*qd.OrderedCollection); !ok {
					if d, err := x.Context.Coerce(from, qd.TypeDictionary); err == nil {
						if v, ok := d.(*qd.DictionaryValue).Get(key); ok {
							return v, nil
						}
					}
				}
				n, err := qd.ParseNumber(key)
				if err != nil || !n.IsInt() {
					return qd.NoneValue{}, nil
				}
				list, err := x.Context.Coerce(from, qd.TypeIterable)
				if err != nil {
					return nil, err
				}
				all := items(list)
				if i := n.Int64(); 1 <= i && i <= int64(len(all)) {
					return all[i-1], nil
				}
				return qd.NoneValue{}, nil
			},
		},
		{
			Name:   "size",
			Params: []qd.Parameter{param("of", qd.TypeIterable)},
			Invoke: func(x *qd.Invocation) (qd.Value, error) {
				return qd.Int(int64(len(items(x.Arg("of"))))), nil
			},
		},
	}
}
