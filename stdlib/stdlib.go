// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package stdlib is the library of functions every Quarkdown document can call:
// variables and user-defined functions, control flow, arithmetic,
// collections, localization, file access, document metadata, and a few
// formatting helpers.
package stdlib

import (
	qd "github.com/qdlang/quarkdown"
)

// Library returns a new instance of the standard library.
func Library() *qd.Library {
	lib := &qd.Library{Name: "stdlib"}
	for _, group := range [][]*qd.Function{
		flowFunctions(),
		mathFunctions(),
		collectionFunctions(),
		localizationFunctions(),
		ioFunctions(),
		documentFunctions(),
		textFunctions(),
	} {
		lib.Functions = append(lib.Functions, group...)
	}
	return lib
}

// param, optional, and body build parameters tersely.
func param(name string, t qd.ValueType) qd.Parameter {
	return qd.Parameter{Name: name, Type: t}
}

func optional(name string, t qd.ValueType) qd.Parameter {
	return qd.Parameter{Name: name, Type: t, Optional: true}
}

func body(name string, t qd.ValueType) qd.Parameter {
	return qd.Parameter{Name: name, Type: t, Body: true}
}

func markdown(x *qd.Invocation, src string) (qd.Value, error) {
	return x.Context.Coerce(qd.DynamicValue{V: src}, qd.TypeMarkdown)
}
