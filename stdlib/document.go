// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stdlib

import (
	"strings"

	qd "github.com/qdlang/quarkdown"
	"golang.org/x/text/language"
)

// Document metadata functions set a field when given an argument
// and return it otherwise.
func documentFunctions() []*qd.Function {
	return []*qd.Function{
		{
			Name:   "docname",
			Params: []qd.Parameter{optional("name", qd.TypeString)},
			Invoke: func(x *qd.Invocation) (qd.Value, error) {
				info := x.Context.Info()
				if !x.Has("name") {
					return qd.StringValue(info.Name), nil
				}
				info.Name = x.String("name")
				return qd.VoidValue{}, nil
			},
		},
		{
			Name:   "docauthor",
			Params: []qd.Parameter{optional("name", qd.TypeString)},
			Invoke: func(x *qd.Invocation) (qd.Value, error) {
				info := x.Context.Info()
				if !x.Has("name") {
					return qd.StringValue(strings.Join(info.Authors, ", ")), nil
				}
				info.Authors = append(info.Authors, x.String("name"))
				return qd.VoidValue{}, nil
			},
		},
		{
			Name:   "doclang",
			Params: []qd.Parameter{optional("locale", qd.TypeString)},
			Invoke: func(x *qd.Invocation) (qd.Value, error) {
				info := x.Context.Info()
				if !x.Has("locale") {
					if info.Lang == language.Und {
						return qd.NoneValue{}, nil
					}
					return qd.StringValue(info.Lang.String()), nil
				}
				tag, err := language.Parse(x.String("locale"))
				if err != nil {
					return nil, &qd.CoercionError{Raw: x.String("locale"), Target: qd.TypeString, Reason: err.Error()}
				}
				info.Lang = tag
				return qd.VoidValue{}, nil
			},
		},
		{
			Name:   "doctype",
			Params: []qd.Parameter{{Name: "type", Type: qd.TypeEnum, Enum: qd.DocumentTypes, Optional: true}},
			Invoke: func(x *qd.Invocation) (qd.Value, error) {
				info := x.Context.Info()
				if !x.Has("type") {
					if info.Type == "" {
						return qd.StringValue(qd.DocumentTypes[0]), nil
					}
					return qd.StringValue(info.Type), nil
				}
				info.Type = x.Arg("type").(qd.ObjectValue).Object.(qd.Enum).Name
				return qd.VoidValue{}, nil
			},
		},
	}
}
