// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stdlib

import (
	qd "github.com/qdlang/quarkdown"
)

func flowFunctions() []*qd.Function {
	return []*qd.Function{
		{
			// .var {name} {value} defines a variable, or assigns it
			// in the scope that defines it.
			Name:   "var",
			Params: []qd.Parameter{param("name", qd.TypeString), body("value", qd.TypeAny)},
			Invoke: func(x *qd.Invocation) (qd.Value, error) {
				f := qd.ValueFunction(x.String("name"), x.Arg("value"))
				if !x.Context.SetFunction(f) {
					x.Context.DefineFunction(f)
				}
				return qd.VoidValue{}, nil
			},
		},
		{
			Name:   "let",
			Params: []qd.Parameter{param("value", qd.TypeAny), body("body", qd.TypeLambda)},
			Invoke: func(x *qd.Invocation) (qd.Value, error) {
				return lambda(x, "body").Invoke(x.Arg("value"))
			},
		},
		{
			// .function {name}
			//     a b?:
			//     body
			Name:   "function",
			Params: []qd.Parameter{param("name", qd.TypeString), body("body", qd.TypeLambda)},
			Invoke: func(x *qd.Invocation) (qd.Value, error) {
				l := lambda(x, "body")
				f := &qd.Function{Name: x.String("name")}
				for _, p := range l.Params {
					f.Params = append(f.Params, qd.Parameter{Name: p.Name, Optional: p.Optional})
				}
				f.Invoke = func(inner *qd.Invocation) (qd.Value, error) {
					var args []qd.Value
					for _, p := range l.Params {
						if !inner.Has(p.Name) {
							break
						}
						args = append(args, inner.Arg(p.Name))
					}
					return l.Invoke(args...)
				}
				x.Context.DefineFunction(f)
				return qd.VoidValue{}, nil
			},
		},
		{
			Name:   "foreach",
			Params: []qd.Parameter{param("iterable", qd.TypeIterable), body("body", qd.TypeLambda)},
			Invoke: func(x *qd.Invocation) (qd.Value, error) {
				l := lambda(x, "body")
				out := &qd.OrderedCollection{}
				for _, item := range items(x.Arg("iterable")) {
					v, err := l.Invoke(item)
					if err != nil {
						return nil, err
					}
					out.Items = append(out.Items, v)
				}
				return out, nil
			},
		},
		{
			Name:   "repeat",
			Params: []qd.Parameter{param("times", qd.TypeNumber), body("body", qd.TypeLambda)},
			Invoke: func(x *qd.Invocation) (qd.Value, error) {
				l := lambda(x, "body")
				n := x.Arg("times").(qd.NumberValue).Int64()
				out := &qd.OrderedCollection{}
				for i := int64(1); i <= n; i++ {
					v, err := l.Invoke(qd.Int(i))
					if err != nil {
						return nil, err
					}
					out.Items = append(out.Items, v)
				}
				return out, nil
			},
		},
		conditional("if", true),
		conditional("ifnot", false),
	}
}

// conditional returns a function that evaluates its body
// when its condition equals want.
func conditional(name string, want bool) *qd.Function {
	return &qd.Function{
		Name:   name,
		Params: []qd.Parameter{param("condition", qd.TypeBoolean), body("body", qd.TypeLambda)},
		Invoke: func(x *qd.Invocation) (qd.Value, error) {
			if bool(x.Arg("condition").(qd.BooleanValue)) != want {
				return qd.VoidValue{}, nil
			}
			return lambda(x, "body").Invoke()
		},
	}
}

func lambda(x *qd.Invocation, name string) *qd.LambdaValue {
	return x.Arg(name).(*qd.LambdaValue)
}

// items returns the values of an iterable argument.
func items(v qd.Value) []qd.Value {
	switch v := v.(type) {
	case *qd.OrderedCollection:
		return v.Items
	case *qd.UnorderedCollection:
		return v.Items
	}
	return nil
}
