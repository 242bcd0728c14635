// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stdlib

import (
	"errors"
	"math"

	qd "github.com/qdlang/quarkdown"
)

func mathFunctions() []*qd.Function {
	return []*qd.Function{
		arithmetic("sum", func(a, b int64) (int64, bool) {
			c := a + b
			return c, (c > a) == (b > 0)
		}, func(a, b float64) float64 { return a + b }),
		arithmetic("subtract", func(a, b int64) (int64, bool) {
			c := a - b
			return c, (c < a) == (b > 0)
		}, func(a, b float64) float64 { return a - b }),
		arithmetic("multiply", func(a, b int64) (int64, bool) {
			if a == 0 || b == 0 {
				return 0, true
			}
			c := a * b
			return c, c/b == a && !(a == -1 && b == math.MinInt64) && !(b == -1 && a == math.MinInt64)
		}, func(a, b float64) float64 { return a * b }),
		{
			Name:   "divide",
			Params: []qd.Parameter{param("a", qd.TypeNumber), param("b", qd.TypeNumber)},
			Invoke: func(x *qd.Invocation) (qd.Value, error) {
				a, b := x.Arg("a").(qd.NumberValue), x.Arg("b").(qd.NumberValue)
				if b.Float64() == 0 {
					return nil, errors.New("division by zero")
				}
				// MinInt64 / -1 overflows.
				if a.IsInt() && b.IsInt() && a.Int64()%b.Int64() == 0 && !(a.Int64() == math.MinInt64 && b.Int64() == -1) {
					return qd.Int(a.Int64() / b.Int64()), nil
				}
				return qd.Float(a.Float64() / b.Float64()), nil
			},
		},
	}
}

// arithmetic returns a function of two numbers computing with integers
// when both are integers and the result does not overflow,
// and with floats otherwise.
func arithmetic(name string, ints func(a, b int64) (int64, bool), floats func(a, b float64) float64) *qd.Function {
	return &qd.Function{
		Name:   name,
		Params: []qd.Parameter{param("a", qd.TypeNumber), param("b", qd.TypeNumber)},
		Invoke: func(x *qd.Invocation) (qd.Value, error) {
			a, b := x.Arg("a").(qd.NumberValue), x.Arg("b").(qd.NumberValue)
			if a.IsInt() && b.IsInt() {
				if c, ok := ints(a.Int64(), b.Int64()); ok {
					return qd.Int(c), nil
				}
			}
			return qd.Float(floats(a.Float64(), b.Float64())), nil
		},
	}
}
