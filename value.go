// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quarkdown

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// A Value is the result of evaluating an [Expression].
// A Value is also an Expression that evaluates to itself.
type Value interface {
	Expression

	// Unwrap returns the untyped projection of the value:
	// a string, int64, float64, bool, object, []any, map[string]any,
	// []Node, Node, *LambdaValue, or nil.
	Unwrap() any
}

// A ValueType is the static type a function parameter requires.
type ValueType int

const (
	TypeAny ValueType = iota
	TypeString
	TypeNumber
	TypeBoolean
	TypeColor
	TypeSize
	TypeSizes
	TypeRange
	TypeEnum
	TypeIterable
	TypeDictionary
	TypeLambda
	TypeMarkdown
	TypeInlineMarkdown
)

var typeNames = [...]string{
	TypeAny:            "any",
	TypeString:         "string",
	TypeNumber:         "number",
	TypeBoolean:        "boolean",
	TypeColor:          "color",
	TypeSize:           "size",
	TypeSizes:          "sizes",
	TypeRange:          "range",
	TypeEnum:           "enum",
	TypeIterable:       "iterable",
	TypeDictionary:     "dictionary",
	TypeLambda:         "lambda",
	TypeMarkdown:       "markdown",
	TypeInlineMarkdown: "inline markdown",
}

func (t ValueType) String() string {
	if 0 <= t && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("ValueType(%d)", int(t))
}

// A StringValue is a string.
type StringValue string

func (v StringValue) Eval() (Value, error) { return v, nil }
func (v StringValue) Unwrap() any          { return string(v) }

// A BooleanValue is a boolean.
type BooleanValue bool

func (v BooleanValue) Eval() (Value, error) { return v, nil }
func (v BooleanValue) Unwrap() any          { return bool(v) }

// A NumberValue is an integer or a floating-point number.
type NumberValue struct {
	i       int64
	f       float64
	isFloat bool
}

// Int returns the integer number n.
func Int(n int64) NumberValue { return NumberValue{i: n} }

// Float returns the number f, as an integer if it has no fraction
// and fits in an int64.
func Float(f float64) NumberValue {
	if f == math.Trunc(f) && math.Abs(f) < 1<<62 {
		return NumberValue{i: int64(f)}
	}
	return NumberValue{f: f, isFloat: true}
}

// IsInt reports whether n is an integer.
func (n NumberValue) IsInt() bool { return !n.isFloat }

// Int64 returns n truncated to an integer.
func (n NumberValue) Int64() int64 {
	if n.isFloat {
		return int64(n.f)
	}
	return n.i
}

// Float64 returns n as a floating-point number.
func (n NumberValue) Float64() float64 {
	if n.isFloat {
		return n.f
	}
	return float64(n.i)
}

func (n NumberValue) String() string {
	if n.isFloat {
		return strconv.FormatFloat(n.f, 'f', -1, 64)
	}
	return strconv.FormatInt(n.i, 10)
}

func (n NumberValue) Eval() (Value, error) { return n, nil }

func (n NumberValue) Unwrap() any {
	if n.isFloat {
		return n.f
	}
	return n.i
}

// An ObjectValue wraps a typed object: a [Color], [Size], [Sizes], [Range], or [Enum].
type ObjectValue struct {
	Object fmt.Stringer
}

func (v ObjectValue) Eval() (Value, error) { return v, nil }
func (v ObjectValue) Unwrap() any          { return v.Object }

// An OrderedCollection is a sequence of values.
type OrderedCollection struct {
	Items []Value
}

func (v *OrderedCollection) Eval() (Value, error) { return v, nil }

func (v *OrderedCollection) Unwrap() any {
	out := make([]any, len(v.Items))
	for i, x := range v.Items {
		out[i] = x.Unwrap()
	}
	return out
}

// An UnorderedCollection is a set of values whose order carries no meaning.
type UnorderedCollection struct {
	Items []Value
}

func (v *UnorderedCollection) Eval() (Value, error) { return v, nil }

func (v *UnorderedCollection) Unwrap() any {
	out := make([]any, len(v.Items))
	for i, x := range v.Items {
		out[i] = x.Unwrap()
	}
	return out
}

// A DictionaryValue maps string keys to values, in insertion order.
type DictionaryValue struct {
	m *linkedhashmap.Map
}

// NewDictionary returns an empty dictionary.
func NewDictionary() *DictionaryValue {
	return &DictionaryValue{m: linkedhashmap.New()}
}

// Put sets the value for key, keeping the key's original position if it exists.
func (d *DictionaryValue) Put(key string, v Value) {
	d.m.Put(key, v)
}

// Get returns the value for key.
func (d *DictionaryValue) Get(key string) (Value, bool) {
	v, ok := d.m.Get(key)
	if !ok {
		return nil, false
	}
	return v.(Value), true
}

// Keys returns the keys in insertion order.
func (d *DictionaryValue) Keys() []string {
	keys := make([]string, 0, d.m.Size())
	for _, k := range d.m.Keys() {
		keys = append(keys, k.(string))
	}
	return keys
}

// Len returns the number of entries.
func (d *DictionaryValue) Len() int { return d.m.Size() }

func (d *DictionaryValue) Eval() (Value, error) { return d, nil }

func (d *DictionaryValue) Unwrap() any {
	out := make(map[string]any, d.m.Size())
	it := d.m.Iterator()
	for it.Next() {
		out[it.Key().(string)] = it.Value().(Value).Unwrap()
	}
	return out
}

// MarkdownContent is parsed Markdown: blocks, or inline content if Inline is set.
type MarkdownContent struct {
	Children []Node
	Inline   bool
}

func (v *MarkdownContent) Eval() (Value, error) { return v, nil }
func (v *MarkdownContent) Unwrap() any          { return v.Children }

// A NodeValue is a single node produced by a function.
type NodeValue struct {
	Node Node
}

func (v NodeValue) Eval() (Value, error) { return v, nil }
func (v NodeValue) Unwrap() any          { return v.Node }

// VoidValue is the result of a function that produces no output.
type VoidValue struct{}

func (VoidValue) Eval() (Value, error) { return VoidValue{}, nil }
func (VoidValue) Unwrap() any          { return nil }

// NoneValue marks an absent value, such as a dictionary key without a value
// or an optional parameter without an argument.
type NoneValue struct{}

func (NoneValue) Eval() (Value, error) { return NoneValue{}, nil }
func (NoneValue) Unwrap() any          { return nil }

// A DynamicValue is a value whose type is not yet known:
// raw argument text, or the concatenation of a composed expression.
// It is coerced when bound to a typed parameter.
type DynamicValue struct {
	V any
}

func (v DynamicValue) Eval() (Value, error) { return v, nil }
func (v DynamicValue) Unwrap() any          { return v.V }

// Stringify returns the text of a value, for concatenation
// and for string parameters. Nodes and Markdown content have no text:
// Stringify reports an [*EvaluationError] for them.
func Stringify(v Value) (string, error) {
	switch v := v.(type) {
	case StringValue:
		return string(v), nil
	case BooleanValue:
		return strconv.FormatBool(bool(v)), nil
	case NumberValue:
		return v.String(), nil
	case ObjectValue:
		return v.Object.String(), nil
	case DynamicValue:
		switch x := v.V.(type) {
		case string:
			return x, nil
		case Value:
			return Stringify(x)
		case nil:
			return "", nil
		}
		return fmt.Sprint(v.V), nil
	case VoidValue:
		return "", nil
	case NoneValue:
		return "none", nil
	case *OrderedCollection:
		return stringifyAll(v.Items)
	case *UnorderedCollection:
		return stringifyAll(v.Items)
	case *DictionaryValue:
		var parts []string
		for _, k := range v.Keys() {
			x, _ := v.Get(k)
			s, err := Stringify(x)
			if err != nil {
				return "", err
			}
			parts = append(parts, k+": "+s)
		}
		return strings.Join(parts, ", "), nil
	case *LambdaValue:
		return "", &EvaluationError{Expr: v.Body, Reason: "a lambda has no text"}
	case NodeValue:
		return "", &EvaluationError{Expr: Dump(v.Node), Reason: "a node has no text"}
	case *MarkdownContent:
		return "", &EvaluationError{Expr: dumpAll(v.Children), Reason: "markdown content has no text"}
	}
	return "", &EvaluationError{Expr: fmt.Sprint(v), Reason: "value has no text"}
}

func stringifyAll(items []Value) (string, error) {
	parts := make([]string, len(items))
	for i, x := range items {
		s, err := Stringify(x)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return strings.Join(parts, ", "), nil
}

func dumpAll(ns []Node) string {
	var b strings.Builder
	for _, n := range ns {
		b.WriteString(Dump(n))
	}
	return b.String()
}
