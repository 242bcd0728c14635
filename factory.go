// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quarkdown

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// numberPattern accepts decimal integers and decimal floats
// with an optional sign and exponent, and nothing else:
// no hex, no underscores, no NaN or Inf.
var numberPattern = regexp.MustCompile(`^[+\-]?(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+)(?:[eE][+\-]?[0-9]+)?$`)

// ParseNumber parses a decimal number.
// It tries an integer first and falls back to a float,
// so that "3" is an integer and "3.0" and "1e30" are floats.
// Integers that overflow int64 become floats.
func ParseNumber(s string) (NumberValue, error) {
	s = strings.TrimSpace(s)
	if !numberPattern.MatchString(s) {
		return NumberValue{}, errors.New("not a decimal number")
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Int(n), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return NumberValue{}, errors.New("number out of range")
	}
	return NumberValue{f: f, isFloat: true}, nil
}

// ParseBoolean parses true or yes, and false or no, in any case.
func ParseBoolean(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes":
		return true, nil
	case "false", "no":
		return false, nil
	}
	return false, errors.New("want true, yes, false, or no")
}

// enumKey folds an enum name so that case, underscores, and hyphens do not matter.
func enumKey(s string) string {
	s = cases.Fold().String(strings.TrimSpace(s))
	return strings.NewReplacer("_", "", "-", "").Replace(s)
}

// ParseEnum returns the choice matching s, ignoring case, underscores, and hyphens.
func ParseEnum(s string, choices []string) (Enum, error) {
	k := enumKey(s)
	for _, c := range choices {
		if enumKey(c) == k {
			return Enum{Name: c}, nil
		}
	}
	return Enum{}, fmt.Errorf("want one of %s", strings.Join(choices, ", "))
}

// Coerce converts v to type t. Raw text, held by a [DynamicValue]
// or a [StringValue], is parsed; a value already of type t is returned as is.
// Markdown text is parsed in c, registering its function calls,
// except when read as an iterable or a dictionary, whose
// items are data rather than document content.
// For [TypeEnum], choices lists the accepted names.
func (c *Context) Coerce(v Value, t ValueType, choices ...string) (Value, error) {
	if d, ok := v.(DynamicValue); ok {
		if inner, ok := d.V.(Value); ok {
			return c.Coerce(inner, t, choices...)
		}
	}
	fail := func(reason string) (Value, error) {
		raw, err := Stringify(v)
		if err != nil {
			raw = fmt.Sprintf("%T", v)
		}
		return nil, &CoercionError{Raw: raw, Target: t, Reason: reason}
	}
	text := func() (string, bool) {
		s, err := Stringify(v)
		return s, err == nil
	}

	switch t {
	case TypeAny:
		return v, nil

	case TypeString:
		s, ok := text()
		if !ok {
			return fail("not text")
		}
		return StringValue(s), nil

	case TypeNumber:
		if n, ok := v.(NumberValue); ok {
			return n, nil
		}
		s, _ := text()
		n, err := ParseNumber(s)
		if err != nil {
			return fail(err.Error())
		}
		return n, nil

	case TypeBoolean:
		if b, ok := v.(BooleanValue); ok {
			return b, nil
		}
		s, _ := text()
		b, err := ParseBoolean(s)
		if err != nil {
			return fail(err.Error())
		}
		return BooleanValue(b), nil

	case TypeColor, TypeSize, TypeSizes, TypeRange, TypeEnum:
		if o, ok := v.(ObjectValue); ok && objectType(o.Object) == t {
			return o, nil
		}
		s, ok := text()
		if !ok {
			return fail("not text")
		}
		obj, err := parseObject(s, t, choices)
		if err != nil {
			return fail(err.Error())
		}
		return ObjectValue{obj}, nil

	case TypeIterable:
		switch x := v.(type) {
		case *OrderedCollection, *UnorderedCollection:
			return x, nil
		case *DictionaryValue:
			return dictionaryPairs(x), nil
		case ObjectValue:
			if r, ok := x.Object.(Range); ok && r.Bounded() {
				items, err := r.Values()
				if err != nil {
					return fail(err.Error())
				}
				return &OrderedCollection{Items: items}, nil
			}
		case NumberValue:
			return &OrderedCollection{Items: []Value{x}}, nil
		}
		s, ok := text()
		if !ok {
			return fail("not a collection")
		}
		if r, err := ParseRange(s); err == nil {
			if !r.Bounded() {
				return fail("an open range cannot be iterated")
			}
			items, err := r.Values()
			if err != nil {
				return fail(err.Error())
			}
			return &OrderedCollection{Items: items}, nil
		}
		l, err := c.dataList(s)
		if err != nil {
			return nil, err
		}
		if l == nil {
			return fail("not a list")
		}
		return c.ListToCollection(l)

	case TypeDictionary:
		if d, ok := v.(*DictionaryValue); ok {
			return d, nil
		}
		s, ok := text()
		if !ok {
			return fail("not a dictionary")
		}
		l, err := c.dataList(s)
		if err != nil {
			return nil, err
		}
		if l == nil {
			return fail("not a list")
		}
		return c.ListToDictionary(l)

	case TypeLambda:
		if l, ok := v.(*LambdaValue); ok {
			return l, nil
		}
		s, ok := text()
		if !ok {
			return fail("not a lambda")
		}
		return c.ParseLambda(s, false), nil

	case TypeMarkdown, TypeInlineMarkdown:
		inline := t == TypeInlineMarkdown
		switch x := v.(type) {
		case *MarkdownContent:
			if inline && !x.Inline {
				return inlineContent(x), nil
			}
			return x, nil
		case NodeValue:
			return &MarkdownContent{Children: []Node{x.Node}, Inline: inline}, nil
		case VoidValue, NoneValue:
			return &MarkdownContent{Inline: inline}, nil
		}
		s, ok := text()
		if !ok {
			return fail("not markdown")
		}
		return c.parseMarkdown(s, inline)
	}
	return fail("unknown type")
}

// objectType returns the value type of a typed object.
func objectType(o fmt.Stringer) ValueType {
	switch o.(type) {
	case Color:
		return TypeColor
	case Size:
		return TypeSize
	case Sizes:
		return TypeSizes
	case Range:
		return TypeRange
	case Enum:
		return TypeEnum
	}
	return TypeAny
}

func parseObject(s string, t ValueType, choices []string) (fmt.Stringer, error) {
	switch t {
	case TypeColor:
		return ParseColor(s)
	case TypeSize:
		return ParseSize(s)
	case TypeSizes:
		return ParseSizes(s)
	case TypeRange:
		return ParseRange(s)
	}
	return ParseEnum(s, choices)
}

// parseMarkdown parses s as block or inline content in c.
func (c *Context) parseMarkdown(s string, inline bool) (*MarkdownContent, error) {
	out := &MarkdownContent{Inline: inline}
	if inline {
		xs, err := c.ParseInline(s)
		if err != nil {
			return nil, err
		}
		for _, x := range xs {
			out.Children = append(out.Children, x)
		}
		return out, nil
	}
	bs, err := c.ParseBlocks(s)
	if err != nil {
		return nil, err
	}
	for _, b := range bs {
		out.Children = append(out.Children, b)
	}
	return out, nil
}

// dataList parses s as a Markdown list without registering
// any function calls it contains. It returns nil if s is not
// exactly one list.
func (c *Context) dataList(s string) (*List, error) {
	var blocks []Block
	err := c.Locked(func() error {
		var err error
		blocks, err = c.ParseBlocks(s)
		return err
	})
	if err != nil {
		return nil, err
	}
	if len(blocks) != 1 {
		return nil, nil
	}
	l, _ := blocks[0].(*List)
	return l, nil
}

// dictionaryPairs returns the entries of d as a collection
// of two-item key, value collections.
func dictionaryPairs(d *DictionaryValue) *OrderedCollection {
	out := &OrderedCollection{}
	for _, k := range d.Keys() {
		v, _ := d.Get(k)
		out.Items = append(out.Items, &OrderedCollection{Items: []Value{StringValue(k), v}})
	}
	return out
}

// inlineContent returns the inline content of block content m:
// the text of its paragraphs and headings, and its inline nodes.
// Other blocks are dropped.
func inlineContent(m *MarkdownContent) *MarkdownContent {
	out := &MarkdownContent{Inline: true}
	for _, n := range m.Children {
		switch n := n.(type) {
		case *Paragraph:
			for _, x := range n.Text {
				out.Children = append(out.Children, x)
			}
		case *Heading:
			for _, x := range n.Text {
				out.Children = append(out.Children, x)
			}
		case Inline:
			out.Children = append(out.Children, n)
		}
	}
	return out
}
