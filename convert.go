// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quarkdown

import (
	"fmt"
	"strings"
)

// ListToCollection converts a Markdown list into an ordered collection.
// Each item becomes one value:
//
//   - an item holding only text is that text;
//   - an item holding text and then a nested list is a dictionary
//     with one entry, mapping the text (less any trailing ':')
//     to the nested list's collection;
//   - an item holding only a nested list is that list's collection;
//   - an empty item is the empty string.
//
// Any other item is a [*StructuralError].
func (c *Context) ListToCollection(l *List) (*OrderedCollection, error) {
	out := &OrderedCollection{}
	for _, it := range l.Items {
		v, err := c.itemValue(it)
		if err != nil {
			return nil, err
		}
		out.Items = append(out.Items, v)
	}
	return out, nil
}

func (c *Context) itemValue(it *ListItem) (Value, error) {
	switch len(it.Blocks) {
	case 0:
		return DynamicValue{V: ""}, nil
	case 1:
		switch b := it.Blocks[0].(type) {
		case *Paragraph:
			return c.scalar(b.Raw)
		case *List:
			return c.ListToCollection(b)
		}
	case 2:
		para, ok1 := it.Blocks[0].(*Paragraph)
		nested, ok2 := it.Blocks[1].(*List)
		if ok1 && ok2 {
			inner, err := c.ListToCollection(nested)
			if err != nil {
				return nil, err
			}
			d := NewDictionary()
			d.Put(trimKey(para.Raw), inner)
			return d, nil
		}
	}
	return nil, structural(it, "collection item")
}

// ListToDictionary converts a Markdown list into a dictionary.
// Each item is an entry "key: value", split at the first ':'.
// An item "key:" or "key" followed by a nested list maps key
// to the nested list's dictionary; a bare key maps to [NoneValue].
// Any other item is a [*StructuralError].
func (c *Context) ListToDictionary(l *List) (*DictionaryValue, error) {
	d := NewDictionary()
	for _, it := range l.Items {
		if len(it.Blocks) == 0 || len(it.Blocks) > 2 {
			return nil, structural(it, "dictionary entry")
		}
		para, ok := it.Blocks[0].(*Paragraph)
		if !ok {
			return nil, structural(it.Blocks[0], "dictionary key")
		}
		key, value, hasValue := strings.Cut(para.Raw, ":")
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		if len(it.Blocks) == 2 {
			nested, ok := it.Blocks[1].(*List)
			if !ok {
				return nil, structural(it.Blocks[1], "dictionary entry")
			}
			if value != "" {
				return nil, structural(it.Blocks[1], "dictionary entry with both a value and a nested list")
			}
			inner, err := c.ListToDictionary(nested)
			if err != nil {
				return nil, err
			}
			d.Put(key, inner)
			continue
		}
		if !hasValue {
			d.Put(key, NoneValue{})
			continue
		}
		v, err := c.scalar(value)
		if err != nil {
			return nil, err
		}
		d.Put(key, v)
	}
	return d, nil
}

// scalar returns the value of the text of a list item.
// Text holding function calls is evaluated; if the evaluation
// fails in a recoverable way, the text itself is the value.
func (c *Context) scalar(raw string) (Value, error) {
	e, err := ParseExpression(raw, c)
	if err != nil {
		return nil, err
	}
	if v, ok := e.(Value); ok {
		return v, nil
	}
	return c.evalSafe(e, func() (Value, error) { return DynamicValue{V: raw}, nil })
}

// trimKey returns the text of a collection item heading a nested list.
func trimKey(s string) string {
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), ":"))
}

func structural(n Node, reason string) error {
	return &StructuralError{Text: strings.TrimSpace(Dump(n)), Reason: reason}
}

// CollectionToList converts a collection back into a Markdown list,
// one item per value. Values that are nodes or Markdown content
// become the item's blocks; others become a paragraph of their text.
func CollectionToList(items []Value, ordered bool) (*List, error) {
	l := &List{Ordered: ordered, Start: 1, Bullet: '-'}
	if ordered {
		l.Bullet = '.'
	}
	for _, v := range items {
		it := &ListItem{Owner: l}
		switch v := v.(type) {
		case NodeValue:
			it.Blocks = blocksOf([]Node{v.Node})
		case *MarkdownContent:
			it.Blocks = blocksOf(v.Children)
		case *OrderedCollection:
			nested, err := CollectionToList(v.Items, ordered)
			if err != nil {
				return nil, err
			}
			it.Blocks = []Block{nested}
		default:
			s, err := Stringify(v)
			if err != nil {
				return nil, err
			}
			it.Blocks = []Block{&Paragraph{Text: []Inline{&Text{Text: s}}, Raw: s}}
		}
		l.Items = append(l.Items, it)
	}
	return l, nil
}

// blocksOf returns ns as blocks, collecting runs of inlines into paragraphs.
func blocksOf(ns []Node) []Block {
	var out []Block
	var run []Inline
	flush := func() {
		if len(run) > 0 {
			out = append(out, &Paragraph{Text: run, Raw: PlainText(run)})
			run = nil
		}
	}
	for _, n := range ns {
		switch n := n.(type) {
		case Inline:
			if b, ok := n.(Block); ok && isBlockCall(b) {
				flush()
				out = append(out, b)
				continue
			}
			run = append(run, n)
		case Block:
			flush()
			out = append(out, n)
		default:
			panic(fmt.Sprintf("quarkdown: unexpected node %T", n))
		}
	}
	flush()
	return out
}

// isBlockCall reports whether b is a block-level function call.
// Comments and error boxes are both block and inline;
// they stay with the surrounding inlines.
func isBlockCall(b Block) bool {
	call, ok := b.(*FunctionCall)
	return ok && call.IsBlock
}
