// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quarkdown

import (
	"fmt"

	"go.uber.org/zap"
)

// An ErrorBox replaces the output of a function call that failed
// when the context is not strict.
// It is both a [Block] and an [Inline].
type ErrorBox struct {
	Title   string
	Message string
}

func (*ErrorBox) Block()  {}
func (*ErrorBox) Inline() {}

func (x *ErrorBox) printDump(p *printer) {
	p.line("error ", quote(x.Title), " ", quote(x.Message))
}

func (x *ErrorBox) printText(p *printer) {
	p.text("[", x.Title, ": ", x.Message, "]")
}

// Expand executes the pending function calls in registration order
// until none are left, setting each call's Children to its output.
// Calls registered while a call executes, such as those in Markdown
// the call returns, are executed in turn.
//
// If a call fails and c is strict, Expand returns the error and leaves
// the remaining calls pending. Otherwise the call's output is an
// [ErrorBox] and expansion goes on.
func (c *Context) Expand() error {
	for {
		call, ok := c.s.queue.pop()
		if !ok {
			return nil
		}
		if err := c.expand(call); err != nil {
			return err
		}
	}
}

func (c *Context) expand(call *FunctionCall) error {
	if call.done {
		return nil
	}
	call.done = true
	log := c.s.log.With(zap.String("function", call.Name), zap.Int("offset", call.Span.Start))
	v, err := call.Eval()
	var out []Node
	if err == nil {
		out, err = call.Context.toNodes(v, call.IsBlock)
	}
	if err != nil {
		if c.s.strict {
			log.Error("function call failed", zap.Error(err))
			return err
		}
		log.Warn("function call failed", zap.Error(err))
		call.Children = []Node{&ErrorBox{Title: call.Name, Message: err.Error()}}
		return nil
	}
	call.Children = out
	log.Debug("expanded function call", zap.Int("nodes", len(out)))
	return nil
}

// toNodes converts the result of a call into nodes.
// Text from a [DynamicValue] is parsed as Markdown in c,
// as blocks for a block call and as inline content otherwise.
func (c *Context) toNodes(v Value, block bool) ([]Node, error) {
	switch v := v.(type) {
	case nil, VoidValue, NoneValue:
		return nil, nil
	case StringValue, BooleanValue, NumberValue, ObjectValue:
		s, _ := Stringify(v)
		return []Node{&Text{Text: s}}, nil
	case DynamicValue:
		switch x := v.V.(type) {
		case Value:
			return c.toNodes(x, block)
		case string:
			m, err := c.parseMarkdown(x, !block)
			if err != nil {
				return nil, err
			}
			return m.Children, nil
		case nil:
			return nil, nil
		}
		return []Node{&Text{Text: fmt.Sprint(v.V)}}, nil
	case *MarkdownContent:
		return v.Children, nil
	case NodeValue:
		return []Node{v.Node}, nil
	case *OrderedCollection:
		return c.concatNodes(v.Items, block)
	case *UnorderedCollection:
		return c.concatNodes(v.Items, block)
	case *DictionaryValue:
		t, err := c.dictionaryTable(v)
		if err != nil {
			return nil, err
		}
		return []Node{t}, nil
	case *LambdaValue:
		return nil, &EvaluationError{Expr: v.Body, Reason: "a lambda cannot be output"}
	}
	return nil, &EvaluationError{Expr: fmt.Sprint(v), Reason: fmt.Sprintf("cannot output %T", v)}
}

func (c *Context) concatNodes(items []Value, block bool) ([]Node, error) {
	var out []Node
	for _, x := range items {
		ns, err := c.toNodes(x, block)
		if err != nil {
			return nil, err
		}
		out = append(out, ns...)
	}
	return out, nil
}

// dictionaryTable renders a dictionary as a table of keys and values.
func (c *Context) dictionaryTable(d *DictionaryValue) (*Table, error) {
	t := &Table{
		Align:  []string{"", ""},
		Header: []TableCell{{}, {}},
	}
	for _, k := range d.Keys() {
		v, _ := d.Get(k)
		ns, err := c.toNodes(v, false)
		if err != nil {
			return nil, err
		}
		var cell []Inline
		for _, n := range ns {
			if in, ok := n.(Inline); ok {
				cell = append(cell, in)
			} else {
				cell = append(cell, &Text{Text: PlainText(inlinesOf(n))})
			}
		}
		t.Rows = append(t.Rows, []TableCell{{Text: []Inline{&Text{Text: k}}}, {Text: cell}})
	}
	return t, nil
}

// inlinesOf returns the inline descendants of n that are direct
// children of blocks, for flattening block output into a table cell.
func inlinesOf(n Node) []Inline {
	var out []Inline
	for _, c := range Children(n) {
		if in, ok := c.(Inline); ok {
			out = append(out, in)
		} else {
			out = append(out, inlinesOf(c)...)
		}
	}
	return out
}
