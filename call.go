// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quarkdown

import (
	"strings"
)

// A FunctionCall is a call to a registered function, bound to the
// [Context] in which it appeared. It is both a [Block] (when the call
// stands alone on its lines) and an [Inline].
//
// Until expansion runs, Children is empty; afterwards it holds
// the nodes the call's result was converted to.
type FunctionCall struct {
	Name    string
	Args    []*Argument
	IsBlock bool
	Span    Span
	Context *Context

	Children []Node

	seq  int  // queue position; 0 when not queued
	done bool // whether expansion has executed the call
}

func (*FunctionCall) Block()  {}
func (*FunctionCall) Inline() {}

func (x *FunctionCall) printDump(p *printer) {
	kind := "inline"
	if x.IsBlock {
		kind = "block"
	}
	p.line("call ", x.Name, " ", kind)
	defer p.pop(p.push("  "))
	for _, a := range x.Args {
		p.line("arg", attr("name", a.Name), flag("body", a.Body), " ", quote(exprSource(a.Expr)))
	}
	for _, n := range x.Children {
		n.printDump(p)
	}
}

func (x *FunctionCall) printText(p *printer) {
	for _, c := range x.Children {
		if in, ok := c.(Inline); ok {
			in.printText(p)
		}
	}
}

// An Argument is one argument of a [FunctionCall].
type Argument struct {
	Name string // for named arguments; empty otherwise
	Expr Expression
	Body bool // whether the argument is the call's indented body
}

// Eval resolves the called function in the call's context
// and invokes it, returning its result unconverted.
func (x *FunctionCall) Eval() (Value, error) {
	f, err := x.Context.Resolve(x.Name)
	if err != nil {
		return nil, err
	}
	return f.call(x)
}

// An UncheckedCall is an [Expression] referring to a call that was not
// registered for expansion. The function it names is resolved only when
// the expression is evaluated, so the function may be defined later
// than the call appears.
type UncheckedCall struct {
	Call *FunctionCall
}

func (u *UncheckedCall) Eval() (Value, error) {
	return u.Call.Eval()
}

// refine turns a walked call into a call bound to c.
//
// A chain .a {x}::b {y} refines to the call of b whose first argument
// is the call of a, so that it is the same as .b {.a {x}} {y}.
// Only the last call of a chain is a block call, and only it can have a body.
func (c *Context) refine(w *WalkedCall, block bool) *FunctionCall {
	var call *FunctionCall
	for ; w != nil; w = w.Next {
		next := &FunctionCall{Name: w.Name, Span: w.Span, Context: c}
		if call != nil {
			next.Args = append(next.Args, &Argument{Expr: &UncheckedCall{call}})
		}
		for _, a := range w.Args {
			next.Args = append(next.Args, &Argument{Name: a.Name, Expr: &SafeExpression{Raw: a.Value, Context: c}})
		}
		if w.HasBody {
			next.Args = append(next.Args, &Argument{Expr: DynamicValue{V: w.Body}, Body: true})
		}
		call = next
	}
	call.IsBlock = block
	return call
}

// exprSource returns a source-like rendering of e for dumps.
func exprSource(e Expression) string {
	switch e := e.(type) {
	case *SafeExpression:
		return e.Raw
	case *UncheckedCall:
		var b strings.Builder
		b.WriteString(".")
		b.WriteString(e.Call.Name)
		for _, a := range e.Call.Args {
			b.WriteString(" ")
			if a.Name != "" {
				b.WriteString(a.Name + ":")
			}
			b.WriteString("{" + exprSource(a.Expr) + "}")
		}
		return b.String()
	case Value:
		s, err := Stringify(e)
		if err != nil {
			return "?"
		}
		return s
	}
	return "?"
}
