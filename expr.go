// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quarkdown

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"
)

// An Expression is a computation that yields a [Value]:
// a value itself, a [*FunctionCall], an [*UncheckedCall],
// a [*ComposedExpression], or a [*SafeExpression].
type Expression interface {
	Eval() (Value, error)
}

// A ComposedExpression is a sequence of literal text and function calls
// whose results are concatenated as text.
type ComposedExpression struct {
	Parts []Expression
}

func (e *ComposedExpression) Eval() (Value, error) {
	var b strings.Builder
	for _, part := range e.Parts {
		v, err := part.Eval()
		if err != nil {
			return nil, err
		}
		s, err := Stringify(v)
		if err != nil {
			return nil, err
		}
		b.WriteString(s)
	}
	return DynamicValue{V: b.String()}, nil
}

// A SafeExpression is an argument as written in the source.
// It is parsed and evaluated only when the argument is used,
// falling back to its text parsed as Markdown when evaluation
// fails with an [*EvaluationError].
type SafeExpression struct {
	Raw     string
	Context *Context
}

func (e *SafeExpression) Eval() (Value, error) {
	return e.Context.EvalSafe(e.Raw, nil)
}

const lambdaMarker = "@lambda "

// ParseExpression parses raw argument text into an expression bound to c.
//
// Text starting with "@lambda " is a lambda. Otherwise the text is
// split into literal runs and function calls: text holding a single
// call is that call, text without calls is a [DynamicValue], and
// anything else is a [*ComposedExpression].
// A call alone at the start of a line and followed by more deeply
// indented lines takes those lines as its body, as in a document.
// Backslash escapes are kept in the literal runs.
func ParseExpression(raw string, c *Context) (Expression, error) {
	if rest, ok := strings.CutPrefix(raw, lambdaMarker); ok {
		return c.ParseLambda(rest, true), nil
	}
	var parts []Expression
	lit := 0
	for i := 0; i < len(raw); i++ {
		switch {
		case raw[i] == '\\':
			i++
		case raw[i] == '.' && c.Flavor().Calls && callCanStart(raw, i):
			block := atLineStart(raw, i)
			var w *WalkedCall
			var end int
			var err error
			if block {
				w, end, err = walkCall(raw, i, true)
				if err != nil {
					return nil, err
				}
				block = w != nil && hasBody(w)
			}
			if !block {
				w, end, err = walkCall(raw, i, false)
				if err != nil {
					return nil, err
				}
			}
			if w == nil {
				continue
			}
			if lit < i {
				parts = append(parts, DynamicValue{V: raw[lit:i]})
			}
			parts = append(parts, c.refine(w, block))
			lit = end
			i = end - 1
		}
	}
	if lit < len(raw) || len(parts) == 0 {
		parts = append(parts, DynamicValue{V: raw[lit:]})
	}
	if len(parts) == 1 {
		return parts[0], nil
	}
	return &ComposedExpression{Parts: parts}, nil
}

// atLineStart reports whether only spaces and tabs precede src[at] on its line.
func atLineStart(src string, at int) bool {
	for i := at - 1; i >= 0; i-- {
		switch src[i] {
		case ' ', '\t':
		case '\n':
			return true
		default:
			return false
		}
	}
	return true
}

// hasBody reports whether the last call of the chain w took an indented body.
func hasBody(w *WalkedCall) bool {
	for w.Next != nil {
		w = w.Next
	}
	return w.HasBody
}

// Eval parses and evaluates raw in c.
func (c *Context) Eval(raw string) (Value, error) {
	e, err := ParseExpression(raw, c)
	if err != nil {
		return nil, err
	}
	return e.Eval()
}

// EvalSafe evaluates raw in c. If evaluation fails with an
// [*EvaluationError], everything registered during the attempt is
// withdrawn (queued calls, headings and their ids, definitions, media,
// and subdocument links) and EvalSafe returns the result of fallback
// instead. A nil fallback parses raw as block Markdown in c.
// Other errors are returned as is.
func (c *Context) EvalSafe(raw string, fallback func() (Value, error)) (Value, error) {
	e, err := ParseExpression(raw, c)
	if err != nil {
		return nil, err
	}
	if fallback == nil {
		fallback = func() (Value, error) {
			return c.parseMarkdown(raw, false)
		}
	}
	return c.evalSafe(e, fallback)
}

func (c *Context) evalSafe(e Expression, fallback func() (Value, error)) (Value, error) {
	m := c.s.queue.mark()
	v, err := e.Eval()
	if err == nil {
		c.s.queue.commit(m)
		return v, nil
	}
	var ee *EvaluationError
	if !errors.As(err, &ee) {
		c.s.queue.commit(m)
		return nil, err
	}
	c.s.queue.rollback(m)
	c.s.log.Debug("falling back after evaluation failure")
	return fallback()
}

// A LambdaParam is a parameter of a lambda.
type LambdaParam struct {
	Name     string
	Optional bool
}

// A LambdaValue is a block of source text with parameters,
// evaluated in a fork of the scope where it was written.
type LambdaValue struct {
	Params   []LambdaParam
	Body     string
	Scope    *Context
	Explicit bool // whether the parameters were named in a header
}

func (l *LambdaValue) Eval() (Value, error) { return l, nil }
func (l *LambdaValue) Unwrap() any          { return l }

var paramPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*\??$`)

// ParseLambda parses src as a lambda written in c.
//
// The lambda's parameters are named in an optional header:
// the text before the first ':' of the first line, made of
// space-separated names, each with an optional '?' suffix
// for an optional parameter. Without a header, the parameters
// are implicit and the arguments are available as .1, .2, and so on.
// When marked is set, src followed a "@lambda " marker and a
// header without names declares a lambda with no parameters.
func (c *Context) ParseLambda(src string, marked bool) *LambdaValue {
	l := &LambdaValue{Body: src, Scope: c}
	first, _, _ := strings.Cut(src, "\n")
	head, _, ok := strings.Cut(first, ":")
	if !ok {
		return l
	}
	words, err := shellquote.Split(head)
	if err != nil || len(words) == 0 && !marked {
		return l
	}
	var params []LambdaParam
	for _, w := range words {
		if !paramPattern.MatchString(w) {
			return l
		}
		name, optional := strings.CutSuffix(w, "?")
		params = append(params, LambdaParam{Name: name, Optional: optional})
	}
	l.Params = params
	l.Explicit = true
	l.Body = strings.TrimLeft(src[len(head)+1:], " \t")
	l.Body = strings.TrimPrefix(l.Body, "\n")
	return l
}

// Invoke evaluates the lambda's body with args bound to its parameters.
// Each argument is defined in a fresh fork of the lambda's scope
// as a function without parameters; a missing optional argument is [NoneValue].
func (l *LambdaValue) Invoke(args ...Value) (Value, error) {
	scope := l.Scope.Fork()
	if !l.Explicit {
		for i, v := range args {
			scope.DefineFunction(ValueFunction(strconv.Itoa(i+1), v))
		}
		return scope.EvalSafe(l.Body, nil)
	}
	required := 0
	for _, p := range l.Params {
		if !p.Optional {
			required++
		}
	}
	if len(args) < required || len(args) > len(l.Params) {
		return nil, &BindingError{
			Function: "lambda",
			Reason:   fmt.Sprintf("want %d to %d arguments, have %d", required, len(l.Params), len(args)),
		}
	}
	for i, p := range l.Params {
		var v Value = NoneValue{}
		if i < len(args) {
			v = args[i]
		}
		scope.DefineFunction(ValueFunction(p.Name, v))
	}
	return scope.EvalSafe(l.Body, nil)
}
