// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quarkdown

import (
	"fmt"
	"strings"
)

// A StructuralError reports source text, or a parsed node,
// whose shape does not fit the construct it was used as:
// an unterminated function argument, or a list item that
// cannot be read as a collection or dictionary entry.
type StructuralError struct {
	Text   string // offending source text or node description
	Reason string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("malformed %s: %q", e.Reason, shorten(e.Text))
}

// A CoercionError reports a raw value that cannot be
// converted to the static type a parameter requires.
type CoercionError struct {
	Raw    string
	Target ValueType
	Reason string
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("illegal raw value %q for %s: %s", shorten(e.Raw), e.Target, e.Reason)
}

// An UnresolvedFunctionError reports a call to a name
// that no context in the scope chain and no library defines.
type UnresolvedFunctionError struct {
	Name       string
	Suggestion string // closest known name, if any
}

func (e *UnresolvedFunctionError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unresolved function %q (did you mean %q?)", e.Name, e.Suggestion)
	}
	return fmt.Sprintf("unresolved function %q", e.Name)
}

// An EvaluationError reports an expression whose result
// is incompatible with its syntactic context, such as a node
// concatenated into text. Safe evaluation recovers from it
// by substituting a fallback value.
type EvaluationError struct {
	Expr   string
	Reason string
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("cannot evaluate %q: %s", shorten(e.Expr), e.Reason)
}

// A LocalizationError reports a missing locale, table, or key.
type LocalizationError struct {
	Table  string
	Locale string
	Key    string
	Reason string
}

func (e *LocalizationError) Error() string {
	return fmt.Sprintf("localization %s:%s (locale %q): %s", e.Table, e.Key, e.Locale, e.Reason)
}

// A BindingError reports call arguments that do not match
// the parameters of the resolved function.
type BindingError struct {
	Function string
	Param    string
	Reason   string
}

func (e *BindingError) Error() string {
	if e.Param == "" {
		return fmt.Sprintf("%s: %s", e.Function, e.Reason)
	}
	return fmt.Sprintf("%s: parameter %s: %s", e.Function, e.Param, e.Reason)
}

// An InvocationError wraps an error raised while executing a function call.
type InvocationError struct {
	Function string
	Span     Span
	Err      error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf(".%s at %d: %v", e.Function, e.Span.Start, e.Err)
}

func (e *InvocationError) Unwrap() error { return e.Err }

// shorten trims long text for error messages.
func shorten(s string) string {
	const max = 60
	s = strings.ReplaceAll(s, "\n", `\n`)
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
