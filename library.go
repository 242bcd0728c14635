// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quarkdown

import (
	"fmt"
	"strings"
)

// A Parameter is one parameter of a [Function].
type Parameter struct {
	Name     string
	Type     ValueType
	Enum     []string // choices, for TypeEnum
	Optional bool
	Default  Value // value of an omitted optional parameter; NoneValue if nil

	// Body marks the parameter that receives a block call's indented body.
	Body bool
}

// A Function is a named operation callable from a document.
// Invoke receives the bound arguments and the calling context
// through its [*Invocation].
type Function struct {
	Name   string
	Params []Parameter
	Invoke func(*Invocation) (Value, error)
}

// A Library is a named set of functions.
type Library struct {
	Name      string
	Functions []*Function
}

// Lookup returns the function in l with the given name, or nil.
func (l *Library) Lookup(name string) *Function {
	for _, f := range l.Functions {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// ValueFunction returns a function without parameters that returns v.
// Variables and lambda parameters are such functions.
func ValueFunction(name string, v Value) *Function {
	return &Function{
		Name:   name,
		Invoke: func(*Invocation) (Value, error) { return v, nil },
	}
}

// An Invocation is a single execution of a [Function]:
// its arguments, coerced to the parameter types, and the context
// of the call.
type Invocation struct {
	Context  *Context
	Call     *FunctionCall
	Function *Function
	args     map[string]Value
}

// Arg returns the argument bound to the named parameter.
// An omitted optional parameter without a default is [NoneValue].
func (x *Invocation) Arg(name string) Value {
	if v, ok := x.args[name]; ok {
		return v
	}
	return NoneValue{}
}

// Has reports whether the named parameter received an argument
// or has a default.
func (x *Invocation) Has(name string) bool {
	v, ok := x.args[name]
	if !ok {
		return false
	}
	_, none := v.(NoneValue)
	return !none
}

// Text returns the argument bound to name as text,
// or "" for an omitted optional parameter.
// Arguments without a textual form, such as Markdown content,
// are an [*EvaluationError].
func (x *Invocation) Text(name string) (string, error) {
	if !x.Has(name) {
		return "", nil
	}
	return Stringify(x.Arg(name))
}

// String is like [Invocation.Text] for a parameter of [TypeString],
// whose argument is coerced to text when bound.
// It panics if the argument has no textual form.
func (x *Invocation) String(name string) string {
	s, err := x.Text(name)
	if err != nil {
		panic(fmt.Sprintf("quarkdown: %s: parameter %s: %v", x.Function.Name, name, err))
	}
	return s
}

// call binds the arguments of call to the parameters of f and invokes f.
// Errors from f itself are wrapped in an [*InvocationError].
func (f *Function) call(call *FunctionCall) (Value, error) {
	args, err := f.bind(call)
	if err != nil {
		return nil, err
	}
	x := &Invocation{Context: call.Context, Call: call, Function: f, args: args}
	v, err := f.Invoke(x)
	if err != nil {
		if _, ok := err.(*InvocationError); ok {
			return nil, err
		}
		return nil, &InvocationError{Function: f.Name, Span: call.Span, Err: err}
	}
	if v == nil {
		v = VoidValue{}
	}
	return v, nil
}

// bind matches the arguments of call to the parameters of f.
// Named arguments go to the parameter of that name; the body goes to
// the parameter marked Body or else to the next free parameter;
// positional arguments fill the remaining parameters in order.
// Each argument is then evaluated and coerced to its parameter's type.
func (f *Function) bind(call *FunctionCall) (map[string]Value, error) {
	bound := make(map[string]Expression, len(f.Params))
	index := make(map[string]int, len(f.Params))
	for i, p := range f.Params {
		index[p.Name] = i
	}
	bindErr := func(param, format string, args ...any) error {
		return &BindingError{Function: f.Name, Param: param, Reason: fmt.Sprintf(format, args...)}
	}

	var positional []*Argument
	var body *Argument
	for _, a := range call.Args {
		switch {
		case a.Body:
			body = a
		case a.Name != "":
			if _, ok := index[a.Name]; !ok {
				return nil, bindErr(a.Name, "no such parameter")
			}
			if _, dup := bound[a.Name]; dup {
				return nil, bindErr(a.Name, "argument given twice")
			}
			bound[a.Name] = a.Expr
		default:
			positional = append(positional, a)
		}
	}
	if body != nil {
		target := -1
		for i, p := range f.Params {
			if p.Body {
				target = i
				break
			}
		}
		if target >= 0 {
			if _, dup := bound[f.Params[target].Name]; dup {
				return nil, bindErr(f.Params[target].Name, "argument given twice")
			}
			bound[f.Params[target].Name] = body.Expr
		} else {
			positional = append(positional, body)
		}
	}
	next := 0
	for _, a := range positional {
		for next < len(f.Params) && (bound[f.Params[next].Name] != nil || f.Params[next].Body && body != nil) {
			next++
		}
		if next >= len(f.Params) {
			return nil, bindErr("", "too many arguments (want at most %d)", len(f.Params))
		}
		bound[f.Params[next].Name] = a.Expr
		next++
	}

	out := make(map[string]Value, len(f.Params))
	for _, p := range f.Params {
		e, ok := bound[p.Name]
		if !ok {
			if !p.Optional {
				return nil, bindErr(p.Name, "missing argument")
			}
			if p.Default != nil {
				out[p.Name] = p.Default
			} else {
				out[p.Name] = NoneValue{}
			}
			continue
		}
		if se, ok := e.(*SafeExpression); ok && p.Type == TypeLambda && !strings.HasPrefix(se.Raw, lambdaMarker) {
			// The source of a lambda is its body, not an expression.
			out[p.Name] = se.Context.ParseLambda(se.Raw, false)
			continue
		}
		v, err := e.Eval()
		if err != nil {
			return nil, err
		}
		if _, none := v.(NoneValue); none && p.Optional {
			out[p.Name] = v
			continue
		}
		v, err = call.Context.Coerce(v, p.Type, p.Enum...)
		if err != nil {
			return nil, err
		}
		out[p.Name] = v
	}
	return out, nil
}
