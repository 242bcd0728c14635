// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quarkdown

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testLibrary holds small functions for exercising evaluation.
var testLibrary = &Library{
	Name: "test",
	Functions: []*Function{
		{
			Name:   "a",
			Params: []Parameter{{Name: "x", Type: TypeString}},
			Invoke: func(x *Invocation) (Value, error) {
				return StringValue("a" + x.String("x")), nil
			},
		},
		{
			Name:   "b",
			Params: []Parameter{{Name: "x", Type: TypeString}, {Name: "y", Type: TypeString}},
			Invoke: func(x *Invocation) (Value, error) {
				return StringValue(x.String("x") + "," + x.String("y")), nil
			},
		},
		{
			Name: "node",
			Invoke: func(*Invocation) (Value, error) {
				return NodeValue{&Text{Text: "N"}}, nil
			},
		},
		{
			Name:   "md",
			Params: []Parameter{{Name: "body", Type: TypeMarkdown}},
			Invoke: func(x *Invocation) (Value, error) {
				return x.Arg("body"), nil
			},
		},
		{
			Name:   "twice",
			Params: []Parameter{{Name: "n", Type: TypeNumber}},
			Invoke: func(x *Invocation) (Value, error) {
				return Int(2 * x.Arg("n").(NumberValue).Int64()), nil
			},
		},
	},
}

func newTestContext(opts ...Option) *Context {
	return NewContext(append([]Option{WithLibraries(testLibrary)}, opts...)...)
}

// shape renders an expression as name(args...) with calls
// written as nested arguments, so that a chain and its nested
// form render the same.
func shape(e Expression) string {
	switch e := e.(type) {
	case *UncheckedCall:
		return shape(e.Call)
	case *FunctionCall:
		var args []string
		for _, a := range e.Args {
			args = append(args, shape(a.Expr))
		}
		return e.Name + "(" + strings.Join(args, ",") + ")"
	case *SafeExpression:
		x, err := ParseExpression(e.Raw, e.Context)
		if err != nil {
			return "error"
		}
		return shape(x)
	case DynamicValue:
		return fmt.Sprintf("%q", e.V)
	}
	return fmt.Sprintf("%T", e)
}

func onlyCall(t *testing.T, c *Context, src string) *FunctionCall {
	t.Helper()
	doc, err := c.Parse(src)
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 1)
	call, ok := doc.Blocks[0].(*FunctionCall)
	require.True(t, ok, "not a call: %s", Dump(doc))
	return call
}

func TestChainEquivalence(t *testing.T) {
	chained := onlyCall(t, newTestContext(), ".a {1}::b {2}\n")
	nested := onlyCall(t, newTestContext(), ".b {.a {1}} {2}\n")

	assert.Equal(t, `b(a("1"),"2")`, shape(chained))
	assert.Equal(t, shape(nested), shape(chained))

	v1, err := chained.Eval()
	require.NoError(t, err)
	v2, err := nested.Eval()
	require.NoError(t, err)
	assert.Equal(t, StringValue("a1,2"), v1)
	assert.Equal(t, v1, v2)
}

func TestChainRegistersLastCall(t *testing.T) {
	c := newTestContext()
	call := onlyCall(t, c, ".a {1}::b {2}\n")
	pending := c.Pending()
	require.Len(t, pending, 1)
	assert.Same(t, call, pending[0])
}

func TestParseExpression(t *testing.T) {
	c := newTestContext()

	e, err := ParseExpression("plain text", c)
	require.NoError(t, err)
	assert.Equal(t, DynamicValue{V: "plain text"}, e)

	e, err = ParseExpression(".a {x}", c)
	require.NoError(t, err)
	assert.IsType(t, &FunctionCall{}, e)

	e, err = ParseExpression("see .a {x} now", c)
	require.NoError(t, err)
	require.IsType(t, &ComposedExpression{}, e)
	assert.Len(t, e.(*ComposedExpression).Parts, 3)

	v, err := e.Eval()
	require.NoError(t, err)
	assert.Equal(t, DynamicValue{V: "see ax now"}, v)

	e, err = ParseExpression(`not \.a {x}`, c)
	require.NoError(t, err)
	assert.Equal(t, DynamicValue{V: `not \.a {x}`}, e)
}

func TestParseExpressionBaseFlavor(t *testing.T) {
	c := newTestContext(WithFlavor(BaseMarkdown))
	e, err := ParseExpression(".a {x}", c)
	require.NoError(t, err)
	assert.Equal(t, DynamicValue{V: ".a {x}"}, e)
}

func TestParseExpressionBlockCall(t *testing.T) {
	c := newTestContext()
	e, err := ParseExpression("x\n.md\n    body text\nafter", c)
	require.NoError(t, err)
	ce, ok := e.(*ComposedExpression)
	require.True(t, ok, "have %T", e)
	require.Len(t, ce.Parts, 3)
	assert.Equal(t, DynamicValue{V: "x\n"}, ce.Parts[0])
	call, ok := ce.Parts[1].(*FunctionCall)
	require.True(t, ok, "have %T", ce.Parts[1])
	assert.True(t, call.IsBlock)
	require.Len(t, call.Args, 1)
	assert.True(t, call.Args[0].Body)
	assert.Equal(t, DynamicValue{V: "body text"}, call.Args[0].Expr)
	assert.Equal(t, DynamicValue{V: "after"}, ce.Parts[2])

	// Without indented lines, or not at a line start, calls stay inline.
	for _, raw := range []string{".md {a}\nafter", "x .md\n    y"} {
		e, err := ParseExpression(raw, c)
		require.NoError(t, err, raw)
		for _, p := range e.(*ComposedExpression).Parts {
			if call, ok := p.(*FunctionCall); ok {
				assert.False(t, call.IsBlock, raw)
			}
		}
	}
}

func TestEvalSafeFallback(t *testing.T) {
	const raw = "Hello .md {see .node}"
	c := newTestContext()
	v, err := c.EvalSafe(raw, nil)
	require.NoError(t, err)
	m, ok := v.(*MarkdownContent)
	require.True(t, ok, "have %T", v)

	direct, err := newTestContext().ParseBlocks(raw)
	require.NoError(t, err)
	var want []Node
	for _, b := range direct {
		want = append(want, b)
	}
	assert.Equal(t, dumpAll(want), dumpAll(m.Children))

	// The speculative evaluation registered .node while reading
	// the argument of .md; only the call in the fallback tree remains.
	pending := c.Pending()
	require.Len(t, pending, 1)
	var found *FunctionCall
	for _, n := range m.Children {
		Walk(n, func(n Node) bool {
			if call, ok := n.(*FunctionCall); ok && found == nil {
				found = call
			}
			return true
		})
	}
	require.NotNil(t, found)
	assert.Equal(t, "md", found.Name)
	assert.Same(t, found, pending[0])
}

func headingIDs(c *Context) []string {
	var ids []string
	for _, h := range c.TableOfContents() {
		ids = append(ids, h.ID)
	}
	return ids
}

func TestEvalSafeFallbackHeadings(t *testing.T) {
	const raw = ".md {# Hi} tail"
	c := newTestContext()
	_, err := c.EvalSafe(raw, nil)
	require.NoError(t, err)
	assert.Empty(t, c.TableOfContents())
	require.Len(t, c.Pending(), 1)
	require.NoError(t, c.Expand())

	direct := newTestContext()
	_, err = direct.ParseBlocks(raw)
	require.NoError(t, err)
	require.NoError(t, direct.Expand())

	assert.Equal(t, []string{"hi"}, headingIDs(direct))
	assert.Equal(t, headingIDs(direct), headingIDs(c))
}

func TestEvalSafeFallbackDefinitions(t *testing.T) {
	c := newTestContext()
	for _, raw := range []string{".md {[l]: /url} tail", ".md {[^n]: Note.} tail"} {
		_, err := c.EvalSafe(raw, nil)
		require.NoError(t, err, raw)
	}
	_, ok := c.LinkDefinition("l")
	assert.False(t, ok, "link definition kept after rollback")
	_, ok = c.Footnote("n")
	assert.False(t, ok, "footnote definition kept after rollback")

	require.NoError(t, c.Expand())
	_, ok = c.LinkDefinition("l")
	assert.True(t, ok)
	_, ok = c.Footnote("n")
	assert.True(t, ok)
}

func TestEvalSafeFallbackMediaAndLinks(t *testing.T) {
	c := newTestContext(WithName("main.qd"))
	_, err := c.EvalSafe(".md {![p](pic.png) [s](s.qd)} tail", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Media().Len())
	assert.Empty(t, c.Subdocuments().Targets("main.qd"))

	require.NoError(t, c.Expand())
	assert.Equal(t, 1, c.Media().Len())
	assert.Equal(t, []string{"s.qd"}, c.Subdocuments().Targets("main.qd"))
}

func TestEvalSafeCustomFallback(t *testing.T) {
	c := newTestContext()
	v, err := c.EvalSafe("x .node", func() (Value, error) { return StringValue("fallback"), nil })
	require.NoError(t, err)
	assert.Equal(t, StringValue("fallback"), v)
	assert.Empty(t, c.Pending())
}

func TestEvalSafeOtherErrors(t *testing.T) {
	c := newTestContext()
	_, err := c.EvalSafe(".missing", nil)
	var uerr *UnresolvedFunctionError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, "missing", uerr.Name)
}

func TestResolveSuggestion(t *testing.T) {
	c := newTestContext()
	_, err := c.Resolve("twise")
	var uerr *UnresolvedFunctionError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, "twice", uerr.Suggestion)
}

func TestParseLambda(t *testing.T) {
	c := newTestContext()
	tests := []struct {
		src      string
		params   []LambdaParam
		body     string
		explicit bool
	}{
		{"x y: .x .y", []LambdaParam{{Name: "x"}, {Name: "y"}}, ".x .y", true},
		{"x y?:\nbody", []LambdaParam{{Name: "x"}, {Name: "y", Optional: true}}, "body", true},
		{".1 and .2", nil, ".1 and .2", false},
		{"Note, this: text", nil, "Note, this: text", false},
	}
	for _, tt := range tests {
		l := c.ParseLambda(tt.src, false)
		assert.Equal(t, tt.params, l.Params, tt.src)
		assert.Equal(t, tt.body, l.Body, tt.src)
		assert.Equal(t, tt.explicit, l.Explicit, tt.src)
	}

	l := c.ParseLambda(": constant", true)
	assert.True(t, l.Explicit)
	assert.Empty(t, l.Params)
	assert.Equal(t, "constant", l.Body)
}

func TestLambdaInvoke(t *testing.T) {
	c := newTestContext()

	l := c.ParseLambda("x y?: .x/.y", false)
	v, err := l.Invoke(StringValue("1"))
	require.NoError(t, err)
	assert.Equal(t, DynamicValue{V: "1/none"}, v)

	_, err = l.Invoke()
	var berr *BindingError
	require.ErrorAs(t, err, &berr)

	implicit := c.ParseLambda(".twice {.1}", false)
	v, err = implicit.Invoke(StringValue("21"))
	require.NoError(t, err)
	assert.Equal(t, Int(42), v)

	// Parameters are local to the invocation.
	assert.Nil(t, c.FunctionByName("x"))
	assert.Nil(t, c.FunctionByName("1"))
}

func TestScopeReassignment(t *testing.T) {
	root := newTestContext()
	root.DefineFunction(ValueFunction("x", Int(1)))
	child := root.Fork()
	grandchild := child.Fork()

	require.True(t, grandchild.SetFunction(ValueFunction("x", Int(2))))
	v, err := root.Eval(".x")
	require.NoError(t, err)
	assert.Equal(t, Int(2), v)

	child.DefineFunction(ValueFunction("y", Int(3)))
	assert.Nil(t, root.FunctionByName("y"))
	assert.NotNil(t, grandchild.FunctionByName("y"))

	assert.False(t, child.SetFunction(ValueFunction("undefined", Int(0))))
	assert.Nil(t, root.FunctionByName("undefined"))

	// A local definition shadows the library.
	child.DefineFunction(ValueFunction("a", StringValue("shadow")))
	v, err = grandchild.Eval(".a")
	require.NoError(t, err)
	assert.Equal(t, StringValue("shadow"), v)
	v, err = root.Eval(".a {q}")
	require.NoError(t, err)
	assert.Equal(t, StringValue("aq"), v)
}

func TestLockedSuppressesRegistration(t *testing.T) {
	c := newTestContext()
	err := c.Locked(func() error {
		_, err := c.Parse("# Heading\n\n.a {x}\n\n[l]: /url\n")
		return err
	})
	require.NoError(t, err)
	assert.Empty(t, c.Pending())
	assert.Empty(t, c.TableOfContents())
	_, ok := c.LinkDefinition("l")
	assert.False(t, ok)
}

func TestZeroCallExpansion(t *testing.T) {
	c := newTestContext()
	doc, err := c.Parse("# Title\n\nSome *text* and a [link](/x).\n\n- a\n- b\n")
	require.NoError(t, err)
	before := Dump(doc)
	require.NoError(t, c.Expand())
	assert.Equal(t, before, Dump(doc))
}

func TestResolveUnchecked(t *testing.T) {
	c := newTestContext()
	late := c.ResolveUnchecked("late")
	call := c.ResolveUnchecked("a", &Argument{Expr: DynamicValue{V: "q"}})
	assert.Empty(t, c.Pending())

	_, err := late.Eval()
	var uerr *UnresolvedFunctionError
	require.ErrorAs(t, err, &uerr)

	c.DefineFunction(ValueFunction("late", Int(1)))
	v, err := late.Eval()
	require.NoError(t, err)
	assert.Equal(t, Int(1), v)

	v, err = call.Eval()
	require.NoError(t, err)
	assert.Equal(t, StringValue("aq"), v)
}

func TestInvocationText(t *testing.T) {
	x := &Invocation{
		Function: &Function{Name: "f"},
		args: map[string]Value{
			"s":    StringValue("text"),
			"node": NodeValue{Node: &PageBreak{}},
			"none": NoneValue{},
		},
	}
	s, err := x.Text("s")
	require.NoError(t, err)
	assert.Equal(t, "text", s)
	assert.Equal(t, "text", x.String("s"))

	s, err = x.Text("none")
	require.NoError(t, err)
	assert.Equal(t, "", s)

	_, err = x.Text("node")
	var eerr *EvaluationError
	require.ErrorAs(t, err, &eerr)
	assert.PanicsWithValue(t, "quarkdown: f: parameter node: "+err.Error(), func() { x.String("node") })
}
