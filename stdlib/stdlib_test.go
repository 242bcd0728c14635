// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stdlib

import (
	"math"
	"strings"
	"testing"
	"testing/fstest"

	qd "github.com/qdlang/quarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func newContext(opts ...qd.Option) *qd.Context {
	return qd.NewContext(append([]qd.Option{qd.WithLibraries(Library())}, opts...)...)
}

func eval(t *testing.T, c *qd.Context, src string) qd.Value {
	t.Helper()
	v, err := c.Eval(src)
	require.NoError(t, err, src)
	return v
}

func text(t *testing.T, v qd.Value) string {
	t.Helper()
	s, err := qd.Stringify(v)
	require.NoError(t, err)
	return s
}

// run parses and expands src in c.
func run(t *testing.T, c *qd.Context, src string) *qd.Document {
	t.Helper()
	doc, err := c.Parse(src)
	require.NoError(t, err)
	require.NoError(t, c.Expand())
	return doc
}

func TestLibraryNames(t *testing.T) {
	seen := make(map[string]bool)
	for _, f := range Library().Functions {
		assert.False(t, seen[f.Name], "duplicate %s", f.Name)
		seen[f.Name] = true
		assert.NotNil(t, f.Invoke, f.Name)
	}
	for _, name := range []string{"var", "function", "foreach", "sum", "get", "localize", "read", "docname", "bold"} {
		assert.True(t, seen[name], name)
	}
}

func TestVar(t *testing.T) {
	c := newContext()
	assert.Equal(t, qd.VoidValue{}, eval(t, c, ".var {x} {5}"))
	assert.Equal(t, "5", text(t, eval(t, c, ".x")))

	child := c.Fork()
	eval(t, child, ".var {x} {6}")
	assert.Equal(t, "6", text(t, eval(t, c, ".x")))

	eval(t, child, ".var {y} {7}")
	assert.Nil(t, c.FunctionByName("y"))
	assert.NotNil(t, child.FunctionByName("y"))
}

func TestVarBlock(t *testing.T) {
	c := newContext()
	run(t, c, ".var {d}\n    - a: 1\n    - b: 2\n")
	assert.Equal(t, "2", text(t, eval(t, c, ".get {b} from:{.d}")))
	assert.Equal(t, qd.NoneValue{}, eval(t, c, ".get {z} from:{.d}"))
}

func TestLet(t *testing.T) {
	c := newContext()
	assert.Equal(t, "hello world", text(t, eval(t, c, ".let {world} {@lambda x: hello .x}")))
	assert.Nil(t, c.FunctionByName("x"))
}

func TestFunction(t *testing.T) {
	c := newContext()
	run(t, c, ".function {greet}\n    who:\n    hi .who\n")
	assert.Equal(t, "hi Ada", text(t, eval(t, c, ".greet {Ada}")))

	eval(t, c, ".function {pair} {@lambda a b?: .a-.b}")
	assert.Equal(t, "1-none", text(t, eval(t, c, ".pair {1}")))
	assert.Equal(t, "1-2", text(t, eval(t, c, ".pair {1} {2}")))

	_, err := c.Eval(".pair")
	var berr *qd.BindingError
	require.ErrorAs(t, err, &berr)
}

func TestForeach(t *testing.T) {
	c := newContext()
	v := eval(t, c, ".foreach {1..3} {@lambda n: .sum {.n} {1}}")
	assert.Equal(t, &qd.OrderedCollection{Items: []qd.Value{qd.Int(2), qd.Int(3), qd.Int(4)}}, v)

	v = eval(t, c, ".foreach {1..2} {item .1}")
	require.IsType(t, &qd.OrderedCollection{}, v)
	assert.Equal(t, "item 1, item 2", text(t, v))
}

func TestFallbackKeepsHeadingsOnce(t *testing.T) {
	// The argument of .bold first fails to evaluate as text and is then
	// read as Markdown: the heading inside is registered once.
	ids := func(src string) []string {
		c := newContext()
		run(t, c, src)
		var out []string
		for _, h := range c.TableOfContents() {
			out = append(out, h.ID)
		}
		return out
	}
	assert.Equal(t, []string{"hi"}, ids(".bold {.text {# Hi} tail}\n"))
	assert.Equal(t, ids(".bold\n    .text {# Hi} tail\n"), ids(".bold {.text {# Hi} tail}\n"))
}

func TestForeachBlockBody(t *testing.T) {
	c := newContext()
	doc := run(t, c, ".foreach {1..2}\n    n:\n    .if {yes}\n        item .n\n")
	out := qd.Dump(doc)
	for _, want := range []string{`text "item 1"`, `text "item 2"`} {
		assert.True(t, strings.Contains(out, want), "missing %s in:\n%s", want, out)
	}
	assert.NotContains(t, out, "missing argument")

	doc = run(t, newContext(), ".foreach {1..2}\n    n:\n    .if {no}\n        item .n\n")
	assert.NotContains(t, qd.Dump(doc), `text "item`)
}

func TestRepeat(t *testing.T) {
	c := newContext()
	v := eval(t, c, ".repeat {3} {@lambda i: .i}")
	assert.Equal(t, &qd.OrderedCollection{Items: []qd.Value{qd.Int(1), qd.Int(2), qd.Int(3)}}, v)

	v = eval(t, c, ".repeat {0} {never}")
	assert.Empty(t, v.(*qd.OrderedCollection).Items)
}

func TestConditionals(t *testing.T) {
	c := newContext()
	assert.Equal(t, "shown", text(t, eval(t, c, ".if {yes} {shown}")))
	assert.Equal(t, qd.VoidValue{}, eval(t, c, ".if {no} {shown}"))
	assert.Equal(t, "shown", text(t, eval(t, c, ".ifnot {false} {shown}")))
	assert.Equal(t, qd.VoidValue{}, eval(t, c, ".ifnot {true} {shown}"))

	_, err := c.Eval(".if {perhaps} {shown}")
	var cerr *qd.CoercionError
	require.ErrorAs(t, err, &cerr)
}

func TestArithmetic(t *testing.T) {
	c := newContext()
	tests := []struct {
		src  string
		want qd.NumberValue
	}{
		{".sum {1} {2}", qd.Int(3)},
		{".sum {1.5} {1}", qd.Float(2.5)},
		{".subtract {1} {3}", qd.Int(-2)},
		{".multiply {4} {-3}", qd.Int(-12)},
		{".multiply {0} {9223372036854775807}", qd.Int(0)},
		{".divide {6} {3}", qd.Int(2)},
		{".divide {1} {2}", qd.Float(0.5)},
		{".sum {9223372036854775807} {1}", qd.Float(math.MaxInt64 + 1.0)},
		{".subtract {-9223372036854775808} {1}", qd.Float(math.MinInt64 - 1.0)},
		{".multiply {9223372036854775807} {2}", qd.Float(2 * float64(math.MaxInt64))},
		{".divide {-9223372036854775808} {-1}", qd.Float(-float64(math.MinInt64))},
		{".divide {-9223372036854775808} {1}", qd.Int(math.MinInt64)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, eval(t, c, tt.src), tt.src)
	}

	_, err := c.Eval(".divide {1} {0}")
	var ierr *qd.InvocationError
	require.ErrorAs(t, err, &ierr)
	assert.Equal(t, "divide", ierr.Function)
	assert.ErrorContains(t, err, "division by zero")

	_, err = c.Eval(".sum {one} {2}")
	var cerr *qd.CoercionError
	require.ErrorAs(t, err, &cerr)
}

func TestGet(t *testing.T) {
	c := newContext()
	assert.Equal(t, qd.Int(2), eval(t, c, ".get {2} from:{1..3}"))
	assert.Equal(t, qd.NoneValue{}, eval(t, c, ".get {5} from:{1..3}"))
	assert.Equal(t, qd.NoneValue{}, eval(t, c, ".get {first} from:{1..3}"))
	assert.Equal(t, qd.Int(3), eval(t, c, ".size {1..3}"))
}

func TestCollectionBlock(t *testing.T) {
	c := newContext()
	run(t, c, ".var {list}\n    - x\n    - y\n    - z\n")
	assert.Equal(t, qd.Int(3), eval(t, c, ".size {.list}"))
	assert.Equal(t, "y", text(t, eval(t, c, ".get {2} from:{.list}")))

	v := eval(t, c, ".foreach {.list} {@lambda s: <.s>}")
	assert.Equal(t, "<x>, <y>, <z>", text(t, v))
}

func TestDictionaryExpands(t *testing.T) {
	c := newContext()
	doc := run(t, c, ".dictionary\n    - a: 1\n")
	call := doc.Blocks[0].(*qd.FunctionCall)
	require.Len(t, call.Children, 1)
	assert.IsType(t, &qd.Table{}, call.Children[0])
}

func TestLocalization(t *testing.T) {
	c := newContext()
	run(t, c, ".localization {greet}\n    - en\n        - hello: Hello\n    - it\n        - hello: Ciao\n")

	_, err := c.Eval(".localize {greet:hello}")
	var lerr *qd.LocalizationError
	require.ErrorAs(t, err, &lerr, "no document language")

	eval(t, c, ".doclang {it}")
	assert.Equal(t, qd.StringValue("Ciao"), eval(t, c, ".localize {greet:hello}"))
	eval(t, c, ".doclang {en-US}")
	assert.Equal(t, qd.StringValue("Hello"), eval(t, c, ".localize {greet:hello}"))

	_, err = c.Eval(".localize {hello}")
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, "want table:key", lerr.Reason)

	_, err = c.Eval(".localize {greet:bye}")
	require.ErrorAs(t, err, &lerr)
}

func TestLocalizationBadLocale(t *testing.T) {
	c := newContext()
	_, err := c.Parse(".localization {t}\n    - not a locale!\n        - k: v\n")
	require.NoError(t, err)
	assert.Error(t, c.Expand())
}

var files = fstest.MapFS{
	"notes.txt":      {Data: []byte("one\ntwo\nthree\n")},
	"parts/inc.qd":   {Data: []byte("# Included\n\n.read {data.txt}\n")},
	"parts/data.txt": {Data: []byte("inner")},
}

func TestRead(t *testing.T) {
	c := newContext(qd.WithFileSystem(files))
	tests := map[string]string{
		".read {notes.txt}":              "one\ntwo\nthree\n",
		".read {/notes.txt}":             "one\ntwo\nthree\n",
		".read {notes.txt} lines:{2..3}": "two\nthree",
		".read {notes.txt} lines:{..1}":  "one",
		".read {notes.txt} lines:{3..}":  "three",
		".read {notes.txt} lines:{5..9}": "",
	}
	for src, want := range tests {
		assert.Equal(t, qd.StringValue(want), eval(t, c, src), src)
	}

	_, err := c.Eval(".read {missing.txt}")
	assert.Error(t, err)

	_, err = newContext().Eval(".read {notes.txt}")
	assert.ErrorContains(t, err, "no file system")
}

func TestInclude(t *testing.T) {
	c := newContext(qd.WithFileSystem(files))
	doc := run(t, c, ".include {parts/inc.qd}\n")
	assert.Contains(t, qd.Dump(doc), `text "inner"`)

	toc := c.TableOfContents()
	require.Len(t, toc, 1)
	assert.Equal(t, "included", toc[0].ID)
}

func TestDocumentInfo(t *testing.T) {
	c := newContext()
	assert.Equal(t, qd.StringValue(""), eval(t, c, ".docname"))
	eval(t, c, ".docname {Book}")
	assert.Equal(t, qd.StringValue("Book"), eval(t, c, ".docname"))
	assert.Equal(t, "Book", c.Info().Name)

	eval(t, c, ".docauthor {Ada}")
	eval(t, c, ".docauthor {Grace}")
	assert.Equal(t, qd.StringValue("Ada, Grace"), eval(t, c, ".docauthor"))

	assert.Equal(t, qd.NoneValue{}, eval(t, c, ".doclang"))
	eval(t, c, ".doclang {en-GB}")
	assert.Equal(t, language.BritishEnglish, c.Info().Lang)
	assert.Equal(t, qd.StringValue("en-GB"), eval(t, c, ".doclang"))
	_, err := c.Eval(".doclang {not a locale!}")
	assert.Error(t, err)

	assert.Equal(t, qd.StringValue("plain"), eval(t, c, ".doctype"))
	eval(t, c, ".doctype {Slides}")
	assert.Equal(t, qd.StringValue("slides"), eval(t, c, ".doctype"))
	_, err = c.Eval(".doctype {poster}")
	var cerr *qd.CoercionError
	require.ErrorAs(t, err, &cerr)
}

func TestText(t *testing.T) {
	c := newContext()
	assert.Equal(t, qd.StringValue("ab"), eval(t, c, ".concatenate {a} {b}"))
	assert.Equal(t, qd.NodeValue{Node: &qd.PageBreak{}}, eval(t, c, ".pagebreak"))

	v := eval(t, c, ".bold {hi}")
	assert.Equal(t, qd.NodeValue{Node: &qd.Strong{Inner: []qd.Inline{&qd.Text{Text: "hi"}}}}, v)

	v = eval(t, c, ".code {go} {x := 1}")
	assert.Equal(t, qd.NodeValue{Node: &qd.CodeBlock{Lang: "go", Text: "x := 1\n"}}, v)

	v = eval(t, c, ".text {*hi*}")
	m, ok := v.(*qd.MarkdownContent)
	require.True(t, ok, "have %T", v)
	require.Len(t, m.Children, 1)
	assert.Equal(t, "paragraph\n  emphasis\n    text \"hi\"\n", qd.Dump(m.Children[0]))
}

func TestDocument(t *testing.T) {
	c := newContext()
	doc := run(t, c, ".docname {Notes}\n\n# .docname\n\n.repeat {2}\n    n:\n    Line .n\n")
	assert.Equal(t, "Notes", c.Info().Name)

	toc := c.TableOfContents()
	require.Len(t, toc, 1)
	assert.Equal(t, "Notes", qd.PlainText(toc[0].Text))

	out := qd.Dump(doc)
	for _, want := range []string{`text "Line 1"`, `text "Line 2"`} {
		assert.True(t, strings.Contains(out, want), "missing %s in:\n%s", want, out)
	}
}
