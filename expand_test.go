// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quarkdown

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandNested(t *testing.T) {
	c := newTestContext()
	doc, err := c.Parse(".md\n    Inner .a {z}\n")
	require.NoError(t, err)
	require.Len(t, c.Pending(), 1)
	require.NoError(t, c.Expand())
	assert.Empty(t, c.Pending())
	assert.Equal(t, `document
  call md block
    arg body "Inner .a {z}"
    paragraph
      text "Inner "
      call a inline
        arg "z"
        text "az"
`, Dump(doc))
}

func TestExpandLenient(t *testing.T) {
	c := newTestContext(WithStrict(false))
	doc, err := c.Parse(".missing {x}\n\nText .a {y} end.\n")
	require.NoError(t, err)
	require.NoError(t, c.Expand())
	assert.Equal(t, `document
  call missing block
    arg "x"
    error "missing" "unresolved function \"missing\""
  paragraph
    text "Text "
    call a inline
      arg "y"
      text "ay"
    text " end."
`, Dump(doc))

	call := doc.Blocks[0].(*FunctionCall)
	require.Len(t, call.Children, 1)
	assert.Equal(t, "[missing: unresolved function \"missing\"]", PlainText([]Inline{call.Children[0].(Inline)}))
}

func TestExpandStrict(t *testing.T) {
	c := newTestContext()
	_, err := c.Parse(".missing {x}\n\n.a {y}\n")
	require.NoError(t, err)
	err = c.Expand()
	var uerr *UnresolvedFunctionError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, "missing", uerr.Name)

	pending := c.Pending()
	require.Len(t, pending, 1)
	assert.Equal(t, "a", pending[0].Name)
}

func TestExpandBindingErrors(t *testing.T) {
	for _, src := range []string{
		".a {1} {2}\n",
		".a x:{1} x:{2}\n",
		".a nope:{1}\n",
		".b {1}\n",
	} {
		c := newTestContext()
		_, err := c.Parse(src)
		require.NoError(t, err, src)
		var berr *BindingError
		require.ErrorAs(t, c.Expand(), &berr, src)
	}
}

func TestExpandOutputs(t *testing.T) {
	lib := &Library{Functions: []*Function{
		{Name: "num", Invoke: func(*Invocation) (Value, error) { return Int(7), nil }},
		{Name: "void", Invoke: func(*Invocation) (Value, error) { return nil, nil }},
		{Name: "list", Invoke: func(*Invocation) (Value, error) {
			return &OrderedCollection{Items: []Value{StringValue("x"), StringValue("y")}}, nil
		}},
		{Name: "dict", Invoke: func(*Invocation) (Value, error) {
			d := NewDictionary()
			d.Put("k", Int(1))
			return d, nil
		}},
		{Name: "raw", Invoke: func(*Invocation) (Value, error) {
			return DynamicValue{V: "*emph*"}, nil
		}},
	}}
	c := NewContext(WithLibraries(lib))
	doc, err := c.Parse(".num\n\n.void\n\n.list\n\n.dict\n\n.raw\n")
	require.NoError(t, err)
	require.NoError(t, c.Expand())
	assert.Equal(t, `document
  call num block
    text "7"
  call void block
  call list block
    text "x"
    text "y"
  call dict block
    table align=none,none
      header
        cell
        cell
      row
        cell
          text "k"
        cell
          text "1"
  call raw block
    paragraph
      emphasis
        text "emph"
`, Dump(doc))
}

func TestPipelineSubdocuments(t *testing.T) {
	fsys := fstest.MapFS{
		"ch/one.qd": {Data: []byte("# One\n\nSee [two](two.qd) and [back](../main.qd).\n")},
		"ch/two.qd": {Data: []byte("# Two\n\n.a {2}\n")},
	}
	res, err := NewPipeline(WithFileSystem(fsys), WithLibraries(testLibrary)).Run("main.qd", "# Main\n\n[Chapter](ch/one.qd)\n")
	require.NoError(t, err)

	var names []string
	for _, sub := range res.Subdocuments {
		names = append(names, sub.Name)
	}
	assert.Equal(t, []string{"ch/one.qd", "ch/two.qd"}, names)

	require.Len(t, res.Context.TableOfContents(), 1)
	two := res.Subdocuments[1]
	require.Len(t, two.Context.TableOfContents(), 1)
	assert.Equal(t, "Two", PlainText(two.Context.TableOfContents()[0].Text))
	assert.Equal(t, "ch/two.qd", two.Context.Info().Name)

	call := two.Document.Blocks[1].(*FunctionCall)
	assert.Equal(t, `call a block
  arg "2"
  text "a2"
`, Dump(call))
}

func TestPipelineMissingSubdocument(t *testing.T) {
	src := "[Gone](gone.qd)\n"
	_, err := NewPipeline(WithFileSystem(fstest.MapFS{})).Run("main.qd", src)
	assert.Error(t, err)

	res, err := NewPipeline(WithFileSystem(fstest.MapFS{}), WithStrict(false)).Run("main.qd", src)
	require.NoError(t, err)
	assert.Empty(t, res.Subdocuments)
}
