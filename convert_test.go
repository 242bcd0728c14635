// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quarkdown

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListToDictionary(t *testing.T) {
	c := newTestContext()
	v, err := c.Coerce(DynamicValue{V: "- keyA: 1\n- keyB\n  - keyBA: 2\n- keyC\n- keyD: .a {x}\n"}, TypeDictionary)
	require.NoError(t, err)
	d := v.(*DictionaryValue)

	assert.Equal(t, []string{"keyA", "keyB", "keyC", "keyD"}, d.Keys())
	want := map[string]any{
		"keyA": "1",
		"keyB": map[string]any{"keyBA": "2"},
		"keyC": nil,
		"keyD": "ax",
	}
	if diff := cmp.Diff(want, d.Unwrap()); diff != "" {
		t.Errorf("dictionary (-want +have):\n%s", diff)
	}
	assert.Empty(t, c.Pending(), "data lists do not register calls")
}

func TestListToDictionaryErrors(t *testing.T) {
	c := newTestContext()
	for _, src := range []string{
		"- a: 1\n- > quoted\n",
		"- a: 1\n  - b: 2\n",
	} {
		_, err := c.Coerce(DynamicValue{V: src}, TypeDictionary)
		var serr *StructuralError
		require.ErrorAs(t, err, &serr, src)
	}
}

func TestListToCollection(t *testing.T) {
	c := newTestContext()
	v, err := c.Coerce(DynamicValue{V: "- 1\n- two\n- key:\n  - a\n  - b\n"}, TypeIterable)
	require.NoError(t, err)
	want := []any{
		"1",
		"two",
		map[string]any{"key": []any{"a", "b"}},
	}
	if diff := cmp.Diff(want, v.Unwrap()); diff != "" {
		t.Errorf("collection (-want +have):\n%s", diff)
	}
}

func TestListToCollectionNested(t *testing.T) {
	c := newTestContext()
	doc, err := c.Parse("- a\n-\n  - b\n  - c\n")
	require.NoError(t, err)
	l := doc.Blocks[0].(*List)
	col, err := c.ListToCollection(l)
	require.NoError(t, err)
	want := []any{"a", []any{"b", "c"}}
	if diff := cmp.Diff(want, col.Unwrap()); diff != "" {
		t.Errorf("collection (-want +have):\n%s", diff)
	}
}

func TestCoerceNotAList(t *testing.T) {
	c := newTestContext()
	for _, src := range []string{"just text", "- a\n\nparagraph\n"} {
		_, err := c.Coerce(DynamicValue{V: src}, TypeDictionary)
		var cerr *CoercionError
		require.ErrorAs(t, err, &cerr, src)
	}
}

func TestCollectionToList(t *testing.T) {
	l, err := CollectionToList([]Value{StringValue("x"), Int(2)}, true)
	require.NoError(t, err)
	assert.Equal(t, "list ordered start=1 tight\n"+
		"  item\n"+
		"    paragraph\n"+
		"      text \"x\"\n"+
		"  item\n"+
		"    paragraph\n"+
		"      text \"2\"\n", Dump(l))
}
