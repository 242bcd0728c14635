// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quarkdown

import (
	"net/url"
	"path"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/emirpasic/gods/sets/linkedhashset"
)

// SubdocumentExt is the file extension of Quarkdown sources.
const SubdocumentExt = ".qd"

// A SubdocumentGraph records which documents link to which
// other Quarkdown sources, in order of first link.
type SubdocumentGraph struct {
	edges *linkedhashmap.Map // document name -> *linkedhashset.Set of targets
}

// NewSubdocumentGraph returns an empty graph.
func NewSubdocumentGraph() *SubdocumentGraph {
	return &SubdocumentGraph{edges: linkedhashmap.New()}
}

// Link records a link from the document from to the source to,
// and reports whether the link is new.
func (g *SubdocumentGraph) Link(from, to string) bool {
	v, ok := g.edges.Get(from)
	if !ok {
		v = linkedhashset.New()
		g.edges.Put(from, v)
	}
	set := v.(*linkedhashset.Set)
	if set.Contains(to) {
		return false
	}
	set.Add(to)
	return true
}

// unlink removes a link recorded by Link.
func (g *SubdocumentGraph) unlink(from, to string) {
	v, ok := g.edges.Get(from)
	if !ok {
		return
	}
	set := v.(*linkedhashset.Set)
	set.Remove(to)
	if set.Empty() {
		g.edges.Remove(from)
	}
}

// Targets returns the sources linked from the document from.
func (g *SubdocumentGraph) Targets(from string) []string {
	v, ok := g.edges.Get(from)
	if !ok {
		return nil
	}
	var out []string
	for _, t := range v.(*linkedhashset.Set).Values() {
		out = append(out, t.(string))
	}
	return out
}

// Documents returns the documents with outgoing links.
func (g *SubdocumentGraph) Documents() []string {
	var out []string
	for _, k := range g.edges.Keys() {
		out = append(out, k.(string))
	}
	return out
}

// subdocumentTarget returns the cleaned path of a link to a local
// Quarkdown source, without any query or fragment.
func subdocumentTarget(u string) (string, bool) {
	if !isLocalPath(u) {
		return "", false
	}
	parsed, err := url.Parse(u)
	if err != nil || path.Ext(parsed.Path) != SubdocumentExt {
		return "", false
	}
	return path.Clean(parsed.Path), true
}
