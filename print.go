// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quarkdown

import (
	"bytes"
	"strconv"
	"strings"
)

// A printer accumulates the outline dump of a tree or the plain text of inlines.
// In the dump, each node is one line, indented two spaces per level.
type printer struct {
	buf    bytes.Buffer
	prefix []byte
}

// line writes one dump line at the current indentation.
func (p *printer) line(list ...string) {
	p.buf.Write(p.prefix)
	for _, s := range list {
		p.buf.WriteString(s)
	}
	p.buf.WriteByte('\n')
}

// text writes plain text.
func (p *printer) text(list ...string) {
	for _, s := range list {
		p.buf.WriteString(s)
	}
}

func (p *printer) push(s string) int {
	n := len(p.prefix)
	p.prefix = append(p.prefix, s...)
	return n
}

func (p *printer) pop(n int) {
	p.prefix = p.prefix[:n]
}

// blocks dumps bs one level deeper.
func (p *printer) blocks(bs []Block) {
	defer p.pop(p.push("  "))
	for _, b := range bs {
		b.printDump(p)
	}
}

// inlines dumps xs one level deeper.
func (p *printer) inlines(xs []Inline) {
	defer p.pop(p.push("  "))
	for _, x := range xs {
		x.printDump(p)
	}
}

// plain writes the plain text of xs.
func (p *printer) plain(xs []Inline) {
	for _, x := range xs {
		x.printText(p)
	}
}

// quote returns s as a Go string literal.
func quote(s string) string {
	return strconv.Quote(s)
}

// attr returns " key=value" with value quoted, or "" if value is empty.
func attr(key, value string) string {
	if value == "" {
		return ""
	}
	return " " + key + "=" + quote(value)
}

// flag returns " name" if set, or "".
func flag(name string, set bool) string {
	if !set {
		return ""
	}
	return " " + name
}

// Dump returns an indented outline of the tree rooted at n,
// one node per line, as used by tests and the command line tool.
func Dump(n Node) string {
	var p printer
	n.printDump(&p)
	return p.buf.String()
}

// PlainText returns the text of xs with all formatting removed.
func PlainText(xs []Inline) string {
	var p printer
	p.plain(xs)
	return p.buf.String()
}

// dumpAlign formats table column alignments.
func dumpAlign(align []string) string {
	out := make([]string, len(align))
	for i, a := range align {
		if a == "" {
			a = "none"
		}
		out[i] = a
	}
	return strings.Join(out, ",")
}
