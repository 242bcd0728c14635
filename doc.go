// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quarkdown

// A Node is a node of a parsed document: a [Block] or an [Inline].
// Nodes form a closed set defined by this package.
type Node interface {
	printDump(*printer)
}

// A Block is a block-level node: a [Document], [Paragraph], [Heading],
// [List], [ListItem], [Quote], [Table], [CodeBlock], [Math], [HTMLBlock],
// [ThematicBreak], [PageBreak], [LinkDefinition], [FootnoteDefinition],
// [Comment], [FunctionCall], or [ErrorBox].
type Block interface {
	Node
	Block()
}

// An Inline is an inline node: a [Text], [CodeSpan], [MathSpan],
// [Emphasis], [Strong], [StrongEmphasis], [Strikethrough], [Link],
// [ReferenceLink], [Image], [ReferenceImage], [LineBreak],
// [FootnoteReference], [Comment], [FunctionCall], or [ErrorBox].
type Inline interface {
	Node
	Inline()
	printText(*printer)
}

// A Document is the root [Block] of a parsed source.
type Document struct {
	Blocks []Block
}

func (*Document) Block() {}

func (x *Document) printDump(p *printer) {
	p.line("document")
	p.blocks(x.Blocks)
}

// Children returns the direct children of n, including the
// expanded output of function calls.
func Children(n Node) []Node {
	var out []Node
	blocks := func(bs []Block) {
		for _, b := range bs {
			out = append(out, b)
		}
	}
	inlines := func(xs []Inline) {
		for _, x := range xs {
			out = append(out, x)
		}
	}
	switch n := n.(type) {
	case *Document:
		blocks(n.Blocks)
	case *Paragraph:
		inlines(n.Text)
	case *Heading:
		inlines(n.Text)
	case *List:
		for _, it := range n.Items {
			out = append(out, it)
		}
	case *ListItem:
		blocks(n.Blocks)
	case *Quote:
		inlines(n.Attribution)
		blocks(n.Blocks)
	case *Table:
		for _, c := range n.Header {
			inlines(c.Text)
		}
		for _, row := range n.Rows {
			for _, c := range row {
				inlines(c.Text)
			}
		}
	case *FootnoteDefinition:
		blocks(n.Blocks)
	case *Emphasis:
		inlines(n.Inner)
	case *Strong:
		inlines(n.Inner)
	case *StrongEmphasis:
		inlines(n.Inner)
	case *Strikethrough:
		inlines(n.Inner)
	case *Link:
		inlines(n.Text)
	case *ReferenceLink:
		inlines(n.Text)
	case *Image:
		inlines(n.Alt)
	case *ReferenceImage:
		inlines(n.Alt)
	case *FunctionCall:
		out = append(out, n.Children...)
	}
	return out
}

// Walk calls fn for n and then, if fn returns true, for each descendant of n,
// in depth-first order.
func Walk(n Node, fn func(Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range Children(n) {
		Walk(c, fn)
	}
}
