// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quarkdown

import (
	"strings"
)

/*

Parsing is recursive descent over token streams.

The block lexer splits a region into whole-construct tokens:
a list token holds all of its items, a quote token all of its
quoted lines. The parser splits each composite token into
sub-regions (list items by marker and indentation, quote bodies
by stripping the > markers, tables by rows and then cells) and
runs a fresh lexer and parser over each. Paragraph and heading
text goes through the inline lexer the same way.

Nothing is shared between the lexers of different regions except
the [Context], which receives every function call, link definition,
footnote, heading, and local image the parser finds.

*/

// A parser builds nodes from the tokens of one region of source text.
type parser struct {
	ctx *Context
}

// Parse parses src as a document, registering its function calls,
// link definitions, footnotes, and headings with c.
func (c *Context) Parse(src string) (*Document, error) {
	blocks, err := c.ParseBlocks(src)
	if err != nil {
		return nil, err
	}
	return &Document{Blocks: blocks}, nil
}

// ParseBlocks parses src as a sequence of blocks.
func (c *Context) ParseBlocks(src string) ([]Block, error) {
	p := &parser{ctx: c}
	blocks, _, err := p.blocks(src)
	return blocks, err
}

// ParseInline parses src as inline content.
func (c *Context) ParseInline(src string) ([]Inline, error) {
	p := &parser{ctx: c}
	return p.inlines(src)
}

// blocks parses src as blocks, also reporting whether a blank line
// separated two of them.
func (p *parser) blocks(src string) ([]Block, bool, error) {
	lex := NewBlockLexer(src, p.ctx.Flavor())
	var out []Block
	blank, blankInside := false, false
	for {
		t, ok := lex.Next()
		if !ok {
			break
		}
		if t.Kind == TokenBlankLine {
			blank = len(out) > 0
			continue
		}
		b, err := p.block(t)
		if err != nil {
			return nil, false, err
		}
		if b == nil {
			continue
		}
		if blank {
			blankInside = true
		}
		out = append(out, b)
	}
	if err := lex.Err(); err != nil {
		return nil, false, err
	}
	return out, blankInside, nil
}

// block builds the node for a block token.
func (p *parser) block(t Token) (Block, error) {
	switch t.Kind {
	case TokenComment:
		return &Comment{Text: t.Group("text")}, nil

	case TokenFunctionCall:
		return p.call(t.Call, true), nil

	case TokenIndentedCode:
		return &CodeBlock{Text: t.Group("code")}, nil

	case TokenFencedCode:
		lang, caption := splitInfo(t.Group("info"))
		return &CodeBlock{Fence: t.Group("fence"), Lang: lang, Caption: caption, Text: t.Group("code")}, nil

	case TokenMultilineMath:
		return &Math{Expression: strings.TrimSuffix(t.Group("code"), "\n")}, nil

	case TokenOnelineMath:
		return &Math{Expression: t.Group("expr")}, nil

	case TokenHorizontalRule:
		return &ThematicBreak{}, nil

	case TokenPageBreak:
		return &PageBreak{}, nil

	case TokenHeading:
		return p.heading(len(t.Group("level")), headingText(t.Group("text")), t.Group("decorative") != "")

	case TokenSetextHeading:
		lines := splitLines(t.Text)
		lines = lines[:len(lines)-1]
		for i, l := range lines {
			lines[i] = trimSpaceTab(l)
		}
		level := 2
		if t.Group("underline") == "=" {
			level = 1
		}
		return p.heading(level, strings.Join(lines, "\n"), false)

	case TokenLinkDefinition:
		def := &LinkDefinition{
			Label: normalizeLabel(t.Group("label")),
			URL:   t.Group("url"),
			Title: t.Group("title"),
		}
		p.ctx.Register(def)
		return def, nil

	case TokenFootnoteDefinition:
		blocks, _, err := p.blocks(t.Group("text"))
		if err != nil {
			return nil, err
		}
		def := &FootnoteDefinition{Label: normalizeLabel(t.Group("label")), Blocks: blocks}
		p.ctx.Register(def)
		return def, nil

	case TokenList:
		return p.list(t.Text)

	case TokenTable:
		return p.table(t)

	case TokenHTML:
		return &HTMLBlock{Text: t.Text}, nil

	case TokenBlockQuote:
		typ, body, attribution := splitQuote(t.Text)
		blocks, _, err := p.blocks(body)
		if err != nil {
			return nil, err
		}
		q := &Quote{Type: typ, Blocks: blocks}
		if attribution != "" {
			if q.Attribution, err = p.inlines(attribution); err != nil {
				return nil, err
			}
		}
		return q, nil
	}

	// Paragraph, or text no block pattern claimed.
	para, err := p.paragraph(t.Text)
	if para == nil {
		return nil, err
	}
	return para, nil
}

// call refines a walked call and registers it for expansion.
// Each call in the source is registered exactly once, here.
func (p *parser) call(w *WalkedCall, block bool) *FunctionCall {
	call := p.ctx.refine(w, block)
	p.ctx.Register(call)
	return call
}

// paragraph builds a paragraph from its source lines.
// Leading indentation of each line and trailing spaces are not part of the text.
func (p *parser) paragraph(text string) (*Paragraph, error) {
	lines := splitLines(text)
	for i, l := range lines {
		lines[i] = trimLeftSpaceTab(l)
	}
	raw := trimRightSpaceTab(strings.Join(lines, "\n"))
	if raw == "" {
		return nil, nil
	}
	inl, err := p.inlines(raw)
	if err != nil {
		return nil, err
	}
	return &Paragraph{Text: inl, Raw: raw}, nil
}

// heading builds a heading and records it in the table of contents.
func (p *parser) heading(level int, text string, decorative bool) (*Heading, error) {
	text, id := trimHeadingID(text)
	inl, err := p.inlines(text)
	if err != nil {
		return nil, err
	}
	h := &Heading{Level: level, Text: inl, ID: id, CustomID: id != "", Decorative: decorative}
	if !h.CustomID {
		h.ID = slugify(PlainText(inl))
	}
	p.ctx.Register(h)
	return h, nil
}

// list builds a list from the source of all its items.
func (p *parser) list(text string) (*List, error) {
	items := splitListItems(text)
	if len(items) == 0 {
		return nil, &StructuralError{Text: text, Reason: "list"}
	}
	first := items[0].marker
	l := &List{Ordered: first.ordered, Start: first.num, Bullet: first.bullet}
	for i := range items {
		it := &items[i]
		task, checked := it.trimTask()
		blocks, blankInside, err := p.blocks(joinLines(it.lines))
		if err != nil {
			return nil, err
		}
		if blankInside || it.trailingBlank() && i < len(items)-1 {
			l.Loose = true
		}
		l.Items = append(l.Items, &ListItem{Owner: l, Task: task, Checked: checked, Blocks: blocks})
	}
	return l, nil
}

// table builds a table from its rows.
func (p *parser) table(t Token) (*Table, error) {
	lines := splitLines(t.Text)
	caption, hasCaption := t.Groups["caption"]
	if hasCaption {
		lines = lines[:len(lines)-1]
	}
	width := tableCount(tableTrimOuter(lines[0]))
	tab := &Table{Align: parseAlign(lines[1], width), Caption: caption}
	var err error
	if tab.Header, err = p.cells(lines[0], width); err != nil {
		return nil, err
	}
	for _, row := range lines[2:] {
		cells, err := p.cells(row, width)
		if err != nil {
			return nil, err
		}
		tab.Rows = append(tab.Rows, cells)
	}
	return tab, nil
}

func (p *parser) cells(row string, width int) ([]TableCell, error) {
	var out []TableCell
	for _, text := range splitRow(row, width) {
		inl, err := p.inlines(text)
		if err != nil {
			return nil, err
		}
		out = append(out, TableCell{Text: inl})
	}
	return out, nil
}

// inlines parses src as inline content,
// merging adjacent runs of plain text.
func (p *parser) inlines(src string) ([]Inline, error) {
	lex := NewInlineLexer(src, p.ctx.Flavor())
	var out []Inline
	for {
		t, ok := lex.Next()
		if !ok {
			break
		}
		x, err := p.inline(t)
		if err != nil {
			return nil, err
		}
		if x == nil {
			continue
		}
		if text, ok := x.(*Text); ok && len(out) > 0 {
			if prev, ok := out[len(out)-1].(*Text); ok {
				out[len(out)-1] = &Text{Text: prev.Text + text.Text}
				continue
			}
		}
		out = append(out, x)
	}
	return out, lex.Err()
}

// inline builds the node for an inline token.
func (p *parser) inline(t Token) (Inline, error) {
	switch t.Kind {
	case TokenEscape:
		return &Text{Text: t.Group("char")}, nil

	case TokenEntity, TokenTypography:
		return &Text{Text: t.Group("text")}, nil

	case TokenComment:
		return &Comment{Text: t.Group("text")}, nil

	case TokenCodeSpan:
		return &CodeSpan{Text: t.Group("code")}, nil

	case TokenInlineMath:
		return &MathSpan{Expression: t.Group("expr")}, nil

	case TokenFunctionCall:
		return p.call(t.Call, false), nil

	case TokenLineBreak:
		return &LineBreak{}, nil

	case TokenAutolink:
		if email := t.Group("email"); email != "" {
			return &Link{Text: []Inline{&Text{Text: email}}, URL: "mailto:" + email}, nil
		}
		url := t.Group("url")
		return p.link(&Link{Text: []Inline{&Text{Text: url}}, URL: url}), nil

	case TokenURL:
		return p.link(&Link{Text: []Inline{&Text{Text: t.Text}}, URL: t.Group("url")}), nil

	case TokenLink:
		text, err := p.inlines(t.Group("text"))
		if err != nil {
			return nil, err
		}
		return p.link(&Link{Text: text, URL: t.Group("url"), Title: t.Group("title")}), nil

	case TokenReferenceLink:
		text, err := p.inlines(t.Group("text"))
		if err != nil {
			return nil, err
		}
		return &ReferenceLink{Text: text, Label: t.Group("label"), Fallback: t.Text}, nil

	case TokenImage:
		alt, err := p.inlines(t.Group("alt"))
		if err != nil {
			return nil, err
		}
		img := &Image{Alt: alt, URL: t.Group("url"), Title: t.Group("title")}
		img.Width = imageDimension(t.Group("width"))
		img.Height = imageDimension(t.Group("height"))
		p.ctx.registerMedia(img.URL)
		return img, nil

	case TokenReferenceImage:
		alt, err := p.inlines(t.Group("alt"))
		if err != nil {
			return nil, err
		}
		return &ReferenceImage{Alt: alt, Label: t.Group("label"), Fallback: t.Text}, nil

	case TokenFootnoteReference:
		return &FootnoteReference{Label: normalizeLabel(t.Group("label"))}, nil

	case TokenStrongEmphasis, TokenStrong, TokenEmphasis, TokenStrikethrough:
		inner, err := p.inlines(t.Group("text"))
		if err != nil {
			return nil, err
		}
		switch t.Kind {
		case TokenStrongEmphasis:
			return &StrongEmphasis{Inner: inner}, nil
		case TokenStrong:
			return &Strong{Inner: inner}, nil
		case TokenEmphasis:
			return &Emphasis{Inner: inner}, nil
		}
		return &Strikethrough{Inner: inner}, nil
	}
	return &Text{Text: t.Text}, nil
}

// link records links to other Quarkdown sources as subdocument edges.
func (p *parser) link(l *Link) *Link {
	p.ctx.linkSubdocument(l.URL)
	return l
}

// imageDimension parses one dimension of a sized image.
// An unset or unparsable dimension is nil.
func imageDimension(s string) *Size {
	if s == "" || s == "_" {
		return nil
	}
	size, err := ParseSize(s)
	if err != nil {
		return nil
	}
	return &size
}
