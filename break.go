// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quarkdown

// A ThematicBreak is a [Block] representing a thematic break,
// usually displayed as a horizontal rule.
type ThematicBreak struct{}

func (*ThematicBreak) Block() {}

func (*ThematicBreak) printDump(p *printer) { p.line("thematicbreak") }

// A PageBreak is a [Block] forcing a new page in paged documents: "<<<".
type PageBreak struct{}

func (*PageBreak) Block() {}

func (*PageBreak) printDump(p *printer) { p.line("pagebreak") }

// A LineBreak is an [Inline] representing a hard line break:
// two or more spaces, or a backslash, before a newline.
type LineBreak struct{}

func (*LineBreak) Inline() {}

func (*LineBreak) printDump(p *printer) { p.line("linebreak") }
func (*LineBreak) printText(p *printer) { p.text("\n") }

// thematicBreak matches a thematic break line: three or more
// matching -, _, or * characters, each followed optionally by spaces or tabs.
var thematicBreak = compose(`{{indent}}(?:(?:-[ \t]*){3,}|(?:_[ \t]*){3,}|(?:\*[ \t]*){3,}){{eol}}`)

// isThematicBreak reports whether text is a thematic break line.
func isThematicBreak(text string) bool {
	t, ok := line{text: text}.body()
	if !ok || t == "" {
		return false
	}
	c := t[0]
	if c != '-' && c != '_' && c != '*' {
		return false
	}
	n := 0
	for i := 0; i < len(t); i++ {
		switch t[i] {
		case c:
			n++
		case ' ', '\t':
		default:
			return false
		}
	}
	return n >= 3
}

// pageBreak matches a page break line.
var pageBreak = compose(`{{indent}}<<<{{eol}}`)

// lineBreak matches a hard line break and its newline.
var lineBreak = compose(`(?: {2,}|\\)\r?\n`)
