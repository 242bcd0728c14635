// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quarkdown

// A Paragraph is a [Block] holding a run of inline content.
type Paragraph struct {
	Text []Inline

	// Raw is the source text of the paragraph, with surrounding
	// blank space removed. Lists read as collections or
	// dictionaries take their values from it.
	Raw string
}

func (*Paragraph) Block() {}

func (x *Paragraph) printDump(p *printer) {
	p.line("paragraph")
	p.inlines(x.Text)
}

// matchParagraph matches a run of non-blank lines,
// ended by a blank line or by the start of a block
// that can interrupt a paragraph.
func matchParagraph(s *scanner, at int) (Match, bool, error) {
	first := lineAt(s.src, at)
	if first.isBlank() {
		return Match{}, false, nil
	}
	pos := first.next
	for pos < len(s.src) && !s.paragraphBreak(pos) {
		pos = lineAt(s.src, pos).next
	}
	return Match{End: pos}, true, nil
}

// paragraphBreak reports whether the line at pos
// ends a paragraph that would otherwise continue onto it.
func (s *scanner) paragraphBreak(pos int) bool {
	l := lineAt(s.src, pos)
	if l.isBlank() || s.interrupts(pos) {
		return true
	}
	return l.next < len(s.src) && isTableStart(l.text, lineAt(s.src, l.next).text)
}
