// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quarkdown

import "strings"

// A FootnoteDefinition is a [Block] defining the text of a footnote:
//
//	[^label]: text
//	    continued text
type FootnoteDefinition struct {
	Label  string // normalized label
	Blocks []Block
}

func (*FootnoteDefinition) Block() {}

func (x *FootnoteDefinition) printDump(p *printer) {
	p.line("footnote ", quote(x.Label))
	p.blocks(x.Blocks)
}

// A FootnoteReference is an [Inline] referring to a footnote: [^label].
// It is resolved through the [Context] that parsed it.
type FootnoteReference struct {
	Label string // normalized label
}

func (*FootnoteReference) Inline() {}

func (x *FootnoteReference) printDump(p *printer) { p.line("footnoteref ", quote(x.Label)) }
func (x *FootnoteReference) printText(p *printer) { p.text("[^", x.Label, "]") }

// matchFootnoteDefinition matches a footnote definition:
// its first line and every following line indented by at least four columns,
// along with the blank lines between them.
// The "label" group holds the label and the "text" group the definition text,
// with the continuation indentation removed.
func matchFootnoteDefinition(s *scanner, at int) (Match, bool, error) {
	first := lineAt(s.src, at)
	t, ok := first.body()
	if !ok || !strings.HasPrefix(t, "[^") {
		return Match{}, false, nil
	}
	i := strings.IndexByte(t, ']')
	if i < 3 || i+1 >= len(t) || t[i+1] != ':' {
		return Match{}, false, nil
	}
	label := t[2:i]
	if strings.ContainsAny(label, " \t[") {
		return Match{}, false, nil
	}
	lines := []string{trimLeftSpaceTab(t[i+2:])}
	end := first.next
	keep := 1
	for pos := first.next; pos < len(s.src); {
		l := lineAt(s.src, pos)
		pos = l.next
		if l.isBlank() {
			lines = append(lines, "")
			continue
		}
		if l.indent() < 4 {
			break
		}
		lines = append(lines, stripIndent(l.text, 4))
		keep, end = len(lines), pos
	}
	return Match{End: end, Groups: map[string]string{
		"label": label,
		"text":  joinLines(lines[:keep]),
	}}, true, nil
}

// footnoteReference matches a footnote reference.
var footnoteReference = compose(`\[\^(?P<label>[^\]\s]+)\]`)
