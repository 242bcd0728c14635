// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quarkdown

import "strings"

// A Quote is a [Block] representing a block quote.
//
// A quote whose text begins with "Tip:", "Note:", "Warning:" or "Important:"
// is typed accordingly, and a final line "- Author" is its attribution:
//
//	> Tip: try it out.
//	> - Somebody
type Quote struct {
	Type        string // "tip", "note", "warning", "important", or ""
	Attribution []Inline
	Blocks      []Block
}

func (*Quote) Block() {}

func (x *Quote) printDump(p *printer) {
	p.line("quote", attr("type", x.Type))
	p.blocks(x.Blocks)
	if len(x.Attribution) > 0 {
		defer p.pop(p.push("  "))
		p.line("attribution")
		p.inlines(x.Attribution)
	}
}

var quoteTypes = []string{"Tip", "Note", "Warning", "Important"}

// trimQuote trims a block quote marker (up to three spaces, '>',
// and one optional space) from text.
func trimQuote(text string) (string, bool) {
	t, ok := line{text: text}.body()
	if !ok || t == "" || t[0] != '>' {
		return text, false
	}
	t = t[1:]
	if t != "" && (t[0] == ' ' || t[0] == '\t') {
		t = t[1:]
	}
	return t, true
}

// matchBlockQuote matches a block quote: lines starting with '>',
// plus lazy continuation lines of a paragraph inside the quote.
func matchBlockQuote(s *scanner, at int) (Match, bool, error) {
	first := lineAt(s.src, at)
	inner, ok := trimQuote(first.text)
	if !ok {
		return Match{}, false, nil
	}
	lazy := trimSpaceTab(inner) != ""
	pos := first.next
	for pos < len(s.src) {
		l := lineAt(s.src, pos)
		if inner, ok := trimQuote(l.text); ok {
			lazy = trimSpaceTab(inner) != ""
			pos = l.next
			continue
		}
		if !lazy || s.paragraphBreak(pos) {
			break
		}
		pos = l.next
	}
	return Match{End: pos}, true, nil
}

// matchQuoteStart matches only the first line of a block quote.
func matchQuoteStart(s *scanner, at int) (Match, bool, error) {
	l := lineAt(s.src, at)
	if _, ok := trimQuote(l.text); ok {
		return Match{End: l.next}, true, nil
	}
	return Match{}, false, nil
}

// splitQuote removes the quote markers from the lines of a block quote,
// and separates its type and attribution from the quoted text.
func splitQuote(text string) (typ, body, attribution string) {
	lines := splitLines(text)
	for i, l := range lines {
		lines[i], _ = trimQuote(l)
	}
	if n := len(lines); n > 1 {
		last, prev := lines[n-1], lines[n-2]
		if strings.HasPrefix(last, "- ") && trimSpaceTab(prev) != "" && !isListItemStart(prev) {
			attribution = trimSpaceTab(last[2:])
			lines = lines[:n-1]
		}
	}
	if len(lines) > 0 {
		for _, t := range quoteTypes {
			if rest, ok := strings.CutPrefix(lines[0], t+": "); ok {
				typ = strings.ToLower(t)
				lines[0] = rest
				break
			}
		}
	}
	return typ, joinLines(lines), attribution
}
