// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quarkdown

import (
	"strconv"
	"strings"
)

// A List is a [Block] representing a bullet or ordered list.
type List struct {
	Ordered bool
	Start   int  // number of the first item of an ordered list
	Bullet  byte // '-', '*', '+', or the '.' or ')' delimiter of an ordered list

	// Loose reports whether blank lines separate the items,
	// or the blocks inside an item.
	Loose bool

	Items []*ListItem
}

func (*List) Block() {}

func (x *List) printDump(p *printer) {
	kind := "bullet"
	if x.Ordered {
		kind = "ordered start=" + strconv.Itoa(x.Start)
	}
	tight := "tight"
	if x.Loose {
		tight = "loose"
	}
	p.line("list ", kind, " ", tight)
	defer p.pop(p.push("  "))
	for _, it := range x.Items {
		it.printDump(p)
	}
}

// A ListItem is a [Block] representing one item of a [List].
type ListItem struct {
	Owner *List // list holding the item; a back reference, not ownership

	// Task reports whether the item began with a task box,
	// "[ ]" or "[x]", and Checked whether the box was checked.
	Task    bool
	Checked bool

	Blocks []Block
}

func (*ListItem) Block() {}

func (x *ListItem) printDump(p *printer) {
	p.line("item", flag("task", x.Task), flag("checked", x.Checked))
	p.blocks(x.Blocks)
}

// A listMarker describes the start of a list item line.
type listMarker struct {
	ordered bool
	bullet  byte
	num     int
	width   int    // columns from the line start to the item content
	content string // text of the line after the marker
}

// parseListMarker parses the list item marker at the start of text:
// a bullet (- * +) or a number of at most nine digits followed by . or ),
// then a space, a tab, or the end of the line.
func parseListMarker(text string) (listMarker, bool) {
	var m listMarker
	indent := indentOf(text)
	if indent > 3 {
		return m, false
	}
	t := trimLeftSpaceTab(text)
	if t == "" {
		return m, false
	}
	n := 0
	switch c := t[0]; {
	case c == '-' || c == '*' || c == '+':
		m.bullet = c
		n = 1
	case isDigit(c):
		for n < len(t) && n < 9 && isDigit(t[n]) {
			m.num = m.num*10 + int(t[n]-'0')
			n++
		}
		if n >= len(t) || t[n] != '.' && t[n] != ')' {
			return m, false
		}
		m.ordered = true
		m.bullet = t[n]
		n++
	default:
		return m, false
	}
	rest := t[n:]
	if rest != "" && !isSpaceTab(rest[0]) {
		return m, false
	}
	col := indent + n
	switch spaces := indentOf(rest); {
	case trimSpaceTab(rest) == "":
		m.width = col + 1
	case spaces > 4:
		// The content is an indented code block.
		m.width = col + 1
		m.content = stripIndent(rest, 1)
	default:
		m.width = col + spaces
		m.content = trimLeftSpaceTab(rest)
	}
	return m, true
}

// isListItemStart reports whether text starts a list item.
func isListItemStart(text string) bool {
	_, ok := parseListMarker(text)
	return ok
}

// continues reports whether m can be the marker of a further item
// of the list whose first item is marked by first.
func (first listMarker) continues(m listMarker) bool {
	return first.ordered == m.ordered && first.bullet == m.bullet
}

// matchList matches a whole list: its first item and every following
// item with the same kind of marker, including their indented
// continuation lines. Trailing blank lines are not part of the list.
func matchList(s *scanner, at int) (Match, bool, error) {
	first := lineAt(s.src, at)
	m, ok := parseListMarker(first.text)
	if !ok {
		return Match{}, false, nil
	}
	width := m.width
	lazy := m.content != ""
	blank := false
	end := first.next
	for pos := first.next; pos < len(s.src); {
		l := lineAt(s.src, pos)
		switch {
		case l.isBlank():
			blank = true
			lazy = false
		case l.indent() >= width:
			blank = false
			lazy = true
		case isThematicBreak(l.text):
			return Match{End: end}, true, nil
		default:
			if next, ok := parseListMarker(l.text); ok && m.continues(next) {
				width = next.width
				lazy = next.content != ""
				blank = false
				break
			}
			if blank || !lazy || s.paragraphBreak(pos) {
				return Match{End: end}, true, nil
			}
		}
		pos = l.next
		if !blank {
			end = pos
		}
	}
	return Match{End: end}, true, nil
}

// matchListInterrupt matches the start of a list that may interrupt
// a paragraph: its first item must not be empty, and an ordered
// list must start at 1.
func matchListInterrupt(s *scanner, at int) (Match, bool, error) {
	l := lineAt(s.src, at)
	m, ok := parseListMarker(l.text)
	if !ok || m.content == "" || m.ordered && m.num != 1 {
		return Match{}, false, nil
	}
	return Match{End: l.next}, true, nil
}

// A listItemText is the source of one list item,
// with the marker and the item indentation removed.
type listItemText struct {
	marker listMarker
	lines  []string
}

// splitListItems splits the source of a list, as matched by matchList,
// into its items.
func splitListItems(text string) []listItemText {
	var items []listItemText
	width := 0
	for _, l := range splitLines(text) {
		ln := line{text: l}
		if !ln.isBlank() && ln.indent() < width || items == nil {
			if m, ok := parseListMarker(l); ok && (items == nil || items[0].marker.continues(m)) {
				items = append(items, listItemText{marker: m, lines: []string{m.content}})
				width = m.width
				continue
			}
		}
		if items == nil {
			continue
		}
		it := &items[len(items)-1]
		switch {
		case ln.isBlank():
			it.lines = append(it.lines, "")
		case ln.indent() >= width:
			it.lines = append(it.lines, stripIndent(l, width))
		default:
			it.lines = append(it.lines, trimLeftSpaceTab(l))
		}
	}
	return items
}

// trailingBlank reports whether the item source ends with a blank line.
func (it *listItemText) trailingBlank() bool {
	return len(it.lines) > 1 && it.lines[len(it.lines)-1] == ""
}

// trimTask removes a leading task box from the item's first line,
// reporting whether there was one and whether it was checked.
func (it *listItemText) trimTask() (task, checked bool) {
	first := it.lines[0]
	if len(first) < 3 || first[0] != '[' || first[2] != ']' {
		return false, false
	}
	switch first[1] {
	case ' ':
	case 'x', 'X':
		checked = true
	default:
		return false, false
	}
	rest := first[3:]
	if rest != "" && !isSpaceTab(rest[0]) {
		return false, false
	}
	it.lines[0] = strings.TrimLeft(rest, " \t")
	return true, checked
}
