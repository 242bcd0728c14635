// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quarkdown

import (
	"strings"
)

// A Table is a [Block] representing a GitHub-flavored Markdown table,
// optionally followed by a caption line in quotes or parentheses:
//
//	| a | b |
//	|:--|--:|
//	| 1 | 2 |
//	"Caption"
type Table struct {
	Header  []TableCell
	Align   []string // "left", "center", "right", or "" for unset
	Rows    [][]TableCell
	Caption string
}

func (*Table) Block() {}

func (x *Table) printDump(p *printer) {
	p.line("table align=", dumpAlign(x.Align), attr("caption", x.Caption))
	defer p.pop(p.push("  "))
	p.line("header")
	printCells(p, x.Header)
	for _, row := range x.Rows {
		p.line("row")
		printCells(p, row)
	}
}

func printCells(p *printer, cells []TableCell) {
	defer p.pop(p.push("  "))
	for _, c := range cells {
		p.line("cell")
		p.inlines(c.Text)
	}
}

// A TableCell is the inline content of one table cell.
type TableCell struct {
	Text []Inline
}

func isTableSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\v' || c == '\f'
}

func tableTrimSpace(s string) string {
	i := 0
	for i < len(s) && isTableSpace(s[i]) {
		i++
	}
	j := len(s)
	for j > i && isTableSpace(s[j-1]) {
		j--
	}
	return s[i:j]
}

func tableTrimOuter(row string) string {
	row = tableTrimSpace(row)
	if len(row) > 0 && row[0] == '|' {
		row = row[1:]
	}
	if len(row) > 0 && row[len(row)-1] == '|' && (len(row) < 2 || row[len(row)-2] != '\\') {
		row = row[:len(row)-1]
	}
	return row
}

// isTableStart reports whether hdr and delim form the first two lines of a table:
// the delimiter row must have one cell of dashes (with optional alignment colons)
// per header cell, and at least one of the lines must contain a pipe.
func isTableStart(hdr, delim string) bool {
	if !strings.Contains(delim, "|") && !strings.Contains(hdr, "|") {
		return false
	}
	if l := (line{text: hdr}); l.isBlank() || l.indent() > 3 {
		return false
	}
	// Scan potential delimiter string, counting columns.
	// This happens on every line of text,
	// so make it relatively quick - nothing expensive.
	col := 0
	delim = tableTrimOuter(delim)
	i := 0
	for ; ; col++ {
		for i < len(delim) && isTableSpace(delim[i]) {
			i++
		}
		if i >= len(delim) {
			break
		}
		if i < len(delim) && delim[i] == ':' {
			i++
		}
		if i >= len(delim) || delim[i] != '-' {
			return false
		}
		i++
		for i < len(delim) && delim[i] == '-' {
			i++
		}
		if i < len(delim) && delim[i] == ':' {
			i++
		}
		for i < len(delim) && isTableSpace(delim[i]) {
			i++
		}
		if i < len(delim) && delim[i] == '|' {
			i++
		} else if i < len(delim) {
			return false
		}
	}
	return col > 0 && col == tableCount(tableTrimOuter(hdr))
}

// tableCount returns the number of cells in a row
// whose outer pipes have been trimmed.
func tableCount(row string) int {
	col := 1
	for i := 0; i < len(row); i++ {
		c := row[i]
		if c == '\\' && i+1 < len(row) && row[i+1] == '|' {
			// An escaped pipe is cell content, even after another backslash.
			i++
			continue
		}
		if c == '|' {
			col++
		}
	}
	return col
}

// matchTable matches a table: a header row, a delimiter row,
// body rows up to a blank line or another block, and an optional caption line.
func matchTable(s *scanner, at int) (Match, bool, error) {
	hdr := lineAt(s.src, at)
	if hdr.next >= len(s.src) {
		return Match{}, false, nil
	}
	delim := lineAt(s.src, hdr.next)
	if !isTableStart(hdr.text, delim.text) {
		return Match{}, false, nil
	}
	var groups map[string]string
	pos := delim.next
	for pos < len(s.src) {
		l := lineAt(s.src, pos)
		if l.isBlank() {
			break
		}
		if caption, ok := tableCaption(l.text); ok {
			groups = map[string]string{"caption": caption}
			pos = l.next
			break
		}
		if s.interrupts(pos) {
			break
		}
		pos = l.next
	}
	return Match{End: pos, Groups: groups}, true, nil
}

// tableCaption reports whether text is a caption line:
// a title in double quotes, single quotes, or parentheses.
func tableCaption(text string) (string, bool) {
	t, ok := line{text: text}.body()
	if !ok {
		return "", false
	}
	t = trimRightSpaceTab(t)
	if title, _, end, found := parseLinkTitle(t, 0); found && end == len(t) {
		return title, true
	}
	return "", false
}

// splitRow splits a table row into exactly width cell texts.
// Extra cells are discarded and missing cells are empty.
// Escaped pipes inside cells are unescaped.
func splitRow(row string, width int) []string {
	row = tableTrimOuter(row)
	out := make([]string, 0, width)
	start := 0
	unesc := nop
	for i := 0; i < len(row); i++ {
		c := row[i]
		if c == '\\' && i+1 < len(row) && row[i+1] == '|' {
			// Need to rewrite escaped pipe to pipe in cell.
			unesc = tableUnescape
			i++
			continue
		}
		if c == '|' {
			out = append(out, unesc(tableTrimSpace(row[start:i])))
			if len(out) == width {
				return out
			}
			start = i + 1
			unesc = nop
		}
	}
	out = append(out, unesc(tableTrimSpace(row[start:])))
	for len(out) < width {
		out = append(out, "")
	}
	return out
}

func nop(text string) string {
	return text
}

func tableUnescape(text string) string {
	out := make([]byte, 0, len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == '\\' && i+1 < len(text) && text[i+1] == '|' {
			i++
			c = '|'
		}
		out = append(out, c)
	}
	return string(out)
}

// parseAlign returns the alignment of each column of a delimiter row.
func parseAlign(delim string, width int) []string {
	cells := splitRow(delim, width)
	align := make([]string, len(cells))
	for i, cell := range cells {
		align[i] = tableAlign(cell)
	}
	return align
}

func tableAlign(cell string) string {
	cell = tableTrimSpace(cell)
	if cell == "" {
		return ""
	}
	l := cell[0] == ':'
	r := cell[len(cell)-1] == ':'
	switch {
	case l && r:
		return "center"
	case l:
		return "left"
	case r:
		return "right"
	}
	return ""
}
