// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quarkdown

import (
	"strings"
)

// A CodeBlock is a [Block] representing an indented code block
// or a fenced code block.
//
// The info string of a fenced block supplies the language,
// and optionally a quoted caption:
//
//	```go "Hello, world"
type CodeBlock struct {
	Fence   string // opening fence; empty for indented code
	Lang    string
	Caption string
	Text    string
}

func (*CodeBlock) Block() {}

func (x *CodeBlock) printDump(p *printer) {
	p.line("code", attr("lang", x.Lang), attr("caption", x.Caption), " ", quote(x.Text))
}

// A Math is a [Block] representing a TeX expression on its own lines,
// written between $$ fences or as a single line like "$ x^2 $".
type Math struct {
	Expression string
}

func (*Math) Block() {}

func (x *Math) printDump(p *printer) { p.line("math ", quote(x.Expression)) }

// matchIndentedCode matches an indented code block.
// Blank lines inside the block belong to it; trailing blank lines do not.
func matchIndentedCode(s *scanner, at int) (Match, bool, error) {
	first := lineAt(s.src, at)
	if first.isBlank() || first.indent() < 4 {
		return Match{}, false, nil
	}
	var lines []string
	keep, end := 0, first.start
	for pos := at; pos < len(s.src); {
		l := lineAt(s.src, pos)
		if !l.isBlank() && l.indent() < 4 {
			break
		}
		lines = append(lines, stripIndent(l.text, 4))
		pos = l.next
		if !l.isBlank() {
			keep, end = len(lines), pos
		}
	}
	return Match{End: end, Groups: map[string]string{"code": joinLines(lines[:keep])}}, true, nil
}

// matchFencedCode matches a fenced code block.
// An unclosed fence extends to the end of the input.
func matchFencedCode(s *scanner, at int) (Match, bool, error) {
	return matchFenced(s, at, '`', '~', 3)
}

// matchFenceStart matches only the opening line of a fenced code block.
func matchFenceStart(s *scanner, at int) (Match, bool, error) {
	l := lineAt(s.src, at)
	if _, fence, _, ok := trimFence(l.text); ok && fence[0] != '$' {
		return Match{End: l.next}, true, nil
	}
	return Match{}, false, nil
}

// matchMathBlock matches a block of TeX between fences of two or more dollar signs.
func matchMathBlock(s *scanner, at int) (Match, bool, error) {
	return matchFenced(s, at, '$', '$', 2)
}

// matchMathStart matches only the opening line of a math block.
func matchMathStart(s *scanner, at int) (Match, bool, error) {
	l := lineAt(s.src, at)
	if _, fence, info, ok := trimFence(l.text); ok && fence[0] == '$' && len(fence) >= 2 && info == "" {
		return Match{End: l.next}, true, nil
	}
	return Match{}, false, nil
}

// matchFenced matches a block opened by a run of at least min
// copies of c1 or c2 and closed by a run of the same character
// that is at least as long and carries no info string.
//
// RE2 has no back-references, so the "same character,
// at least as long" rule is checked here by hand.
func matchFenced(s *scanner, at int, c1, c2 byte, min int) (Match, bool, error) {
	open := lineAt(s.src, at)
	indent, fence, info, ok := trimFence(open.text)
	if !ok || fence[0] != c1 && fence[0] != c2 || len(fence) < min {
		return Match{}, false, nil
	}
	if fence[0] == '$' && info != "" {
		return Match{}, false, nil
	}
	var lines []string
	pos := open.next
	for pos < len(s.src) {
		l := lineAt(s.src, pos)
		pos = l.next
		if _, f, inf, ok := trimFence(l.text); ok && f[0] == fence[0] && len(f) >= len(fence) && inf == "" {
			if fence[0] != '$' || len(f) == len(fence) {
				break
			}
		}
		if !l.isBlank() && l.indent() < indent {
			lines = append(lines, trimLeftSpaceTab(l.text))
		} else {
			lines = append(lines, stripIndent(l.text, indent))
		}
	}
	return Match{End: pos, Groups: map[string]string{
		"fence": fence,
		"info":  info,
		"code":  joinLines(lines),
	}}, true, nil
}

// trimFence parses text as a fence line: up to three spaces of indentation,
// a run of at least two identical fence characters (` ~ or $), and an info string.
// It reports the indentation, the fence run, and the info string.
func trimFence(text string) (indent int, fence, info string, ok bool) {
	indent = indentOf(text)
	if indent > 3 {
		return
	}
	t := trimLeftSpaceTab(text)
	if t == "" {
		return
	}
	c := t[0]
	if c != '`' && c != '~' && c != '$' {
		return
	}
	n := 0
	for n < len(t) && t[n] == c {
		n++
	}
	if n < 2 || n < 3 && c != '$' {
		return
	}
	info = trimSpaceTab(t[n:])
	if c == '`' && strings.Contains(info, "`") {
		return
	}
	return indent, t[:n], info, true
}

// splitInfo splits a fenced code info string into
// its language (first word) and an optional quoted caption.
func splitInfo(info string) (lang, caption string) {
	info = trimSpaceTab(info)
	if info == "" {
		return "", ""
	}
	if info[0] != '"' && info[0] != '\'' {
		lang, info, _ = strings.Cut(info, " ")
		lang = mdUnescape(lang)
		info = trimSpaceTab(info)
	}
	if t, _, end, ok := parseLinkTitle(info, 0); ok && trimSpaceTab(info[end:]) == "" {
		caption = t
	}
	return lang, caption
}
