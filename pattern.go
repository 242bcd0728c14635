// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quarkdown

import (
	"regexp"
	"strings"
)

// A Match is the result of a successful [Matcher] attempt.
type Match struct {
	End    int               // offset just past the matched text
	Groups map[string]string // named captures
	Call   *WalkedCall       // set by walker-hooked matchers

	// Literal reports that the matched text is plain text
	// that no other pattern may split, such as an unclosed backtick run.
	Literal bool
}

// A Matcher recognizes one construct at a given offset of the scanned source.
// It reports ok=false when the construct does not start at that offset,
// and a non-nil error only when the construct starts there but is malformed.
type Matcher interface {
	Match(s *scanner, at int) (m Match, ok bool, err error)
}

// A matchFunc is a hand-written [Matcher].
type matchFunc func(s *scanner, at int) (Match, bool, error)

func (f matchFunc) Match(s *scanner, at int) (Match, bool, error) {
	return f(s, at)
}

// A regexMatcher is a [Matcher] backed by an anchored regular expression.
// Named subexpressions become the match groups.
type regexMatcher struct {
	re *regexp.Regexp
}

func (r *regexMatcher) Match(s *scanner, at int) (Match, bool, error) {
	loc := r.re.FindStringSubmatchIndex(s.src[at:])
	if loc == nil || loc[0] != 0 || loc[1] == 0 {
		return Match{}, false, nil
	}
	m := Match{End: at + loc[1]}
	for i, name := range r.re.SubexpNames() {
		if name == "" || loc[2*i] < 0 {
			continue
		}
		if m.Groups == nil {
			m.Groups = make(map[string]string)
		}
		m.Groups[name] = s.src[at+loc[2*i] : at+loc[2*i+1]]
	}
	return m, true, nil
}

// fragments are the named building blocks of the regex patterns.
// A pattern refers to a fragment as {{name}}.
var fragments = map[string]string{
	"indent": ` {0,3}`,
	"eol":    `[ \t]*(?:\r?\n|\z)`,
	"rest":   `[^\n]*`,
	"label":  `(?:[^\\\[\]\n]|\\.){1,999}`,
}

// compose expands {{name}} fragment references in pattern
// and compiles the result, anchored at the start of the input.
func compose(pattern string) *regexMatcher {
	for name, frag := range fragments {
		pattern = strings.ReplaceAll(pattern, "{{"+name+"}}", frag)
	}
	return &regexMatcher{regexp.MustCompile(`\A(?:` + pattern + `)`)}
}

// A Pattern is one entry in a flavor's ordered catalog.
type Pattern struct {
	Name    string
	Kind    TokenKind
	Matcher Matcher

	// First lists the bytes that can begin a match.
	// An empty First means any byte can.
	First string

	// Interrupt, if set, recognizes the starts of the construct
	// that can end a paragraph without an intervening blank line.
	Interrupt Matcher

	order int
}

// canStart reports whether the pattern might match text beginning with c.
func (p *Pattern) canStart(c byte) bool {
	return p.First == "" || strings.IndexByte(p.First, c) >= 0
}

// A scanner holds the per-lexer state shared by the matchers of one pass:
// the source and memos that keep repeated failed scans linear.
type scanner struct {
	src    string
	flavor *Flavor
	ticks  backtickMemo
	delims delimMemo
	absent map[string]int // absent[sub] = offset from which sub is known not to occur
}

// index returns the offset of the first occurrence of sub in the source
// at or after from, or -1. Failed searches are remembered, so that
// repeated scans for an unterminated construct stay linear.
func (s *scanner) index(sub string, from int) int {
	if from > len(s.src) {
		return -1
	}
	if a, ok := s.absent[sub]; ok && a <= from {
		return -1
	}
	i := strings.Index(s.src[from:], sub)
	if i < 0 {
		if s.absent == nil {
			s.absent = make(map[string]int)
		}
		if a, ok := s.absent[sub]; !ok || from < a {
			s.absent[sub] = from
		}
		return -1
	}
	return from + i
}

// lead returns the first byte at or after at that is not a space or tab,
// or '\n' if the rest of the line is blank.
// Block patterns are filtered on it, since they allow leading indentation.
func (s *scanner) lead(at int) byte {
	for ; at < len(s.src); at++ {
		if c := s.src[at]; !isSpaceTab(c) {
			if c == '\r' {
				return '\n'
			}
			return c
		}
	}
	return '\n'
}

// interrupts reports whether a block construct that may interrupt
// a paragraph starts at offset at.
func (s *scanner) interrupts(at int) bool {
	if at >= len(s.src) {
		return false
	}
	c := s.lead(at)
	for i := range s.flavor.Block {
		p := &s.flavor.Block[i]
		if p.Interrupt == nil || !p.canStart(c) {
			continue
		}
		if _, ok, _ := p.Interrupt.Match(s, at); ok {
			return true
		}
	}
	return false
}
