// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quarkdown

import (
	"strings"
	"unicode/utf8"
)

// A Text is an [Inline] holding plain text.
type Text struct {
	Text string
}

func (*Text) Inline() {}

func (x *Text) printDump(p *printer) { p.line("text ", quote(x.Text)) }
func (x *Text) printText(p *printer) { p.text(x.Text) }

// A CodeSpan is an [Inline] holding code text: `code`.
type CodeSpan struct {
	Text string
}

func (*CodeSpan) Inline() {}

func (x *CodeSpan) printDump(p *printer) { p.line("codespan ", quote(x.Text)) }
func (x *CodeSpan) printText(p *printer) { p.text(x.Text) }

// A MathSpan is an [Inline] holding a TeX expression: $x^2$.
type MathSpan struct {
	Expression string
}

func (*MathSpan) Inline() {}

func (x *MathSpan) printDump(p *printer) { p.line("math ", quote(x.Expression)) }
func (x *MathSpan) printText(p *printer) { p.text(x.Expression) }

// An Emphasis is an [Inline] representing emphasized (italic) text: *text* or _text_.
type Emphasis struct {
	Inner []Inline
}

func (*Emphasis) Inline() {}

func (x *Emphasis) printDump(p *printer) {
	p.line("emphasis")
	p.inlines(x.Inner)
}

func (x *Emphasis) printText(p *printer) { p.plain(x.Inner) }

// A Strong is an [Inline] representing strong (bold) text: **text** or __text__.
type Strong struct {
	Inner []Inline
}

func (*Strong) Inline() {}

func (x *Strong) printDump(p *printer) {
	p.line("strong")
	p.inlines(x.Inner)
}

func (x *Strong) printText(p *printer) { p.plain(x.Inner) }

// A StrongEmphasis is an [Inline] representing text that is
// both strong and emphasized: ***text*** or ___text___.
type StrongEmphasis struct {
	Inner []Inline
}

func (*StrongEmphasis) Inline() {}

func (x *StrongEmphasis) printDump(p *printer) {
	p.line("strongemphasis")
	p.inlines(x.Inner)
}

func (x *StrongEmphasis) printText(p *printer) { p.plain(x.Inner) }

// A Strikethrough is an [Inline] representing deleted text: ~~text~~.
type Strikethrough struct {
	Inner []Inline
}

func (*Strikethrough) Inline() {}

func (x *Strikethrough) printDump(p *printer) {
	p.line("strikethrough")
	p.inlines(x.Inner)
}

func (x *Strikethrough) printText(p *printer) { p.plain(x.Inner) }

// escape matches a backslash-escaped punctuation character.
var escape = compose(`\\(?P<char>[!-/:-@\[-` + "`" + `{-~])`)

// matchEntity matches an HTML entity or numeric character reference.
func matchEntity(s *scanner, at int) (Match, bool, error) {
	n, text, ok := scanEntity(s.src, at)
	if !ok {
		return Match{}, false, nil
	}
	return Match{End: at + n, Groups: map[string]string{"text": text}}, true, nil
}

// maxBackticks is the maximum number of backticks allowed for an inline code span.
// To avoid super-linear (not quite quadratic) behavior, we need to track the last position
// where a run of exactly N backticks was seen, for each possible N, rather than scan
// backward to find them. This means we must place some limit on N (or use a map).
// cmark-gfm imposes a limit of 80, which seems good enough.
// (If your backticks don't fit on a punch card, you can't use them!)
const maxBackticks = 80

// A backtickMemo remembers, for each run length, the last offset
// where a run of backticks of that length was seen.
//
// The naive implementation of backtick scanning would take O(n√n) time on an input like
//
//	` `` ``` ```` ````` `````` ``````` ````````
//
// Successful scans are always fine: they consume all the text they scanned.
// Once a scan has reached the end of the input, every later run has been
// recorded, so a later scan for a length n can fail immediately when
// no run of n backticks was seen past its starting offset.
type backtickMemo struct {
	last    [maxBackticks]int // last[n-1] = start offset of the last run of n backticks seen
	scanned bool              // whether a scan has reached the end of the input
}

func (b *backtickMemo) note(start, n int) {
	if n <= len(b.last) && b.last[n-1] < start {
		b.last[n-1] = start
	}
}

// close returns the offset of the first run of exactly n backticks
// at or after from, or -1.
func (b *backtickMemo) close(src string, n, from int) int {
	b.note(from-n, n)
	if n > len(b.last) || b.scanned && b.last[n-1] < from {
		return -1
	}
	for end := from; end < len(src); {
		if src[end] != '`' {
			end++
			continue
		}
		start := end
		for end < len(src) && src[end] == '`' {
			end++
		}
		m := end - start
		b.note(start, m)
		if m == n {
			return start
		}
	}
	b.scanned = true
	return -1
}

// matchCodeSpan matches a code span delimited by runs of the same number of backticks.
// Line endings inside the span become spaces, and one space is removed from
// each end when the text both begins and ends with a space.
//
// When no closing run exists, the whole opening run is literal text:
// ``x` is not a backtick followed by a code span.
func matchCodeSpan(s *scanner, at int) (Match, bool, error) {
	src := s.src
	if at > 0 && src[at-1] == '`' {
		return Match{}, false, nil
	}
	n := 1
	for at+n < len(src) && src[at+n] == '`' {
		n++
	}
	end := s.ticks.close(src, n, at+n)
	if end < 0 {
		return Match{End: at + n, Literal: true}, true, nil
	}
	text := strings.ReplaceAll(src[at+n:end], "\n", " ")
	if len(text) >= 2 && text[0] == ' ' && text[len(text)-1] == ' ' && strings.Trim(text, " ") != "" {
		text = text[1 : len(text)-1]
	}
	return Match{End: end + n, Groups: map[string]string{"code": text}}, true, nil
}

// A delimKey identifies a kind of delimited span: its delimiter byte and run length.
type delimKey struct {
	c byte
	n int
}

// A delimMemo remembers, per delimiter kind, the smallest offset
// from which a search for a closing delimiter is known to fail.
type delimMemo map[delimKey]int

func (m delimMemo) failed(k delimKey, from int) bool {
	f, ok := m[k]
	return ok && f <= from
}

func (m *delimMemo) fail(k delimKey, from int) {
	if *m == nil {
		*m = make(delimMemo)
	}
	if f, ok := (*m)[k]; !ok || from < f {
		(*m)[k] = from
	}
}

// matchInlineMath matches a TeX expression between single dollar signs.
// The opening $ must be followed by a non-space, and the closing $
// preceded by a non-space and not followed by a digit, so that prices
// like $5 and $10 stay text.
func matchInlineMath(s *scanner, at int) (Match, bool, error) {
	src := s.src
	if at+1 >= len(src) || at > 0 && src[at-1] == '$' {
		return Match{}, false, nil
	}
	if c := src[at+1]; c == '$' || c == ' ' || c == '\t' || c == '\n' {
		return Match{}, false, nil
	}
	k := delimKey{'$', 1}
	if s.delims.failed(k, at+1) {
		return Match{}, false, nil
	}
	for i := at + 2; ; {
		j := s.index("$", i)
		if j < 0 {
			break
		}
		before := src[j-1]
		if before != '\\' && !isSpaceTab(before) && before != '\n' && (j+1 >= len(src) || !isDigit(src[j+1])) {
			return Match{End: j + 1, Groups: map[string]string{"expr": src[at+1 : j]}}, true, nil
		}
		i = j + 1
	}
	s.delims.fail(k, at+1)
	return Match{}, false, nil
}

// matchInlineCall matches a function call inside text.
// The '.' must not continue a word, a number, or an escape,
// so that "e.g." and "1..3" are not calls.
func matchInlineCall(s *scanner, at int) (Match, bool, error) {
	if !callCanStart(s.src, at) {
		return Match{}, false, nil
	}
	call, end, err := walkCall(s.src, at, false)
	if call == nil || err != nil {
		return Match{}, false, err
	}
	return Match{End: end, Call: call}, true, nil
}

// callCanStart reports whether a function call may start at src[at].
func callCanStart(src string, at int) bool {
	if src[at] != '.' || at+1 >= len(src) || !isNameStart(src[at+1]) {
		return false
	}
	if at > 0 {
		c := src[at-1]
		if isLetterDigit(c) || c == '.' || c == '_' || c == '\\' {
			return false
		}
	}
	return true
}

// matchBlockCall matches a function call alone on its line,
// together with its indented body.
func matchBlockCall(s *scanner, at int) (Match, bool, error) {
	l := lineAt(s.src, at)
	if l.indent() > 3 {
		return Match{}, false, nil
	}
	dot := l.start + len(l.text) - len(trimLeftSpaceTab(l.text))
	if dot >= len(s.src) || !callCanStart(s.src, dot) {
		return Match{}, false, nil
	}
	call, end, err := walkCall(s.src, dot, true)
	if call == nil || err != nil {
		return Match{}, false, err
	}
	return Match{End: end, Call: call}, true, nil
}

// matchDelimited returns a [Matcher] for text enclosed in runs of exactly n
// copies of one of the delimiter bytes in chars, following the flanking rules
// for opening and closing runs. Escapes and code spans inside the text
// cannot hold the closing run. The "text" group is the enclosed source,
// which the parser lexes again.
func matchDelimited(chars string, n int) matchFunc {
	return func(s *scanner, at int) (Match, bool, error) {
		src := s.src
		c := src[at]
		if strings.IndexByte(chars, c) < 0 || at > 0 && src[at-1] == c {
			return Match{}, false, nil
		}
		if runLength(src, at) != n || !canOpen(src, at, at+n) {
			return Match{}, false, nil
		}
		k := delimKey{c, n}
		if s.delims.failed(k, at+n) {
			return Match{}, false, nil
		}
		for i := at + n; i < len(src); {
			switch src[i] {
			case '\\':
				if i+1 < len(src) && src[i+1] != '`' {
					i += 2
					continue
				}
			case '`':
				m := runLength(src, i)
				if end := s.ticks.close(src, m, i+m); end >= 0 {
					i = end + m
				} else {
					i += m
				}
				continue
			case c:
				m := runLength(src, i)
				if m == n && i > at+n && canClose(src, i, i+m) {
					return Match{End: i + m, Groups: map[string]string{"text": src[at+n : i]}}, true, nil
				}
				i += m
				continue
			}
			i++
		}
		s.delims.fail(k, at+n)
		return Match{}, false, nil
	}
}

// runLength returns the length of the run of src[at] bytes starting at src[at].
func runLength(src string, at int) int {
	n := 1
	for at+n < len(src) && src[at+n] == src[at] {
		n++
	}
	return n
}

// flanking reports whether the delimiter run src[start:end]
// is left-flanking and right-flanking, along with the runes around it.
func flanking(src string, start, end int) (left, right bool, before, after rune) {
	// Pick up the runes before and after the run.
	before, after = ' ', ' '
	if start > 0 {
		before, _ = utf8.DecodeLastRuneInString(src[:start])
	}
	if end < len(src) {
		after, _ = utf8.DecodeRuneInString(src[end:])
	}

	// “A left-flanking delimiter run is a delimiter run that is
	// (1) not followed by Unicode whitespace, and either
	// (2a) not followed by a Unicode punctuation character, or
	// (2b) followed by a Unicode punctuation character
	// and preceded by Unicode whitespace or a Unicode punctuation character.
	// For purposes of this definition, the beginning and the end
	// of the line count as Unicode whitespace.”
	left = !isUnicodeSpace(after) &&
		(!isUnicodePunct(after) || isUnicodeSpace(before) || isUnicodePunct(before))

	// “A right-flanking delimiter run is a delimiter run that is
	// (1) not preceded by Unicode whitespace, and either
	// (2a) not preceded by a Unicode punctuation character, or
	// (2b) preceded by a Unicode punctuation character
	// and followed by Unicode whitespace or a Unicode punctuation character.”
	right = !isUnicodeSpace(before) &&
		(!isUnicodePunct(before) || isUnicodeSpace(after) || isUnicodePunct(after))
	return
}

// canOpen reports whether the delimiter run src[start:end] can open a span.
func canOpen(src string, start, end int) bool {
	left, right, before, _ := flanking(src, start, end)
	if src[start] == '_' {
		// “A single _ character can open emphasis iff
		// it is part of a left-flanking delimiter run and either
		// (a) not part of a right-flanking delimiter run or
		// (b) part of a right-flanking delimiter run preceded by a Unicode punctuation character.”
		return left && (!right || isUnicodePunct(before))
	}
	return left
}

// canClose reports whether the delimiter run src[start:end] can close a span.
func canClose(src string, start, end int) bool {
	left, right, _, after := flanking(src, start, end)
	if src[start] == '_' {
		return right && (!left || isUnicodePunct(after))
	}
	return right
}

// matchTypography matches a character sequence that is replaced
// by a typographic symbol. The "text" group is the replacement.
func matchTypography(s *scanner, at int) (Match, bool, error) {
	src := s.src[at:]
	var text string
	n := 0
	switch src[0] {
	case '.':
		if strings.HasPrefix(src, "...") {
			text, n = "…", 3
		}
	case '-':
		if strings.HasPrefix(src, "->") {
			text, n = "→", 2
		} else {
			text, n = dashes(src)
		}
	case '<':
		if strings.HasPrefix(src, "<-") {
			text, n = "←", 2
		}
	case '=':
		if strings.HasPrefix(src, "=>") {
			text, n = "⇒", 2
		}
	case '(':
		for _, sym := range symbols {
			if len(src) >= len(sym.from) && lowerEq(src[1:len(sym.from)-1], sym.from[1:len(sym.from)-1]) && src[len(sym.from)-1] == ')' {
				text, n = sym.to, len(sym.from)
				break
			}
		}
	}
	if n == 0 {
		return Match{}, false, nil
	}
	return Match{End: at + n, Groups: map[string]string{"text": text}}, true, nil
}

var symbols = []struct{ from, to string }{
	{"(c)", "©"},
	{"(r)", "®"},
	{"(tm)", "™"},
}

// dashes rewrites a leading run of two or more dashes
// into en dashes and em dashes: -- is – and --- is —.
func dashes(s string) (string, int) {
	if len(s) < 2 || s[1] != '-' {
		return "", 0
	}
	n := 2
	for n < len(s) && s[n] == '-' {
		n++
	}

	// Obviously -- is – and --- is —,
	// but what about ----? -----? ------?
	// We blindly follow cmark-gfm's rules.
	em, en := 0, 0
	switch {
	case n%3 == 0:
		em = n / 3
	case n%2 == 0:
		en = n / 2
	case n%3 == 2:
		em = (n - 2) / 3
		en = 1
	case n%3 == 1:
		em = (n - 4) / 3
		en = 2
	}
	return strings.Repeat("—", em) + strings.Repeat("–", en), n
}
