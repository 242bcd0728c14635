// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quarkdown

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// A Heading is a [Block] representing an ATX heading ("## Title")
// or a Setext heading (a paragraph underlined with = or -).
type Heading struct {
	// Level is the heading level: 1 through 6.
	Level int

	// Text is the text of the heading.
	Text []Inline

	// ID identifies the heading in the table of contents.
	// It is either given explicitly with a trailing "{#id}"
	// or derived from the heading text.
	ID       string
	CustomID bool

	// Decorative headings ("#! Title") are not numbered
	// and do not appear in the table of contents.
	Decorative bool
}

func (*Heading) Block() {}

func (x *Heading) printDump(p *printer) {
	p.line("heading ", strconv.Itoa(x.Level), attr("id", x.ID), flag("decorative", x.Decorative))
	p.inlines(x.Text)
}

// headingText trims the optional closing sequence of #s from an ATX heading's text.
// The sequence must be preceded by a space or tab, or be all there is.
func headingText(text string) string {
	text = trimRightSpaceTab(text)
	if inner := strings.TrimRight(text, "#"); inner != trimRightSpaceTab(inner) || inner == "" {
		text = trimRightSpaceTab(inner)
	}
	return text
}

// trimHeadingID trims an {#id} suffix from s if one is present,
// returning the prefix before the {#id} and the id.
// If there is no {#id} suffix, trimHeadingID returns s, "".
// The {#id} suffix can be followed by spaces, which are
// ignored and discarded.
func trimHeadingID(s string) (text, id string) {
	text = s // failure result
	i := strings.LastIndexByte(s, '{')
	if i < 0 {
		return
	}
	j := i + strings.IndexByte(s[i:], '}')
	if j < i || trimRightSpaceTab(s[j+1:]) != "" {
		return
	}
	if j <= i+2 || s[i+1] != '#' {
		return
	}
	return trimRightSpaceTab(s[:i]), trimSpaceTab(s[i+2 : j])
}

var lower = cases.Lower(language.Und)

// slugify derives a heading identifier from its plain text:
// lower-cased letters and digits, with runs of anything else
// collapsed into single hyphens.
func slugify(s string) string {
	s = lower.String(s)
	var b strings.Builder
	dash := false
	for _, r := range s {
		if r < 0x80 && !isLetterDigit(byte(r)) || r >= 0x80 && isUnicodePunct(r) || isUnicodeSpace(r) {
			dash = b.Len() > 0
			continue
		}
		if dash {
			b.WriteByte('-')
			dash = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// matchSetextHeading matches paragraph lines followed by a Setext underline.
// The "underline" group is the underline's character.
func matchSetextHeading(s *scanner, at int) (Match, bool, error) {
	first := lineAt(s.src, at)
	if first.isBlank() || first.indent() > 3 {
		return Match{}, false, nil
	}
	for pos := first.next; pos < len(s.src); {
		l := lineAt(s.src, pos)
		if c, ok := setextUnderline(l.text); ok {
			return Match{End: l.next, Groups: map[string]string{"underline": string(c)}}, true, nil
		}
		if s.paragraphBreak(pos) {
			break
		}
		pos = l.next
	}
	return Match{}, false, nil
}

// setextUnderline reports whether text is a Setext heading underline
// (optional spaces and then only -'s or ='s followed by optional spaces)
// and which character it uses.
func setextUnderline(text string) (byte, bool) {
	t, ok := line{text: text}.body()
	if !ok || t == "" {
		return 0, false
	}
	c := t[0]
	if c != '-' && c != '=' {
		return 0, false
	}
	t = trimRightSpaceTab(t)
	for i := 0; i < len(t); i++ {
		if t[i] != c {
			return 0, false
		}
	}
	return c, true
}
