// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quarkdown

import "strings"

// An HTMLBlock is a [Block] holding raw HTML lines, passed through unchanged.
type HTMLBlock struct {
	Text string
}

func (*HTMLBlock) Block() {}

func (x *HTMLBlock) printDump(p *printer) { p.line("html ", quote(x.Text)) }

// A Comment is an HTML comment, <!-- text -->, appearing
// either as a [Block] on its own lines or as an [Inline].
// Comments produce no output.
type Comment struct {
	Text string
}

func (*Comment) Block()  {}
func (*Comment) Inline() {}

func (x *Comment) printDump(p *printer) { p.line("comment ", quote(x.Text)) }
func (*Comment) printText(p *printer)   {}

// matchBlockComment matches a comment starting a line,
// up through the end of the line on which the comment closes.
// That line must hold nothing after the comment.
func matchBlockComment(s *scanner, at int) (Match, bool, error) {
	l := lineAt(s.src, at)
	t, ok := l.body()
	if !ok || !strings.HasPrefix(t, "<!--") {
		return Match{}, false, nil
	}
	open := l.start + len(l.text) - len(t)
	end := s.index("-->", open+4)
	if end < 0 {
		return Match{}, false, nil
	}
	rest := lineAt(s.src, end+3)
	if !rest.isBlank() {
		return Match{}, false, nil
	}
	return Match{End: rest.next, Groups: map[string]string{"text": s.src[open+4 : end]}}, true, nil
}

// matchInlineComment matches an inline comment.
func matchInlineComment(s *scanner, at int) (Match, bool, error) {
	if !strings.HasPrefix(s.src[at:], "<!--") {
		return Match{}, false, nil
	}
	end := s.index("-->", at+4)
	if end < 0 {
		return Match{}, false, nil
	}
	return Match{End: end + 3, Groups: map[string]string{"text": s.src[at+4 : end]}}, true, nil
}

// matchHTMLBlock matches an HTML block of one of three kinds:
// a <pre>, <script>, <style>, or <textarea> element, up through the line
// holding its closing tag; a line starting with a known block-level tag,
// up to a blank line; or a complete tag alone on a line, up to a blank line.
func matchHTMLBlock(s *scanner, at int) (Match, bool, error) {
	return matchHTML(s, at, true)
}

// matchHTMLStart matches the first line of an HTML block
// that can interrupt a paragraph. A lone tag cannot.
func matchHTMLStart(s *scanner, at int) (Match, bool, error) {
	return matchHTML(s, at, false)
}

func matchHTML(s *scanner, at int, lone bool) (Match, bool, error) {
	first := lineAt(s.src, at)
	t, ok := first.body()
	if !ok || !strings.HasPrefix(t, "<") {
		return Match{}, false, nil
	}
	var end int
	switch {
	case isBlock1Start(t):
		end = len(s.src)
		for pos := at; pos < len(s.src); {
			l := lineAt(s.src, pos)
			pos = l.next
			if endBlock1(l.text) {
				end = pos
				break
			}
		}
	case isBlock6Start(t) || lone && isLoneTag(t):
		end = first.next
		for end < len(s.src) {
			l := lineAt(s.src, end)
			if l.isBlank() {
				break
			}
			end = l.next
		}
	default:
		return Match{}, false, nil
	}
	return Match{End: end}, true, nil
}

const forceLower = 0x20 // ASCII letter | forceLower == ASCII lower-case

// isBlock1Start reports whether t starts with <pre, <script, <style, or <textarea,
// followed by a space, a tab, a >, or the end of the line.
func isBlock1Start(t string) bool {
	if len(t) < 2 {
		return false
	}
	if c := t[1] | forceLower; c != 'p' && c != 's' && c != 't' { // early out; check first letter
		return false
	}
	i := 2
	for i < len(t) && (t[i] != ' ' && t[i] != '\t' && t[i] != '>') {
		i++
	}
	return isBlock1Tag(t[1:i])
}

// endBlock1 reports whether the string contains
// </pre>, </script>, </style>, or </textarea>,
// using ASCII case-insensitive matching.
func endBlock1(s string) bool {
	start := -1
	for i := 0; i < len(s); i++ {
		if s[i] == '<' && i+1 < len(s) && s[i+1] == '/' {
			start = i + 2
		}
		if s[i] == '>' && start >= 0 {
			if isBlock1Tag(s[start:i]) {
				return true
			}
			start = -1
		}
	}
	return false
}

// isBlock1Tag reports whether tag is a tag that can open or close
// a <pre>-like HTML block.
func isBlock1Tag(tag string) bool {
	return lowerEq(tag, "pre") || lowerEq(tag, "script") || lowerEq(tag, "style") || lowerEq(tag, "textarea")
}

// lowerEq reports whether strings.ToLower(s) == lower
// assuming lower is entirely ASCII lower-case letters.
func lowerEq(s, lower string) bool {
	if len(s) != len(lower) {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i]|forceLower != lower[i] {
			return false
		}
	}
	return true
}

// isBlock6Start reports whether t starts with the opening or closing tag
// of a known block-level element, such as <div or </table>.
func isBlock6Start(t string) bool {
	// Skip over < or </.
	start := 1
	if len(t) > 1 && t[1] == '/' {
		start = 2
	}

	// Scan ASCII alphanumeric tag name;
	// must be followed by space, tab, >, />, or end of line.
	end := start
	for end < len(t) && end < 16 && isLetterDigit(t[end]) {
		end++
	}
	if end < len(t) {
		switch t[end] {
		default:
			return false
		case ' ', '\t', '>':
			// ok
		case '/':
			if end+1 >= len(t) || t[end+1] != '>' {
				return false
			}
		}
	}

	tag := t[start:end]
	if tag == "" {
		return false
	}
	c := tag[0] | forceLower
	for _, name := range htmlTags {
		if name[0] == c && len(name) == len(tag) && lowerEq(tag, name) {
			return true
		}
	}
	return false
}

var htmlTags = []string{
	"address", "article", "aside",
	"base", "basefont", "blockquote", "body",
	"caption", "center", "col", "colgroup",
	"dd", "details", "dialog", "dir", "div", "dl", "dt",
	"fieldset", "figcaption", "figure", "footer", "form", "frame", "frameset",
	"h1", "h2", "h3", "h4", "h5", "h6", "head", "header", "hr", "html",
	"iframe",
	"legend", "li", "link",
	"main", "menu", "menuitem",
	"nav", "noframes",
	"ol", "optgroup", "option",
	"p", "param",
	"section", "source", "summary",
	"table", "tbody", "td", "tfoot", "th", "thead", "title", "tr", "track",
	"ul",
}

// isLoneTag reports whether t is a complete open or closing tag
// followed only by spaces and tabs.
func isLoneTag(t string) bool {
	end, ok := parseHTMLOpenTag(t, 0)
	if !ok {
		end, ok = parseHTMLClosingTag(t, 0)
	}
	return ok && trimSpaceTab(t[end:]) == ""
}

// parseHTMLOpenTag parses an HTML open tag at s[i:],
// returning the end location.
func parseHTMLOpenTag(s string, i int) (end int, ok bool) {
	// “An open tag consists of a < character, a tag name, zero or more attributes,
	// optional spaces, tabs, and up to one line ending, an optional / character, and a > character.”
	if i >= len(s) || s[i] != '<' {
		return
	}
	_, j, ok1 := parseTagName(s, i+1)
	if !ok1 {
		return
	}

	// zero or more attributes
	for {
		if j >= len(s) || s[j] != ' ' && s[j] != '\t' && s[j] != '\n' && s[j] != '/' && s[j] != '>' {
			return
		}
		k, ok := parseAttr(s, skipSpace(s, j))
		if !ok {
			break
		}
		j = k
	}

	j = skipSpace(s, j)
	if j < len(s) && s[j] == '/' {
		j++
	}
	if j >= len(s) || s[j] != '>' {
		return
	}
	return j + 1, true
}

// parseHTMLClosingTag parses an HTML closing tag at s[i:],
// returning the end location.
func parseHTMLClosingTag(s string, i int) (end int, ok bool) {
	// “A closing tag consists of the string </, a tag name,
	// optional spaces, tabs, and up to one line ending, and the character >.”
	if i+2 >= len(s) || s[i] != '<' || s[i+1] != '/' {
		return
	}
	if _, j, ok := parseTagName(s, i+2); ok {
		j = skipSpace(s, j)
		if j < len(s) && s[j] == '>' {
			return j + 1, true
		}
	}
	return
}

// parseTagName parses a leading tag name from s[start:],
// returning the tag and the end location.
func parseTagName(s string, start int) (tag string, end int, ok bool) {
	// “A tag name consists of an ASCII letter followed by zero or more ASCII letters, digits, or hyphens (-).”
	if start >= len(s) || !isLetter(s[start]) {
		return
	}
	end = start + 1
	for end < len(s) && (isLetterDigit(s[end]) || s[end] == '-') {
		end++
	}
	return s[start:end], end, true
}

// parseAttr parses a leading attr (or attr=value) from s[start:],
// returning the end location.
func parseAttr(s string, start int) (end int, ok bool) {
	// “An attribute name consists of an ASCII letter, _, or :,
	// followed by zero or more ASCII letters, digits, _, ., :, or -.”
	if start+1 >= len(s) || (!isLetter(s[start]) && s[start] != '_' && s[start] != ':') {
		return
	}
	end = start + 1
	for end < len(s) && (isLetterDigit(s[end]) || strings.IndexByte("-_.:", s[end]) >= 0) {
		end++
	}
	if v, ok := parseAttrValueSpec(s, end); ok {
		end = v
	}
	return end, true
}

// parseAttrValueSpec parses a leading attribute value specification
// from s[start:], returning the end location.
func parseAttrValueSpec(s string, start int) (end int, ok bool) {
	end = skipSpace(s, start)
	if end >= len(s) || s[end] != '=' {
		return
	}
	end = skipSpace(s, end+1)
	if end < len(s) && (s[end] == '\'' || s[end] == '"') {
		i := strings.IndexByte(s[end+1:], s[end])
		if i < 0 {
			return
		}
		return end + 1 + i + 1, true
	}

	// “An unquoted attribute value is a nonempty string of characters
	// not including spaces, tabs, line endings, ", ', =, <, >, or `.”
	i := end
	for i < len(s) && strings.IndexByte(" \t\n\"'=<>`", s[i]) < 0 {
		i++
	}
	if i == end {
		return
	}
	return i, true
}
