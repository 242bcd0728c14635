// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quarkdown

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
)

// A Link is an [Inline] representing a link: [text](url "title"),
// an autolink <url>, or a bare URL.
type Link struct {
	Text  []Inline
	URL   string
	Title string
}

func (*Link) Inline() {}

func (x *Link) printDump(p *printer) {
	p.line("link ", quote(x.URL), attr("title", x.Title))
	p.inlines(x.Text)
}

func (x *Link) printText(p *printer) { p.plain(x.Text) }

// A ReferenceLink is an [Inline] representing a link to a link definition:
// [text][label], [label][], or [label].
// It is resolved through the [Context] that parsed it; when no
// definition exists, it stands for its own source text.
type ReferenceLink struct {
	Text     []Inline
	Label    string // normalized label
	Fallback string // source text
}

func (*ReferenceLink) Inline() {}

func (x *ReferenceLink) printDump(p *printer) {
	p.line("reflink ", quote(x.Label))
	p.inlines(x.Text)
}

func (x *ReferenceLink) printText(p *printer) { p.plain(x.Text) }

// An Image is an [Inline] representing an image: ![alt](url "title").
// The sized form !(WxH)[alt](url) also sets Width and Height;
// either dimension may be _ to leave it unset.
type Image struct {
	Alt    []Inline
	URL    string
	Title  string
	Width  *Size
	Height *Size
}

func (*Image) Inline() {}

func (x *Image) printDump(p *printer) {
	var size string
	if x.Width != nil {
		size += " width=" + x.Width.String()
	}
	if x.Height != nil {
		size += " height=" + x.Height.String()
	}
	p.line("image ", quote(x.URL), attr("title", x.Title), size)
	p.inlines(x.Alt)
}

func (x *Image) printText(p *printer) { p.plain(x.Alt) }

// A ReferenceImage is an [Inline] representing an image whose
// source comes from a link definition: ![alt][label].
type ReferenceImage struct {
	Alt      []Inline
	Label    string
	Fallback string
}

func (*ReferenceImage) Inline() {}

func (x *ReferenceImage) printDump(p *printer) {
	p.line("refimage ", quote(x.Label))
	p.inlines(x.Alt)
}

func (x *ReferenceImage) printText(p *printer) { p.plain(x.Alt) }

// A LinkDefinition is a [Block] representing a link reference definition:
//
//	[label]: url "title"
type LinkDefinition struct {
	Label string // normalized label
	URL   string
	Title string
}

func (*LinkDefinition) Block() {}

func (x *LinkDefinition) printDump(p *printer) {
	p.line("linkdef ", quote(x.Label), " ", quote(x.URL), attr("title", x.Title))
}

// matchLinkDefinition matches a link reference definition on a single line,
// or with its title on the following line.
func matchLinkDefinition(s *scanner, at int) (Match, bool, error) {
	first := lineAt(s.src, at)
	t, ok := first.body()
	if !ok || !strings.HasPrefix(t, "[") || strings.HasPrefix(t, "[^") {
		return Match{}, false, nil
	}
	label, i, ok := parseLinkLabel(t, 0)
	if !ok || i >= len(t) || t[i] != ':' {
		return Match{}, false, nil
	}
	i = skipSpaceTab(t, i+1)
	url, i, ok := parseLinkDest(t, i)
	if !ok || url == "" && (i == 0 || t[i-1] != '>') {
		return Match{}, false, nil
	}
	groups := map[string]string{"label": label, "url": url}
	end := first.next
	j := skipSpaceTab(t, i)
	if j < len(t) {
		if j == i {
			return Match{}, false, nil
		}
		title, _, k, ok := parseLinkTitle(t, j)
		if !ok || trimSpaceTab(t[k:]) != "" {
			return Match{}, false, nil
		}
		groups["title"] = title
	} else if first.next < len(s.src) {
		// The title may be on the next line.
		next := lineAt(s.src, first.next)
		n := trimSpaceTab(next.text)
		if title, _, k, ok := parseLinkTitle(n, 0); ok && k == len(n) {
			groups["title"] = title
			end = next.next
		}
	}
	return Match{End: end, Groups: groups}, true, nil
}

func skipSpaceTab(s string, i int) int {
	for i < len(s) && isSpaceTab(s[i]) {
		i++
	}
	return i
}

// parseLinkTitle parses a link title at s[i:], returning
// the title, the quote character, the end index just past the title,
// and whether a title was found at all.
func parseLinkTitle(s string, i int) (title string, char byte, end int, found bool) {
	if i < len(s) && (s[i] == '"' || s[i] == '\'' || s[i] == '(') {
		want := s[i]
		if want == '(' {
			want = ')'
		}
		j := i + 1
		for ; j < len(s); j++ {
			if s[j] == want {
				title := s[i+1 : j]
				return mdUnescape(title), want, j + 1, true
			}
			if s[j] == '(' && want == ')' {
				break
			}
			if s[j] == '\\' && j+1 < len(s) {
				j++
			}
		}
	}
	return "", 0, 0, false
}

// parseLinkLabel parses a link label at s[i:], returning
// the label, the end index just past the label, and
// whether a label was found at all.
func parseLinkLabel(s string, i int) (string, int, bool) {
	// “A link label begins with a left bracket ([) and ends with
	// the first right bracket (]) that is not backslash-escaped.
	// Between these brackets there must be at least one character
	// that is not a space, tab, or line ending.
	// Unescaped square bracket characters are not allowed
	// inside the opening and closing square brackets of link labels.
	// A link label can have at most 999 characters inside the square brackets.”
	if i >= len(s) || s[i] != '[' {
		return "", 0, false
	}
	j := i + 1
	for ; j < len(s); j++ {
		if s[j] == ']' {
			if j-(i+1) > 999 {
				break
			}
			if label := trimSpaceTabNewline(s[i+1 : j]); label != "" {
				return label, j + 1, true
			}
			break
		}
		if s[j] == '[' {
			break
		}
		if s[j] == '\\' && j+1 < len(s) {
			j++
		}
	}
	return "", 0, false
}

// normalizeLabel returns the normalized label for s, for uniquely identifying that label.
func normalizeLabel(s string) string {
	if strings.Contains(s, "[") || strings.Contains(s, "]") {
		// Labels cannot have [ ] so avoid the work of translating.
		return ""
	}

	// “To normalize a label, strip off the opening and closing brackets,
	// perform the Unicode case fold, strip leading and trailing spaces, tabs, and line endings,
	// and collapse consecutive internal spaces, tabs, and line endings to a single space.”
	s = trimSpaceTabNewline(s)
	var b strings.Builder
	space := false
	hi := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case ' ', '\t', '\n':
			space = true
			continue
		default:
			if space {
				b.WriteByte(' ')
				space = false
			}
			if 'A' <= c && c <= 'Z' {
				c += 'a' - 'A'
			}
			if c >= 0x80 {
				hi = true
			}
			b.WriteByte(c)
		}
	}
	s = b.String()
	if hi {
		s = cases.Fold().String(s)
	}
	return s
}

// parseLinkDest parses a link destination at s[i:], returning
// the destination, the end index just past the destination,
// and whether a destination was found.
func parseLinkDest(s string, i int) (string, int, bool) {
	if i >= len(s) {
		return "", 0, false
	}

	// “A sequence of zero or more characters between an opening < and a closing >
	// that contains no line endings or unescaped < or > characters,”
	if s[i] == '<' {
		for j := i + 1; ; j++ {
			if j >= len(s) || s[j] == '\n' || s[j] == '<' {
				return "", 0, false
			}
			if s[j] == '>' {
				return mdUnescape(s[i+1 : j]), j + 1, true
			}
			if s[j] == '\\' {
				j++
			}
		}
	}

	// “or a nonempty sequence of characters that does not start with <,
	// does not include ASCII control characters or space character,
	// and includes parentheses only if (a) they are backslash-escaped
	// or (b) they are part of a balanced pair of unescaped parentheses.
	depth := 0
	j := i
Loop:
	for ; j < len(s); j++ {
		switch s[j] {
		case '(':
			depth++
			if depth > 32 {
				// Avoid quadratic inputs by stopping if too deep.
				// This is the same depth that cmark-gfm uses.
				return "", 0, false
			}
		case ')':
			if depth == 0 {
				break Loop
			}
			depth--
		case '\\':
			if j+1 < len(s) {
				if s[j+1] == ' ' || s[j+1] == '\t' {
					return "", 0, false
				}
				j++
			}
		case ' ', '\t', '\n':
			break Loop
		}
	}
	if depth != 0 {
		return "", 0, false
	}
	return mdUnescape(s[i:j]), j, true
}

// closeBracket returns the index of the ']' matching the '[' at s[open],
// skipping escaped brackets and nested pairs, or -1.
func closeBracket(s *scanner, open int) int {
	if s.index("]", open) < 0 {
		return -1
	}
	src := s.src
	depth := 0
	for i := open; i < len(src); i++ {
		switch src[i] {
		case '\\':
			i++
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// parseInlineDest parses the parenthesized destination and optional title
// at s[i:] that follow the text of an inline link or image:
//
//	(url "title")
func parseInlineDest(s string, i int) (url, title string, end int, ok bool) {
	if i >= len(s) || s[i] != '(' {
		return
	}
	i = skipSpace(s, i+1)
	if i < len(s) && s[i] != ')' {
		var found bool
		url, i, found = parseLinkDest(s, i)
		if !found {
			return
		}
		j := skipSpace(s, i)
		if j < len(s) && j > i {
			if t, _, k, found := parseLinkTitle(s, j); found {
				title = t
				j = k
			}
		}
		i = skipSpace(s, j)
	}
	if i >= len(s) || s[i] != ')' {
		return
	}
	return url, title, i + 1, true
}

// skipSpace returns i + the number of spaces, tabs, and newlines
// at the start of s[i:].
func skipSpace(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n') {
		i++
	}
	return i
}

// matchLink matches an inline link: [text](url "title").
func matchLink(s *scanner, at int) (Match, bool, error) {
	c := closeBracket(s, at)
	if c < 0 {
		return Match{}, false, nil
	}
	url, title, end, ok := parseInlineDest(s.src, c+1)
	if !ok {
		return Match{}, false, nil
	}
	return Match{End: end, Groups: map[string]string{
		"text":  s.src[at+1 : c],
		"url":   url,
		"title": title,
	}}, true, nil
}

// matchReferenceLink matches a full [text][label], collapsed [label][],
// or shortcut [label] reference link.
func matchReferenceLink(s *scanner, at int) (Match, bool, error) {
	c := closeBracket(s, at)
	if c < 0 || c == at+1 {
		return Match{}, false, nil
	}
	text := s.src[at+1 : c]
	end := c + 1
	label := text
	if end < len(s.src) && s.src[end] == '[' {
		if l, e, ok := parseLinkLabel(s.src, end); ok {
			label, end = l, e
		} else if strings.HasPrefix(s.src[end:], "[]") {
			end += 2
		}
	} else if end < len(s.src) && s.src[end] == '(' {
		// A failed inline link is not a shortcut reference.
		return Match{}, false, nil
	}
	if strings.ContainsAny(label, "[]") && label == text {
		return Match{}, false, nil
	}
	return Match{End: end, Groups: map[string]string{
		"text":  text,
		"label": normalizeLabel(label),
	}}, true, nil
}

// imageSize matches the size prefix of a sized image: !(WxH), !(W), !(_xH).
var imageSize = regexp.MustCompile(`\A!\((?P<width>[0-9.]+[a-z%]*|_)(?:x(?P<height>[0-9.]+[a-z%]*|_))?\)\[`)

// matchImage matches an image, ![alt](url "title"), or a sized image,
// !(WxH)[alt](url "title").
func matchImage(s *scanner, at int) (Match, bool, error) {
	groups := map[string]string{}
	open := at + 1
	if loc := imageSize.FindStringSubmatchIndex(s.src[at:]); loc != nil {
		for i, name := range imageSize.SubexpNames() {
			if name != "" && loc[2*i] >= 0 {
				groups[name] = s.src[at+loc[2*i] : at+loc[2*i+1]]
			}
		}
		open = at + loc[1] - 1
	} else if !strings.HasPrefix(s.src[at:], "![") {
		return Match{}, false, nil
	}
	c := closeBracket(s, open)
	if c < 0 {
		return Match{}, false, nil
	}
	url, title, end, ok := parseInlineDest(s.src, c+1)
	if !ok {
		return Match{}, false, nil
	}
	groups["alt"] = s.src[open+1 : c]
	groups["url"] = url
	groups["title"] = title
	return Match{End: end, Groups: groups}, true, nil
}

// matchReferenceImage matches ![alt][label], ![label][], or ![label].
func matchReferenceImage(s *scanner, at int) (Match, bool, error) {
	if !strings.HasPrefix(s.src[at:], "![") {
		return Match{}, false, nil
	}
	m, ok, err := matchReferenceLink(s, at+1)
	if !ok || err != nil {
		return Match{}, false, err
	}
	return Match{End: m.End, Groups: map[string]string{
		"alt":   m.Groups["text"],
		"label": m.Groups["label"],
	}}, true, nil
}

// autolink matches an autolink: an absolute URI or an email address in angle brackets.
var autolink = compose(`<(?:(?P<url>[A-Za-z][A-Za-z0-9+.\-]{1,31}:[^\x00-\x20<>]*)|(?P<email>[A-Za-z0-9.!#$%&'*+/=?^_` + "`" + `{|}~\-]+@[A-Za-z0-9](?:[A-Za-z0-9\-]{0,61}[A-Za-z0-9])?(?:\.[A-Za-z0-9](?:[A-Za-z0-9\-]{0,61}[A-Za-z0-9])?)*))>`)

// matchURL matches a bare http, https, or www URL that is not part of a word.
// Trailing punctuation and unbalanced closing parentheses are not part of the URL.
func matchURL(s *scanner, at int) (Match, bool, error) {
	src := s.src
	if at > 0 && (isLetterDigit(src[at-1]) || src[at-1] == '/' || src[at-1] == '@') {
		return Match{}, false, nil
	}
	rest := src[at:]
	var n int
	switch {
	case strings.HasPrefix(rest, "https://"):
		n = len("https://")
	case strings.HasPrefix(rest, "http://"):
		n = len("http://")
	case strings.HasPrefix(rest, "www."):
		n = len("www.")
	default:
		return Match{}, false, nil
	}
	end := at + n
	for end < len(src) && src[end] > ' ' && src[end] != '<' {
		end++
	}
	for end > at+n {
		c := src[end-1]
		if strings.IndexByte("?!.,:*_~'\"", c) >= 0 {
			end--
			continue
		}
		if c == ')' && strings.Count(src[at:end], "(") < strings.Count(src[at:end], ")") {
			end--
			continue
		}
		break
	}
	if end == at+n {
		return Match{}, false, nil
	}
	url := src[at:end]
	if strings.HasPrefix(url, "www.") {
		url = "http://" + url
	}
	return Match{End: end, Groups: map[string]string{"url": url}}, true, nil
}
