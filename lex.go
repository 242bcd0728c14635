// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quarkdown

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// isPunct reports whether c is Markdown punctuation.
func isPunct(c byte) bool {
	return '!' <= c && c <= '/' || ':' <= c && c <= '@' || '[' <= c && c <= '`' || '{' <= c && c <= '~'
}

// isLetter reports whether c is an ASCII letter.
func isLetter(c byte) bool {
	return 'A' <= c && c <= 'Z' || 'a' <= c && c <= 'z'
}

// isDigit reports whether c is an ASCII digit.
func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// isLetterDigit reports whether c is an ASCII letter or digit.
func isLetterDigit(c byte) bool {
	return isLetter(c) || isDigit(c)
}

// isNameStart reports whether c can begin a function name.
// Digits are accepted so that implicit lambda parameters (.1, .2) can be referenced.
func isNameStart(c byte) bool {
	return isLetterDigit(c) || c == '_'
}

// isNameChar reports whether c can continue a function name.
func isNameChar(c byte) bool {
	return isLetterDigit(c) || c == '_'
}

// isSpaceTab reports whether c is a space or a tab.
func isSpaceTab(c byte) bool {
	return c == ' ' || c == '\t'
}

// isUnicodeSpace reports whether r is a Unicode space as defined by Markdown.
// This is not the same as unicode.IsSpace.
// For example, U+0085 does not satisfy isUnicodeSpace
// but does satisfy unicode.IsSpace.
func isUnicodeSpace(r rune) bool {
	if r < 0x80 {
		return r == ' ' || r == '\t' || r == '\f' || r == '\n'
	}
	return unicode.In(r, unicode.Zs)
}

// isUnicodePunct reports whether r is Unicode punctuation as defined by Markdown.
// This is not the same as unicode.Punct; it also includes unicode.Symbol.
func isUnicodePunct(r rune) bool {
	if r < 0x80 {
		return isPunct(byte(r))
	}
	return unicode.In(r, unicode.Punct, unicode.Symbol)
}

// mdUnescape returns the Markdown unescaping of s:
// backslash escapes of punctuation are removed
// and HTML entities are decoded.
func mdUnescape(s string) string {
	if !strings.Contains(s, `\`) && !strings.Contains(s, `&`) {
		return s
	}
	var b strings.Builder
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			if i+1 < len(s) && isPunct(s[i+1]) {
				b.WriteString(s[start:i])
				start = i + 1
				i++
			}
		case '&':
			if n, text, ok := scanEntity(s, i); ok {
				b.WriteString(s[start:i])
				b.WriteString(text)
				start = i + n
				i += n - 1
			}
		}
	}
	b.WriteString(s[start:])
	return b.String()
}

// scanEntity scans an HTML entity or numeric character reference at s[i:],
// returning its length and decoded text.
func scanEntity(s string, i int) (n int, text string, ok bool) {
	j := i + 1
	if j < len(s) && s[j] == '#' {
		j++
		if j < len(s) && (s[j] == 'x' || s[j] == 'X') {
			j++
		}
	}
	k := j
	for k < len(s) && k-j < 32 && isLetterDigit(s[k]) {
		k++
	}
	if k == j || k >= len(s) || s[k] != ';' {
		return 0, "", false
	}
	raw := s[i : k+1]
	text = html.UnescapeString(raw)
	if text == raw {
		return 0, "", false
	}
	return len(raw), text, true
}

// indentOf returns the indentation width of s in columns,
// expanding tabs to the next multiple of four.
func indentOf(s string) int {
	col := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ':
			col++
		case '\t':
			col += 4 - col%4
		default:
			return col
		}
	}
	return col
}

// stripIndent removes up to n columns of leading indentation from s.
// A tab that straddles the limit is replaced by the spaces it leaves over.
func stripIndent(s string, n int) string {
	col := 0
	for i := 0; i < len(s); i++ {
		if col >= n {
			return s[i:]
		}
		switch s[i] {
		case ' ':
			col++
		case '\t':
			w := 4 - col%4
			if col+w > n {
				return strings.Repeat(" ", col+w-n) + s[i+1:]
			}
			col += w
		default:
			return s[i:]
		}
	}
	return ""
}

func trimLeftSpaceTab(s string) string {
	i := 0
	for i < len(s) && isSpaceTab(s[i]) {
		i++
	}
	return s[i:]
}

func trimRightSpaceTab(s string) string {
	j := len(s)
	for j > 0 && isSpaceTab(s[j-1]) {
		j--
	}
	return s[:j]
}

func trimSpaceTab(s string) string {
	return trimRightSpaceTab(trimLeftSpaceTab(s))
}

func trimSpaceTabNewline(s string) string {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n') {
		i++
	}
	s = s[i:]
	j := len(s)
	for j > 0 && (s[j-1] == ' ' || s[j-1] == '\t' || s[j-1] == '\n') {
		j--
	}
	return s[:j]
}
