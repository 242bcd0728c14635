// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quarkdown

import "strings"

// A line is a single source line located by byte offsets.
type line struct {
	text  string // content without the line ending
	start int    // offset of the first byte of the line
	next  int    // offset just past the line ending; len(src) at EOF
}

// lineAt returns the line of src starting at offset at.
// A trailing \r before the \n is not part of text.
func lineAt(src string, at int) line {
	i := strings.IndexByte(src[at:], '\n')
	if i < 0 {
		return line{text: strings.TrimSuffix(src[at:], "\r"), start: at, next: len(src)}
	}
	return line{text: strings.TrimSuffix(src[at:at+i], "\r"), start: at, next: at + i + 1}
}

// isBlank reports whether the line holds only spaces and tabs.
func (l line) isBlank() bool {
	for i := 0; i < len(l.text); i++ {
		if !isSpaceTab(l.text[i]) {
			return false
		}
	}
	return true
}

// indent returns the indentation width of the line in columns.
func (l line) indent() int {
	return indentOf(l.text)
}

// body returns the text after up to three columns of indentation,
// and whether the indentation was at most three columns.
// Most block starts allow, and ignore, that much indentation.
func (l line) body() (string, bool) {
	if l.indent() > 3 {
		return "", false
	}
	return trimLeftSpaceTab(l.text), true
}

// splitLines splits s into lines, dropping line endings.
// A final line ending does not start an empty line.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.TrimSuffix(s, "\n")
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// joinLines joins lines with newlines, terminating the last one.
func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
