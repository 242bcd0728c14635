// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quarkdown

import (
	"strings"
)

// A WalkedArgument is a function call argument as written in the source.
type WalkedArgument struct {
	Name  string // empty for positional arguments
	Value string // raw text between the outer braces
}

// A WalkedCall is the syntax-only shape of a function call:
//
//	.name {positional} named:{value}
//	    indented body
//
// Chained calls (.a::b) are linked through Next.
type WalkedCall struct {
	Name    string
	Args    []WalkedArgument
	Body    string
	HasBody bool
	Next    *WalkedCall
	Span    Span
}

// walkCall scans the function call whose '.' marker is at src[at],
// returning the call and the offset just past it.
// It returns a nil call if no call starts at src[at].
//
// In block mode, the call must be the only content of its line
// (its arguments may span several lines), and the lines that follow,
// indented more deeply than the call line, are its body.
// The returned offset is then at a line boundary.
func walkCall(src string, at int, block bool) (*WalkedCall, int, error) {
	if at+1 >= len(src) || src[at] != '.' {
		return nil, at, nil
	}
	call, end, err := walk(src, at+1)
	if call == nil || err != nil {
		return nil, at, err
	}
	call.Span.Start = at
	if !block {
		return call, end, nil
	}

	rest := lineAt(src, end)
	if !rest.isBlank() {
		return nil, at, nil
	}
	last := call
	for last.Next != nil {
		last = last.Next
	}
	last.Body, last.HasBody, end = walkBody(src, at, rest.next)
	return call, end, nil
}

// walk scans a call name starting at src[i] and its arguments,
// following any :: chain.
func walk(src string, i int) (*WalkedCall, int, error) {
	start := i
	if i >= len(src) || !isNameStart(src[i]) {
		return nil, i, nil
	}
	for i < len(src) && isNameChar(src[i]) {
		i++
	}
	call := &WalkedCall{Name: src[start:i], Span: Span{start - 1, i}}

	for {
		j := i
		for j < len(src) && isSpaceTab(src[j]) {
			j++
		}
		name, k := argName(src, j)
		if k >= len(src) || src[k] != '{' {
			break
		}
		value, end, err := walkArgument(src, k)
		if err != nil {
			return nil, i, err
		}
		call.Args = append(call.Args, WalkedArgument{Name: name, Value: value})
		i = end
	}
	call.Span.End = i

	if strings.HasPrefix(src[i:], "::") {
		next, end, err := walk(src, i+2)
		if err != nil {
			return nil, i, err
		}
		if next != nil {
			next.Span.Start = i
			call.Next = next
			return call, end, nil
		}
	}
	return call, i, nil
}

// argName scans an optional "name:" prefix of a named argument at src[j:].
// It returns the name and the offset of the expected opening brace,
// or "" and j if there is no name.
func argName(src string, j int) (string, int) {
	k := j
	for k < len(src) && isNameChar(src[k]) {
		k++
	}
	if k > j && k+1 < len(src) && src[k] == ':' && src[k+1] == '{' {
		return src[j:k], k + 1
	}
	return "", j
}

// walkArgument scans the brace-delimited argument starting at src[open],
// counting nested braces. Backslash-escaped braces do not count.
func walkArgument(src string, open int) (string, int, error) {
	depth := 0
	for k := open; k < len(src); k++ {
		switch src[k] {
		case '\\':
			k++
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return src[open+1 : k], k + 1, nil
			}
		}
	}
	return "", open, &StructuralError{Text: src[open:], Reason: "function argument: unbalanced braces"}
}

// walkBody scans the body of the block call whose marker is at src[at].
// Body lines start at offset pos and are indented more deeply than the call line;
// the first non-blank body line fixes the body's indentation, and the body ends
// before the first non-blank line indented less than that.
// The body text is returned with its indentation removed.
func walkBody(src string, at, pos int) (body string, ok bool, end int) {
	base := indentOf(src[strings.LastIndexByte(src[:at], '\n')+1:])
	end = pos
	level := -1
	var lines []string
	keep := 0
	for pos < len(src) {
		l := lineAt(src, pos)
		if l.isBlank() {
			if level >= 0 {
				lines = append(lines, "")
			}
			pos = l.next
			continue
		}
		ind := l.indent()
		if level < 0 && ind <= base || level >= 0 && ind < level {
			break
		}
		if level < 0 {
			level = ind
		}
		lines = append(lines, stripIndent(l.text, level))
		keep = len(lines)
		pos = l.next
		end = pos
	}
	if level < 0 {
		return "", false, end
	}
	return strings.Join(lines[:keep], "\n"), true, end
}
