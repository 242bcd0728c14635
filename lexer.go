// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quarkdown

import "unicode/utf8"

// A Lexer splits source text into tokens by trying the patterns
// of a catalog in order at the current offset. The first pattern
// that matches wins.
//
// A Lexer makes a single forward pass: once [Lexer.Next] has
// returned false, it returns false forever.
type Lexer struct {
	s        scanner
	patterns []Pattern
	block    bool
	pos      int
	ahead    *Token // match found while collecting fallback text
	err      error
}

// NewBlockLexer returns a lexer over src using the block patterns of f.
func NewBlockLexer(src string, f *Flavor) *Lexer {
	return &Lexer{s: scanner{src: src, flavor: f}, patterns: f.Block, block: true}
}

// NewInlineLexer returns a lexer over src using the inline patterns of f.
func NewInlineLexer(src string, f *Flavor) *Lexer {
	return &Lexer{s: scanner{src: src, flavor: f}, patterns: f.Inline}
}

// Next returns the next token and true,
// or false when the input is exhausted or an error occurred.
func (l *Lexer) Next() (Token, bool) {
	if l.ahead != nil {
		t := *l.ahead
		l.ahead = nil
		l.pos = t.Span.End
		return t, true
	}
	if l.err != nil || l.pos >= len(l.s.src) {
		return Token{}, false
	}
	if t, ok := l.matchAt(l.pos); ok {
		l.pos = t.Span.End
		return t, true
	}
	if l.err != nil {
		return Token{}, false
	}

	// Nothing matched: emit fallback text, coalescing until some pattern matches.
	start := l.pos
	for {
		l.pos = l.advance(l.pos)
		if l.pos >= len(l.s.src) {
			break
		}
		if t, ok := l.matchAt(l.pos); ok {
			l.ahead = &t
			break
		}
		if l.err != nil {
			break
		}
	}
	return Token{Kind: TokenText, Text: l.s.src[start:l.pos], Span: Span{start, l.pos}}, true
}

// Err returns the first error the lexer encountered, if any.
func (l *Lexer) Err() error {
	return l.err
}

// advance returns the offset of the next position after i
// at which the lexer may try the patterns again:
// the next line for block lexers, the next rune otherwise.
func (l *Lexer) advance(i int) int {
	if l.block {
		return lineAt(l.s.src, i).next
	}
	_, n := utf8.DecodeRuneInString(l.s.src[i:])
	return i + n
}

// matchAt tries every pattern at offset at, in catalog order.
func (l *Lexer) matchAt(at int) (Token, bool) {
	src := l.s.src
	c := src[at]
	if l.block {
		c = l.s.lead(at)
	}
	for i := range l.patterns {
		p := &l.patterns[i]
		if !p.canStart(c) {
			continue
		}
		m, ok, err := p.Matcher.Match(&l.s, at)
		if err != nil {
			l.err = err
			return Token{}, false
		}
		if !ok || m.End <= at {
			continue
		}
		kind := p.Kind
		if m.Literal {
			kind = TokenText
		}
		return Token{
			Kind:   kind,
			Text:   src[at:m.End],
			Groups: m.Groups,
			Span:   Span{at, m.End},
			Call:   m.Call,
		}, true
	}
	return Token{}, false
}

// Tokenize drains l, returning all of its tokens and its error.
func Tokenize(l *Lexer) ([]Token, error) {
	var out []Token
	for {
		t, ok := l.Next()
		if !ok {
			break
		}
		out = append(out, t)
	}
	return out, l.Err()
}
