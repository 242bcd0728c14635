// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quarkdown

import "fmt"

// A Span is a range of byte offsets [Start, End) into a source text.
type Span struct {
	Start, End int
}

// A TokenKind identifies the construct a [Token] was matched as.
type TokenKind int

const (
	TokenText TokenKind = iota

	// Block tokens.
	TokenBlankLine
	TokenComment
	TokenFunctionCall
	TokenIndentedCode
	TokenFencedCode
	TokenMultilineMath
	TokenOnelineMath
	TokenHorizontalRule
	TokenHeading
	TokenPageBreak
	TokenLinkDefinition
	TokenFootnoteDefinition
	TokenList
	TokenTable
	TokenHTML
	TokenBlockQuote
	TokenSetextHeading
	TokenParagraph

	// Inline tokens.
	TokenEscape
	TokenEntity
	TokenCodeSpan
	TokenInlineMath
	TokenLineBreak
	TokenAutolink
	TokenURL
	TokenImage
	TokenReferenceImage
	TokenFootnoteReference
	TokenLink
	TokenReferenceLink
	TokenStrongEmphasis
	TokenStrong
	TokenEmphasis
	TokenStrikethrough
	TokenTypography
)

var tokenNames = [...]string{
	TokenText:               "Text",
	TokenBlankLine:          "BlankLine",
	TokenComment:            "Comment",
	TokenFunctionCall:       "FunctionCall",
	TokenIndentedCode:       "IndentedCode",
	TokenFencedCode:         "FencedCode",
	TokenMultilineMath:      "MultilineMath",
	TokenOnelineMath:        "OnelineMath",
	TokenHorizontalRule:     "HorizontalRule",
	TokenHeading:            "Heading",
	TokenPageBreak:          "PageBreak",
	TokenLinkDefinition:     "LinkDefinition",
	TokenFootnoteDefinition: "FootnoteDefinition",
	TokenList:               "List",
	TokenTable:              "Table",
	TokenHTML:               "HTML",
	TokenBlockQuote:         "BlockQuote",
	TokenSetextHeading:      "SetextHeading",
	TokenParagraph:          "Paragraph",
	TokenEscape:             "Escape",
	TokenEntity:             "Entity",
	TokenCodeSpan:           "CodeSpan",
	TokenInlineMath:         "InlineMath",
	TokenLineBreak:          "LineBreak",
	TokenAutolink:           "Autolink",
	TokenURL:                "URL",
	TokenImage:              "Image",
	TokenReferenceImage:     "ReferenceImage",
	TokenFootnoteReference:  "FootnoteReference",
	TokenLink:               "Link",
	TokenReferenceLink:      "ReferenceLink",
	TokenStrongEmphasis:     "StrongEmphasis",
	TokenStrong:             "Strong",
	TokenEmphasis:           "Emphasis",
	TokenStrikethrough:      "Strikethrough",
	TokenTypography:         "Typography",
}

func (k TokenKind) String() string {
	if 0 <= k && int(k) < len(tokenNames) && tokenNames[k] != "" {
		return tokenNames[k]
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// A Token is a single lexed construct.
// Groups holds the named parts the matching pattern captured;
// Call is set for function calls and holds the walker's result.
type Token struct {
	Kind   TokenKind
	Text   string
	Groups map[string]string
	Span   Span
	Call   *WalkedCall
}

// Group returns the named capture group, or "" if absent.
func (t Token) Group(name string) string {
	return t.Groups[name]
}

func (t Token) String() string {
	return fmt.Sprintf("%v %d-%d %q", t.Kind, t.Span.Start, t.Span.End, t.Text)
}
