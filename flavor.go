// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quarkdown

import "sort"

// A Flavor is a Markdown dialect: the ordered block and inline
// pattern catalogs its lexers try.
type Flavor struct {
	Name   string
	Block  []Pattern
	Inline []Pattern

	// Calls reports whether the flavor recognizes function calls.
	Calls bool
}

// BaseMarkdown is plain Markdown with tables, task lists,
// strikethrough, footnotes, and typed block quotes.
var BaseMarkdown = &Flavor{
	Name: "base",
	Block: []Pattern{
		{Name: "blank", Kind: TokenBlankLine, Matcher: compose(`[ \t]*{{eol}}`), First: "\n", order: 10},
		{Name: "comment", Kind: TokenComment, Matcher: matchFunc(matchBlockComment), First: "<", order: 20},
		{Name: "indented code", Kind: TokenIndentedCode, Matcher: matchFunc(matchIndentedCode), order: 40},
		{Name: "fenced code", Kind: TokenFencedCode, Matcher: matchFunc(matchFencedCode), First: "`~", Interrupt: matchFunc(matchFenceStart), order: 50},
		{Name: "thematic break", Kind: TokenHorizontalRule, Matcher: thematicBreak, First: "-*_", Interrupt: thematicBreak, order: 80},
		{Name: "heading", Kind: TokenHeading, Matcher: baseHeading, First: "#", Interrupt: baseHeading, order: 90},
		{Name: "link definition", Kind: TokenLinkDefinition, Matcher: matchFunc(matchLinkDefinition), First: "[", order: 110},
		{Name: "footnote definition", Kind: TokenFootnoteDefinition, Matcher: matchFunc(matchFootnoteDefinition), First: "[", order: 120},
		{Name: "list", Kind: TokenList, Matcher: matchFunc(matchList), First: "-*+0123456789", Interrupt: matchFunc(matchListInterrupt), order: 130},
		{Name: "table", Kind: TokenTable, Matcher: matchFunc(matchTable), order: 140},
		{Name: "html", Kind: TokenHTML, Matcher: matchFunc(matchHTMLBlock), First: "<", Interrupt: matchFunc(matchHTMLStart), order: 150},
		{Name: "quote", Kind: TokenBlockQuote, Matcher: matchFunc(matchBlockQuote), First: ">", Interrupt: matchFunc(matchQuoteStart), order: 160},
		{Name: "setext heading", Kind: TokenSetextHeading, Matcher: matchFunc(matchSetextHeading), order: 170},
		{Name: "paragraph", Kind: TokenParagraph, Matcher: matchFunc(matchParagraph), order: 180},
	},
	Inline: []Pattern{
		{Name: "escape", Kind: TokenEscape, Matcher: escape, First: `\`, order: 10},
		{Name: "entity", Kind: TokenEntity, Matcher: matchFunc(matchEntity), First: "&", order: 20},
		{Name: "comment", Kind: TokenComment, Matcher: matchFunc(matchInlineComment), First: "<", order: 30},
		{Name: "code span", Kind: TokenCodeSpan, Matcher: matchFunc(matchCodeSpan), First: "`", order: 40},
		{Name: "line break", Kind: TokenLineBreak, Matcher: lineBreak, First: ` \`, order: 70},
		{Name: "autolink", Kind: TokenAutolink, Matcher: autolink, First: "<", order: 80},
		{Name: "image", Kind: TokenImage, Matcher: matchFunc(matchImage), First: "!", order: 90},
		{Name: "reference image", Kind: TokenReferenceImage, Matcher: matchFunc(matchReferenceImage), First: "!", order: 100},
		{Name: "footnote reference", Kind: TokenFootnoteReference, Matcher: footnoteReference, First: "[", order: 110},
		{Name: "link", Kind: TokenLink, Matcher: matchFunc(matchLink), First: "[", order: 120},
		{Name: "reference link", Kind: TokenReferenceLink, Matcher: matchFunc(matchReferenceLink), First: "[", order: 130},
		{Name: "url", Kind: TokenURL, Matcher: matchFunc(matchURL), First: "hw", order: 140},
		{Name: "strong emphasis", Kind: TokenStrongEmphasis, Matcher: matchDelimited("*_", 3), First: "*_", order: 150},
		{Name: "strong", Kind: TokenStrong, Matcher: matchDelimited("*_", 2), First: "*_", order: 160},
		{Name: "emphasis", Kind: TokenEmphasis, Matcher: matchDelimited("*_", 1), First: "*_", order: 170},
		{Name: "strikethrough", Kind: TokenStrikethrough, Matcher: matchDelimited("~", 2), First: "~", order: 180},
	},
}

// Quarkdown extends [BaseMarkdown] with function calls, math,
// page breaks, decorative headings, and typographic replacements.
var Quarkdown = BaseMarkdown.Extend("quarkdown", true,
	[]Pattern{
		{Name: "function call", Kind: TokenFunctionCall, Matcher: matchFunc(matchBlockCall), First: ".", Interrupt: matchFunc(matchBlockCall), order: 30},
		{Name: "math", Kind: TokenMultilineMath, Matcher: matchFunc(matchMathBlock), First: "$", Interrupt: matchFunc(matchMathStart), order: 60},
		{Name: "oneline math", Kind: TokenOnelineMath, Matcher: onelineMath, First: "$", Interrupt: onelineMath, order: 70},
		{Name: "heading", Kind: TokenHeading, Matcher: heading, First: "#", Interrupt: heading, order: 90},
		{Name: "page break", Kind: TokenPageBreak, Matcher: pageBreak, First: "<", Interrupt: pageBreak, order: 100},
	},
	[]Pattern{
		{Name: "math", Kind: TokenInlineMath, Matcher: matchFunc(matchInlineMath), First: "$", order: 50},
		{Name: "function call", Kind: TokenFunctionCall, Matcher: matchFunc(matchInlineCall), First: ".", order: 60},
		{Name: "typography", Kind: TokenTypography, Matcher: matchFunc(matchTypography), First: ".-<=(", order: 190},
	},
)

var (
	baseHeading = compose(`{{indent}}(?P<level>#{1,6})(?:[ \t]+(?P<text>[^\r\n]*))?{{eol}}`)
	heading     = compose(`{{indent}}(?P<level>#{1,6})(?P<decorative>!?)(?:[ \t]+(?P<text>[^\r\n]*))?{{eol}}`)
	onelineMath = compose(`{{indent}}\$[ \t]+(?P<expr>[^\r\n]+?)[ \t]+\${{eol}}`)
)

// Extend returns a new flavor holding f's patterns plus the given ones.
// A pattern with the same name as one of f's replaces it;
// the others are placed by their order among f's.
func (f *Flavor) Extend(name string, calls bool, block, inline []Pattern) *Flavor {
	return &Flavor{
		Name:   name,
		Block:  merge(f.Block, block),
		Inline: merge(f.Inline, inline),
		Calls:  f.Calls || calls,
	}
}

func merge(base, add []Pattern) []Pattern {
	out := make([]Pattern, 0, len(base)+len(add))
	names := make(map[string]bool)
	for _, p := range add {
		names[p.Name] = true
	}
	for _, p := range base {
		if !names[p.Name] {
			out = append(out, p)
		}
	}
	out = append(out, add...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].order < out[j].order })
	return out
}

// FlavorByName returns the flavor with the given name, or nil.
func FlavorByName(name string) *Flavor {
	switch name {
	case BaseMarkdown.Name, "markdown":
		return BaseMarkdown
	case Quarkdown.Name, "":
		return Quarkdown
	}
	return nil
}
