// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quarkdown

import (
	"fmt"
	"strings"
	"testing"
)

var rep = strings.Repeat

func repf(f func(int) string, n int) string {
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = f(i)
	}
	return strings.Join(out, "")
}

// Many cases here derived from cmark-gfm/test/pathological_tests.py.
// Inputs marked plain must come out as one paragraph holding the input text.

var bigTests = []struct {
	name  string
	in    string
	plain bool
}{
	{"nested strong emph", rep("*a **a ", 1000) + "b" + rep(" a** a*", 1000), false},
	{"many emph closers with no openers", rep("a_ ", 5000), true},
	{"many emph openers with no closers", rep("_a ", 5000), true},
	{"many link closers with no openers", rep("a]", 5000), true},
	{"many link openers with no closers", rep("[a", 5000), true},
	{"mismatched openers and closers", rep("*a_ ", 5000), false},
	{"link openers and emph closers", rep("[ a_", 5000), false},
	{"pattern [ (]( repeated", rep("[ (](", 5000), false},
	{"pattern ![[]() repeated", rep("![[]()", 5000), false},
	{"nested brackets", rep("[", 5000) + "a" + rep("]", 5000), false},
	{"nested block quotes", rep("> ", 500) + "a", false},
	{"deeply nested lists", repf(func(x int) string { return rep("  ", x) + "* a\n" }, 100), false},
	{"backticks", repf(func(x int) string { return "e" + rep("`", x) }, 500), false},
	{"unclosed links", rep("[a](b", 5000), false},
	{"unclosed <!--", "</" + rep(" <!--", 5000), false},
	{"many call markers", rep("a .b ", 5000), false},
	{"deeply nested call arguments", ".f {" + rep("{", 5000) + rep("}", 5000) + "}", false},
	{"long call chain", ".a" + rep("::a {x}", 5000), false},
	{"tables", rep("abc\ndef\n|-\n", 1000), false},
}

func compress(s string) string {
	var out []byte
	start := 0
S:
	for i := 0; i+4 < len(s); i++ {
		c := s[i]
		for j := i + 1; j < i+100 && j < len(s); j++ {
			if s[j] == c {
				n := 1
				w := j - i
				for j+w <= len(s) && s[i:i+w] == s[j:j+w] {
					j += w
					n++
				}
				if n > 2 {
					out = append(out, s[start:i]...)
					out = fmt.Appendf(out, "«%d:%s»", n, s[i:i+w])
					start = j
					i = start - 1
					continue S
				}
			}
		}
	}
	out = append(out, s[start:]...)
	return string(out)
}

func TestBig(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping in -short mode")
	}
	for _, tt := range bigTests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := NewContext().Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q): %v", compress(tt.in), err)
			}
			if len(doc.Blocks) == 0 {
				t.Fatalf("Parse(%q): no blocks", compress(tt.in))
			}
			if !tt.plain {
				return
			}
			para, ok := doc.Blocks[0].(*Paragraph)
			if len(doc.Blocks) != 1 || !ok {
				t.Fatalf("Parse(%q):\n%s", compress(tt.in), compress(Dump(doc)))
			}
			if have, want := PlainText(para.Text), strings.TrimSpace(tt.in); have != want {
				t.Fatalf("Parse(%q): text %q, want %q", compress(tt.in), compress(have), compress(want))
			}
		})
	}
}
