// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quarkdown

import (
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/tools/txtar"
)

// Fuzz checks that lexing and parsing are deterministic:
// the same source always yields the same tokens and the same tree.
func Fuzz(f *testing.F) {
	files, err := filepath.Glob("testdata/*.txt")
	if err != nil {
		f.Fatal(err)
	}
	for _, file := range files {
		a, err := txtar.ParseFile(file)
		if err != nil {
			f.Fatal(err)
		}
		for _, file := range a.Files {
			if strings.HasSuffix(file.Name, ".md") {
				f.Add(decode(string(file.Data)))
			}
		}
	}
	f.Fuzz(func(t *testing.T, s string) {
		if !utf8.ValidString(s) {
			return
		}
		for _, fl := range []*Flavor{BaseMarkdown, Quarkdown} {
			t1, err1 := Tokenize(NewBlockLexer(s, fl))
			t2, err2 := Tokenize(NewBlockLexer(s, fl))
			if diff := cmp.Diff(t1, t2); diff != "" || (err1 == nil) != (err2 == nil) {
				t.Fatalf("%s: tokens differ for %q:\n%s", fl.Name, s, diff)
			}

			d1, err1 := NewContext(WithFlavor(fl)).Parse(s)
			d2, err2 := NewContext(WithFlavor(fl)).Parse(s)
			if (err1 == nil) != (err2 == nil) {
				t.Fatalf("%s: errors differ for %q: %v, %v", fl.Name, s, err1, err2)
			}
			if err1 == nil && Dump(d1) != Dump(d2) {
				t.Fatalf("%s: trees differ for %q:\n%s\n%s", fl.Name, s, Dump(d1), Dump(d2))
			}
		}
	})
}
