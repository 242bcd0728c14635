// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quarkdown

import (
	goflag "flag"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
	"golang.org/x/tools/txtar"
)

var goldmarkFlag = goflag.Bool("goldmark", false, "cross-check base flavor block structure against goldmark")

// Test parses each .md file of the testdata archives
// and compares the tree dump with the following .dump file.
func Test(t *testing.T) {
	files, err := filepath.Glob("testdata/*.txt")
	if err != nil {
		t.Fatal(err)
	}
	for _, file := range files {
		t.Run(strings.TrimSuffix(filepath.Base(file), ".txt"), func(t *testing.T) {
			a, err := txtar.ParseFile(file)
			if err != nil {
				t.Fatal(err)
			}

			flavor, err := archiveFlavor(a.Comment)
			if err != nil {
				t.Fatal(err)
			}

			var ncase, npass int
			for i := 0; i+2 <= len(a.Files); i += 2 {
				ncase++
				md := a.Files[i]
				dump := a.Files[i+1]
				name := strings.TrimSuffix(md.Name, ".md")
				if name != strings.TrimSuffix(dump.Name, ".dump") {
					t.Fatalf("mismatched file pair: %s and %s", md.Name, dump.Name)
				}

				t.Run(name, func(t *testing.T) {
					doc, err := NewContext(WithFlavor(flavor)).Parse(decode(string(md.Data)))
					if err != nil {
						t.Fatal(err)
					}
					if diff := cmp.Diff(string(dump.Data), Dump(doc)); diff != "" {
						t.Fatalf("input %q\n(-want +have)\n%s", md.Data, diff)
					}
					npass++
				})

				if !*goldmarkFlag || flavor != BaseMarkdown {
					continue
				}
				t.Run("goldmark/"+name, func(t *testing.T) {
					src := decode(string(md.Data))
					doc, err := NewContext(WithFlavor(flavor)).Parse(src)
					if err != nil {
						t.Fatal(err)
					}
					gm := goldmark.New(goldmark.WithExtensions(extension.GFM))
					root := gm.Parser().Parse(text.NewReader([]byte(src)))
					var want []string
					for c := root.FirstChild(); c != nil; c = c.NextSibling() {
						want = append(want, c.Kind().String())
					}
					var have []string
					for _, b := range doc.Blocks {
						if k := goldmarkKind(b); k != "" {
							have = append(have, k)
						}
					}
					if diff := cmp.Diff(want, have); diff != "" {
						t.Fatalf("input %q\nblock kinds (-goldmark +have)\n%s", md.Data, diff)
					}
				})
			}
			t.Logf("%d/%d pass", npass, ncase)
		})
	}
}

// goldmarkKind returns the goldmark node kind name for b,
// or "" for blocks goldmark keeps out of the tree.
func goldmarkKind(b Block) string {
	switch b := b.(type) {
	case *Heading:
		return "Heading"
	case *Paragraph:
		return "Paragraph"
	case *List:
		return "List"
	case *Quote:
		return "Blockquote"
	case *ThematicBreak:
		return "ThematicBreak"
	case *Table:
		return "Table"
	case *Comment:
		return "HTMLBlock"
	case *CodeBlock:
		if b.Fence != "" {
			return "FencedCodeBlock"
		}
		return "CodeBlock"
	}
	return ""
}

func decode(s string) string {
	s = strings.ReplaceAll(s, "^J\n", "\n")
	s = strings.ReplaceAll(s, "^M", "\r")
	s = strings.ReplaceAll(s, "^D\n", "")
	s = strings.ReplaceAll(s, "^@", "\x00")
	return s
}

// archiveFlavor extracts a line of the form
//
//	flavor: name
//
// from data, defaulting to the Quarkdown flavor.
func archiveFlavor(data []byte) (*Flavor, error) {
	f := Quarkdown
	for _, line := range strings.Split(string(data), "\n") {
		if strings.HasPrefix(line, "//") {
			continue
		}
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		switch key {
		case "flavor":
			if f = FlavorByName(strings.TrimSpace(value)); f == nil {
				return nil, fmt.Errorf("unknown flavor: %q", value)
			}
		default:
			return nil, fmt.Errorf("unknown option: %q", key)
		}
	}
	return f, nil
}
