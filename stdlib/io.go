// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stdlib

import (
	"errors"
	"io/fs"
	"path"
	"strings"

	qd "github.com/qdlang/quarkdown"
)

func ioFunctions() []*qd.Function {
	return []*qd.Function{
		{
			// .read {path} lines:{x..y}
			Name:   "read",
			Params: []qd.Parameter{param("path", qd.TypeString), optional("lines", qd.TypeRange)},
			Invoke: func(x *qd.Invocation) (qd.Value, error) {
				data, err := readFile(x.Context, x.String("path"))
				if err != nil {
					return nil, err
				}
				text := string(data)
				if x.Has("lines") {
					text = selectLines(text, x.Arg("lines").(qd.ObjectValue).Object.(qd.Range))
				}
				return qd.StringValue(text), nil
			},
		},
		{
			// .include {path} parses another source in place.
			// Files it reads are relative to its own directory.
			Name:   "include",
			Params: []qd.Parameter{param("path", qd.TypeString)},
			Invoke: func(x *qd.Invocation) (qd.Value, error) {
				p := x.String("path")
				data, err := readFile(x.Context, p)
				if err != nil {
					return nil, err
				}
				ctx := x.Context
				if dir := path.Dir(cleanPath(p)); dir != "." {
					sub, err := fs.Sub(ctx.FileSystem(), dir)
					if err != nil {
						return nil, err
					}
					ctx = ctx.WithFileSystem(sub)
				}
				return ctx.Coerce(qd.DynamicValue{V: string(data)}, qd.TypeMarkdown)
			},
		},
	}
}

func cleanPath(p string) string {
	return strings.TrimPrefix(path.Clean(p), "/")
}

func readFile(c *qd.Context, p string) ([]byte, error) {
	fsys := c.FileSystem()
	if fsys == nil {
		return nil, errors.New("no file system to read " + p)
	}
	return fs.ReadFile(fsys, cleanPath(p))
}

// selectLines returns the lines of text in r, numbered from 1.
func selectLines(text string, r qd.Range) string {
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	start, end := 1, len(lines)
	if r.Open&qd.OpenStart == 0 {
		start = max(r.Start, 1)
	}
	if r.Open&qd.OpenEnd == 0 {
		end = min(r.End, len(lines))
	}
	if start > end {
		return ""
	}
	return strings.TrimSuffix(strings.Join(lines[start-1:end], ""), "\n")
}
