// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quarkdown

import (
	"fmt"
	"io/fs"
	"strings"

	"github.com/emirpasic/gods/sets/linkedhashset"
	"go.uber.org/zap"
)

// A Pipeline compiles Quarkdown sources into finalized trees.
type Pipeline struct {
	opts []Option
}

// NewPipeline returns a pipeline whose root contexts are configured by opts.
func NewPipeline(opts ...Option) *Pipeline {
	return &Pipeline{opts: opts}
}

// A Result is a compiled document.
type Result struct {
	Name     string
	Document *Document
	Context  *Context

	// Subdocuments are the documents reached by following links
	// to Quarkdown sources, in breadth-first order.
	// It is set only on the result for the root document.
	Subdocuments []*Result
}

// Run parses the source src of the document name, expands its function
// calls, and then compiles every Quarkdown source it links to,
// directly or through other subdocuments, each once.
// Subdocuments are read from the pipeline's file system; each is
// compiled in a subdocument fork of the root context.
func (p *Pipeline) Run(name, src string) (*Result, error) {
	ctx := NewContext(append(append([]Option(nil), p.opts...), WithName(name))...)
	root, err := compile(ctx, name, src)
	if err != nil {
		return nil, err
	}

	seen := linkedhashset.New(name)
	pending := ctx.Subdocuments().Targets(name)
	for len(pending) > 0 {
		target := pending[0]
		pending = pending[1:]
		if seen.Contains(target) {
			continue
		}
		seen.Add(target)
		data, err := readSource(ctx.FileSystem(), target)
		if err != nil {
			if ctx.Strict() {
				return nil, err
			}
			ctx.Logger().Warn("skipping subdocument", zap.String("name", target), zap.Error(err))
			continue
		}
		sub, err := compile(ctx.ForkSubdocument(target), target, string(data))
		if err != nil {
			return nil, err
		}
		root.Subdocuments = append(root.Subdocuments, sub)
		pending = append(pending, ctx.Subdocuments().Targets(target)...)
	}
	return root, nil
}

func compile(ctx *Context, name, src string) (*Result, error) {
	ctx.Logger().Debug("compiling", zap.String("name", name))
	doc, err := ctx.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if err := ctx.Expand(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &Result{Name: name, Document: doc, Context: ctx}, nil
}

// readSource reads the file name from fsys.
func readSource(fsys fs.FS, name string) ([]byte, error) {
	if fsys == nil {
		return nil, fmt.Errorf("%s: no file system", name)
	}
	return fs.ReadFile(fsys, strings.TrimPrefix(name, "/"))
}
