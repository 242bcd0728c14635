// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quarkdown

import (
	"io/fs"
	"path"
	"sort"
	"strconv"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// DocumentInfo is the metadata of a document.
type DocumentInfo struct {
	Name    string
	Authors []string
	Lang    language.Tag
	Type    string // "plain", "paged", or "slides"
}

// DocumentTypes lists the accepted values of [DocumentInfo.Type].
var DocumentTypes = []string{"plain", "paged", "slides"}

// document holds the state a context keeps for one document.
// Scope forks share it; subdocument forks get their own.
type document struct {
	info      DocumentInfo
	links     map[string]*LinkDefinition
	footnotes map[string]*FootnoteDefinition
	toc       []*Heading
	ids       map[string]int
}

func newDocument(info DocumentInfo) *document {
	return &document{
		info:      info,
		links:     make(map[string]*LinkDefinition),
		footnotes: make(map[string]*FootnoteDefinition),
		ids:       make(map[string]int),
	}
}

// A session holds the state shared by every context
// created from one root context.
type session struct {
	flavor       *Flavor
	libraries    []*Library
	queue        *queue
	media        *MediaStorage
	localization *Localization
	subdocs      *SubdocumentGraph
	log          *zap.Logger
	strict       bool
}

// A Context is an evaluation scope of a document.
//
// Contexts form a tree. A root context is made by [NewContext].
// [Context.Fork] makes a child scope with its own function bindings;
// [Context.ForkSubdocument] additionally gives the child its own
// document metadata and registries; [Context.WithFileSystem] makes a
// context that differs from its receiver only in its file system.
// All contexts of a tree share the session: the flavor, libraries,
// the queue of pending calls, media, localization tables, and the
// subdocument graph.
type Context struct {
	parent *Context
	s      *session
	locals map[string]*Function
	doc    *document
	fsys   fs.FS
}

// An Option configures a root context.
type Option func(*Context)

// WithFlavor sets the Markdown flavor. The default is [Quarkdown].
func WithFlavor(f *Flavor) Option {
	return func(c *Context) { c.s.flavor = f }
}

// WithLibraries adds libraries of functions.
// Libraries added first take precedence.
func WithLibraries(libs ...*Library) Option {
	return func(c *Context) { c.s.libraries = append(c.s.libraries, libs...) }
}

// WithLogger sets the logger. The default discards all output.
func WithLogger(log *zap.Logger) Option {
	return func(c *Context) { c.s.log = log }
}

// WithFileSystem sets the file system from which documents
// read files, images, and subdocuments.
func WithFileSystem(fsys fs.FS) Option {
	return func(c *Context) { c.fsys = fsys }
}

// WithLocale sets the document language.
func WithLocale(tag language.Tag) Option {
	return func(c *Context) { c.doc.info.Lang = tag }
}

// WithStrict sets whether a failing function call aborts expansion (true,
// the default) or is replaced by an [ErrorBox].
func WithStrict(strict bool) Option {
	return func(c *Context) { c.s.strict = strict }
}

// WithLocalization adds localization tables.
func WithLocalization(l *Localization) Option {
	return func(c *Context) { c.s.localization.Merge(l) }
}

// WithName sets the document name.
func WithName(name string) Option {
	return func(c *Context) { c.doc.info.Name = name }
}

// NewContext returns a root context configured by opts.
func NewContext(opts ...Option) *Context {
	c := &Context{
		s: &session{
			flavor:       Quarkdown,
			queue:        &queue{},
			media:        NewMediaStorage(),
			localization: NewLocalization(),
			subdocs:      NewSubdocumentGraph(),
			log:          zap.NewNop(),
			strict:       true,
		},
		locals: make(map[string]*Function),
		doc:    newDocument(DocumentInfo{Lang: language.Und}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fork returns a child scope of c. Functions defined in the child
// are not visible in c; everything else is shared.
func (c *Context) Fork() *Context {
	return &Context{
		parent: c,
		s:      c.s,
		locals: make(map[string]*Function),
		doc:    c.doc,
		fsys:   c.fsys,
	}
}

// ForkSubdocument returns a child scope of c for the subdocument name,
// with a copy of c's metadata and empty registries.
func (c *Context) ForkSubdocument(name string) *Context {
	info := c.doc.info
	info.Name = name
	info.Authors = append([]string(nil), info.Authors...)
	f := c.Fork()
	f.doc = newDocument(info)
	return f
}

// WithFileSystem returns a context that shares c's bindings and state
// but reads files from fsys.
func (c *Context) WithFileSystem(fsys fs.FS) *Context {
	return &Context{
		parent: c.parent,
		s:      c.s,
		locals: c.locals,
		doc:    c.doc,
		fsys:   fsys,
	}
}

// Parent returns the enclosing scope, or nil for a root context.
func (c *Context) Parent() *Context { return c.parent }

func (c *Context) Flavor() *Flavor      { return c.s.flavor }
func (c *Context) Logger() *zap.Logger  { return c.s.log }
func (c *Context) Strict() bool         { return c.s.strict }
func (c *Context) FileSystem() fs.FS    { return c.fsys }
func (c *Context) Info() *DocumentInfo  { return &c.doc.info }
func (c *Context) Media() *MediaStorage { return c.s.media }

// Localization returns the localization tables of the session.
func (c *Context) Localization() *Localization { return c.s.localization }

// Subdocuments returns the graph of links between documents.
func (c *Context) Subdocuments() *SubdocumentGraph { return c.s.subdocs }

// LinkDefinition returns the link definition with the given
// normalized label.
func (c *Context) LinkDefinition(label string) (*LinkDefinition, bool) {
	d, ok := c.doc.links[label]
	return d, ok
}

// Footnote returns the footnote definition with the given normalized label.
func (c *Context) Footnote(label string) (*FootnoteDefinition, bool) {
	d, ok := c.doc.footnotes[label]
	return d, ok
}

// TableOfContents returns the headings of the document, in order.
// Decorative headings are not included.
func (c *Context) TableOfContents() []*Heading {
	return c.doc.toc
}

// Register records a node found by the parser: a link or footnote
// definition, a heading, or a function call, which is queued for expansion.
// The first definition of a label wins. Nothing is recorded inside [Context.Locked].
func (c *Context) Register(n Node) {
	if c.s.queue.locked > 0 {
		return
	}
	switch n := n.(type) {
	case *FunctionCall:
		c.s.queue.enqueue(n)
	case *LinkDefinition:
		if _, ok := c.doc.links[n.Label]; !ok {
			links := c.doc.links
			links[n.Label] = n
			c.s.queue.record(func() { delete(links, n.Label) })
		}
	case *FootnoteDefinition:
		if _, ok := c.doc.footnotes[n.Label]; !ok {
			footnotes := c.doc.footnotes
			footnotes[n.Label] = n
			c.s.queue.record(func() { delete(footnotes, n.Label) })
		}
	case *Heading:
		c.uniqueID(n)
		if !n.Decorative {
			doc, k := c.doc, len(c.doc.toc)
			doc.toc = append(doc.toc, n)
			c.s.queue.record(func() { doc.toc = doc.toc[:k] })
		}
	}
}

// uniqueID makes the id of a generated heading id unique in the document
// by appending -1, -2, and so on. Custom ids are kept as written.
func (c *Context) uniqueID(h *Heading) {
	if h.CustomID || h.ID == "" {
		return
	}
	ids, id := c.doc.ids, h.ID
	n := ids[id]
	ids[id] = n + 1
	if n > 0 {
		h.ID += "-" + strconv.Itoa(n)
	}
	c.s.queue.record(func() {
		h.ID = id
		if n == 0 {
			delete(ids, id)
		} else {
			ids[id] = n
		}
	})
}

// registerMedia records a local image for export.
func (c *Context) registerMedia(url string) {
	if c.s.queue.locked > 0 || !isLocalPath(url) {
		return
	}
	if _, ok := c.s.media.Lookup(url); ok {
		return
	}
	media := c.s.media
	media.Add(url, c.fsys)
	c.s.queue.record(func() { media.remove(url) })
}

// linkSubdocument records a link to another Quarkdown source.
func (c *Context) linkSubdocument(url string) {
	if c.s.queue.locked > 0 {
		return
	}
	target, ok := subdocumentTarget(url)
	if !ok {
		return
	}
	if !path.IsAbs(target) {
		target = path.Join(path.Dir(c.doc.info.Name), target)
	}
	from, subdocs := c.doc.info.Name, c.s.subdocs
	if subdocs.Link(from, target) {
		c.s.queue.record(func() { subdocs.unlink(from, target) })
	}
}

// DefineFunction binds f in c, hiding any function of the same name
// in enclosing scopes or libraries.
func (c *Context) DefineFunction(f *Function) {
	c.locals[f.Name] = f
}

// SetFunction rebinds the function named f.Name in the innermost scope
// that defines it, so that the change is visible wherever that binding is.
// It reports false, changing nothing, if no scope defines the name.
func (c *Context) SetFunction(f *Function) bool {
	for x := c; x != nil; x = x.parent {
		if _, ok := x.locals[f.Name]; ok {
			x.locals[f.Name] = f
			return true
		}
	}
	return false
}

// FunctionByName returns the function named name, looking in c,
// then in each enclosing scope, then in the libraries. It returns nil
// if there is no such function.
func (c *Context) FunctionByName(name string) *Function {
	for x := c; x != nil; x = x.parent {
		if f, ok := x.locals[name]; ok {
			return f
		}
	}
	for _, lib := range c.s.libraries {
		if f := lib.Lookup(name); f != nil {
			return f
		}
	}
	return nil
}

// Resolve is like [Context.FunctionByName] but reports an
// [*UnresolvedFunctionError], suggesting the closest known name,
// if there is no such function.
func (c *Context) Resolve(name string) (*Function, error) {
	if f := c.FunctionByName(name); f != nil {
		return f, nil
	}
	return nil, &UnresolvedFunctionError{Name: name, Suggestion: closest(name, c.names())}
}

// ResolveUnchecked returns a call of name bound to c with the given
// arguments, without checking that the function exists.
// The function is resolved when the call is evaluated.
func (c *Context) ResolveUnchecked(name string, args ...*Argument) *UncheckedCall {
	return &UncheckedCall{Call: &FunctionCall{Name: name, Args: args, Context: c}}
}

// names returns the names of all functions visible from c.
func (c *Context) names() []string {
	seen := make(map[string]bool)
	var out []string
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	for x := c; x != nil; x = x.parent {
		for name := range x.locals {
			add(name)
		}
	}
	for _, lib := range c.s.libraries {
		for _, f := range lib.Functions {
			add(f.Name)
		}
	}
	sort.Strings(out)
	return out
}

// closest returns the name in names closest to name, or "" if none is close.
func closest(name string, names []string) string {
	ranks := fuzzy.RankFindFold(name, names)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}
	best, dist := "", 3
	for _, n := range names {
		if d := fuzzy.LevenshteinDistance(name, n); d < dist {
			best, dist = n, d
		}
	}
	return best
}
