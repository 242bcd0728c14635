// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quarkdown

import (
	"crypto/sha256"
	"encoding/hex"
	"io/fs"
	"net/url"
	"path"
	"strings"

	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// A Media is a local file referenced by a document,
// to be exported alongside the rendered output.
type Media struct {
	Path string // path as written in the document
	Name string // export name, stable across runs
	fsys fs.FS
}

// Read returns the content of the file.
func (m *Media) Read() ([]byte, error) {
	if m.fsys == nil {
		return nil, &fs.PathError{Op: "read", Path: m.Path, Err: fs.ErrNotExist}
	}
	return fs.ReadFile(m.fsys, strings.TrimPrefix(path.Clean(m.Path), "/"))
}

// MediaStorage records the local media referenced by the documents
// of a session, in order of first reference.
type MediaStorage struct {
	m *linkedhashmap.Map
}

// NewMediaStorage returns an empty storage.
func NewMediaStorage() *MediaStorage {
	return &MediaStorage{m: linkedhashmap.New()}
}

// Add records the file at p, read from fsys, and returns its export name.
// The export name is derived from the path, so that adding the same
// path again returns the same name.
func (s *MediaStorage) Add(p string, fsys fs.FS) string {
	if v, ok := s.m.Get(p); ok {
		return v.(*Media).Name
	}
	m := &Media{Path: p, Name: mediaName(p), fsys: fsys}
	s.m.Put(p, m)
	return m.Name
}

func (s *MediaStorage) remove(p string) { s.m.Remove(p) }

// Lookup returns the media recorded for path p.
func (s *MediaStorage) Lookup(p string) (*Media, bool) {
	v, ok := s.m.Get(p)
	if !ok {
		return nil, false
	}
	return v.(*Media), true
}

// All returns the recorded media in order of first reference.
func (s *MediaStorage) All() []*Media {
	var out []*Media
	for _, v := range s.m.Values() {
		out = append(out, v.(*Media))
	}
	return out
}

// Len returns the number of recorded media.
func (s *MediaStorage) Len() int { return s.m.Size() }

// mediaName returns name-hash.ext for path p.
func mediaName(p string) string {
	sum := sha256.Sum256([]byte(p))
	base := path.Base(p)
	ext := path.Ext(base)
	return strings.TrimSuffix(base, ext) + "-" + hex.EncodeToString(sum[:4]) + ext
}

// isLocalPath reports whether u refers to a local file
// rather than a remote resource or a fragment.
func isLocalPath(u string) bool {
	if u == "" || strings.HasPrefix(u, "#") || strings.HasPrefix(u, "//") {
		return false
	}
	parsed, err := url.Parse(u)
	if err != nil {
		return false
	}
	return parsed.Scheme == "" && parsed.Host == ""
}
