// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quarkdown

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestTableOfContents(t *testing.T) {
	c := newTestContext()
	_, err := c.Parse("# Intro\n\n#! Deco\n\n## Intro\n\n# Custom {#my-id}\n\nSetext\n======\n")
	require.NoError(t, err)

	var have []string
	for _, h := range c.TableOfContents() {
		have = append(have, h.ID+" "+PlainText(h.Text))
	}
	assert.Equal(t, []string{"intro Intro", "intro-1 Intro", "my-id Custom", "setext Setext"}, have)
}

func TestDefinitionsFirstWins(t *testing.T) {
	c := newTestContext()
	_, err := c.Parse("[a]: /one\n[A]: /two\n\n[^n]: First.\n\n[^n]: Second.\n")
	require.NoError(t, err)

	def, ok := c.LinkDefinition("a")
	require.True(t, ok)
	assert.Equal(t, "/one", def.URL)

	fn, ok := c.Footnote("n")
	require.True(t, ok)
	assert.Equal(t, "paragraph\n  text \"First.\"\n", Dump(fn.Blocks[0]))
}

const localizationYAML = `
greetings:
  en:
    hello: Hello
  en-GB:
    hello: Hiya
  it:
    hello: Ciao
`

func TestLocalizationLookup(t *testing.T) {
	l, err := ParseLocalization([]byte(localizationYAML))
	require.NoError(t, err)
	assert.Equal(t, []string{"greetings"}, l.Tables())

	tests := map[string]string{
		"en":    "Hello",
		"en-US": "Hello",
		"en-GB": "Hiya",
		"it-IT": "Ciao",
	}
	for locale, want := range tests {
		s, err := l.Lookup("greetings", language.MustParse(locale), "hello")
		require.NoError(t, err, locale)
		assert.Equal(t, want, s, locale)
	}

	var lerr *LocalizationError
	_, err = l.Lookup("greetings", language.French, "hello")
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, "no entries for locale", lerr.Reason)

	_, err = l.Lookup("farewells", language.English, "hello")
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, "no such table", lerr.Reason)

	_, err = l.Lookup("greetings", language.English, "bye")
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, "no such key", lerr.Reason)
}

func TestContextLocalize(t *testing.T) {
	l, err := ParseLocalization([]byte(localizationYAML))
	require.NoError(t, err)

	c := newTestContext(WithLocalization(l), WithLocale(language.Italian))
	s, err := c.Localize("greetings", "hello")
	require.NoError(t, err)
	assert.Equal(t, "Ciao", s)

	_, err = newTestContext(WithLocalization(l)).Localize("greetings", "hello")
	var lerr *LocalizationError
	require.ErrorAs(t, err, &lerr)
}

func TestParseLocalizationBadLocale(t *testing.T) {
	_, err := ParseLocalization([]byte("t:\n  not a locale!:\n    k: v\n"))
	assert.Error(t, err)
}

func TestMedia(t *testing.T) {
	fsys := fstest.MapFS{"img/pic.png": {Data: []byte("PNG")}}
	c := newTestContext(WithFileSystem(fsys))
	_, err := c.Parse("![alt](img/pic.png) ![remote](https://example.com/a.png) ![frag](#x) ![again](img/pic.png)\n")
	require.NoError(t, err)

	require.Equal(t, 1, c.Media().Len())
	m := c.Media().All()[0]
	assert.Equal(t, "img/pic.png", m.Path)
	assert.True(t, strings.HasPrefix(m.Name, "pic-"), m.Name)
	assert.True(t, strings.HasSuffix(m.Name, ".png"), m.Name)
	assert.Equal(t, mediaName("img/pic.png"), m.Name)
	assert.NotEqual(t, mediaName("other/pic.png"), m.Name)

	data, err := m.Read()
	require.NoError(t, err)
	assert.Equal(t, "PNG", string(data))
}

func TestSubdocumentLinks(t *testing.T) {
	c := newTestContext(WithName("book/main.qd"))
	_, err := c.Parse("[One](one.qd) [Two](/two.qd#part) [Site](https://example.com/x.qd) [Page](page.md) [Again](./one.qd)\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"book/one.qd", "/two.qd"}, c.Subdocuments().Targets("book/main.qd"))
	assert.Equal(t, []string{"book/main.qd"}, c.Subdocuments().Documents())
}

func TestForkSubdocument(t *testing.T) {
	c := newTestContext(WithName("main.qd"))
	c.Info().Authors = []string{"Ada"}
	c.DefineFunction(ValueFunction("shared", Int(1)))
	_, err := c.Parse("# Title\n")
	require.NoError(t, err)

	sub := c.ForkSubdocument("sub.qd")
	assert.Equal(t, "sub.qd", sub.Info().Name)
	assert.Equal(t, []string{"Ada"}, sub.Info().Authors)
	assert.Empty(t, sub.TableOfContents())
	assert.NotNil(t, sub.FunctionByName("shared"))

	_, err = sub.Parse("# Title\n")
	require.NoError(t, err)
	assert.Equal(t, "title", sub.TableOfContents()[0].ID)

	sub.Info().Authors[0] = "Grace"
	assert.Equal(t, []string{"Ada"}, c.Info().Authors)
}
