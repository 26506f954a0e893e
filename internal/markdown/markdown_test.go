package markdown

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRenderer(t *testing.T, opts Options) *Goldmark {
	t.Helper()
	r, err := NewGoldmark(opts)
	require.NoError(t, err)
	return r
}

func TestRender_Basics(t *testing.T) {
	r := newRenderer(t, Options{})

	out, err := r.Render([]byte("# Title\n\nSome *text*."))
	require.NoError(t, err)
	assert.Contains(t, out, "<h1>Title</h1>")
	assert.Contains(t, out, "<em>text</em>")
}

func TestRender_Linkify(t *testing.T) {
	r := newRenderer(t, Options{})

	out, err := r.Render([]byte("See https://example.com for more."))
	require.NoError(t, err)
	assert.Contains(t, out, `<a href="https://example.com">https://example.com</a>`)
}

func TestRender_TableAndStrikethrough(t *testing.T) {
	r := newRenderer(t, Options{})

	out, err := r.Render([]byte("| a | b |\n|---|---|\n| 1 | 2 |\n\n~~gone~~"))
	require.NoError(t, err)
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<del>gone</del>")
}

func TestRender_RawHTMLOmitted(t *testing.T) {
	r := newRenderer(t, Options{})

	out, err := r.Render([]byte("<script>alert(1)</script>\n\ntext"))
	require.NoError(t, err)
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "raw HTML omitted")
}

func TestRender_Emoji(t *testing.T) {
	plain := newRenderer(t, Options{})
	withEmoji := newRenderer(t, Options{Emoji: true})

	out, err := plain.Render([]byte("hi :smile:"))
	require.NoError(t, err)
	assert.Contains(t, out, ":smile:")

	out, err = withEmoji.Render([]byte("hi :smile:"))
	require.NoError(t, err)
	assert.NotContains(t, out, ":smile:")
}

func TestRender_Highlight(t *testing.T) {
	r := newRenderer(t, Options{Highlight: true, HighlightStyle: "gruvbox-light"})

	out, err := r.Render([]byte("```go\nfunc main() {}\n```\n"))
	require.NoError(t, err)
	assert.Contains(t, out, "<pre")
	assert.Contains(t, out, "style=")
}

func TestNewGoldmark_UnknownStyle(t *testing.T) {
	_, err := NewGoldmark(Options{Highlight: true, HighlightStyle: "no-such-theme"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownStyle))

	// Style is only checked when highlighting is on.
	_, err = NewGoldmark(Options{HighlightStyle: "no-such-theme"})
	require.NoError(t, err)
}
