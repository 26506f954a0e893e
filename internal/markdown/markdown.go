// Package markdown converts article bodies to HTML.
package markdown

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
)

// ErrUnknownStyle indicates a highlight style chroma does not ship.
var ErrUnknownStyle = errors.New("unknown highlight style")

// Renderer turns a markdown body into an HTML fragment.
type Renderer interface {
	Render(body []byte) (string, error)
}

// Options selects the optional extensions.
type Options struct {
	Emoji          bool
	Highlight      bool
	HighlightStyle string
}

// Goldmark is the goldmark-backed Renderer. Raw HTML in the source is omitted
// from the output. Bare URLs become links; tables and strikethrough are enabled.
type Goldmark struct {
	md goldmark.Markdown
}

var _ Renderer = (*Goldmark)(nil)

// NewGoldmark builds a renderer for opts.
func NewGoldmark(opts Options) (*Goldmark, error) {
	extenders := []goldmark.Extender{
		extension.Linkify,
		extension.Table,
		extension.Strikethrough,
	}

	if opts.Emoji {
		extenders = append(extenders, emoji.Emoji)
	}

	if opts.Highlight {
		style, err := lookupStyle(opts.HighlightStyle)
		if err != nil {
			return nil, err
		}
		extenders = append(extenders, highlighting.NewHighlighting(
			highlighting.WithStyle(style),
			highlighting.WithFormatOptions(
				chromahtml.WithClasses(false),
				chromahtml.TabWidth(4),
			),
		))
	}

	return &Goldmark{md: goldmark.New(goldmark.WithExtensions(extenders...))}, nil
}

// Render converts body to HTML.
func (g *Goldmark) Render(body []byte) (string, error) {
	var buf bytes.Buffer
	if err := g.md.Convert(body, &buf); err != nil {
		return "", fmt.Errorf("markdown render: %w", err)
	}
	return buf.String(), nil
}

// lookupStyle checks name against chroma's style registry.
func lookupStyle(name string) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return "", fmt.Errorf("%w: empty name", ErrUnknownStyle)
	}
	if style := styles.Get(name); style == styles.Fallback && name != styles.Fallback.Name {
		return "", fmt.Errorf("%w: %s", ErrUnknownStyle, name)
	}
	return name, nil
}
