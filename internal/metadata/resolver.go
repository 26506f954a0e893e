package metadata

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/araddon/dateparse"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/sitebuilder/internal/frontmatter"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
)

// ErrInvalidDate indicates a date field that could not be parsed.
var ErrInvalidDate = errors.New("invalid date")

// DateLayout is the normalized calendar date format.
const DateLayout = "2006-01-02"

// Resolver derives article fields from front matter and the source file name.
type Resolver struct {
	upper cases.Caser
	lower cases.Caser
}

// NewResolver creates a resolver.
func NewResolver() *Resolver {
	return &Resolver{
		upper: cases.Upper(language.Und),
		lower: cases.Lower(language.Und),
	}
}

// Resolve builds an Article from block. stem is the file name without its
// markdown extension and supplies the slug and default title; sourcePath
// names the document in errors. BodyHTML is left for the caller.
func (r *Resolver) Resolve(block frontmatter.Block, stem, sourcePath string) (Article, error) {
	md := FromBlock(block)

	for _, key := range md.Unknown {
		slog.Debug("Ignoring unknown metadata field", logfields.Path(sourcePath), logfields.Field(key))
	}

	published, err := r.date(md.PublishedDate, FieldPublishedDate, sourcePath)
	if err != nil {
		return Article{}, err
	}

	lastModified := published
	if md.LastModifiedDate.Present {
		lastModified, err = r.date(md.LastModifiedDate, FieldLastModifiedDate, sourcePath)
		if err != nil {
			return Article{}, err
		}
	}

	title := md.Title.Text
	if !md.Title.Present {
		title = r.TitleCase(strings.ReplaceAll(stem, "_", " "))
	}

	return Article{
		Slug:             Slugify(stem),
		Title:            title,
		PublishedDate:    published,
		LastModifiedDate: lastModified,
		Tags:             md.Tags.Text,
		SourcePath:       sourcePath,
	}, nil
}

func (r *Resolver) date(v Value, field, sourcePath string) (string, error) {
	text := strings.TrimSpace(v.Text)
	if !v.Present || text == "" {
		return "", nil
	}
	formatted, err := FormatDate(text)
	if err != nil {
		return "", fmt.Errorf("%w: %s=%q in %s: %w", ErrInvalidDate, field, text, sourcePath, err)
	}
	return formatted, nil
}

// FormatDate parses a free-form date and renders it as YYYY-MM-DD in UTC.
// Input without a zone is read as UTC.
func FormatDate(text string) (string, error) {
	t, err := dateparse.ParseIn(text, time.UTC)
	if err != nil {
		return "", err
	}
	return t.UTC().Format(DateLayout), nil
}

// TitleCase upper-cases the first letter of each whitespace-separated word and
// lower-cases the rest of it.
func (r *Resolver) TitleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	wordStart := true
	for i := 0; i < len(s); {
		ch, size := utf8.DecodeRuneInString(s[i:])
		chunk := s[i : i+size]
		switch {
		case isSpace(ch):
			b.WriteString(chunk)
			wordStart = true
		case wordStart:
			b.WriteString(r.upper.String(chunk))
			wordStart = false
		default:
			b.WriteString(r.lower.String(chunk))
		}
		i += size
	}
	return b.String()
}

func isSpace(ch rune) bool {
	switch ch {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// Slugify maps a file stem to its URL slug.
func Slugify(stem string) string {
	return strings.ReplaceAll(stem, "_", "-")
}
