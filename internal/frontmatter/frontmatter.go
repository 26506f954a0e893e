// Package frontmatter splits a document into its inline metadata block and body.
//
// A document is a run of `key: value` lines, a delineator (`---` by default)
// and the markdown body. Unlike YAML frontmatter the block has no opening
// delimiter; everything before the first delineator is metadata.
package frontmatter

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingDelineator indicates the document text never contains the content delineator.
var ErrMissingDelineator = errors.New("content delineator not found")

// Default separators.
const (
	DefaultDelineator        = "---"
	DefaultFieldSeparator    = "\n"
	DefaultKeyValueSeparator = ":"
)

// Block is an ordered mapping of metadata fields. Keys keep their first-seen
// position; a repeated key overwrites the earlier value.
type Block struct {
	keys   []string
	values map[string]string
}

// Set stores value under key.
func (b *Block) Set(key, value string) {
	if b.values == nil {
		b.values = make(map[string]string)
	}
	if _, ok := b.values[key]; !ok {
		b.keys = append(b.keys, key)
	}
	b.values[key] = value
}

// Get returns the value for key and whether the key was present.
func (b Block) Get(key string) (string, bool) {
	v, ok := b.values[key]
	return v, ok
}

// Has reports whether key is present.
func (b Block) Has(key string) bool {
	_, ok := b.values[key]
	return ok
}

// Keys returns the field names in first-seen order.
func (b Block) Keys() []string {
	return append([]string(nil), b.keys...)
}

// Len returns the number of distinct fields.
func (b Block) Len() int {
	return len(b.keys)
}

// Document is the result of splitting a source text.
type Document struct {
	Raw    string // metadata text before the first delineator, trimmed
	Fields Block
	Body   string // text after the first delineator, trimmed
}

// Splitter separates metadata from body using configurable separators.
type Splitter struct {
	delineator string
	fieldSep   string
	kvSep      string
}

// NewSplitter creates a splitter. Empty arguments fall back to the defaults.
func NewSplitter(delineator, fieldSeparator, keyValueSeparator string) *Splitter {
	if delineator == "" {
		delineator = DefaultDelineator
	}
	if fieldSeparator == "" {
		fieldSeparator = DefaultFieldSeparator
	}
	if keyValueSeparator == "" {
		keyValueSeparator = DefaultKeyValueSeparator
	}
	return &Splitter{delineator: delineator, fieldSep: fieldSeparator, kvSep: keyValueSeparator}
}

// Delineator returns the configured content delineator.
func (s *Splitter) Delineator() string {
	return s.delineator
}

// Split parses text into metadata fields and body. Further delineators inside
// the body are preserved verbatim.
func (s *Splitter) Split(text string) (Document, error) {
	head, rest, found := strings.Cut(text, s.delineator)
	if !found {
		return Document{}, fmt.Errorf("%w: %q", ErrMissingDelineator, s.delineator)
	}

	raw := strings.TrimSpace(head)
	return Document{
		Raw:    raw,
		Fields: s.parseFields(raw),
		Body:   strings.TrimSpace(rest),
	}, nil
}

func (s *Splitter) parseFields(raw string) Block {
	var block Block
	if raw == "" {
		return block
	}

	for _, line := range strings.Split(raw, s.fieldSep) {
		key, value, ok := strings.Cut(line, s.kvSep)
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		block.Set(key, strings.TrimSpace(value))
	}
	return block
}

// Join reassembles a document. Splitting the result yields doc again as long
// as Raw and Body carry no surrounding whitespace.
func (s *Splitter) Join(doc Document) string {
	var b strings.Builder
	b.Grow(len(doc.Raw) + len(s.delineator) + len(doc.Body) + 2*len(s.fieldSep))
	if doc.Raw != "" {
		b.WriteString(doc.Raw)
		b.WriteString(s.fieldSep)
	}
	b.WriteString(s.delineator)
	if doc.Body != "" {
		b.WriteString(s.fieldSep)
		b.WriteString(doc.Body)
	}
	return b.String()
}
