// Package metadata resolves raw front-matter fields into typed article metadata.
package metadata

import (
	"strings"

	"git.home.luguber.info/inful/sitebuilder/internal/frontmatter"
)

// Recognized field names.
const (
	FieldTitle            = "title"
	FieldPublishedDate    = "published_date"
	FieldLastModifiedDate = "last_modified_date"
	FieldTags             = "tags"
)

// Value is an optional string that remembers whether it was given.
type Value struct {
	Text    string
	Present bool
}

// Metadata is the typed view over a document's front-matter block.
type Metadata struct {
	Title            Value
	PublishedDate    Value
	LastModifiedDate Value
	Tags             Value

	// Unknown holds unrecognized keys in first-seen order.
	Unknown []string
}

// FromBlock extracts the recognized fields from block.
func FromBlock(block frontmatter.Block) Metadata {
	var md Metadata
	for _, key := range block.Keys() {
		value, _ := block.Get(key)
		v := Value{Text: value, Present: true}
		switch key {
		case FieldTitle:
			md.Title = v
		case FieldPublishedDate:
			md.PublishedDate = v
		case FieldLastModifiedDate:
			md.LastModifiedDate = v
		case FieldTags:
			md.Tags = v
		default:
			md.Unknown = append(md.Unknown, key)
		}
	}
	return md
}

// Article is a fully resolved document ready for rendering.
type Article struct {
	Slug             string
	Title            string
	PublishedDate    string // YYYY-MM-DD or empty
	LastModifiedDate string // YYYY-MM-DD or empty
	Tags             string
	BodyHTML         string
	SourcePath       string
}

// TagList splits Tags on commas, dropping blanks.
func (a Article) TagList() []string {
	if strings.TrimSpace(a.Tags) == "" {
		return nil
	}
	parts := strings.Split(a.Tags, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

// Year returns the four-digit year prefix of PublishedDate, or "" when it is unset.
func (a Article) Year() string {
	if len(a.PublishedDate) < 4 {
		return ""
	}
	return a.PublishedDate[:4]
}
