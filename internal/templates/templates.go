// Package templates fills page templates with article values.
//
// Templates are plain HTML files carrying `{{ name }}` tokens. Substitution is
// literal: there is no escaping, no control flow, and unknown tokens are left
// as they are.
package templates

import "strings"

// Recognized tokens.
const (
	TokenContent          = "{{ content }}"
	TokenTitle            = "{{ title }}"
	TokenPublishedDate    = "{{ published_date }}"
	TokenLastModifiedDate = "{{ last_modified_date }}"
	TokenArticles         = "{{ articles }}"
)

// Values holds the token replacements for one page. Zero fields render as "".
type Values struct {
	Content          string
	Title            string
	PublishedDate    string
	LastModifiedDate string
	Articles         string
}

// Renderer produces a page from template text and values.
type Renderer interface {
	Render(template string, values Values) string
}

// Substitution replaces every occurrence of every token in one pass, so
// inserted values are never scanned for tokens again.
type Substitution struct{}

var _ Renderer = Substitution{}

// Render implements Renderer.
func (Substitution) Render(template string, values Values) string {
	return strings.NewReplacer(
		TokenContent, values.Content,
		TokenTitle, values.Title,
		TokenPublishedDate, values.PublishedDate,
		TokenLastModifiedDate, values.LastModifiedDate,
		TokenArticles, values.Articles,
	).Replace(template)
}
