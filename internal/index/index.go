// Package index groups articles into the year-bucketed homepage listing.
package index

import (
	"errors"
	"fmt"
	"html"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
	"git.home.luguber.info/inful/sitebuilder/internal/metadata"
)

// ErrMissingPublishedDate indicates a listed article without a published date.
var ErrMissingPublishedDate = errors.New("missing published date")

// Entry is one listed article.
type Entry struct {
	PublishedDate string
	Markup        string
	Article       metadata.Article
}

// Year is a bucket of entries sharing a published year, newest first.
type Year struct {
	Year    string
	Entries []Entry
}

// Builder assembles the listing. Articles with the excluded slug are skipped.
type Builder struct {
	excludeSlug string
}

// NewBuilder creates a builder that leaves out excludeSlug (the about page).
func NewBuilder(excludeSlug string) *Builder {
	return &Builder{excludeSlug: excludeSlug}
}

// Build groups articles by year. Within a year entries are ordered by date,
// newest first, keeping input order on ties. Years are ordered newest first.
func (b *Builder) Build(articles []metadata.Article) ([]Year, error) {
	buckets := make(map[string]*Year)
	var order []string

	for _, a := range articles {
		if a.Slug == b.excludeSlug {
			continue
		}
		if a.PublishedDate == "" {
			return nil, fmt.Errorf("%w: %q (%s)", ErrMissingPublishedDate, a.Title, a.SourcePath)
		}

		y := a.Year()
		bucket, ok := buckets[y]
		if !ok {
			bucket = &Year{Year: y}
			buckets[y] = bucket
			order = append(order, y)
		}
		bucket.Entries = append(bucket.Entries, Entry{
			PublishedDate: a.PublishedDate,
			Markup:        entryMarkup(a),
			Article:       a,
		})
	}

	sort.SliceStable(order, func(i, j int) bool {
		return yearNumber(order[i]) > yearNumber(order[j])
	})

	years := make([]Year, 0, len(order))
	for _, y := range order {
		bucket := buckets[y]
		sort.SliceStable(bucket.Entries, func(i, j int) bool {
			return bucket.Entries[i].PublishedDate > bucket.Entries[j].PublishedDate
		})
		slog.Debug("Indexed year", logfields.Year(y), logfields.Count(len(bucket.Entries)))
		years = append(years, *bucket)
	}
	return years, nil
}

// yearNumber orders unparsable years after every real one.
func yearNumber(y string) int {
	n, err := strconv.Atoi(y)
	if err != nil {
		return -1
	}
	return n
}

// Render produces the homepage listing markup for years.
func Render(years []Year) string {
	var b strings.Builder
	for _, y := range years {
		b.WriteString(`<div class="article-year-set">`)
		b.WriteString(`<div class="article-year"><p>`)
		b.WriteString(y.Year)
		b.WriteString(`</p></div>`)
		b.WriteString(`<div class="article-bullets"><ul class="article-list">`)
		for _, e := range y.Entries {
			b.WriteString(e.Markup)
		}
		b.WriteString(`</ul></div>`)
		b.WriteString(`<div class="article-spacer"></div>`)
		b.WriteString(`</div>`)
	}
	return b.String()
}

func entryMarkup(a metadata.Article) string {
	class := "article-bullet"
	if tags := a.TagList(); len(tags) > 0 {
		class += " " + html.EscapeString(strings.Join(tags, " "))
	}
	return fmt.Sprintf(`<li class="%s"><a href="content/%s/">%s</a></li>`, class, a.Slug, a.Title)
}
