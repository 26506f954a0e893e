// Package manifest records what a build produced: one entry per written page
// with a content fingerprint of its source document.
package manifest

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"time"

	"github.com/inful/mdfp"
	"gopkg.in/yaml.v3"
)

// Page kinds.
const (
	KindArticle  = "article"
	KindAbout    = "about"
	KindHomepage = "homepage"
)

// BuildManifest represents a complete record of a build's outputs.
type BuildManifest struct {
	ID          string    `yaml:"id"`
	GeneratedAt time.Time `yaml:"generated_at"`
	Version     string    `yaml:"version"`
	Source      string    `yaml:"source"`
	Output      string    `yaml:"output"`
	Status      string    `yaml:"status"`
	DurationMS  int64     `yaml:"duration_ms"`
	Pages       []Page    `yaml:"pages"`
}

// Page describes one generated HTML file.
type Page struct {
	Kind             string `yaml:"kind"`
	Slug             string `yaml:"slug,omitempty"`
	Title            string `yaml:"title,omitempty"`
	Source           string `yaml:"source,omitempty"`
	Output           string `yaml:"output"`
	PublishedDate    string `yaml:"published_date,omitempty"`
	LastModifiedDate string `yaml:"last_modified_date,omitempty"`
	Fingerprint      string `yaml:"fingerprint,omitempty"`
}

// Fingerprint computes the content fingerprint of a document from its raw
// metadata text and body.
func Fingerprint(rawMetadata, body string) string {
	return mdfp.CalculateFingerprintFromParts(rawMetadata, body)
}

// ToYAML serializes the manifest.
func (m *BuildManifest) ToYAML() ([]byte, error) {
	data, err := yaml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	return data, nil
}

// FromYAML deserializes a manifest.
func FromYAML(data []byte) (*BuildManifest, error) {
	var m BuildManifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}
	return &m, nil
}

// Hash computes a deterministic hash over the page outputs and fingerprints.
// Two builds of the same sources hash equal regardless of ID and timing.
func (m *BuildManifest) Hash() string {
	pages := append([]Page(nil), m.Pages...)
	sort.Slice(pages, func(i, j int) bool { return pages[i].Output < pages[j].Output })

	h := sha256.New()
	for _, p := range pages {
		_, _ = fmt.Fprintf(h, "%s\x00%s\x00%s\x00%s\n", p.Kind, p.Output, p.Title, p.Fingerprint)
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
