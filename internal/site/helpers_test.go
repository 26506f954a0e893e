package site

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"git.home.luguber.info/inful/sitebuilder/internal/config"
	"git.home.luguber.info/inful/sitebuilder/internal/metrics"
)

const (
	articleTemplate  = `<html><head><title>{{ title }}</title></head><body><article>{{ content }}</article><p class="pub">{{ published_date }}</p><p class="mod">{{ last_modified_date }}</p></body></html>`
	aboutTemplate    = `<html><head><title>{{ title }}</title></head><body><main id="about">{{ content }}</main></body></html>`
	homepageTemplate = `<html><head><title>Home</title></head><body><nav>{{ articles }}</nav></body></html>`
)

// siteFixture builds a source tree under a temp dir.
type siteFixture struct {
	t    *testing.T
	root string
}

func newSiteFixture(t *testing.T) *siteFixture {
	t.Helper()
	f := &siteFixture{t: t, root: t.TempDir()}
	f.write("templates/article.html", articleTemplate)
	f.write("templates/about.html", aboutTemplate)
	f.write("templates/homepage.html", homepageTemplate)
	return f
}

func (f *siteFixture) write(rel, content string) {
	f.t.Helper()
	path := filepath.Join(f.root, filepath.FromSlash(rel))
	require.NoError(f.t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(f.t, os.WriteFile(path, []byte(content), 0o600))
}

func (f *siteFixture) remove(rel string) {
	f.t.Helper()
	require.NoError(f.t, os.Remove(filepath.Join(f.root, filepath.FromSlash(rel))))
}

func (f *siteFixture) config() config.Site {
	f.t.Helper()
	cfg, err := config.Load(f.root, "")
	require.NoError(f.t, err)
	return cfg
}

func (f *siteFixture) builder(opts ...Option) *Builder {
	f.t.Helper()
	b, err := NewBuilder(f.config(), opts...)
	require.NoError(f.t, err)
	return b
}

func (f *siteFixture) out(rel string) string {
	return filepath.Join(f.root, "build", filepath.FromSlash(rel))
}

func (f *siteFixture) read(rel string) string {
	f.t.Helper()
	data, err := os.ReadFile(f.out(rel))
	require.NoError(f.t, err, rel)
	return string(data)
}

func (f *siteFixture) exists(rel string) bool {
	_, err := os.Stat(f.out(rel))
	return err == nil
}

func parseHTML(t *testing.T, doc string) *html.Node {
	t.Helper()
	n, err := html.Parse(strings.NewReader(doc))
	require.NoError(t, err)
	return n
}

func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Key == "class" {
			for _, c := range strings.Fields(a.Val) {
				if c == class {
					return true
				}
			}
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// findAll returns every element node matching pred in document order.
func findAll(n *html.Node, pred func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && pred(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

// fakeRecorder counts metric calls.
type fakeRecorder struct {
	stageResults map[string][]string
	outcomes     []string
	pages        map[string]int
	documents    int
	buildObs     int
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{stageResults: map[string][]string{}, pages: map[string]int{}}
}

func (r *fakeRecorder) ObserveStageDuration(string, time.Duration) {}
func (r *fakeRecorder) ObserveBuildDuration(time.Duration)         { r.buildObs++ }
func (r *fakeRecorder) IncStageResult(stage string, result metrics.ResultLabel) {
	r.stageResults[stage] = append(r.stageResults[stage], string(result))
}
func (r *fakeRecorder) IncBuildOutcome(o metrics.BuildOutcomeLabel) {
	r.outcomes = append(r.outcomes, string(o))
}
func (r *fakeRecorder) AddPagesWritten(kind string, n int) { r.pages[kind] += n }
func (r *fakeRecorder) SetDocumentsDiscovered(n int)       { r.documents = n }
