package site

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	ferrors "git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/frontmatter"
	"git.home.luguber.info/inful/sitebuilder/internal/index"
	"git.home.luguber.info/inful/sitebuilder/internal/manifest"
	"git.home.luguber.info/inful/sitebuilder/internal/metadata"
)

func writeBlog(f *siteFixture) {
	f.write("content/about.md", "title: About Me\n---\nI write things.")
	f.write("content/2024/first_post.md", "title: First Post\npublished_date: 2024-03-01\ntags: go, web\n---\n# Hello\n\nSee https://example.com")
	f.write("content/2024/jan_post.md", "published_date: 2024-01-10\nlast_modified_date: 2024-02-02\n---\nJanuary.")
	f.write("content/old_post.md", "published_date: 2023-05-05\n---\nOld.")
	f.write("content/drafts/secret.md", "published_date: 2024-06-01\n---\nNot yet.")
	f.write("content/notes.txt", "ignored")
	f.write("assets/css/site.css", "body { color: black; }")
}

func TestBuild_EndToEnd(t *testing.T) {
	f := newSiteFixture(t)
	writeBlog(f)

	rec := newFakeRecorder()
	report, err := f.builder(WithRecorder(rec), WithBuildID("build-1")).Build()
	require.NoError(t, err)

	assert.Equal(t, OutcomeSuccess, report.Outcome)
	assert.Equal(t, "build-1", report.BuildID)
	assert.Equal(t, 4, report.Documents)
	assert.Equal(t, 5, report.PagesWritten)
	assert.Equal(t, 3, report.Articles)
	assert.Equal(t, 2, report.Years)
	assert.True(t, report.AssetsCopied)
	assert.Len(t, report.StageDurations, 7)

	// about lives outside content/ and uses the about template.
	about := f.read("about/index.html")
	assert.Contains(t, about, `<main id="about">`)
	assert.Contains(t, about, "<title>About Me</title>")
	assert.False(t, f.exists("content/about/index.html"))

	// drafts are never published.
	assert.False(t, f.exists("content/secret/index.html"))

	first := parseHTML(t, f.read("content/first-post/index.html"))
	titles := findAll(first, func(n *html.Node) bool { return n.Data == "title" })
	require.Len(t, titles, 1)
	assert.Equal(t, "First Post", textOf(titles[0]))
	links := findAll(first, func(n *html.Node) bool { return n.Data == "a" })
	require.Len(t, links, 1)
	assert.Equal(t, "https://example.com", attr(links[0], "href"))

	jan := parseHTML(t, f.read("content/jan-post/index.html"))
	titles = findAll(jan, func(n *html.Node) bool { return n.Data == "title" })
	assert.Equal(t, "Jan Post", textOf(titles[0]))
	pub := findAll(jan, func(n *html.Node) bool { return hasClass(n, "pub") })
	mod := findAll(jan, func(n *html.Node) bool { return hasClass(n, "mod") })
	assert.Equal(t, "2024-01-10", textOf(pub[0]))
	assert.Equal(t, "2024-02-02", textOf(mod[0]))

	old := parseHTML(t, f.read("content/old-post/index.html"))
	mod = findAll(old, func(n *html.Node) bool { return hasClass(n, "mod") })
	assert.Equal(t, "2023-05-05", textOf(mod[0]))

	home := parseHTML(t, f.read("index.html"))
	var years []string
	for _, n := range findAll(home, func(n *html.Node) bool { return hasClass(n, "article-year") }) {
		years = append(years, textOf(n))
	}
	assert.Equal(t, []string{"2024", "2023"}, years)

	var hrefs []string
	for _, a := range findAll(home, func(n *html.Node) bool { return n.Data == "a" }) {
		hrefs = append(hrefs, attr(a, "href"))
	}
	assert.Equal(t, []string{"content/first-post/", "content/jan-post/", "content/old-post/"}, hrefs)

	bullets := findAll(home, func(n *html.Node) bool { return hasClass(n, "article-bullet") })
	require.Len(t, bullets, 3)
	assert.True(t, hasClass(bullets[0], "go"))
	assert.True(t, hasClass(bullets[0], "web"))

	assert.Equal(t, "body { color: black; }", f.read("assets/css/site.css"))

	assert.Equal(t, 4, rec.documents)
	assert.Equal(t, 3, rec.pages[manifest.KindArticle])
	assert.Equal(t, 1, rec.pages[manifest.KindAbout])
	assert.Equal(t, 1, rec.pages[manifest.KindHomepage])
	assert.Equal(t, []string{"success"}, rec.outcomes)
	assert.Equal(t, []string{"success"}, rec.stageResults[string(StageCopyAssets)])
}

func TestBuild_ManifestPages(t *testing.T) {
	f := newSiteFixture(t)
	writeBlog(f)

	report, err := f.builder().Build()
	require.NoError(t, err)

	m := report.Manifest("test", f.root, filepath.Join(f.root, "build"))
	assert.Equal(t, report.BuildID, m.ID)
	assert.Equal(t, "success", m.Status)
	require.Len(t, m.Pages, 5)

	byOutput := map[string]manifest.Page{}
	for _, p := range m.Pages {
		byOutput[p.Output] = p
	}
	first := byOutput["content/first-post/index.html"]
	assert.Equal(t, manifest.KindArticle, first.Kind)
	assert.Equal(t, "2024/first_post.md", first.Source)
	assert.NotEmpty(t, first.Fingerprint)
	assert.Equal(t, manifest.KindAbout, byOutput["about/index.html"].Kind)
	assert.Equal(t, manifest.KindHomepage, byOutput["index.html"].Kind)
}

func TestBuild_MissingPublishedDateWritesNoHomepage(t *testing.T) {
	f := newSiteFixture(t)
	f.write("content/dated.md", "published_date: 2024-01-01\n---\nok")
	f.write("content/undated_post.md", "title: Undated\n---\nno date")

	report, err := f.builder().Build()
	require.Error(t, err)
	assert.True(t, errors.Is(err, index.ErrMissingPublishedDate))
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryDocument))
	assert.Contains(t, err.Error(), "Undated")
	assert.False(t, f.exists("index.html"))
	assert.Equal(t, OutcomeFailed, report.Outcome)
	assert.Equal(t, StageErrorFatal, report.StageErrorKinds[StageHomepage])
}

func TestBuild_AboutNeedsNoDate(t *testing.T) {
	f := newSiteFixture(t)
	f.write("content/about.md", "---\nJust me.")

	_, err := f.builder().Build()
	require.NoError(t, err)
	assert.Contains(t, f.read("about/index.html"), "<title>About</title>")
	assert.True(t, f.exists("index.html"))
}

func TestBuild_MalformedDocument(t *testing.T) {
	f := newSiteFixture(t)
	f.write("content/broken.md", "title: No delineator\n\nbody")

	_, err := f.builder().Build()
	require.Error(t, err)
	assert.True(t, errors.Is(err, frontmatter.ErrMissingDelineator))
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryDocument))
	assert.False(t, f.exists("index.html"))
}

func TestBuild_InvalidDate(t *testing.T) {
	f := newSiteFixture(t)
	f.write("content/bad.md", "published_date: someday soon\n---\nbody")

	_, err := f.builder().Build()
	require.Error(t, err)
	assert.True(t, errors.Is(err, metadata.ErrInvalidDate))
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryDocument))
}

func TestBuild_DuplicateSlug(t *testing.T) {
	f := newSiteFixture(t)
	f.write("content/a/post.md", "published_date: 2024-01-01\n---\none")
	f.write("content/b/post.md", "published_date: 2024-01-02\n---\ntwo")

	_, err := f.builder().Build()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateSlug))
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))
	assert.False(t, f.exists("content/post/index.html"))
}

func TestBuild_UnderscoreAndDashCollide(t *testing.T) {
	f := newSiteFixture(t)
	f.write("content/my_post.md", "published_date: 2024-01-01\n---\none")
	f.write("content/my-post.md", "published_date: 2024-01-02\n---\ntwo")

	_, err := f.builder().Build()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateSlug))
}

func TestBuild_SameFileNameInDifferentDirectories(t *testing.T) {
	f := newSiteFixture(t)
	f.write("content/2023/notes.md", "published_date: 2023-06-01\n---\nold notes")
	f.write("content/2024/notes.md", "published_date: 2024-06-01\n---\nnew notes")

	report, err := f.builder().Build()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateSlug))
	assert.Contains(t, err.Error(), "2023/notes.md")
	assert.Contains(t, err.Error(), "2024/notes.md")
	assert.Equal(t, StageErrorFatal, report.StageErrorKinds[StageWritePages])
	assert.Zero(t, report.PagesWritten)
	assert.False(t, f.exists("content/notes/index.html"))
}

func TestBuild_MultiDotExtensionSlugMatchesPlan(t *testing.T) {
	f := newSiteFixture(t)
	f.write("sitebuilder.yaml", "content:\n  extensions: [\".md.txt\"]\n")
	f.write("content/release_v1.2.md.txt", "published_date: 2024-01-01\n---\nbody")

	planned, err := f.builder().Plan()
	require.NoError(t, err)
	require.Len(t, planned, 1)
	assert.Equal(t, "release-v1.2", planned[0].Slug)

	report, err := f.builder().Build()
	require.NoError(t, err)
	require.Len(t, report.Pages, 2)
	assert.Equal(t, planned[0].Slug, report.Pages[0].Slug)
	assert.Equal(t, planned[0].Output, report.Pages[0].Output)
	assert.Contains(t, f.read("content/release-v1.2/index.html"), "<title>Release V1.2</title>")
}

func TestBuild_MissingAssetsIsWarning(t *testing.T) {
	f := newSiteFixture(t)
	f.write("content/post.md", "published_date: 2024-01-01\n---\nbody")

	report, err := f.builder().Build()
	require.NoError(t, err)
	assert.Equal(t, OutcomeWarning, report.Outcome)
	assert.Equal(t, StageErrorWarning, report.StageErrorKinds[StageCopyAssets])
	assert.False(t, report.AssetsCopied)
	require.Len(t, report.Warnings, 1)
	assert.True(t, errors.Is(report.Warnings[0], errNoAssets))
	assert.False(t, f.exists("assets"))
	assert.True(t, f.exists("index.html"))
}

func TestBuild_MissingTemplate(t *testing.T) {
	f := newSiteFixture(t)
	f.write("content/post.md", "published_date: 2024-01-01\n---\nbody")
	f.remove("templates/about.html")

	report, err := f.builder().Build()
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryFileSystem))
	assert.Equal(t, StageErrorFatal, report.StageErrorKinds[StageLoadTemplates])
	_, ran := report.StageDurations[StageDiscover]
	assert.False(t, ran)
}

func TestBuild_MissingContentDirectory(t *testing.T) {
	f := newSiteFixture(t)

	_, err := f.builder().Build()
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryUsage))
}

func TestBuild_ClearsPreviousOutput(t *testing.T) {
	f := newSiteFixture(t)
	f.write("content/post.md", "published_date: 2024-01-01\n---\nbody")
	f.write("build/stale.html", "old")

	_, err := f.builder().Build()
	require.NoError(t, err)
	assert.False(t, f.exists("stale.html"))
	assert.True(t, f.exists("content/post/index.html"))
}

func TestBuild_NestedOutputIsNotRediscovered(t *testing.T) {
	f := newSiteFixture(t)
	f.write("content/post.md", "published_date: 2024-01-01\n---\nbody")
	f.write("content/build/content/post/old.md", "title: stale\n---\n")

	report, err := f.builder().Build()
	require.NoError(t, err)
	assert.Equal(t, 1, report.Documents)
}

type upperRenderer struct{ bodies []string }

func (u *upperRenderer) Render(body []byte) (string, error) {
	u.bodies = append(u.bodies, string(body))
	return "<p>" + strings.ToUpper(string(body)) + "</p>", nil
}

func TestBuild_CustomMarkdownRenderer(t *testing.T) {
	f := newSiteFixture(t)
	f.write("content/post.md", "published_date: 2024-01-01\n---\n\n  shout  \n---\nmore\n")

	r := &upperRenderer{}
	_, err := f.builder(WithMarkdownRenderer(r)).Build()
	require.NoError(t, err)
	assert.Equal(t, []string{"shout  \n---\nmore"}, r.bodies)
	assert.Contains(t, f.read("content/post/index.html"), "<article><p>SHOUT  \n---\nMORE</p></article>")
}

func TestNewBuilder_UnknownHighlightStyle(t *testing.T) {
	f := newSiteFixture(t)
	cfg := f.config()
	cfg.Markdown.Highlight = true
	cfg.Markdown.HighlightStyle = "does-not-exist"

	_, err := NewBuilder(cfg)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
}

func TestPlan(t *testing.T) {
	f := newSiteFixture(t)
	writeBlog(f)

	planned, err := f.builder().Plan()
	require.NoError(t, err)

	assert.Equal(t, []PlannedPage{
		{Source: "2024/first_post.md", Slug: "first-post", Output: "content/first-post/index.html"},
		{Source: "2024/jan_post.md", Slug: "jan-post", Output: "content/jan-post/index.html"},
		{Source: "about.md", Slug: "about", Output: "about/index.html"},
		{Source: "old_post.md", Slug: "old-post", Output: "content/old-post/index.html"},
	}, planned)

	_, err = os.Stat(filepath.Join(f.root, "build"))
	assert.True(t, os.IsNotExist(err))
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, "about/index.html", OutputPath("about", "about"))
	assert.Equal(t, "content/x/index.html", OutputPath("x", "about"))
}
