package site

import (
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/sitebuilder/internal/config"
	"git.home.luguber.info/inful/sitebuilder/internal/docs"
	ferrors "git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/frontmatter"
	"git.home.luguber.info/inful/sitebuilder/internal/index"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
	"git.home.luguber.info/inful/sitebuilder/internal/markdown"
	"git.home.luguber.info/inful/sitebuilder/internal/metadata"
	"git.home.luguber.info/inful/sitebuilder/internal/metrics"
	"git.home.luguber.info/inful/sitebuilder/internal/sitefs"
	"git.home.luguber.info/inful/sitebuilder/internal/templates"
)

// Builder generates a site from a resolved configuration.
type Builder struct {
	cfg      config.Site
	fs       sitefs.FS
	markdown markdown.Renderer
	renderer templates.Renderer
	recorder metrics.Recorder
	newID    func() string
}

// Option customizes a Builder.
type Option func(*Builder)

// WithFS replaces the filesystem used for reads and writes.
func WithFS(fs sitefs.FS) Option {
	return func(b *Builder) { b.fs = fs }
}

// WithMarkdownRenderer replaces the body-to-HTML renderer.
func WithMarkdownRenderer(r markdown.Renderer) Option {
	return func(b *Builder) { b.markdown = r }
}

// WithTemplateRenderer replaces the template engine.
func WithTemplateRenderer(r templates.Renderer) Option {
	return func(b *Builder) { b.renderer = r }
}

// WithRecorder attaches a metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(b *Builder) {
		if r != nil {
			b.recorder = r
		}
	}
}

// WithBuildID fixes the build identifier instead of generating a UUID.
func WithBuildID(id string) Option {
	return func(b *Builder) { b.newID = func() string { return id } }
}

// NewBuilder creates a builder. Unless overridden, pages are written to the
// local filesystem, bodies are rendered with goldmark configured from
// cfg.Markdown, and templates use token substitution.
func NewBuilder(cfg config.Site, opts ...Option) (*Builder, error) {
	b := &Builder{
		cfg:      cfg,
		fs:       sitefs.OS{},
		renderer: templates.Substitution{},
		recorder: metrics.NoopRecorder{},
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(b)
	}

	if b.markdown == nil {
		md, err := markdown.NewGoldmark(markdown.Options{
			Emoji:          cfg.Markdown.Emoji,
			Highlight:      cfg.Markdown.Highlight,
			HighlightStyle: cfg.Markdown.HighlightStyle,
		})
		if err != nil {
			return nil, ferrors.ConfigError("invalid markdown configuration").
				WithContext("field", "markdown.highlight_style").
				WithContext("value", cfg.Markdown.HighlightStyle).
				WithCause(err).
				Build()
		}
		b.markdown = md
	}
	return b, nil
}

func (b *Builder) newState(report *BuildReport) *BuildState {
	return &BuildState{
		Config:    b.cfg,
		Report:    report,
		fs:        b.fs,
		markdown:  b.markdown,
		renderer:  b.renderer,
		discovery: newDiscovery(b.cfg),
		splitter: frontmatter.NewSplitter(
			b.cfg.Parsing.ContentDelineator,
			b.cfg.Parsing.FieldSeparator,
			b.cfg.Parsing.KeyValueSeparator,
		),
		resolver: metadata.NewResolver(),
		indexer:  index.NewBuilder(b.cfg.Content.AboutSlug),
		recorder: b.recorder,
	}
}

// Build runs every stage. The report is returned even when the build fails.
func (b *Builder) Build() (*BuildReport, error) {
	report := newBuildReport(b.newID())
	bs := b.newState(report)

	slog.Info("Starting site build",
		logfields.BuildID(report.BuildID),
		logfields.Source(b.cfg.SourceDir),
		logfields.Output(b.cfg.OutputDir))

	stages := NewPipeline().
		Add(StagePrepareOutput, stagePrepareOutput).
		Add(StageLoadTemplates, stageLoadTemplates).
		Add(StageDiscover, stageDiscover).
		Add(StageParse, stageParse).
		Add(StageWritePages, stageWritePages).
		Add(StageHomepage, stageHomepage).
		Add(StageCopyAssets, stageCopyAssets).
		Build()

	err := runStages(bs, stages)

	report.finish()
	report.deriveOutcome()
	b.recorder.ObserveBuildDuration(report.Duration())
	b.recorder.IncBuildOutcome(metrics.BuildOutcomeLabel(report.Outcome))

	if err != nil {
		slog.Error("Site build failed",
			logfields.BuildID(report.BuildID),
			logfields.Error(err))
		return report, err
	}

	slog.Info("Site build completed",
		logfields.BuildID(report.BuildID),
		slog.String("summary", report.Summary()),
		logfields.DurationMS(float64(report.Duration())/float64(time.Millisecond)))
	return report, nil
}

// PlannedPage is a document that would be written by a build.
type PlannedPage struct {
	Source string // path relative to the content root
	Slug   string
	Output string // path relative to the output root
}

// Plan lists the eligible documents and their output paths without reading
// or writing anything.
func (b *Builder) Plan() ([]PlannedPage, error) {
	found, err := newDiscovery(b.cfg).Discover(b.cfg.ContentRoot())
	if err != nil {
		return nil, discoveryError(b.cfg.ContentRoot(), err)
	}

	planned := make([]PlannedPage, 0, len(found))
	for _, doc := range found {
		slug := metadata.Slugify(doc.Name)
		planned = append(planned, PlannedPage{
			Source: doc.RelativePath,
			Slug:   slug,
			Output: OutputPath(slug, b.cfg.Content.AboutSlug),
		})
	}
	return planned, nil
}

func newDiscovery(cfg config.Site) *docs.Discovery {
	excluded := []string{cfg.Content.DraftsDirectory, cfg.Content.OutputDirectory}
	// An explicit output directory inside the content root is skipped too.
	if rel, err := filepath.Rel(cfg.ContentRoot(), cfg.OutputDir); err == nil && rel != "." && !strings.HasPrefix(rel, "..") {
		excluded = append(excluded, filepath.Base(cfg.OutputDir))
	}
	return docs.NewDiscovery(docs.Options{
		Extensions:   cfg.Content.Extensions,
		ExcludedDirs: excluded,
	})
}

func discoveryError(root string, err error) error {
	if docs.IsNotFound(err) {
		return ferrors.UsageError("content directory not found").
			WithContext("path", root).
			WithCause(err).
			Build()
	}
	return ferrors.FileSystemError("content discovery failed").
		WithContext("path", root).
		WithCause(err).
		Build()
}
