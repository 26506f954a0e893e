package site

import (
	"fmt"
	"time"

	"git.home.luguber.info/inful/sitebuilder/internal/manifest"
)

// BuildOutcome is the typed enumeration of final build result states.
type BuildOutcome string

const (
	OutcomeSuccess BuildOutcome = "success"
	OutcomeWarning BuildOutcome = "warning"
	OutcomeFailed  BuildOutcome = "failed"
)

// StageCount aggregates counts of outcomes for a stage.
type StageCount struct {
	Success int
	Warning int
	Fatal   int
}

// BuildReport captures what a build did and how long each stage took.
type BuildReport struct {
	BuildID         string
	Start           time.Time
	End             time.Time
	Documents       int // eligible documents discovered
	Articles        int // articles listed on the homepage
	Years           int // year buckets on the homepage
	PagesWritten    int
	AssetsCopied    bool
	Errors          []error // fatal errors causing build abortion (at most one)
	Warnings        []error
	StageDurations  map[StageName]time.Duration
	StageErrorKinds map[StageName]StageErrorKind
	StageCounts     map[StageName]StageCount
	Outcome         BuildOutcome
	// Pages lists every written page, in write order, for the build manifest.
	Pages []manifest.Page
}

func newBuildReport(buildID string) *BuildReport {
	return &BuildReport{
		BuildID:         buildID,
		Start:           time.Now(),
		StageDurations:  make(map[StageName]time.Duration),
		StageErrorKinds: make(map[StageName]StageErrorKind),
		StageCounts:     make(map[StageName]StageCount),
	}
}

func (r *BuildReport) finish() { r.End = time.Now() }

// Duration is the wall time between start and finish.
func (r *BuildReport) Duration() time.Duration {
	if r.End.IsZero() {
		return time.Since(r.Start)
	}
	return r.End.Sub(r.Start)
}

// Summary returns a human-readable single-line summary.
func (r *BuildReport) Summary() string {
	return fmt.Sprintf("documents=%d pages=%d articles=%d years=%d duration=%s errors=%d warnings=%d stages=%d outcome=%s",
		r.Documents, r.PagesWritten, r.Articles, r.Years, r.Duration().Truncate(time.Millisecond),
		len(r.Errors), len(r.Warnings), len(r.StageDurations), r.Outcome)
}

// deriveOutcome sets Outcome from recorded errors and warnings.
func (r *BuildReport) deriveOutcome() {
	switch {
	case len(r.Errors) > 0:
		r.Outcome = OutcomeFailed
	case len(r.Warnings) > 0:
		r.Outcome = OutcomeWarning
	default:
		r.Outcome = OutcomeSuccess
	}
}

// Manifest converts the report into a build manifest.
func (r *BuildReport) Manifest(version, source, output string) *manifest.BuildManifest {
	return &manifest.BuildManifest{
		ID:          r.BuildID,
		GeneratedAt: r.End.UTC(),
		Version:     version,
		Source:      source,
		Output:      output,
		Status:      string(r.Outcome),
		DurationMS:  r.Duration().Milliseconds(),
		Pages:       append([]manifest.Page(nil), r.Pages...),
	}
}
