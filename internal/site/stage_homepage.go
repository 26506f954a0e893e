package site

import (
	"log/slog"

	ferrors "git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/index"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
	"git.home.luguber.info/inful/sitebuilder/internal/manifest"
	"git.home.luguber.info/inful/sitebuilder/internal/templates"
)

// stageHomepage builds the year-bucketed listing and writes the homepage.
func stageHomepage(bs *BuildState) error {
	years, err := bs.indexer.Build(bs.Articles())
	if err != nil {
		return ferrors.DocumentError("cannot build homepage index").
			WithCause(err).
			Build()
	}
	bs.Years = years

	articles := 0
	for _, y := range years {
		articles += len(y.Entries)
	}
	bs.Report.Years = len(years)
	bs.Report.Articles = articles

	html := bs.renderer.Render(bs.Templates.Homepage, templates.Values{
		Articles: index.Render(years),
	})
	if err := writePage(bs, HomepageFile, html); err != nil {
		return err
	}

	bs.Report.Pages = append(bs.Report.Pages, manifest.Page{Kind: manifest.KindHomepage, Output: HomepageFile})
	bs.recorder.AddPagesWritten(manifest.KindHomepage, 1)
	slog.Info("Homepage written", logfields.Count(articles), slog.Int("years", len(years)))
	return nil
}
