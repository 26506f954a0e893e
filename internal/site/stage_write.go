package site

import (
	"log/slog"

	ferrors "git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
	"git.home.luguber.info/inful/sitebuilder/internal/manifest"
	"git.home.luguber.info/inful/sitebuilder/internal/templates"
)

// stageWritePages writes one page per document. Output paths are checked for
// collisions before anything is written.
func stageWritePages(bs *BuildState) error {
	if err := checkDuplicateOutputs(bs); err != nil {
		return err
	}

	written := map[string]int{}
	for _, p := range bs.Pages {
		kind, tpl := manifest.KindArticle, bs.Templates.Article
		if bs.IsAbout(p) {
			kind, tpl = manifest.KindAbout, bs.Templates.About
		}

		rel := OutputPath(p.Article.Slug, bs.Config.Content.AboutSlug)
		html := bs.renderer.Render(tpl, templates.Values{
			Content:          p.Article.BodyHTML,
			Title:            p.Article.Title,
			PublishedDate:    p.Article.PublishedDate,
			LastModifiedDate: p.Article.LastModifiedDate,
		})
		if err := writePage(bs, rel, html); err != nil {
			return err
		}

		bs.Report.Pages = append(bs.Report.Pages, manifest.Page{
			Kind:             kind,
			Slug:             p.Article.Slug,
			Title:            p.Article.Title,
			Source:           p.Source.RelativePath,
			Output:           rel,
			PublishedDate:    p.Article.PublishedDate,
			LastModifiedDate: p.Article.LastModifiedDate,
			Fingerprint:      manifest.Fingerprint(p.Document.Raw, p.Document.Body),
		})
		written[kind]++
	}

	for kind, n := range written {
		bs.recorder.AddPagesWritten(kind, n)
	}
	return nil
}

func checkDuplicateOutputs(bs *BuildState) error {
	seen := make(map[string]string, len(bs.Pages))
	for _, p := range bs.Pages {
		rel := OutputPath(p.Article.Slug, bs.Config.Content.AboutSlug)
		if first, ok := seen[rel]; ok {
			return ferrors.ValidationError("two documents resolve to the same output path").
				WithContext("slug", p.Article.Slug).
				WithContext("output", rel).
				WithContext("first", first).
				WithContext("second", p.Source.RelativePath).
				WithCause(ErrDuplicateSlug).
				Build()
		}
		seen[rel] = p.Source.RelativePath
	}
	return nil
}

// writePage writes html to rel under the output root and counts it.
func writePage(bs *BuildState, rel, html string) error {
	path := diskPath(bs.Config.OutputDir, rel)
	if err := bs.fs.WriteFile(path, []byte(html)); err != nil {
		return ferrors.FileSystemError("failed to write page").
			WithContext("path", path).
			WithCause(err).
			Build()
	}
	bs.Report.PagesWritten++
	slog.Debug("Wrote page", logfields.Output(rel))
	return nil
}
