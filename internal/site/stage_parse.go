package site

import (
	"log/slog"

	"git.home.luguber.info/inful/sitebuilder/internal/docs"
	ferrors "git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
)

// stageParse reads, splits, renders and resolves every document in discovery order.
func stageParse(bs *BuildState) error {
	pages := make([]Page, 0, len(bs.Docs))
	for i := range bs.Docs {
		page, err := parseDocument(bs, &bs.Docs[i])
		if err != nil {
			return err
		}
		pages = append(pages, page)
		slog.Debug("Parsed document",
			logfields.Path(page.Source.RelativePath),
			logfields.Slug(page.Article.Slug),
			logfields.Title(page.Article.Title))
	}
	bs.Pages = pages
	return nil
}

func parseDocument(bs *BuildState, doc *docs.SourceDocument) (Page, error) {
	if err := doc.Load(); err != nil {
		return Page{}, ferrors.FileSystemError("failed to read document").
			WithContext("path", doc.Path).
			WithCause(err).
			Build()
	}

	split, err := bs.splitter.Split(string(doc.Content))
	if err != nil {
		return Page{}, ferrors.DocumentError("malformed document").
			WithContext("path", doc.Path).
			WithCause(err).
			Build()
	}

	article, err := bs.resolver.Resolve(split.Fields, doc.Name, doc.Path)
	if err != nil {
		return Page{}, ferrors.DocumentError("invalid document metadata").
			WithContext("path", doc.Path).
			WithCause(err).
			Build()
	}

	html, err := bs.markdown.Render([]byte(split.Body))
	if err != nil {
		return Page{}, ferrors.BuildError("failed to render markdown").
			WithContext("path", doc.Path).
			WithCause(err).
			Build()
	}
	article.BodyHTML = html

	return Page{Source: *doc, Document: split, Article: article}, nil
}
