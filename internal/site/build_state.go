package site

import (
	"git.home.luguber.info/inful/sitebuilder/internal/config"
	"git.home.luguber.info/inful/sitebuilder/internal/docs"
	"git.home.luguber.info/inful/sitebuilder/internal/frontmatter"
	"git.home.luguber.info/inful/sitebuilder/internal/index"
	"git.home.luguber.info/inful/sitebuilder/internal/markdown"
	"git.home.luguber.info/inful/sitebuilder/internal/metadata"
	"git.home.luguber.info/inful/sitebuilder/internal/metrics"
	"git.home.luguber.info/inful/sitebuilder/internal/sitefs"
	"git.home.luguber.info/inful/sitebuilder/internal/templates"
)

// Page is a parsed document together with its resolved article.
type Page struct {
	Source   docs.SourceDocument
	Document frontmatter.Document
	Article  metadata.Article
}

// BuildState carries collaborators and intermediate results across stages.
type BuildState struct {
	Config config.Site
	Report *BuildReport

	fs        sitefs.FS
	markdown  markdown.Renderer
	renderer  templates.Renderer
	discovery *docs.Discovery
	splitter  *frontmatter.Splitter
	resolver  *metadata.Resolver
	indexer   *index.Builder
	recorder  metrics.Recorder

	Templates templates.Set
	Docs      []docs.SourceDocument
	Pages     []Page
	Years     []index.Year
}

// IsAbout reports whether p is the distinguished about page.
func (bs *BuildState) IsAbout(p Page) bool {
	return p.Article.Slug == bs.Config.Content.AboutSlug
}

// Articles returns the resolved articles in discovery order.
func (bs *BuildState) Articles() []metadata.Article {
	out := make([]metadata.Article, 0, len(bs.Pages))
	for _, p := range bs.Pages {
		out = append(out, p.Article)
	}
	return out
}
