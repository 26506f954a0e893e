package site

import (
	"log/slog"

	ferrors "git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
	"git.home.luguber.info/inful/sitebuilder/internal/templates"
)

// stagePrepareOutput removes any previous output and recreates the root.
func stagePrepareOutput(bs *BuildState) error {
	out := bs.Config.OutputDir
	if err := bs.fs.RemoveAll(out); err != nil {
		return ferrors.FileSystemError("failed to clear output directory").
			WithContext("path", out).
			WithCause(err).
			Build()
	}
	if err := bs.fs.MkdirAll(out); err != nil {
		return ferrors.FileSystemError("failed to create output directory").
			WithContext("path", out).
			WithCause(err).
			Build()
	}
	slog.Debug("Prepared output directory", logfields.Output(out))
	return nil
}

// stageLoadTemplates reads the article, homepage and about templates once.
func stageLoadTemplates(bs *BuildState) error {
	cfg := bs.Config
	set, err := templates.Load(bs.fs, templates.Paths{
		Article:  cfg.TemplatePath(cfg.Templates.Article),
		Homepage: cfg.TemplatePath(cfg.Templates.Homepage),
		About:    cfg.TemplatePath(cfg.Templates.About),
	})
	if err != nil {
		return ferrors.FileSystemError("failed to load templates").
			WithContext("path", cfg.TemplatePath("")).
			WithCause(err).
			Build()
	}
	bs.Templates = set
	return nil
}
