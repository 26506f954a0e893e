package config

import (
	"path/filepath"
	"strings"

	ferrors "git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
)

// Validate checks the resolved configuration for values that would make a build
// ambiguous or destructive.
func Validate(s Site) error {
	if err := validateParsing(s.Parsing); err != nil {
		return err
	}
	if err := validateContent(s.Content); err != nil {
		return err
	}
	return validatePaths(s)
}

func validateParsing(p ParsingConfig) error {
	switch {
	case p.ContentDelineator == "":
		return invalid("parsing.content_delineator", "must not be empty")
	case p.FieldSeparator == "":
		return invalid("parsing.field_separator", "must not be empty")
	case p.KeyValueSeparator == "":
		return invalid("parsing.key_value_separator", "must not be empty")
	case p.FieldSeparator == p.KeyValueSeparator:
		return invalid("parsing.key_value_separator", "must differ from field_separator")
	}
	return nil
}

func validateContent(c ContentConfig) error {
	dirs := map[string]string{
		"content.directory":        c.Directory,
		"content.drafts_directory": c.DraftsDirectory,
		"content.assets_directory": c.AssetsDirectory,
		"content.output_directory": c.OutputDirectory,
	}
	for field, name := range dirs {
		if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
			return invalid(field, "must be a single directory name")
		}
	}
	for _, ext := range c.Extensions {
		if len(ext) < 2 {
			return invalid("content.extensions", "extensions must be non-empty")
		}
	}
	return nil
}

// validatePaths refuses output locations whose clearing would delete the sources.
func validatePaths(s Site) error {
	src, err := filepath.Abs(s.SourceDir)
	if err != nil {
		return ferrors.ConfigError("cannot resolve source directory").WithCause(err).Build()
	}
	out, err := filepath.Abs(s.OutputDir)
	if err != nil {
		return ferrors.ConfigError("cannot resolve output directory").WithCause(err).Build()
	}
	if out == src || isWithin(src, out) {
		return ferrors.UsageError("output directory must not contain the source directory").
			WithContext("source", s.SourceDir).
			WithContext("output", s.OutputDir).
			Build()
	}
	if content, err := filepath.Abs(s.ContentRoot()); err == nil && out == content {
		return ferrors.UsageError("output directory must not be the content directory").
			WithContext("output", s.OutputDir).
			Build()
	}
	// Output may live below content (it is skipped during discovery) but never
	// inside directories that are copied or read verbatim.
	for _, protected := range []string{s.AssetsRoot(), filepath.Join(s.SourceDir, s.Templates.Directory)} {
		p, err := filepath.Abs(protected)
		if err == nil && (out == p || isWithin(out, p)) {
			return ferrors.UsageError("output directory must not be inside a source subdirectory").
				WithContext("output", s.OutputDir).
				WithContext("conflicts_with", protected).
				Build()
		}
	}
	return nil
}

// isWithin reports whether child lies strictly below parent.
func isWithin(child, parent string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func invalid(field, reason string) error {
	return ferrors.ConfigError("invalid configuration").
		WithContext("field", field).
		WithContext("reason", reason).
		Build()
}
