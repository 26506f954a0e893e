package templates

import (
	"errors"
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
)

// ErrTemplateRead indicates a template file could not be read.
var ErrTemplateRead = errors.New("template read failed")

// Reader reads whole files.
type Reader interface {
	ReadFile(path string) ([]byte, error)
}

// Paths locates the three page templates.
type Paths struct {
	Article  string
	Homepage string
	About    string
}

// Set holds the loaded template texts for a build.
type Set struct {
	Article  string
	Homepage string
	About    string
}

// Load reads every template in paths. The first unreadable file aborts.
func Load(r Reader, paths Paths) (Set, error) {
	var set Set
	for _, item := range []struct {
		path string
		dst  *string
	}{
		{paths.Article, &set.Article},
		{paths.Homepage, &set.Homepage},
		{paths.About, &set.About},
	} {
		data, err := r.ReadFile(item.path)
		if err != nil {
			return Set{}, fmt.Errorf("%w: %s: %w", ErrTemplateRead, item.path, err)
		}
		*item.dst = string(data)
		slog.Debug("Loaded template", logfields.Path(item.path))
	}
	return set, nil
}
