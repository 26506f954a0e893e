// Package docs enumerates the markdown source documents of a site.
package docs

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	derrors "git.home.luguber.info/inful/sitebuilder/internal/docs/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
)

// SourceDocument is a discovered markdown file. Content is read once by Load.
type SourceDocument struct {
	Path         string // Path on disk (content root joined with RelativePath)
	RelativePath string // Slash-separated path relative to the content root
	Name         string // File name without the markdown extension
	Extension    string // Matched markdown extension
	Content      []byte // File content (loaded on demand)
}

// Options controls which files are eligible.
type Options struct {
	Extensions   []string // recognized markdown extensions, lowercase with leading dot
	ExcludedDirs []string // directory names skipped wherever they appear (drafts, output)
}

// Discovery handles source document discovery
type Discovery struct {
	opts Options
}

// NewDiscovery creates a new discovery instance.
func NewDiscovery(opts Options) *Discovery {
	return &Discovery{opts: opts}
}

// Discover walks contentRoot on disk.
func (d *Discovery) Discover(contentRoot string) ([]SourceDocument, error) {
	info, err := os.Stat(contentRoot)
	if err != nil || !info.IsDir() {
		if err == nil {
			err = fmt.Errorf("%s is not a directory", contentRoot)
		}
		return nil, fmt.Errorf("%w: %s: %w", derrors.ErrContentDirNotFound, contentRoot, err)
	}
	return d.DiscoverFS(os.DirFS(contentRoot), contentRoot)
}

// DiscoverFS walks fsys and returns eligible documents in lexical order. root is
// joined onto each relative path to form SourceDocument.Path.
func (d *Discovery) DiscoverFS(fsys fs.FS, root string) ([]SourceDocument, error) {
	var found []SourceDocument

	err := fs.WalkDir(fsys, ".", func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if entry.IsDir() {
			if p != "." && d.isExcludedDir(entry.Name()) {
				slog.Debug("Skipping excluded directory", logfields.Path(p))
				return fs.SkipDir
			}
			return nil
		}

		ext, ok := d.matchExtension(entry.Name())
		if !ok {
			return nil
		}
		if d.hasExcludedSegment(path.Dir(p)) {
			return nil
		}

		found = append(found, SourceDocument{
			Path:         filepath.Join(root, filepath.FromSlash(p)),
			RelativePath: p,
			Name:         entry.Name()[:len(entry.Name())-len(ext)],
			Extension:    entry.Name()[len(entry.Name())-len(ext):],
		})

		slog.Debug("Discovered document", logfields.Path(p))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", derrors.ErrContentDirWalkFailed, root, err)
	}

	slog.Info("Documents discovered", logfields.Source(root), logfields.Count(len(found)))
	return found, nil
}

// Load reads the document content once; later calls are no-ops.
func (doc *SourceDocument) Load() error {
	if doc.Content != nil {
		return nil
	}

	content, err := os.ReadFile(doc.Path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", derrors.ErrFileReadFailed, doc.Path, err)
	}
	if content == nil {
		content = []byte{}
	}

	doc.Content = content
	return nil
}

// FileName returns the base file name including its extension.
func (doc SourceDocument) FileName() string {
	return doc.Name + doc.Extension
}

func (d *Discovery) matchExtension(name string) (string, bool) {
	lower := strings.ToLower(name)
	for _, ext := range d.opts.Extensions {
		if ext != "" && strings.HasSuffix(lower, ext) && len(name) > len(ext) {
			return ext, true
		}
	}
	return "", false
}

func (d *Discovery) isExcludedDir(name string) bool {
	for _, excluded := range d.opts.ExcludedDirs {
		if excluded != "" && name == excluded {
			return true
		}
	}
	return false
}

// hasExcludedSegment checks every directory segment of a slash-separated path.
func (d *Discovery) hasExcludedSegment(dir string) bool {
	if dir == "." || dir == "" {
		return false
	}
	for _, segment := range strings.Split(dir, "/") {
		if d.isExcludedDir(segment) {
			return true
		}
	}
	return false
}

// IsNotFound reports whether err stems from a missing content root.
func IsNotFound(err error) bool {
	return errors.Is(err, derrors.ErrContentDirNotFound)
}
