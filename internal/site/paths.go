package site

import (
	"path"
	"path/filepath"
)

// Output locations relative to the output root.
const (
	HomepageFile     = "index.html"
	ContentDirectory = "content"
	AssetsDirectory  = "assets"
)

// OutputPath returns the slash-separated path, relative to the output root,
// where the page with slug is written.
func OutputPath(slug, aboutSlug string) string {
	if slug == aboutSlug {
		return path.Join(slug, HomepageFile)
	}
	return path.Join(ContentDirectory, slug, HomepageFile)
}

// diskPath joins a slash-separated relative path onto root.
func diskPath(root, rel string) string {
	return filepath.Join(root, filepath.FromSlash(rel))
}
