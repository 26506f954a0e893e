package site

import (
	"errors"
	"log/slog"
	"path/filepath"

	ferrors "git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
)

// errNoAssets marks a source without an assets directory.
var errNoAssets = errors.New("no assets directory")

// stageCopyAssets copies the assets tree verbatim into the output.
func stageCopyAssets(bs *BuildState) error {
	src := bs.Config.AssetsRoot()
	ok, err := bs.fs.IsDir(src)
	if err != nil {
		return ferrors.FileSystemError("failed to inspect assets directory").
			WithContext("path", src).
			WithCause(err).
			Build()
	}
	if !ok {
		return ferrors.WrapError(errNoAssets, ferrors.CategoryFileSystem, "skipping asset copy").
			Warning().
			WithContext("path", src).
			Build()
	}

	dst := filepath.Join(bs.Config.OutputDir, AssetsDirectory)
	if err := bs.fs.CopyDir(src, dst); err != nil {
		return ferrors.FileSystemError("failed to copy assets").
			WithContext("path", src).
			WithContext("output", dst).
			WithCause(err).
			Build()
	}
	bs.Report.AssetsCopied = true
	slog.Debug("Copied assets", logfields.Source(src), logfields.Output(dst))
	return nil
}
