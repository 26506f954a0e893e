// Package errors provides sentinel errors for content discovery operations.
package errors

import "errors"

var (
	// ErrContentDirNotFound indicates the content root does not exist.
	ErrContentDirNotFound = errors.New("content directory not found")

	// ErrContentDirWalkFailed indicates filesystem traversal of the content root failed.
	ErrContentDirWalkFailed = errors.New("content directory walk failed")

	// ErrFileReadFailed indicates reading a discovered document failed.
	ErrFileReadFailed = errors.New("document read failed")
)
