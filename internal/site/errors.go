package site

import "errors"

// ErrDuplicateSlug indicates two documents resolve to the same output directory.
var ErrDuplicateSlug = errors.New("duplicate output slug")
