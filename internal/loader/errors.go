package loader

import "errors"

var (
	// ErrReadFailed indicates a content source could not be read.
	ErrReadFailed = errors.New("content read failed")

	// ErrParseFailed indicates a content source, category file or authors
	// file could not be parsed.
	ErrParseFailed = errors.New("content parse failed")
)
