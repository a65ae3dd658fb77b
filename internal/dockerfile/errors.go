package dockerfile

import "errors"

var (
	// A single instruction or line filled the staging buffer before its
	// terminator was found. The capacity is fixed at construction; the
	// parser does not grow its working memory.
	ErrLineTooLong = errors.New("line too long")
)
