package archive

import "errors"

var (
	// Writing the context tar stream failed.
	ErrExport = errors.New("context export failed")

	// The .dockerignore file could not be read or parsed.
	ErrIgnoreFile = errors.New("bad dockerignore")
)
