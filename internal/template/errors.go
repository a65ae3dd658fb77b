package template

import "errors"

var (
	ErrTemplate = errors.New("template error")
	ErrRender   = errors.New("render failed")
)
