package template

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// Renders Dockerfile templates rooted at a context directory.
//
// Templates use Go text/template syntax with the sprig function catalogue
// (string, list, date, and encoding helpers) available. Values registered
// via [Engine.Set] are exposed as top-level fields of the template data, so
// a runtime object registered under "Stoker" is reachable as .Stoker.
type Engine struct {
	root string
	vars map[string]any
}

// Creates an engine resolving relative template paths under root.
func New(root string) *Engine {
	return &Engine{
		root: root,
		vars: make(map[string]any),
	}
}

// Registers a value under the given name for use in templates.
func (e *Engine) Set(name string, value any) {
	e.vars[name] = value
}

// Renders the template file to w.
//
// Relative paths are resolved against the engine's root. References to
// undefined variables are errors rather than silently empty output.
func (e *Engine) RenderFile(path string, w io.Writer) error {
	if !filepath.IsAbs(path) {
		path = filepath.Join(e.root, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTemplate, err)
	}

	tmpl, err := template.New(filepath.Base(path)).
		Funcs(sprig.FuncMap()).
		Option("missingkey=error").
		Parse(string(data))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTemplate, err)
	}

	if err := tmpl.Execute(w, e.vars); err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}
	return nil
}
