// Package template renders Dockerfile templates.
//
// An [Engine] resolves template files under a context root and renders them
// with Go text/template extended by the sprig function catalogue. The build
// package registers its runtime object with the engine so templates can
// read and mutate build state (tags, build arguments, output location)
// during rendering.
//
// Example usage:
//
//	eng := template.New(".")
//	eng.Set("Stoker", rt)
//	if err := eng.RenderFile("Dockerfile.tmpl", os.Stdout); err != nil {
//	    return err
//	}
package template
