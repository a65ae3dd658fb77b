// Package build renders Dockerfile templates and drives an external
// container build tool over the result.
//
// A [Build] owns a template [Runtime] that the template reaches through
// the .Stoker object. The template can register tags, set build arguments
// and request a local output directory; values configured on [Options]
// take precedence over anything the template sets.
//
// The build tool is discovered once per process, preferring $DOCKER, then
// docker, then podman on PATH. Each configured target is built with a
// separate buildx invocation, and extra tags are applied as aliases of
// the first.
//
//	b := build.New(build.Options{
//		File: "Dockerfile.tmpl",
//		Root: ".",
//		Tags: []string{"registry.example.com/app:latest"},
//	})
//
//	if err := b.Build(ctx); err != nil {
//		...
//	}
package build
