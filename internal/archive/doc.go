// Package archive exports a build context as a tar stream.
//
// The stream is the directory tree of the context root with the rendered
// Dockerfile injected as the first entry, filtered through the root's
// .dockerignore. It is suitable for piping to a remote builder or saving
// for inspection.
package archive
