// Package template defines the engine seam page renderers draw on. The
// gotemplate subpackage provides the pongo2-backed implementation.
package template
