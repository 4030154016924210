// Package icons serves the outline icon set used by the auth pages.
//
// Icons are embedded SVG documents under data/. Every icon is passed through a
// bluemonday policy that only admits presentational SVG elements before it is
// inlined into a page or served over HTTP, so overrides supplied at runtime go
// through the same filter as the built-in set.
package icons
