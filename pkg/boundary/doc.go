// Package boundary isolates rendering faults. A Boundary wraps the rendering
// of one mount (an HTTP request, a terminal session); the first panic or
// error raised while rendering is reported once, the boundary trips, and from
// then on only the static fallback view is written. A tripped boundary never
// recovers; a new mount gets a new Boundary.
package boundary
