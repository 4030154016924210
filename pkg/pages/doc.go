// Package pages declares the route-bound authentication pages: their chrome
// (heading, subtitle, icons, links), the inputs bound to each schema field and
// the schema validating submissions. Renderers consume Page values; they never
// construct page content themselves.
package pages
