package icons

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

// Sanitize strips everything from raw that is not a presentational SVG
// element or attribute. Empty input, or input with nothing left after
// filtering, yields "".
func Sanitize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(svgPolicy().Sanitize(trimmed))
}

func svgPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		p := bluemonday.StrictPolicy()
		p.AllowElements("svg", "g", "path", "circle", "rect", "line", "polyline", "polygon", "ellipse", "title")

		p.AllowAttrs(
			"xmlns", "viewBox", "width", "height", "fill", "stroke",
			"stroke-width", "stroke-linecap", "stroke-linejoin", "aria-hidden",
			"focusable", "class",
		).OnElements("svg")

		shapes := []string{"path", "circle", "rect", "line", "polyline", "polygon", "ellipse"}
		p.AllowAttrs(
			"d", "cx", "cy", "r", "x", "y", "x1", "y1", "x2", "y2",
			"points", "rx", "ry", "fill", "stroke", "stroke-width",
		).OnElements(shapes...)
		p.AllowAttrs("stroke", "fill").OnElements("g")

		policy = p
	})
	return policy
}
