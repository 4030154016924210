package authform

import (
	"io/fs"

	"github.com/goliatone/go-authform/components/icons"
	"github.com/goliatone/go-authform/pkg/renderers/vanilla"
)

// EmbeddedTemplates exposes the built-in page and component templates so
// callers can copy them as a starting point for a templates directory.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// EmbeddedIcons returns the sanitized built-in icon set.
func EmbeddedIcons() (*icons.Set, error) {
	return icons.Default()
}
