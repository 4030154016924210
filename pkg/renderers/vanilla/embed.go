package vanilla

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl templates/components/*.tmpl
var embeddedTemplates embed.FS

// StylesheetName is the base stylesheet served next to the runtime script.
const StylesheetName = "authform.css"

// TemplatesFS exposes the embedded template bundle. Template paths start with
// "templates/".
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
