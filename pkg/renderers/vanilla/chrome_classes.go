package vanilla

// ChromeClass is a typed identifier for the page layout CSS classes.
type ChromeClass string

const (
	ClassPage    ChromeClass = "af-page"
	ClassCard    ChromeClass = "af-card"
	ClassHeader  ChromeClass = "af-header"
	ClassForm    ChromeClass = "af-form"
	ClassErrors  ChromeClass = "af-errors"
	ClassOptions ChromeClass = "af-options"
	ClassActions ChromeClass = "af-actions"
	ClassFooter  ChromeClass = "af-footer"
)

func chromeClasses() map[string]string {
	return map[string]string{
		"page":    string(ClassPage),
		"card":    string(ClassCard),
		"header":  string(ClassHeader),
		"form":    string(ClassForm),
		"errors":  string(ClassErrors),
		"options": string(ClassOptions),
		"actions": string(ClassActions),
		"footer":  string(ClassFooter),
	}
}
