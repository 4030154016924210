package components

// Canonical component names used by the vanilla renderer and default registry.
const (
	NameHeading  = "heading"
	NameText     = "text"
	NameInput    = "input"
	NamePassword = "password"
	NameCheckbox = "checkbox"
	NameButton   = "button"
	NameAnchor   = "anchor"
)
