package pages

import "github.com/goliatone/go-authform/pkg/schema"

// Input describes how one schema field is presented.
type Input struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	Label        string `json:"label"`
	Placeholder  string `json:"placeholder,omitempty"`
	Icon         string `json:"icon,omitempty"`
	Autocomplete string `json:"autocomplete,omitempty"`
}

// Masked reports whether the input renders as a password control.
func (i Input) Masked() bool {
	return i.Type == string(schema.FormatPassword)
}

// Link is an anchor rendered by a page.
type Link struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// Footer is the line under the form pointing to the sibling page.
type Footer struct {
	Text string `json:"text"`
	Link Link   `json:"link"`
}

// Page is the declarative description of a route-bound form page.
type Page struct {
	ID          string         `json:"id"`
	Route       string         `json:"route"`
	Title       string         `json:"title"`
	Heading     string         `json:"heading"`
	Subtitle    string         `json:"subtitle"`
	Icon        string         `json:"icon,omitempty"`
	Inputs      []Input        `json:"inputs"`
	RememberMe  bool           `json:"rememberMe,omitempty"`
	Forgot      *Link          `json:"forgot,omitempty"`
	SubmitLabel string         `json:"submitLabel"`
	Footer      Footer         `json:"footer"`
	Schema      *schema.Schema `json:"-"`
}

// Input returns the input bound to name.
func (p Page) Input(name string) (Input, bool) {
	for _, input := range p.Inputs {
		if input.Name == name {
			return input, true
		}
	}
	return Input{}, false
}

// Icons lists the icon names the page references, in order of appearance.
func (p Page) Icons() []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(name string) {
		if name == "" {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	add(p.Icon)
	for _, input := range p.Inputs {
		add(input.Icon)
		if input.Masked() {
			add(IconEye)
			add(IconEyeOff)
		}
	}
	return out
}
