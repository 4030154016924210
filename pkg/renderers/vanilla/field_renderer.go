package vanilla

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-authform/components/icons"
	"github.com/goliatone/go-authform/pkg/pages"
	"github.com/goliatone/go-authform/pkg/render"
	"github.com/goliatone/go-authform/pkg/renderers/vanilla/components"
)

// pageRenderer renders the parts of one page and remembers which components
// were used so their assets can be emitted once.
type pageRenderer struct {
	registry *components.Registry
	data     components.ComponentData
	icons    *icons.Set

	used []string
	seen map[string]struct{}
}

func newPageRenderer(registry *components.Registry, data components.ComponentData, set *icons.Set) *pageRenderer {
	return &pageRenderer{
		registry: registry,
		data:     data,
		icons:    set,
		seen:     make(map[string]struct{}),
	}
}

func (r *pageRenderer) component(name string, props components.Props) (string, error) {
	out, err := r.registry.Render(name, props, r.data)
	if err != nil {
		return "", err
	}
	if _, ok := r.seen[name]; !ok {
		r.seen[name] = struct{}{}
		r.used = append(r.used, name)
	}
	return strings.TrimSpace(out), nil
}

// icon returns sanitized markup, or "" for unknown names.
func (r *pageRenderer) icon(name string) string {
	if name == "" {
		return ""
	}
	markup, _ := r.icons.Markup(name)
	return markup
}

func (r *pageRenderer) header(page pages.Page) (string, error) {
	heading, err := r.component(components.NameHeading, components.Props{
		"level": 1,
		"text":  page.Heading,
		"icon":  r.icon(page.Icon),
	})
	if err != nil {
		return "", err
	}
	if page.Subtitle == "" {
		return heading, nil
	}
	subtitle, err := r.component(components.NameText, components.Props{"text": page.Subtitle})
	if err != nil {
		return "", err
	}
	return heading + "\n" + subtitle, nil
}

func (r *pageRenderer) fields(page pages.Page, opts render.RenderOptions) ([]string, error) {
	out := make([]string, 0, len(page.Inputs))
	for _, input := range page.Inputs {
		markup, err := r.field(input, opts)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", input.Name, err)
		}
		out = append(out, markup)
	}
	return out, nil
}

func (r *pageRenderer) field(input pages.Input, opts render.RenderOptions) (string, error) {
	field := map[string]any{
		"id":           controlID(input.Name),
		"name":         input.Name,
		"type":         input.Type,
		"label":        input.Label,
		"placeholder":  input.Placeholder,
		"autocomplete": input.Autocomplete,
		"icon":         r.icon(input.Icon),
		"error":        opts.Errors[input.Name],
		"error_id":     errorID(input.Name),
	}

	name := components.NameInput
	if input.Masked() {
		name = components.NamePassword
		field["icon_show"] = r.icon(pages.IconEye)
		field["icon_hide"] = r.icon(pages.IconEyeOff)
	} else {
		field["value"] = opts.Values[input.Name]
	}
	return r.component(name, components.Props{"field": field})
}

func (r *pageRenderer) options(page pages.Page, opts render.RenderOptions) (string, error) {
	var parts []string
	if page.RememberMe {
		checkbox, err := r.component(components.NameCheckbox, components.Props{
			"name":    pages.RememberField,
			"label":   "Remember me",
			"checked": opts.Remember,
		})
		if err != nil {
			return "", err
		}
		parts = append(parts, checkbox)
	}
	if page.Forgot != nil {
		anchor, err := r.component(components.NameAnchor, components.Props{
			"href":  page.Forgot.Href,
			"label": page.Forgot.Label,
		})
		if err != nil {
			return "", err
		}
		parts = append(parts, anchor)
	}
	return strings.Join(parts, "\n"), nil
}

func (r *pageRenderer) submit(page pages.Page) (string, error) {
	return r.component(components.NameButton, components.Props{
		"type":  "submit",
		"label": page.SubmitLabel,
	})
}

func (r *pageRenderer) footer(page pages.Page) (string, error) {
	if page.Footer.Text == "" && page.Footer.Link.Href == "" {
		return "", nil
	}
	var link string
	if page.Footer.Link.Href != "" {
		anchor, err := r.component(components.NameAnchor, components.Props{
			"href":  page.Footer.Link.Href,
			"label": page.Footer.Link.Label,
		})
		if err != nil {
			return "", err
		}
		link = anchor
	}
	return r.component(components.NameText, components.Props{
		"text":  page.Footer.Text,
		"link":  link,
		"class": "af-footer-text",
	})
}
