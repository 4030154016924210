package components

import (
	"bytes"
	"fmt"
	"strings"
)

const templatePrefix = "templates/components/"

// RuntimeScript is the browser script backing the password visibility toggle.
const RuntimeScript = "authform-runtime.js"

// NewDefaultRegistry returns a registry with the built-in UI primitives.
func NewDefaultRegistry() *Registry {
	registry := New()

	registry.MustRegister(NameHeading, Descriptor{
		Renderer: templateComponentRenderer("auth.heading", templatePrefix+"heading.tmpl"),
	})
	registry.MustRegister(NameText, Descriptor{
		Renderer: templateComponentRenderer("auth.text", templatePrefix+"text.tmpl"),
	})
	registry.MustRegister(NameInput, Descriptor{
		Renderer: templateComponentRenderer("auth.input", templatePrefix+"input.tmpl"),
	})
	registry.MustRegister(NamePassword, Descriptor{
		Renderer: templateComponentRenderer("auth.password", templatePrefix+"password.tmpl"),
		Scripts:  []Script{{Name: RuntimeScript, Defer: true}},
	})
	registry.MustRegister(NameCheckbox, Descriptor{
		Renderer: templateComponentRenderer("auth.checkbox", templatePrefix+"checkbox.tmpl"),
	})
	registry.MustRegister(NameButton, Descriptor{
		Renderer: templateComponentRenderer("auth.button", templatePrefix+"button.tmpl"),
	})
	registry.MustRegister(NameAnchor, Descriptor{
		Renderer: templateComponentRenderer("auth.anchor", templatePrefix+"anchor.tmpl"),
	})

	return registry
}

func templateComponentRenderer(partialKey, templateName string) Renderer {
	return func(buf *bytes.Buffer, props Props, data ComponentData) error {
		if data.Template == nil {
			return fmt.Errorf("components: template renderer not configured for %q", templateName)
		}

		resolved := templateName
		if candidate := strings.TrimSpace(data.Partials[partialKey]); candidate != "" {
			resolved = candidate
		}

		rendered, err := data.Template.RenderTemplate(resolved, map[string]any(props))
		if err != nil {
			return fmt.Errorf("components: render template %q: %w", resolved, err)
		}
		buf.WriteString(rendered)
		return nil
	}
}
