package render

import (
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-authform/pkg/schema"
)

// RenderOptions carry per-mount data renderers use to fill in a page without
// mutating the page definition.
type RenderOptions struct {
	// Values pre-populates controls. Renderers must not echo values of masked
	// inputs back to the client.
	Values schema.FormState
	// Errors holds the first failing message per field, as produced by the
	// validation schema.
	Errors map[string]string
	// FormErrors are messages not tied to a single field.
	FormErrors []string
	// Remember reflects the state of the page's "Remember me" checkbox.
	Remember bool
	// Theme resolves tokens and asset URLs for the selected theme variant.
	Theme *theme.RendererConfig
	// RequestID, when set, is exposed to renderers for correlation.
	RequestID string
}

// HasErrors reports whether any field or form level message is present.
func (o RenderOptions) HasErrors() bool {
	return len(o.Errors) > 0 || len(o.FormErrors) > 0
}

// FromResult fills Values and Errors from a validation result. The submitted
// state is kept so valid fields stay populated after an invalid submission.
func FromResult(state schema.FormState, result schema.Result) RenderOptions {
	opts := RenderOptions{Values: state.Clone()}
	if len(result.Errors) > 0 {
		opts.Errors = make(map[string]string, len(result.Errors))
		for field, message := range result.Errors {
			opts.Errors[field] = message
		}
	}
	return opts
}
