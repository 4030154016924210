package form

import "github.com/goliatone/go-authform/pkg/schema"

// Binding wires one input to one FormState field. Value and OnChange form the
// two-way data binding; Error exposes the message attached by the last invalid
// submission. Visibility is local UI state for masked inputs and never reaches
// the FormState.
type Binding struct {
	controller *Controller
	field      schema.Field
	visible    bool
}

// Name returns the bound field name.
func (b *Binding) Name() string {
	return b.field.Name
}

// Format returns the field capture format.
func (b *Binding) Format() schema.Format {
	return b.field.Format
}

// Masked reports whether the input hides its value by default.
func (b *Binding) Masked() bool {
	return b.field.Format == schema.FormatPassword
}

// Value reads the current field value.
func (b *Binding) Value() string {
	return b.controller.value(b.field.Name)
}

// OnChange writes value into the FormState synchronously.
func (b *Binding) OnChange(value string) {
	b.controller.setValue(b.field.Name, value)
}

// Error returns the validation message attached to the field, if any.
func (b *Binding) Error() string {
	return b.controller.fieldError(b.field.Name)
}

// Visible reports whether a masked value is currently revealed. Unmasked
// bindings are always visible.
func (b *Binding) Visible() bool {
	if !b.Masked() {
		return true
	}
	return b.visible
}

// ToggleVisibility flips the reveal state of a masked binding and returns the
// new state.
func (b *Binding) ToggleVisibility() bool {
	if !b.Masked() {
		return true
	}
	b.visible = !b.visible
	return b.visible
}
