package schema

import "regexp"

// Format hints how a field is captured by bindings. It does not affect
// validation; rules do.
type Format string

const (
	FormatText     Format = "text"
	FormatEmail    Format = "email"
	FormatPassword Format = "password"
)

// RuleKind tags the variant carried by a Rule.
type RuleKind string

const (
	RuleFormatEmail  RuleKind = "formatEmail"
	RuleMinLength    RuleKind = "minLength"
	RuleMaxLength    RuleKind = "maxLength"
	RulePattern      RuleKind = "pattern"
	RuleMatchesField RuleKind = "matchesField"
)

// Rule is a single constraint applied to a field value. Length bounds use
// Length, pattern rules use Pattern and cross-field rules reference the other
// field through Field. Message is surfaced verbatim when the rule fails.
type Rule struct {
	Kind    RuleKind
	Length  int
	Pattern *regexp.Regexp
	Field   string
	Message string
}

// Field describes one form input and its ordered rules.
type Field struct {
	Name   string
	Format Format
	Rules  []Rule
}

// Schema is an ordered set of field rules identified by Name.
type Schema struct {
	Name   string
	Fields []Field
}

// FormState maps field names to their current string values.
type FormState map[string]string

// Clone returns a shallow copy of the state.
func (s FormState) Clone() FormState {
	if s == nil {
		return nil
	}
	out := make(FormState, len(s))
	for key, value := range s {
		out[key] = value
	}
	return out
}

// Result is either valid (Payload set, Errors empty) or invalid (Errors set,
// Payload nil). Errors holds the first failing message per field.
type Result struct {
	Payload FormState
	Errors  map[string]string
}

// Valid reports whether every field satisfied its rules.
func (r Result) Valid() bool {
	return len(r.Errors) == 0 && r.Payload != nil
}

// Error returns the message attached to field, if any.
func (r Result) Error(field string) string {
	if r.Errors == nil {
		return ""
	}
	return r.Errors[field]
}
