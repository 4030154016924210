// Package schema declares the validation rules applied to authentication
// forms. A Schema is an ordered list of fields, each carrying an ordered list
// of typed rules (format, length bounds, patterns, cross-field matches).
//
// Validate is pure: it never mutates the supplied state and always returns the
// same Result for the same input. Fields are evaluated in declaration order and
// evaluation of a field stops at its first failing rule, so a Result carries at
// most one message per field.
package schema
