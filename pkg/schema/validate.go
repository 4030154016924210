package schema

import "strings"

// Validate evaluates every field of the schema against state. The state is
// normalised first so undeclared keys never reach the payload.
func (s *Schema) Validate(state FormState) Result {
	normalized := s.Normalize(state)
	errs := make(map[string]string)

	for _, field := range s.fieldsOrEmpty() {
		value := normalized[field.Name]
		for _, rule := range field.Rules {
			if rule.Check(value, normalized) {
				continue
			}
			errs[field.Name] = rule.Message
			break
		}
	}

	if len(errs) > 0 {
		return Result{Errors: errs}
	}
	return Result{Payload: normalized}
}

// Normalize returns a copy of state holding exactly the declared fields.
// Missing fields are set to the empty string and unknown keys are dropped.
func (s *Schema) Normalize(state FormState) FormState {
	fields := s.fieldsOrEmpty()
	out := make(FormState, len(fields))
	for _, field := range fields {
		out[field.Name] = state[field.Name]
	}
	return out
}

// FieldNames lists the declared field names in order.
func (s *Schema) FieldNames() []string {
	fields := s.fieldsOrEmpty()
	names := make([]string, 0, len(fields))
	for _, field := range fields {
		names = append(names, field.Name)
	}
	return names
}

// Field looks up a declared field by name.
func (s *Schema) Field(name string) (Field, bool) {
	name = strings.TrimSpace(name)
	for _, field := range s.fieldsOrEmpty() {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

func (s *Schema) fieldsOrEmpty() []Field {
	if s == nil {
		return nil
	}
	return s.Fields
}
