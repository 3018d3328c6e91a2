package validation

import "encoding/json"

// ErrorStore holds the active error message per field and rule.
// A field is present only while at least one of its rules fails.
type ErrorStore struct {
	fields map[string]map[string]string
}

// NewErrorStore returns an empty store.
func NewErrorStore() *ErrorStore {
	return &ErrorStore{fields: make(map[string]map[string]string)}
}

// Set records msg as the active error of rule on field.
func (s *ErrorStore) Set(field, rule, msg string) {
	rules, ok := s.fields[field]
	if !ok {
		rules = make(map[string]string)
		s.fields[field] = rules
	}
	rules[rule] = msg
}

// Remove clears the error of rule on field. Removing an absent entry is a
// no-op. The field key is dropped with its last rule.
func (s *ErrorStore) Remove(field, rule string) {
	rules, ok := s.fields[field]
	if !ok {
		return
	}
	delete(rules, rule)
	if len(rules) == 0 {
		delete(s.fields, field)
	}
}

// Prune drops every field whose rule map is empty.
func (s *ErrorStore) Prune() {
	for field, rules := range s.fields {
		if len(rules) == 0 {
			delete(s.fields, field)
		}
	}
}

// Clear removes all errors.
func (s *ErrorStore) Clear() {
	clear(s.fields)
}

// Has reports whether field has at least one active error.
func (s *ErrorStore) Has(field string) bool {
	return len(s.fields[field]) > 0
}

// Field returns a copy of the active errors of field keyed by rule name,
// or nil when the field is valid.
func (s *ErrorStore) Field(field string) map[string]string {
	rules, ok := s.fields[field]
	if !ok || len(rules) == 0 {
		return nil
	}
	out := make(map[string]string, len(rules))
	for rule, msg := range rules {
		out[rule] = msg
	}
	return out
}

// First returns the message of the first rule in order that currently fails.
func (s *ErrorStore) First(field string, order []string) (string, bool) {
	rules := s.fields[field]
	if len(rules) == 0 {
		return "", false
	}
	for _, rule := range order {
		if msg, ok := rules[rule]; ok {
			return msg, true
		}
	}
	return "", false
}

// Empty reports whether no field has an active error.
func (s *ErrorStore) Empty() bool { return len(s.fields) == 0 }

// Len returns the number of fields with active errors.
func (s *ErrorStore) Len() int { return len(s.fields) }

// All returns a deep copy of the store.
func (s *ErrorStore) All() map[string]map[string]string {
	out := make(map[string]map[string]string, len(s.fields))
	for field := range s.fields {
		if rules := s.Field(field); rules != nil {
			out[field] = rules
		}
	}
	return out
}

// MarshalJSON encodes the store as {"field": {"rule": "message"}}.
func (s *ErrorStore) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.All())
}
