package forms

import (
	"fmt"
	"slices"

	"github.com/km-arc/formguard/framework/validation"
)

// Schema declares a form: the inputs its document carries and the fields
// validated over them. Inputs without a field declaration are carried but
// never validated. When Inputs is empty the declared field names are used.
type Schema struct {
	Name   string
	Title  string
	Inputs []string
	Fields []validation.Field
	// Events is the events mode of the form. Empty defers to the manager default.
	Events validation.EventsMode
}

// Validate checks the schema shape. Rule strings and sync targets are checked
// later, when the manager compiles the schema.
func (s Schema) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: empty form name", ErrInvalidSchema)
	}
	seen := make(map[string]bool, len(s.Inputs))
	for _, in := range s.Inputs {
		if in == "" {
			return fmt.Errorf("%w: %s: empty input name", ErrInvalidSchema, s.Name)
		}
		if seen[in] {
			return fmt.Errorf("%w: %s: duplicate input %q", ErrInvalidSchema, s.Name, in)
		}
		seen[in] = true
	}
	if s.Events != "" {
		if _, err := validation.ParseEventsMode(string(s.Events)); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidSchema, s.Name, err)
		}
	}
	return nil
}

// inputs returns the document layout of the schema.
func (s Schema) inputs() []string {
	if len(s.Inputs) > 0 {
		return slices.Clone(s.Inputs)
	}
	out := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		if !slices.Contains(out, f.Name) {
			out = append(out, f.Name)
		}
	}
	return out
}

func (s Schema) title() string {
	if s.Title != "" {
		return s.Title
	}
	return s.Name
}
