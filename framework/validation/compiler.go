package validation

import "slices"

// Field declares the validation pipeline of one input.
type Field struct {
	Name  string
	Rules string // e.g. "required|minLen:4"
	// Sync names another declared field that is re-evaluated whenever this
	// one is, e.g. the confirmation of a password.
	Sync string
}

// Descriptor is the compiled, immutable form of a Field. It keeps the rule
// definitions resolved at compile time, so later registry changes never reach
// an already compiled pipeline.
type Descriptor struct {
	name  string
	sync  string
	rules []RuleRef
	defs  []Rule
}

func (d Descriptor) Name() string { return d.name }

// Sync returns the dependent field, or "" when none is declared.
func (d Descriptor) Sync() string { return d.sync }

// Rules returns a copy of the pipeline in declaration order.
func (d Descriptor) Rules() []RuleRef {
	out := make([]RuleRef, len(d.rules))
	for i, r := range d.rules {
		out[i] = RuleRef{Name: r.Name, Params: slices.Clone(r.Params)}
	}
	return out
}

// RuleNames returns the rule names in declaration order, which is also the
// order of error precedence.
func (d Descriptor) RuleNames() []string {
	names := make([]string, len(d.rules))
	for i, r := range d.rules {
		names[i] = r.Name
	}
	return names
}

// Requires reports whether rule appears in the pipeline.
func (d Descriptor) Requires(rule string) bool {
	for _, r := range d.rules {
		if r.Name == rule {
			return true
		}
	}
	return false
}

// Compile checks every declaration against form and reg and returns the
// descriptors in declaration order. The first invalid field aborts compilation.
func Compile(form Form, reg *Registry, fields []Field) ([]Descriptor, error) {
	declared := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		declared[f.Name] = struct{}{}
	}

	seen := make(map[string]struct{}, len(fields))
	out := make([]Descriptor, 0, len(fields))

	for _, f := range fields {
		if _, dup := seen[f.Name]; dup {
			return nil, &FieldError{Field: f.Name, Err: ErrDuplicateField}
		}
		seen[f.Name] = struct{}{}

		if _, ok := form.Value(f.Name); !ok {
			return nil, &FieldError{Field: f.Name, Err: ErrFieldNotFound}
		}

		if f.Sync != "" {
			if _, ok := declared[f.Sync]; !ok || f.Sync == f.Name {
				return nil, &FieldError{Field: f.Name, Err: ErrSyncTargetNotFound}
			}
		}

		refs, defs, err := parseRules(reg, f.Rules)
		if err != nil {
			return nil, &FieldError{Field: f.Name, Err: err}
		}

		out = append(out, Descriptor{name: f.Name, sync: f.Sync, rules: refs, defs: defs})
	}
	return out, nil
}
