package validation

// Form is the bound form as seen by the engine: it answers, per input name,
// whether the input exists and what its live value is.
type Form interface {
	Value(field string) (string, bool)
}

// SubmitControl is the submission affordance (a submit button or similar)
// that the engine disables while the form is invalid.
type SubmitControl interface {
	SetDisabled(disabled bool)
}

// MapForm is a Form backed by a map of input name to live value.
type MapForm map[string]string

// Value implements Form.
func (f MapForm) Value(field string) (string, bool) {
	v, ok := f[field]
	return v, ok
}

type noopControl struct{}

func (noopControl) SetDisabled(bool) {}
