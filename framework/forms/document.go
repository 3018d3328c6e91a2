package forms

import (
	"fmt"
	"maps"
	"slices"
)

// Document is the live state of one form instance: its inputs, in layout
// order, with their current values. It implements validation.Form.
type Document struct {
	order  []string
	values map[string]string
}

// NewDocument creates a Document with every input set to "".
func NewDocument(inputs []string) *Document {
	d := &Document{
		order:  slices.Clone(inputs),
		values: make(map[string]string, len(inputs)),
	}
	for _, in := range inputs {
		d.values[in] = ""
	}
	return d
}

// Value implements validation.Form.
func (d *Document) Value(field string) (string, bool) {
	v, ok := d.values[field]
	return v, ok
}

// Set replaces the live value of input field.
func (d *Document) Set(field, value string) error {
	if _, ok := d.values[field]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownInput, field)
	}
	d.values[field] = value
	return nil
}

// Inputs returns the input names in layout order.
func (d *Document) Inputs() []string { return slices.Clone(d.order) }

// Values returns a copy of the live values.
func (d *Document) Values() map[string]string { return maps.Clone(d.values) }

// Button is the submit control of a form instance. It implements
// validation.SubmitControl.
type Button struct {
	disabled bool
}

func (b *Button) SetDisabled(disabled bool) { b.disabled = disabled }

func (b *Button) Disabled() bool { return b.disabled }
