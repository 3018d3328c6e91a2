package validation

import (
	"fmt"
	"log/slog"
	"strings"
)

// ErrorEvent is passed to the error callback after a field evaluation that
// left the field with at least one failing rule.
type ErrorEvent struct {
	Value  string
	Field  string
	Errors map[string]string // rule name → message; a copy
}

// Option configures a Validator.
type Option func(*Validator)

// WithRegistry compiles and evaluates against reg instead of DefaultRegistry.
func WithRegistry(reg *Registry) Option {
	return func(v *Validator) {
		if reg != nil {
			v.registry = reg
		}
	}
}

// WithEvents selects which change events trigger evaluation. Default: EventsAll.
func WithEvents(mode EventsMode) Option {
	return func(v *Validator) { v.events = mode }
}

// WithSubmitControl binds the submission affordance.
func WithSubmitControl(c SubmitControl) Option {
	return func(v *Validator) {
		if c != nil {
			v.control = c
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(v *Validator) {
		if l != nil {
			v.logger = l
		}
	}
}

// Validator evaluates the declared fields of one form and keeps its error
// state. It is not safe for concurrent use: the host delivers events one at a
// time and every call runs to completion, including the re-evaluation of
// dependent fields.
type Validator struct {
	form     Form
	registry *Registry
	events   EventsMode
	control  SubmitControl
	logger   *slog.Logger

	fields []Descriptor
	index  map[string]int

	values Values
	store  *ErrorStore

	onError  func(ErrorEvent)
	onSubmit func(Values)
}

// New compiles fields against form and returns a ready Validator. Any
// configuration error aborts construction.
//
//	v, err := validation.New(form, []validation.Field{
//	    {Name: "password", Rules: "required|minLen:5", Sync: "confirm"},
//	    {Name: "confirm", Rules: "required|confirm:password"},
//	}, validation.WithEvents(validation.EventsInput))
func New(form Form, fields []Field, opts ...Option) (*Validator, error) {
	v := &Validator{
		form:     form,
		registry: DefaultRegistry(),
		events:   EventsAll,
		control:  noopControl{},
		logger:   slog.New(slog.DiscardHandler),
		values:   make(Values),
		store:    NewErrorStore(),
	}
	for _, opt := range opts {
		opt(v)
	}

	mode, err := ParseEventsMode(string(v.events))
	if err != nil {
		return nil, err
	}
	v.events = mode

	descriptors, err := Compile(form, v.registry, fields)
	if err != nil {
		return nil, err
	}
	v.fields = descriptors
	v.index = make(map[string]int, len(descriptors))
	for i, d := range descriptors {
		v.index[d.name] = i
	}
	return v, nil
}

// OnError sets the callback fired when an evaluated field ends up invalid.
// It replaces any previous callback.
func (v *Validator) OnError(fn func(ErrorEvent)) { v.onError = fn }

// OnSubmit sets the callback fired by a successful Submit. It replaces any
// previous callback.
func (v *Validator) OnSubmit(fn func(Values)) { v.onSubmit = fn }

// Evaluate runs the pipeline of field against value and updates the error
// state, then re-evaluates the field's sync target if it declares one.
// Failing rules are recorded, never returned; the only error is
// ErrFieldNotFound for a field that was not declared.
func (v *Validator) Evaluate(field, value string) error {
	i, ok := v.index[field]
	if !ok {
		return fmt.Errorf("%w: %q", ErrFieldNotFound, field)
	}
	v.evaluate(v.fields[i], value, make(map[string]bool))
	v.syncControl()
	return nil
}

// Dispatch delivers a value-change event. Events the configured mode does not
// subscribe to are ignored; the boolean reports whether an evaluation ran.
// Submission is not a change event, use Submit.
func (v *Validator) Dispatch(kind EventKind, field, value string) (bool, error) {
	if _, ok := v.index[field]; !ok {
		return false, fmt.Errorf("%w: %q", ErrFieldNotFound, field)
	}
	if kind == EventSubmit || !v.events.Subscribes(kind) {
		return false, nil
	}
	return true, v.Evaluate(field, value)
}

// Submit evaluates every declared field against its live form value, in
// declaration order. It returns false, and does not call the submit
// callback, when any error remains.
func (v *Validator) Submit() bool {
	for _, d := range v.fields {
		value, _ := v.form.Value(d.name)
		v.evaluate(d, value, make(map[string]bool))
	}
	v.syncControl()

	if !v.store.Empty() {
		v.logger.Debug("submission cancelled", slog.Int("invalid_fields", v.store.Len()))
		return false
	}
	if v.onSubmit != nil {
		v.onSubmit(v.values.clone())
	}
	return true
}

// ResetAllErrors clears the error state and re-enables submission. Recorded
// values are kept.
func (v *Validator) ResetAllErrors() {
	v.store.Clear()
	v.control.SetDisabled(false)
}

// IsError reports whether any field currently has an active error.
func (v *Validator) IsError() bool { return !v.store.Empty() }

// Message returns the one message surfaced for field: the error of the
// earliest declared rule that currently fails.
func (v *Validator) Message(field string) (string, bool) {
	i, ok := v.index[field]
	if !ok {
		return "", false
	}
	return v.store.First(field, v.fields[i].RuleNames())
}

// Visible returns the surfaced message of every invalid field.
func (v *Validator) Visible() map[string]string {
	out := make(map[string]string, v.store.Len())
	for _, d := range v.fields {
		if msg, ok := v.Message(d.name); ok {
			out[d.name] = msg
		}
	}
	return out
}

// Errors returns a copy of the full error state.
func (v *Validator) Errors() map[string]map[string]string { return v.store.All() }

// FieldErrors returns a copy of the active errors of field.
func (v *Validator) FieldErrors(field string) map[string]string { return v.store.Field(field) }

// Values returns a copy of the Value Snapshot.
func (v *Validator) Values() Values { return v.values.clone() }

// Fields returns the compiled descriptors in declaration order.
func (v *Validator) Fields() []Descriptor { return append([]Descriptor(nil), v.fields...) }

// Descriptor returns the compiled descriptor of field.
func (v *Validator) Descriptor(field string) (Descriptor, bool) {
	i, ok := v.index[field]
	if !ok {
		return Descriptor{}, false
	}
	return v.fields[i], true
}

func (v *Validator) Events() EventsMode { return v.events }

// evaluate runs one field. visited holds the fields already evaluated by the
// current call so that mutually synced fields terminate.
func (v *Validator) evaluate(d Descriptor, value string, visited map[string]bool) {
	visited[d.name] = true

	isEmpty := strings.TrimSpace(value) == ""
	isRequired := d.Requires(RuleRequired)

	for i, ref := range d.rules {
		rule := d.defs[i]
		if (isEmpty && !isRequired) || rule.Check(value, ref.Params, v.values) {
			v.store.Remove(d.name, ref.Name)
			continue
		}
		v.store.Set(d.name, ref.Name, FormatMessage(rule.Message, ref.Params))
	}

	v.values[d.name] = value
	v.store.Prune()

	if errs := v.store.Field(d.name); errs != nil {
		v.logger.Debug("field invalid", slog.String("field", d.name), slog.Int("rules", len(errs)))
		if v.onError != nil {
			v.onError(ErrorEvent{Value: value, Field: d.name, Errors: errs})
		}
	}

	if d.sync == "" || visited[d.sync] {
		return
	}
	dep := v.fields[v.index[d.sync]]
	v.logger.Debug("re-evaluating sync target", slog.String("field", d.name), slog.String("target", d.sync))
	v.evaluate(dep, v.dependentValue(d.sync), visited)
}

// dependentValue is the value a sync target is re-evaluated with: its last
// recorded value, else its live form value, else "".
func (v *Validator) dependentValue(field string) string {
	if s, ok := v.values.Get(field); ok {
		return s
	}
	if s, ok := v.form.Value(field); ok {
		return s
	}
	return ""
}

func (v *Validator) syncControl() {
	v.control.SetDisabled(!v.store.Empty())
}
