package forms

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/km-arc/formguard/framework/logger"
	"github.com/km-arc/formguard/framework/validation"
)

// State is a snapshot of a session as served to clients.
type State struct {
	ID             string                       `json:"id"`
	Form           string                       `json:"form"`
	Valid          bool                         `json:"valid"`
	SubmitDisabled bool                         `json:"submit_disabled"`
	Errors         map[string]string            `json:"errors"`
	Details        map[string]map[string]string `json:"details"`
	Values         map[string]string            `json:"values"`
	Submitted      bool                         `json:"submitted"`
}

// Session is one live instance of a registered form: a document, its submit
// button and the validator bound to both. Calls on a session are serialized;
// each runs the validator to completion before the next starts.
type Session struct {
	mu sync.Mutex

	id      string
	schema  Schema
	created time.Time
	logger  *slog.Logger

	doc       *Document
	button    *Button
	validator *validation.Validator
	submitted validation.Values
}

func newSession(id string, schema Schema, reg *validation.Registry, events validation.EventsMode, log *slog.Logger) (*Session, error) {
	s := &Session{
		id:      id,
		schema:  schema,
		created: time.Now(),
		logger:  log,
		doc:     NewDocument(schema.inputs()),
		button:  &Button{},
	}

	v, err := validation.New(s.doc, schema.Fields,
		validation.WithRegistry(reg),
		validation.WithEvents(events),
		validation.WithSubmitControl(s.button),
		validation.WithLogger(log),
	)
	if err != nil {
		return nil, err
	}
	v.OnError(func(e validation.ErrorEvent) {
		s.logger.Debug("field rejected", logger.Field(e.Field), slog.Any("rules", failedRules(e.Errors)))
	})
	v.OnSubmit(func(values validation.Values) {
		s.submitted = values
	})
	s.validator = v
	return s, nil
}

func (s *Session) ID() string { return s.id }

func (s *Session) Form() string { return s.schema.Name }

func (s *Session) CreatedAt() time.Time { return s.created }

// Event applies a value change from the client. The document always takes the
// new value; the validator evaluates it when the field is declared and the
// form's events mode subscribes to kind.
func (s *Session) Event(kind validation.EventKind, field, value string) (State, error) {
	switch kind {
	case validation.EventInput, validation.EventBlur:
	case validation.EventSubmit:
		return State{}, fmt.Errorf("%w: submit is not a change event", ErrInvalidEvent)
	default:
		return State{}, fmt.Errorf("%w: %q", ErrInvalidEvent, kind)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.doc.Set(field, value); err != nil {
		return State{}, err
	}
	if _, err := s.validator.Dispatch(kind, field, value); err != nil && !errors.Is(err, validation.ErrFieldNotFound) {
		return State{}, err
	}
	return s.state(), nil
}

// Submit copies values into the document and runs a full validation pass.
// Keys that are not inputs of the form are ignored. The boolean reports
// whether the submission went through; a cancelled submission discards the
// values of any earlier one.
func (s *Session) Submit(values map[string]string) (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for field, value := range values {
		if err := s.doc.Set(field, value); err != nil {
			s.logger.Debug("ignoring submitted key", logger.Field(field))
		}
	}
	ok := s.validator.Submit()
	if !ok {
		s.submitted = nil
	}
	return s.state(), ok
}

// Reset clears every error and re-enables the submit button.
func (s *Session) Reset() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.validator.ResetAllErrors()
	return s.state()
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state()
}

// Submitted returns the submitted values when the latest submission went
// through.
func (s *Session) Submitted() (map[string]string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitted == nil {
		return nil, false
	}
	return maps.Clone(s.submitted), true
}

// page returns the render model of the session.
func (s *Session) page() pageData {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := pageData{
		Title:     s.schema.title(),
		Form:      s.schema.Name,
		Session:   s.id,
		Invalid:   s.validator.IsError(),
		Submitted: s.submitted != nil,
	}
	for _, name := range s.doc.Inputs() {
		value, _ := s.doc.Value(name)
		in := pageInput{Name: name, Value: value}
		if d, ok := s.validator.Descriptor(name); ok {
			in.Rules = strings.Join(d.RuleNames(), "|")
		}
		if msg, ok := s.validator.Message(name); ok {
			in.Visible = true
			in.Message = msg
		}
		data.Inputs = append(data.Inputs, in)
	}
	return data
}

func (s *Session) state() State {
	return State{
		ID:             s.id,
		Form:           s.schema.Name,
		Valid:          !s.validator.IsError(),
		SubmitDisabled: s.button.Disabled(),
		Errors:         s.validator.Visible(),
		Details:        s.validator.Errors(),
		Values:         s.doc.Values(),
		Submitted:      s.submitted != nil,
	}
}

func failedRules(errs map[string]string) []string {
	return slices.Sorted(maps.Keys(errs))
}
