package forms

import (
	"fmt"
	"io/fs"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/km-arc/formguard/framework/logger"
	"github.com/km-arc/formguard/framework/validation"
)

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithMaxSessions caps the number of open sessions across all forms.
// Zero means no limit.
func WithMaxSessions(n int) ManagerOption {
	return func(m *Manager) { m.maxSessions = n }
}

// WithDefaultEvents sets the events mode of schemas that do not choose one.
func WithDefaultEvents(mode validation.EventsMode) ManagerOption {
	return func(m *Manager) { m.events = mode }
}

// Manager holds the registered form schemas and their open sessions. Each
// form name maps to exactly one schema, so a form is never bound twice.
type Manager struct {
	mu sync.RWMutex

	registry    *validation.Registry
	logger      *slog.Logger
	maxSessions int
	events      validation.EventsMode

	schemas  map[string]Schema
	order    []string
	sessions map[string]map[string]*Session // form → session id → session
	open     int
}

// NewManager creates a Manager compiling schemas against reg. A nil reg uses
// validation.DefaultRegistry and a nil logger discards output.
func NewManager(reg *validation.Registry, log *slog.Logger, opts ...ManagerOption) *Manager {
	if reg == nil {
		reg = validation.DefaultRegistry()
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	m := &Manager{
		registry: reg,
		logger:   log,
		events:   validation.EventsAll,
		schemas:  make(map[string]Schema),
		sessions: make(map[string]map[string]*Session),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Register adds a schema. The schema is compiled once against an empty
// document so that rule strings and sync targets fail here rather than when
// a client opens the form.
func (m *Manager) Register(schema Schema) error {
	if err := schema.Validate(); err != nil {
		return err
	}
	if _, err := newSession("", schema, m.registry, m.eventsOf(schema), m.logger); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidSchema, schema.Name, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.schemas[schema.Name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateForm, schema.Name)
	}
	m.schemas[schema.Name] = schema
	m.order = append(m.order, schema.Name)
	m.sessions[schema.Name] = make(map[string]*Session)

	m.logger.Info("form registered",
		logger.Form(schema.Name),
		slog.Int("fields", len(schema.Fields)),
		slog.String("events", string(m.eventsOf(schema))),
	)
	return nil
}

// Load registers every schema file of fsys matching pattern.
//
//	err := manager.Load(os.DirFS(cfg.Forms.SchemaDir), "*.yaml")
func (m *Manager) Load(fsys fs.FS, pattern string) error {
	schemas, err := LoadSchemas(fsys, pattern)
	if err != nil {
		return err
	}
	for _, s := range schemas {
		if err := m.Register(s); err != nil {
			return err
		}
	}
	return nil
}

// Schema returns the registered schema of form.
func (m *Manager) Schema(form string) (Schema, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.schemas[form]
	return s, ok
}

// Forms returns the registered form names in registration order.
func (m *Manager) Forms() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.order)
}

// Open starts a new session of form.
func (m *Manager) Open(form string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	schema, ok := m.schemas[form]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownForm, form)
	}
	if m.maxSessions > 0 && m.open >= m.maxSessions {
		return nil, fmt.Errorf("%w: %d open", ErrTooManySessions, m.open)
	}

	id := uuid.NewString()
	log := m.logger.With(logger.Form(form), logger.Session(id))
	s, err := newSession(id, schema, m.registry, m.eventsOf(schema), log)
	if err != nil {
		return nil, err
	}
	m.sessions[form][id] = s
	m.open++

	log.Info("session opened")
	return s, nil
}

// Session returns the open session id of form.
func (m *Manager) Session(form, id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sessions, ok := m.sessions[form]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownForm, form)
	}
	s, ok := sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSession, id)
	}
	return s, nil
}

// Close discards the session id of form.
func (m *Manager) Close(form, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sessions, ok := m.sessions[form]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownForm, form)
	}
	if _, ok := sessions[id]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSession, id)
	}
	delete(sessions, id)
	m.open--

	m.logger.Info("session closed", logger.Form(form), logger.Session(id))
	return nil
}

// Len returns the number of open sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.open
}

func (m *Manager) eventsOf(s Schema) validation.EventsMode {
	if s.Events != "" {
		return s.Events
	}
	return m.events
}
