package validation

import (
	"fmt"
	"sort"
	"sync"
)

// Values is the Value Snapshot: the last raw value recorded per field.
// A field that was never evaluated has no entry.
type Values map[string]string

// Get returns the recorded value of field and whether one exists.
func (v Values) Get(field string) (string, bool) {
	s, ok := v[field]
	return s, ok
}

// Lookup returns the recorded value of field, or "" when it was never evaluated.
func (v Values) Lookup(field string) string {
	return v[field]
}

func (v Values) clone() Values {
	out := make(Values, len(v))
	for k, s := range v {
		out[k] = s
	}
	return out
}

// Predicate reports whether value satisfies a rule. params holds exactly
// Rule.Arity raw strings; values is the current Value Snapshot.
type Predicate func(value string, params []string, values Values) bool

// Rule is a named validation rule.
type Rule struct {
	Name string
	// Message is a template with positional placeholders $1, $2, ...
	Message string
	// Arity is the number of parameters the rule takes.
	Arity int
	Check Predicate
}

func (r Rule) valid() bool {
	return r.Name != "" && r.Check != nil && r.Arity >= 0
}

// Registry maps rule names to their definitions. It is shared by every
// Validator compiled against it, so access is synchronised.
type Registry struct {
	mu    sync.RWMutex
	rules map[string]Rule
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{rules: make(map[string]Rule)}
}

// NewBuiltinRegistry returns an isolated registry seeded with the built-in rules.
func NewBuiltinRegistry() *Registry {
	r := NewRegistry()
	for _, rule := range builtinRules() {
		r.rules[rule.Name] = rule
	}
	return r
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the process-wide registry used by validators that
// are not given one explicitly.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewBuiltinRegistry()
	})
	return defaultRegistry
}

type registerConfig struct {
	replace bool
}

// RegisterOption configures Register.
type RegisterOption func(*registerConfig)

// WithReplace allows Register to overwrite an existing rule of the same name.
func WithReplace() RegisterOption {
	return func(c *registerConfig) { c.replace = true }
}

// Register adds rule to the registry.
//
//	reg.Register(validation.Rule{
//	    Name:    "even",
//	    Message: "Must be an even number",
//	    Check:   func(v string, _ []string, _ validation.Values) bool { ... },
//	})
func (r *Registry) Register(rule Rule, opts ...RegisterOption) error {
	if !rule.valid() {
		return fmt.Errorf("%w: %q", ErrInvalidRule, rule.Name)
	}

	var cfg registerConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rules[rule.Name]; exists && !cfg.replace {
		return fmt.Errorf("%w: %q", ErrDuplicateRule, rule.Name)
	}
	r.rules[rule.Name] = rule
	return nil
}

// SetMessage replaces the message template of an existing rule.
func (r *Registry) SetMessage(name, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rule, ok := r.rules[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownRule, name)
	}
	rule.Message = message
	r.rules[name] = rule
	return nil
}

// SetMessages replaces several message templates at once. Nothing changes
// unless every name is registered.
func (r *Registry) SetMessages(messages map[string]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for name := range messages {
		if _, ok := r.rules[name]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownRule, name)
		}
	}
	for name, msg := range messages {
		rule := r.rules[name]
		rule.Message = msg
		r.rules[name] = rule
	}
	return nil
}

// Lookup returns the rule registered under name.
func (r *Registry) Lookup(name string) (Rule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rule, ok := r.rules[name]
	if !ok {
		return Rule{}, fmt.Errorf("%w: %q", ErrUnknownRule, name)
	}
	return rule, nil
}

// Has reports whether a rule named name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.rules[name]
	return ok
}

// Names returns the registered rule names in lexical order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.rules))
	for name := range r.rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
