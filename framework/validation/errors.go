package validation

import (
	"errors"
	"fmt"
)

// Configuration errors. They are returned while mutating a Registry or while
// constructing a Validator and are never produced by a failing field value.
var (
	ErrUnknownRule        = errors.New("validation: unknown rule")
	ErrDuplicateRule      = errors.New("validation: rule already registered")
	ErrInvalidRule        = errors.New("validation: rule must have a name, a predicate and a non-negative arity")
	ErrArityMismatch      = errors.New("validation: parameter count does not match rule arity")
	ErrFieldNotFound      = errors.New("validation: field not found")
	ErrSyncTargetNotFound = errors.New("validation: sync target is not a declared field")
	ErrDuplicateField     = errors.New("validation: field declared more than once")
	ErrInvalidEventsMode  = errors.New("validation: invalid events mode")
)

// RuleError locates a failure inside a rule string.
type RuleError struct {
	Segment string // raw segment, e.g. "minLen:4"
	Index   int    // zero-based position within the pipeline
	Err     error
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("rule %d (%q): %v", e.Index, e.Segment, e.Err)
}

func (e *RuleError) Unwrap() error { return e.Err }

// FieldError attaches the offending field name to a compile failure.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }
