package forms

import "errors"

var (
	ErrInvalidSchema   = errors.New("forms: invalid schema")
	ErrDuplicateForm   = errors.New("forms: form already registered")
	ErrUnknownForm     = errors.New("forms: unknown form")
	ErrUnknownSession  = errors.New("forms: unknown session")
	ErrTooManySessions = errors.New("forms: session limit reached")
	ErrUnknownInput    = errors.New("forms: unknown input")
	ErrInvalidEvent    = errors.New("forms: invalid event")

	ErrFailedToParseSchema = errors.New("forms: failed to parse schema file")
	ErrFailedToReadSchema  = errors.New("forms: failed to read schema file")
)
