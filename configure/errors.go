package configure

import (
	"errors"
	"fmt"
)

var (
	ErrMissingSubstitution = errors.New("missing substitution")
	ErrInvalidValue        = errors.New("invalid flag value")
	ErrBackendConflict     = errors.New("backend conflict")
	ErrMalformedTemplate   = errors.New("malformed template")
	ErrStale               = errors.New("generated file is stale")
)

// MissingError names one placeholder that had no value.
type MissingError struct {
	Token string
	Line  int
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("line %d: no value for placeholder @%s@", e.Line, e.Token)
}

func (e *MissingError) Unwrap() error { return ErrMissingSubstitution }
