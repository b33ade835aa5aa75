package spec

import (
	"errors"
	"fmt"
)

// ErrorKind tags construction-time failures.
type ErrorKind string

const (
	ErrInvalidField      ErrorKind = "invalid_field"
	ErrInvalidSpec       ErrorKind = "invalid_spec"
	ErrDuplicateSpecName ErrorKind = "duplicate_spec_name"
)

// Error is a construction-time failure carrying the offending value and a
// remediation hint. Construction checks run eagerly and fail on the first
// violation.
type Error struct {
	Kind  ErrorKind
	Msg   string
	Value any
	Hint  string
}

func (e *Error) Error() string {
	s := fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	if e.Value != nil {
		s += fmt.Sprintf(" (got %v)", e.Value)
	}
	if e.Hint != "" {
		s += ": " + e.Hint
	}
	return s
}

// IsKind reports whether err is a spec construction error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var se *Error
	return errors.As(err, &se) && se.Kind == kind
}

func invalidField(msg string, value any, hint string) *Error {
	return &Error{Kind: ErrInvalidField, Msg: msg, Value: value, Hint: hint}
}

func invalidSpec(msg string, value any, hint string) *Error {
	return &Error{Kind: ErrInvalidSpec, Msg: msg, Value: value, Hint: hint}
}

func duplicateSpecName(name string, first, second *Spec) *Error {
	return &Error{
		Kind:  ErrDuplicateSpecName,
		Msg:   fmt.Sprintf("spec name %q appears more than once in the reference set", name),
		Value: []*Spec{first, second},
		Hint:  "rename one of the conflicting refs; every name must be unique across the transitive reference set",
	}
}
