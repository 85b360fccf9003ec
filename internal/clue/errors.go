package clue

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation matches every *ValidationError.
	ErrValidation = errors.New("invalid definition")

	ErrMalformedEncoding = errors.New("malformed encoding")
	ErrMalformedPayload  = errors.New("malformed payload")
	ErrMissingField      = errors.New("missing required field")
)

// ValidationError is returned by Encode when a required field is blank or a
// field cannot be encoded unchanged.
type ValidationError struct {
	Field  string
	Reason string // empty means "is required"
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("clue: %s %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("clue: %s is required", e.Field)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// DecodeKind classifies a decode failure.
type DecodeKind int

const (
	// MalformedEncoding: the text-to-binary step failed.
	MalformedEncoding DecodeKind = iota + 1
	// MalformedPayload: the bytes are not a JSON object of the expected shape.
	MalformedPayload
	// MissingRequiredField: clue or answer is absent or blank.
	MissingRequiredField
)

// String returns the wire code used in HTTP error bodies.
func (k DecodeKind) String() string {
	switch k {
	case MalformedEncoding:
		return "malformed_encoding"
	case MalformedPayload:
		return "malformed_payload"
	case MissingRequiredField:
		return "missing_required_field"
	}
	return "unknown"
}

// DecodeError is returned by Decode. Err carries the underlying cause, if any.
type DecodeError struct {
	Kind  DecodeKind
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	switch {
	case e.Kind == MissingRequiredField:
		return fmt.Sprintf("clue: token is missing %q", e.Field)
	case e.Err != nil:
		return fmt.Sprintf("clue: %s: %v", e.sentinel(), e.Err)
	}
	return "clue: " + e.sentinel().Error()
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool { return target == e.sentinel() }

func (e *DecodeError) sentinel() error {
	switch e.Kind {
	case MalformedEncoding:
		return ErrMalformedEncoding
	case MalformedPayload:
		return ErrMalformedPayload
	case MissingRequiredField:
		return ErrMissingField
	}
	return errors.New("decode failed")
}
