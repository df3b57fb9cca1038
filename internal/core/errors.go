package core

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat is wrapped by ImportErrors of kind KindUnsupportedFormat.
	ErrUnsupportedFormat = errors.New("format is not supported")

	// ErrFileTooLarge is returned when a document exceeds the configured size.
	ErrFileTooLarge = errors.New("file too large")

	// ErrMissingInput is returned when the format or the document is absent.
	ErrMissingInput = errors.New("format or file is missing")
)

// FailureKind classifies why a document could not be imported.
type FailureKind int

const (
	// KindSchemaViolation: the document is XML but does not conform to the schema.
	KindSchemaViolation FailureKind = iota + 1
	// KindMalformedInput: the bytes could not be parsed as XML.
	KindMalformedInput
	// KindIncompleteRecord: schema-valid, but a job lacks a field the assembler needs.
	KindIncompleteRecord
	// KindUnsupportedFormat: no format is registered under the requested identifier.
	KindUnsupportedFormat
)

func (k FailureKind) String() string {
	switch k {
	case KindSchemaViolation:
		return "schema_violation"
	case KindMalformedInput:
		return "malformed_input"
	case KindIncompleteRecord:
		return "incomplete_record"
	case KindUnsupportedFormat:
		return "unsupported_format"
	default:
		return "unknown"
	}
}

// ImportError is the failure outcome of a parse. Diagnostics is only populated
// for KindSchemaViolation; the other kinds carry a summary message and,
// optionally, the underlying cause.
type ImportError struct {
	Kind        FailureKind
	Message     string
	Diagnostics []Diagnostic
	Err         error
}

func (e *ImportError) Error() string {
	switch {
	case e.Kind == KindSchemaViolation && len(e.Diagnostics) > 0:
		return fmt.Sprintf("%s: %d schema violation(s), first: %s", e.Message, len(e.Diagnostics), e.Diagnostics[0])
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	default:
		return e.Message
	}
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

// AsImportError extracts an ImportError from an error chain.
func AsImportError(err error) (*ImportError, bool) {
	var ie *ImportError
	if errors.As(err, &ie) {
		return ie, true
	}
	return nil, false
}

// DiagnosticsOf returns the schema diagnostics carried by err.
// ok is false unless err is a schema violation, so callers can tell
// "no detail available" apart from "validated without violations".
func DiagnosticsOf(err error) ([]Diagnostic, bool) {
	ie, ok := AsImportError(err)
	if !ok || ie.Kind != KindSchemaViolation {
		return nil, false
	}
	return ie.Diagnostics, true
}

func schemaViolation(diags []Diagnostic) *ImportError {
	return &ImportError{Kind: KindSchemaViolation, Message: "File is not valid", Diagnostics: diags}
}

func malformedInput(err error) *ImportError {
	return &ImportError{Kind: KindMalformedInput, Message: "File is not well-formed XML", Err: err}
}

func incompleteRecord(msg string) *ImportError {
	return &ImportError{Kind: KindIncompleteRecord, Message: msg}
}

func unsupportedFormat(format string) *ImportError {
	return &ImportError{
		Kind:    KindUnsupportedFormat,
		Message: "Format is not supported",
		Err:     fmt.Errorf("%w: %q", ErrUnsupportedFormat, format),
	}
}
