// Package errors defines the error taxonomy shared by the versestats packages.
//
// Malformed input (ParseError, DuplicateError) and out-of-range settings
// (ValidationError) are fatal and carry enough context to point at the
// offending line or field. Degenerate statistics are not errors; they are
// reported as a status on the result record. ErrInsufficientData is the
// sentinel for callers that prefer an error value.
package errors

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrInvalidInput is matched by every ParseError and ValidationError.
	ErrInvalidInput = errors.New("invalid input")
	// ErrDuplicate is matched by DuplicateError.
	ErrDuplicate = errors.New("duplicate")
	// ErrInsufficientData means a statistic had too few samples.
	ErrInsufficientData = errors.New("insufficient data")
	// ErrUnsupported is matched by UnsupportedError.
	ErrUnsupported = errors.New("unsupported")
	// ErrNondeterministic means two runs over the same input disagreed.
	ErrNondeterministic = errors.New("analysis is not deterministic")
)

// ValidationError reports a setting or argument outside its allowed range.
// Field uses the dotted configuration name, e.g. "collocation.window".
type ValidationError struct {
	Field   string
	Value   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Message
	}
	return "validation failed for " + e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error {
	if e.Err == nil {
		return ErrInvalidInput
	}
	return e.Err
}

// ParseError reports malformed input. Line is 1-based; zero means the input
// was not line oriented (a reference string, a lexicon document).
type ParseError struct {
	Format  string // "corpus", "reference", "lexicon", "config"
	Line    int
	Content string // offending line or fragment, verbatim
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	msg := "failed to parse " + e.Format
	if e.Line > 0 {
		msg += " at line " + strconv.Itoa(e.Line)
	}
	msg += ": " + e.Message
	if e.Content != "" {
		msg += ": " + strconv.Quote(e.Content)
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	if e.Err == nil {
		return ErrInvalidInput
	}
	return e.Err
}

// DuplicateError reports a key that must be unique, with both line numbers.
type DuplicateError struct {
	Key       string // rendered key, e.g. "2:255"
	FirstLine int
	Line      int
	Content   string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate %s at line %d (first seen at line %d): %q", e.Key, e.Line, e.FirstLine, e.Content)
}

func (e *DuplicateError) Unwrap() error { return ErrDuplicate }

// IOError wraps a filesystem or database failure with the operation and path.
type IOError struct {
	Operation string
	Path      string
	Err       error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("failed to %s: %v", e.Operation, e.Err)
	}
	return fmt.Sprintf("failed to %s %s: %v", e.Operation, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// UnsupportedError reports an input variant the tool recognizes but cannot
// read, such as a bzip2 corpus.
type UnsupportedError struct {
	Feature string
	Reason  string
	Err     error
}

func (e *UnsupportedError) Error() string {
	if e.Reason == "" {
		return "unsupported " + e.Feature
	}
	return "unsupported " + e.Feature + ": " + e.Reason
}

func (e *UnsupportedError) Unwrap() error {
	if e.Err == nil {
		return ErrUnsupported
	}
	return e.Err
}

func NewValidation(field, value, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

func NewParse(format string, line int, content, message string) *ParseError {
	return &ParseError{Format: format, Line: line, Content: content, Message: message}
}

func NewIO(operation, path string, err error) *IOError {
	return &IOError{Operation: operation, Path: path, Err: err}
}

func NewUnsupported(feature, reason string) *UnsupportedError {
	return &UnsupportedError{Feature: feature, Reason: reason}
}

// Wrap prefixes err with message. A nil err stays nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf is Wrap with a format string.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports errors.Is(err, target).
func Is(err, target error) bool { return errors.Is(err, target) }

// As reports errors.As(err, target).
func As(err error, target any) bool { return errors.As(err, target) }
