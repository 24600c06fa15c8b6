// Package errors provides the error taxonomy shared by the corpus store,
// the query resolver, and the transport layer.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for the four query outcome classes.
var (
	// ErrFormat indicates a caller-supplied address did not parse into the
	// expected shape.
	ErrFormat = errors.New("invalid format")
	// ErrOutOfRange indicates a numeric address parsed but falls outside the
	// domain's valid bound.
	ErrOutOfRange = errors.New("out of range")
	// ErrNotFound indicates a syntactically and range-valid address has no
	// corresponding entity in the loaded corpus.
	ErrNotFound = errors.New("not found")
	// ErrCorpus indicates the corpus could not be loaded at startup.
	ErrCorpus = errors.New("corpus load failed")
)

// FormatError represents an address that does not parse into the expected
// shape (e.g. a combined identifier missing its separator).
type FormatError struct {
	Field   string // Parameter that failed to parse (e.g., "surah", "ayah ref")
	Input   string // Raw caller-supplied value
	Message string // Human-readable detail
}

func (e *FormatError) Error() string {
	if e.Input != "" {
		return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Input, e.Message)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *FormatError) Unwrap() error {
	return ErrFormat
}

// RangeError represents a numeric address outside its valid bound. It carries
// the offending value and the bound for diagnostics.
type RangeError struct {
	Field string // Parameter name (e.g., "surah", "juz", "page")
	Value int    // Offending value
	Min   int    // Lower bound, inclusive
	Max   int    // Upper bound, inclusive
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s %d out of range [%d,%d]", e.Field, e.Value, e.Min, e.Max)
}

func (e *RangeError) Unwrap() error {
	return ErrOutOfRange
}

// NotFoundError represents a range-valid address with no entity in the loaded
// corpus (a data gap or a chapter absent from the loaded set).
type NotFoundError struct {
	Resource string // Type of resource (e.g., "surah", "ayah")
	Key      string // Address that resolved to nothing
}

func (e *NotFoundError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s not found: %s", e.Resource, e.Key)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// CorpusError represents a fatal startup failure: the source document is
// absent, malformed, or violates a corpus invariant. It is never returned
// from a per-request operation.
type CorpusError struct {
	Path string // Source document path, if known
	Err  error  // Underlying cause
}

func (e *CorpusError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("loading corpus from %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("loading corpus: %v", e.Err)
}

func (e *CorpusError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrCorpus, e.Err}
	}
	return []error{ErrCorpus}
}

// Helper constructors.

// NewFormat creates a FormatError.
func NewFormat(field, input, message string) *FormatError {
	return &FormatError{Field: field, Input: input, Message: message}
}

// NewRange creates a RangeError.
func NewRange(field string, value, min, max int) *RangeError {
	return &RangeError{Field: field, Value: value, Min: min, Max: max}
}

// NewNotFound creates a NotFoundError.
func NewNotFound(resource, key string) *NotFoundError {
	return &NotFoundError{Resource: resource, Key: key}
}

// NewCorpus creates a CorpusError.
func NewCorpus(path string, err error) *CorpusError {
	return &CorpusError{Path: path, Err: err}
}

// Wrap adds context to an error. If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is wraps errors.Is for convenience.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
