// Package errors tags failures with the compiler stage that produced them
// and renders source diagnostics.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind identifies the stage an error came from
type Kind string

const (
	// Input/output
	ErrInput Kind = "INPUT_ERROR"
	ErrIO    Kind = "IO_ERROR"

	// Pipeline stages
	ErrLexical Kind = "LEXICAL_ERROR"
	ErrParse   Kind = "PARSE_ERROR"
	ErrCodegen Kind = "CODEGEN_ERROR"
)

// ShardError represents a structured error with a stage kind and context
type ShardError struct {
	Kind    Kind
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *ShardError) Error() string {
	if e.Cause != nil {
		if e.Message == "" {
			return e.Cause.Error()
		}
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap allows error unwrapping
func (e *ShardError) Unwrap() error {
	return e.Cause
}

// New creates a ShardError without a cause
func New(kind Kind, message string) *ShardError {
	return &ShardError{
		Kind:    kind,
		Message: message,
		Context: make(map[string]interface{}),
	}
}

// Wrap creates a ShardError wrapping an existing error
func Wrap(kind Kind, message string, cause error) *ShardError {
	return &ShardError{
		Kind:    kind,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// WithContext adds context information to the error
func (e *ShardError) WithContext(key string, value interface{}) *ShardError {
	e.Context[key] = value
	return e
}

// GetContext returns context value by key
func (e *ShardError) GetContext(key string) (interface{}, bool) {
	value, exists := e.Context[key]
	return value, exists
}

// KindOf returns the kind of the outermost ShardError in err's chain,
// or "" when there is none.
func KindOf(err error) Kind {
	var se *ShardError
	if stderrors.As(err, &se) {
		return se.Kind
	}
	return ""
}

// IsKind reports whether err carries the given stage kind
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// Diagnostic is implemented by stage errors that can point at source text
type Diagnostic interface {
	error
	Message() string
	Source() string
	Span() (start, end int)
}

// AsDiagnostic finds a Diagnostic in err's chain that has source attached
func AsDiagnostic(err error) (Diagnostic, bool) {
	var d Diagnostic
	if stderrors.As(err, &d) && d.Source() != "" {
		return d, true
	}
	return nil, false
}

// Is and As re-export the standard helpers so callers need one import
func Is(err, target error) bool { return stderrors.Is(err, target) }

func As(err error, target interface{}) bool { return stderrors.As(err, target) }
