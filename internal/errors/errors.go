// Package errors provides a lightweight structured error type (ToneError)
// for category-based classification in the compiler core and CLI.
package errors

import (
	"fmt"
)

// ErrorCategory represents the category of a tonegen error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"

	// Build and processing errors
	CategoryDiscovery  ErrorCategory = "discovery"
	CategoryCompile    ErrorCategory = "compile"
	CategoryFileSystem ErrorCategory = "filesystem"

	// Runtime and infrastructure errors
	CategoryWatch    ErrorCategory = "watch"
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
)

// ToneError is a structured error with category, severity, and context
type ToneError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for ToneError
type ContextFields map[string]any

// Error implements the error interface
func (e *ToneError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *ToneError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *ToneError) WithContext(key string, value any) *ToneError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new ToneError
func New(category ErrorCategory, severity ErrorSeverity, message string) *ToneError {
	return &ToneError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new ToneError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *ToneError {
	return &ToneError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if te, ok := err.(*ToneError); ok {
		return te.Category == category
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal if not a ToneError
func GetCategory(err error) ErrorCategory {
	if te, ok := err.(*ToneError); ok {
		return te.Category
	}
	return CategoryInternal
}

// ValidationError creates a new validation error (caller misuse)
func ValidationError(message string) *ToneError {
	return &ToneError{
		Category: CategoryValidation,
		Severity: SeverityWarning,
		Message:  message,
	}
}

// DiscoveryError wraps a tree-walk failure; the file set cannot be trusted
// so the triggering operation must abort.
func DiscoveryError(err error, message string) *ToneError {
	return &ToneError{
		Category: CategoryDiscovery,
		Severity: SeverityFatal,
		Message:  message,
		Cause:    err,
	}
}

// WatchError creates a new watch lifecycle error
func WatchError(message string) *ToneError {
	return &ToneError{
		Category: CategoryWatch,
		Severity: SeverityError,
		Message:  message,
	}
}

// WrapError wraps an existing error with a new ToneError
func WrapError(err error, category ErrorCategory, message string) *ToneError {
	return &ToneError{
		Category: category,
		Severity: SeverityError,
		Message:  message,
		Cause:    err,
	}
}
