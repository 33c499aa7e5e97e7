// Package errors provides custom error types for the ratesync system.
// These errors enable programmatic error checking at the CLI boundary,
// where the error class determines the process exit code.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is and As are aliases for the standard library equivalents so
// callers of this package don't need a second errors import.
var (
	Is = errors.Is
	As = errors.As
)

// Common sentinel errors for the ratesync system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrTimeout indicates that an operation timed out
	ErrTimeout = errors.New("operation timed out")

	// ErrCanceled indicates that an operation was canceled
	ErrCanceled = errors.New("operation canceled")

	// ErrFetchFailed indicates an upstream content fetch failed
	ErrFetchFailed = errors.New("fetch failed")

	// ErrValidationFailed indicates the merged rates failed the sanity gate
	ErrValidationFailed = errors.New("validation failed")
)

// FetchError represents a failed retrieval of an upstream content document.
// Fetch failures are fatal to a sync run and map to exit code 2.
type FetchError struct {
	Path       string // Content path being fetched (e.g. "attendance-allowance")
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface
func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch error for %s (status %d): %s", e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.Path, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *FetchError) Is(target error) bool {
	return target == ErrFetchFailed
}

// NewFetchError creates a new FetchError
func NewFetchError(path string, statusCode int, message string, err error) *FetchError {
	return &FetchError{
		Path:       path,
		StatusCode: statusCode,
		Message:    message,
		Err:        err,
	}
}

// ParseError represents an error when decoding upstream data
type ParseError struct {
	Format  string // "json", "html"
	Source  string // Content path or file name
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("parse error in %s data from %s: %s", e.Format, e.Source, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ParseError) Is(target error) bool {
	return target == ErrFetchFailed
}

// NewParseError creates a new ParseError
func NewParseError(format, source, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		Source:  source,
		Message: message,
		Err:     err,
	}
}

// ValidationFailedError carries the accumulated findings of a failed
// validation run. It blocks persistence but is not a crash; the CLI
// maps it to exit code 1.
type ValidationFailedError struct {
	Errors   []string
	Warnings []string
}

// Error implements the error interface
func (e *ValidationFailedError) Error() string {
	return fmt.Sprintf("rate validation failed with %d error(s)", len(e.Errors))
}

// Is implements errors.Is support
func (e *ValidationFailedError) Is(target error) bool {
	return target == ErrValidationFailed
}

// NewValidationFailedError creates a new ValidationFailedError
func NewValidationFailedError(errs, warnings []string) *ValidationFailedError {
	return &ValidationFailedError{Errors: errs, Warnings: warnings}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// IOError represents an error during I/O operations on the rate store
type IOError struct {
	Operation string // "read", "write", "create", "rename"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// TimeoutError represents an operation timeout
type TimeoutError struct {
	Operation string
	Duration  string
	Message   string
}

// Error implements the error interface
func (e *TimeoutError) Error() string {
	if e.Duration != "" {
		return fmt.Sprintf("operation %s timed out after %s: %s", e.Operation, e.Duration, e.Message)
	}
	return fmt.Sprintf("operation %s timed out: %s", e.Operation, e.Message)
}

// Is implements errors.Is support
func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout
}

// Helper functions for error checking

// IsFetchError checks if an error came from an upstream fetch
func IsFetchError(err error) bool {
	return errors.Is(err, ErrFetchFailed)
}

// IsValidationFailed checks if an error is a failed validation gate
func IsValidationFailed(err error) bool {
	return errors.Is(err, ErrValidationFailed)
}

// IsTimeout checks if an error is a timeout error
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// IsCanceled checks if an error is a cancellation error
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, source string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, source, err.Error(), err)
}

// WrapFetch wraps an error as a FetchError
func WrapFetch(path string, err error) error {
	if err == nil {
		return nil
	}
	return &FetchError{Path: path, Message: err.Error(), Err: err}
}
