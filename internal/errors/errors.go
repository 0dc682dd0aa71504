package errors

import (
	"fmt"
)

// DashError is the structured error type for thesisdash.
// It provides rich context for error handling, logging, and user presentation.
type DashError struct {
	// Code is the unique error code (e.g., "ERR_204_PARSE_FAILED").
	Code string

	// Message is the human-readable error message.
	Message string

	// Category is the error category (Config, IO, Validation, Internal).
	Category Category

	// Severity is the error severity level.
	Severity Severity

	// Details contains additional context as key-value pairs.
	Details map[string]string

	// Cause is the underlying error that caused this error.
	Cause error

	// Suggestion is an actionable suggestion for the user.
	Suggestion string
}

// Error implements the error interface.
func (e *DashError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *DashError) Unwrap() error {
	return e.Cause
}

// Is matches by code so errors.Is works against sentinel-style values.
func (e *DashError) Is(target error) bool {
	if t, ok := target.(*DashError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithDetail adds a key-value detail to the error.
func (e *DashError) WithDetail(key, value string) *DashError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithSuggestion adds an actionable suggestion for the user.
func (e *DashError) WithSuggestion(suggestion string) *DashError {
	e.Suggestion = suggestion
	return e
}

// New creates a new DashError with the given code and message.
// Category and severity are derived from the code.
func New(code string, message string, cause error) *DashError {
	return &DashError{
		Code:     code,
		Message:  message,
		Category: categoryFromCode(code),
		Severity: severityFromCode(code),
		Cause:    cause,
	}
}

// Wrap creates a DashError from an existing error.
// The error's message becomes the DashError message.
func Wrap(code string, err error) *DashError {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// IsFatal checks if an error has fatal severity.
func IsFatal(err error) bool {
	var de *DashError
	if !As(err, &de) {
		return false
	}
	return de.Severity == SeverityFatal
}

// GetCode extracts the error code from the first DashError in the chain.
// Returns empty string if there is none.
func GetCode(err error) string {
	var de *DashError
	if !As(err, &de) {
		return ""
	}
	return de.Code
}
