package config

import (
	"errors"
	"fmt"
)

// ErrorClass classifies a fatal configuration failure. Resolution is
// all-or-nothing: none of these are recovered locally and none are retried,
// since the inputs are local and deterministic a retry reproduces the failure.
type ErrorClass string

const (
	// ErrorClassSchema marks a malformed document or unknown key.
	ErrorClassSchema ErrorClass = "schema"

	// ErrorClassReference marks a name that does not resolve to a
	// declared target.
	ErrorClassReference ErrorClass = "reference"

	// ErrorClassVersion marks a project requiring a newer tool version.
	ErrorClassVersion ErrorClass = "version"

	// ErrorClassProject marks a structurally unusable project, such as
	// one with zero targets.
	ErrorClassProject ErrorClass = "project"
)

// ConfigError is a classified fatal error.
// nolint:revive // ConfigError is intentionally named to distinguish from standard errors
type ConfigError struct {
	// Class is the error classification.
	Class ErrorClass

	// Message is the human-readable error message.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s", e.Class, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Class, e.Message)
}

// Unwrap returns the underlying error for error chain inspection.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Is implements error equality for errors.Is.
func (e *ConfigError) Is(target error) bool {
	t, ok := target.(*ConfigError)
	if !ok {
		return false
	}
	return e.Class == t.Class
}

// NewSchemaError creates a schema-class error.
func NewSchemaError(message string, err error) *ConfigError {
	return &ConfigError{Class: ErrorClassSchema, Message: message, Err: err}
}

// NewReferenceError creates a reference-class error.
func NewReferenceError(message string, err error) *ConfigError {
	return &ConfigError{Class: ErrorClassReference, Message: message, Err: err}
}

// NewVersionError creates a version-gate error.
func NewVersionError(message string, err error) *ConfigError {
	return &ConfigError{Class: ErrorClassVersion, Message: message, Err: err}
}

// NewProjectError creates a project-class error.
func NewProjectError(message string, err error) *ConfigError {
	return &ConfigError{Class: ErrorClassProject, Message: message, Err: err}
}

func hasClass(err error, class ErrorClass) bool {
	var e *ConfigError
	if errors.As(err, &e) {
		return e.Class == class
	}
	return false
}

// IsSchema reports whether the error is schema-class.
func IsSchema(err error) bool { return hasClass(err, ErrorClassSchema) }

// IsReference reports whether the error is reference-class.
func IsReference(err error) bool { return hasClass(err, ErrorClassReference) }

// IsVersion reports whether the error is version-class.
func IsVersion(err error) bool { return hasClass(err, ErrorClassVersion) }

// IsProject reports whether the error is project-class.
func IsProject(err error) bool { return hasClass(err, ErrorClassProject) }
