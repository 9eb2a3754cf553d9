package core

import "github.com/pkg/errors"

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// NotFoundError is returned whenever a referenced record does not resolve.
type NotFoundError struct {
	message string
}

func NewNotFoundError(msg string) error {
	return &NotFoundError{message: msg}
}

func (err NotFoundError) Error() string {
	return err.message
}

// BusinessRuleError indicates a request that is well-formed but violates a
// domain rule (course full, already enrolled, self-prerequisite, ...).
type BusinessRuleError struct {
	message string
}

func NewBusinessRuleError(msg string) error {
	return &BusinessRuleError{message: msg}
}

func (err BusinessRuleError) Error() string {
	return err.message
}

// CredentialsError is returned on login failures. Missing account and wrong
// password yield the same message on purpose.
type CredentialsError struct {
	message string
}

func NewCredentialsError(msg string) error {
	return &CredentialsError{message: msg}
}

func (err CredentialsError) Error() string {
	return err.message
}

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
