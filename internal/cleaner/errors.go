package cleaner

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType defines the category of an error
type ErrorType string

// Error types
const (
	QueryError     ErrorType = "query"
	FilterError    ErrorType = "filter"
	NormalizeError ErrorType = "normalize"
)

// Common errors that can be used throughout the package
var (
	ErrNoDocument = errors.New("no document to clean")
	ErrPanic      = errors.New("tree mutation panicked")
)

// WrapError wraps an error with context information
func WrapError(err error, errorType ErrorType, funcName, message string) error {
	if err == nil {
		return nil
	}

	if message == "" {
		return fmt.Errorf("[%s:%s] %w", errorType, funcName, err)
	}

	return fmt.Errorf("[%s:%s] %s: %w", errorType, funcName, message, err)
}

// WrapQueryError wraps a failed selector or path query
func WrapQueryError(err error, funcName, message string) error {
	return WrapError(err, QueryError, funcName, message)
}

// WrapFilterError wraps a failure in one of the removal steps
func WrapFilterError(err error, funcName, message string) error {
	return WrapError(err, FilterError, funcName, message)
}

// WrapNormalizeError wraps a failure while normalizing one container
func WrapNormalizeError(err error, funcName, message string) error {
	return WrapError(err, NormalizeError, funcName, message)
}

// IsErrorType checks if an error is of a specific type
func IsErrorType(err error, errorType ErrorType) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), fmt.Sprintf("[%s:", errorType))
}

// IsQueryError returns true if the error is a query error
func IsQueryError(err error) bool {
	return IsErrorType(err, QueryError)
}

// IsFilterError returns true if the error is a filter error
func IsFilterError(err error) bool {
	return IsErrorType(err, FilterError)
}

// IsNormalizeError returns true if the error is a normalize error
func IsNormalizeError(err error) bool {
	return IsErrorType(err, NormalizeError)
}

// recoverAsError turns a panic raised by the tree library into an error so a
// single bad node cannot take the whole document down.
func recoverAsError(errp *error) {
	if r := recover(); r != nil {
		*errp = fmt.Errorf("%w: %v", ErrPanic, r)
	}
}
