// SPDX-License-Identifier: Apache-2.0

// Package errors provides typed error handling for Parley. Callers branch on
// the error code instead of parsing message strings.
package errors

import (
	"fmt"
	"net/http"
)

// ErrorCode classifies Parley errors for HTTP mapping and logging.
type ErrorCode string

const (
	// CodeInternal indicates an internal system error.
	CodeInternal ErrorCode = "INTERNAL_ERROR"

	// CodeInvalidInput indicates the input was invalid.
	CodeInvalidInput ErrorCode = "INVALID_INPUT"

	// CodeNotFound indicates a resource was not found.
	CodeNotFound ErrorCode = "NOT_FOUND"

	// CodeAlreadyExists indicates a resource with the same id already exists.
	CodeAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// CodeModelNotConfigured indicates a model name that no provider serves.
	CodeModelNotConfigured ErrorCode = "MODEL_NOT_CONFIGURED"

	// CodeCredentialsMissing indicates a provider credential was not supplied.
	CodeCredentialsMissing ErrorCode = "CREDENTIALS_MISSING"

	// CodeLLMError indicates an upstream LLM provider failure.
	CodeLLMError ErrorCode = "LLM_ERROR"

	// CodeTTSError indicates a speech synthesis failure.
	CodeTTSError ErrorCode = "TTS_ERROR"

	// CodeStorageError indicates a registry persistence failure.
	CodeStorageError ErrorCode = "STORAGE_ERROR"
)

// Error is a typed error carrying a code, a message and an optional cause.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements errors.Unwrap for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new Error with the given code, message and cause.
func New(code ErrorCode, msg string, cause error) *Error {
	return &Error{Code: code, Message: msg, Err: cause}
}

// Newf creates a new Error without a cause, formatting the message.
func Newf(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// CodeOf returns the code of err, or CodeInternal for untyped errors.
func CodeOf(err error) ErrorCode {
	if e := AsError(err); e != nil {
		return e.Code
	}
	return CodeInternal
}

// AsError attempts to convert err to an *Error. It returns nil for nil and
// wraps unknown errors as CodeInternal.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*Error); ok {
		return e
	}
	return New(CodeInternal, "wrapped error", err)
}

// HTTPStatus maps an error code to an HTTP status code.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeInvalidInput, CodeModelNotConfigured:
		return http.StatusBadRequest
	case CodeAlreadyExists:
		return http.StatusConflict
	case CodeCredentialsMissing:
		return http.StatusUnauthorized
	case CodeLLMError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
