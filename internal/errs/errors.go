package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Stable error codes returned to calling layers. HTTP handlers map them
// to status codes; clients switch on the code, never on message text.
const (
	CodeAuthenticationRequired = "AUTHENTICATION_REQUIRED"
	CodeAuthorizationDenied    = "AUTHORIZATION_DENIED"
	CodeValidation             = "VALIDATION_ERROR"
	CodeNotFound               = "NOT_FOUND"
	CodeIllegalState           = "ILLEGAL_STATE_TRANSITION"
	CodeInsufficientStock      = "INSUFFICIENT_STOCK"
	CodeConflict               = "CONFLICT"
	CodeInternal               = "INTERNAL_ERROR"
)

// AppError is a typed failure with a stable code. Business operations
// return it with no partial side effects left behind.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) Wrap(err error) *AppError {
	e.Err = err
	return e
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus}
}

func AuthenticationRequired(message string) *AppError {
	return New(CodeAuthenticationRequired, message, http.StatusUnauthorized)
}

func AuthorizationDenied(message string) *AppError {
	return New(CodeAuthorizationDenied, message, http.StatusForbidden)
}

func Validation(message string) *AppError {
	return New(CodeValidation, message, http.StatusBadRequest)
}

func NotFound(message string) *AppError {
	return New(CodeNotFound, message, http.StatusNotFound)
}

func IllegalState(message string) *AppError {
	return New(CodeIllegalState, message, http.StatusConflict)
}

func InsufficientStock(message string) *AppError {
	return New(CodeInsufficientStock, message, http.StatusBadRequest)
}

func Conflict(message string) *AppError {
	return New(CodeConflict, message, http.StatusConflict)
}

func Internal(message string, err error) *AppError {
	return New(CodeInternal, message, http.StatusInternalServerError).Wrap(err)
}

// Code extracts the stable code from any error, defaulting to
// INTERNAL_ERROR for untyped failures.
func Code(err error) string {
	var app *AppError
	if errors.As(err, &app) {
		return app.Code
	}
	return CodeInternal
}

// Status extracts the HTTP status for an error.
func Status(err error) int {
	var app *AppError
	if errors.As(err, &app) {
		return app.HTTPStatus
	}
	return http.StatusInternalServerError
}

// Is reports whether err carries the given code.
func Is(err error, code string) bool {
	return Code(err) == code
}
