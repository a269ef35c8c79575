package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes shared by every layer of the client
const (
	CodeValidation     = "VALIDATION_ERROR"
	CodeInvalidInput   = "INVALID_INPUT"
	CodeConflict       = "CONFLICT"
	CodeServer         = "SERVER_ERROR"
	CodeConnection     = "CONNECTION_ERROR"
	CodeParse          = "PARSE_ERROR"
	CodeAuthentication = "AUTHENTICATION_ERROR"
	CodeNotFound       = "NOT_FOUND"
	CodeInternal       = "INTERNAL_ERROR"
)

// Sentinels for errors.Is checks. They carry no message, so they match any
// error of their kind.
var (
	ErrValidation     = AppError{Code: CodeValidation}
	ErrConflict       = AppError{Code: CodeConflict}
	ErrServer         = AppError{Code: CodeServer}
	ErrConnection     = AppError{Code: CodeConnection}
	ErrParse          = AppError{Code: CodeParse}
	ErrAuthentication = AppError{Code: CodeAuthentication}
	ErrNotFound       = AppError{Code: CodeNotFound}
)

// AppError is a custom error type for application errors
type AppError struct {
	Code       string
	Message    string
	StatusCode int // HTTP status that produced the error, 0 for local errors
	Err        error
	Details    map[string]interface{}
}

// Error returns a string representation of the error
func (e AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is implements the errors.Is interface. A target with a message only
// matches errors carrying the same message.
func (e AppError) Is(target error) bool {
	t, ok := target.(AppError)
	if !ok || t.Code != e.Code {
		return false
	}
	return t.Message == "" || t.Message == e.Message
}

// Unwrap returns the underlying error
func (e AppError) Unwrap() error {
	return e.Err
}

// WithDetails adds details to the error
func (e AppError) WithDetails(details map[string]interface{}) AppError {
	e.Details = details
	return e
}

// WithDetail adds a single detail to the error
func (e AppError) WithDetail(key string, value interface{}) AppError {
	details := make(map[string]interface{}, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	e.Details = details
	return e
}

// WithStatus records the HTTP status code the error was mapped from
func (e AppError) WithStatus(status int) AppError {
	e.StatusCode = status
	return e
}

// CodeOf returns the code of the first AppError in err's chain.
func CodeOf(err error) string {
	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// MessageOf returns the user-facing message of the first AppError in err's chain,
// or err.Error() when there is none.
func MessageOf(err error) string {
	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

// NewValidationError creates a new validation error
func NewValidationError(message string) AppError {
	return AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

// NewInvalidInputError creates a new invalid input error
func NewInvalidInputError(message string, err error) AppError {
	return AppError{
		Code:    CodeInvalidInput,
		Message: message,
		Err:     err,
	}
}

// NewConflictError creates a new conflict error
func NewConflictError(message string) AppError {
	return AppError{
		Code:       CodeConflict,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

// NewServerError creates an error for a 5xx-equivalent backend failure
func NewServerError(message string, err error) AppError {
	return AppError{
		Code:       CodeServer,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Err:        err,
	}
}

// NewConnectionError creates an error for a transport failure
func NewConnectionError(message string, err error) AppError {
	return AppError{
		Code:    CodeConnection,
		Message: message,
		Err:     err,
	}
}

// NewParseError creates an error for a numeric conversion failure
func NewParseError(message string, err error) AppError {
	return AppError{
		Code:    CodeParse,
		Message: message,
		Err:     err,
	}
}

// NewAuthenticationError creates a new authentication error
func NewAuthenticationError(message string) AppError {
	return AppError{
		Code:       CodeAuthentication,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) AppError {
	return AppError{
		Code:       CodeNotFound,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) AppError {
	return AppError{
		Code:    CodeInternal,
		Message: message,
		Err:     err,
	}
}
