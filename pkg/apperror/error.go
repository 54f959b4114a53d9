package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies an error by who has to act on it.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindConfiguration
	KindProvider
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConfiguration:
		return "configuration"
	case KindProvider:
		return "provider"
	default:
		return "unknown"
	}
}

type AppError struct {
	Code    int    `json:"code"`
	Kind    Kind   `json:"-"`
	Message string `json:"error"`
	Detail  string `json:"message,omitempty"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WithDetail attaches a human-readable hint rendered next to the error.
func (e *AppError) WithDetail(detail string) *AppError {
	e.Detail = detail
	return e
}

// caller builds a 4xx error: the client has to change the request.
func caller(code int, message string) *AppError {
	e := New(code, message, nil)
	e.Kind = KindValidation
	return e
}

func BadRequest(message string) *AppError {
	return caller(http.StatusBadRequest, message)
}

func MethodNotAllowed() *AppError {
	return caller(http.StatusMethodNotAllowed, "Method not allowed")
}

func TooManyRequests(message string) *AppError {
	return caller(http.StatusTooManyRequests, message)
}

// Validation is the caller's fault: missing or malformed input.
func Validation(message string) *AppError {
	return BadRequest(message)
}

// Configuration is the operator's fault: the service is not set up to do the work.
func Configuration(message string, err error) *AppError {
	e := New(http.StatusInternalServerError, message, err)
	e.Kind = KindConfiguration
	return e
}

// Provider wraps a failed call to an upstream delivery service.
func Provider(err error) *AppError {
	e := New(http.StatusServiceUnavailable, "Email service temporarily unavailable", err)
	e.Kind = KindProvider
	return e.WithDetail("Please try again in a few moments or contact us directly")
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, "Failed to process request", err).
		WithDetail("An unexpected error occurred. Please try again or contact us directly.")
}

// From returns err as an *AppError, falling back to Internal.
func From(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}
