package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Common error sentinel values
var (
	ErrBadRequest   = errors.New("malformed request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInternal     = errors.New("internal server error")
	ErrConflict     = errors.New("resource conflict")
	ErrValidation   = errors.New("validation failed")
	ErrCORSBlocked  = errors.New("request blocked by CORS policy")
)

// Authentication & Authorization Errors
var (
	ErrMissingToken = errors.New("missing access token")
	ErrExpiredToken = errors.New("expired access token")
	ErrInvalidToken = errors.New("invalid access token")
)

// ApiErr is an error that knows which HTTP status it maps to. Message is
// safe to return to clients; Cause is only ever logged.
type ApiErr struct {
	StatusCode int
	message    string
	kind       error
	Details    []string // Per-field messages, for validation errors
	Cause      error    // The underlying cause of the error
}

func newApiErr(statusCode int, kind error, message string) *ApiErr {
	return &ApiErr{StatusCode: statusCode, kind: kind, message: message}
}

func NewApiErr(statusCode int, message string) *ApiErr {
	return newApiErr(statusCode, nil, message)
}

// implements error interface. this allows us to pass an instance of ApiErr as an argument of type `error`
func (e *ApiErr) Error() string {
	return e.message
}

// GetFullError returns a recursive error message including all causes
func (e *ApiErr) GetFullError() string {
	msg := e.Error()
	if e.Cause != nil {
		var apiErr *ApiErr
		if errors.As(e.Cause, &apiErr) {
			msg = fmt.Sprintf("%s -> %s", msg, apiErr.GetFullError())
		} else {
			msg = fmt.Sprintf("%s -> %s", msg, e.Cause.Error())
		}
	}
	return msg
}

// Unwrap exposes both the sentinel kind and the cause, so that
// errors.Is(err, ErrNotFound) and errors.Is(err, someDriverErr) both work.
func (e *ApiErr) Unwrap() []error {
	var wrapped []error
	if e.kind != nil {
		wrapped = append(wrapped, e.kind)
	}
	if e.Cause != nil {
		wrapped = append(wrapped, e.Cause)
	}
	return wrapped
}

// WithCause attaches the underlying error and returns e.
func (e *ApiErr) WithCause(cause error) *ApiErr {
	e.Cause = cause
	return e
}

// Common error constructors with appropriate HTTP status codes
func NewNotFoundError(message string) *ApiErr {
	return newApiErr(http.StatusNotFound, ErrNotFound, message)
}

func NewBadRequestError(message string) *ApiErr {
	return newApiErr(http.StatusBadRequest, ErrBadRequest, message)
}

func NewUnauthorizedError(message string) *ApiErr {
	return newApiErr(http.StatusUnauthorized, ErrUnauthorized, message)
}

func NewInternalError(message string) *ApiErr {
	return newApiErr(http.StatusInternalServerError, ErrInternal, message)
}

func NewConflictError(message string) *ApiErr {
	return newApiErr(http.StatusConflict, ErrConflict, message)
}

// NewValidationError reports schema violations, one detail per field.
func NewValidationError(message string, details []string) *ApiErr {
	e := newApiErr(http.StatusBadRequest, ErrValidation, message)
	e.Details = details
	return e
}

func NewInternalErrorWithCause(message string, cause error) *ApiErr {
	return NewInternalError(message).WithCause(cause)
}

func NewCORSError(origin string) *ApiErr {
	return newApiErr(http.StatusForbidden, ErrCORSBlocked, fmt.Sprintf("Origin '%s' is not allowed by CORS policy", origin))
}

// Authentication & Authorization Error Constructors
func NewMissingTokenError() *ApiErr {
	return newApiErr(http.StatusUnauthorized, ErrMissingToken, "Missing access token")
}

func NewExpiredTokenError() *ApiErr {
	return newApiErr(http.StatusUnauthorized, ErrExpiredToken, "Access token has expired")
}

func NewInvalidTokenError() *ApiErr {
	return newApiErr(http.StatusUnauthorized, ErrInvalidToken, "Invalid access token")
}
