package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Request & Input-Validation Errors
var (
	ErrMissingRequiredField = errors.New("missing required field")
	ErrInvalidField         = errors.New("invalid field")
	ErrMaxBodySizeExceeded  = errors.New("max body size exceeded")
	ErrInvalidJSON          = errors.New("invalid JSON")
)

func NewMissingRequiredFieldError(fieldName string) *ApiErr {
	e := newApiErr(http.StatusBadRequest, ErrMissingRequiredField, fmt.Sprintf("Missing required field: %s", fieldName))
	e.Details = []string{fieldName}
	return e
}

func NewInvalidFieldError(fieldName string, reason string) *ApiErr {
	return newApiErr(http.StatusBadRequest, ErrInvalidField, fmt.Sprintf("Invalid field %s: %s", fieldName, reason))
}

func NewMaxBodySizeExceededError(maxSize int64) *ApiErr {
	return newApiErr(http.StatusRequestEntityTooLarge, ErrMaxBodySizeExceeded,
		fmt.Sprintf("Request body size exceeded maximum allowed size of %d bytes", maxSize))
}

func NewInvalidJSONError(cause error) *ApiErr {
	return newApiErr(http.StatusBadRequest, ErrInvalidJSON, "Invalid JSON body").WithCause(cause)
}
