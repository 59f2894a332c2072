package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Configuration & outbound service errors
var (
	ErrEnvironmentVariable = errors.New("environment variable error")
	ErrServiceUnavailable  = errors.New("service unavailable")
)

func NewEnvironmentVariableError(varName string) *ApiErr {
	return newApiErr(http.StatusInternalServerError, ErrEnvironmentVariable,
		fmt.Sprintf("Environment variable %s is not set or invalid", varName))
}

// NewServiceUnavailableError reports that an outbound service (mail relay,
// SMS gateway) could not be reached or is not configured.
func NewServiceUnavailableError(service string, cause error) *ApiErr {
	e := newApiErr(http.StatusServiceUnavailable, ErrServiceUnavailable, fmt.Sprintf("%s is unavailable", service))
	return e.WithCause(cause)
}

func IsEnvironmentVariableError(err error) bool {
	return errors.Is(err, ErrEnvironmentVariable)
}

func IsServiceUnavailableError(err error) bool {
	return errors.Is(err, ErrServiceUnavailable)
}
