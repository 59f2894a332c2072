package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrDatabaseQuery      = errors.New("database query failed")
	ErrDatabaseConnection = errors.New("database connection failed")
)

func newAlreadyExists(entity string) *ApiErr {
	return newApiErr(http.StatusConflict, ErrAlreadyExists, fmt.Sprintf("%s already exists", entity))
}

func newNotFound(entity string) *ApiErr {
	return newApiErr(http.StatusNotFound, ErrNotFound, fmt.Sprintf("%s not found", entity))
}

// IsDuplicateKey reports whether err is a unique index violation, either
// translated by gorm or raw from the driver.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "duplicate key")
}

// NewDatabaseError creates a new database error with details about the
// operation. Anything that isn't a recognised conflict or missing record
// becomes a 500 whose cause is kept for logging only.
func NewDatabaseError(operation, entity string, cause error) *ApiErr {
	var apiErr *ApiErr
	if errors.As(cause, &apiErr) {
		return apiErr
	}

	switch {
	case IsDuplicateKey(cause):
		return newAlreadyExists(entity).WithCause(cause)
	case errors.Is(cause, gorm.ErrRecordNotFound):
		return newNotFound(entity).WithCause(cause)
	case cause != nil && strings.Contains(cause.Error(), "connection"):
		e := newApiErr(http.StatusInternalServerError, ErrDatabaseConnection, fmt.Sprintf("failed to %s %s", operation, entity))
		return e.WithCause(cause)
	}

	e := newApiErr(http.StatusInternalServerError, ErrDatabaseQuery, fmt.Sprintf("failed to %s %s", operation, entity))
	return e.WithCause(cause)
}
