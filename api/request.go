package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
)

const maxBodySize = 1 << 20

// decodeJSON reads a single JSON value from the request body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return errs.NewMaxBodySizeExceededError(maxErr.Limit)
		}
		return errs.NewInvalidJSONError(err)
	}
	return nil
}

// pathID parses the {id} URL parameter.
func pathID(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "id")
	if raw == "" {
		return uuid.Nil, errs.NewMissingRequiredFieldError("id")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errs.NewInvalidFieldError("id", "must be a UUID")
	}
	return id, nil
}

// queryInt reads a positive integer query parameter, falling back to
// defaultValue when it is absent or unusable.
func queryInt(r *http.Request, key string, defaultValue int) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || n < 1 {
		return defaultValue
	}
	return n
}

// queryPage reads the page and limit query parameters.
func queryPage(r *http.Request, defaultLimit int) models.Page {
	return models.NewPage(queryInt(r, "page", 1), queryInt(r, "limit", defaultLimit), defaultLimit)
}

// validationError turns a model validation failure into a 400 carrying one
// detail per violation. Other errors pass through.
func validationError(message string, err error) error {
	var ve *models.ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	if message == "" {
		message = ve.Error()
	}
	return errs.NewValidationError(message, ve.Messages)
}
