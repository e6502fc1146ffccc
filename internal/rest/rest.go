package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/klokku/clarity/internal/apperr"
	log "github.com/sirupsen/logrus"
)

type ErrorResponse struct {
	Error   string            `json:"error"`
	Details string            `json:"details,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// ParseId converts an identifier received from outside (path, query, form) into the canonical
// numeric id. Anything that is not a positive integer is a validation error.
func ParseId(field, raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, apperr.Invalid(field, "must be a number")
	}
	if id <= 0 {
		return 0, apperr.Invalid(field, "must be positive")
	}
	return id, nil
}

// Id is an identifier decoded from JSON. Form inputs send ids both as numbers and as strings;
// the raw value is kept and checked by Parse under the caller's field name.
type Id struct {
	raw string
	set bool
}

func NewId(id int) Id {
	return Id{raw: strconv.Itoa(id), set: true}
}

func (id *Id) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	id.raw = strings.Trim(string(data), `"`)
	id.set = true
	return nil
}

// IsSet reports whether the field was present and not null.
func (id Id) IsSet() bool {
	return id.set
}

// Parse returns 0 for an absent id and goes through ParseId otherwise.
func (id Id) Parse(field string) (int, error) {
	if !id.set {
		return 0, nil
	}
	return ParseId(field, id.raw)
}

// StatusFor maps the application error taxonomy to an HTTP status code.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// WriteError encodes err as an ErrorResponse with the status derived from StatusFor.
func WriteError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		log.Errorf("request failed: %v", err)
	} else {
		log.Debugf("request rejected: %v", err)
	}

	response := ErrorResponse{Error: http.StatusText(status), Details: err.Error()}
	var verr *apperr.ValidationError
	if errors.As(err, &verr) {
		response.Fields = verr.Fields
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encodeErr := json.NewEncoder(w).Encode(response); encodeErr != nil {
		log.Errorf("failed to encode error response: %v", encodeErr)
	}
}

// WriteJSON writes body with the given status as JSON.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Errorf("failed to encode response: %v", err)
	}
}
