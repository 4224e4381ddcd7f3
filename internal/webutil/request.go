package webutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"drumgen_testbench/internal/model"

	"github.com/google/uuid"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// DecodeJSONBody decodes the request body into dst, rejecting unknown fields
// and trailing data.
func DecodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return model.NewAppError("INVALID_REQUEST_BODY", "Request body is required.", "", model.ErrInvalidInput)
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return model.NewAppError("INVALID_REQUEST_BODY", "Request body is required.", "", model.ErrInvalidInput)
		}
		return model.NewAppError("INVALID_REQUEST_BODY", fmt.Sprintf("Request body is not valid JSON: %v", err), "", model.ErrInvalidInput)
	}
	if decoder.More() {
		return model.NewAppError("INVALID_REQUEST_BODY", "Request body must contain a single JSON object.", "", model.ErrInvalidInput)
	}
	return nil
}

func invalidQuery(key, expected string) error {
	return model.NewAppError("INVALID_QUERY_PARAM", fmt.Sprintf("%s must be %s.", key, expected), key, model.ErrInvalidInput)
}

// QueryString returns the trimmed query value, or "" when absent.
func QueryString(r *http.Request, key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}

// QueryInt parses an optional integer query parameter. A nil result means the
// parameter was absent.
func QueryInt(r *http.Request, key string) (*int, error) {
	raw := QueryString(r, key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, invalidQuery(key, "an integer")
	}
	return &v, nil
}

// QueryIntInRange is QueryInt with inclusive bounds.
func QueryIntInRange(r *http.Request, key string, min, max int) (*int, error) {
	v, err := QueryInt(r, key)
	if err != nil || v == nil {
		return v, err
	}
	if *v < min || *v > max {
		return nil, invalidQuery(key, fmt.Sprintf("between %d and %d", min, max))
	}
	return v, nil
}

func QueryBool(r *http.Request, key string) (*bool, error) {
	raw := QueryString(r, key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, invalidQuery(key, "true or false")
	}
	return &v, nil
}

func QueryUUID(r *http.Request, key string) (*uuid.UUID, error) {
	raw := QueryString(r, key)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, invalidQuery(key, "a valid UUID")
	}
	return &id, nil
}
