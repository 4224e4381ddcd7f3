package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// kindKeys is the lookup order for the drum kind inside "controls".
var kindKeys = []string{"Kind", "kind", "KIND"}

// ModelResponse is the part of a raw model response this service reads.
// Everything else in the blob is ignored.
type ModelResponse struct {
	Controls map[string]json.RawMessage `json:"controls"`
}

// ParseModelResponse decodes a raw response string. Malformed or non-object
// input yields ok=false rather than an error.
func ParseModelResponse(raw string) (*ModelResponse, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, false
	}
	var resp ModelResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil, false
	}
	return &resp, true
}

// Kind returns the drum kind from controls, trying each key variant in turn.
// Null, empty and non-scalar values are skipped.
func (m *ModelResponse) Kind() (string, bool) {
	if m == nil || m.Controls == nil {
		return "", false
	}
	for _, key := range kindKeys {
		raw, ok := m.Controls[key]
		if !ok {
			continue
		}
		if v, ok := scalarString(raw); ok {
			return v, true
		}
	}
	return "", false
}

// KindFromResponse is ParseModelResponse followed by Kind.
func KindFromResponse(raw string) (string, bool) {
	resp, ok := ParseModelResponse(raw)
	if !ok {
		return "", false
	}
	return resp.Kind()
}

func scalarString(raw json.RawMessage) (string, bool) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", false
	}
	var s string
	switch t := v.(type) {
	case string:
		s = t
	case float64, bool:
		s = fmt.Sprint(t)
	default:
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}
