package model

import (
	"encoding/json"
	"strings"
)

// RawRecord is a single record from an upstream response: upstream field name
// to value, with scalar values coerced to strings. Records only live between
// the envelope parser and the row normalizers; typed rows cross into the rest
// of the system.
type RawRecord map[string]string

// UnmarshalJSON accepts a flat JSON object and coerces every scalar value
// (string, number, bool, null) to its string form. Null becomes the empty
// string; non-scalar values keep their raw JSON text so decoding never fails
// on an unexpected shape.
func (r *RawRecord) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	out := make(RawRecord, len(fields))
	for k, v := range fields {
		out[k] = scalarString(v)
	}
	*r = out
	return nil
}

func scalarString(raw json.RawMessage) string {
	t := strings.TrimSpace(string(raw))
	if t == "null" {
		return ""
	}
	if len(t) >= 2 && t[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	return t
}

// Get returns the trimmed value for key, "" when absent.
func (r RawRecord) Get(key string) string {
	return strings.TrimSpace(r[key])
}
