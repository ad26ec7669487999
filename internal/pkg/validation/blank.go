package validation

import (
	"encoding/json"
	"strings"
)

// BlankAsNull rewrites the named members of a JSON object from a blank string
// to null, so an empty numeric form input decodes as "not given" instead of
// failing. Anything that is not a JSON object is returned unchanged.
func BlankAsNull(data []byte, fields ...string) []byte {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		return data
	}
	changed := false
	for _, f := range fields {
		v, ok := raw[f]
		if !ok {
			continue
		}
		var s string
		if json.Unmarshal(v, &s) == nil && strings.TrimSpace(s) == "" {
			raw[f] = json.RawMessage("null")
			changed = true
		}
	}
	if !changed {
		return data
	}
	out, err := json.Marshal(raw)
	if err != nil {
		return data
	}
	return out
}
