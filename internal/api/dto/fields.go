package dto

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// IntField accepts a JSON number or a numeric string. The legacy frontend
// posts form values as strings, so both shapes arrive in practice.
type IntField struct {
	value int
	set   bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *IntField) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" || raw == `""` {
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return errors.New("not an integer")
	}
	f.value = parsed
	f.set = true
	return nil
}

// Int returns the parsed value and whether one was provided.
func (f IntField) Int() (int, bool) {
	return f.value, f.set
}
