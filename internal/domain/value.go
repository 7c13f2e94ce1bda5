package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Value is one optional field of an API payload. It keeps the decoded JSON
// value exactly as the API sent it; a missing key and an explicit null are both
// absent, while a numeric zero is present.
type Value struct {
	raw any
}

// NewValue wraps a decoded JSON value. A nil raw value yields an absent Value.
func NewValue(raw any) Value {
	return Value{raw: raw}
}

// Present reports whether the payload carried a non-null value.
func (v Value) Present() bool { return v.raw != nil }

// Raw returns the value as decoded (nil when absent).
func (v Value) Raw() any { return v.raw }

// Float64 returns the numeric value. Strings are not parsed.
func (v Value) Float64() (float64, bool) {
	switch t := v.raw.(type) {
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	default:
		return 0, false
	}
}

// Text returns the value when it is a JSON string.
func (v Value) Text() (string, bool) {
	s, ok := v.raw.(string)
	return s, ok
}

// Bool returns the value when it is a JSON boolean.
func (v Value) Bool() (bool, bool) {
	b, ok := v.raw.(bool)
	return b, ok
}

// String renders the value for display; absent values render as an empty string.
func (v Value) String() string {
	switch t := v.raw.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

// MarshalJSON writes the raw value back out, or null when absent.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.raw)
}

// UnmarshalJSON keeps numbers as json.Number so re-decoded events match the API payload.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	v.raw = raw
	return nil
}
