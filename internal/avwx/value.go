package avwx

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// Value is a report field that the API renders either as a bare JSON scalar
// or as an object carrying the scalar under "value" (alongside repr/spoken
// siblings). The zero Value is null.
type Value struct {
	scalar any // nil, string, float64, or bool
}

// Number returns a numeric Value.
func Number(f float64) Value { return Value{scalar: f} }

// Text returns a string Value.
func Text(s string) Value { return Value{scalar: s} }

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var wrapped map[string]json.RawMessage
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return err
		}
		inner, ok := wrapped["value"]
		if !ok {
			v.scalar = nil
			return nil
		}
		return v.decodeScalar(inner)
	}
	return v.decodeScalar(data)
}

func (v *Value) decodeScalar(data []byte) error {
	var s any
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s.(type) {
	case nil, string, float64, bool:
		v.scalar = s
	default:
		// Arrays or objects nested under "value" carry nothing tabular.
		v.scalar = nil
	}
	return nil
}

// IsNull reports whether no scalar is present.
func (v Value) IsNull() bool { return v.scalar == nil }

// Int returns the value as an integer. ok is false for null, string, and
// fractional values; variable wind directions arrive as the string "VRB" and
// fall through here.
func (v Value) Int() (int, bool) {
	f, ok := v.scalar.(float64)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// String renders the scalar for tabular output. Null renders as the empty
// string; numbers render without a trailing fraction when integral.
func (v Value) String() string {
	switch s := v.scalar.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	default:
		return ""
	}
}
