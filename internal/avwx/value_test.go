package avwx

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeValue(t *testing.T, src string) Value {
	t.Helper()
	var v Value
	require.NoError(t, json.Unmarshal([]byte(src), &v))
	return v
}

func TestValueUnwrapsTaggedScalars(t *testing.T) {
	tests := []struct {
		name    string
		bare    string
		wrapped string
	}{
		{"integer", `270`, `{"repr": "270", "value": 270, "spoken": "two seven zero"}`},
		{"float", `0.5`, `{"value": 0.5}`},
		{"string", `"VRB"`, `{"repr": "VRB", "value": "VRB"}`},
		{"null", `null`, `{"value": null}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, decodeValue(t, tt.bare), decodeValue(t, tt.wrapped))
		})
	}
}

func TestValueObjectWithoutValueKeyIsNull(t *testing.T) {
	v := decodeValue(t, `{"repr": "9999", "spoken": "nine nine nine nine"}`)
	assert.True(t, v.IsNull())
	assert.Equal(t, "", v.String())
}

func TestValueZeroIsNull(t *testing.T) {
	var v Value
	assert.True(t, v.IsNull())
	assert.Equal(t, "", v.String())
}

func TestValueInt(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		want   int
		wantOK bool
	}{
		{"bare integer", `270`, 270, true},
		{"wrapped integer", `{"value": 15}`, 15, true},
		{"variable direction", `"VRB"`, 0, false},
		{"null", `null`, 0, false},
		{"fractional", `0.5`, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := decodeValue(t, tt.src).Int()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValueString(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"integer", `9999`, "9999"},
		{"fraction", `0.5`, "0.5"},
		{"string", `"P6SM"`, "P6SM"},
		{"null", `null`, ""},
		{"wrapped integer", `{"value": 9999}`, "9999"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, decodeValue(t, tt.src).String())
		})
	}
}
