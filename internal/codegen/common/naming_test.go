package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToPascalCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"KEY", "Key"},
		{"INPUT_PROP", "InputProp"},
		{"FF_STATUS", "FfStatus"},
		{"event-type", "EventType"},
		{"bus", "Bus"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ToPascalCase(tt.in), "ToPascalCase(%q)", tt.in)
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"EventType", "event_type"},
		{"KEY", "key"},
		{"INPUT_PROP", "input_prop"},
		{"XMLParser", "xml_parser"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ToSnakeCase(tt.in), "ToSnakeCase(%q)", tt.in)
	}
}
