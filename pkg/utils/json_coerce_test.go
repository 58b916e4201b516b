package utils

import (
	"testing"
)

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "bare json untouched",
			raw:  `{"a": 1}`,
			want: `{"a": 1}`,
		},
		{
			name: "fenced with json hint",
			raw:  "```json\n{\"a\": 1}\n```",
			want: `{"a": 1}`,
		},
		{
			name: "fenced without hint",
			raw:  "```\n{\"a\": 1}\n```",
			want: `{"a": 1}`,
		},
		{
			name: "uppercase hint",
			raw:  "```JSON\n{\"a\": 1}\n```",
			want: `{"a": 1}`,
		},
		{
			name: "surrounding whitespace",
			raw:  "  \n```json\n{\"a\": 1}\n```  \n",
			want: `{"a": 1}`,
		},
		{
			name: "empty input",
			raw:  "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripCodeFences(tt.raw); got != tt.want {
				t.Errorf("StripCodeFences(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
