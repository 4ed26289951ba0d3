package serverutils

import (
	"testing"
)

func TestSanitizeForLogging(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"plain text", "hello", 100, "hello"},
		{"empty input", "", 100, "[empty]"},
		{"newline injection", "line1\nINFO forged", 100, "line1 INFO forged"},
		{"carriage return and tab", "a\r\tb", 100, "a  b"},
		{"truncation", "abcdefgh", 4, "abcd..."},
		{"marathi preserved", "नमस्कार", 100, "नमस्कार"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeForLogging(tt.in, tt.max)
			if got != tt.want {
				t.Errorf("SanitizeForLogging(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
