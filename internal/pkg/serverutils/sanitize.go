package serverutils

import "strings"

// SanitizeForLogging strips control characters from user input and
// truncates it so a crafted query cannot forge log lines.
func SanitizeForLogging(text string, maxLength int) string {
	if text == "" {
		return "[empty]"
	}

	sanitized := strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f || (r >= 0x80 && r <= 0x9f) {
			return ' '
		}
		return r
	}, text)

	if len(sanitized) > maxLength {
		sanitized = sanitized[:maxLength] + "..."
	}
	return sanitized
}
