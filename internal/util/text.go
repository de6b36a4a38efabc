package util

import "strings"

// SanitizeText prepares user input for a query: invalid UTF-8 and control
// characters are dropped, tabs and newlines become spaces and the result is
// trimmed.
func SanitizeText(value string) string {
	if value == "" {
		return value
	}

	sanitized := strings.ToValidUTF8(value, "")
	sanitized = strings.Map(func(r rune) rune {
		if r == '\t' || r == '\n' {
			return ' '
		}
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, sanitized)
	return strings.TrimSpace(sanitized)
}
