package normalization

import (
	"strings"
)

// ParseInputString lowercases and trims user-supplied identifiers
// (emails, category ids, search text).
func ParseInputString(input string) string {
	normalized := strings.ToLower(strings.TrimSpace(input))
	return normalized
}

// TrimInputString trims without lowercasing, for display fields
// (names, descriptions, addresses).
func TrimInputString(input string) string {
	return strings.TrimSpace(input)
}
