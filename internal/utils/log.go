package utils

import "strings"

// TruncateForLog returns a single-line preview of s with at most limit runes.
// Runs of whitespace, newlines included, collapse to one space. A cut preview ends with "...".
func TruncateForLog(s string, limit int) string {
	if limit <= 0 {
		return ""
	}

	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
