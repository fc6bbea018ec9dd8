package model

import "strconv"

// TruncateString cuts a string down to the maximum allowed length.
func TruncateString(s string, maxLength int) string {
	if len(s) <= maxLength {
		return s
	}
	return s[:maxLength]
}

// ParseCount converts the API's string-typed statistics to int64.
// Missing or malformed values become 0.
func ParseCount(s string) int64 {
	if s == "" {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
