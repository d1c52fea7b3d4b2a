package util

import "strings"

const maskedLength = 28

// FormatAPIKeyValue returns the raw key value when visible, otherwise a fixed
// placeholder keeping only the prefix. The mask never depends on the real
// value's length.
func FormatAPIKeyValue(value string, visible bool) string {
	if visible {
		return value
	}
	prefix := value
	if i := strings.Index(value, "-"); i >= 0 {
		prefix = value[:i+1]
	}
	return prefix + strings.Repeat("*", maskedLength)
}
