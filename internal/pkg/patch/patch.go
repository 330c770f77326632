// Package patch merges partial update requests onto stored values.
package patch

import "strings"

// Coalesce returns *ptr when the field was sent, otherwise fallback.
func Coalesce[T any](ptr *T, fallback T) T {
	if ptr != nil {
		return *ptr
	}
	return fallback
}

// Text is Coalesce for free-text fields: a sent value is trimmed, so "  " clears
// an optional column.
func Text(ptr *string, fallback string) string {
	if ptr == nil {
		return fallback
	}
	return strings.TrimSpace(*ptr)
}

// Deref reads a nullable column, NULL becoming "".
func Deref(ptr *string) string {
	return Coalesce(ptr, "")
}
