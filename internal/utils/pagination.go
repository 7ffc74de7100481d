// Package utils provides small, generic helper functions used across
// different layers of the application. These utilities are independent
// of domain or business logic.
package utils

import "strconv"

// AtoiDefault converts a string to an int using strconv.Atoi, returning def
// when the string is empty or not an integer. Used for optional numeric
// query parameters such as the history `limit`, where an absent or garbage
// value should fall through to the service-side default rather than fail
// the request.
func AtoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}
