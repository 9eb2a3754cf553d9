package core

import "strings"

// CleanString normalizes free-text input before validation: surrounding
// whitespace is dropped, and `lower` additionally folds the result to lower
// case (emails, codes used as lookup keys).
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		s = strings.ToLower(s)
	}
	return s
}
