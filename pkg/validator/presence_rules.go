package validator

import "strings"

// checkRequired fails on nil, blank strings and empty collections.
func checkRequired(f FieldValue, _ []string) bool {
	if f.IsNil() {
		return false
	}
	if s, ok := asString(f.Value); ok {
		return strings.TrimSpace(s) != ""
	}
	if n, ok := collectionLen(f.Value); ok {
		return n > 0
	}
	return true
}

// checkNullable always passes. The engine skips the remaining rules of a
// nullable field whose value is nil.
func checkNullable(FieldValue, []string) bool {
	return true
}
