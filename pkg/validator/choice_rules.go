package validator

import (
	"fmt"
	"slices"
)

// checkIn passes when the value is a string equal to one of params.
// Comparison is strict: the integer 2 does not match the entry "2".
func checkIn(f FieldValue, params []string) bool {
	if f.IsNil() {
		return true
	}
	s, ok := asString(f.Value)
	if !ok {
		return false
	}
	return slices.Contains(params, s)
}

// checkInLoose compares the printed form of the value, so the integer 2,
// json.Number("2") and "2" all match the entry "2". Collections never match.
func checkInLoose(f FieldValue, params []string) bool {
	if f.IsNil() {
		return true
	}
	if _, ok := collectionLen(f.Value); ok {
		return false
	}
	if s, ok := asString(f.Value); ok {
		return slices.Contains(params, s)
	}
	if i, ok := asInt64(f.Value); ok {
		return slices.Contains(params, fmt.Sprint(i))
	}
	return slices.Contains(params, fmt.Sprint(deref(f.Value)))
}
