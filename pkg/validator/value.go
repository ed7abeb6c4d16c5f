package validator

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"
)

// FieldValue is the value a Check evaluates, together with the field it
// belongs to and every rule declared on that field.
type FieldValue struct {
	Name  string
	Value any
	Rules []Rule
}

// Check reports whether a field value satisfies a rule with the given
// parameters. Checks never panic on unexpected value shapes; they fail.
type Check func(f FieldValue, params []string) bool

// IsNil reports whether the value is absent, nil, or a nil pointer.
func (f FieldValue) IsNil() bool {
	return isNil(f.Value)
}

// numericHint reports whether the field declares itself numeric, in which
// case numeric strings are sized by magnitude rather than length.
func (f FieldValue) numericHint() bool {
	return hasRule(f.Rules, RuleInteger) || hasRule(f.Rules, RuleNumeric)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// deref unwraps non-nil pointers so *string behaves like string.
func deref(v any) any {
	rv := reflect.ValueOf(v)
	for rv.IsValid() && rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return nil
	}
	return rv.Interface()
}

// asString returns v as a string only if it is string-typed. json.Number is
// a number, not a string, even though its underlying kind is string.
func asString(v any) (string, bool) {
	switch s := deref(v).(type) {
	case string:
		return s, true
	case json.Number:
		return "", false
	}
	rv := reflect.ValueOf(deref(v))
	if rv.IsValid() && rv.Kind() == reflect.String {
		return rv.String(), true
	}
	return "", false
}

// asNumber converts numeric-typed values (ints, uints, floats, json.Number)
// to float64. Strings are not numbers here; see parseNumber.
func asNumber(v any) (float64, bool) {
	v = deref(v)
	if n, ok := v.(json.Number); ok {
		return parseNumber(n.String())
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// parseNumber parses a decimal number. NaN and infinities are rejected.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// asInt64 converts integer-like values: integer kinds, integral floats,
// json.Number and strings holding a base-10 integer.
func asInt64(v any) (int64, bool) {
	v = deref(v)
	switch t := v.(type) {
	case json.Number:
		i, err := strconv.ParseInt(t.String(), 10, 64)
		return i, err == nil
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		return i, err == nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, false
		}
		return int64(u), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if f != math.Trunc(f) || math.IsInf(f, 0) || f > math.MaxInt64 || f < math.MinInt64 {
			return 0, false
		}
		return int64(f), true
	}
	return 0, false
}

// asBool accepts true, false, 0, 1 and the strings "0", "1", "true", "false".
func asBool(v any) (bool, bool) {
	v = deref(v)
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		switch t {
		case "1", "true":
			return true, true
		case "0", "false":
			return false, true
		}
		return false, false
	}
	if i, ok := asInt64(v); ok {
		switch i {
		case 1:
			return true, true
		case 0:
			return false, true
		}
	}
	return false, false
}

// collectionLen returns the element count of slices, arrays and maps.
func collectionLen(v any) (int, bool) {
	rv := reflect.ValueOf(deref(v))
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len(), true
	}
	return 0, false
}

// sizeOf measures a value for min/max: magnitude for numbers, rune count for
// strings, element count for collections. Strings on a field declared
// integer or numeric are measured by magnitude when they parse as numbers.
func sizeOf(f FieldValue) (float64, bool) {
	if s, ok := asString(f.Value); ok {
		if f.numericHint() {
			if n, ok := parseNumber(s); ok {
				return n, true
			}
		}
		return float64(utf8.RuneCountInString(s)), true
	}
	if n, ok := asNumber(f.Value); ok {
		return n, true
	}
	if n, ok := collectionLen(f.Value); ok {
		return float64(n), true
	}
	return 0, false
}
