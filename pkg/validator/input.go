package validator

import (
	"encoding/json"
	"fmt"
	"maps"
	"time"
)

// Input is raw request data keyed by field name. Values are whatever the
// decoder produced: string, []string, json.Number, bool, []any,
// map[string]any or nil.
//
// The accessors convert loosely typed values into Go types after
// validation; they return zero values instead of errors, so call them only
// on fields whose rules already guarantee the shape.
type Input map[string]any

// Clone returns a shallow copy.
func (in Input) Clone() Input {
	return maps.Clone(in)
}

// TransformString replaces a string value with fn(value). Missing keys and
// values of other types are left alone.
func (in Input) TransformString(key string, fn func(string) string) {
	if s, ok := in[key].(string); ok {
		in[key] = fn(s)
	}
}

// TransformStrings replaces a list of strings with fn(list). Lists holding
// anything but strings are left alone.
func (in Input) TransformStrings(key string, fn func([]string) []string) {
	switch t := in[key].(type) {
	case []string:
		in[key] = fn(t)
	case []any:
		list := make([]string, 0, len(t))
		for _, v := range t {
			s, ok := v.(string)
			if !ok {
				return
			}
			list = append(list, s)
		}
		in[key] = fn(list)
	}
}

// Has reports whether key is present, even with a nil value.
func (in Input) Has(key string) bool {
	_, ok := in[key]
	return ok
}

// IsNil reports whether key is absent or nil.
func (in Input) IsNil(key string) bool {
	return isNil(in[key])
}

// String returns the value as a string. Numbers are printed; nil yields "".
func (in Input) String(key string) string {
	return stringOf(in[key])
}

func stringOf(v any) string {
	v = deref(v)
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	}
	if s, ok := asString(v); ok {
		return s
	}
	return fmt.Sprint(v)
}

// StringPtr is like String but returns nil for absent or nil values.
func (in Input) StringPtr(key string) *string {
	if in.IsNil(key) {
		return nil
	}
	s := in.String(key)
	return &s
}

// Int64 returns the value as an integer, or 0.
func (in Input) Int64(key string) int64 {
	i, _ := asInt64(in[key])
	return i
}

// Int returns the value as an int, or 0.
func (in Input) Int(key string) int {
	return int(in.Int64(key))
}

// Int64Ptr returns nil for absent, nil or non-integer values.
func (in Input) Int64Ptr(key string) *int64 {
	i, ok := asInt64(in[key])
	if !ok {
		return nil
	}
	return &i
}

// Float64Ptr returns nil for absent, nil or non-numeric values. Numeric
// strings are parsed.
func (in Input) Float64Ptr(key string) *float64 {
	v := in[key]
	f, ok := asNumber(v)
	if !ok {
		s, isStr := asString(v)
		if !isStr {
			return nil
		}
		if f, ok = parseNumber(s); !ok {
			return nil
		}
	}
	return &f
}

// Bool returns the value as a bool using the boolean rule's vocabulary.
func (in Input) Bool(key string) bool {
	b, _ := asBool(in[key])
	return b
}

// Time parses the value as a date, or returns the zero time.
func (in Input) Time(key string) time.Time {
	s, ok := asString(in[key])
	if !ok {
		return time.Time{}
	}
	t, _ := parseDate(s)
	return t
}

// TimePtr returns nil for absent or unparseable dates.
func (in Input) TimePtr(key string) *time.Time {
	s, ok := asString(in[key])
	if !ok {
		return nil
	}
	t, ok := parseDate(s)
	if !ok {
		return nil
	}
	return &t
}

// Strings returns a list value as strings. A single string becomes a
// one-element slice; nil yields nil.
func (in Input) Strings(key string) []string {
	switch t := deref(in[key]).(type) {
	case nil:
		return nil
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, v := range t {
			out = append(out, stringOf(v))
		}
		return out
	case string:
		return []string{t}
	}
	return []string{stringOf(in[key])}
}
