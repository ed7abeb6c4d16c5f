package validator

func checkString(f FieldValue, _ []string) bool {
	if f.IsNil() {
		return true
	}
	_, ok := asString(f.Value)
	return ok
}

// checkInteger accepts integer kinds, integral floats, and strings or
// json.Number holding a base-10 integer.
func checkInteger(f FieldValue, _ []string) bool {
	if f.IsNil() {
		return true
	}
	_, ok := asInt64(f.Value)
	return ok
}

// checkNumeric accepts any number and strings that parse as one.
func checkNumeric(f FieldValue, _ []string) bool {
	if f.IsNil() {
		return true
	}
	if _, ok := asNumber(f.Value); ok {
		return true
	}
	if s, ok := asString(f.Value); ok {
		_, ok = parseNumber(s)
		return ok
	}
	return false
}

func checkBoolean(f FieldValue, _ []string) bool {
	if f.IsNil() {
		return true
	}
	_, ok := asBool(f.Value)
	return ok
}

func checkArray(f FieldValue, _ []string) bool {
	if f.IsNil() {
		return true
	}
	_, ok := collectionLen(f.Value)
	return ok
}
