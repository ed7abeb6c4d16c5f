package validator

// checkMin compares the value's size (see sizeOf) against params[0].
func checkMin(f FieldValue, params []string) bool {
	if f.IsNil() {
		return true
	}
	bound, ok := boundParam(params, 0)
	if !ok {
		return false
	}
	size, ok := sizeOf(f)
	return ok && size >= bound
}

// checkMax compares the value's size (see sizeOf) against params[0].
func checkMax(f FieldValue, params []string) bool {
	if f.IsNil() {
		return true
	}
	bound, ok := boundParam(params, 0)
	if !ok {
		return false
	}
	size, ok := sizeOf(f)
	return ok && size <= bound
}

// checkBetween is min:params[0] and max:params[1].
func checkBetween(f FieldValue, params []string) bool {
	if len(params) < 2 {
		return f.IsNil()
	}
	return checkMin(f, params[:1]) && checkMax(f, params[1:2])
}

func boundParam(params []string, i int) (float64, bool) {
	if i >= len(params) {
		return 0, false
	}
	return parseNumber(params[i])
}
