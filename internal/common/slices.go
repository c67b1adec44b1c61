package common

// First returns the first element of s, or false when s is empty.
func First[S ~[]E, E any](s S) (E, bool) {
	if len(s) == 0 {
		var zero E
		return zero, false
	}

	return s[0], true
}

// Only returns the element of a single-element slice. It reports false for
// empty slices and for slices holding more than one element.
func Only[S ~[]E, E any](s S) (E, bool) {
	if len(s) != 1 {
		var zero E
		return zero, false
	}

	return s[0], true
}

// IsMultiple reports whether s holds more than one element.
func IsMultiple[S ~[]E, E any](s S) bool {
	return len(s) > 1
}
