package equal

import "reflect"

// DeepIncludes reports whether a contains b: every key of b, recursively,
// must be present in a with an including value. It is a subset match and is
// not symmetric; DeepIncludes(x, map[string]any{}) is true for any object x.
//
// Lists are objects keyed by index, so a longer slice includes its prefix.
// A key that is absent from a never matches, even when b holds nil there.
func DeepIncludes(a, b any) bool {
	return includes(reflect.ValueOf(a), true, reflect.ValueOf(b), true)
}

// includes compares two slots; aok and bok are false for absent keys.
func includes(a reflect.Value, aok bool, b reflect.Value, bok bool) bool {
	if !aok || !bok {
		return !aok && !bok
	}

	a, b = deref(a), deref(b)
	if strictEqual(a, b) {
		return true
	}
	if kindOf(a) != kindOf(b) {
		return false
	}
	if kindOf(a) != kindObject {
		return false
	}

	for _, m := range members(b) {
		av, ok := lookup(a, m.key)
		if !includes(av, ok, m.val, true) {
			return false
		}
	}
	return true
}
