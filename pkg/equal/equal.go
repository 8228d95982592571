package equal

import "reflect"

// DeepEqual reports whether a and b are structurally equal.
//
// Slices and arrays are compared element by element and in order. Maps and
// structs are compared as objects: same key count, every key of a present in
// b, and equal values under each key. Numbers compare by value whatever
// their Go type, two NaNs are equal, and 0 equals -0. When either side
// implements Valuer (or is a time.Time) the ValueOf results decide the
// comparison, so a Valuer never equals a plain object.
func DeepEqual(a, b any) bool {
	// Fast path for common scalars
	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return av == bv
		}
	case bool:
		if bv, ok := b.(bool); ok {
			return av == bv
		}
	case int:
		if bv, ok := b.(int); ok {
			return av == bv
		}
	case nil:
		if b == nil {
			return true
		}
	}
	return deepEqual(reflect.ValueOf(a), reflect.ValueOf(b))
}

func deepEqual(a, b reflect.Value) bool {
	aPrim, aValuer := valueOf(a)
	bPrim, bValuer := valueOf(b)
	a, b = deref(a), deref(b)

	if strictEqual(a, b) {
		return true
	}
	if !a.IsValid() || !b.IsValid() {
		return false
	}

	aObj := isObject(a) || isList(a) || aValuer
	bObj := isObject(b) || isList(b) || bValuer
	if aObj && bObj {
		if isList(a) {
			if !isList(b) || a.Len() != b.Len() {
				return false
			}
			for i := a.Len() - 1; i >= 0; i-- {
				if !deepEqual(a.Index(i), b.Index(i)) {
					return false
				}
			}
			return true
		}

		if aValuer || bValuer {
			x, y := a, b
			if aValuer {
				x = deref(reflect.ValueOf(aPrim))
			}
			if bValuer {
				y = deref(reflect.ValueOf(bPrim))
			}
			return strictEqual(x, y)
		}

		if !isObject(a) || !isObject(b) {
			return false
		}

		am, bm := members(a), members(b)
		if len(am) != len(bm) {
			return false
		}
		index := make(map[string]reflect.Value, len(bm))
		for _, m := range bm {
			index[m.key] = m.val
		}
		for _, m := range am {
			if _, ok := index[m.key]; !ok {
				return false
			}
		}
		for _, m := range am {
			if !deepEqual(m.val, index[m.key]) {
				return false
			}
		}
		return true
	}

	return isNaN(a) && isNaN(b)
}
