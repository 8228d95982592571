package query

// Update applies a functional update. If updater is a func(T) T it is
// called with old; if it is a T it replaces old; anything else leaves old
// unchanged.
func Update[T any](updater any, old T) T {
	switch u := updater.(type) {
	case func(T) T:
		if u == nil {
			return old
		}
		return u(old)
	case T:
		return u
	}
	return old
}

// Identity returns v.
func Identity[T any](v T) T {
	return v
}

// Noop does nothing.
func Noop() {}
