// Package suspense connects queries to a UI runtime's suspense and error
// boundary mechanisms.
//
// Instead of unwinding the render by panicking, Handle returns an error the
// runtime inspects with errors.As:
//
//	if err := suspense.Handle(ctx, info); err != nil {
//	    var s *suspense.SuspendError
//	    var b *suspense.BoundaryError
//	    switch {
//	    case errors.As(err, &s):
//	        return fallback(s.Pending) // re-render when s.Pending settles
//	    case errors.As(err, &b):
//	        return boundary(b.Err)
//	    }
//	}
//
// Future is the explicit asynchronous result a suspended render waits on.
package suspense
