package suspense

import (
	"context"
	"fmt"
	"sync"
)

// FutureStatus is the settlement state of a Future.
type FutureStatus int

const (
	Pending FutureStatus = iota
	Resolved
	Rejected
)

// String returns a human-readable name for the status.
func (s FutureStatus) String() string {
	switch s {
	case Pending:
		return "pending"
	case Resolved:
		return "resolved"
	case Rejected:
		return "rejected"
	default:
		return fmt.Sprintf("FutureStatus(%d)", int(s))
	}
}

// Future is a value that becomes available later. It settles exactly once,
// either resolved with a value or rejected with an error. Safe for
// concurrent use.
type Future[T any] struct {
	done chan struct{}
	once sync.Once

	value T
	err   error
}

// NewFuture returns a pending Future to be settled with Resolve or Reject.
func NewFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// Go runs fn in a goroutine and returns a Future settled by its result.
// A panic in fn rejects the Future.
func Go[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) *Future[T] {
	f := NewFuture[T]()
	go func() {
		defer func() {
			if r := recover(); r != nil {
				f.Reject(fmt.Errorf("suspense: fetch panicked: %v", r))
			}
		}()
		v, err := fn(ctx)
		if err != nil {
			f.Reject(err)
			return
		}
		f.Resolve(v)
	}()
	return f
}

// ResolvedFuture returns a Future already resolved with v.
func ResolvedFuture[T any](v T) *Future[T] {
	f := NewFuture[T]()
	f.Resolve(v)
	return f
}

// RejectedFuture returns a Future already rejected with err.
func RejectedFuture[T any](err error) *Future[T] {
	f := NewFuture[T]()
	f.Reject(err)
	return f
}

// Resolve settles the Future with v. It reports false if already settled.
func (f *Future[T]) Resolve(v T) bool {
	settled := false
	f.once.Do(func() {
		f.value = v
		close(f.done)
		settled = true
	})
	return settled
}

// Reject settles the Future with err. It reports false if already settled.
// A nil err is replaced so that a rejected Future always carries an error.
func (f *Future[T]) Reject(err error) bool {
	if err == nil {
		err = fmt.Errorf("suspense: rejected without error")
	}
	settled := false
	f.once.Do(func() {
		f.err = err
		close(f.done)
		settled = true
	})
	return settled
}

// Done returns a channel closed when the Future settles.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Status reports the current settlement state without blocking.
func (f *Future[T]) Status() FutureStatus {
	select {
	case <-f.done:
		if f.err != nil {
			return Rejected
		}
		return Resolved
	default:
		return Pending
	}
}

// Result returns the settled value and error without blocking. While the
// Future is pending it returns zero values; check Status first.
func (f *Future[T]) Result() (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	default:
		var zero T
		return zero, nil
	}
}

// Wait blocks until the Future settles or ctx is done.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
