package lifecycle

import (
	"sync"
	"sync/atomic"

	"github.com/vango-dev/vquery/pkg/metrics"
)

// UseUID returns an identifier assigned on the component's first render and
// stable across re-renders.
func UseUID(l Lifecycle) uint64 {
	return l.Stable(func() any { return NextID() }).(uint64)
}

// latestRef holds the most recent value passed to UseLatest.
type latestRef[T any] struct {
	mu    sync.RWMutex
	value T
	get   func() T
}

// UseLatest stores v and returns a getter that always yields the most
// recently stored value. The getter is the same func on every render, so it
// can be captured once by long-lived callbacks.
func UseLatest[T any](l Lifecycle, v T) func() T {
	ref := l.Stable(func() any {
		r := &latestRef[T]{}
		r.get = func() T {
			r.mu.RLock()
			defer r.mu.RUnlock()
			return r.value
		}
		return r
	}).(*latestRef[T])

	ref.mu.Lock()
	ref.value = v
	ref.mu.Unlock()
	return ref.get
}

// UseMountedCallback returns a func that calls fn only while the component
// is mounted. Before mount and after unmount it returns the zero R without
// calling fn. The returned func may be called from any goroutine, which is
// the usual case for fetch completions.
func UseMountedCallback[T, R any](l Lifecycle, fn func(T) R) func(T) R {
	mounted := l.Stable(func() any {
		flag := new(atomic.Bool)
		l.OnMount(func() { flag.Store(true) })
		l.OnUnmount(func() { flag.Store(false) })
		return flag
	}).(*atomic.Bool)

	return func(arg T) R {
		if !mounted.Load() {
			metrics.RecordDroppedCallback()
			var zero R
			return zero
		}
		return fn(arg)
	}
}
