package lifecycle

import (
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/vango-dev/vquery/pkg/metrics"
)

func TestUseUIDStableAcrossRenders(t *testing.T) {
	a := NewScope(nil)
	b := NewScope(nil)

	render := func(s *Scope) uint64 {
		s.BeginRender()
		defer s.EndRender()
		return UseUID(s)
	}

	first := render(a)
	if second := render(a); second != first {
		t.Errorf("UseUID changed across renders: %d then %d", first, second)
	}
	if other := render(b); other == first {
		t.Error("different instances should get different identifiers")
	}
}

func TestUseLatest(t *testing.T) {
	s := NewScope(nil)

	s.BeginRender()
	get1 := UseLatest(s, "one")
	s.EndRender()

	if got := get1(); got != "one" {
		t.Errorf("get() = %q, want one", got)
	}

	s.BeginRender()
	get2 := UseLatest(s, "two")
	s.EndRender()

	if got := get1(); got != "two" {
		t.Errorf("getter from first render = %q, want two", got)
	}
	if got := get2(); got != "two" {
		t.Errorf("get() = %q, want two", got)
	}
}

func TestUseMountedCallback(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := metrics.New(metrics.WithRegistry(reg))
	prev := metrics.Get()
	metrics.SetDefault(c)
	defer metrics.SetDefault(prev)

	s := NewScope(nil)
	var got []int
	s.BeginRender()
	cb := UseMountedCallback(s, func(v int) bool {
		got = append(got, v)
		return true
	})
	s.EndRender()

	if cb(1) {
		t.Error("callback before mount should return zero value")
	}

	s.Mount()
	if !cb(2) {
		t.Error("callback while mounted should return fn result")
	}

	s.Unmount()
	if cb(3) {
		t.Error("callback after unmount should return zero value")
	}

	if len(got) != 1 || got[0] != 2 {
		t.Errorf("fn received %v, want [2]", got)
	}
	if dropped := testutil.ToFloat64(c.DroppedCallbacks); dropped != 2 {
		t.Errorf("dropped callbacks = %v, want 2", dropped)
	}
}

func TestUseMountedCallbackRegistersOnce(t *testing.T) {
	s := NewScope(nil)
	for i := 0; i < 3; i++ {
		s.BeginRender()
		UseMountedCallback(s, func(struct{}) struct{} { return struct{}{} })
		s.EndRender()
	}

	s.fnsMu.Lock()
	n := len(s.mountFns)
	s.fnsMu.Unlock()
	if n != 1 {
		t.Errorf("registered %d mount callbacks over 3 renders, want 1", n)
	}
}

func TestUseMountedCallbackConcurrentUnmount(t *testing.T) {
	s := NewScope(nil)
	s.BeginRender()
	var mu sync.Mutex
	calls := 0
	cb := UseMountedCallback(s, func(int) int {
		mu.Lock()
		calls++
		mu.Unlock()
		return 0
	})
	s.EndRender()
	s.Mount()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			cb(i)
		}(i)
	}
	s.Unmount()
	wg.Wait()

	before := calls
	cb(100)
	if calls != before {
		t.Error("callback ran after unmount")
	}
}
