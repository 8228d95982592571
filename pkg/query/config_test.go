package query

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestMerge(t *testing.T) {
	onErr := func(error) {}
	shared := Config{Retry: Int(3), Enabled: Bool(true), OnError: onErr}
	queries := Config{Retry: Int(0), StaleTime: Duration(time.Minute)}
	call := Config{Enabled: Bool(false)}

	got := Merge(shared, queries, call)

	if got.RetryCount() != 0 {
		t.Errorf("Retry = %d, want 0 (explicit zero overrides)", got.RetryCount())
	}
	if got.IsEnabled() {
		t.Error("Enabled should be false from the call site")
	}
	if got.StaleDuration() != time.Minute {
		t.Errorf("StaleTime = %v, want 1m", got.StaleDuration())
	}
	if got.OnError == nil {
		t.Error("OnError should fall through from shared")
	}
}

func TestMergeEmpty(t *testing.T) {
	got := Merge()
	if got.Retry != nil || got.QueryFn != nil {
		t.Errorf("Merge() = %+v, want zero Config", got)
	}
}

func TestConfigDefaults(t *testing.T) {
	var c Config

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"enabled", c.IsEnabled(), true},
		{"suspense", c.IsSuspense(), false},
		{"error boundary", c.IsUseErrorBoundary(), false},
		{"retry", c.RetryCount(), DefaultRetry},
		{"retry delay", c.RetryDelayOr(), DefaultRetryDelay},
		{"stale", c.StaleDuration(), time.Duration(0)},
		{"cache", c.CacheDuration(), DefaultCacheTime},
		{"focus", c.ShouldRefetchOnWindowFocus(), true},
		{"reconnect", c.ShouldRefetchOnReconnect(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestConfigContextLayers(t *testing.T) {
	ctx := &ConfigContext{
		Shared:    Config{Retry: Int(2)},
		Queries:   Config{Suspense: Bool(true)},
		Mutations: Config{Retry: Int(0)},
	}

	q := ctx.QueryConfig(Config{})
	if q.RetryCount() != 2 || !q.IsSuspense() {
		t.Errorf("QueryConfig = retry %d suspense %v", q.RetryCount(), q.IsSuspense())
	}

	m := ctx.MutationConfig(Config{})
	if m.RetryCount() != 0 || m.IsSuspense() {
		t.Errorf("MutationConfig = retry %d suspense %v", m.RetryCount(), m.IsSuspense())
	}
}

func TestStatusLabels(t *testing.T) {
	for status, want := range map[Status]string{
		StatusIdle:    "idle",
		StatusLoading: "loading",
		StatusError:   "error",
		StatusSuccess: "success",
	} {
		if status.String() != want {
			t.Errorf("Status = %q, want %q", status, want)
		}
	}
}

func TestIsCancelled(t *testing.T) {
	if !IsCancelled(fmt.Errorf("fetch: %w", ErrCancelled)) {
		t.Error("wrapped ErrCancelled should be detected")
	}
	if IsCancelled(errors.New("other")) {
		t.Error("unrelated error should not be cancelled")
	}
}

func TestUpdate(t *testing.T) {
	if got := Update(func(n int) int { return n + 1 }, 1); got != 2 {
		t.Errorf("Update(func) = %d, want 2", got)
	}
	if got := Update(7, 1); got != 7 {
		t.Errorf("Update(value) = %d, want 7", got)
	}
	if got := Update("wrong type", 1); got != 1 {
		t.Errorf("Update(other) = %d, want 1", got)
	}
	if got := Identity("x"); got != "x" {
		t.Errorf("Identity = %q", got)
	}
	Noop()
}
