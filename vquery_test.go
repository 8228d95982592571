package vquery

import (
	"context"
	"testing"
)

func TestFacadeArgs(t *testing.T) {
	scope := NewScope(nil)
	(&ConfigContext{Queries: Config{Retry: Int(1)}}).Provide(scope)

	fetch := func(ctx context.Context, key any) (any, error) { return key, nil }
	key, cfg, _ := UseArgs(scope, "todos", fetch)

	if key != "todos" {
		t.Errorf("key = %v, want todos", key)
	}
	if cfg.RetryCount() != 1 {
		t.Errorf("retry = %d, want 1", cfg.RetryCount())
	}
	if cfg.QueryFn == nil {
		t.Error("QueryFn should be set")
	}
}

func TestFacadeKeys(t *testing.T) {
	fp, err := Fingerprint("todos")
	if err != nil {
		t.Fatal(err)
	}
	if fp != MustStringify([]any{"todos"}) {
		t.Errorf("Fingerprint(\"todos\") = %s", fp)
	}

	a := map[string]any{"id": 1, "tags": []any{"x"}}
	b := map[string]any{"tags": []any{"x"}, "id": 1}
	if !DeepEqual(a, b) {
		t.Error("DeepEqual should ignore key order")
	}
	if !DeepIncludes(a, map[string]any{"id": 1}) {
		t.Error("DeepIncludes should accept a subset")
	}
}

func TestFacadeUpdate(t *testing.T) {
	if got := Update(func(n int) int { return n + 1 }, 1); got != 2 {
		t.Errorf("Update(fn) = %d, want 2", got)
	}
	if got := Update(5, 1); got != 5 {
		t.Errorf("Update(5) = %d, want 5", got)
	}
}

func TestFacadeHandleSuspenseIdle(t *testing.T) {
	if err := HandleSuspense(context.Background(), SuspenseInfo{Status: StatusSuccess}); err != nil {
		t.Errorf("HandleSuspense() = %v, want nil", err)
	}
}
