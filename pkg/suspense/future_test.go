package suspense

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestFutureResolve(t *testing.T) {
	f := NewFuture[string]()
	if f.Status() != Pending {
		t.Fatalf("Status() = %v, want pending", f.Status())
	}
	if v, err := f.Result(); v != "" || err != nil {
		t.Errorf("Result() while pending = %q, %v", v, err)
	}

	if !f.Resolve("data") {
		t.Error("first Resolve should settle")
	}
	if f.Resolve("again") || f.Reject(errors.New("late")) {
		t.Error("a settled Future must not settle again")
	}

	if f.Status() != Resolved {
		t.Errorf("Status() = %v, want resolved", f.Status())
	}
	v, err := f.Wait(context.Background())
	if v != "data" || err != nil {
		t.Errorf("Wait() = %q, %v; want data, nil", v, err)
	}
}

func TestFutureReject(t *testing.T) {
	boom := errors.New("boom")
	f := RejectedFuture[int](boom)

	if f.Status() != Rejected {
		t.Errorf("Status() = %v, want rejected", f.Status())
	}
	if _, err := f.Result(); !errors.Is(err, boom) {
		t.Errorf("Result() err = %v, want boom", err)
	}

	if nilErr := NewFuture[int](); nilErr.Reject(nil) {
		if _, err := nilErr.Result(); err == nil {
			t.Error("Reject(nil) should still carry an error")
		}
	}
}

func TestFutureWaitContext(t *testing.T) {
	f := NewFuture[int]()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := f.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Wait() err = %v, want deadline exceeded", err)
	}
}

func TestGo(t *testing.T) {
	f := Go(context.Background(), func(context.Context) (int, error) { return 42, nil })
	v, err := f.Wait(context.Background())
	if v != 42 || err != nil {
		t.Errorf("Wait() = %d, %v; want 42, nil", v, err)
	}

	p := Go(context.Background(), func(context.Context) (int, error) { panic("bad") })
	if _, err := p.Wait(context.Background()); err == nil {
		t.Error("a panicking fn should reject the Future")
	}
}

func TestFutureStatusString(t *testing.T) {
	tests := []struct {
		s    FutureStatus
		want string
	}{
		{Pending, "pending"},
		{Resolved, "resolved"},
		{Rejected, "rejected"},
		{FutureStatus(9), "FutureStatus(9)"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
