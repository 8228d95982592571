package query

import (
	"log/slog"
	"sync/atomic"
)

// Sink receives diagnostics from the query layer. *slog.Logger satisfies it.
type Sink interface {
	Error(msg string, args ...any)
	Warn(msg string, args ...any)
	Info(msg string, args ...any)
}

type sinkHolder struct {
	sink Sink
}

var defaultSink atomic.Pointer[sinkHolder]

// Logger returns the process-wide default sink. Unless replaced with
// SetLogger it is slog.Default().
func Logger() Sink {
	if h := defaultSink.Load(); h != nil {
		return h.sink
	}
	return slog.Default()
}

// SetLogger replaces the process-wide default sink. Passing nil restores
// slog.Default(). Prefer ConfigContext.Logger to scope a sink to a subtree.
func SetLogger(s Sink) {
	if s == nil {
		defaultSink.Store(nil)
		return
	}
	defaultSink.Store(&sinkHolder{sink: s})
}

// DiscardSink drops everything.
type DiscardSink struct{}

func (DiscardSink) Error(string, ...any) {}
func (DiscardSink) Warn(string, ...any)  {}
func (DiscardSink) Info(string, ...any)  {}
