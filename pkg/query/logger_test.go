package query

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/vango-dev/vquery/pkg/lifecycle"
)

type recordingSink struct {
	lines []string
}

func (r *recordingSink) Error(msg string, _ ...any) { r.lines = append(r.lines, "error: "+msg) }
func (r *recordingSink) Warn(msg string, _ ...any)  { r.lines = append(r.lines, "warn: "+msg) }
func (r *recordingSink) Info(msg string, _ ...any)  { r.lines = append(r.lines, "info: "+msg) }

func TestDefaultLoggerIsSlog(t *testing.T) {
	SetLogger(nil)
	if _, ok := Logger().(*slog.Logger); !ok {
		t.Errorf("Logger() = %T, want *slog.Logger", Logger())
	}
}

func TestSetLogger(t *testing.T) {
	rec := &recordingSink{}
	SetLogger(rec)
	defer SetLogger(nil)

	Logger().Warn("stale")
	if len(rec.lines) != 1 || rec.lines[0] != "warn: stale" {
		t.Errorf("lines = %v", rec.lines)
	}
}

func TestConfigContextSink(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	root := lifecycle.NewScope(nil)
	(&ConfigContext{Logger: logger}).Provide(root)

	ConfigFrom(lifecycle.NewScope(root)).Sink().Error("fetch failed", "key", "todos")

	if out := buf.String(); !strings.Contains(out, "fetch failed") || !strings.Contains(out, "key=todos") {
		t.Errorf("log output = %q", out)
	}

	var empty *ConfigContext
	if empty.Sink() == nil {
		t.Error("nil ConfigContext should fall back to the default sink")
	}
}

func TestDiscardSink(t *testing.T) {
	var s Sink = DiscardSink{}
	s.Error("x")
	s.Warn("x")
	s.Info("x")
}
