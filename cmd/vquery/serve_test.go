package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/vango-dev/vquery/internal/config"
	"github.com/vango-dev/vquery/pkg/metrics"
	"github.com/vango-dev/vquery/pkg/probe"
)

func newTestServer(t *testing.T, cfg *config.File) (*httptest.Server, *sessions) {
	t.Helper()
	registry := prometheus.NewRegistry()
	prev := metrics.Get()
	metrics.SetDefault(metrics.New(metrics.WithRegistry(registry)))
	t.Cleanup(func() { metrics.SetDefault(prev) })

	s := newSessions()
	h, err := newRouter(cfg, s, registry, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("newRouter: %v", err)
	}
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts, s
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func wsURL(ts *httptest.Server, path string) string {
	return "ws" + strings.TrimPrefix(ts.URL, "http") + path
}

func waitSessions(t *testing.T, s *sessions, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for s.len() != want {
		if time.Now().After(deadline) {
			t.Fatalf("sessions = %d, want %d", s.len(), want)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHealthz(t *testing.T) {
	ts, _ := newTestServer(t, config.New())

	code, body := get(t, ts.URL+"/healthz")
	if code != http.StatusOK || body != "OK" {
		t.Errorf("healthz = %d %q", code, body)
	}
}

func TestDefaults(t *testing.T) {
	cfg := config.New()
	data := `{"shared": {"retry": 1}, "queries": {"staleTime": "30s"}, "mutations": {"retry": 0}}`
	if err := config.Parse([]byte(data), ".json", cfg); err != nil {
		t.Fatal(err)
	}
	ts, _ := newTestServer(t, cfg)

	code, body := get(t, ts.URL+"/defaults")
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}

	var got map[string]configView
	if err := json.Unmarshal([]byte(body), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got["queries"].Retry != 1 || got["queries"].StaleTime != "30s" {
		t.Errorf("queries = %+v", got["queries"])
	}
	if got["mutations"].Retry != 0 || got["mutations"].StaleTime != "0s" {
		t.Errorf("mutations = %+v", got["mutations"])
	}
	if !got["queries"].RefetchOnWindowFocus {
		t.Error("refetchOnWindowFocus should default to true")
	}
}

func TestSessionsUnknown(t *testing.T) {
	ts, _ := newTestServer(t, config.New())

	if code, _ := get(t, ts.URL+"/sessions/nope"); code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", code)
	}
	_, resp, err := websocket.DefaultDialer.Dial(wsURL(ts, "/probe"), nil)
	if err == nil || resp == nil || resp.StatusCode != http.StatusNotFound {
		t.Errorf("dial without session: resp = %v, err = %v, want 404", resp, err)
	}
}

func TestProbeReportsReachSession(t *testing.T) {
	ts, s := newTestServer(t, config.New())

	changes := make(chan probe.State, 1)
	remote, release := s.acquire("abc")
	defer release()
	remote.Subscribe(func(st probe.State) { changes <- st })

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(ts, "/probe?session=abc"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"visibilityState":"hidden","onLine":false}`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	select {
	case <-changes:
	case <-time.After(2 * time.Second):
		t.Fatal("report not applied")
	}

	code, body := get(t, ts.URL+"/sessions/abc")
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	var st sessionState
	if err := json.Unmarshal([]byte(body), &st); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if st.VisibilityState != "hidden" || st.Visible || st.Online {
		t.Errorf("state = %+v", st)
	}
	if st.OnLine == nil || *st.OnLine {
		t.Errorf("onLine = %v, want false", st.OnLine)
	}

	_, metricsBody := get(t, ts.URL+"/metrics")
	if !strings.Contains(metricsBody, `vquery_probe_updates_total{kind="online"} 1`) {
		t.Errorf("metrics missing probe update:\n%s", metricsBody)
	}
}

func TestPlainRequestsCreateNoSessions(t *testing.T) {
	ts, s := newTestServer(t, config.New())

	for i := 0; i < 50; i++ {
		code, _ := get(t, fmt.Sprintf("%s/probe?session=s%d", ts.URL, i))
		if code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", code)
		}
	}
	if n := s.len(); n != 0 {
		t.Errorf("sessions = %d, want 0", n)
	}
}

func TestFailedUpgradeLeavesNoSession(t *testing.T) {
	cfg := config.New()
	cfg.Server.AllowedOrigins = []string{"https://app.example"}
	ts, s := newTestServer(t, cfg)

	header := http.Header{"Origin": []string{"https://evil.example"}}
	_, resp, err := websocket.DefaultDialer.Dial(wsURL(ts, "/probe?session=abc"), header)
	if err == nil || resp == nil || resp.StatusCode != http.StatusForbidden {
		t.Fatalf("dial: resp = %v, err = %v, want 403", resp, err)
	}
	waitSessions(t, s, 0)
}

func TestSessionDroppedAfterLastConnection(t *testing.T) {
	ts, s := newTestServer(t, config.New())

	first, _, err := websocket.DefaultDialer.Dial(wsURL(ts, "/probe?session=abc"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	second, _, err := websocket.DefaultDialer.Dial(wsURL(ts, "/probe?session=abc"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	waitSessions(t, s, 1)

	first.Close()
	// The session lives while another connection still reports into it.
	time.Sleep(50 * time.Millisecond)
	if s.get("abc") == nil {
		t.Fatal("session dropped while a connection is open")
	}

	second.Close()
	waitSessions(t, s, 0)
	if code, _ := get(t, ts.URL+"/sessions/abc"); code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 after disconnect", code)
	}
}
