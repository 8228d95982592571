package probe

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vango-dev/vquery/pkg/metrics"
)

// HandlerConfig configures the report endpoint.
type HandlerConfig struct {
	// ReadTimeout bounds the wait for the next report (default: 60s).
	// Clients are expected to report at least this often.
	ReadTimeout time.Duration

	// MaxMessageSize caps a single report in bytes (default: 1024).
	MaxMessageSize int64

	// CheckOrigin validates the upgrade request origin.
	// Default: same-origin check from gorilla/websocket.
	CheckOrigin func(r *http.Request) bool

	// Logger receives decode and read errors (default: slog.Default()).
	Logger *slog.Logger
}

// HandlerOption configures the report endpoint.
type HandlerOption func(*HandlerConfig)

// WithReadTimeout sets the read timeout.
func WithReadTimeout(d time.Duration) HandlerOption {
	return func(c *HandlerConfig) {
		c.ReadTimeout = d
	}
}

// WithMaxMessageSize sets the report size cap.
func WithMaxMessageSize(n int64) HandlerOption {
	return func(c *HandlerConfig) {
		c.MaxMessageSize = n
	}
}

// WithCheckOrigin sets the origin check.
func WithCheckOrigin(fn func(r *http.Request) bool) HandlerOption {
	return func(c *HandlerConfig) {
		c.CheckOrigin = fn
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) HandlerOption {
	return func(c *HandlerConfig) {
		c.Logger = logger
	}
}

func defaultHandlerConfig() HandlerConfig {
	return HandlerConfig{
		ReadTimeout:    60 * time.Second,
		MaxMessageSize: 1024,
		Logger:         slog.Default(),
	}
}

// Resolver picks the Remote a connection reports into, typically by
// session. Returning a nil Remote rejects the connection with 404. A
// non-nil release is called exactly once, when the connection ends or the
// upgrade fails, so the resolver can drop state nobody reports into.
type Resolver func(r *http.Request) (remote *Remote, release func())

// Handler returns a WebSocket endpoint that reads JSON reports such as
//
//	{"visibilityState":"hidden","onLine":false}
//
// into the Remote chosen by resolve. Requests that are not WebSocket
// upgrades get 400 without reaching resolve. Malformed reports are logged
// and skipped; the connection stays open.
func Handler(resolve Resolver, opts ...HandlerOption) http.Handler {
	config := defaultHandlerConfig()
	for _, opt := range opts {
		opt(&config)
	}
	logger := config.Logger.With("component", "probe")

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     config.CheckOrigin,
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !websocket.IsWebSocketUpgrade(r) {
			http.Error(w, "websocket upgrade required", http.StatusBadRequest)
			return
		}

		remote, release := resolve(r)
		if release != nil {
			defer release()
		}
		if remote == nil {
			http.Error(w, "unknown session", http.StatusNotFound)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Warn("websocket upgrade failed", "error", err)
			return
		}
		defer conn.Close()
		conn.SetReadLimit(config.MaxMessageSize)

		readLoop(conn, remote, config.ReadTimeout, logger)
	})
}

// readLoop applies reports until the connection closes or times out.
func readLoop(conn *websocket.Conn, remote *Remote, timeout time.Duration, logger *slog.Logger) {
	for {
		conn.SetReadDeadline(time.Now().Add(timeout))

		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				logger.Error("read error", "error", err)
			}
			return
		}

		rep, err := DecodeReport(msg)
		if err != nil {
			metrics.RecordProbeUpdate("invalid")
			logger.Warn("invalid environment report", "error", err)
			continue
		}

		if rep.VisibilityState != nil {
			metrics.RecordProbeUpdate("visibility")
		}
		if rep.OnLine != nil {
			metrics.RecordProbeUpdate("online")
		}
		remote.Update(rep)
	}
}

// DecodeReport parses a client report and validates its visibility state.
func DecodeReport(msg []byte) (Report, error) {
	var rep Report
	if err := json.Unmarshal(msg, &rep); err != nil {
		return Report{}, reportError(err.Error())
	}
	if rep.VisibilityState != nil {
		switch *rep.VisibilityState {
		case VisibilityUnknown, VisibilityVisible, VisibilityHidden, VisibilityPrerender:
		default:
			return Report{}, reportError("unknown visibility state " + string(*rep.VisibilityState))
		}
	}
	return rep, nil
}
