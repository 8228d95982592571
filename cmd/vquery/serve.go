package main

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/vango-dev/vquery/internal/config"
	"github.com/vango-dev/vquery/pkg/metrics"
	"github.com/vango-dev/vquery/pkg/probe"
	"github.com/vango-dev/vquery/pkg/query"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	var (
		configPath string
		addr       string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the environment report endpoint",
		Long: `Start an HTTP server that accepts visibility and connectivity
reports from browsers over WebSocket.

Routes:
  GET /probe?session=<id>   WebSocket report stream
  GET /sessions/{id}        Current state of a connected session
  GET /defaults             Effective query and mutation defaults
  GET /metrics              Prometheus metrics
  GET /healthz              Liveness

The config file is vquery.json, vquery.yaml, vquery.yml or vquery.toml
in the working directory unless --config is given.

Examples:
  vquery serve
  vquery serve --addr=:9000 --config=deploy/vquery.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

			return runServe(cmd.Context(), cfg, logger)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file (default: vquery.{json,yaml,yml,toml})")
	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from config, then :8080)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log at debug level")

	return cmd
}

func loadConfig(path string) (*config.File, error) {
	if path == "" {
		path = config.Find(".")
	}
	if path == "" {
		return config.New(), nil
	}
	return config.Load(path)
}

func runServe(ctx context.Context, cfg *config.File, logger *slog.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	metrics.Init(metrics.WithRegistry(registry))
	query.SetLogger(logger.With("component", "query"))

	router, err := newRouter(cfg, newSessions(), registry, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Server.Addr, "probe", cfg.Server.ProbePath, "config", cfg.Path())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newRouter(cfg *config.File, sessions *sessions, gatherer prometheus.Gatherer, logger *slog.Logger) (http.Handler, error) {
	defaults, err := cfg.ConfigContext()
	if err != nil {
		return nil, err
	}
	readTimeout, err := cfg.Server.ReadTimeoutDuration()
	if err != nil {
		return nil, err
	}

	opts := []probe.HandlerOption{
		probe.WithReadTimeout(readTimeout),
		probe.WithLogger(logger.With("component", "probe")),
	}
	if origins := cfg.Server.AllowedOrigins; len(origins) > 0 {
		opts = append(opts, probe.WithCheckOrigin(func(r *http.Request) bool {
			return slices.Contains(origins, r.Header.Get("Origin"))
		}))
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	r.Handle(cfg.Server.ProbePath, probe.Handler(func(r *http.Request) (*probe.Remote, func()) {
		return sessions.acquire(r.URL.Query().Get("session"))
	}, opts...))

	r.Get("/sessions/{id}", func(w http.ResponseWriter, r *http.Request) {
		remote := sessions.get(chi.URLParam(r, "id"))
		if remote == nil {
			http.Error(w, "unknown session", http.StatusNotFound)
			return
		}
		writeJSON(w, sessionView(remote))
	})

	r.Get("/defaults", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]configView{
			"queries":   viewOf(defaults.QueryConfig(query.Config{})),
			"mutations": viewOf(defaults.MutationConfig(query.Config{})),
		})
	})

	return r, nil
}

// requestLogger logs each finished request at debug level.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}

// sessions holds one Remote per browser session id while at least one
// connection reports into it.
type sessions struct {
	mu      sync.Mutex
	entries map[string]*sessionEntry
}

type sessionEntry struct {
	remote *probe.Remote
	refs   int
}

func newSessions() *sessions {
	return &sessions{entries: make(map[string]*sessionEntry)}
}

// acquire returns the Remote for id, creating it on first use, and a
// release func that drops it once the last holder is done.
// An empty id yields a nil Remote.
func (s *sessions) acquire(id string) (*probe.Remote, func()) {
	if id == "" {
		return nil, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		e = &sessionEntry{remote: probe.NewRemote()}
		s.entries[id] = e
	}
	e.refs++

	var once sync.Once
	return e.remote, func() {
		once.Do(func() { s.release(id, e) })
	}
}

func (s *sessions) release(id string, e *sessionEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e.refs--
	if e.refs == 0 && s.entries[id] == e {
		delete(s.entries, id)
	}
}

func (s *sessions) get(id string) *probe.Remote {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[id]; ok {
		return e.remote
	}
	return nil
}

func (s *sessions) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

type sessionState struct {
	VisibilityState string `json:"visibilityState"`
	OnLine          *bool  `json:"onLine"`
	Visible         bool   `json:"visible"`
	Online          bool   `json:"online"`
}

func sessionView(r *probe.Remote) sessionState {
	st := r.State()
	out := sessionState{
		VisibilityState: string(r.VisibilityState()),
		Visible:         st.Visible,
		Online:          st.Online,
	}
	if online, known := r.OnLine(); known {
		out.OnLine = &online
	}
	return out
}

type configView struct {
	Enabled              bool   `json:"enabled"`
	Suspense             bool   `json:"suspense"`
	UseErrorBoundary     bool   `json:"useErrorBoundary"`
	Retry                int    `json:"retry"`
	RetryDelay           string `json:"retryDelay"`
	StaleTime            string `json:"staleTime"`
	CacheTime            string `json:"cacheTime"`
	RefetchOnWindowFocus bool   `json:"refetchOnWindowFocus"`
	RefetchOnReconnect   bool   `json:"refetchOnReconnect"`
	RefetchInterval      string `json:"refetchInterval,omitempty"`
}

func viewOf(c query.Config) configView {
	v := configView{
		Enabled:              c.IsEnabled(),
		Suspense:             c.IsSuspense(),
		UseErrorBoundary:     c.IsUseErrorBoundary(),
		Retry:                c.RetryCount(),
		RetryDelay:           c.RetryDelayOr().String(),
		StaleTime:            c.StaleDuration().String(),
		CacheTime:            c.CacheDuration().String(),
		RefetchOnWindowFocus: c.ShouldRefetchOnWindowFocus(),
		RefetchOnReconnect:   c.ShouldRefetchOnReconnect(),
	}
	if c.RefetchInterval != nil {
		v.RefetchInterval = c.RefetchInterval.String()
	}
	return v
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, fmt.Sprintf("encode: %v", err), http.StatusInternalServerError)
	}
}
