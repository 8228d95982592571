// Package metrics exposes Prometheus collectors for the vquery helpers.
//
// Collectors are created by Init. Until then every Record function is a
// no-op, so libraries can record unconditionally and applications decide
// whether to pay for metrics.
//
//	metrics.Init(metrics.WithNamespace("myapp"))
//	http.Handle("/metrics", promhttp.Handler())
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Config configures the collectors.
type Config struct {
	// Namespace is the metrics namespace (default: "vquery").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures the collectors.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "vquery",
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Collector holds the vquery collectors.
type Collector struct {
	Suspensions      prometheus.Counter
	BoundaryErrors   prometheus.Counter
	DroppedCallbacks prometheus.Counter
	ProbeUpdates     *prometheus.CounterVec
	Fingerprints     *prometheus.CounterVec
}

var (
	global   *Collector
	globalMu sync.RWMutex
)

// Init creates and registers the collectors. It is safe to call more than
// once; only the first call registers.
func Init(opts ...Option) *Collector {
	globalMu.Lock()
	defer globalMu.Unlock()

	if global != nil {
		return global
	}
	global = New(opts...)
	return global
}

// New creates collectors registered with the configured registry without
// installing them as the package default. Tests use it with a fresh
// prometheus.NewRegistry().
func New(opts ...Option) *Collector {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Collector{
		Suspensions: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "suspensions_total",
			Help:        "Total number of renders suspended on an in-flight fetch",
			ConstLabels: config.ConstLabels,
		}),

		BoundaryErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "boundary_errors_total",
			Help:        "Total number of query errors raised to an error boundary",
			ConstLabels: config.ConstLabels,
		}),

		DroppedCallbacks: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "dropped_callbacks_total",
			Help:        "Total number of mount-guarded callbacks dropped after unmount",
			ConstLabels: config.ConstLabels,
		}),

		ProbeUpdates: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "probe_updates_total",
			Help:        "Total number of client environment reports by kind",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		Fingerprints: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "fingerprints_total",
			Help:        "Total number of query key fingerprints by result",
			ConstLabels: config.ConstLabels,
		}, []string{"result"}),
	}
}

// Get returns the package default collector, or nil before Init.
func Get() *Collector {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return global
}

// SetDefault installs c as the package default. Passing nil disables
// recording.
func SetDefault(c *Collector) {
	globalMu.Lock()
	global = c
	globalMu.Unlock()
}

// =============================================================================
// Recording Functions
// =============================================================================

// RecordSuspension records a render suspended on a fetch.
func RecordSuspension() {
	if c := Get(); c != nil {
		c.Suspensions.Inc()
	}
}

// RecordBoundaryError records a query error raised to an error boundary.
func RecordBoundaryError() {
	if c := Get(); c != nil {
		c.BoundaryErrors.Inc()
	}
}

// RecordDroppedCallback records a mount-guarded callback invoked after unmount.
func RecordDroppedCallback() {
	if c := Get(); c != nil {
		c.DroppedCallbacks.Inc()
	}
}

// RecordProbeUpdate records a client environment report.
// kind is "visibility", "online", or "invalid".
func RecordProbeUpdate(kind string) {
	if c := Get(); c != nil {
		c.ProbeUpdates.WithLabelValues(kind).Inc()
	}
}

// RecordFingerprint records a fingerprint computation.
// result is "ok" or "error".
func RecordFingerprint(result string) {
	if c := Get(); c != nil {
		c.Fingerprints.WithLabelValues(result).Inc()
	}
}
