package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/vango-dev/vquery/internal/errors"
	"github.com/vango-dev/vquery/pkg/query"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultAddr is the default listen address for `vquery serve`.
	DefaultAddr = ":8080"

	// DefaultProbePath is the default environment report endpoint.
	DefaultProbePath = "/probe"

	// DefaultReadTimeout is the default wait for the next client report.
	DefaultReadTimeout = 60 * time.Second
)

// FileNames are the names Find looks for, in order.
var FileNames = []string{"vquery.json", "vquery.yaml", "vquery.yml", "vquery.toml"}

// File is the on-disk schema.
type File struct {
	Shared    Layer        `json:"shared,omitempty" yaml:"shared,omitempty" toml:"shared,omitempty"`
	Queries   Layer        `json:"queries,omitempty" yaml:"queries,omitempty" toml:"queries,omitempty"`
	Mutations Layer        `json:"mutations,omitempty" yaml:"mutations,omitempty" toml:"mutations,omitempty"`
	Server    ServerConfig `json:"server,omitempty" yaml:"server,omitempty" toml:"server,omitempty"`

	// path stores where the file was loaded from.
	path string
}

// Layer is one layer of query defaults. Unset fields fall through to the
// next layer.
type Layer struct {
	Enabled              *bool   `json:"enabled,omitempty" yaml:"enabled,omitempty" toml:"enabled,omitempty"`
	Suspense             *bool   `json:"suspense,omitempty" yaml:"suspense,omitempty" toml:"suspense,omitempty"`
	UseErrorBoundary     *bool   `json:"useErrorBoundary,omitempty" yaml:"useErrorBoundary,omitempty" toml:"useErrorBoundary,omitempty"`
	Retry                *int    `json:"retry,omitempty" yaml:"retry,omitempty" toml:"retry,omitempty"`
	RetryDelay           *string `json:"retryDelay,omitempty" yaml:"retryDelay,omitempty" toml:"retryDelay,omitempty"`
	StaleTime            *string `json:"staleTime,omitempty" yaml:"staleTime,omitempty" toml:"staleTime,omitempty"`
	CacheTime            *string `json:"cacheTime,omitempty" yaml:"cacheTime,omitempty" toml:"cacheTime,omitempty"`
	RefetchOnWindowFocus *bool   `json:"refetchOnWindowFocus,omitempty" yaml:"refetchOnWindowFocus,omitempty" toml:"refetchOnWindowFocus,omitempty"`
	RefetchOnReconnect   *bool   `json:"refetchOnReconnect,omitempty" yaml:"refetchOnReconnect,omitempty" toml:"refetchOnReconnect,omitempty"`
	RefetchInterval      *string `json:"refetchInterval,omitempty" yaml:"refetchInterval,omitempty" toml:"refetchInterval,omitempty"`
}

// ServerConfig configures `vquery serve`.
type ServerConfig struct {
	// Addr is the listen address.
	Addr string `json:"addr,omitempty" yaml:"addr,omitempty" toml:"addr,omitempty"`

	// ProbePath is the environment report WebSocket path.
	ProbePath string `json:"probePath,omitempty" yaml:"probePath,omitempty" toml:"probePath,omitempty"`

	// ReadTimeout is the wait for the next client report (e.g. "60s").
	ReadTimeout string `json:"readTimeout,omitempty" yaml:"readTimeout,omitempty" toml:"readTimeout,omitempty"`

	// AllowedOrigins lists origins allowed to open the probe socket.
	// Empty means same-origin only.
	AllowedOrigins []string `json:"allowedOrigins,omitempty" yaml:"allowedOrigins,omitempty" toml:"allowedOrigins,omitempty"`
}

// New returns a File with defaults applied.
func New() *File {
	f := &File{}
	f.applyDefaults()
	return f
}

// Load reads and parses the file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("E201").WithDetail(path).Wrap(err)
	}

	f := &File{}
	if err := Parse(data, filepath.Ext(path), f); err != nil {
		return nil, err
	}

	f.path = path
	f.applyDefaults()
	if _, err := f.ConfigContext(); err != nil {
		return nil, err
	}
	if _, err := f.Server.ReadTimeoutDuration(); err != nil {
		return nil, err
	}
	return f, nil
}

// Parse decodes data into f using the format named by ext
// (".json", ".yaml", ".yml" or ".toml").
func Parse(data []byte, ext string, f *File) error {
	var err error
	switch strings.ToLower(ext) {
	case ".json":
		err = json.Unmarshal(data, f)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, f)
	case ".toml":
		err = toml.Unmarshal(data, f)
	default:
		return errors.New("E203").WithDetail(ext)
	}
	if err != nil {
		return errors.New("E202").Wrap(err)
	}
	return nil
}

// Find returns the first config file present in dir, or "" if none.
func Find(dir string) string {
	for _, name := range FileNames {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// Path returns the path the file was loaded from.
func (f *File) Path() string {
	return f.path
}

func (f *File) applyDefaults() {
	if f.Server.Addr == "" {
		f.Server.Addr = DefaultAddr
	}
	if f.Server.ProbePath == "" {
		f.Server.ProbePath = DefaultProbePath
	}
}

// ConfigContext converts the query layers into a query.ConfigContext.
func (f *File) ConfigContext() (*query.ConfigContext, error) {
	shared, err := f.Shared.Config("shared")
	if err != nil {
		return nil, err
	}
	queries, err := f.Queries.Config("queries")
	if err != nil {
		return nil, err
	}
	mutations, err := f.Mutations.Config("mutations")
	if err != nil {
		return nil, err
	}
	return &query.ConfigContext{
		Shared:    shared,
		Queries:   queries,
		Mutations: mutations,
	}, nil
}

// Config converts the layer into a query.Config. name prefixes errors.
func (l Layer) Config(name string) (query.Config, error) {
	cfg := query.Config{
		Enabled:              l.Enabled,
		Suspense:             l.Suspense,
		UseErrorBoundary:     l.UseErrorBoundary,
		Retry:                l.Retry,
		RefetchOnWindowFocus: l.RefetchOnWindowFocus,
		RefetchOnReconnect:   l.RefetchOnReconnect,
	}

	durations := []struct {
		field string
		in    *string
		out   **time.Duration
	}{
		{"retryDelay", l.RetryDelay, &cfg.RetryDelay},
		{"staleTime", l.StaleTime, &cfg.StaleTime},
		{"cacheTime", l.CacheTime, &cfg.CacheTime},
		{"refetchInterval", l.RefetchInterval, &cfg.RefetchInterval},
	}
	for _, d := range durations {
		if d.in == nil {
			continue
		}
		v, err := time.ParseDuration(*d.in)
		if err != nil {
			return query.Config{}, errors.New("E202").
				WithDetailf("%s.%s: %q is not a duration", name, d.field, *d.in).
				Wrap(err)
		}
		*d.out = query.Duration(v)
	}
	return cfg, nil
}

// ReadTimeoutDuration parses ReadTimeout, DefaultReadTimeout when empty.
func (s ServerConfig) ReadTimeoutDuration() (time.Duration, error) {
	if s.ReadTimeout == "" {
		return DefaultReadTimeout, nil
	}
	d, err := time.ParseDuration(s.ReadTimeout)
	if err != nil {
		return 0, errors.New("E202").
			WithDetailf("server.readTimeout: %q is not a duration", s.ReadTimeout).
			Wrap(err)
	}
	return d, nil
}
