package query

import "github.com/vango-dev/vquery/pkg/lifecycle"

// ConfigContext carries the defaults a subtree of components shares.
// Layers are merged Shared, then Queries (or Mutations), then call site.
type ConfigContext struct {
	Shared    Config
	Queries   Config
	Mutations Config

	// Logger receives query-layer diagnostics. Nil means the process
	// default returned by Logger().
	Logger Sink
}

type configContextKey struct{}

// Provide makes c visible to scope and its descendants.
func (c *ConfigContext) Provide(scope *lifecycle.Scope) {
	scope.SetValue(configContextKey{}, c)
}

// ConfigFrom returns the nearest ConfigContext provided on scope's ancestry,
// or an empty one.
func ConfigFrom(scope *lifecycle.Scope) *ConfigContext {
	if scope != nil {
		if c, ok := scope.Value(configContextKey{}).(*ConfigContext); ok && c != nil {
			return c
		}
	}
	return &ConfigContext{}
}

// Sink returns the context's logger, falling back to the process default.
func (c *ConfigContext) Sink() Sink {
	if c != nil && c.Logger != nil {
		return c.Logger
	}
	return Logger()
}

// QueryConfig merges the query defaults under call.
func (c *ConfigContext) QueryConfig(call Config) Config {
	return Merge(c.Shared, c.Queries, call)
}

// MutationConfig merges the mutation defaults under call.
func (c *ConfigContext) MutationConfig(call Config) Config {
	return Merge(c.Shared, c.Mutations, call)
}
