package query

import (
	"context"
	"time"
)

// QueryFunc fetches the data for key.
type QueryFunc func(ctx context.Context, key any) (any, error)

// Config configures a query. Optional scalars are pointers so that layered
// defaults can tell an unset field from an explicit false or zero; use Bool,
// Int and Duration to fill them.
type Config struct {
	QueryFn QueryFunc

	Enabled          *bool
	Suspense         *bool
	UseErrorBoundary *bool

	Retry      *int
	RetryDelay *time.Duration

	StaleTime *time.Duration
	CacheTime *time.Duration

	RefetchOnWindowFocus *bool
	RefetchOnReconnect   *bool
	RefetchInterval      *time.Duration

	InitialData any

	OnSuccess func(data any)
	OnError   func(err error)
}

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// Duration returns a pointer to v.
func Duration(v time.Duration) *time.Duration { return &v }

// Defaults applied when no layer sets a field.
const (
	DefaultRetry      = 3
	DefaultCacheTime  = 5 * time.Minute
	DefaultRetryDelay = time.Second
)

// IsEnabled reports whether the query should fetch. Defaults to true.
func (c Config) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// IsSuspense reports whether the query suspends rendering while pending.
func (c Config) IsSuspense() bool {
	return c.Suspense != nil && *c.Suspense
}

// IsUseErrorBoundary reports whether errors surface to an error boundary.
func (c Config) IsUseErrorBoundary() bool {
	return c.UseErrorBoundary != nil && *c.UseErrorBoundary
}

// RetryCount returns the configured retry count, DefaultRetry when unset.
func (c Config) RetryCount() int {
	if c.Retry == nil {
		return DefaultRetry
	}
	return *c.Retry
}

// RetryDelayOr returns the retry delay, DefaultRetryDelay when unset.
func (c Config) RetryDelayOr() time.Duration {
	if c.RetryDelay == nil {
		return DefaultRetryDelay
	}
	return *c.RetryDelay
}

// StaleDuration returns how long fetched data stays fresh. Defaults to 0.
func (c Config) StaleDuration() time.Duration {
	if c.StaleTime == nil {
		return 0
	}
	return *c.StaleTime
}

// CacheDuration returns how long unused data is kept, DefaultCacheTime when unset.
func (c Config) CacheDuration() time.Duration {
	if c.CacheTime == nil {
		return DefaultCacheTime
	}
	return *c.CacheTime
}

// ShouldRefetchOnWindowFocus defaults to true.
func (c Config) ShouldRefetchOnWindowFocus() bool {
	return c.RefetchOnWindowFocus == nil || *c.RefetchOnWindowFocus
}

// ShouldRefetchOnReconnect defaults to true.
func (c Config) ShouldRefetchOnReconnect() bool {
	return c.RefetchOnReconnect == nil || *c.RefetchOnReconnect
}

// Merge layers configs left to right. A field set in a later layer replaces
// the value from earlier layers; unset fields fall through.
func Merge(layers ...Config) Config {
	var out Config
	for _, l := range layers {
		if l.QueryFn != nil {
			out.QueryFn = l.QueryFn
		}
		if l.Enabled != nil {
			out.Enabled = l.Enabled
		}
		if l.Suspense != nil {
			out.Suspense = l.Suspense
		}
		if l.UseErrorBoundary != nil {
			out.UseErrorBoundary = l.UseErrorBoundary
		}
		if l.Retry != nil {
			out.Retry = l.Retry
		}
		if l.RetryDelay != nil {
			out.RetryDelay = l.RetryDelay
		}
		if l.StaleTime != nil {
			out.StaleTime = l.StaleTime
		}
		if l.CacheTime != nil {
			out.CacheTime = l.CacheTime
		}
		if l.RefetchOnWindowFocus != nil {
			out.RefetchOnWindowFocus = l.RefetchOnWindowFocus
		}
		if l.RefetchOnReconnect != nil {
			out.RefetchOnReconnect = l.RefetchOnReconnect
		}
		if l.RefetchInterval != nil {
			out.RefetchInterval = l.RefetchInterval
		}
		if l.InitialData != nil {
			out.InitialData = l.InitialData
		}
		if l.OnSuccess != nil {
			out.OnSuccess = l.OnSuccess
		}
		if l.OnError != nil {
			out.OnError = l.OnError
		}
	}
	return out
}
