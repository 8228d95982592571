// Package vquery provides the public API for the query helpers.
//
// This is the recommended import for most applications:
//
//	import "github.com/vango-dev/vquery"
//
// Usage:
//
//	scope := vquery.NewScope(nil)
//	(&vquery.ConfigContext{Queries: vquery.Config{Retry: vquery.Int(1)}}).Provide(scope)
//
//	key, cfg, _ := vquery.UseArgs(scope, []any{"todos", 1}, fetchTodos)
//	fp := vquery.MustStringify(key)
package vquery

import (
	"context"

	"github.com/vango-dev/vquery/pkg/equal"
	"github.com/vango-dev/vquery/pkg/lifecycle"
	"github.com/vango-dev/vquery/pkg/probe"
	"github.com/vango-dev/vquery/pkg/query"
	"github.com/vango-dev/vquery/pkg/stable"
	"github.com/vango-dev/vquery/pkg/suspense"
)

// =============================================================================
// Query Config
// =============================================================================

// Status is the lifecycle state of a query.
type Status = query.Status

const (
	StatusIdle    = query.StatusIdle
	StatusLoading = query.StatusLoading
	StatusError   = query.StatusError
	StatusSuccess = query.StatusSuccess
)

// ErrCancelled marks a fetch abandoned on purpose. Boundaries ignore it.
var ErrCancelled = query.ErrCancelled

type (
	// QueryFunc fetches the data for a key.
	QueryFunc = query.QueryFunc

	// Config is a layer of query options. Nil fields are unset.
	Config = query.Config

	// Options is the single-object call form.
	Options = query.Options

	// ConfigContext carries defaults shared by a subtree.
	ConfigContext = query.ConfigContext

	// Sink receives query-layer diagnostics.
	Sink = query.Sink
)

// Bool, Int and Duration return pointers for Config fields.
var (
	Bool     = query.Bool
	Int      = query.Int
	Duration = query.Duration
)

// NormalizeArgs resolves the flexible call forms into key, config and rest.
func NormalizeArgs(args ...any) (key any, cfg Config, rest []any) {
	return query.NormalizeArgs(args...)
}

// UseArgs is NormalizeArgs with the scope's ConfigContext merged under the
// call-site config.
func UseArgs(scope *Scope, args ...any) (key any, cfg Config, rest []any) {
	return query.UseArgs(scope, args...)
}

// ConfigFrom returns the nearest ConfigContext on scope's ancestry.
func ConfigFrom(scope *Scope) *ConfigContext {
	return query.ConfigFrom(scope)
}

// SetLogger replaces the process default Sink. Nil restores the default.
func SetLogger(s Sink) {
	query.SetLogger(s)
}

// Update returns updater applied to old when it is a func(T) T, or
// updater itself when it is a T.
//
//	next := vquery.Update(func(n int) int { return n + 1 }, 1) // 2
//	same := vquery.Update(5, 1)                                 // 5
func Update[T any](updater any, old T) T {
	return query.Update(updater, old)
}

// =============================================================================
// Keys and Equality
// =============================================================================

// Stringify returns the canonical JSON form of v.
func Stringify(v any) (string, error) {
	return stable.Stringify(v)
}

// MustStringify is like Stringify but panics on error.
func MustStringify(v any) string {
	return stable.MustStringify(v)
}

// Fingerprint returns the cache key form of a query key.
func Fingerprint(key any) (string, error) {
	return stable.Fingerprint(key)
}

// DeepEqual reports whether a and b are structurally equal.
func DeepEqual(a, b any) bool {
	return equal.DeepEqual(a, b)
}

// DeepIncludes reports whether every member present in b is included in a.
func DeepIncludes(a, b any) bool {
	return equal.DeepIncludes(a, b)
}

// =============================================================================
// Environment
// =============================================================================

type (
	// Document reports page visibility.
	Document = probe.Document

	// Navigator reports connectivity.
	Navigator = probe.Navigator

	// Remote is an environment fed by browser reports.
	Remote = probe.Remote
)

// NewRemote returns a Remote with nothing reported yet.
func NewRemote() *Remote {
	return probe.NewRemote()
}

// IsDocumentVisible reports whether the page counts as visible.
func IsDocumentVisible(doc Document) bool {
	return probe.IsDocumentVisible(doc)
}

// IsOnline reports whether the client counts as online.
func IsOnline(nav Navigator) bool {
	return probe.IsOnline(nav)
}

// =============================================================================
// Lifecycle
// =============================================================================

type (
	// Lifecycle is the component lifecycle hooks attach to.
	Lifecycle = lifecycle.Lifecycle

	// Scope is the standard Lifecycle.
	Scope = lifecycle.Scope
)

// NewScope creates a scope under parent (nil for a root).
func NewScope(parent *Scope) *Scope {
	return lifecycle.NewScope(parent)
}

// UseUID returns an id stable for the component's lifetime.
func UseUID(l Lifecycle) uint64 {
	return lifecycle.UseUID(l)
}

// UseLatest returns a getter that always yields the value of the latest render.
func UseLatest[T any](l Lifecycle, v T) func() T {
	return lifecycle.UseLatest(l, v)
}

// UseMountedCallback wraps fn so calls after unmount are dropped.
func UseMountedCallback[T, R any](l Lifecycle, fn func(T) R) func(T) R {
	return lifecycle.UseMountedCallback(l, fn)
}

// =============================================================================
// Suspense
// =============================================================================

type (
	// SuspenseInfo is what a render hands to HandleSuspense.
	SuspenseInfo = suspense.Info

	// BoundaryError carries a query error to the nearest error boundary.
	BoundaryError = suspense.BoundaryError

	// SuspendError asks the nearest boundary to wait for a fetch.
	SuspendError = suspense.SuspendError
)

// HandleSuspense decides whether a render errors, suspends, or proceeds.
func HandleSuspense(ctx context.Context, info SuspenseInfo) error {
	return suspense.Handle(ctx, info)
}
