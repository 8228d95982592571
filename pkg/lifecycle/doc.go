// Package lifecycle provides component-lifecycle primitives and the helpers
// built on them.
//
// Lifecycle is the seam between these helpers and a UI runtime. A runtime
// binding implements it once; the helpers (UseUID, UseLatest,
// UseMountedCallback) stay framework-agnostic. Scope is a complete
// implementation for runtimes that do not already have one, and for tests.
//
// Helpers are hook-like: they consume one slot per call, so they MUST be
// called unconditionally and in the same order on every render.
//
//	scope := lifecycle.NewScope(parent)
//	scope.BeginRender()
//	id := lifecycle.UseUID(scope)
//	setData := lifecycle.UseMountedCallback(scope, func(v string) struct{} {
//	    data.Set(v)
//	    return struct{}{}
//	})
//	scope.EndRender()
//	scope.Mount()
package lifecycle
