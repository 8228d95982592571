package lifecycle

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
)

// DebugMode enables hook-order validation: a render that consumes a
// different number of slots than the first render panics in EndRender.
var DebugMode = false

// Scope is a component instance. Scopes form a tree mirroring the component
// tree; unmounting a scope unmounts its children first.
//
// Render-phase methods (BeginRender, Stable, EndRender) are called from the
// owning session's event loop. Mount state and callbacks are safe for
// concurrent use.
type Scope struct {
	id uint64

	// parent is nil for the root scope (typically the session).
	parent *Scope

	children   []*Scope
	childrenMu sync.Mutex

	mountFns   []func()
	unmountFns []func()
	fnsMu      sync.Mutex

	mounted   atomic.Bool
	unmounted atomic.Bool

	// values stores context values for this scope.
	values   map[any]any
	valuesMu sync.RWMutex

	// Hook slot storage for stable identity across renders.
	slots       []any
	slotIdx     int
	renderCount int

	logger *slog.Logger
}

// NewScope creates a scope registered as a child of parent.
// If parent is nil, creates a root scope.
func NewScope(parent *Scope) *Scope {
	s := &Scope{
		id:     NextID(),
		parent: parent,
	}
	if parent != nil {
		s.logger = parent.logger
		parent.addChild(s)
	}
	if s.logger == nil {
		s.logger = slog.Default().With("component", "lifecycle")
	}
	return s
}

// ID returns the unique identifier for this scope.
func (s *Scope) ID() uint64 {
	return s.id
}

// Parent returns the parent scope, or nil for a root scope.
func (s *Scope) Parent() *Scope {
	return s.parent
}

// SetLogger sets the logger used to report panics in lifecycle callbacks.
// Child scopes created afterwards inherit it.
func (s *Scope) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// IsMounted reports whether the scope has mounted and not yet unmounted.
func (s *Scope) IsMounted() bool {
	return s.mounted.Load() && !s.unmounted.Load()
}

// IsUnmounted reports whether Unmount has been called.
func (s *Scope) IsUnmounted() bool {
	return s.unmounted.Load()
}

func (s *Scope) addChild(child *Scope) {
	s.childrenMu.Lock()
	defer s.childrenMu.Unlock()
	s.children = append(s.children, child)
}

func (s *Scope) removeChild(child *Scope) {
	s.childrenMu.Lock()
	defer s.childrenMu.Unlock()

	for i, c := range s.children {
		if c == child {
			s.children = append(s.children[:i], s.children[i+1:]...)
			return
		}
	}
}

func (s *Scope) snapshotChildren() []*Scope {
	s.childrenMu.Lock()
	defer s.childrenMu.Unlock()
	return append([]*Scope(nil), s.children...)
}

// OnMount registers fn to run on Mount. If the scope is already mounted fn
// runs immediately; if it has unmounted, fn is dropped.
func (s *Scope) OnMount(fn func()) {
	if s.unmounted.Load() {
		return
	}
	if s.mounted.Load() {
		s.call("mount", fn)
		return
	}

	s.fnsMu.Lock()
	s.mountFns = append(s.mountFns, fn)
	s.fnsMu.Unlock()
}

// OnUnmount registers fn to run on Unmount. If the scope has already
// unmounted, fn runs immediately.
func (s *Scope) OnUnmount(fn func()) {
	if s.unmounted.Load() {
		s.call("unmount", fn)
		return
	}

	s.fnsMu.Lock()
	s.unmountFns = append(s.unmountFns, fn)
	s.fnsMu.Unlock()
}

// Mount marks the scope and its children as mounted and runs their mount
// callbacks, children first. It is a no-op after the first call and after
// Unmount.
func (s *Scope) Mount() {
	if s.unmounted.Load() {
		return
	}

	for _, child := range s.snapshotChildren() {
		child.Mount()
	}

	if s.mounted.Swap(true) {
		return
	}

	s.fnsMu.Lock()
	fns := s.mountFns
	s.mountFns = nil
	s.fnsMu.Unlock()

	for _, fn := range fns {
		s.call("mount", fn)
	}
}

// Unmount unmounts children in reverse order, then runs this scope's
// unmount callbacks in reverse registration order. After Unmount the scope
// cannot mount again.
func (s *Scope) Unmount() {
	if s.unmounted.Swap(true) {
		return
	}

	if s.parent != nil {
		s.parent.removeChild(s)
	}

	s.childrenMu.Lock()
	children := s.children
	s.children = nil
	s.childrenMu.Unlock()

	for i := len(children) - 1; i >= 0; i-- {
		children[i].Unmount()
	}

	s.fnsMu.Lock()
	fns := s.unmountFns
	s.unmountFns = nil
	s.mountFns = nil
	s.fnsMu.Unlock()

	for i := len(fns) - 1; i >= 0; i-- {
		s.call("unmount", fns[i])
	}
}

// call runs a lifecycle callback, logging instead of propagating a panic so
// one component cannot abort its siblings' cleanup.
func (s *Scope) call(phase string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("lifecycle callback panicked",
				"phase", phase,
				"scope", s.id,
				"panic", r)
		}
	}()
	fn()
}

// =============================================================================
// Render Phase
// =============================================================================

// BeginRender resets the hook slot index. Call it before each render.
func (s *Scope) BeginRender() {
	s.slotIdx = 0
}

// EndRender ends a render. In DebugMode it panics when this render consumed
// a different number of slots than the first one.
func (s *Scope) EndRender() {
	defer func() { s.renderCount++ }()
	if !DebugMode || s.renderCount == 0 {
		return
	}
	if s.slotIdx != len(s.slots) {
		panic(fmt.Sprintf("lifecycle: hook order changed in scope %d: expected %d hooks, got %d",
			s.id, len(s.slots), s.slotIdx))
	}
}

// Stable implements Lifecycle.
func (s *Scope) Stable(init func() any) any {
	idx := s.slotIdx
	s.slotIdx++

	if idx < len(s.slots) {
		return s.slots[idx]
	}
	v := init()
	s.slots = append(s.slots, v)
	return v
}

// =============================================================================
// Context Values
// =============================================================================

// SetValue sets a context value visible to this scope and its descendants.
func (s *Scope) SetValue(key, value any) {
	s.valuesMu.Lock()
	defer s.valuesMu.Unlock()

	if s.values == nil {
		s.values = make(map[any]any)
	}
	s.values[key] = value
}

// Value retrieves a context value from this scope or its nearest ancestor
// that provides it. Returns nil if no scope provides key.
func (s *Scope) Value(key any) any {
	for cur := s; cur != nil; cur = cur.parent {
		cur.valuesMu.RLock()
		val, ok := cur.values[key]
		cur.valuesMu.RUnlock()
		if ok {
			return val
		}
	}
	return nil
}

var _ Lifecycle = (*Scope)(nil)
