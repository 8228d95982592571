package probe

import (
	"sync"
)

// Report is the environment a client sends. Nil fields are left unchanged.
type Report struct {
	VisibilityState *VisibilityState `json:"visibilityState,omitempty"`
	OnLine          *bool            `json:"onLine,omitempty"`
}

// State is a snapshot of a Remote.
type State struct {
	Visible bool
	Online  bool
}

// Remote is the client-reported environment of one session. It implements
// Document and Navigator. Safe for concurrent use.
type Remote struct {
	mu         sync.RWMutex
	visibility VisibilityState
	online     bool
	onlineSet  bool

	listenersMu sync.Mutex
	listeners   map[uint64]func(State)
	nextID      uint64

	// notifyMu is taken before mu is released so listeners see changes in
	// the order they were applied.
	notifyMu sync.Mutex
}

// NewRemote creates a Remote with nothing reported yet.
func NewRemote() *Remote {
	return &Remote{listeners: make(map[uint64]func(State))}
}

// VisibilityState implements Document.
func (r *Remote) VisibilityState() VisibilityState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.visibility
}

// OnLine implements Navigator.
func (r *Remote) OnLine() (online, known bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.online, r.onlineSet
}

// State returns the current snapshot.
func (r *Remote) State() State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.stateLocked()
}

func (r *Remote) stateLocked() State {
	return State{
		Visible: IsDocumentVisible(fixedDocument(r.visibility)),
		Online:  !r.onlineSet || r.online,
	}
}

type fixedDocument VisibilityState

func (d fixedDocument) VisibilityState() VisibilityState { return VisibilityState(d) }

// Update applies a report. Listeners are called with the new state when the
// visible/online answer changed, one change at a time and in the order the
// changes were applied. A listener must not call Update on the same Remote.
func (r *Remote) Update(rep Report) {
	r.mu.Lock()
	before := r.stateLocked()
	if rep.VisibilityState != nil {
		r.visibility = *rep.VisibilityState
	}
	if rep.OnLine != nil {
		r.online = *rep.OnLine
		r.onlineSet = true
	}
	after := r.stateLocked()

	if after == before {
		r.mu.Unlock()
		return
	}
	r.notifyMu.Lock()
	r.mu.Unlock()
	defer r.notifyMu.Unlock()

	r.notify(after)
}

// Subscribe registers fn to be called on every change. The returned func
// removes it.
func (r *Remote) Subscribe(fn func(State)) (unsubscribe func()) {
	r.listenersMu.Lock()
	r.nextID++
	id := r.nextID
	r.listeners[id] = fn
	r.listenersMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			r.listenersMu.Lock()
			delete(r.listeners, id)
			r.listenersMu.Unlock()
		})
	}
}

func (r *Remote) notify(s State) {
	r.listenersMu.Lock()
	fns := make([]func(State), 0, len(r.listeners))
	for _, fn := range r.listeners {
		fns = append(fns, fn)
	}
	r.listenersMu.Unlock()

	for _, fn := range fns {
		fn(s)
	}
}

var (
	_ Document  = (*Remote)(nil)
	_ Navigator = (*Remote)(nil)
)
