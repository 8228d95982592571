// Package probe answers two environment questions a query layer asks before
// refetching: is the page visible, and is the client online.
//
// Both probes fail open. When no API is available, or it reports an
// unknown state, the page counts as visible and the client as online, so a
// missing signal never blocks fetching.
//
// In a server-driven runtime the answers come from the client over the live
// connection; Remote holds them for one session and Handler feeds it.
package probe

// VisibilityState mirrors the document visibility states a client reports.
// The empty value means the client did not report one.
type VisibilityState string

const (
	VisibilityUnknown   VisibilityState = ""
	VisibilityVisible   VisibilityState = "visible"
	VisibilityHidden    VisibilityState = "hidden"
	VisibilityPrerender VisibilityState = "prerender"
)

// Document reports page visibility.
type Document interface {
	VisibilityState() VisibilityState
}

// Navigator reports connectivity. known is false when the client has no
// connectivity API.
type Navigator interface {
	OnLine() (online, known bool)
}

// IsDocumentVisible reports whether the page should be treated as visible.
// A nil doc, an unknown state, and prerender all count as visible.
func IsDocumentVisible(doc Document) bool {
	if doc == nil {
		return true
	}
	switch doc.VisibilityState() {
	case VisibilityUnknown, VisibilityVisible, VisibilityPrerender:
		return true
	}
	return false
}

// IsOnline reports whether the client should be treated as online.
// A nil nav and an unknown state count as online.
func IsOnline(nav Navigator) bool {
	if nav == nil {
		return true
	}
	online, known := nav.OnLine()
	return !known || online
}
