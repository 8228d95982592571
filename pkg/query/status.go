package query

import "errors"

// Status is the label of a query's fetch state. The state machine that moves
// between them lives in the query engine.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusError   Status = "error"
	StatusSuccess Status = "success"
)

// String returns the label.
func (s Status) String() string {
	return string(s)
}

// ErrCancelled is returned by fetches that were cancelled rather than
// failed. Consumers test for it with errors.Is and do not surface it.
var ErrCancelled = errors.New("vquery: query cancelled")

// IsCancelled reports whether err is or wraps ErrCancelled.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}
