package suspense

import (
	"context"

	"github.com/vango-dev/vquery/pkg/metrics"
	"github.com/vango-dev/vquery/pkg/query"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/vango-dev/vquery/pkg/suspense"

// State is the part of a query's state suspense depends on.
type State struct {
	Status query.Status

	// ThrowInErrorBoundary is set by the engine when a failed fetch should
	// surface to the nearest error boundary.
	ThrowInErrorBoundary bool
}

// Query is the view of an engine-owned query that Handle needs.
type Query interface {
	Config() query.Config
	State() State

	// MarkSuspended records that a render suspended on this query.
	MarkSuspended()

	// Fetch starts (or joins) a fetch and returns its result.
	Fetch(ctx context.Context) *Future[any]
}

// Info is one render's view of a query.
type Info struct {
	Query  Query
	Status query.Status
	Error  error
}

// BoundaryError carries a query error to an error boundary.
type BoundaryError struct {
	Err error
}

func (e *BoundaryError) Error() string {
	if e.Err == nil {
		return "vquery: query failed"
	}
	return "vquery: query failed: " + e.Err.Error()
}

func (e *BoundaryError) Unwrap() error {
	return e.Err
}

// SuspendError tells the runtime to stop rendering until Pending settles.
type SuspendError struct {
	Pending *Future[any]
}

func (e *SuspendError) Error() string {
	return "vquery: render suspended on pending fetch"
}

// Wait blocks until the pending fetch settles or ctx is done. It returns
// the fetch error, if any.
func (e *SuspendError) Wait(ctx context.Context) error {
	if e.Pending == nil {
		return nil
	}
	_, err := e.Pending.Wait(ctx)
	return err
}

// Handle decides whether a render may proceed.
//
// Queries configured for neither suspense nor an error boundary always
// proceed. A query in the error state flagged for the boundary yields a
// *BoundaryError wrapping info.Error. A suspense query whose render status
// is not yet success is marked suspended, a fetch is started, and a
// *SuspendError carrying that fetch is returned. Otherwise Handle returns nil.
func Handle(ctx context.Context, info Info) error {
	if info.Query == nil {
		return nil
	}
	cfg := info.Query.Config()
	if !cfg.IsSuspense() && !cfg.IsUseErrorBoundary() {
		return nil
	}

	state := info.Query.State()
	if state.Status == query.StatusError && state.ThrowInErrorBoundary {
		metrics.RecordBoundaryError()
		return &BoundaryError{Err: info.Error}
	}

	if cfg.IsSuspense() && info.Status != query.StatusSuccess {
		info.Query.MarkSuspended()
		metrics.RecordSuspension()
		return &SuspendError{Pending: suspend(ctx, info)}
	}

	return nil
}

// suspend starts the fetch under a span that ends when the fetch settles.
func suspend(ctx context.Context, info Info) *Future[any] {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "vquery.suspend",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String("vquery.status", info.Status.String())),
	)

	f := info.Query.Fetch(ctx)
	if f == nil {
		span.End()
		return ResolvedFuture[any](nil)
	}

	go func() {
		defer span.End()
		<-f.Done()
		if _, err := f.Result(); err != nil {
			span.RecordError(err)
			if query.IsCancelled(err) {
				span.SetStatus(codes.Unset, "cancelled")
			} else {
				span.SetStatus(codes.Error, err.Error())
			}
		}
	}()
	return f
}
