package worker

import (
	"context"
	"time"

	"github.com/joeycumines/izerolog"
	"github.com/joeycumines/logiface"

	"github.com/esrlabs/sindri/jobs"
)

// DefaultIdleBackoff is how long Run waits for the doorbell before
// re-scanning, when its request source is empty or its response sink is at
// capacity.
const DefaultIdleBackoff = 2 * time.Millisecond

// Logger is the structured logger type accepted by WithLogger.
type Logger = logiface.Logger[*izerolog.Event]

// Handler answers req, producing the Response that will be forwarded back
// to the originating client. A Handler must never panic on a malformed or
// unsupported request; it should answer with jobs.NewErrorResponse(req,
// err) instead.
type Handler func(ctx context.Context, req jobs.Request) jobs.Response

// Worker drains a jobs.RequestSource through a Handler into a
// jobs.ResponseSink. The zero value is not usable; construct with New.
type Worker struct {
	source  jobs.RequestSource
	sink    jobs.ResponseSink
	handler Handler

	idleBackoff time.Duration
	logger      *Logger
	doorbell    chan struct{}
}

// Option configures a Worker.
type Option func(*Worker)

// WithIdleBackoff overrides DefaultIdleBackoff.
func WithIdleBackoff(d time.Duration) Option {
	return func(w *Worker) { w.idleBackoff = d }
}

// WithLogger attaches a structured logger for routine and error records.
func WithLogger(logger *Logger) Option {
	return func(w *Worker) { w.logger = logger }
}

// New constructs a Worker. It panics if handler is nil, matching the
// construction-time-panic convention used for misconfiguration elsewhere in
// this module.
func New(source jobs.RequestSource, sink jobs.ResponseSink, handler Handler, opts ...Option) *Worker {
	if handler == nil {
		panic("worker: nil handler")
	}
	w := &Worker{
		source:      source,
		sink:        sink,
		handler:     handler,
		idleBackoff: DefaultIdleBackoff,
		doorbell:    make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Notify wakes an idle Run early. Wire it to the request source's
// queue.WithNotify so a request arriving during a backoff wait is picked up
// immediately rather than waiting out the full idleBackoff. Safe to call
// from any goroutine.
func (w *Worker) Notify() {
	select {
	case w.doorbell <- struct{}{}:
	default:
	}
}

// Run drives the worker until ctx is cancelled. Each iteration handles at
// most one request: peek, confirm the response sink has capacity, pop,
// handle, push. A request is never popped before its response has
// somewhere to go.
func (w *Worker) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		req, ok := w.source.PeekRequest()
		if !ok || !w.sink.PollAcceptCapacity() {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-w.doorbell:
			case <-time.After(w.idleBackoff):
			}
			continue
		}

		req, _ = w.source.PopRequest()
		resp := w.handler(ctx, req)

		if err := w.sink.PushResponse(ctx, resp); err != nil {
			w.logger.Emerg().Err(err).Log("worker: failed to push response")
			return err
		}

		w.logger.Debug().
			Int("client_id", int(req.ClientID())).
			Stringer("request_type", req.Type()).
			Log("handled")
	}
}
