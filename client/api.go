package client

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/esrlabs/sindri/jobs"
)

// DefaultIdleBackoff is how long Run waits for the doorbell before
// re-scanning its response source.
const DefaultIdleBackoff = 2 * time.Millisecond

// Option configures an API.
type Option func(*API)

// WithIdleBackoff overrides DefaultIdleBackoff.
func WithIdleBackoff(d time.Duration) Option {
	return func(a *API) { a.idleBackoff = d }
}

// API is a reference client: it submits Requests to the dispatch core's
// client-side request queue, and correlates each incoming Response back to
// the Submit call that produced its RequestID. Run must be driven by a
// dedicated goroutine for the lifetime of the API; Submit may be called
// concurrently from any number of goroutines.
type API struct {
	sink   jobs.RequestSink
	source jobs.ResponseSource

	idleBackoff time.Duration
	doorbell    chan struct{}
	nextID      atomic.Uint32

	mu      sync.Mutex
	pending map[jobs.RequestID]chan jobs.Response
}

// New constructs an API submitting to sink and receiving from source — the
// two halves of one registered client's queue pair.
func New(sink jobs.RequestSink, source jobs.ResponseSource, opts ...Option) *API {
	a := &API{
		sink:        sink,
		source:      source,
		idleBackoff: DefaultIdleBackoff,
		doorbell:    make(chan struct{}, 1),
		pending:     make(map[jobs.RequestID]chan jobs.Response),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// NextRequestID returns a freshly allocated RequestID, unique for the
// lifetime of this API, suitable for building a Request to pass to Submit.
func (a *API) NextRequestID() jobs.RequestID {
	return jobs.RequestID(a.nextID.Add(1))
}

// Notify wakes an idle Run early. Wire it to the response source's
// queue.WithNotify.
func (a *API) Notify() {
	select {
	case a.doorbell <- struct{}{}:
	default:
	}
}

// Submit enqueues req and blocks until its matching Response arrives or ctx
// is done; Run returning does not by itself release a blocked Submit.
// req's RequestID must be one obtained from
// NextRequestID and not already in flight.
func (a *API) Submit(ctx context.Context, req jobs.Request) (jobs.Response, error) {
	id := req.RequestID()

	ch := make(chan jobs.Response, 1)
	a.mu.Lock()
	if _, exists := a.pending[id]; exists {
		a.mu.Unlock()
		return nil, fmt.Errorf("client: request id %d already in flight", id)
	}
	a.pending[id] = ch
	a.mu.Unlock()

	defer func() {
		a.mu.Lock()
		delete(a.pending, id)
		a.mu.Unlock()
	}()

	if err := a.sink.PushRequest(ctx, req); err != nil {
		return nil, err
	}

	select {
	case resp := <-ch:
		return resp, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Run drains the response source until ctx is cancelled, delivering each
// Response to the goroutine blocked in Submit for its RequestID. A Response
// with no matching pending Submit (e.g. the caller gave up and its context
// expired) is silently discarded.
func (a *API) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		resp, ok := a.source.PeekResponse()
		if !ok {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-a.doorbell:
			case <-time.After(a.idleBackoff):
			}
			continue
		}

		resp, _ = a.source.PopResponse()

		a.mu.Lock()
		ch, waiting := a.pending[resp.RequestID()]
		a.mu.Unlock()

		if waiting {
			ch <- resp
		}
	}
}
