package hsm

import (
	"fmt"
	"time"

	"github.com/esrlabs/sindri/jobs"
	"github.com/esrlabs/sindri/keystore"
)

// Builder assembles a Core's topology. The zero value is not usable; start
// from NewBuilder. Registration methods panic on misconfiguration
// (duplicate request-type claims, bound overflow) since these are
// programmer errors discoverable at startup, never at runtime — see
// spec.md §4.1 and §7.
type Builder struct {
	maxClients        int
	maxWorkers        int
	maxTypesPerWorker int
	idleBackoff       time.Duration

	clients  []*clientChannel
	workers  []*workerChannel
	routes   map[jobs.RequestType]int
	keyStore *keystore.Handle

	logger      *Logger
	rateLimiter RateLimiter
	audit       AuditRecorder
}

// NewBuilder constructs a Builder with default bounds, overridable via opts.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		maxClients:        DefaultMaxClients,
		maxWorkers:        DefaultMaxWorkers,
		maxTypesPerWorker: DefaultMaxRequestTypesPerWorker,
		idleBackoff:       DefaultIdleBackoff,
		routes:            make(map[jobs.RequestType]int),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// WithClient registers a client channel, in order. The index it's assigned
// (0-based, contiguous, never reused) is the client's ClientID for the
// lifetime of the Core.
func (b *Builder) WithClient(source jobs.RequestSource, sink jobs.ResponseSink) *Builder {
	if len(b.clients) >= b.maxClients {
		panic(fmt.Errorf("hsm: %w: max clients (%d) exceeded", jobs.ErrBoundExceeded, b.maxClients))
	}
	b.clients = append(b.clients, &clientChannel{source: source, sink: sink})
	return b
}

// WithWorker registers a worker channel advertising types. It panics if
// types is empty, exceeds the max-request-types-per-worker bound, claims a
// RequestType already owned by a previously registered worker (invariant
// 1), or the max-workers bound is exceeded.
func (b *Builder) WithWorker(types []jobs.RequestType, sink jobs.RequestSink, source jobs.ResponseSource) *Builder {
	if len(types) == 0 {
		panic("hsm: worker must advertise at least one request type")
	}
	if len(types) > b.maxTypesPerWorker {
		panic(fmt.Errorf("hsm: %w: max request types per worker (%d) exceeded", jobs.ErrBoundExceeded, b.maxTypesPerWorker))
	}
	if len(b.workers) >= b.maxWorkers {
		panic(fmt.Errorf("hsm: %w: max workers (%d) exceeded", jobs.ErrBoundExceeded, b.maxWorkers))
	}
	for _, t := range types {
		if owner, claimed := b.routes[t]; claimed {
			panic(fmt.Errorf("hsm: %w: %s already claimed by worker %d", jobs.ErrDuplicateRequestType, t, owner))
		}
	}

	index := len(b.workers)
	b.workers = append(b.workers, &workerChannel{types: types, sink: sink, source: source})
	for _, t := range types {
		b.routes[t] = index
	}
	return b
}

// WithKeyStore attaches the shared key store consulted by the key-store
// shim. Optional; if never called, key-store requests are answered with
// jobs.ErrNoKeyStore.
func (b *Builder) WithKeyStore(handle *keystore.Handle) *Builder {
	b.keyStore = handle
	return b
}

// Build freezes the topology and returns a ready-to-run Core. Cursors start
// at 0.
func (b *Builder) Build() *Core {
	// Copy the tables so later registrations on b cannot reach the Core.
	routes := make(map[jobs.RequestType]int, len(b.routes))
	for t, idx := range b.routes {
		routes[t] = idx
	}
	c := &Core{
		topology: topology{
			clients:  append([]*clientChannel(nil), b.clients...),
			workers:  append([]*workerChannel(nil), b.workers...),
			routes:   routes,
			keyStore: b.keyStore,
		},
		logger:      b.logger,
		rateLimiter: b.rateLimiter,
		audit:       b.audit,
		idleBackoff: b.idleBackoff,
		doorbell:    make(chan struct{}, 1),
	}
	return c
}
