package hsm

import (
	"time"

	"github.com/joeycumines/izerolog"
	"github.com/joeycumines/logiface"

	"github.com/esrlabs/sindri/jobs"
)

const (
	// DefaultMaxClients bounds the number of registered clients, absent a
	// WithMaxClients BuilderOption. Matches original_source/heimlig's
	// MAX_CLIENTS const generic default.
	DefaultMaxClients = 8

	// DefaultMaxWorkers bounds the number of registered workers.
	DefaultMaxWorkers = 8

	// DefaultMaxRequestTypesPerWorker bounds how many RequestTypes a single
	// worker may advertise.
	DefaultMaxRequestTypesPerWorker = 8

	// DefaultIdleBackoff is how long Core.Run waits for the doorbell before
	// re-scanning, when a tick makes no progress and no queue has signalled
	// activity in the meantime.
	DefaultIdleBackoff = 2 * time.Millisecond
)

// Logger is the structured logger type accepted by WithLogger: a logiface
// logger configured with the izerolog (github.com/rs/zerolog) backend.
type Logger = logiface.Logger[*izerolog.Event]

// RateLimiter is consulted by the dispatcher before forwarding a client's
// head request to a worker, once that worker has accept capacity, as a
// supplemental admission-control measure. Key-store requests and requests
// of an unclaimed type are answered without consulting it. A nil
// RateLimiter (the default) admits everything. ratelimit.Guard satisfies
// this interface structurally.
type RateLimiter interface {
	Allow(clientID jobs.ClientID) bool
}

// AuditRecorder receives one jobs.AuditEvent per forwarded request/response
// and per class-1 error. audit.Log satisfies this interface structurally. A
// nil AuditRecorder (the default) records nothing.
type AuditRecorder interface {
	Record(event jobs.AuditEvent)
}

// BuilderOption configures a Builder's static topology bounds.
type BuilderOption func(*Builder)

// WithMaxClients overrides DefaultMaxClients.
func WithMaxClients(n int) BuilderOption {
	return func(b *Builder) { b.maxClients = n }
}

// WithMaxWorkers overrides DefaultMaxWorkers.
func WithMaxWorkers(n int) BuilderOption {
	return func(b *Builder) { b.maxWorkers = n }
}

// WithMaxRequestTypesPerWorker overrides DefaultMaxRequestTypesPerWorker.
func WithMaxRequestTypesPerWorker(n int) BuilderOption {
	return func(b *Builder) { b.maxTypesPerWorker = n }
}

// WithLogger attaches a structured logger, used for routine forwarding logs
// (Debug) and class-1/class-3 error logs (Err/Emerg).
func WithLogger(logger *Logger) BuilderOption {
	return func(b *Builder) { b.logger = logger }
}

// WithRateLimiter attaches a supplemental per-client admission guard.
func WithRateLimiter(rl RateLimiter) BuilderOption {
	return func(b *Builder) { b.rateLimiter = rl }
}

// WithAuditRecorder attaches a supplemental audit trail sink.
func WithAuditRecorder(ar AuditRecorder) BuilderOption {
	return func(b *Builder) { b.audit = ar }
}

// WithIdleBackoff overrides DefaultIdleBackoff.
func WithIdleBackoff(d time.Duration) BuilderOption {
	return func(b *Builder) { b.idleBackoff = d }
}
