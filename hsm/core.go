package hsm

import (
	"context"
	"time"

	"github.com/esrlabs/sindri/jobs"
)

// Core is the frozen, running dispatch core produced by Builder.Build.
// Exactly one goroutine must drive it (via Run, or direct repeated Execute
// calls) — Core performs no internal locking of its own cursors.
type Core struct {
	topology

	logger      *Logger
	rateLimiter RateLimiter
	audit       AuditRecorder
	idleBackoff time.Duration

	lastClientID int
	lastWorkerID int

	// doorbell is signalled (non-blocking, best-effort) via Notify, which
	// queues wired to it call after every successful Push and Pop, so Run's idle
	// wait doesn't have to poll at idleBackoff granularity to notice new
	// work. Buffered 1: a missed send still gets picked up on the next
	// backoff expiry, it's never a correctness dependency.
	doorbell chan struct{}
}

// Notify wakes an idle Run early. Wire it to every queue registered with
// the Core via queue.WithNotify so Run doesn't wait out a full idleBackoff
// after a quiet period ends. Safe to call from any goroutine.
func (c *Core) Notify() {
	select {
	case c.doorbell <- struct{}{}:
	default:
	}
}

func (c *Core) record(event jobs.AuditEvent) {
	if c.audit != nil {
		c.audit.Record(event)
	}
}

// Execute drives the core forward by exactly one round: at most one request
// forwarded (client to worker, or client to key-store shim) and at most one
// response forwarded (worker to client), chosen round-robin-fair among
// ready candidates. It reports whether either direction made progress.
//
// Calling Execute when no queue has anything to offer is a no-op: it
// returns (false, nil) without mutating either cursor, so repeated idle
// calls are indistinguishable from not calling it at all.
func (c *Core) Execute(ctx context.Context) (bool, error) {
	respProgress, err := c.tryRespond(ctx)
	if err != nil {
		return respProgress, err
	}

	reqProgress, err := c.tryDispatch(ctx)
	if err != nil {
		return respProgress || reqProgress, err
	}

	return respProgress || reqProgress, nil
}

// Run drives the core until ctx is cancelled, backing off for idleBackoff
// (or until Notify wakes it, whichever comes first) whenever a round makes
// no progress. It returns ctx.Err() on cancellation; any other error from
// Execute is fatal (class 3) and returned immediately, halting the core.
func (c *Core) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		progressed, err := c.Execute(ctx)
		if err != nil {
			if ctx.Err() == nil {
				c.logFatal(err)
			}
			return err
		}
		if progressed {
			continue
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.doorbell:
		case <-time.After(c.idleBackoff):
		}
	}
}
