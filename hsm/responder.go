package hsm

import (
	"context"
	"fmt"

	"github.com/esrlabs/sindri/jobs"
)

// tryRespond scans registered workers starting just after lastWorkerID,
// forwarding the first ready response it finds to the client it names and
// advancing lastWorkerID to the winner. A worker is "ready" only once the
// named client's response sink has confirmed accept capacity.
//
// A response naming a client id outside the registered range is a fatal
// (class 3) invariant violation — no worker is ever handed a Request
// without a valid stamped client id, so this can only mean a worker
// fabricated one — and halts the core rather than being swallowed.
func (c *Core) tryRespond(ctx context.Context) (bool, error) {
	n := len(c.workers)
	if n == 0 {
		return false, nil
	}

	for i := 0; i < n; i++ {
		idx := (c.lastWorkerID + 1 + i) % n
		worker := c.workers[idx]

		resp, ok := worker.source.PeekResponse()
		if !ok {
			continue
		}

		clientIdx := int(resp.ClientID())
		if clientIdx < 0 || clientIdx >= len(c.clients) {
			worker.source.PopResponse()
			c.lastWorkerID = idx
			return true, fmt.Errorf("hsm: %w: client id %d from worker %d", jobs.ErrInvalidClientID, clientIdx, idx)
		}

		client := c.clients[clientIdx]
		if !client.sink.PollAcceptCapacity() {
			continue
		}

		resp, _ = worker.source.PopResponse()
		if err := client.sink.PushResponse(ctx, resp); err != nil {
			c.record(jobs.AuditEvent{Kind: jobs.AuditRequestError, ClientID: resp.ClientID(), Err: err})
			c.lastWorkerID = idx
			return true, fmt.Errorf("hsm: %w: %w", jobs.ErrQueueSend, err)
		}

		c.logResponse(resp.ClientID())
		c.record(jobs.AuditEvent{Kind: jobs.AuditResponseForwarded, ClientID: resp.ClientID()})
		c.lastWorkerID = idx
		return true, nil
	}

	return false, nil
}
