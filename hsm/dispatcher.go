package hsm

import (
	"context"
	"fmt"

	"github.com/esrlabs/sindri/jobs"
)

// tryDispatch scans registered clients starting just after lastClientID,
// forwarding the first ready request it finds to its destination (a
// worker's request sink, or the in-process key-store shim) and advancing
// lastClientID to the winner. A client is "ready" only once its head
// request's destination has confirmed accept capacity — PeekRequest never
// commits a dequeue that might not have anywhere to go, so no request is
// ever dropped or duplicated.
func (c *Core) tryDispatch(ctx context.Context) (bool, error) {
	n := len(c.clients)
	if n == 0 {
		return false, nil
	}

	for i := 0; i < n; i++ {
		idx := (c.lastClientID + 1 + i) % n
		client := c.clients[idx]

		req, ok := client.source.PeekRequest()
		if !ok {
			continue
		}

		if req.Type().IsKeyStoreOp() {
			progressed, err := c.tryDispatchKeyStoreOp(ctx, idx, client, req)
			if err != nil || progressed {
				c.lastClientID = idx
				return progressed, err
			}
			continue
		}

		workerIdx, known := c.routes[req.Type()]
		if !known {
			// No registered worker advertises this type: the Builder does
			// not require every RequestType to be claimed. Recoverable
			// (class 1): answered to the client, the core keeps running.
			if !client.sink.PollAcceptCapacity() {
				continue
			}
			req, _ = client.source.PopRequest()
			req = jobs.WithClientID(req, jobs.ClientID(idx))
			c.logClass1(jobs.ClientID(idx), req.Type(), jobs.ErrUnknownRequestType)
			c.record(jobs.AuditEvent{Kind: jobs.AuditRequestError, ClientID: jobs.ClientID(idx), RequestType: req.Type(), Err: jobs.ErrUnknownRequestType})
			c.lastClientID = idx
			if err := client.sink.PushResponse(ctx, jobs.NewErrorResponse(req, jobs.ErrUnknownRequestType)); err != nil {
				return true, fmt.Errorf("hsm: %w: %w", jobs.ErrQueueSend, err)
			}
			return true, nil
		}

		worker := c.workers[workerIdx]
		if !worker.sink.PollAcceptCapacity() {
			continue
		}

		if c.rateLimiter != nil && !c.rateLimiter.Allow(jobs.ClientID(idx)) {
			continue
		}

		req, _ = client.source.PopRequest()
		req = jobs.WithClientID(req, jobs.ClientID(idx))
		if err := worker.sink.PushRequest(ctx, req); err != nil {
			c.record(jobs.AuditEvent{Kind: jobs.AuditRequestError, ClientID: jobs.ClientID(idx), RequestType: req.Type(), Err: err})
			c.lastClientID = idx
			return true, fmt.Errorf("hsm: %w: %w", jobs.ErrQueueSend, err)
		}

		c.logForward("request", jobs.ClientID(idx), req.Type())
		c.record(jobs.AuditEvent{Kind: jobs.AuditRequestForwarded, ClientID: jobs.ClientID(idx), RequestType: req.Type()})
		c.lastClientID = idx
		return true, nil
	}

	return false, nil
}
