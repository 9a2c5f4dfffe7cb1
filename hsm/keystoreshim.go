package hsm

import (
	"context"
	"fmt"

	"github.com/esrlabs/sindri/jobs"
	"github.com/esrlabs/sindri/keystore"
)

// tryDispatchKeyStoreOp handles an ImportKeyRequest or DeleteKeyRequest
// entirely in-process: it never touches a worker queue. req has already
// been peeked (not popped) from client.source.
//
// Like tryDispatch, it reserves capacity on the destination — here, the
// client's own response sink, since the answer is produced synchronously —
// before popping the request, so a contended or full client response queue
// never costs the request its place in line.
func (c *Core) tryDispatchKeyStoreOp(ctx context.Context, idx int, client *clientChannel, req jobs.Request) (bool, error) {
	if !client.sink.PollAcceptCapacity() {
		return false, nil
	}

	if c.keyStore == nil {
		req, _ = client.source.PopRequest()
		req = jobs.WithClientID(req, jobs.ClientID(idx))
		return true, c.respondKeyStore(ctx, idx, req, jobs.NewErrorResponse(req, jobs.ErrNoKeyStore))
	}

	store, unlock, ok := c.keyStore.TryLock()
	if !ok {
		// Contended; leave the request in place and retry next tick rather
		// than stalling the whole dispatcher on the lock.
		return false, nil
	}
	defer unlock()

	req, _ = client.source.PopRequest()
	req = jobs.WithClientID(req, jobs.ClientID(idx))

	resp := c.handleKeyStoreOp(store, req)
	return true, c.respondKeyStore(ctx, idx, req, resp)
}

func (c *Core) handleKeyStoreOp(store keystore.Store, req jobs.Request) jobs.Response {
	switch r := req.(type) {
	case jobs.ImportKeyRequest:
		if err := store.Import(r.KeyID, r.Data); err != nil {
			return jobs.NewErrorResponse(req, jobs.NewKeyStoreError(err))
		}
		return jobs.NewImportKeyResponse(req)

	case jobs.DeleteKeyRequest:
		if err := store.Delete(r.KeyID); err != nil {
			return jobs.NewErrorResponse(req, jobs.NewKeyStoreError(err))
		}
		return jobs.NewDeleteKeyResponse(req)

	default:
		return jobs.NewErrorResponse(req, jobs.ErrUnknownRequestType)
	}
}

// respondKeyStore delivers resp directly to the client that issued req,
// bypassing the worker response path entirely, and records the
// corresponding audit event.
func (c *Core) respondKeyStore(ctx context.Context, idx int, req jobs.Request, resp jobs.Response) error {
	var class1Err error
	if errResp, failed := resp.(jobs.ErrorResponse); failed {
		class1Err = errResp.Err
		c.logClass1(jobs.ClientID(idx), req.Type(), errResp.Err)
	}

	client := c.clients[idx]
	if err := client.sink.PushResponse(ctx, resp); err != nil {
		c.record(jobs.AuditEvent{Kind: jobs.AuditRequestError, ClientID: jobs.ClientID(idx), RequestType: req.Type(), Err: err})
		return fmt.Errorf("hsm: %w: %w", jobs.ErrQueueSend, err)
	}
	c.record(jobs.AuditEvent{Kind: jobs.AuditKeyStoreHandled, ClientID: jobs.ClientID(idx), RequestType: req.Type(), Err: class1Err})
	return nil
}
