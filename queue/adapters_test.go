package queue

import (
	"context"
	"testing"

	"github.com/esrlabs/sindri/jobs"
)

func TestRequestQueue_AdaptsToJobsContract(t *testing.T) {
	q := NewRequestQueue(2)
	ctx := context.Background()

	req := jobs.NewGetRandomRequest(0, 1, 16)
	if err := q.PushRequest(ctx, req); err != nil {
		t.Fatalf("PushRequest: %v", err)
	}

	peeked, ok := q.PeekRequest()
	if !ok {
		t.Fatal("PeekRequest: expected ok")
	}
	if peeked.RequestID() != req.RequestID() {
		t.Fatalf("PeekRequest: got id %d, want %d", peeked.RequestID(), req.RequestID())
	}

	popped, ok := q.PopRequest()
	if !ok {
		t.Fatal("PopRequest: expected ok")
	}
	if popped.RequestID() != req.RequestID() {
		t.Fatalf("PopRequest: got id %d, want %d", popped.RequestID(), req.RequestID())
	}
}

func TestResponseQueue_AdaptsToJobsContract(t *testing.T) {
	q := NewResponseQueue(2)
	ctx := context.Background()

	req := jobs.NewHashRequest(0, 7, nil)
	resp := jobs.NewHashResponse(req, []byte("digest"))

	if err := q.PushResponse(ctx, resp); err != nil {
		t.Fatalf("PushResponse: %v", err)
	}
	if !q.PollAcceptCapacity() {
		t.Fatal("expected capacity to remain after one push into a size-2 queue")
	}

	popped, ok := q.PopResponse()
	if !ok {
		t.Fatal("PopResponse: expected ok")
	}
	if popped.RequestID() != resp.RequestID() {
		t.Fatalf("PopResponse: got id %d, want %d", popped.RequestID(), resp.RequestID())
	}
}
