package worker

import (
	"context"
	"testing"
	"time"

	"github.com/esrlabs/sindri/jobs"
	"github.com/esrlabs/sindri/queue"
)

func TestRngWorker_AnswersWithRequestedLength(t *testing.T) {
	reqQ, respQ := queue.NewRequestQueue(4), queue.NewResponseQueue(4)
	w := NewRngWorker(reqQ, respQ, RngWorkerConfig{MaxSize: 4, FlushInterval: 5 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	req := jobs.NewGetRandomRequest(0, 1, 16)
	if err := reqQ.PushRequest(ctx, req); err != nil {
		t.Fatalf("PushRequest: %v", err)
	}

	resp := waitForResponse(t, respQ)
	randResp, ok := resp.(jobs.GetRandomResponse)
	if !ok {
		t.Fatalf("response type = %T, want jobs.GetRandomResponse", resp)
	}
	if len(randResp.Data) != 16 {
		t.Fatalf("len(Data) = %d, want 16", len(randResp.Data))
	}
}

func TestRngWorker_AnswersEachQueuedDrawWithItsLength(t *testing.T) {
	reqQ, respQ := queue.NewRequestQueue(8), queue.NewResponseQueue(8)
	w := NewRngWorker(reqQ, respQ, RngWorkerConfig{MaxSize: 4, FlushInterval: 5 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	const n = 4
	for i := 0; i < n; i++ {
		req := jobs.NewGetRandomRequest(0, jobs.RequestID(i+1), i+1)
		if err := reqQ.PushRequest(ctx, req); err != nil {
			t.Fatalf("PushRequest[%d]: %v", i, err)
		}
	}

	seen := make(map[jobs.RequestID]int)
	for i := 0; i < n; i++ {
		resp := waitForResponse(t, respQ)
		randResp, ok := resp.(jobs.GetRandomResponse)
		if !ok {
			t.Fatalf("response type = %T, want jobs.GetRandomResponse", resp)
		}
		seen[randResp.RequestID()] = len(randResp.Data)
	}

	for i := 0; i < n; i++ {
		id := jobs.RequestID(i + 1)
		if seen[id] != i+1 {
			t.Fatalf("request %d: got %d bytes, want %d", id, seen[id], i+1)
		}
	}
}

func TestRngWorker_RejectsNonPositiveLength(t *testing.T) {
	reqQ, respQ := queue.NewRequestQueue(2), queue.NewResponseQueue(2)
	w := NewRngWorker(reqQ, respQ, RngWorkerConfig{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	if err := reqQ.PushRequest(ctx, jobs.NewGetRandomRequest(0, 1, 0)); err != nil {
		t.Fatalf("PushRequest: %v", err)
	}

	resp := waitForResponse(t, respQ)
	if _, ok := resp.(jobs.ErrorResponse); !ok {
		t.Fatalf("response type = %T, want jobs.ErrorResponse", resp)
	}
}
