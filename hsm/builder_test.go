package hsm

import (
	"errors"
	"testing"

	"github.com/esrlabs/sindri/jobs"
	"github.com/esrlabs/sindri/queue"
)

func mustPanic(t *testing.T, want error, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic, got none")
		}
		if want == nil {
			return
		}
		err, ok := r.(error)
		if !ok {
			t.Fatalf("panic value %v is not an error", r)
		}
		if !errors.Is(err, want) {
			t.Fatalf("panic = %v, want wrapping %v", err, want)
		}
	}()
	fn()
}

func TestBuilder_WithClientPanicsOnBoundExceeded(t *testing.T) {
	b := NewBuilder(WithMaxClients(1))
	b.WithClient(queue.NewRequestQueue(1), queue.NewResponseQueue(1))
	mustPanic(t, jobs.ErrBoundExceeded, func() {
		b.WithClient(queue.NewRequestQueue(1), queue.NewResponseQueue(1))
	})
}

func TestBuilder_WithWorkerPanicsOnEmptyTypes(t *testing.T) {
	b := NewBuilder()
	mustPanic(t, nil, func() {
		b.WithWorker(nil, queue.NewRequestQueue(1), queue.NewResponseQueue(1))
	})
}

func TestBuilder_WithWorkerPanicsOnTypesPerWorkerBound(t *testing.T) {
	b := NewBuilder(WithMaxRequestTypesPerWorker(1))
	mustPanic(t, jobs.ErrBoundExceeded, func() {
		b.WithWorker(
			[]jobs.RequestType{jobs.RequestTypeGetRandom, jobs.RequestTypeHash},
			queue.NewRequestQueue(1), queue.NewResponseQueue(1),
		)
	})
}

func TestBuilder_WithWorkerPanicsOnMaxWorkersBound(t *testing.T) {
	b := NewBuilder(WithMaxWorkers(1))
	b.WithWorker([]jobs.RequestType{jobs.RequestTypeGetRandom}, queue.NewRequestQueue(1), queue.NewResponseQueue(1))
	mustPanic(t, jobs.ErrBoundExceeded, func() {
		b.WithWorker([]jobs.RequestType{jobs.RequestTypeHash}, queue.NewRequestQueue(1), queue.NewResponseQueue(1))
	})
}

func TestBuilder_WithWorkerPanicsOnDuplicateRequestType(t *testing.T) {
	b := NewBuilder()
	b.WithWorker([]jobs.RequestType{jobs.RequestTypeGetRandom}, queue.NewRequestQueue(1), queue.NewResponseQueue(1))
	mustPanic(t, jobs.ErrDuplicateRequestType, func() {
		b.WithWorker([]jobs.RequestType{jobs.RequestTypeGetRandom}, queue.NewRequestQueue(1), queue.NewResponseQueue(1))
	})
}

func TestBuilder_BuildFreezesTopology(t *testing.T) {
	clientReqQ, clientRespQ := queue.NewRequestQueue(4), queue.NewResponseQueue(4)
	rngReqQ, rngRespQ := queue.NewRequestQueue(4), queue.NewResponseQueue(4)
	hashReqQ, hashRespQ := queue.NewRequestQueue(4), queue.NewResponseQueue(4)

	core := NewBuilder().
		WithClient(clientReqQ, clientRespQ).
		WithWorker([]jobs.RequestType{jobs.RequestTypeGetRandom}, rngReqQ, rngRespQ).
		WithWorker([]jobs.RequestType{jobs.RequestTypeHash}, hashReqQ, hashRespQ).
		Build()

	if len(core.clients) != 1 {
		t.Fatalf("len(clients) = %d, want 1", len(core.clients))
	}
	if len(core.workers) != 2 {
		t.Fatalf("len(workers) = %d, want 2", len(core.workers))
	}
	if core.routes[jobs.RequestTypeGetRandom] != 0 {
		t.Fatalf("routes[GetRandom] = %d, want 0", core.routes[jobs.RequestTypeGetRandom])
	}
	if core.routes[jobs.RequestTypeHash] != 1 {
		t.Fatalf("routes[Hash] = %d, want 1", core.routes[jobs.RequestTypeHash])
	}
	if core.keyStore != nil {
		t.Fatal("expected nil keyStore when WithKeyStore was never called")
	}
}
