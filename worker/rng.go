package worker

import (
	"context"
	"crypto/rand"
	"errors"
	"time"

	"github.com/joeycumines/go-microbatch"

	"github.com/esrlabs/sindri/jobs"
)

// ErrInvalidLength is returned when a GetRandomRequest asks for a
// non-positive number of bytes.
var ErrInvalidLength = errors.New("worker: random length must be positive")

// rngJob is a single pending GetRandom draw. Data is filled in place by the
// batch processor, per microbatch.JobResult's by-reference-output contract.
type rngJob struct {
	len  int
	data []byte
}

// RngWorkerConfig configures the microbatch.Batcher backing NewRngWorker.
// The zero value uses microbatch's own defaults (16 jobs or 50ms,
// whichever comes first, concurrency 1).
type RngWorkerConfig struct {
	MaxSize       int
	FlushInterval time.Duration
}

// NewRngWorker constructs a Worker answering GetRandomRequest through a
// microbatch.Batcher that serves each batch with a single crypto/rand.Read.
// The Worker's Run loop hands requests to the handler one at a time and the
// handler waits for its batch to flush, so each batch holds a single draw:
// draws queued on the same Worker are not coalesced, and each one waits up
// to FlushInterval.
func NewRngWorker(source jobs.RequestSource, sink jobs.ResponseSink, config RngWorkerConfig, opts ...Option) *Worker {
	batcher := microbatch.NewBatcher(&microbatch.BatcherConfig{
		MaxSize:       config.MaxSize,
		FlushInterval: config.FlushInterval,
	}, rngBatchProcessor)

	return New(source, sink, rngHandler(batcher), opts...)
}

func rngBatchProcessor(ctx context.Context, batch []*rngJob) error {
	total := 0
	for _, j := range batch {
		total += j.len
	}

	buf := make([]byte, total)
	if _, err := rand.Read(buf); err != nil {
		return err
	}

	offset := 0
	for _, j := range batch {
		j.data = buf[offset : offset+j.len]
		offset += j.len
	}
	return nil
}

func rngHandler(batcher *microbatch.Batcher[*rngJob]) Handler {
	return func(ctx context.Context, req jobs.Request) jobs.Response {
		r, ok := req.(jobs.GetRandomRequest)
		if !ok {
			return jobs.NewErrorResponse(req, jobs.ErrUnknownRequestType)
		}
		if r.Len <= 0 {
			return jobs.NewErrorResponse(req, ErrInvalidLength)
		}

		job := &rngJob{len: r.Len}
		result, err := batcher.Submit(ctx, job)
		if err != nil {
			return jobs.NewErrorResponse(req, err)
		}
		if err := result.Wait(ctx); err != nil {
			return jobs.NewErrorResponse(req, err)
		}

		return jobs.NewGetRandomResponse(req, job.data)
	}
}
