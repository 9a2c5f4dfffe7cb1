package worker

import (
	"context"

	"golang.org/x/crypto/blake2b"

	"github.com/esrlabs/sindri/jobs"
)

// NewHashWorker constructs a Worker answering HashRequest with a BLAKE2b-256
// digest.
func NewHashWorker(source jobs.RequestSource, sink jobs.ResponseSink, opts ...Option) *Worker {
	return New(source, sink, hashHandler, opts...)
}

func hashHandler(ctx context.Context, req jobs.Request) jobs.Response {
	r, ok := req.(jobs.HashRequest)
	if !ok {
		return jobs.NewErrorResponse(req, jobs.ErrUnknownRequestType)
	}

	digest := blake2b.Sum256(r.Data)
	return jobs.NewHashResponse(req, digest[:])
}
