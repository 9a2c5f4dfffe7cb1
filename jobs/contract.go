package jobs

import "context"

// RequestSource is the consumer side of a client's request queue: a
// peekable, lazy sequence of Requests. Peeking must not remove the head
// element; only PopRequest does. Implementations are single-consumer.
type RequestSource interface {
	// PeekRequest returns the head Request without removing it. ok is false
	// if the queue is currently empty.
	PeekRequest() (req Request, ok bool)

	// PopRequest removes and returns the head Request. It must only be
	// called immediately after a PeekRequest that returned ok == true, with
	// no intervening call that could observe a different head (the core
	// upholds this by construction).
	PopRequest() (req Request, ok bool)
}

// RequestSink is the producer side of a worker's request queue: bounded,
// lossless FIFO, single-producer.
type RequestSink interface {
	// PollAcceptCapacity reports whether PushRequest would currently
	// succeed without blocking.
	PollAcceptCapacity() bool

	// PushRequest enqueues req, blocking until capacity is available or ctx
	// is done. Callers that have already observed PollAcceptCapacity==true
	// and hold exclusive producer access will not block.
	PushRequest(ctx context.Context, req Request) error
}

// ResponseSource mirrors RequestSource for the worker-to-core direction.
type ResponseSource interface {
	PeekResponse() (resp Response, ok bool)
	PopResponse() (resp Response, ok bool)
}

// ResponseSink mirrors RequestSink for the core-to-client direction.
type ResponseSink interface {
	PollAcceptCapacity() bool
	PushResponse(ctx context.Context, resp Response) error
}
