package queue

import (
	"context"

	"github.com/esrlabs/sindri/jobs"
)

// RequestQueue adapts Queue[jobs.Request] to jobs.RequestSource and
// jobs.RequestSink, mirroring original_source/heimlig's
// RequestQueueSource/RequestQueueSink pair (there, two distinct types over
// one heapless::spsc::Queue half each; here, one bounded ring buffer plays
// both roles since Go channels/queues don't need the split-ownership dance
// embassy's borrow checker requires).
type RequestQueue struct {
	*Queue[jobs.Request]
}

// NewRequestQueue constructs a RequestQueue with the given capacity.
func NewRequestQueue(capacity int, opts ...Option[jobs.Request]) *RequestQueue {
	return &RequestQueue{Queue: New[jobs.Request](capacity, opts...)}
}

func (q *RequestQueue) PeekRequest() (jobs.Request, bool) { return q.PeekHead() }
func (q *RequestQueue) PopRequest() (jobs.Request, bool)  { return q.PopHead() }
func (q *RequestQueue) PushRequest(ctx context.Context, r jobs.Request) error {
	return q.Push(ctx, r)
}

// ResponseQueue adapts Queue[jobs.Response] to jobs.ResponseSource and
// jobs.ResponseSink.
type ResponseQueue struct {
	*Queue[jobs.Response]
}

// NewResponseQueue constructs a ResponseQueue with the given capacity.
func NewResponseQueue(capacity int, opts ...Option[jobs.Response]) *ResponseQueue {
	return &ResponseQueue{Queue: New[jobs.Response](capacity, opts...)}
}

func (q *ResponseQueue) PeekResponse() (jobs.Response, bool) { return q.PeekHead() }
func (q *ResponseQueue) PopResponse() (jobs.Response, bool)  { return q.PopHead() }
func (q *ResponseQueue) PushResponse(ctx context.Context, r jobs.Response) error {
	return q.Push(ctx, r)
}
