// Package queue provides a reference implementation of the bounded,
// lossless, single-producer/single-consumer queue contract described in
// jobs.RequestSource/RequestSink/ResponseSource/ResponseSink.
//
// It is grounded on the RequestQueueSource/RequestQueueSink/
// ResponseQueueSource/ResponseQueueSink heapless-queue adapters in
// original_source/heimlig's integration::embassy module: a fixed-capacity
// ring buffer allocated once at construction, with a peek/pop split that
// lets the dispatch core reserve downstream capacity before it commits a
// dequeue.
package queue
