package hsm

import (
	"github.com/esrlabs/sindri/jobs"
	"github.com/esrlabs/sindri/keystore"
)

// clientChannel is a registered (request_source, response_sink) pair,
// exclusively owned by the Core from registration onward.
type clientChannel struct {
	source jobs.RequestSource
	sink   jobs.ResponseSink
}

// workerChannel is a registered (advertised_types, request_sink,
// response_source) triple.
type workerChannel struct {
	types  []jobs.RequestType
	sink   jobs.RequestSink
	source jobs.ResponseSource
}

func (w *workerChannel) advertises(t jobs.RequestType) bool {
	for _, owned := range w.types {
		if owned == t {
			return true
		}
	}
	return false
}

// topology is the immutable post-build table: clients and workers indexed
// contiguously from 0, plus an O(1) request-type-to-worker-index map built
// once at Build time.
type topology struct {
	clients  []*clientChannel
	workers  []*workerChannel
	routes   map[jobs.RequestType]int // RequestType -> worker index
	keyStore *keystore.Handle
}
