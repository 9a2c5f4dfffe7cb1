// Package worker implements the task side of the dispatch core's queue
// contract: a Worker reads jobs.Request values from a jobs.RequestSource,
// answers each with a jobs.Response written to a jobs.ResponseSink, and
// never drops a request — a Handler that fails returns a jobs.ErrorResponse
// rather than an error.
//
// NewRngWorker, NewSymmetricWorker, and NewHashWorker construct Workers with
// concrete Handlers covering random-byte generation, symmetric key lifecycle
// and AEAD, and hashing.
package worker
