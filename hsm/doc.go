// Package hsm implements the dispatch core of the HSM runtime: a bounded,
// cooperative router between client request/response queues and worker
// request/response queues, plus an in-process key-store shim for
// key-lifecycle requests.
//
// Topology (which clients and workers exist, and which RequestType each
// worker advertises) is assembled with a Builder and frozen by Build. From
// there, Core.Run (or repeated calls to Core.Execute) drives the core
// forward: each Execute call forwards at most one request and one response,
// round-robin fair, never losing or duplicating a message.
package hsm
