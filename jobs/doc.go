// Package jobs defines the Request/Response wire types exchanged between
// clients, the dispatch core, and workers, along with the queue contract
// that carries them.
package jobs
