// Package client is a reference implementation of the submit-and-correlate
// pattern clients use against the dispatch core: Submit a Request, get back
// its matching Response, keyed by RequestID.
package client
