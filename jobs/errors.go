package jobs

import (
	"errors"
	"fmt"
)

// ErrNoKeyStore and ErrUnknownRequestType are per-request errors (class 1
// in the error taxonomy): surfaced to the originating client as an
// ErrorResponse, never aborting the core. ErrQueueSend is not: see its own
// comment.
var (
	// ErrNoKeyStore is returned when a key-store request arrives but no
	// key store was attached via Builder.WithKeyStore.
	ErrNoKeyStore = errors.New("jobs: no key store configured")

	// ErrUnknownRequestType is returned when a request's type matches no
	// registered worker. The Builder rejects duplicate routes at
	// construction time (invariant 1) but does not require every RequestType
	// to be claimed, so a request of a type no worker advertises is answered
	// with this error.
	ErrUnknownRequestType = errors.New("jobs: unknown request type")

	// ErrQueueSend is returned when forwarding a request or response to its
	// resolved sink fails. It is never delivered to a client as an
	// ErrorResponse: Core.Execute returns it wrapped, and Core.Run halts on
	// it like any other class-3 error.
	ErrQueueSend = errors.New("jobs: queue send failed")
)

// Fatal invariant violations (class 3): programmer errors that abort the
// core rather than being recovered locally.
var (
	// ErrInvalidClientID is returned when a worker produces a Response
	// whose client id is out of range for the registered client table.
	ErrInvalidClientID = errors.New("jobs: invalid client id in response")

	// ErrDuplicateRequestType is wrapped by the panic Builder.WithWorker
	// raises when two workers advertise the same RequestType, violating
	// invariant 1.
	ErrDuplicateRequestType = errors.New("jobs: request type already claimed by another worker")

	// ErrBoundExceeded is wrapped by the panic Builder.WithClient or
	// Builder.WithWorker raises when a static topology bound (max clients,
	// max workers, max request types per worker) is exceeded. This is
	// misconfiguration, not a runtime condition.
	ErrBoundExceeded = errors.New("jobs: static topology bound exceeded")
)

// KeyStoreError wraps an error returned by the key store, surfaced to the
// client as the payload of an ErrorResponse.
type KeyStoreError struct {
	Err error
}

func (e *KeyStoreError) Error() string { return fmt.Sprintf("jobs: key store: %v", e.Err) }
func (e *KeyStoreError) Unwrap() error { return e.Err }

// NewKeyStoreError wraps err from the key store, unless err is nil.
func NewKeyStoreError(err error) error {
	if err == nil {
		return nil
	}
	return &KeyStoreError{Err: err}
}
