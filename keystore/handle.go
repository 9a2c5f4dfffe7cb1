package keystore

import "sync"

// Handle is a mutex-guarded indirection over a Store, matching
// original_source/heimlig's Mutex<M, &mut dyn KeyStore>. The dispatch core's
// key-store shim takes the lock with a non-blocking TryLock attempt so that
// a contended key store never stalls the dispatcher; on contention the shim
// simply retries the operation on the next Execute tick.
type Handle struct {
	mu    sync.Mutex
	store Store
}

// NewHandle wraps store behind a mutex.
func NewHandle(store Store) *Handle {
	return &Handle{store: store}
}

// TryLock attempts to acquire the handle without blocking. On success, the
// returned unlock function must be called exactly once to release it.
func (h *Handle) TryLock() (store Store, unlock func(), ok bool) {
	if !h.mu.TryLock() {
		return nil, nil, false
	}
	return h.store, h.mu.Unlock, true
}

// Lock acquires the handle, blocking until it's available. Workers run
// outside the core's non-blocking Execute loop and may use this instead of
// TryLock's retry-next-tick behavior.
func (h *Handle) Lock() (store Store, unlock func()) {
	h.mu.Lock()
	return h.store, h.mu.Unlock
}
