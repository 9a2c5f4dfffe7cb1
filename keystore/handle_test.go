package keystore

import (
	"testing"
	"time"
)

func TestHandle_TryLockExcludesConcurrentHolder(t *testing.T) {
	h := NewHandle(NewMemoryStore())

	_, unlock, ok := h.TryLock()
	if !ok {
		t.Fatal("first TryLock: expected ok")
	}

	if _, _, ok := h.TryLock(); ok {
		t.Fatal("second TryLock while held: expected ok == false")
	}

	unlock()

	if _, unlock2, ok := h.TryLock(); !ok {
		t.Fatal("TryLock after unlock: expected ok")
	} else {
		unlock2()
	}
}

func TestHandle_LockBlocksUntilAvailable(t *testing.T) {
	h := NewHandle(NewMemoryStore())

	_, unlock, ok := h.TryLock()
	if !ok {
		t.Fatal("TryLock: expected ok")
	}

	acquired := make(chan struct{})
	go func() {
		_, unlock2 := h.Lock()
		close(acquired)
		unlock2()
	}()

	select {
	case <-acquired:
		t.Fatal("Lock returned while the handle was still held")
	case <-time.After(20 * time.Millisecond):
	}

	unlock()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("Lock never acquired after the handle was released")
	}
}
