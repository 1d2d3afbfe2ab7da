package memregion

import (
	"fmt"
	"runtime"
	"sync/atomic"

	log "github.com/sirupsen/logrus"
)

// LockHandle owns a page range pinned into physical memory and releases
// the pin exactly once. The release protocol matches Guard: the first
// Release does the work, later calls are no-ops.
type LockHandle struct {
	lo, hi   uintptr
	released int32
}

// Lock pins [addr, addr+size) into physical memory, preventing the
// pages from being swapped out. The range is expanded to page
// boundaries first. Locking is independent of protection: a read-only
// region locks fine. The usual failure is an exhausted process
// page-lock quota, surfaced as a KindLock error.
func Lock(addr, size uintptr) (*LockHandle, error) {
	lo, hi, err := boundsOf(addr, size)
	if err != nil {
		return nil, &Error{Kind: KindLock, Op: "lock", Addr: addr, Err: err}
	}
	if err := osBackend.lock(lo, hi); err != nil {
		return nil, &Error{Kind: KindLock, Op: "lock", Addr: addr, Err: err}
	}
	h := &LockHandle{lo: lo, hi: hi}
	runtime.SetFinalizer(h, finalizeLock)
	log.WithFields(log.Fields{"addr": hex(lo), "size": hi - lo}).Debug("pages locked")
	return h, nil
}

// Unlock unpins [addr, addr+size) directly, for callers managing lock
// lifetime themselves rather than through a handle.
func Unlock(addr, size uintptr) error {
	lo, hi, err := boundsOf(addr, size)
	if err != nil {
		return &Error{Kind: KindLock, Op: "unlock", Addr: addr, Err: err}
	}
	if err := osBackend.unlock(lo, hi); err != nil {
		return &Error{Kind: KindLock, Op: "unlock", Addr: addr, Err: err}
	}
	log.WithFields(log.Fields{"addr": hex(lo), "size": hi - lo}).Debug("pages unlocked")
	return nil
}

// Release unpins the locked range. Idempotent.
func (h *LockHandle) Release() error {
	if !atomic.CompareAndSwapInt32(&h.released, 0, 1) {
		return nil
	}
	runtime.SetFinalizer(h, nil)
	if err := osBackend.unlock(h.lo, h.hi); err != nil {
		return &Error{Kind: KindLock, Op: "unlock", Addr: h.lo, Err: err}
	}
	log.WithFields(log.Fields{"addr": hex(h.lo), "size": h.hi - h.lo}).Debug("pages unlocked")
	return nil
}

func finalizeLock(h *LockHandle) {
	if !atomic.CompareAndSwapInt32(&h.released, 0, 1) {
		return
	}
	log.WithFields(log.Fields{"addr": hex(h.lo), "size": h.hi - h.lo}).Warn("lock handle leaked, unlocking at finalizer")
	if err := osBackend.unlock(h.lo, h.hi); err != nil {
		log.WithFields(log.Fields{"addr": hex(h.lo), "error": err}).Error("failed to unlock pages of leaked handle")
	}
}

func hex(addr uintptr) string {
	return fmt.Sprintf("0x%x", addr)
}
