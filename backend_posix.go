//go:build darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package memregion

import (
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// posixMutator is the mutation half of every unix-family backend.
// Enumeration differs per OS and lives in the per-OS files; the
// whole-range protect entry point also lives there, because it needs
// the enumerator (see protectSegments).
type posixMutator struct{}

// protToNative translates a Protection set into PROT_* bits. The set is
// passed to the kernel as-is; combinations the mmu cannot express
// (write without read on mainstream hardware) are upgraded silently by
// the kernel, not rejected here.
func protToNative(p Protection) int {
	prot := unix.PROT_NONE
	if p.Read() {
		prot |= unix.PROT_READ
	}
	if p.Write() {
		prot |= unix.PROT_WRITE
	}
	if p.Execute() {
		prot |= unix.PROT_EXEC
	}
	return prot
}

// enumerator is the slice of the backend contract protectSegments needs.
type enumerator interface {
	regions(lo, hi uintptr) ([]Region, error)
}

// protectSegments changes protection one OS segment at a time, rolling
// back the segments already changed if a later one fails, so a failed
// call leaves no visible change. A single mprotect over the whole range
// would not give that: the kernel updates leading vmas before failing
// at an unmapped gap. Gaps are detected from the enumeration and fail
// the same way, before the kernel ever sees the hole.
func protectSegments(e enumerator, lo, hi uintptr, prot Protection) error {
	raw, err := e.regions(lo, hi)
	if err != nil {
		return errors.Wrapf(err, "mprotect 0x%x-0x%x: enumerating segments", lo, hi)
	}
	type applied struct {
		lo, hi uintptr
		old    Protection
	}
	var done []applied
	rollback := func() {
		for i := len(done) - 1; i >= 0; i-- {
			_ = unix.Mprotect(sliceOf(done[i].lo, done[i].hi), protToNative(done[i].old))
		}
	}
	addr := lo
	for _, seg := range normalize(raw) {
		if addr >= hi {
			break
		}
		if seg.End() <= addr {
			continue
		}
		if seg.Base > addr {
			rollback()
			return errors.Wrapf(unix.ENOMEM, "mprotect 0x%x-0x%x: unmapped gap at 0x%x", lo, hi, addr)
		}
		end := seg.End()
		if end > hi {
			end = hi
		}
		if err := unix.Mprotect(sliceOf(addr, end), protToNative(prot)); err != nil {
			rollback()
			return errors.Wrapf(err, "mprotect 0x%x-0x%x %s", addr, end, prot)
		}
		done = append(done, applied{lo: addr, hi: end, old: seg.Protection})
		addr = end
	}
	if addr < hi {
		rollback()
		return errors.Wrapf(unix.ENOMEM, "mprotect 0x%x-0x%x: unmapped gap at 0x%x", lo, hi, addr)
	}
	return nil
}

// protectRegion reinstates one previously captured segment. The range
// is known mapped, so no rollback dance is needed.
func (posixMutator) protectRegion(r Region) error {
	if err := unix.Mprotect(sliceOf(r.Base, r.End()), protToNative(r.Protection)); err != nil {
		return errors.Wrapf(err, "mprotect 0x%x-0x%x %s", r.Base, r.End(), r.Protection)
	}
	return nil
}

func (posixMutator) lock(lo, hi uintptr) error {
	if err := unix.Mlock(sliceOf(lo, hi)); err != nil {
		return errors.Wrapf(err, "mlock 0x%x-0x%x", lo, hi)
	}
	return nil
}

func (posixMutator) unlock(lo, hi uintptr) error {
	if err := unix.Munlock(sliceOf(lo, hi)); err != nil {
		return errors.Wrapf(err, "munlock 0x%x-0x%x", lo, hi)
	}
	return nil
}

// sliceOf views [lo, hi) as a byte slice, which is how x/sys/unix wants
// its memory ranges. The slice is never read or written here.
func sliceOf(lo, hi uintptr) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(lo)), hi-lo)
}
