//go:build windows

package memregion

import (
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/windows"
)

type windowsBackend struct{}

func newBackend() backend { return windowsBackend{} }

// MEMORY_BASIC_INFORMATION state/type values not exported by
// x/sys/windows.
const (
	memFree    = 0x10000
	memMapped  = 0x40000
	memPrivate = 0x20000
	memImage   = 0x1000000

	pageGuard        = 0x100
	pageNoCache      = 0x200
	pageWriteCombine = 0x400
	pageModifierMask = pageGuard | pageNoCache | pageWriteCombine
)

func (windowsBackend) regions(lo, hi uintptr) ([]Region, error) {
	var out []Region
	addr := lo
	for addr < hi {
		var mbi windows.MemoryBasicInformation
		if err := windows.VirtualQuery(addr, &mbi, unsafe.Sizeof(mbi)); err != nil {
			if err == windows.ERROR_INVALID_PARAMETER {
				// Past the highest user-mode address.
				break
			}
			return nil, errors.Wrapf(err, "VirtualQuery 0x%x", addr)
		}
		if mbi.State != memFree {
			out = append(out, Region{
				Base:          mbi.BaseAddress,
				Size:          mbi.RegionSize,
				Protection:    protFromNative(mbi.Protect),
				MaxProtection: protFromNative(mbi.AllocationProtect),
				Shared:        mbi.Type == memMapped,
				Guarded:       mbi.Protect&pageGuard != 0,
				Committed:     mbi.State == windows.MEM_COMMIT,
			})
		}
		next := mbi.BaseAddress + mbi.RegionSize
		if next <= addr {
			break
		}
		addr = next
	}
	return out, nil
}

func (b windowsBackend) protect(lo, hi uintptr, prot Protection) error {
	return b.applyNative(lo, hi, protToNative(prot))
}

// protectRegion reinstates modifier bits (PAGE_GUARD and friends) that a
// plain Protection value cannot carry, so guard restoration round-trips
// them.
func (b windowsBackend) protectRegion(r Region) error {
	native := protToNative(r.Protection)
	if r.Guarded {
		native |= pageGuard
	}
	return b.applyNative(r.Base, r.End(), native)
}

// applyNative changes protection segment by segment, because
// VirtualProtect refuses ranges spanning separate VirtualAlloc
// reservations. A failure part-way through rolls back the segments
// already changed, so a failed call leaves no visible change.
func (b windowsBackend) applyNative(lo, hi uintptr, native uint32) error {
	type applied struct {
		addr, size uintptr
		old        uint32
	}
	var done []applied
	rollback := func() {
		for i := len(done) - 1; i >= 0; i-- {
			var scratch uint32
			_ = windows.VirtualProtect(done[i].addr, done[i].size, done[i].old, &scratch)
		}
	}
	addr := lo
	for addr < hi {
		var mbi windows.MemoryBasicInformation
		if err := windows.VirtualQuery(addr, &mbi, unsafe.Sizeof(mbi)); err != nil {
			rollback()
			return errors.Wrapf(err, "VirtualQuery 0x%x", addr)
		}
		end := mbi.BaseAddress + mbi.RegionSize
		if end > hi {
			end = hi
		}
		size := end - addr
		var old uint32
		if err := windows.VirtualProtect(addr, size, native, &old); err != nil {
			rollback()
			return errors.Wrapf(err, "VirtualProtect 0x%x-0x%x 0x%x", addr, end, native)
		}
		done = append(done, applied{addr: addr, size: size, old: old})
		addr = end
	}
	return nil
}

func (windowsBackend) lock(lo, hi uintptr) error {
	if err := windows.VirtualLock(lo, hi-lo); err != nil {
		return errors.Wrapf(err, "VirtualLock 0x%x-0x%x", lo, hi)
	}
	return nil
}

func (windowsBackend) unlock(lo, hi uintptr) error {
	if err := windows.VirtualUnlock(lo, hi-lo); err != nil {
		return errors.Wrapf(err, "VirtualUnlock 0x%x-0x%x", lo, hi)
	}
	return nil
}

// protToNative picks the PAGE_* constant closest to the requested set.
// Windows has no write-without-read constants, so those combinations
// are upgraded silently.
func protToNative(p Protection) uint32 {
	switch {
	case p.Execute():
		switch {
		case p.Write():
			return windows.PAGE_EXECUTE_READWRITE
		case p.Read():
			return windows.PAGE_EXECUTE_READ
		default:
			return windows.PAGE_EXECUTE
		}
	case p.Write():
		return windows.PAGE_READWRITE
	case p.Read():
		return windows.PAGE_READONLY
	default:
		return windows.PAGE_NOACCESS
	}
}

func protFromNative(native uint32) Protection {
	switch native &^ pageModifierMask {
	case windows.PAGE_READONLY:
		return ProtRead
	case windows.PAGE_READWRITE, windows.PAGE_WRITECOPY:
		return ProtReadWrite
	case windows.PAGE_EXECUTE:
		return ProtExec
	case windows.PAGE_EXECUTE_READ:
		return ProtReadExec
	case windows.PAGE_EXECUTE_READWRITE, windows.PAGE_EXECUTE_WRITECOPY:
		return ProtReadWriteExec
	default:
		return ProtNone
	}
}
