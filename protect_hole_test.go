//go:build freebsd || linux || netbsd

package memregion

import (
	"testing"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/eh-steve/memregion/mmap"
)

// A protect over a partially mapped range must fail without leaving the
// mapped parts changed: the kernel's own mprotect updates leading vmas
// before failing at the hole, so the backend has to apply per segment
// and roll back.
func TestProtectAcrossHoleLeavesNoChange(t *testing.T) {
	ps := PageSize()
	page, err := mmap.Mmap(int(3 * ps))
	if err != nil {
		t.Fatal(err)
	}
	addr := uintptr(unsafe.Pointer(&page[0]))

	// Punch out the middle page. unix.Munmap refuses sub-slices of a
	// registered mapping, so partial unmaps go through the raw syscall.
	if _, _, errno := unix.Syscall(unix.SYS_MUNMAP, addr+ps, ps, 0); errno != 0 {
		t.Fatal(errno)
	}
	defer unix.Syscall(unix.SYS_MUNMAP, addr, ps, 0)
	defer unix.Syscall(unix.SYS_MUNMAP, addr+2*ps, ps, 0)

	if err := Protect(addr, 3*ps, ProtRead); !IsProtectError(err) {
		t.Fatalf("protect across an unmapped hole: got %v", err)
	}
	for _, pageAddr := range []uintptr{addr, addr + 2*ps} {
		r, err := Query(pageAddr)
		if err != nil {
			t.Fatal(err)
		}
		if !r.Protection.Write() {
			t.Fatalf("failed protect changed the page at 0x%x to %s", pageAddr, r.Protection)
		}
	}

	guard, err := ProtectWithGuard(addr, 3*ps, ProtRead)
	if guard != nil {
		t.Fatal("got a guard for a partially mapped range")
	}
	if !IsProtectError(err) {
		t.Fatalf("scoped protect across an unmapped hole: got %v", err)
	}
	for _, pageAddr := range []uintptr{addr, addr + 2*ps} {
		r, err := Query(pageAddr)
		if err != nil {
			t.Fatal(err)
		}
		if !r.Protection.Write() {
			t.Fatalf("failed scoped protect changed the page at 0x%x to %s", pageAddr, r.Protection)
		}
	}
}
