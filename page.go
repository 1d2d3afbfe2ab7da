package memregion

import (
	"os"
	"sync"

	"github.com/pkg/errors"
)

var (
	pageSizeOnce sync.Once
	pageSize     uintptr
)

// PageSize returns the operating system's page granularity in bytes.
// The value is queried once and cached for the lifetime of the process.
func PageSize() uintptr {
	pageSizeOnce.Do(func() {
		pageSize = uintptr(os.Getpagesize())
	})
	return pageSize
}

// PageFloor rounds an address down to the nearest page boundary.
func PageFloor(addr uintptr) uintptr {
	return addr & ^(PageSize() - 1)
}

// PageCeil rounds an address up to the nearest page boundary. The result
// wraps to zero for addresses within the last page of the address space;
// boundsOf rejects such ranges before any caller gets here.
func PageCeil(addr uintptr) uintptr {
	return PageFloor(addr + PageSize() - 1)
}

// boundsOf expands [addr, addr+size) outward to page boundaries,
// rejecting empty and overflowing ranges.
func boundsOf(addr, size uintptr) (lo, hi uintptr, err error) {
	if size == 0 {
		return 0, 0, errors.New("size must not be zero")
	}
	end := addr + size
	if end < addr {
		return 0, 0, errors.Errorf("range 0x%x+0x%x overflows the address space", addr, size)
	}
	lo = PageFloor(addr)
	hi = PageCeil(end)
	if hi < end {
		return 0, 0, errors.Errorf("range 0x%x+0x%x has no page-aligned upper bound", addr, size)
	}
	return lo, hi, nil
}
