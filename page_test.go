package memregion

import "testing"

func TestPageSize(t *testing.T) {
	ps := PageSize()
	if ps == 0 {
		t.Fatal("page size is zero")
	}
	if ps&(ps-1) != 0 {
		t.Fatalf("page size 0x%x is not a power of two", ps)
	}
	if ps != PageSize() {
		t.Fatal("page size changed between calls")
	}
}

func TestPageFloorCeil(t *testing.T) {
	ps := PageSize()
	for _, tt := range []struct {
		addr, floor, ceil uintptr
	}{
		{0, 0, 0},
		{1, 0, ps},
		{ps - 1, 0, ps},
		{ps, ps, ps},
		{ps + 1, ps, 2 * ps},
		{3*ps - 1, 2 * ps, 3 * ps},
	} {
		if got := PageFloor(tt.addr); got != tt.floor {
			t.Errorf("PageFloor(0x%x) = 0x%x, want 0x%x", tt.addr, got, tt.floor)
		}
		if got := PageCeil(tt.addr); got != tt.ceil {
			t.Errorf("PageCeil(0x%x) = 0x%x, want 0x%x", tt.addr, got, tt.ceil)
		}
	}
}

func TestBoundsOf(t *testing.T) {
	ps := PageSize()

	lo, hi, err := boundsOf(ps+1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if lo != ps || hi != 2*ps {
		t.Fatalf("boundsOf(0x%x, 2) = [0x%x, 0x%x), want [0x%x, 0x%x)", ps+1, lo, hi, ps, 2*ps)
	}

	// The expanded range must always cover the request.
	lo, hi, err = boundsOf(ps-1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if lo != 0 || hi != 2*ps {
		t.Fatalf("unaligned straddling range expanded to [0x%x, 0x%x)", lo, hi)
	}

	if _, _, err := boundsOf(ps, 0); err == nil {
		t.Fatal("zero size accepted")
	}
	if _, _, err := boundsOf(^uintptr(0)-1, 4); err == nil {
		t.Fatal("overflowing range accepted")
	}
	if _, _, err := boundsOf(^uintptr(0)-1, 1); err == nil {
		t.Fatal("range with no page-aligned upper bound accepted")
	}
}
