package memregion

import (
	"reflect"
	"testing"
)

func TestRegionContains(t *testing.T) {
	ps := PageSize()
	r := Region{Base: 4 * ps, Size: 2 * ps}
	if r.End() != 6*ps {
		t.Fatalf("End() = 0x%x, want 0x%x", r.End(), 6*ps)
	}
	if !r.Contains(4 * ps) || !r.Contains(6*ps - 1) {
		t.Fatal("region does not contain its own bounds")
	}
	if r.Contains(6*ps) || r.Contains(4*ps-1) {
		t.Fatal("region contains addresses outside itself")
	}
}

func TestNormalizeSortsAndMerges(t *testing.T) {
	ps := PageSize()
	rw := Region{Protection: ProtReadWrite, MaxProtection: ProtReadWrite, Committed: true}

	a := rw
	a.Base, a.Size = 2*ps, ps
	b := rw
	b.Base, b.Size = 3*ps, ps
	c := rw
	c.Base, c.Size = 0, ps

	got := normalize([]Region{b, c, a})
	want := []Region{
		{Base: 0, Size: ps, Protection: ProtReadWrite, MaxProtection: ProtReadWrite, Committed: true},
		{Base: 2 * ps, Size: 2 * ps, Protection: ProtReadWrite, MaxProtection: ProtReadWrite, Committed: true},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("normalize = %+v, want %+v", got, want)
	}
}

func TestNormalizeKeepsDistinctAttributes(t *testing.T) {
	ps := PageSize()
	for name, second := range map[string]Region{
		"protection": {Base: ps, Size: ps, Protection: ProtRead, Committed: true},
		"sharing":    {Base: ps, Size: ps, Protection: ProtReadWrite, Shared: true, Committed: true},
		"path":       {Base: ps, Size: ps, Protection: ProtReadWrite, Committed: true, Path: "/lib/other.so"},
		"guarded":    {Base: ps, Size: ps, Protection: ProtReadWrite, Committed: true, Guarded: true},
	} {
		first := Region{Base: 0, Size: ps, Protection: ProtReadWrite, Committed: true}
		if got := normalize([]Region{first, second}); len(got) != 2 {
			t.Errorf("%s: adjacent regions with differing attributes merged: %+v", name, got)
		}
	}
}

func TestNormalizeLeavesGaps(t *testing.T) {
	ps := PageSize()
	a := Region{Base: 0, Size: ps, Protection: ProtReadWrite, Committed: true}
	b := Region{Base: 2 * ps, Size: ps, Protection: ProtReadWrite, Committed: true}
	got := normalize([]Region{a, b})
	if len(got) != 2 {
		t.Fatalf("regions across an unmapped gap merged: %+v", got)
	}
}
