package memregion

import "sort"

// Query returns the region covering addr. It fails with a KindQuery
// error wrapping ErrUnmappedRegion if no mapping covers the address.
func Query(addr uintptr) (Region, error) {
	regions, err := queryWindow(addr, 1, "query")
	if err != nil {
		return Region{}, err
	}
	for _, r := range regions {
		if r.Contains(addr) {
			return r, nil
		}
	}
	return Region{}, &Error{Kind: KindQuery, Op: "query", Addr: addr, Err: ErrUnmappedRegion}
}

// QueryRange returns the regions intersecting [addr, addr+size), sorted
// ascending by base address and pairwise non-overlapping. Adjacent
// records with identical attributes are merged, so OS-internal
// bookkeeping splits never show up as distinct regions. Unmapped gaps
// are simply absent from the result; a range with no mapped memory at
// all yields an empty slice, not an error.
//
// The first and last regions are not clipped to the request: the full
// extent of each underlying mapping is reported, so the result always
// covers at least [addr, addr+size) wherever memory is mapped.
func QueryRange(addr, size uintptr) ([]Region, error) {
	return queryWindow(addr, size, "query_range")
}

func queryWindow(addr, size uintptr, op string) ([]Region, error) {
	lo, hi, err := boundsOf(addr, size)
	if err != nil {
		return nil, &Error{Kind: KindQuery, Op: op, Addr: addr, Err: err}
	}
	raw, err := osBackend.regions(lo, hi)
	if err != nil {
		return nil, &Error{Kind: KindQuery, Op: op, Addr: addr, Err: err}
	}
	return normalize(raw), nil
}

// normalize sorts raw backend records ascending and merges adjacent
// records whose attributes agree. Most backends already return sorted
// records; none are trusted to.
func normalize(raw []Region) []Region {
	sort.Slice(raw, func(i, j int) bool { return raw[i].Base < raw[j].Base })
	out := make([]Region, 0, len(raw))
	for _, r := range raw {
		if n := len(out); n > 0 && out[n-1].End() == r.Base && out[n-1].sameAttributes(r) {
			out[n-1].Size += r.Size
			continue
		}
		out = append(out, r)
	}
	return out
}
