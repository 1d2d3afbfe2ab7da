package memregion

// Region describes one contiguous span of the process's address space
// with uniform attributes. Base and Base+Size are always page-aligned.
//
// Regions report the full extent of the underlying OS mapping: a query
// for a sub-range returns the whole mapping containing it, never a
// clipped view, because protection and sharing are properties of the
// mapping rather than of the bytes that happened to be asked about.
type Region struct {
	// Base is the page-aligned start address.
	Base uintptr
	// Size is the length in bytes, a multiple of the page size.
	Size uintptr
	// Protection is the current access protection.
	Protection Protection
	// MaxProtection is the most permissive protection the region can be
	// changed to, on systems that track one (darwin max_protection,
	// windows AllocationProtect). Equal to Protection elsewhere.
	MaxProtection Protection
	// Shared reports whether modifications are visible outside this
	// process (MAP_SHARED mappings, shared windows sections).
	Shared bool
	// Guarded reports a windows PAGE_GUARD region. Always false on
	// other systems.
	Guarded bool
	// Committed reports whether the pages are backed (windows
	// MEM_COMMIT). POSIX backends only report mapped memory, so it is
	// always true there.
	Committed bool
	// Path names the backing file when the OS reports one.
	Path string
}

// End returns the first address past the region.
func (r Region) End() uintptr { return r.Base + r.Size }

// Contains reports whether addr falls inside the region.
func (r Region) Contains(addr uintptr) bool {
	return addr >= r.Base && addr < r.End()
}

// sameAttributes reports whether two regions may be merged into one
// descriptor: everything but base and size must agree. Path is part of
// the key, since merging across different backing files would fabricate
// a descriptor no OS reported.
func (r Region) sameAttributes(o Region) bool {
	return r.Protection == o.Protection &&
		r.MaxProtection == o.MaxProtection &&
		r.Shared == o.Shared &&
		r.Guarded == o.Guarded &&
		r.Committed == o.Committed &&
		r.Path == o.Path
}
