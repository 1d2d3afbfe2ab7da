package memregion

// backend is the per-OS adapter. One implementation exists per OS
// family, chosen at build time by file tags; newBackend is defined in
// each per-OS file. Tests substitute a stub through the package var.
//
// All addresses handed to a backend are already page-aligned.
type backend interface {
	// regions returns the raw records intersecting [lo, hi): the full
	// extent of each OS mapping, unclipped, in whatever order the OS
	// reports them. An empty slice (not an error) means no mapped
	// memory in the window.
	regions(lo, hi uintptr) ([]Region, error)
	// protect applies prot to the whole of [lo, hi). On failure no
	// visible change may remain.
	protect(lo, hi uintptr, prot Protection) error
	// protectRegion reinstates a previously captured region, including
	// any platform pass-through attributes (windows PAGE_GUARD) that a
	// plain Protection value cannot carry.
	protectRegion(r Region) error
	// lock pins [lo, hi) into physical memory; unlock releases it.
	lock(lo, hi uintptr) error
	unlock(lo, hi uintptr) error
}

var osBackend backend = newBackend()
