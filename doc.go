// Package memregion inspects and manipulates the virtual memory regions
// of the current process: enumerating mappings, changing page protection
// (with optional scoped restoration), and pinning pages into physical
// memory. One semantic model is exposed on every supported OS; the
// per-OS syscall sequences live behind a single backend interface
// selected at build time.
//
// All operations are synchronous and perform their OS calls inline. The
// package holds no mutable shared state beyond the cached page size, so
// concurrent callers are safe with respect to the package itself. Page
// protection is process-global state, however: two goroutines mutating
// overlapping ranges race exactly as raw mprotect calls would, and a
// Guard's captured protection snapshot can go stale if another thread
// changes protection on the same range before the guard is released.
package memregion
