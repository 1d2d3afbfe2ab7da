package memregion

import (
	"errors"
	"fmt"
)

// Kind partitions failures by the operation family that produced them.
// Callers match on kind rather than on the wrapped OS error code, which
// keeps handling logic portable.
type Kind int

const (
	// KindQuery covers enumeration and inspection failures: invalid
	// ranges, unmapped addresses, permission denied reading the map.
	KindQuery Kind = iota
	// KindProtect covers protection-change failures: unsupported
	// combinations, unmapped targets, denied transitions.
	KindProtect
	// KindLock covers page pin/unpin failures, most commonly an
	// exhausted RLIMIT_MEMLOCK quota.
	KindLock
)

func (k Kind) String() string {
	switch k {
	case KindQuery:
		return "query"
	case KindProtect:
		return "protect"
	case KindLock:
		return "lock"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ErrUnmappedRegion reports that no mapping covers the requested
// address. Reachable through errors.Is on any query failure caused by
// an unmapped target.
var ErrUnmappedRegion = errors.New("address range is not mapped")

// Error is the failure type returned by every operation in this
// package. It wraps the originating OS error for diagnostics.
type Error struct {
	Kind Kind
	Op   string
	Addr uintptr
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("memregion: %s 0x%x: %v", e.Op, e.Addr, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func hasKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}

// IsQueryError reports whether err is a region enumeration failure.
func IsQueryError(err error) bool { return hasKind(err, KindQuery) }

// IsProtectError reports whether err is a protection-change failure.
func IsProtectError(err error) bool { return hasKind(err, KindProtect) }

// IsLockError reports whether err is a page lock/unlock failure.
func IsLockError(err error) bool { return hasKind(err, KindLock) }
