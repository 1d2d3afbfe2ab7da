//go:build darwin && !cgo

package vmmap

import "github.com/pkg/errors"

type Mapping struct {
	Base          uintptr
	Size          uintptr
	Protection    int
	MaxProtection int
	Shared        bool
}

const (
	ProtRead  = 0x1
	ProtWrite = 0x2
	ProtExec  = 0x4
)

// Walking the mach VM map needs mach_vm_region_recurse, which is only
// reachable through cgo.
func Regions(lo, hi uintptr) ([]Mapping, error) {
	return nil, errors.New("vmmap: enumerating regions on darwin requires cgo")
}
