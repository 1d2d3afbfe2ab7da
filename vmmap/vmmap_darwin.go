//go:build darwin

package vmmap

/*
#include <mach/mach.h>

#if defined(__x86_64__)
#include <mach/mach_vm.h>
#endif

#if defined(__arm64__)
extern kern_return_t mach_vm_region_recurse(mach_port_t target_task,
	mach_vm_address_t *address, mach_vm_size_t *size, natural_t *nesting_depth,
	vm_region_recurse_info_t info, mach_msg_type_number_t *infoCnt);
#endif

mach_port_t get_mach_task_self() {
	return mach_task_self();
}
*/
import "C"
import (
	"unsafe"

	"github.com/pkg/errors"
)

// Mapping is one record from the kernel's VM map, as reported by
// mach_vm_region_recurse. Protection values are VM_PROT_* bit sets.
type Mapping struct {
	Base          uintptr
	Size          uintptr
	Protection    int
	MaxProtection int
	Shared        bool
}

const (
	// VM_PROT_* values, stable mach ABI.
	ProtRead  = 0x1
	ProtWrite = 0x2
	ProtExec  = 0x4
)

// share_mode values from mach/vm_region.h.
const (
	smCow           = 1
	smShared        = 4
	smTrueShared    = 5
	smSharedAliased = 7
)

// Regions walks the task's VM map from lo and returns every mapping
// that starts below hi. Submaps are descended into rather than reported
// as opaque records.
func Regions(lo, hi uintptr) ([]Mapping, error) {
	var info C.vm_region_submap_info_data_64_t
	var count C.mach_msg_type_number_t = C.VM_REGION_SUBMAP_INFO_COUNT_64
	var depth C.natural_t = 0
	task := C.get_mach_task_self()

	var mappings []Mapping
	address := C.mach_vm_address_t(lo)
	for {
		var size C.mach_vm_size_t
		kr := C.mach_vm_region_recurse(task, &address, &size,
			&depth, (C.vm_region_recurse_info_t)(unsafe.Pointer(&info)), &count)
		if kr == C.KERN_INVALID_ADDRESS {
			break
		}
		if kr != C.KERN_SUCCESS {
			return mappings, errors.Errorf("mach_vm_region_recurse at 0x%x: kern_return %d", uintptr(address), int(kr))
		}
		if uintptr(address) >= hi {
			break
		}
		if info.is_submap != 0 {
			depth++
			continue
		}
		share := int(info.share_mode)
		mappings = append(mappings, Mapping{
			Base:          uintptr(address),
			Size:          uintptr(size),
			Protection:    int(info.protection),
			MaxProtection: int(info.max_protection),
			Shared:        share == smShared || share == smTrueShared || share == smSharedAliased,
		})
		address += size
	}
	return mappings, nil
}
