//go:build darwin

package memregion

import (
	"github.com/eh-steve/memregion/vmmap"
)

// https://developer.apple.com/library/archive/documentation/Performance/Conceptual/ManagingMemory/Articles/VMPages.html
type darwinBackend struct{ posixMutator }

func newBackend() backend { return darwinBackend{} }

func (b darwinBackend) protect(lo, hi uintptr, prot Protection) error {
	return protectSegments(b, lo, hi, prot)
}

func (darwinBackend) regions(lo, hi uintptr) ([]Region, error) {
	raw, err := vmmap.Regions(lo, hi)
	if err != nil {
		return nil, err
	}
	out := make([]Region, 0, len(raw))
	for _, m := range raw {
		out = append(out, Region{
			Base:          m.Base,
			Size:          m.Size,
			Protection:    protFromMach(m.Protection),
			MaxProtection: protFromMach(m.MaxProtection),
			Shared:        m.Shared,
			Committed:     true,
		})
	}
	return out, nil
}

func protFromMach(native int) Protection {
	var p Protection
	if native&vmmap.ProtRead != 0 {
		p |= ProtRead
	}
	if native&vmmap.ProtWrite != 0 {
		p |= ProtWrite
	}
	if native&vmmap.ProtExec != 0 {
		p |= ProtExec
	}
	return p
}
