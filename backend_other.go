//go:build !(linux || freebsd || netbsd || darwin || windows)

package memregion

import (
	"runtime"

	"github.com/pkg/errors"
)

// unsupportedBackend keeps the package compiling on systems without an
// enumeration strategy. Every operation fails.
type unsupportedBackend struct{}

func newBackend() backend { return unsupportedBackend{} }

func (unsupportedBackend) regions(lo, hi uintptr) ([]Region, error) {
	return nil, errors.Errorf("memory region enumeration is not supported on %s", runtime.GOOS)
}

func (unsupportedBackend) protect(lo, hi uintptr, prot Protection) error {
	return errors.Errorf("protection changes are not supported on %s", runtime.GOOS)
}

func (unsupportedBackend) protectRegion(r Region) error {
	return errors.Errorf("protection changes are not supported on %s", runtime.GOOS)
}

func (unsupportedBackend) lock(lo, hi uintptr) error {
	return errors.Errorf("page locking is not supported on %s", runtime.GOOS)
}

func (unsupportedBackend) unlock(lo, hi uintptr) error {
	return errors.Errorf("page locking is not supported on %s", runtime.GOOS)
}
