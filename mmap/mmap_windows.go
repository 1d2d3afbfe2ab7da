//go:build windows

// Package mmap maps and unmaps anonymous pages. It exists so tests and
// examples can obtain scratch pages with a known initial protection; it
// does not manage or reuse what it hands out.
package mmap

import (
	"os"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Mmap returns size bytes of fresh, private, read-write anonymous
// memory. The mapping is page-aligned and zero-filled.
func Mmap(size int) ([]byte, error) {
	addr, err := windows.VirtualAlloc(
		0,
		uintptr(size),
		windows.MEM_COMMIT|windows.MEM_RESERVE,
		windows.PAGE_READWRITE)
	if err != nil {
		return nil, os.NewSyscallError("VirtualAlloc", err)
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), size), nil
}

// Munmap releases a mapping returned by Mmap.
func Munmap(b []byte) error {
	if err := windows.VirtualFree(uintptr(unsafe.Pointer(&b[0])), 0, windows.MEM_RELEASE); err != nil {
		return os.NewSyscallError("VirtualFree", err)
	}
	return nil
}
