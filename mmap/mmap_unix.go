//go:build darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

// Package mmap maps and unmaps anonymous pages. It exists so tests and
// examples can obtain scratch pages with a known initial protection; it
// does not manage or reuse what it hands out.
package mmap

import (
	"os"

	"golang.org/x/sys/unix"
)

// Mmap returns size bytes of fresh, private, read-write anonymous
// memory. The mapping is page-aligned and zero-filled.
func Mmap(size int) ([]byte, error) {
	data, err := unix.Mmap(
		-1,
		0,
		size,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, os.NewSyscallError("mmap", err)
	}
	return data, nil
}

// Munmap releases a mapping returned by Mmap.
func Munmap(b []byte) error {
	if err := unix.Munmap(b); err != nil {
		return os.NewSyscallError("munmap", err)
	}
	return nil
}
