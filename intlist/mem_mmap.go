//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package intlist

import (
	"fmt"

	"golang.org/x/sys/unix"
)

type directAllocator struct{}

func (directAllocator) Alloc(n int) ([]byte, error) {
	b, err := unix.Mmap(-1, 0, n, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("%w: mmap %d bytes: %v", ErrAllocation, n, err)
	}
	return b, nil
}

func (directAllocator) Free(b []byte) { _ = unix.Munmap(b) }

func (directAllocator) Name() string { return "direct" }

// Direct allocates buffers off the Go heap with anonymous memory mappings.
var Direct Allocator = directAllocator{}
