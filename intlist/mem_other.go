//go:build !(linux || darwin || dragonfly || freebsd || netbsd || openbsd)

package intlist

// Direct falls back to the Go heap on platforms without anonymous mmap.
var Direct Allocator = heapAllocator{}
