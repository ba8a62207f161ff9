package intlist

import (
	"encoding/binary"
	"fmt"
	"runtime"
)

// Order selects the 4-byte encoding of a byte-buffer list.
type Order int

const (
	// BigEndian is the default network order; reading it on a
	// little-endian host costs a byte swap per element.
	BigEndian Order = iota
	LittleEndian
	// Native resolves to the host CPU byte order at construction.
	Native
)

func (o Order) String() string {
	switch o {
	case BigEndian:
		return "big-endian"
	case LittleEndian:
		return "little-endian"
	case Native:
		return "native"
	}
	return fmt.Sprintf("Order(%d)", int(o))
}

func (o Order) resolve() Order {
	if o != Native {
		return o
	}
	if binary.NativeEndian.Uint16([]byte{1, 0}) == 1 {
		return LittleEndian
	}
	return BigEndian
}

// Allocator provides raw storage for byte-buffer lists.
type Allocator interface {
	Alloc(n int) ([]byte, error)
	Free(b []byte)
	// Name is "heap" or "direct".
	Name() string
}

type heapAllocator struct{}

func (heapAllocator) Alloc(n int) ([]byte, error) { return make([]byte, n), nil }
func (heapAllocator) Free([]byte)                 {}
func (heapAllocator) Name() string                { return "heap" }

// Heap allocates buffers on the Go heap.
var Heap Allocator = heapAllocator{}

// Bytes stores elements as 4-byte encodings in a raw buffer with a byte
// order fixed at construction.
type Bytes struct {
	buf   []byte
	n     int
	big   bool
	order Order
	alloc Allocator
	limit int
}

// NewBytes returns an empty byte-buffer list with the given encoding and
// allocator. Buffers from allocators that need explicit release are freed
// on growth and when the list becomes unreachable.
func NewBytes(order Order, alloc Allocator) (*Bytes, error) {
	buf, err := alloc.Alloc(initialBytes)
	if err != nil {
		return nil, err
	}
	order = order.resolve()
	l := &Bytes{
		buf:   buf,
		big:   order == BigEndian,
		order: order,
		alloc: alloc,
		limit: maxElems,
	}
	if alloc != Heap {
		runtime.SetFinalizer(l, (*Bytes).release)
	}
	return l, nil
}

// Order returns the resolved byte order of the encoding.
func (l *Bytes) Order() Order { return l.order }

// Allocator returns the allocator backing the buffer.
func (l *Bytes) Allocator() Allocator { return l.alloc }

func (l *Bytes) Len() int { return l.n }

func (l *Bytes) Append(v int32) error {
	pos := l.n * 4
	if pos >= len(l.buf) {
		c, err := grow(len(l.buf)/4, l.limit)
		if err != nil {
			return err
		}
		buf, err := l.alloc.Alloc(c * 4)
		if err != nil {
			return err
		}
		copy(buf, l.buf)
		l.alloc.Free(l.buf)
		l.buf = buf
	}
	if l.big {
		binary.BigEndian.PutUint32(l.buf[pos:], uint32(v))
	} else {
		binary.LittleEndian.PutUint32(l.buf[pos:], uint32(v))
	}
	l.n++
	return nil
}

func (l *Bytes) At(i int) (int32, error) {
	if i < 0 || i >= l.n {
		return 0, &IndexError{Index: i, Len: l.n}
	}
	p := l.buf[i*4 : i*4+4]
	if l.big {
		return int32(binary.BigEndian.Uint32(p)), nil
	}
	return int32(binary.LittleEndian.Uint32(p)), nil
}

func (l *Bytes) release() {
	if l.buf != nil {
		l.alloc.Free(l.buf)
		l.buf = nil
	}
}
