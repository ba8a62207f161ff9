// Package intlist defines a minimal append-only sequence of int32 values
// with several interchangeable backing stores. The stores differ only in
// representation: boxed elements, a contiguous array, and raw byte buffers
// in a fixed byte order, either on or off the Go heap.
package intlist

import (
	"errors"
	"fmt"
	"math"

	"github.com/mknyszek/intlist-bench/jrand"
)

// List is an append-only, random-access sequence of int32.
type List interface {
	// Len returns the number of appended values.
	Len() int
	// Append adds v at index Len(). It fails with ErrAllocation if the
	// backing store cannot grow, in which case the list is unchanged.
	Append(v int32) error
	// At returns the value at index i. It fails with ErrIndexOutOfRange
	// unless 0 <= i < Len().
	At(i int) (int32, error)
}

var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrAllocation      = errors.New("allocation failed")
)

// IndexError describes an invalid At call.
type IndexError struct {
	Index, Len int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index %d out of range [0, %d)", e.Index, e.Len)
}

func (e *IndexError) Unwrap() error { return ErrIndexOutOfRange }

const (
	initialElems = 8
	initialBytes = initialElems * 4

	// maxElems bounds every variant to 32-bit indices.
	maxElems = math.MaxInt32
)

// grow returns the doubled capacity, or an error if doubling would pass limit.
func grow(capacity, limit int) (int, error) {
	next := capacity * 2
	if next > limit || next < capacity {
		return 0, fmt.Errorf("%w: cannot grow capacity %d past limit %d", ErrAllocation, capacity, limit)
	}
	return next, nil
}

// Fill appends n values drawn from r.
func Fill(l List, n int, r *jrand.Rand) error {
	for i := 0; i < n; i++ {
		if err := l.Append(r.Int32()); err != nil {
			return fmt.Errorf("filling element %d: %w", i, err)
		}
	}
	return nil
}

// Sum adds the first n elements with wrapping arithmetic.
func Sum(l List, n int) (int32, error) {
	var sum int32
	for i := 0; i < n; i++ {
		v, err := l.At(i)
		if err != nil {
			return 0, err
		}
		sum += v
	}
	return sum, nil
}
