package intlist

import (
	"fmt"
	"sort"

	"github.com/mknyszek/intlist-bench/jrand"
)

type factory struct {
	desc string
	new  func() (List, error)
}

func bytesFactory(order Order, alloc Allocator) func() (List, error) {
	return func() (List, error) {
		l, err := NewBytes(order, alloc)
		if err != nil {
			return nil, err
		}
		return l, nil
	}
}

var lists = map[string]factory{
	"boxed": {
		desc: "growable array of individually allocated elements",
		new:  func() (List, error) { return NewBoxed(), nil },
	},
	"array": {
		desc: "growable contiguous []int32",
		new:  func() (List, error) { return NewArray(), nil },
	},
	"direct": {
		desc: "off-heap byte buffer, big-endian",
		new:  bytesFactory(BigEndian, Direct),
	},
	"direct-native": {
		desc: "off-heap byte buffer, host byte order",
		new:  bytesFactory(Native, Direct),
	},
	"heap-native": {
		desc: "heap byte buffer, host byte order",
		new:  bytesFactory(Native, Heap),
	},
}

// Lists returns the registered implementation names in sorted order.
func Lists() []string {
	var s []string
	for name := range lists {
		s = append(s, name)
	}
	sort.Strings(s)
	return s
}

// Describe returns a one-line description of a registered implementation.
func Describe(name string) string {
	return lists[name].desc
}

// New creates an empty list of the named implementation.
func New(name string) (List, error) {
	f, ok := lists[name]
	if !ok {
		return nil, fmt.Errorf("unknown list implementation %q", name)
	}
	return f.new()
}

// NewFilled creates the named list and appends n values from a generator
// seeded with seed.
func NewFilled(name string, n int, seed int64) (List, error) {
	l, err := New(name)
	if err != nil {
		return nil, err
	}
	if err := Fill(l, n, jrand.New(seed)); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return l, nil
}
