// Package intop provides the per-element transforms used to vary the amount
// of work done per element in throughput runs.
package intop

import (
	"fmt"
	"sort"
)

// Op is a pure int32 transform.
type Op int

const (
	ID Op = iota
	X2
	X27
	X31
	X37
)

var names = map[string]Op{
	"id":  ID,
	"x2":  X2,
	"x27": X27,
	"x31": X31,
	"x37": X37,
}

// Apply evaluates the transform. Multiplication wraps on overflow.
func (o Op) Apply(x int32) int32 {
	switch o {
	case X2:
		return x * 2
	case X27:
		return x * 27
	case X31:
		return x * 31
	case X37:
		return x * 37
	}
	return x
}

func (o Op) String() string {
	for name, op := range names {
		if op == o {
			return name
		}
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

// Ops returns the registered operation names in sorted order.
func Ops() []string {
	var s []string
	for name := range names {
		s = append(s, name)
	}
	sort.Strings(s)
	return s
}

// Parse looks up an operation by name.
func Parse(name string) (Op, error) {
	o, ok := names[name]
	if !ok {
		return 0, fmt.Errorf("unknown operation %q", name)
	}
	return o, nil
}
