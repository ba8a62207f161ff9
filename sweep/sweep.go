// Package sweep defines the named sequences of collection sizes that the
// drivers iterate over.
package sweep

import (
	"fmt"
	"math"
	"sort"
)

// Generate returns the sizes of the named sweep in increasing order.
func Generate(name string) ([]int, error) {
	g, ok := generators[name]
	if !ok {
		return nil, fmt.Errorf("sweep %q not found", name)
	}
	return generate(g()), nil
}

// Generators returns the names of all sweeps in sorted order.
func Generators() []string {
	var s []string
	for name := range generators {
		s = append(s, name)
	}
	sort.Strings(s)
	return s
}

// Range returns the decade sweep from min up to and including max.
func Range(min, max int) []int {
	return generate(exec{sizes: geometric(float64(min), 10).round(), max: max})
}

func generate(e exec) []int {
	var s []int
	for {
		v := int(e.sizes())
		if v > e.max {
			return s
		}
		if len(s) > 0 && v <= s[len(s)-1] {
			continue
		}
		s = append(s, v)
	}
}

type exec struct {
	sizes stream
	max   int
}

var generators = map[string]func() exec{
	"decades": func() exec {
		return exec{
			sizes: geometric(1000, 10).round(),
			max:   10_000_000,
		}
	},
	"half-decades": func() exec {
		return exec{
			sizes: geometric(1000, math.Sqrt(10)).round(),
			max:   10_000_000,
		}
	},
	"pow2": func() exec {
		return exec{
			sizes: geometric(1<<10, 2),
			max:   1 << 24,
		}
	},
	"quick": func() exec {
		return exec{
			sizes: geometric(1000, 10).round(),
			max:   100_000,
		}
	},
}

type stream func() float64

func geometric(start, ratio float64) stream {
	v := start
	return func() float64 {
		r := v
		v *= ratio
		return r
	}
}

func (f stream) round() stream {
	return func() float64 {
		return math.Round(f())
	}
}
