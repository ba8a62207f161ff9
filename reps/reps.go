// Package reps decides how many full scans a timing measurement performs.
package reps

import "math"

// Controller returns the repetition count for the next measurement of a
// collection of size elements.
type Controller interface {
	// Next is given the mean ns-per-element observed for this size so far
	// and how many stabilized samples that mean is based on.
	Next(size int, meanNs float64, samples int) int
}

// Fixed keeps the number of elements touched per measurement roughly
// constant: Total / size repetitions.
type Fixed struct {
	Total int `json:"total" yaml:"total"`
}

func (c *Fixed) Next(size int, _ float64, _ int) int {
	return clamp(float64(c.Total)/float64(size), 1, math.MaxInt32)
}

// AdaptiveConfig configures an Adaptive controller.
type AdaptiveConfig struct {
	// TargetNs is the wall-clock time one measurement should take.
	TargetNs float64 `json:"target_ns" yaml:"target_ns"`
	// Initial is the total-element budget used until a mean is known.
	Initial int `json:"initial" yaml:"initial"`
	Min     int `json:"min" yaml:"min"`
	Max     int `json:"max" yaml:"max"`
}

// Adaptive projects the repetition count needed to hit a target duration
// from the mean per-element cost of earlier stabilized passes.
type Adaptive struct {
	AdaptiveConfig
}

func NewAdaptive(cfg *AdaptiveConfig) *Adaptive {
	return &Adaptive{AdaptiveConfig: *cfg}
}

func (c *Adaptive) Next(size int, meanNs float64, samples int) int {
	var raw float64
	if samples == 0 || !(meanNs > 0) {
		raw = float64(c.Initial) / float64(size)
	} else {
		raw = c.TargetNs / meanNs / float64(size)
	}
	min, max := c.Min, c.Max
	if min < 1 {
		min = 1
	}
	if max <= 0 {
		max = math.MaxInt32
	}
	return clamp(raw, min, max)
}

func clamp(raw float64, min, max int) int {
	if raw < float64(min) {
		return min
	} else if raw > float64(max) {
		return max
	}
	return int(raw)
}
