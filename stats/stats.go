// Package stats accumulates timing samples.
package stats

import (
	"fmt"
	"math"
)

// Running tracks the minimum, maximum and mean of a stream of samples.
// The zero value is ready to use.
type Running struct {
	min, max float64
	sum      float64
	n        int
}

// Add records a sample.
func (s *Running) Add(sample float64) {
	if s.n == 0 || sample < s.min {
		s.min = sample
	}
	if s.n == 0 || sample > s.max {
		s.max = sample
	}
	s.sum += sample
	s.n++
}

// Count returns the number of recorded samples.
func (s *Running) Count() int { return s.n }

// Min returns the smallest sample, or +Inf if there are none.
func (s *Running) Min() float64 {
	if s.n == 0 {
		return math.Inf(1)
	}
	return s.min
}

// Max returns the largest sample, or 0 if there are none.
func (s *Running) Max() float64 { return s.max }

// Mean returns the average of all samples. It is NaN when nothing has been
// recorded; callers must make sure at least one sample exists.
func (s *Running) Mean() float64 {
	if s.n == 0 {
		return math.NaN()
	}
	return s.sum / float64(s.n)
}

// String reports the deviation of min and max from the mean in percent,
// together with min, mean and max. A single sample carries no deviation
// information, so fewer than two samples format as the empty string.
func (s *Running) String() string {
	if s.n < 2 {
		return ""
	}
	mean := s.Mean()
	return fmt.Sprintf("[%+6.2f%% | %.2f - %.2f - %.2f | %+6.2f%%]",
		s.MinDeviation(), s.min, mean, s.max, s.MaxDeviation())
}

// MinDeviation returns (min-mean)/mean in percent.
func (s *Running) MinDeviation() float64 {
	mean := s.Mean()
	return (s.min - mean) * 100 / mean
}

// MaxDeviation returns (max-mean)/mean in percent.
func (s *Running) MaxDeviation() float64 {
	mean := s.Mean()
	return (s.max - mean) * 100 / mean
}
