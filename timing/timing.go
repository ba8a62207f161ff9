// Package timing measures single-threaded iteration cost per element for
// a set of list implementations across a range of sizes.
package timing

import (
	"fmt"
	"io"
	"time"

	"github.com/mknyszek/intlist-bench/intlist"
	"github.com/mknyszek/intlist-bench/reps"
	"github.com/mknyszek/intlist-bench/stats"
)

// Config controls a timing run.
type Config struct {
	Sizes []int
	// StablePass is the first pass whose measurements are trusted.
	StablePass int
	// WarmupReps untimed scans run before every measurement.
	WarmupReps int
	Reps       reps.Controller
}

// Phase is the state of a run.
type Phase int

const (
	Idle Phase = iota
	Warming
	Stabilized
	Done
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Warming:
		return "warming"
	case Stabilized:
		return "stabilized"
	case Done:
		return "done"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Result is one measurement.
type Result struct {
	Impl      string
	Size      int
	Pass      int
	Reps      int
	NsPerItem float64
	Stable    bool
}

// Test is one list implementation under measurement.
type Test struct {
	Name  string
	list  intlist.List
	stats map[int]*stats.Running

	// sink keeps the last scan result observable so that the scans
	// cannot be eliminated.
	sink int32
}

// NewTest wraps a filled list. The list must hold at least as many
// elements as the largest size measured.
func NewTest(name string, l intlist.List) *Test {
	return &Test{Name: name, list: l, stats: make(map[int]*stats.Running)}
}

// Tests creates and fills one list per implementation name.
func Tests(names []string, size int, seed int64) ([]*Test, error) {
	var ts []*Test
	for _, name := range names {
		l, err := intlist.NewFilled(name, size, seed)
		if err != nil {
			return nil, err
		}
		ts = append(ts, NewTest(name, l))
	}
	return ts, nil
}

// Stats returns the stabilized statistics for size, or nil.
func (t *Test) Stats(size int) *stats.Running { return t.stats[size] }

// Sink returns the result of the most recent scan.
func (t *Test) Sink() int32 { return t.sink }

func (t *Test) time(size, reps int) (float64, error) {
	t.sink = 0
	start := time.Now()
	for rep := 0; rep < reps; rep++ {
		sum, err := intlist.Sum(t.list, size)
		if err != nil {
			return 0, fmt.Errorf("%s[%d]: %w", t.Name, size, err)
		}
		t.sink = sum
	}
	return float64(time.Since(start).Nanoseconds()) / float64(reps) / float64(size), nil
}

// Driver runs passes over a set of tests.
type Driver struct {
	cfg   Config
	out   io.Writer
	tests []*Test
	phase Phase

	// OnResult, if set, is called after every measurement.
	OnResult func(Result)
}

// New returns a driver writing progress lines to out.
func New(cfg Config, out io.Writer, tests ...*Test) (*Driver, error) {
	if len(cfg.Sizes) == 0 {
		return nil, fmt.Errorf("no sizes to measure")
	}
	if cfg.Reps == nil {
		return nil, fmt.Errorf("no repetition controller")
	}
	max := cfg.Sizes[0]
	for _, s := range cfg.Sizes {
		if s <= 0 {
			return nil, fmt.Errorf("invalid size %d", s)
		}
		if s > max {
			max = s
		}
	}
	for _, t := range tests {
		if t.list.Len() < max {
			return nil, fmt.Errorf("%s holds %d elements, need %d", t.Name, t.list.Len(), max)
		}
	}
	return &Driver{cfg: cfg, out: out, tests: tests}, nil
}

// Phase returns the current run state.
func (d *Driver) Phase() Phase { return d.phase }

// Tests returns the tests being measured.
func (d *Driver) Tests() []*Test { return d.tests }

// Run executes passes 1 through passes. A failed measurement aborts the run.
func (d *Driver) Run(passes int) error {
	for pass := 1; pass <= passes; pass++ {
		if pass >= d.cfg.StablePass {
			d.phase = Stabilized
		} else {
			d.phase = Warming
		}
		fmt.Fprintf(d.out, "----- PASS %d -----\n", pass)
		for _, t := range d.tests {
			for _, size := range d.cfg.Sizes {
				if _, err := d.Measure(t, pass, size); err != nil {
					return err
				}
			}
		}
	}
	d.phase = Done
	return nil
}

// Measure times full scans of the first size elements of t.
func (d *Driver) Measure(t *Test, pass, size int) (Result, error) {
	s := t.stats[size]
	if s == nil {
		s = new(stats.Running)
		t.stats[size] = s
	}

	// 1. Pick the repetition count.
	// 2. Warm up.
	// 3. Time the scans and feed stabilized results into the stats.
	var mean float64
	if s.Count() > 0 {
		mean = s.Mean()
	}
	n := d.cfg.Reps.Next(size, mean, s.Count())
	if d.cfg.WarmupReps > 0 {
		if _, err := t.time(size, d.cfg.WarmupReps); err != nil {
			return Result{}, err
		}
	}
	ns, err := t.time(size, n)
	if err != nil {
		return Result{}, err
	}
	r := Result{
		Impl:      t.Name,
		Size:      size,
		Pass:      pass,
		Reps:      n,
		NsPerItem: ns,
		Stable:    pass >= d.cfg.StablePass,
	}
	if r.Stable {
		s.Add(ns)
	}
	fmt.Fprintf(d.out, "%30s[%8d]: %.2f %s ns per item (%d x %d)\n", t.Name, size, ns, s, t.sink, n)
	if d.OnResult != nil {
		d.OnResult(r)
	}
	return r, nil
}
