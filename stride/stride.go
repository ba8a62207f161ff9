// Package stride compares sequential and random access over the same
// array of int32, along with a few ways of splitting a sequential scan.
package stride

import (
	"fmt"
	"io"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mknyszek/intlist-bench/jrand"
	"github.com/mknyszek/intlist-bench/stats"
)

// Config controls a stride run.
type Config struct {
	// LogN is log2 of the array length.
	LogN       uint `yaml:"log_n"`
	Reps       int  `yaml:"reps"`
	Passes     int  `yaml:"passes"`
	StablePass int  `yaml:"stable_pass"`
	// SmallSteps adds every odd stride up to MaxSmallStep in both
	// directions.
	SmallSteps   bool  `yaml:"small_steps"`
	MaxSmallStep int   `yaml:"max_small_step"`
	Parallelism  int   `yaml:"parallelism"`
	Seed         int64 `yaml:"seed"`
}

// Test is one access pattern. Run sums every element exactly once.
type Test struct {
	Name  string
	Stats stats.Running
	run   func() int32
}

// Run performs one full traversal.
func (t *Test) Run() int32 { return t.run() }

// Experiment holds the array and the tests over it.
type Experiment struct {
	cfg   Config
	a     []int32
	mask  int
	tests []*Test
	rnd   *Test
	seq   *Test
}

// New fills an array of 1<<cfg.LogN values and builds the tests.
func New(cfg Config) (*Experiment, error) {
	if cfg.LogN < 2 || cfg.LogN > 30 {
		return nil, fmt.Errorf("array size 2^%d out of range", cfg.LogN)
	}
	if cfg.Reps < 1 || cfg.Parallelism < 1 {
		return nil, fmt.Errorf("reps and parallelism must be positive")
	}
	n := 1 << cfg.LogN
	e := &Experiment{cfg: cfg, a: make([]int32, n), mask: n - 1}
	r := jrand.New(cfg.Seed)
	for i := range e.a {
		e.a[i] = r.Int32()
	}

	// The golden ratio step is odd, so it still visits every element.
	rndStep := int((math.Sqrt(5)-1)/2*float64(n)) | 1
	e.rnd = e.step("rnd", rndStep)
	e.seq = e.step("seq", 1)
	e.tests = append(e.tests, e.rnd, e.seq)
	if cfg.SmallSteps {
		for s := 3; s <= cfg.MaxSmallStep; s += 2 {
			e.tests = append(e.tests, e.step(fmt.Sprintf("+%02d", s), s))
		}
		for s := 1; s <= cfg.MaxSmallStep; s += 2 {
			e.tests = append(e.tests, e.step(fmt.Sprintf("-%02d", s), -s))
		}
	}
	e.tests = append(e.tests,
		&Test{Name: "ss0", run: e.simpleSum},
		&Test{Name: "sp2", run: e.split2},
		&Test{Name: "sp3", run: e.split3},
		&Test{Name: "par", run: e.parallel},
	)
	return e, nil
}

// Tests returns all tests in run order.
func (e *Experiment) Tests() []*Test { return e.tests }

func (e *Experiment) step(name string, step int) *Test {
	a, mask := e.a, e.mask
	return &Test{Name: name, run: func() int32 {
		var sum int32
		i := 0
		for {
			sum += a[i]
			i = (i + step) & mask
			if i == 0 {
				return sum
			}
		}
	}}
}

func (e *Experiment) simpleSum() int32 {
	var sum int32
	for _, v := range e.a {
		sum += v
	}
	return sum
}

func (e *Experiment) split2() int32 {
	a, h := e.a, len(e.a)/2
	var sum0, sum1 int32
	for i := 0; i < h; i++ {
		sum0 += a[i]
		sum1 += a[i+h]
	}
	return sum0 + sum1
}

func (e *Experiment) split3() int32 {
	a, t := e.a, len(e.a)/3
	var sum0, sum1, sum2 int32
	for i := 0; i < t; i++ {
		sum0 += a[i]
		sum1 += a[i+t]
		sum2 += a[i+2*t]
	}
	for i := 3 * t; i < len(a); i++ {
		sum0 += a[i]
	}
	return sum0 + sum1 + sum2
}

func (e *Experiment) parallel() int32 {
	limit := len(e.a) / e.cfg.Parallelism
	if limit < 1 {
		limit = 1
	}
	return parSum(e.a, limit)
}

// parSum splits a in halves until pieces are at most limit long, summing
// the pieces concurrently.
func parSum(a []int32, limit int) int32 {
	if len(a) <= limit {
		var sum int32
		for _, v := range a {
			sum += v
		}
		return sum
	}
	mid := len(a) / 2
	var lo int32
	var g errgroup.Group
	g.Go(func() error {
		lo = parSum(a[:mid], limit)
		return nil
	})
	hi := parSum(a[mid:], limit)
	_ = g.Wait()
	return lo + hi
}

// Run executes every test once per pass and returns the ratio of mean
// random to mean sequential access time.
func (e *Experiment) Run(out io.Writer) float64 {
	n := float64(len(e.a) * e.cfg.Reps)
	for pass := 1; pass <= e.cfg.Passes; pass++ {
		fmt.Fprintf(out, "=== PASS %d ===\n", pass)
		for _, t := range e.tests {
			start := time.Now()
			var sum int32
			for i := 0; i < e.cfg.Reps; i++ {
				sum += t.Run()
			}
			ns := float64(time.Since(start).Nanoseconds()) / n
			avg := ns
			var ss string
			if pass >= e.cfg.StablePass {
				t.Stats.Add(ns)
				ss = t.Stats.String()
				avg = t.Stats.Mean()
			}
			fmt.Fprintf(out, "%-5s: %6.3f ns per iteration %s == %.2f GB/s (%d)\n", t.Name, ns, ss, 4/avg, sum)
		}
	}
	fmt.Fprintln(out, "=== DONE ===")
	ratio := e.rnd.Stats.Mean() / e.seq.Stats.Mean()
	fmt.Fprintf(out, "Ratio rnd/seq = %.2f\n", ratio)
	return ratio
}
