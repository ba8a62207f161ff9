// Package cell measures the cost of summing mutable boxed integers that
// are copied on every access.
package cell

import (
	"fmt"
	"io"
	"time"

	"github.com/mknyszek/intlist-bench/jrand"
)

// Int is a mutable boxed integer.
type Int struct {
	value int32
}

// NewInt returns a box holding v.
func NewInt(v int32) *Int { return &Int{value: v} }

// Copy returns a new box with the same value.
func (c *Int) Copy() *Int { return &Int{value: c.value} }

func (c *Int) Value() int32     { return c.value }
func (c *Int) SetValue(v int32) { c.value = v }

func (c *Int) String() string { return fmt.Sprint(c.value) }

// Container owns a private copy of an Int. Neither Get nor Set ever share
// the stored box with the caller.
type Container struct {
	c *Int
}

func NewContainer(c *Int) *Container { return &Container{c: c.Copy()} }

func (k *Container) Get() *Int  { return k.c.Copy() }
func (k *Container) Set(c *Int) { k.c = c.Copy() }

// Config controls a summation run.
type Config struct {
	N      int   `yaml:"n"`
	Reps   int   `yaml:"reps"`
	Passes int   `yaml:"passes"`
	Seed   int64 `yaml:"seed"`
}

// Sum holds the containers being summed.
type Sum struct {
	cfg  Config
	list []*Container
}

// New fills cfg.N containers with pseudo-random values.
func New(cfg Config) *Sum {
	s := &Sum{cfg: cfg, list: make([]*Container, 0, cfg.N)}
	r := jrand.New(cfg.Seed)
	for i := 0; i < cfg.N; i++ {
		s.list = append(s.list, NewContainer(NewInt(r.Int32())))
	}
	return s
}

func (s *Sum) iteration() int32 {
	var sum int32
	for _, k := range s.list {
		sum += k.Get().Value()
	}
	return sum
}

// Once sums all containers Reps times.
func (s *Sum) Once() int32 {
	var sum int32
	for rep := 0; rep < s.cfg.Reps; rep++ {
		sum += s.iteration()
	}
	return sum
}

// Run performs cfg.Passes timed passes and returns their durations.
func (s *Sum) Run(out io.Writer) []time.Duration {
	var ds []time.Duration
	for pass := 1; pass <= s.cfg.Passes; pass++ {
		fmt.Fprintf(out, "----- PASS %d -----\n", pass)
		start := time.Now()
		sum := s.Once()
		d := time.Since(start)
		fmt.Fprintf(out, "Done %d ms (sum=%d)\n", d.Milliseconds(), sum)
		ds = append(ds, d)
	}
	return ds
}
