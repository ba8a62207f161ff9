// Package throughput measures aggregate iteration throughput of several
// goroutines, each scanning its own private list, as the number of
// goroutines and the list size vary.
package throughput

import (
	"fmt"
	"io"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mknyszek/intlist-bench/intlist"
	"github.com/mknyszek/intlist-bench/intop"
)

// Config controls a throughput run.
type Config struct {
	MinThreads int
	MaxThreads int
	Impl       string
	Op         intop.Op
	Sizes      []int
	Seed       int64

	// Duration is the measurement window per size. Counters are sampled
	// every Interval; samples before Settle are discarded.
	Duration time.Duration
	Settle   time.Duration
	Interval time.Duration

	// Progress prints a dot per sample.
	Progress bool

	// NewWork replaces the list scan performed by worker i. When set, no
	// lists are allocated.
	NewWork func(i int) Work

	OnSample func(Sample)
	OnResult func(Result)
}

// Sample is one poll of the worker pass counters.
type Sample struct {
	Threads int
	Size    int
	Tick    int
	Counts  []int64
}

// Result is the throughput of one (threads, size) configuration.
type Result struct {
	Impl    string
	Op      intop.Op
	Threads int
	Size    int
	// Passes is the number of full passes counted after the settle window.
	Passes  int64
	Elapsed time.Duration
	// OpsPerSec is elements read per second across all workers.
	OpsPerSec float64
	Sink      int32
}

// Runner owns the workers and barriers of a throughput run.
type Runner struct {
	cfg     Config
	workers []*worker
	active  []*worker
	start   *Barrier
	stop    *Barrier
	errs    chan error
	quit    chan struct{}
	wg      sync.WaitGroup
	printer *message.Printer

	ticks, settleTicks int

	// passedStop is called by a worker after each stop rendezvous.
	passedStop func(id int, done bool)
}

// NewRunner validates cfg and prepares MaxThreads workers, each with its
// own filled list.
func NewRunner(cfg Config) (*Runner, error) {
	if cfg.MinThreads < 1 || cfg.MaxThreads < cfg.MinThreads {
		return nil, fmt.Errorf("invalid thread range [%d, %d]", cfg.MinThreads, cfg.MaxThreads)
	}
	if len(cfg.Sizes) == 0 {
		return nil, fmt.Errorf("no sizes to measure")
	}
	if cfg.Interval <= 0 {
		return nil, fmt.Errorf("invalid sampling interval %v", cfg.Interval)
	}
	r := &Runner{
		cfg:         cfg,
		start:       NewBarrier(1),
		stop:        NewBarrier(1),
		errs:        make(chan error, cfg.MaxThreads),
		quit:        make(chan struct{}),
		printer:     message.NewPrinter(language.English),
		ticks:       int(cfg.Duration / cfg.Interval),
		settleTicks: int(cfg.Settle / cfg.Interval),
	}
	if r.ticks < 1 || r.settleTicks >= r.ticks {
		return nil, fmt.Errorf("settle window %v must be shorter than duration %v", cfg.Settle, cfg.Duration)
	}

	work := make([]Work, cfg.MaxThreads)
	if cfg.NewWork != nil {
		for i := range work {
			work[i] = cfg.NewWork(i)
		}
	} else {
		max := 0
		for _, s := range cfg.Sizes {
			if s > max {
				max = s
			}
		}
		var g errgroup.Group
		for i := range work {
			i := i
			g.Go(func() error {
				l, err := intlist.NewFilled(cfg.Impl, max, cfg.Seed)
				if err != nil {
					return err
				}
				work[i] = ScanWork(l, cfg.Op)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	for i := range work {
		w := &worker{id: i, work: work[i], activate: make(chan struct{})}
		r.workers = append(r.workers, w)
		r.wg.Add(1)
		go w.run(r)
	}
	return r, nil
}

// Run sweeps thread counts from MinThreads to MaxThreads and, for each,
// every size. Workers not yet active stay parked, so their start-up cost
// is not part of any measurement. A worker failure aborts the run.
func (r *Runner) Run(out io.Writer) ([]Result, error) {
	defer r.shutdown()

	var results []Result
	for threads := r.cfg.MinThreads; threads <= r.cfg.MaxThreads; threads++ {
		r.activate(threads)
		for _, size := range r.cfg.Sizes {
			res, err := r.measure(out, threads, size)
			if err != nil {
				fmt.Fprintln(out)
				return results, err
			}
			if r.cfg.OnResult != nil {
				r.cfg.OnResult(res)
			}
			results = append(results, res)
		}
	}

	for _, res := range results {
		r.printer.Fprintf(out, "[%10d] [%3d threads] Average throughput: %.2f x 10^9 ops/sec\n",
			res.Size, res.Threads, res.OpsPerSec/1e9)
	}
	return results, nil
}

func (r *Runner) activate(threads int) {
	for len(r.active) < threads {
		w := r.workers[len(r.active)]
		r.start.Register()
		r.stop.Register()
		r.active = append(r.active, w)
		close(w.activate)
	}
}

func (r *Runner) measure(out io.Writer, threads, size int) (Result, error) {
	// Start phase.
	for _, w := range r.active {
		w.size = size
	}
	r.printer.Fprintf(out, "--- Running test for size %d [%d threads]: ", size, threads)
	if err := r.start.Await(); err != nil {
		return Result{}, err
	}

	// Sample counters once per interval.
	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()
	var from, to int64
	fromT := time.Now()
	toT := fromT
	for tick := 1; tick <= r.ticks; tick++ {
		<-ticker.C
		now := time.Now()
		counts := make([]int64, len(r.active))
		var total int64
		for i, w := range r.active {
			counts[i] = w.count.Load()
			total += counts[i]
		}
		if tick == r.settleTicks {
			from, fromT = total, now
		}
		to, toT = total, now
		if r.cfg.OnSample != nil {
			r.cfg.OnSample(Sample{Threads: threads, Size: size, Tick: tick, Counts: counts})
		}
		if r.cfg.Progress {
			fmt.Fprint(out, ".")
		}
		select {
		case err := <-r.errs:
			return Result{}, r.abort(err)
		default:
		}
	}

	// Stop phase.
	for _, w := range r.active {
		w.done.Store(true)
	}
	if err := r.stop.Await(); err != nil {
		return Result{}, err
	}
	select {
	case err := <-r.errs:
		return Result{}, err
	default:
	}

	elapsed := toT.Sub(fromT)
	res := Result{
		Impl:    r.cfg.Impl,
		Op:      r.cfg.Op,
		Threads: threads,
		Size:    size,
		Passes:  to - from,
		Elapsed: elapsed,
	}
	if elapsed > 0 {
		res.OpsPerSec = float64(size) * float64(to-from) / elapsed.Seconds()
	}
	for _, w := range r.active {
		res.Sink += w.sink
	}
	fmt.Fprintf(out, " done %.2f x 10^9 ops/sec\n", res.OpsPerSec/1e9)
	return res, nil
}

// fail reports a worker's error, then removes it from both barriers so the
// remaining parties can still rendezvous.
func (r *Runner) fail(w *worker, err error) {
	r.errs <- &WorkerError{Worker: w.id, Err: err}
	r.start.Deregister()
	r.stop.Deregister()
}

// abort stops the surviving workers of the current phase.
func (r *Runner) abort(err error) error {
	for _, w := range r.active {
		w.done.Store(true)
	}
	_ = r.stop.Await()
	return err
}

func (r *Runner) shutdown() {
	close(r.quit)
	r.start.Break()
	r.stop.Break()
	r.wg.Wait()
}
