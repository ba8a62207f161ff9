package throughput

import (
	"errors"
	"fmt"
	"sync/atomic"

	"golang.org/x/sys/cpu"

	"github.com/mknyszek/intlist-bench/intlist"
	"github.com/mknyszek/intlist-bench/intop"
)

// ErrWorkerFailed marks errors caused by a worker's measurement loop.
var ErrWorkerFailed = errors.New("worker failed")

// WorkerError reports the failure of a single worker.
type WorkerError struct {
	Worker int
	Err    error
}

func (e *WorkerError) Error() string {
	return fmt.Sprintf("worker %d: %v", e.Worker, e.Err)
}

func (e *WorkerError) Unwrap() []error { return []error{ErrWorkerFailed, e.Err} }

// Work performs one full pass over the first size elements.
type Work func(size int) (int32, error)

// ScanWork sums the first size elements of l, transformed by op.
func ScanWork(l intlist.List, op intop.Op) Work {
	if op == intop.ID {
		return func(size int) (int32, error) {
			return intlist.Sum(l, size)
		}
	}
	return func(size int) (int32, error) {
		var sum int32
		for i := 0; i < size; i++ {
			v, err := l.At(i)
			if err != nil {
				return 0, err
			}
			sum += op.Apply(v)
		}
		return sum, nil
	}
}

type worker struct {
	id       int
	work     Work
	activate chan struct{}

	// size is written by the controller only while the worker waits at
	// the start barrier.
	size int
	sink int32

	_     cpu.CacheLinePad
	done  atomic.Bool
	count atomic.Int64
	_     cpu.CacheLinePad
}

func (w *worker) run(r *Runner) {
	defer r.wg.Done()
	select {
	case <-w.activate:
	case <-r.quit:
		return
	}
	for {
		w.done.Store(false)
		w.count.Store(0)
		if err := r.start.Await(); err != nil {
			return
		}
		if err := w.loop(); err != nil {
			r.fail(w, err)
			return
		}
		if err := r.stop.Await(); err != nil {
			return
		}
		if r.passedStop != nil {
			r.passedStop(w.id, w.done.Load())
		}
	}
}

// loop runs passes until done is set. The pass counter is published once
// per completed pass; the controller tolerates reading it up to one
// polling interval late.
func (w *worker) loop() (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	var n int64
	for !w.done.Load() {
		sum, err := w.work(w.size)
		if err != nil {
			return err
		}
		w.sink += sum
		n++
		w.count.Store(n)
	}
	return nil
}
