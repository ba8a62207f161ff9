// Package report writes benchmark results to machine-readable logs and
// HTML charts.
package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/mknyszek/intlist-bench/timing"
)

// LogName returns the result log file name for a run started at t.
func LogName(t time.Time) string {
	return fmt.Sprintf("IntListIterationTiming-%s.log", t.Format("20060102-150405"))
}

// Log is a whitespace separated result log with one row per stabilized
// timing measurement.
type Log struct {
	w   *bufio.Writer
	c   io.Closer
	err error
}

// NewLog writes the header to w.
func NewLog(w io.Writer) *Log {
	l := &Log{w: bufio.NewWriter(w)}
	if c, ok := w.(io.Closer); ok {
		l.c = c
	}
	_, l.err = fmt.Fprintln(l.w, "impl asize time")
	return l
}

// CreateLog creates LogName(t) in dir.
func CreateLog(dir string, t time.Time) (*Log, string, error) {
	path := filepath.Join(dir, LogName(t))
	f, err := os.Create(path)
	if err != nil {
		return nil, "", err
	}
	return NewLog(f), path, nil
}

// Record appends a row for a stabilized result and ignores the rest.
// Rows are flushed immediately so a partially completed run keeps its
// data.
func (l *Log) Record(r timing.Result) {
	if l.err != nil || !r.Stable {
		return
	}
	if _, l.err = fmt.Fprintf(l.w, "%s %d %.4f\n", r.Impl, r.Size, r.NsPerItem); l.err == nil {
		l.err = l.w.Flush()
	}
}

// Close flushes the log and closes the underlying writer, returning the
// first error encountered while writing.
func (l *Log) Close() error {
	if err := l.w.Flush(); l.err == nil {
		l.err = err
	}
	if l.c != nil {
		if err := l.c.Close(); l.err == nil {
			l.err = err
		}
	}
	return l.err
}
