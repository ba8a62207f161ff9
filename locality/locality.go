// Package locality estimates how many memory pages a scan over boxed
// elements touches, from the addresses of the boxes.
package locality

import (
	"fmt"
	"io"

	"github.com/mknyszek/intlist-bench/intlist"
	"github.com/mknyszek/intlist-bench/jrand"
)

// Addresser exposes element addresses.
type Addresser interface {
	Len() int
	Addr(i int) uintptr
}

// Pages counts page changes while walking the first n addresses in order,
// with pages of 1<<shift bytes.
func Pages(addrs []uintptr, shift uint, n int) int {
	count := 0
	var page uintptr
	for _, a := range addrs[:n] {
		if p := a >> shift; p != page {
			count++
			page = p
		}
	}
	return count
}

// Table holds, per size and page shift, the average number of pages
// touched per element times the page size (an effective element size).
type Table struct {
	MinShift, MaxShift uint
	Sizes              []int
	Rows               [][]float64
}

// Analyze snapshots the addresses of l and builds the table.
func Analyze(l Addresser, sizes []int, minShift, maxShift uint) (*Table, error) {
	if minShift > maxShift {
		return nil, fmt.Errorf("invalid page shift range [%d, %d]", minShift, maxShift)
	}
	addrs := make([]uintptr, l.Len())
	for i := range addrs {
		addrs[i] = l.Addr(i)
	}
	t := &Table{MinShift: minShift, MaxShift: maxShift, Sizes: sizes}
	for _, size := range sizes {
		if size > len(addrs) {
			return nil, fmt.Errorf("size %d exceeds %d elements", size, len(addrs))
		}
		row := make([]float64, 0, maxShift-minShift+1)
		for shift := minShift; shift <= maxShift; shift++ {
			row = append(row, float64(Pages(addrs, shift, size))*float64(uint(1)<<shift)/float64(size))
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// Print writes the table in fixed-width columns.
func (t *Table) Print(out io.Writer) {
	fmt.Fprintln(out, "----- MEMORY PAGES ANALYSIS -----")
	fmt.Fprintln(out, "Avg no of accessed pages per object times page size (e.g. effective object size)")
	fmt.Fprint(out, "[pagesize]: ")
	for shift := t.MinShift; shift <= t.MaxShift; shift++ {
		fmt.Fprintf(out, "%9d", 1<<shift)
	}
	fmt.Fprintln(out)
	for i, size := range t.Sizes {
		fmt.Fprintf(out, "[%8d]: ", size)
		for _, v := range t.Rows[i] {
			fmt.Fprintf(out, "%9.1f", v)
		}
		fmt.Fprintln(out)
	}
}

// Shuffle randomly permutes the boxes of l, scattering consecutive
// elements across the heap.
func Shuffle(l *intlist.Boxed, seed int64) {
	jrand.New(seed).Shuffle(l.Len(), l.Swap)
}
