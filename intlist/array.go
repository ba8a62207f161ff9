package intlist

// Array stores elements inline in a contiguous, unboxed slice.
type Array struct {
	a     []int32
	n     int
	limit int
}

// NewArray returns an empty array-backed list.
func NewArray() *Array {
	return &Array{a: make([]int32, initialElems), limit: maxElems}
}

func (l *Array) Len() int { return l.n }

func (l *Array) Append(v int32) error {
	if l.n >= len(l.a) {
		c, err := grow(len(l.a), l.limit)
		if err != nil {
			return err
		}
		a := make([]int32, c)
		copy(a, l.a)
		l.a = a
	}
	l.a[l.n] = v
	l.n++
	return nil
}

func (l *Array) At(i int) (int32, error) {
	if i < 0 || i >= l.n {
		return 0, &IndexError{Index: i, Len: l.n}
	}
	return l.a[i], nil
}
