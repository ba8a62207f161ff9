package intlist

import "unsafe"

// Boxed stores every element in its own heap allocation and keeps only
// pointers inline, so each read goes through one extra indirection.
type Boxed struct {
	elems []*int32
	n     int
	limit int
}

// NewBoxed returns an empty boxed list.
func NewBoxed() *Boxed {
	return &Boxed{elems: make([]*int32, initialElems), limit: maxElems}
}

func (l *Boxed) Len() int { return l.n }

func (l *Boxed) Append(v int32) error {
	if l.n >= len(l.elems) {
		c, err := grow(len(l.elems), l.limit)
		if err != nil {
			return err
		}
		elems := make([]*int32, c)
		copy(elems, l.elems)
		l.elems = elems
	}
	p := new(int32)
	*p = v
	l.elems[l.n] = p
	l.n++
	return nil
}

func (l *Boxed) At(i int) (int32, error) {
	if i < 0 || i >= l.n {
		return 0, &IndexError{Index: i, Len: l.n}
	}
	return *l.elems[i], nil
}

// Swap exchanges the boxes at i and j without moving their contents.
func (l *Boxed) Swap(i, j int) {
	l.elems[i], l.elems[j] = l.elems[j], l.elems[i]
}

// Addr returns the address of the box holding element i. Go's heap does
// not move objects, so the address stays valid for the life of the list.
func (l *Boxed) Addr(i int) uintptr {
	return uintptr(unsafe.Pointer(l.elems[i]))
}
