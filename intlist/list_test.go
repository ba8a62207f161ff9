package intlist

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mknyszek/intlist-bench/jrand"
)

func newAll(t *testing.T) map[string]List {
	t.Helper()
	m := make(map[string]List)
	for _, name := range Lists() {
		l, err := New(name)
		require.NoError(t, err, name)
		m[name] = l
	}
	return m
}

func TestRegistryNames(t *testing.T) {
	assert.Equal(t, []string{"array", "boxed", "direct", "direct-native", "heap-native"}, Lists())
	for _, name := range Lists() {
		assert.NotEmpty(t, Describe(name), name)
	}
}

func TestNewUnknown(t *testing.T) {
	_, err := New("linked")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"linked"`)
}

func TestAllVariantsAgree(t *testing.T) {
	const n = 5000
	r := jrand.New(99)
	want := make([]int32, n)
	for i := range want {
		want[i] = r.Int32()
	}

	for name, l := range newAll(t) {
		for _, v := range want {
			require.NoError(t, l.Append(v), name)
		}
		require.Equal(t, n, l.Len(), name)
		for i, w := range want {
			got, err := l.At(i)
			require.NoError(t, err, name)
			require.Equal(t, w, got, "%s at %d", name, i)
		}
	}
}

func TestAppendIncrementsLen(t *testing.T) {
	for name, l := range newAll(t) {
		for i := 0; i < 70; i++ {
			before := l.Len()
			require.NoError(t, l.Append(int32(i)))
			assert.Equal(t, before+1, l.Len(), name)
		}
	}
}

func TestAtOutOfRange(t *testing.T) {
	for name, l := range newAll(t) {
		_, err := l.At(0)
		assert.ErrorIs(t, err, ErrIndexOutOfRange, name)

		require.NoError(t, l.Append(1))
		require.NoError(t, l.Append(2))
		for _, i := range []int{-1, 2, 3, 1 << 20} {
			_, err := l.At(i)
			require.ErrorIs(t, err, ErrIndexOutOfRange, "%s at %d", name, i)
			var ie *IndexError
			require.True(t, errors.As(err, &ie))
			assert.Equal(t, i, ie.Index)
			assert.Equal(t, 2, ie.Len)
		}
	}
}

func TestGrowthAcrossInitialCapacity(t *testing.T) {
	for name, l := range newAll(t) {
		for i := 0; i < initialElems+1; i++ {
			require.NoError(t, l.Append(int32(i*11-40)))
		}
		for i := 0; i < initialElems+1; i++ {
			v, err := l.At(i)
			require.NoError(t, err)
			assert.Equal(t, int32(i*11-40), v, "%s at %d", name, i)
		}
	}
}

func TestGrowthDoubles(t *testing.T) {
	a := NewArray()
	for i := 0; i < initialElems; i++ {
		require.NoError(t, a.Append(0))
	}
	assert.Len(t, a.a, initialElems)
	require.NoError(t, a.Append(0))
	assert.Len(t, a.a, 2*initialElems)

	b, err := NewBytes(BigEndian, Heap)
	require.NoError(t, err)
	assert.Len(t, b.buf, initialBytes)
	for i := 0; i < initialElems+1; i++ {
		require.NoError(t, b.Append(0))
	}
	assert.Len(t, b.buf, 2*initialBytes)
}

func TestAllocationLimit(t *testing.T) {
	a := NewArray()
	a.limit = 2 * initialElems
	b := NewBoxed()
	b.limit = 2 * initialElems
	c, err := NewBytes(LittleEndian, Heap)
	require.NoError(t, err)
	c.limit = 2 * initialElems

	for _, l := range []List{a, b, c} {
		for i := 0; i < 2*initialElems; i++ {
			require.NoError(t, l.Append(int32(i)))
		}
		err := l.Append(100)
		require.ErrorIs(t, err, ErrAllocation)
		assert.Equal(t, 2*initialElems, l.Len())
		v, err := l.At(2*initialElems - 1)
		require.NoError(t, err)
		assert.Equal(t, int32(2*initialElems-1), v)
	}
}

func TestBytesEncoding(t *testing.T) {
	be, err := NewBytes(BigEndian, Heap)
	require.NoError(t, err)
	require.NoError(t, be.Append(0x01020304))
	assert.Equal(t, []byte{1, 2, 3, 4}, be.buf[:4])

	le, err := NewBytes(LittleEndian, Heap)
	require.NoError(t, err)
	require.NoError(t, le.Append(0x01020304))
	assert.Equal(t, []byte{4, 3, 2, 1}, le.buf[:4])

	nat, err := NewBytes(Native, Direct)
	require.NoError(t, err)
	assert.NotEqual(t, Native, nat.Order())
	require.NoError(t, nat.Append(-7))
	v, err := nat.At(0)
	require.NoError(t, err)
	assert.Equal(t, int32(-7), v)
}

func TestBoxedAddrDistinct(t *testing.T) {
	l := NewBoxed()
	for i := 0; i < 16; i++ {
		require.NoError(t, l.Append(int32(i)))
	}
	seen := make(map[uintptr]bool)
	for i := 0; i < l.Len(); i++ {
		seen[l.Addr(i)] = true
	}
	assert.Len(t, seen, 16)

	l.Swap(0, 15)
	v, err := l.At(0)
	require.NoError(t, err)
	assert.Equal(t, int32(15), v)
}

func TestNewFilledDeterministic(t *testing.T) {
	const n = 1000
	l, err := NewFilled("array", n, 1)
	require.NoError(t, err)

	r := jrand.New(1)
	for i := 0; i < n; i++ {
		v, err := l.At(i)
		require.NoError(t, err)
		require.Equal(t, r.Int32(), v, "index %d", i)
	}
}
