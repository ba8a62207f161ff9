// Package jrand implements the 48-bit linear congruential generator used to
// fill benchmark collections, so that every run (and every implementation)
// iterates over exactly the same values.
package jrand

const (
	multiplier = 0x5DEECE66D
	addend     = 0xB
	mask       = 1<<48 - 1
)

// Rand is a deterministic pseudo-random source. It is not safe for
// concurrent use.
type Rand struct {
	seed uint64
}

// New returns a generator initialized with seed.
func New(seed int64) *Rand {
	r := &Rand{}
	r.Seed(seed)
	return r
}

// Seed resets the generator state.
func (r *Rand) Seed(seed int64) {
	r.seed = (uint64(seed) ^ multiplier) & mask
}

func (r *Rand) next(bits uint) int32 {
	r.seed = (r.seed*multiplier + addend) & mask
	return int32(r.seed >> (48 - bits))
}

// Int32 returns a uniformly distributed int32 over the full range.
func (r *Rand) Int32() int32 {
	return r.next(32)
}

// Int32n returns a value in [0, n). It panics if n <= 0.
func (r *Rand) Int32n(n int32) int32 {
	if n <= 0 {
		panic("jrand: invalid argument to Int32n")
	}
	if n&(-n) == n {
		return int32((int64(n) * int64(r.next(31))) >> 31)
	}
	for {
		bits := r.next(31)
		val := bits % n
		// Reject values from the incomplete last bucket.
		if bits-val+(n-1) >= 0 {
			return val
		}
	}
}

// Shuffle permutes n elements in place, walking from the end and swapping
// each position with a random earlier one.
func (r *Rand) Shuffle(n int, swap func(i, j int)) {
	for i := n; i > 1; i-- {
		swap(i-1, int(r.Int32n(int32(i))))
	}
}
