package throughput

import (
	"errors"
	"sync"
)

// ErrBroken is returned by Await once a barrier has been broken.
var ErrBroken = errors.New("barrier broken")

// Barrier is a reusable rendezvous point: Await blocks until the number of
// registered parties have arrived, then releases them all and resets for
// the next generation. Parties may join or leave between generations.
type Barrier struct {
	mu      sync.Mutex
	parties int
	arrived int
	release chan struct{}
	broken  bool
}

// NewBarrier returns a barrier for the given number of parties.
func NewBarrier(parties int) *Barrier {
	return &Barrier{parties: parties, release: make(chan struct{})}
}

// Await blocks until all parties have arrived or the barrier is broken.
func (b *Barrier) Await() error {
	b.mu.Lock()
	if b.broken {
		b.mu.Unlock()
		return ErrBroken
	}
	ch := b.release
	b.arrived++
	if b.arrived >= b.parties {
		b.trip()
	}
	b.mu.Unlock()

	<-ch

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.broken && ch == b.release {
		return ErrBroken
	}
	return nil
}

// trip releases the current generation. b.mu must be held.
func (b *Barrier) trip() {
	close(b.release)
	b.release = make(chan struct{})
	b.arrived = 0
}

// Register adds a party.
func (b *Barrier) Register() {
	b.mu.Lock()
	b.parties++
	b.mu.Unlock()
}

// Deregister removes a party. If everyone still registered has already
// arrived, the waiting parties are released.
func (b *Barrier) Deregister() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.parties--
	if !b.broken && b.arrived > 0 && b.arrived >= b.parties {
		b.trip()
	}
}

// Parties returns the number of registered parties.
func (b *Barrier) Parties() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.parties
}

// Break releases every waiting party with ErrBroken and makes all future
// Await calls fail.
func (b *Barrier) Break() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.broken {
		return
	}
	b.broken = true
	close(b.release)
}
