// ============================================================================
// LOCK-FREE SPSC CHANNEL
// ============================================================================
//
// Fixed-capacity, wait-free single-producer/single-consumer transport for
// fixed-size records. One thread pushes, one thread pops, and the only
// shared words are the two ring indices — each on its own cache line so the
// producer's writes never invalidate the consumer's line and vice versa.
//
// Protocol:
//   - Each side reads its own index relaxed (it is the only writer of it),
//     reads the peer's index acquire (to observe the peer's progress), and
//     publishes its advance with a release store.
//   - The producer's release store of writeIdx is the publication point: the
//     record bytes are globally visible before any consumer that acquires
//     the new index can touch the slot.
//   - One slot stays vacant to disambiguate full from empty, so a ring of
//     capacity C holds at most C-1 records.
//
// Safety model:
//   - ⚠️  SPSC discipline is a hard precondition, not a runtime check.
//     A second producer or consumer corrupts the ring silently.
//   - Full and empty are ordinary "not ready" results; callers retry with a
//     backoff.Strategy of their choosing. The ring itself never waits.
//   - Zero allocation after construction.

package spsc

import (
	"code.hybscloud.com/atomix"
	"golang.org/x/sys/cpu"
)

// Ring is a bounded SPSC channel over value type T. T must be treated as a
// plain value: it is copied in on TryPush and copied out on TryPop, and the
// producer's copy is dead to the ring the moment the push returns.
type Ring[T any] struct {
	_        cpu.CacheLinePad
	writeIdx atomix.Uint64 // producer-owned; consumer only acquires it
	_        cpu.CacheLinePad
	readIdx  atomix.Uint64 // consumer-owned; producer only acquires it
	_        cpu.CacheLinePad

	capacity uint64
	buf      []T
}

// New allocates a ring with the given capacity. Capacity may be any integer
// >= 2 (one slot is reserved, so usable depth is capacity-1); it need not be
// a power of two because index advance is modulo, not masked. Panics on an
// invalid capacity — misconfiguration is a programmer error, not a runtime
// condition.
func New[T any](capacity int) *Ring[T] {
	if capacity < 2 {
		panic("spsc: capacity must be >= 2")
	}
	return &Ring[T]{
		capacity: uint64(capacity),
		buf:      make([]T, capacity),
	}
}

// Cap returns the number of records the ring can hold at once (capacity-1).
func (r *Ring[T]) Cap() int {
	return int(r.capacity) - 1
}

// TryPush enqueues one record. Returns false, writing nothing, when the ring
// is full. Producer thread only.
//
//go:nosplit
func (r *Ring[T]) TryPush(rec T) bool {
	w := r.writeIdx.LoadRelaxed() // own index: no ordering needed
	next := w + 1
	if next == r.capacity {
		next = 0
	}
	if next == r.readIdx.LoadAcquire() {
		return false // full: advancing would collide with the reserved slot
	}

	r.buf[w] = rec

	// Publication point: the record copy above must complete first.
	r.writeIdx.StoreRelease(next)
	return true
}

// TryPop dequeues the oldest record. The second return is false, with a zero
// T, when the ring is empty. Consumer thread only.
//
//go:nosplit
func (r *Ring[T]) TryPop() (T, bool) {
	rd := r.readIdx.LoadRelaxed() // own index: no ordering needed
	if rd == r.writeIdx.LoadAcquire() {
		var zero T
		return zero, false // empty
	}

	rec := r.buf[rd]
	var zero T
	r.buf[rd] = zero // drop the ring's copy so T's pointers don't pin memory

	next := rd + 1
	if next == r.capacity {
		next = 0
	}

	// Hands the slot back to the producer.
	r.readIdx.StoreRelease(next)
	return rec, true
}
