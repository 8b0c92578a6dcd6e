package memorder

import "code.hybscloud.com/atomix"

// Fence publishes several relaxed atomics — the payload words plus two
// independent readiness flags — behind a single ordering edge on a
// standalone guard word. Where C++ would use standalone release/acquire
// fences, Go has no fence operation, so the guard word carries the edge:
// one release store after all the relaxed stores, one acquire load before
// all the relaxed loads. The effect is the same — everything before the
// edge on the producer side is visible after the edge on the consumer side
// — without attaching the ordering to any one of the published atomics.
//
// The guard carries the round number and is never cleared: Observe admits a
// snapshot only when the acquired guard value is a round the consumer has
// not consumed yet, so a stale guard read repeats old news instead of
// exposing a rearm in progress.
type Fence struct {
	data  words
	flagA atomix.Uint64 // relaxed on both sides
	flagB atomix.Uint64 // relaxed on both sides
	guard atomix.Uint64 // carries the round; the ordering edge
	round uint64        // producer-owned
	seen  uint64        // consumer-owned: last round consumed
	snap  Payload
}

func NewFence() *Fence { return &Fence{} }

//go:nosplit
func (f *Fence) Publish() {
	f.round++
	f.data.storeRelaxed(makePayload(f.round))
	f.flagA.StoreRelaxed(1)
	f.flagB.StoreRelaxed(1)
	f.guard.StoreRelease(f.round) // orders every store above
}

//go:nosplit
func (f *Fence) Observe() bool {
	g := f.guard.LoadAcquire()
	if g == f.seen {
		return false
	}
	// Both flags were plain relaxed stores, yet both must now read 1:
	// the guard edge covers them and the payload alike.
	if f.flagA.LoadRelaxed() == 0 || f.flagB.LoadRelaxed() == 0 {
		return false
	}
	f.snap = f.data.loadRelaxed()
	f.seen = g
	return true
}

// Reset clears the flags and payload; the guard keeps counting.
func (f *Fence) Reset() {
	f.flagA.StoreRelaxed(0)
	f.flagB.StoreRelaxed(0)
	f.data.reset()
}

func (f *Fence) Value() Payload { return f.snap }
