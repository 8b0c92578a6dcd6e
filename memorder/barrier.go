package memorder

import (
	"code.hybscloud.com/atomix"

	"main/backoff"
)

// Barrier is a minimal two-party rendezvous: the producer release-stores
// the round number into its readiness word and spins until the consumer
// echoes that same round back; the consumer, on acquiring a round it has
// not consumed yet, snapshots the payload and echoes the round. Both words
// are monotonic — a stale read of either can only repeat a finished
// rendezvous, never unpark a party early or replay a rearm in progress.
//
// Publish does not return until the consumer has taken this round's
// snapshot; that is the point of a rendezvous, and it is the one primitive
// here whose producer side can wait. Observe reports each rendezvous
// exactly once; further polls return false until the next Publish, with
// the captured payload still available through Value.
type Barrier struct {
	data  words
	prod  atomix.Uint64 // producer's readiness, stamped with the round
	cons  atomix.Uint64 // consumer's echo, stamped with the observed round
	round uint64        // producer-owned
	seen  uint64        // consumer-owned: last round consumed
	snap  Payload
}

func NewBarrier() *Barrier { return &Barrier{} }

func (b *Barrier) Publish() {
	b.round++
	b.data.storeRelaxed(makePayload(b.round))
	b.prod.StoreRelease(b.round)
	for b.cons.LoadAcquire() != b.round {
		backoff.Relax() // cheap pause; the peer is at most one poll away
	}
}

//go:nosplit
func (b *Barrier) Observe() bool {
	f := b.prod.LoadAcquire()
	if f == b.seen {
		return false
	}
	b.snap = b.data.loadRelaxed()
	b.seen = f
	b.cons.StoreRelease(f) // echo the round; releases the producer
	return true
}

// Reset clears the payload; the readiness words keep counting.
func (b *Barrier) Reset() {
	b.data.reset()
}

func (b *Barrier) Value() Payload { return b.snap }
