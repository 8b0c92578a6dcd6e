// ============================================================================
// ORDERING PRIMITIVES LIBRARY
// ============================================================================
//
// Seven self-contained two-thread publication patterns, each a distinct
// synchronization contract between exactly one producer and one consumer,
// plus a standard-mutex baseline for comparison:
//
//   relaxed  — no cross-thread visibility guarantee (negative control)
//   acqrel   — release store paired with acquire load on one flag
//   fence    — several relaxed atomics published by one release edge on a
//              standalone guard word
//   consume  — pointer-mediated publication; visibility scoped to data
//              reachable through the loaded pointer
//   seqcst   — sequentially-consistent counter; total order, worst-case cost
//   seqlock  — sequence-counter snapshot; writer never blocks, readers retry
//   barrier  — two-flag rendezvous handshake between the two parties
//   mutex    — sync.Mutex around everything; the lock-based floor
//
// Shared shape: Publish runs exactly once per round on the producer thread;
// Observe is polled on the consumer thread and reports whether that publish
// has been seen (false means try again); Reset rearms the pattern for the
// next round and is a producer-side operation that must not race an
// in-flight Publish.
//
// The ordered patterns stamp their readiness word with the round number and
// never clear it: Observe only admits a snapshot when it acquires a round
// it has not consumed yet, so a stale readiness read during the producer's
// Reset→Publish window can at worst repeat a finished round — it can never
// pass off a half-propagated rearm as a fresh publication. The relaxed
// pattern keeps its unordered 0/1 flag; delivering no such guarantee is its
// contract.
//
// Orderings are expressed with code.hybscloud.com/atomix
// (LoadRelaxed/LoadAcquire/StoreRelaxed/StoreRelease) plus the standard
// library's sync/atomic where sequential consistency is the point. Each
// pattern's state lives in its own struct shared by reference between the
// two goroutines — never in package globals.
//
// Payloads are multi-word with an internal checksum so that a violated
// ordering shows up as a torn, inconsistent value instead of silent luck.

package memorder

import (
	"code.hybscloud.com/atomix"

	"main/utils"
)

// Primitive is the two-party publication contract. Publish, Reset: producer
// thread only. Observe, Value: consumer thread only. Value returns the
// payload captured by the last successful Observe and exists so harnesses
// and tests can check multi-word consistency.
type Primitive interface {
	Publish()
	Observe() bool
	Reset()
	Value() Payload
}

// Payload is the multi-word record every primitive publishes. A and B are
// mixed from Round, Check ties all three together; any partially visible
// combination fails Consistent.
type Payload struct {
	Round uint64
	A     uint64
	B     uint64
	Check uint64
}

func makePayload(round uint64) Payload {
	a := utils.Mix64(round)
	b := utils.Mix64(a)
	return Payload{Round: round, A: a, B: b, Check: round ^ a ^ b}
}

// Consistent reports whether every word belongs to the same publication.
func (p Payload) Consistent() bool {
	return p.A == utils.Mix64(p.Round) &&
		p.B == utils.Mix64(p.A) &&
		p.Check == p.Round^p.A^p.B
}

// words holds a Payload as four individually-atomic relaxed words. Relaxed
// accessors on purpose: whatever ordering a pattern provides must come from
// its flag/guard/sequence discipline, not from the payload stores.
type words struct {
	round atomix.Uint64
	a     atomix.Uint64
	b     atomix.Uint64
	check atomix.Uint64
}

//go:nosplit
func (w *words) storeRelaxed(p Payload) {
	w.round.StoreRelaxed(p.Round)
	w.a.StoreRelaxed(p.A)
	w.b.StoreRelaxed(p.B)
	w.check.StoreRelaxed(p.Check)
}

//go:nosplit
func (w *words) loadRelaxed() Payload {
	return Payload{
		Round: w.round.LoadRelaxed(),
		A:     w.a.LoadRelaxed(),
		B:     w.b.LoadRelaxed(),
		Check: w.check.LoadRelaxed(),
	}
}

//go:nosplit
func (w *words) reset() {
	w.storeRelaxed(Payload{})
}

// Names lists the primitives in presentation order. The identifiers double
// as CLI selector values.
func Names() []string {
	return []string{"relaxed", "acqrel", "fence", "consume", "seqcst", "seqlock", "barrier", "mutex"}
}

// ByName constructs a fresh primitive for a registry name. The second
// return is false for unknown names.
func ByName(name string) (Primitive, bool) {
	switch name {
	case "relaxed":
		return NewRelaxed(), true
	case "acqrel":
		return NewAcqRel(), true
	case "fence":
		return NewFence(), true
	case "consume":
		return NewConsume(), true
	case "seqcst":
		return NewSeqCst(), true
	case "seqlock":
		return NewSeqlock(), true
	case "barrier":
		return NewBarrier(), true
	case "mutex":
		return NewMutexBaseline(), true
	}
	return nil, false
}
