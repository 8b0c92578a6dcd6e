package memorder

import "sync/atomic"

// SeqCst publishes relaxed payload words behind a sequentially-consistent
// counter increment. Unlike acquire/release, which only orders this
// producer against this consumer, the SC increment takes part in the single
// total order over all SC operations in the program. That is strictly more
// than a two-party handoff needs, and the cross-core cost of maintaining
// the total order makes this the worst-case ordering baseline in the
// harness.
//
// The counter equals the round number and never runs backwards, so Observe
// can distinguish a fresh publication from a stale counter read by
// comparing against the last round it consumed.
type SeqCst struct {
	data  words
	seq   atomic.Uint64 // sync/atomic: sequentially consistent; counts publications
	round uint64        // producer-owned
	seen  uint64        // consumer-owned: last round consumed
	snap  Payload
}

func NewSeqCst() *SeqCst { return &SeqCst{} }

//go:nosplit
func (s *SeqCst) Publish() {
	s.round++
	s.data.storeRelaxed(makePayload(s.round))
	s.seq.Add(1) // SC read-modify-write; the publication point
}

//go:nosplit
func (s *SeqCst) Observe() bool {
	v := s.seq.Load()
	if v == s.seen {
		return false
	}
	s.snap = s.data.loadRelaxed()
	s.seen = v
	return true
}

// Reset clears the payload words; the counter keeps its total.
func (s *SeqCst) Reset() {
	s.data.reset()
}

func (s *SeqCst) Value() Payload { return s.snap }
