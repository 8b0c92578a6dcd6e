package memorder

import "sync/atomic"

// Seqlock guards an in-place multi-word record with a sequence counter:
// even means quiescent, odd means a write is in progress. The writer bumps
// the counter to odd, mutates the words directly (no allocation, no copy on
// the write side), and bumps it back to even. A reader's snapshot counts
// only if the counter was even and identical before and after the copy.
//
// The writer never blocks and never retries; readers absorb all the retry
// cost. A writer that publishes faster than a reader can copy will starve
// that reader indefinitely — that is the accepted tradeoff of the scheme,
// not a defect, and it is why the guarded record must stay small relative
// to the writer's cadence.
//
// Many readers may share one Seqlock concurrently through TryRead; the
// Primitive methods assume the usual one-consumer harness shape.
type Seqlock struct {
	seq   atomic.Uint64 // even = quiescent, odd = write in progress
	data  words
	round uint64 // writer-owned
	snap  Payload
}

func NewSeqlock() *Seqlock { return &Seqlock{} }

// Write installs p in place. Single writer only.
//
//go:nosplit
func (s *Seqlock) Write(p Payload) {
	s.seq.Add(1) // now odd: readers back off
	s.data.storeRelaxed(p)
	s.seq.Add(1) // even again: snapshot window closed
}

// TryRead captures one snapshot attempt. ok is false when a writer raced
// the copy; the caller retries.
//
//go:nosplit
func (s *Seqlock) TryRead() (Payload, bool) {
	s1 := s.seq.Load()
	if s1&1 == 1 {
		return Payload{}, false // writer mid-flight
	}
	p := s.data.loadRelaxed()
	s2 := s.seq.Load()
	if s1 != s2 {
		return Payload{}, false // a write landed during the copy
	}
	return p, true
}

func (s *Seqlock) Publish() {
	s.round++
	s.Write(makePayload(s.round))
}

//go:nosplit
func (s *Seqlock) Observe() bool {
	p, ok := s.TryRead()
	if !ok || p.Round == 0 {
		return false
	}
	s.snap = p
	return true
}

// Reset rearms via a regular write so the sequence counter stays even.
func (s *Seqlock) Reset() {
	s.Write(Payload{})
}

func (s *Seqlock) Value() Payload { return s.snap }
