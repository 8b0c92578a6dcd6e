package memorder

import "code.hybscloud.com/atomix"

// AcqRel is the canonical minimal-sufficient pairing: the producer writes
// the payload relaxed, then release-stores the round number into the flag;
// the consumer acquire-loads the flag and, once it reads a round it has not
// consumed yet, every producer write that preceded that release is visible
// to its relaxed payload loads.
//
// The flag carries the round rather than a 0/1 value and is never cleared:
// a stale flag read can therefore only repeat an already-consumed round,
// never admit a rearm-in-progress payload as if it were newly published.
type AcqRel struct {
	data  words
	flag  atomix.Uint64 // carries the round; the release/acquire edge
	round uint64        // producer-owned
	seen  uint64        // consumer-owned: last round consumed
	snap  Payload
}

func NewAcqRel() *AcqRel { return &AcqRel{} }

//go:nosplit
func (r *AcqRel) Publish() {
	r.round++
	r.data.storeRelaxed(makePayload(r.round))
	r.flag.StoreRelease(r.round) // publication point
}

//go:nosplit
func (r *AcqRel) Observe() bool {
	f := r.flag.LoadAcquire()
	if f == r.seen {
		return false // nothing newer than what was already consumed
	}
	// Happens-before established with round f's release store: the relaxed
	// loads below see that round's complete payload.
	r.snap = r.data.loadRelaxed()
	r.seen = f
	return true
}

// Reset clears the payload words. The flag stays at its last round — its
// monotonicity is what lets Observe tell a fresh publication from a stale
// readiness value.
func (r *AcqRel) Reset() {
	r.data.reset()
}

func (r *AcqRel) Value() Payload { return r.snap }
