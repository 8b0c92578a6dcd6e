package memorder

import "code.hybscloud.com/atomix"

// Relaxed publishes through a flag with no ordering at all: payload words
// and flag are all relaxed stores, so the consumer may observe flag=1 while
// some or all payload words are still stale. This is the negative control —
// it exists to demonstrate the failure mode the other patterns prevent, and
// its torn observations are expected output, not bugs.
type Relaxed struct {
	data  words
	flag  atomix.Uint64
	round uint64 // producer-owned
	snap  Payload
}

func NewRelaxed() *Relaxed { return &Relaxed{} }

//go:nosplit
func (r *Relaxed) Publish() {
	r.round++
	r.data.storeRelaxed(makePayload(r.round))
	r.flag.StoreRelaxed(1) // no release: payload stores may trail this
}

//go:nosplit
func (r *Relaxed) Observe() bool {
	if r.flag.LoadRelaxed() == 0 {
		return false
	}
	r.snap = r.data.loadRelaxed()
	return true
}

func (r *Relaxed) Reset() {
	r.flag.StoreRelaxed(0)
	r.data.reset()
}

func (r *Relaxed) Value() Payload { return r.snap }
