package memorder

import "sync"

// MutexBaseline is the comparison floor, not an ordering pattern: a
// standard sync.Mutex guards the whole payload, so every access is totally
// ordered by the lock and tearing is impossible by construction. What the
// harness surfaces is its price — lock RMW traffic on every poll and a
// potential kernel handoff once the fast path is contended — against the
// wait-free patterns above it.
type MutexBaseline struct {
	mu    sync.Mutex
	p     Payload
	fresh bool   // set by Publish, consumed by Observe; guarded by mu
	round uint64 // producer-owned
	snap  Payload
}

func NewMutexBaseline() *MutexBaseline { return &MutexBaseline{} }

func (m *MutexBaseline) Publish() {
	m.mu.Lock()
	m.round++
	m.p = makePayload(m.round)
	m.fresh = true
	m.mu.Unlock()
}

// Observe never blocks beyond the lock's critical section; an empty poll
// returns false just like the wait-free patterns.
func (m *MutexBaseline) Observe() bool {
	m.mu.Lock()
	if !m.fresh {
		m.mu.Unlock()
		return false
	}
	m.snap = m.p
	m.fresh = false
	m.mu.Unlock()
	return true
}

func (m *MutexBaseline) Reset() {
	m.mu.Lock()
	m.p = Payload{}
	m.fresh = false
	m.mu.Unlock()
}

func (m *MutexBaseline) Value() Payload { return m.snap }
