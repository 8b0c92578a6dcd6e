package memorder

import "sync/atomic"

// node is heap-allocated fresh for every publication; its fields are only
// reachable through the published pointer.
type node struct {
	p Payload
}

// Consume demonstrates pointer-mediated publication: the producer builds a
// node, then publishes its address; the consumer reads only data reachable
// through the loaded pointer. Historically this pattern relied on consume
// ordering, which scopes visibility to dependency-carrying loads. Go (like
// every mainstream compiler today) has no distinct consume level, so the
// pointer load is acquire-or-stronger here; the dependency-scoped structure
// is preserved even though the guarantee delivered is the wider one.
//
// Ownership of the node transfers to the consumer at publication; nothing
// is freed explicitly — dropping the pointer on Reset lets the GC reclaim
// the node once the consumer's snapshot is taken.
type Consume struct {
	ptr   atomic.Pointer[node]
	round uint64 // producer-owned
	snap  Payload
}

func NewConsume() *Consume { return &Consume{} }

func (c *Consume) Publish() {
	c.round++
	n := &node{p: makePayload(c.round)} // allocates every round; the address is the publication
	c.ptr.Store(n)
}

//go:nosplit
func (c *Consume) Observe() bool {
	n := c.ptr.Load()
	if n == nil {
		return false
	}
	// Every field read here carries a data dependency on n.
	c.snap = n.p
	return true
}

func (c *Consume) Reset() {
	c.ptr.Store(nil)
}

func (c *Consume) Value() Payload { return c.snap }
