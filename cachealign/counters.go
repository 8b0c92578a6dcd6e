// ============================================================================
// CACHE ALIGNMENT STUDY — COUNTER LAYOUTS
// ============================================================================
//
// Two layouts of per-thread counters behind one interface, identical except
// for memory placement:
//
//   Packed — counters are contiguous int64s, eight to a 64-byte cache line.
//            Neighboring threads' increments fight over line ownership, and
//            the coherency traffic (false sharing) is the measured cost.
//   Padded — one counter per 64-byte stride, so each thread's line is
//            exclusively its own and increments scale with core count.
//
// Each counter id is owned by exactly one thread; the increments are atomic
// only so the packed layout's cross-line traffic is an honest measurement
// rather than undefined behavior. Any final count that differs from the
// assigned increment total indicates two threads sharing a counter — the
// harness checks for exactly that.

package cachealign

import (
	"unsafe"

	"code.hybscloud.com/atomix"
)

// cacheLine is the coherency granule on every mainstream x86/ARM part.
const cacheLine = 64

// Layout is the common surface of both counter arrangements.
type Layout interface {
	// Increment bumps the counter owned by thread id. Call only from the
	// owning thread.
	Increment(id int)
	// Read returns the counter's value; meaningful once the owning thread
	// has joined.
	Read(id int) int64
	// Threads is the number of counters allocated.
	Threads() int
	// Name identifies the layout in reports.
	Name() string
}

// Packed lays all counters out contiguously.
type Packed struct {
	counters []atomix.Int64
}

func NewPacked(threads int) *Packed {
	if threads <= 0 {
		panic("cachealign: thread count must be positive")
	}
	return &Packed{counters: make([]atomix.Int64, threads)}
}

//go:nosplit
func (p *Packed) Increment(id int) { p.counters[id].Add(1) }

func (p *Packed) Read(id int) int64 { return p.counters[id].Load() }
func (p *Packed) Threads() int      { return len(p.counters) }
func (p *Packed) Name() string      { return "packed" }

// paddedCounter occupies exactly one cache line.
type paddedCounter struct {
	v atomix.Int64
	_ [cacheLine - 8]byte
}

// Stride must be exactly one line or the whole study measures nothing.
var _ [cacheLine - int(unsafe.Sizeof(paddedCounter{}))]byte
var _ [int(unsafe.Sizeof(paddedCounter{})) - cacheLine]byte

// Padded gives every counter its own cache line.
type Padded struct {
	counters []paddedCounter
}

func NewPadded(threads int) *Padded {
	if threads <= 0 {
		panic("cachealign: thread count must be positive")
	}
	return &Padded{counters: make([]paddedCounter, threads)}
}

//go:nosplit
func (p *Padded) Increment(id int) { p.counters[id].v.Add(1) }

func (p *Padded) Read(id int) int64 { return p.counters[id].v.Load() }
func (p *Padded) Threads() int      { return len(p.counters) }
func (p *Padded) Name() string      { return "padded" }
