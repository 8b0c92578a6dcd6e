// ============================================================================
// SPIN-WAIT STRATEGY LIBRARY
// ============================================================================
//
// Caller-injected waiting policies for busy-retry loops around wait-free
// operations (TryPush/TryPop/Observe). The transport and ordering primitives
// never wait on their own; every "not ready" result is returned to the
// caller, and the caller decides how to burn the gap:
//
//   - Hot:      tight spin with a CPU pause hint, for dedicated cores
//   - Yield:    pause for a short budget, then hand the core to the scheduler
//   - Sleep:    pause → yield → short sleep, for shared or oversubscribed hosts
//   - Escalate: code.hybscloud.com/spin's adaptive ramp
//
// A Strategy is owned by exactly one goroutine; none of the implementations
// are safe for concurrent use.

package backoff

import (
	"runtime"
	"time"

	"code.hybscloud.com/spin"
)

// Strategy is one goroutine's waiting policy. Wait is called once per missed
// poll; Reset is called after a successful operation so escalation state
// starts over.
type Strategy interface {
	Wait()
	Reset()
}

// Hot spins with only the CPU pause hint between polls. Latency-first:
// assumes a dedicated core and tolerates 100% utilisation while idle.
type Hot struct{}

func (Hot) Wait()  { Relax() }
func (Hot) Reset() {}

// Yield pauses for Budget polls, then yields the processor to the scheduler
// on every subsequent miss. Zero Budget defaults to 256 polls, the same
// grace window the pinned consumer uses before leaving its hot loop.
type Yield struct {
	Budget int
	miss   int
}

func (y *Yield) Wait() {
	limit := y.Budget
	if limit == 0 {
		limit = 256
	}
	if y.miss < limit {
		y.miss++
		Relax()
		return
	}
	runtime.Gosched()
}

func (y *Yield) Reset() { y.miss = 0 }

// Sleep escalates pause → yield → timed sleep. The sleep tier caps the
// latency cost at Interval but frees the core entirely, which matters when
// the benchmark host has fewer cores than worker threads.
type Sleep struct {
	Budget   int           // polls before yielding (0 → 256)
	Interval time.Duration // sleep length once yielding stops helping (0 → 50µs)
	miss     int
}

func (s *Sleep) Wait() {
	limit := s.Budget
	if limit == 0 {
		limit = 256
	}
	switch {
	case s.miss < limit:
		s.miss++
		Relax()
	case s.miss < limit*2:
		s.miss++
		runtime.Gosched()
	default:
		d := s.Interval
		if d == 0 {
			d = 50 * time.Microsecond
		}
		time.Sleep(d)
	}
}

func (s *Sleep) Reset() { s.miss = 0 }

// Escalate defers to spin.Wait's adaptive ramp-up.
type Escalate struct {
	sw spin.Wait
}

func (e *Escalate) Wait()  { e.sw.Once() }
func (e *Escalate) Reset() { e.sw.Reset() }
