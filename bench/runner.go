// ============================================================================
// BENCHMARK & SCALING HARNESS
// ============================================================================
//
// Drives the transport, the seven ordering primitives, and the two counter
// layouts with pinned-optional native threads and aggregates wall-clock
// timing. Liveness is guaranteed by bounding iteration counts up front —
// there are no timeouts or cancellation paths, and verification failures
// are reported to stderr as diagnostics, never as aborts.

package bench

import (
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"code.hybscloud.com/atomix"
	"github.com/valyala/fastrand"

	"main/affinity"
	"main/backoff"
	"main/cachealign"
	"main/debug"
	"main/memorder"
	"main/spsc"
	"main/utils"
)

// ErrUnknownPrimitive is returned for an ordering selector outside the
// memorder registry.
var ErrUnknownPrimitive = errors.New("bench: unknown primitive name")

// Options configures a harness run. Zero values select the defaults noted
// on each field.
type Options struct {
	Records  int  // channel run: records to move (default 1_000_000)
	Capacity int  // channel run: ring capacity (default 4096)
	Rounds   int  // ordering runs: publish/observe rounds (default 200_000)
	Iters    int  // alignment runs: increments per thread (default 1_000_000)
	Threads  int  // alignment/seqlock runs: worker threads (default NumCPU, capped at 24)
	Pin      bool // pin workers to cores 0,1,2,... via affinity
}

func (o Options) records() int  { return defaulted(o.Records, 1_000_000) }
func (o Options) capacity() int { return defaulted(o.Capacity, 4096) }
func (o Options) rounds() int   { return defaulted(o.Rounds, 200_000) }
func (o Options) iters() int    { return defaulted(o.Iters, 1_000_000) }

func (o Options) threads() int {
	if o.Threads > 0 {
		return o.Threads
	}
	n := runtime.NumCPU()
	if n > 24 {
		n = 24
	}
	return n
}

func defaulted(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}

func (o Options) pin(core int) {
	if o.Pin {
		affinity.Pin(core)
	}
}

// span is the record the channel benchmark moves: a sequence number, the
// push-side timestamp, and a checksum binding the two.
type span struct {
	Seq   uint64
	TS    int64
	Check uint64
}

func checksum(seq uint64, ts int64) uint64 {
	return utils.Mix64(seq ^ uint64(ts))
}

// RunChannel moves opts.Records timestamped records through an SPSC ring
// and reports throughput plus the per-record handoff latency distribution.
func RunChannel(opts Options) ChannelReport {
	records := opts.records()
	capacity := opts.capacity()

	r := spsc.New[span](capacity)
	sampleCap := records
	if sampleCap > 1<<20 {
		sampleCap = 1 << 20
	}
	tracker := NewTracker(sampleCap)

	var pushed, popped, corrupt uint64

	start := time.Now()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		opts.pin(0)

		wait := &backoff.Yield{}
		for i := 0; i < records; i++ {
			seq := uint64(i)
			ts := time.Now().UnixNano()
			rec := span{Seq: seq, TS: ts, Check: checksum(seq, ts)}
			for !r.TryPush(rec) {
				wait.Wait()
			}
			wait.Reset()
			pushed++
			// Brief stochastic stall every few thousand pushes keeps the
			// consumer from measuring only a saturated ring.
			if i%4096 == 4095 {
				time.Sleep(time.Duration(fastrand.Uint32n(10)) * time.Microsecond)
			}
		}
	}()

	func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		opts.pin(1)

		wait := &backoff.Yield{}
		for int(popped) < records {
			rec, ok := r.TryPop()
			if !ok {
				wait.Wait()
				continue
			}
			wait.Reset()
			now := time.Now().UnixNano()
			tracker.Record(now - rec.TS)
			if rec.Check != checksum(rec.Seq, rec.TS) || rec.Seq != popped {
				corrupt++
			}
			popped++
		}
	}()

	wg.Wait()
	elapsed := time.Since(start)

	if corrupt > 0 {
		debug.DropMessage("VERIFY", "channel run saw "+utils.Itoa(int(corrupt))+" corrupt records")
	}

	return ChannelReport{
		Capacity:   capacity,
		Records:    records,
		Pushed:     pushed,
		Popped:     popped,
		Corrupt:    corrupt,
		DurationNS: elapsed.Nanoseconds(),
		Latency:    tracker.Summary(),
	}
}

// RunOrdering measures round-trip publication for one named primitive:
// producer publishes, consumer busy-waits until it observes that round,
// acks, and the producer rearms. Torn observations are counted, not fatal —
// for the relaxed pattern they are the finding.
func RunOrdering(name string, opts Options) (OrderingReport, error) {
	p, ok := memorder.ByName(name)
	if !ok {
		return OrderingReport{}, ErrUnknownPrimitive
	}
	rounds := opts.rounds()

	var ack atomix.Uint64
	var torn uint64

	start := time.Now()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		opts.pin(0)

		wait := &backoff.Hot{}
		for r := uint64(1); r <= uint64(rounds); r++ {
			p.Publish()
			for ack.LoadAcquire() != r {
				wait.Wait()
			}
			p.Reset()
		}
	}()

	func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		opts.pin(1)

		wait := &backoff.Hot{}
		for r := uint64(1); r <= uint64(rounds); r++ {
			for {
				if p.Observe() {
					v := p.Value()
					if v.Round == r {
						if !v.Consistent() {
							torn++
						}
						break
					}
				}
				wait.Wait()
			}
			ack.StoreRelease(r)
		}
	}()

	wg.Wait()
	elapsed := time.Since(start)

	if torn > 0 {
		debug.DropMessage("TORN", name+" produced "+utils.Itoa(int(torn))+" torn observations over "+utils.Itoa(rounds)+" rounds")
	}

	return OrderingReport{
		Primitive:  name,
		Rounds:     rounds,
		Torn:       torn,
		DurationNS: elapsed.Nanoseconds(),
		NSPerRound: elapsed.Nanoseconds() / int64(rounds),
	}, nil
}

// RunSeqlock stresses one writer against opts.Threads readers. Every
// snapshot a reader accepts is checksum-verified; the writer never waits.
func RunSeqlock(opts Options) SeqlockReport {
	writes := opts.rounds()
	readers := opts.threads()

	s := memorder.NewSeqlock()
	var stop atomic.Bool
	var accepted, torn atomic.Uint64

	var wg sync.WaitGroup
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			runtime.LockOSThread()
			defer runtime.UnlockOSThread()
			opts.pin(1 + id)

			wait := &backoff.Yield{}
			for !stop.Load() {
				p, ok := s.TryRead()
				if !ok {
					wait.Wait()
					continue
				}
				wait.Reset()
				if p.Round == 0 {
					continue // pre-first-write quiescent state
				}
				if p.Consistent() {
					accepted.Add(1)
				} else {
					torn.Add(1)
				}
			}
		}(i)
	}

	start := time.Now()
	func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		opts.pin(0)
		for r := uint64(1); r <= uint64(writes); r++ {
			s.Publish()
		}
	}()
	elapsed := time.Since(start)

	stop.Store(true)
	wg.Wait()

	if n := torn.Load(); n > 0 {
		debug.DropMessage("TORN", "seqlock readers accepted "+utils.Itoa(int(n))+" torn snapshots")
	}

	return SeqlockReport{
		Readers:    readers,
		Writes:     writes,
		Accepted:   accepted.Load(),
		Torn:       torn.Load(),
		DurationNS: elapsed.Nanoseconds(),
	}
}

// runCounters executes the increment workload on one layout and verifies
// the final counts. The 8-way unroll keeps loop overhead from hiding the
// coherency cost being measured.
func runCounters(l cachealign.Layout, threads, iters int, pin bool) (time.Duration, int) {
	var wg sync.WaitGroup
	start := time.Now()
	for id := 0; id < threads; id++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			runtime.LockOSThread()
			defer runtime.UnlockOSThread()
			if pin {
				affinity.Pin(id)
			}

			i := 0
			for ; i+8 <= iters; i += 8 {
				l.Increment(id)
				l.Increment(id)
				l.Increment(id)
				l.Increment(id)
				l.Increment(id)
				l.Increment(id)
				l.Increment(id)
				l.Increment(id)
			}
			for ; i < iters; i++ {
				l.Increment(id)
			}
		}(id)
	}
	wg.Wait()
	elapsed := time.Since(start)

	mismatches := 0
	for id := 0; id < threads; id++ {
		if got := l.Read(id); got != int64(iters) {
			mismatches++
			debug.DropMessage("VERIFY", l.Name()+" counter "+utils.Itoa(id)+" = "+
				utils.Itoa(int(got))+", want "+utils.Itoa(iters))
		}
	}
	return elapsed, mismatches
}

// RunAlignment compares the packed and padded layouts at one thread count.
func RunAlignment(threads int, opts Options) AlignmentRow {
	iters := opts.iters()

	packedDur, packedBad := runCounters(cachealign.NewPacked(threads), threads, iters, opts.Pin)
	paddedDur, paddedBad := runCounters(cachealign.NewPadded(threads), threads, iters, opts.Pin)

	slowdown := 0.0
	if paddedDur > 0 {
		slowdown = float64(packedDur) / float64(paddedDur)
	}

	return AlignmentRow{
		Threads:    threads,
		Iters:      iters,
		PackedNS:   packedDur.Nanoseconds(),
		PaddedNS:   paddedDur.Nanoseconds(),
		Slowdown:   slowdown,
		Mismatches: packedBad + paddedBad,
	}
}

// RunScaling sweeps the alignment comparison across thread counts,
// skipping counts beyond the hardware.
func RunScaling(counts []int, opts Options) []AlignmentRow {
	rows := make([]AlignmentRow, 0, len(counts))
	for _, n := range counts {
		if n > runtime.NumCPU() {
			debug.DropMessage("SKIP", utils.Itoa(n)+" threads exceeds "+
				utils.Itoa(runtime.NumCPU())+" hardware threads")
			continue
		}
		rows = append(rows, RunAlignment(n, opts))
	}
	return rows
}
