// stress_test.go — cross-thread validation of the SPSC protocol.
//
// One producer, one consumer, randomized stalls on both sides, and a
// content digest on each end: the consumer must see exactly the records the
// producer pushed, byte for byte, in order. Any reordering, tear, or lost
// publication shows up as a digest mismatch.

package spsc

import (
	"encoding/binary"
	"math"
	"runtime"
	"sync/atomic"
	"testing"
	"time"

	"github.com/valyala/fastrand"
	"golang.org/x/crypto/sha3"

	"main/backoff"
)

func hashTick(h sha3.ShakeHash, rec *tick) {
	var b [33]byte
	binary.LittleEndian.PutUint64(b[0:], rec.Seq)
	binary.LittleEndian.PutUint64(b[8:], uint64(rec.TS))
	binary.LittleEndian.PutUint64(b[16:], math.Float64bits(rec.Px))
	binary.LittleEndian.PutUint64(b[24:], math.Float64bits(rec.Qty))
	b[32] = rec.Side
	h.Write(b[:])
}

func TestConcurrentStress(t *testing.T) {
	const records = 50_000
	const capacity = 1024

	r := New[tick](capacity)

	prodDigest := sha3.NewShake128()
	consDigest := sha3.NewShake128()

	done := make(chan struct{})
	go func() {
		defer close(done)
		wait := &backoff.Yield{}
		for i := uint64(0); i < records; i++ {
			rec := mkTick(i)
			hashTick(prodDigest, &rec)
			for !r.TryPush(rec) {
				wait.Wait()
			}
			wait.Reset()
			// Randomized stall: roughly 1 in 64 pushes pauses briefly so
			// the consumer alternates between draining and starving.
			if fastrand.Uint32n(64) == 0 {
				time.Sleep(time.Duration(fastrand.Uint32n(20)) * time.Microsecond)
			}
		}
	}()

	wait := &backoff.Yield{}
	popped := 0
	expect := uint64(0)
	deadline := time.Now().Add(30 * time.Second)
	for popped < records {
		rec, ok := r.TryPop()
		if !ok {
			if time.Now().After(deadline) {
				t.Fatalf("stalled after %d/%d records", popped, records)
			}
			wait.Wait()
			continue
		}
		wait.Reset()
		if rec.Seq != expect {
			t.Fatalf("out of order: got seq %d, want %d", rec.Seq, expect)
		}
		expect++
		popped++
		hashTick(consDigest, &rec)
		if fastrand.Uint32n(128) == 0 {
			runtime.Gosched()
		}
	}
	<-done

	var pd, cd [16]byte
	prodDigest.Read(pd[:])
	consDigest.Read(cd[:])
	if pd != cd {
		t.Fatalf("content digest mismatch: producer %x, consumer %x", pd, cd)
	}

	if _, ok := r.TryPop(); ok {
		t.Fatal("ring not empty after consuming every pushed record")
	}
}

// TestPinnedConsumer drives the packaged consumer loop end to end: every
// record is delivered exactly once, in order, and done closes after stop.
func TestPinnedConsumer(t *testing.T) {
	const records = 10_000

	r := New[tick](256)
	var stop atomic.Bool
	done := make(chan struct{})

	var got atomic.Uint64
	var misorder atomic.Uint64
	PinnedConsumer(-1, r, &stop, &backoff.Yield{}, func(rec *tick) {
		if rec.Seq != got.Load() {
			misorder.Add(1)
		}
		got.Add(1)
	}, done)

	wait := &backoff.Yield{}
	for i := uint64(0); i < records; i++ {
		for !r.TryPush(mkTick(i)) {
			wait.Wait()
		}
		wait.Reset()
	}

	stop.Store(true)
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("consumer did not exit after stop")
	}

	if n := got.Load(); n != records {
		t.Fatalf("consumer saw %d records, want %d", n, records)
	}
	if m := misorder.Load(); m != 0 {
		t.Fatalf("%d records delivered out of order", m)
	}
}
