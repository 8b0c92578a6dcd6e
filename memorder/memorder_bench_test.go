// ============================================================================
// ORDERING PRIMITIVES COST BENCHMARKS
// ============================================================================
//
// Same-core cost of each pattern's publish+observe pair. The cross-core
// handoff numbers — where ordering strength actually shows up as coherency
// traffic — come from the bench harness (`ordering` selector); these
// isolate instruction cost with the cache hot.

package memorder

import "testing"

func BenchmarkPublishObserve(b *testing.B) {
	for _, name := range Names() {
		if name == "barrier" {
			continue // Publish parks until the peer arrives; same-core timing is meaningless
		}
		b.Run(name, func(b *testing.B) {
			p, _ := ByName(name)
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				p.Publish()
				if !p.Observe() {
					b.Fatal("publish not observable on the same thread")
				}
				p.Reset()
			}
		})
	}
}

func BenchmarkSeqlockRead(b *testing.B) {
	s := NewSeqlock()
	s.Write(makePayload(1))

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, ok := s.TryRead(); !ok {
			b.Fatal("uncontended TryRead failed")
		}
	}
}

func BenchmarkSeqlockWrite(b *testing.B) {
	s := NewSeqlock()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Write(makePayload(uint64(i)))
	}
}
