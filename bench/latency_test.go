package bench

import "testing"

func TestTrackerSummaryOrder(t *testing.T) {
	tr := NewTracker(16)
	for _, v := range []int64{50, 10, 90, 30, 70} {
		tr.Record(v)
	}
	s := tr.Summary()
	if s.Count != 5 {
		t.Fatalf("count = %d, want 5", s.Count)
	}
	if s.MinNS != 10 || s.MaxNS != 90 {
		t.Fatalf("min/max = %d/%d, want 10/90", s.MinNS, s.MaxNS)
	}
	if s.MedianNS != 50 {
		t.Fatalf("median = %d, want 50", s.MedianNS)
	}
	if s.MinNS > s.MedianNS || s.MedianNS > s.P99NS || s.P99NS > s.MaxNS {
		t.Fatalf("summary not monotone: %+v", s)
	}
}

func TestTrackerSingleSample(t *testing.T) {
	tr := NewTracker(4)
	tr.Record(42)
	s := tr.Summary()
	if s.MinNS != 42 || s.MedianNS != 42 || s.P99NS != 42 || s.MaxNS != 42 {
		t.Fatalf("single-sample summary = %+v, want all 42", s)
	}
}

func TestTrackerDropsWhenFull(t *testing.T) {
	tr := NewTracker(4)
	for i := int64(0); i < 10; i++ {
		tr.Record(i)
	}
	if tr.Count() != 4 {
		t.Fatalf("count = %d, want 4", tr.Count())
	}
	if tr.Dropped() != 6 {
		t.Fatalf("dropped = %d, want 6", tr.Dropped())
	}
	if s := tr.Summary(); s.Dropped != 6 {
		t.Fatalf("summary dropped = %d, want 6", s.Dropped)
	}
}

func TestTrackerEmptySummaryIsZero(t *testing.T) {
	tr := NewTracker(4)
	if s := tr.Summary(); s != (LatencySummary{}) {
		t.Fatalf("empty summary = %+v, want zero value", s)
	}
}

func TestTrackerSummaryDoesNotReorderSamples(t *testing.T) {
	tr := NewTracker(8)
	in := []int64{5, 3, 9, 1}
	for _, v := range in {
		tr.Record(v)
	}
	_ = tr.Summary()
	_ = tr.Summary() // sorting must happen on a copy
	for i, v := range in {
		if tr.samples[i] != v {
			t.Fatalf("samples[%d] = %d, want %d", i, tr.samples[i], v)
		}
	}
}

func TestNewTrackerPanicsOnBadCapacity(t *testing.T) {
	for _, c := range []int{0, -1} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("NewTracker(%d) did not panic", c)
				}
			}()
			NewTracker(c)
		}()
	}
}
