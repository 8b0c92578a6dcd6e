// latency.go — bounded per-item latency sampling.
//
// The tracker is written to from exactly one consumer thread during a run
// and queried after the run joins; it is not a concurrent structure. The
// sample buffer is allocated once up front so Record never allocates on the
// hot path — once full, further samples are counted but dropped.

package bench

import "sort"

// Tracker accumulates nanosecond latency samples up to a fixed capacity.
type Tracker struct {
	samples []int64
	dropped uint64
}

func NewTracker(capacity int) *Tracker {
	if capacity <= 0 {
		panic("bench: tracker capacity must be positive")
	}
	return &Tracker{samples: make([]int64, 0, capacity)}
}

// Record stores one sample, or counts it as dropped when the buffer is full.
//
//go:nosplit
func (t *Tracker) Record(ns int64) {
	if len(t.samples) == cap(t.samples) {
		t.dropped++
		return
	}
	t.samples = append(t.samples, ns)
}

func (t *Tracker) Count() int      { return len(t.samples) }
func (t *Tracker) Dropped() uint64 { return t.dropped }

// LatencySummary is the post-run digest: minimum, median, 99th percentile,
// maximum, and arithmetic mean, all in nanoseconds.
type LatencySummary struct {
	Count    int    `json:"count"`
	Dropped  uint64 `json:"dropped,omitempty"`
	MinNS    int64  `json:"min_ns"`
	MedianNS int64  `json:"median_ns"`
	P99NS    int64  `json:"p99_ns"`
	MaxNS    int64  `json:"max_ns"`
	MeanNS   int64  `json:"mean_ns"`
}

// Summary sorts a copy of the samples and digests them. Zero samples yield
// a zero summary.
func (t *Tracker) Summary() LatencySummary {
	n := len(t.samples)
	if n == 0 {
		return LatencySummary{Dropped: t.dropped}
	}

	sorted := make([]int64, n)
	copy(sorted, t.samples)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var sum int64
	for _, s := range sorted {
		sum += s
	}

	return LatencySummary{
		Count:    n,
		Dropped:  t.dropped,
		MinNS:    sorted[0],
		MedianNS: sorted[n/2],
		P99NS:    sorted[n*99/100],
		MaxNS:    sorted[n-1],
		MeanNS:   sum / int64(n),
	}
}

// Percentile returns the p-th percentile (0 < p <= 100) without building a
// full summary.
func (t *Tracker) Percentile(p int) int64 {
	n := len(t.samples)
	if n == 0 || p <= 0 || p > 100 {
		return 0
	}
	sorted := make([]int64, n)
	copy(sorted, t.samples)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	idx := n * p / 100
	if idx >= n {
		idx = n - 1
	}
	return sorted[idx]
}
