// report.go — result types and rendering.
//
// Text goes to stdout for humans; -json renders the identical structs
// through sonnet for machine consumption. Diagnostics (verification
// mismatches, skips) never appear here — they go through main/debug to
// stderr as they happen.

package bench

import (
	"fmt"
	"io"
	"time"

	"github.com/sugawarayuuta/sonnet"
)

// ChannelReport summarises one SPSC transport run.
type ChannelReport struct {
	Capacity   int            `json:"capacity"`
	Records    int            `json:"records"`
	Pushed     uint64         `json:"pushed"`
	Popped     uint64         `json:"popped"`
	Corrupt    uint64         `json:"corrupt"`
	DurationNS int64          `json:"duration_ns"`
	Latency    LatencySummary `json:"latency"`
}

// OrderingReport summarises one primitive's cross-core round-trip run.
type OrderingReport struct {
	Primitive  string `json:"primitive"`
	Rounds     int    `json:"rounds"`
	Torn       uint64 `json:"torn,omitempty"`
	DurationNS int64  `json:"duration_ns"`
	NSPerRound int64  `json:"ns_per_round"`
}

// SeqlockReport summarises the one-writer/many-readers stress.
type SeqlockReport struct {
	Readers    int    `json:"readers"`
	Writes     int    `json:"writes"`
	Accepted   uint64 `json:"accepted"`
	Torn       uint64 `json:"torn"`
	DurationNS int64  `json:"duration_ns"`
}

// AlignmentRow is one thread-count's packed-vs-padded comparison. Slowdown
// is packed time over padded time; above 1.0 is the false-sharing cost.
type AlignmentRow struct {
	Threads    int     `json:"threads"`
	Iters      int     `json:"iters"`
	PackedNS   int64   `json:"packed_ns"`
	PaddedNS   int64   `json:"padded_ns"`
	Slowdown   float64 `json:"slowdown"`
	Mismatches int     `json:"mismatches"`
}

// Report is the full output of a harness invocation; absent sections were
// not selected.
type Report struct {
	Channel   *ChannelReport   `json:"channel,omitempty"`
	Ordering  []OrderingReport `json:"ordering,omitempty"`
	Seqlock   *SeqlockReport   `json:"seqlock,omitempty"`
	Alignment []AlignmentRow   `json:"alignment,omitempty"`
}

// WriteJSON renders the report as a single JSON document.
func (r *Report) WriteJSON(w io.Writer) error {
	b, err := sonnet.Marshal(r)
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}

// WriteText renders the report for a terminal.
func (r *Report) WriteText(w io.Writer) {
	if c := r.Channel; c != nil {
		fmt.Fprintf(w, "=== SPSC channel ===\n")
		fmt.Fprintf(w, "capacity %d, records %d: pushed %d, popped %d, corrupt %d in %v\n",
			c.Capacity, c.Records, c.Pushed, c.Popped, c.Corrupt, time.Duration(c.DurationNS))
		l := c.Latency
		fmt.Fprintf(w, "latency (ns): min=%d median=%d p99=%d max=%d mean=%d (%d samples",
			l.MinNS, l.MedianNS, l.P99NS, l.MaxNS, l.MeanNS, l.Count)
		if l.Dropped > 0 {
			fmt.Fprintf(w, ", %d dropped", l.Dropped)
		}
		fmt.Fprintf(w, ")\n\n")
	}

	if len(r.Ordering) > 0 {
		fmt.Fprintf(w, "=== ordering primitives ===\n")
		for _, o := range r.Ordering {
			fmt.Fprintf(w, "%-8s %d rounds in %v (%d ns/round)", o.Primitive, o.Rounds,
				time.Duration(o.DurationNS), o.NSPerRound)
			if o.Torn > 0 {
				fmt.Fprintf(w, "  torn=%d", o.Torn)
			}
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w)
	}

	if s := r.Seqlock; s != nil {
		fmt.Fprintf(w, "=== seqlock stress ===\n")
		fmt.Fprintf(w, "%d readers vs %d writes: %d consistent snapshots, %d torn, in %v\n\n",
			s.Readers, s.Writes, s.Accepted, s.Torn, time.Duration(s.DurationNS))
	}

	if len(r.Alignment) > 0 {
		fmt.Fprintf(w, "=== cache alignment (packed vs padded) ===\n")
		for _, row := range r.Alignment {
			fmt.Fprintf(w, "%2d threads × %d iters: packed %v, padded %v, slowdown %.1fx",
				row.Threads, row.Iters, time.Duration(row.PackedNS), time.Duration(row.PaddedNS), row.Slowdown)
			if row.Mismatches > 0 {
				fmt.Fprintf(w, "  MISMATCHES=%d", row.Mismatches)
			}
			fmt.Fprintln(w)
		}
	}
}
