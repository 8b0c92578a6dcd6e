// ════════════════════════════════════════════════════════════════════════════════════════════════
// Lock-Free Coordination Lab - Main Entry Point
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Lock-Free Coordination Lab
// Component: CLI Entry Point & Run Orchestration
//
// Description:
//   Dispatches a closed set of named experiments over the SPSC channel, the
//   memory-ordering primitives, and the counter-layout comparison, then
//   renders one consolidated report to stdout (text or JSON).
//
// Selectors:
//   ring      — SPSC channel throughput + per-record latency distribution
//   ordering  — publish/observe round-trips per primitive (+ seqlock stress)
//   alignment — packed vs padded counters at one thread count
//   scaling   — packed vs padded swept across thread counts
//   all       — everything above
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	rtdebug "runtime/debug"

	"main/bench"
	"main/debug"
	"main/memorder"
	"main/utils"
)

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// USAGE & ARGUMENT HANDLING
// ═══════════════════════════════════════════════════════════════════════════════════════════════

func usage(w *os.File) {
	fmt.Fprintf(w, `usage: %s <selector> [flags]

selectors:
  ring       SPSC channel run: throughput and per-record latency
  ordering   publish/observe round-trips for each ordering primitive
  alignment  packed vs padded counter layouts at one thread count
  scaling    packed vs padded swept across thread counts
  all        every experiment above

flags:
  -records N   records through the channel (default 1000000)
  -cap N       channel capacity (default 4096)
  -rounds N    publish/observe rounds per primitive (default 200000)
  -iters N     increments per thread (default 1000000)
  -threads N   worker threads for alignment/seqlock (default NumCPU, max 24)
  -prim NAME   restrict ordering to one primitive (%s)
  -pin         pin workers to cores
  -json        render the report as JSON
`, os.Args[0], joinNames())
}

func joinNames() string {
	s := ""
	for i, n := range memorder.Names() {
		if i > 0 {
			s += ", "
		}
		s += n
	}
	return s
}

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// MAIN ORCHESTRATION
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// main parses the selector, runs the chosen experiments with GC quiesced,
// and renders the consolidated report.
func main() {
	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}
	selector := os.Args[1]

	fs := flag.NewFlagSet(selector, flag.ExitOnError)
	var (
		records = fs.Int("records", 0, "records through the channel")
		capFlag = fs.Int("cap", 0, "channel capacity")
		rounds  = fs.Int("rounds", 0, "publish/observe rounds per primitive")
		iters   = fs.Int("iters", 0, "increments per thread")
		threads = fs.Int("threads", 0, "worker threads")
		prim    = fs.String("prim", "", "single primitive name for ordering")
		pin     = fs.Bool("pin", false, "pin workers to cores")
		asJSON  = fs.Bool("json", false, "render report as JSON")
	)
	fs.Usage = func() { usage(os.Stderr) }
	fs.Parse(os.Args[2:])

	opts := bench.Options{
		Records:  *records,
		Capacity: *capFlag,
		Rounds:   *rounds,
		Iters:    *iters,
		Threads:  *threads,
		Pin:      *pin,
	}

	prims := memorder.Names()
	if *prim != "" {
		if _, ok := memorder.ByName(*prim); !ok {
			fmt.Fprintf(os.Stderr, "unknown primitive %q (have: %s)\n\n", *prim, joinNames())
			usage(os.Stderr)
			os.Exit(2)
		}
		prims = []string{*prim}
	}

	// The experiments measure cross-core traffic in the tens of nanoseconds;
	// a background GC cycle mid-run would dominate the numbers.
	rtdebug.SetGCPercent(-1)
	defer rtdebug.SetGCPercent(100)

	var report bench.Report

	switch selector {
	case "ring":
		runRing(&report, opts)
	case "ordering":
		runOrdering(&report, prims, opts)
	case "alignment":
		runAlignment(&report, opts)
	case "scaling":
		runScaling(&report, opts)
	case "all":
		runRing(&report, opts)
		runOrdering(&report, prims, opts)
		runScaling(&report, opts)
	default:
		fmt.Fprintf(os.Stderr, "unknown selector %q\n\n", selector)
		usage(os.Stderr)
		os.Exit(2)
	}

	if *asJSON {
		if err := report.WriteJSON(os.Stdout); err != nil {
			debug.DropError("REPORT", err)
			os.Exit(1)
		}
		return
	}
	report.WriteText(os.Stdout)
}

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// EXPERIMENT RUNNERS
// ═══════════════════════════════════════════════════════════════════════════════════════════════

func runRing(report *bench.Report, opts bench.Options) {
	debug.DropMessage("RUN", "channel")
	c := bench.RunChannel(opts)
	report.Channel = &c
}

// runOrdering drives each requested primitive in turn and, when the seqlock
// is among them, adds the one-writer/many-readers stress as well.
func runOrdering(report *bench.Report, prims []string, opts bench.Options) {
	for _, name := range prims {
		debug.DropMessage("RUN", "ordering/"+name)
		rep, err := bench.RunOrdering(name, opts)
		if err != nil {
			debug.DropError("ORDERING", err)
			continue
		}
		report.Ordering = append(report.Ordering, rep)
		if name == "seqlock" {
			debug.DropMessage("RUN", "seqlock stress")
			s := bench.RunSeqlock(opts)
			report.Seqlock = &s
		}
	}
}

func runAlignment(report *bench.Report, opts bench.Options) {
	n := opts.Threads
	if n <= 0 {
		n = runtime.NumCPU()
	}
	if n > runtime.NumCPU() {
		debug.DropMessage("SKIP", utils.Itoa(n)+" threads exceeds hardware, clamping")
		n = runtime.NumCPU()
	}
	debug.DropMessage("RUN", "alignment × "+utils.Itoa(n))
	report.Alignment = append(report.Alignment, bench.RunAlignment(n, opts))
}

func runScaling(report *bench.Report, opts bench.Options) {
	counts := []int{1, 2, 4, 8, 16, 24}
	debug.DropMessage("RUN", "scaling sweep")
	report.Alignment = append(report.Alignment, bench.RunScaling(counts, opts)...)
}
