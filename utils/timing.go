package utils

import (
	"fmt"
	"io"
	"os"
	"time"
)

// Verbose controls whether timing statistics are printed.
// Set to false to suppress output.
var Verbose = true

// Output is the writer where timing statistics are printed.
// Defaults to os.Stdout.
var Output io.Writer = os.Stdout

// TimingStats holds timing information for a training run
type TimingStats struct {
	TotalTime        time.Duration
	ModelInitTime    time.Duration
	EnvironmentTime  time.Duration
	ForwardPassTime  time.Duration
	BackwardPassTime time.Duration
	ObserverTime     time.Duration
	Episodes         int
	Steps            int
}

// Since adds the time elapsed from start to *d and returns the current time,
// so consecutive phases can be chained off one clock reading.
func Since(d *time.Duration, start time.Time) time.Time {
	now := time.Now()
	*d += now.Sub(start)
	return now
}

// PrintTimingStats prints detailed timing statistics.
// Respects the Verbose flag - does nothing if Verbose is false.
func PrintTimingStats(stats *TimingStats, steps int) {
	if !Verbose || stats == nil {
		return
	}
	fmt.Fprintln(Output, "\n=== TIMING STATISTICS ===")
	fmt.Fprintf(Output, "Total training time: %v\n", stats.TotalTime)
	fmt.Fprintf(Output, "Episodes completed: %d\n", stats.Episodes)
	fmt.Fprintf(Output, "Steps completed: %d\n", steps)
	if steps > 0 {
		fmt.Fprintf(Output, "Average time per step: %v\n", stats.TotalTime/time.Duration(steps))
	}
	fmt.Fprintln(Output, "\nBreakdown by operation:")
	fmt.Fprintf(Output, "  Model initialization: %v (%.1f%%)\n", stats.ModelInitTime, percent(stats.ModelInitTime, stats.TotalTime))
	fmt.Fprintf(Output, "  Environment: %v (%.1f%%)\n", stats.EnvironmentTime, percent(stats.EnvironmentTime, stats.TotalTime))
	fmt.Fprintf(Output, "  Forward pass: %v (%.1f%%)\n", stats.ForwardPassTime, percent(stats.ForwardPassTime, stats.TotalTime))
	fmt.Fprintf(Output, "  Backward pass: %v (%.1f%%)\n", stats.BackwardPassTime, percent(stats.BackwardPassTime, stats.TotalTime))
	fmt.Fprintf(Output, "  Reporting: %v (%.1f%%)\n", stats.ObserverTime, percent(stats.ObserverTime, stats.TotalTime))
	if steps > 0 {
		fmt.Fprintln(Output, "\nPerformance metrics:")
		fmt.Fprintf(Output, "  Average forward pass time: %.2fµs\n", DurationUS(stats.ForwardPassTime)/float64(steps))
		fmt.Fprintf(Output, "  Average backward pass time: %.2fµs\n", DurationUS(stats.BackwardPassTime)/float64(steps))
		fmt.Fprintf(Output, "  Average environment step time: %.2fµs\n", DurationUS(stats.EnvironmentTime)/float64(steps))
	}
}

func percent(part, total time.Duration) float64 {
	if total <= 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// DurationUS converts any time.Duration to micro-seconds as float64
func DurationUS(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1_000.0
}
