// Computes the end-of-run summary: balk rate, mean wait and the wait-time distribution.

package sim

import (
	"fmt"
	"io"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/kiosk-sim/kiosk-sim/sim/trace"
)

// Counters are the running accumulators the engine maintains.
type Counters struct {
	Served         int     // students whose service completed
	Balked         int     // balk events (a student may balk more than once)
	CumulativeWait float64 // sum of (service start - latest arrival) over served students
	Arrivals       int     // StudentArrival events dispatched
	Returns        int     // BalkReturn events dispatched
}

// Metrics are the derived summary values.
type Metrics struct {
	BalkRatePercent float64
	MeanWait        float64
}

// Aggregate derives Metrics from counters. It is a pure function.
func Aggregate(c Counters) Metrics {
	var m Metrics
	if total := c.Served + c.Balked; total > 0 {
		m.BalkRatePercent = float64(c.Balked) / float64(total) * 100
	}
	if c.Served > 0 {
		m.MeanWait = c.CumulativeWait / float64(c.Served)
	}
	return m
}

// WaitDistribution describes the per-student wait times of served students.
type WaitDistribution struct {
	Count  int
	Mean   float64
	StdDev float64
	P50    float64
	P90    float64
	Max    float64
}

// WaitStats summarizes wait times. Safe for empty input (zero values).
func WaitStats(waits []float64) WaitDistribution {
	d := WaitDistribution{Count: len(waits)}
	if len(waits) == 0 {
		return d
	}
	sorted := append([]float64(nil), waits...)
	sort.Float64s(sorted)

	d.Mean = stat.Mean(sorted, nil)
	if len(sorted) > 1 {
		d.StdDev = stat.StdDev(sorted, nil)
	}
	d.P50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	d.P90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)
	d.Max = floats.Max(sorted)
	return d
}

// SimulationResult is the complete observable output of one run.
type SimulationResult struct {
	Key             SimulationKey
	Config          Config
	Horizon         float64
	Trace           trace.Reader
	Iterations      int
	FinalClock      float64
	StopReason      StopReason
	State           RunState
	Served          int
	Balked          int
	BalkRatePercent float64
	MeanWait        float64
	Counters        Counters
	Waits           []float64 // per served student, in completion order
	Waiting         int       // students still queued at the end
	InService       int       // students still on a terminal at the end
	PendingReturns  int       // balked students not yet returned
}

// WaitDistribution summarizes Waits.
func (r *SimulationResult) WaitDistribution() WaitDistribution {
	return WaitStats(r.Waits)
}

// Print writes the run summary.
func (r *SimulationResult) Print(w io.Writer) {
	d := r.WaitDistribution()
	fmt.Fprintln(w, "=== Simulation Metrics ===")
	fmt.Fprintf(w, "Seed                 : %d\n", r.Key)
	fmt.Fprintf(w, "Stop reason          : %s\n", r.StopReason)
	fmt.Fprintf(w, "Iterations           : %d\n", r.Iterations)
	fmt.Fprintf(w, "Final clock          : %.2f\n", r.FinalClock)
	fmt.Fprintf(w, "Students served      : %d\n", r.Served)
	fmt.Fprintf(w, "Students balked      : %d\n", r.Balked)
	fmt.Fprintf(w, "Balk rate            : %.2f%%\n", r.BalkRatePercent)
	fmt.Fprintf(w, "Mean wait            : %.2f\n", r.MeanWait)
	if d.Count > 0 {
		fmt.Fprintf(w, "Wait p50 / p90 / max : %.2f / %.2f / %.2f\n", d.P50, d.P90, d.Max)
		fmt.Fprintf(w, "Wait stddev          : %.2f\n", d.StdDev)
	}
	fmt.Fprintf(w, "Still in system      : %d waiting, %d in service, %d returning\n",
		r.Waiting, r.InService, r.PendingReturns)
}
