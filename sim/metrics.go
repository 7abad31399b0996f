// Tracks simulation-wide counters such as arrivals, completions, waiting time
// and operator utilization.

package sim

import (
	"fmt"
	"io"
	"time"
)

// Metrics aggregates statistics about the simulation for final reporting.
// Only counters are kept; no per-client history survives assignment.
type Metrics struct {
	Ticks       int // Number of ticks executed
	Arrivals    int // Clients added to the queue
	Assignments int // Clients handed to an operator
	Completions int // Services finished (operator released)

	TotalWait     time.Duration // Sum of queue waits over all assignments
	MaxWait       time.Duration // Longest single queue wait
	TotalService  time.Duration // Sum of drawn service durations
	PeakQueueLen  int           // Max queue length observed after a tick
	BusyOperTicks int           // Integral of busy operators over ticks

	operators int
}

// NewMetrics creates Metrics for a pool of the given size.
func NewMetrics(operators int) *Metrics {
	return &Metrics{operators: operators}
}

// RecordAssignments folds the assignments of one ProcessQueue call into the totals.
func (m *Metrics) RecordAssignments(as []Assignment) {
	for _, a := range as {
		m.Assignments++
		m.TotalWait += a.Wait
		m.TotalService += a.ServiceTime
		if a.Wait > m.MaxWait {
			m.MaxWait = a.Wait
		}
	}
}

// RecordTick closes out one tick given the post-tick queue length and busy count.
func (m *Metrics) RecordTick(queueLen, busy int) {
	m.Ticks++
	m.BusyOperTicks += busy
	if queueLen > m.PeakQueueLen {
		m.PeakQueueLen = queueLen
	}
}

// InService returns the number of clients assigned but not yet completed.
func (m *Metrics) InService() int {
	return m.Assignments - m.Completions
}

// Conserved reports whether arrivals - queued - busy == completions.
func (m *Metrics) Conserved(queued, busy int) bool {
	return m.Arrivals-queued-busy == m.Completions
}

// AverageWait returns the mean queue wait over all assignments.
func (m *Metrics) AverageWait() time.Duration {
	if m.Assignments == 0 {
		return 0
	}
	return m.TotalWait / time.Duration(m.Assignments)
}

// AverageService returns the mean drawn service duration.
func (m *Metrics) AverageService() time.Duration {
	if m.Assignments == 0 {
		return 0
	}
	return m.TotalService / time.Duration(m.Assignments)
}

// Utilization returns the fraction of operator-ticks spent busy, in [0, 1].
func (m *Metrics) Utilization() float64 {
	if m.Ticks == 0 || m.operators == 0 {
		return 0
	}
	return float64(m.BusyOperTicks) / float64(m.Ticks*m.operators)
}

// Print displays aggregated metrics at the end of the simulation.
func (m *Metrics) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Simulation Metrics ===")
	fmt.Fprintf(w, "Ticks                : %d\n", m.Ticks)
	fmt.Fprintf(w, "Arrivals             : %d\n", m.Arrivals)
	fmt.Fprintf(w, "Assignments          : %d\n", m.Assignments)
	fmt.Fprintf(w, "Completions          : %d\n", m.Completions)
	fmt.Fprintf(w, "Peak Queue Length    : %d\n", m.PeakQueueLen)
	if m.Assignments > 0 {
		fmt.Fprintf(w, "Average Wait         : %s\n", m.AverageWait())
		fmt.Fprintf(w, "Max Wait             : %s\n", m.MaxWait)
		fmt.Fprintf(w, "Average Service      : %s\n", m.AverageService())
	}
	fmt.Fprintf(w, "Operator Utilization : %.2f%%\n", 100*m.Utilization())
}
