package trace

import "time"

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalAssignments   int
	TotalReleases      int
	MeanWait           time.Duration
	MaxWait            time.Duration
	MeanService        time.Duration
	OperatorsUsed      int
	OperatorAssignment map[int]int // operator ID → number of clients served
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		OperatorAssignment: make(map[int]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalAssignments = len(st.Assignments)
	summary.TotalReleases = len(st.Releases)

	if len(st.Assignments) > 0 {
		var totalWait, totalService time.Duration
		for _, a := range st.Assignments {
			summary.OperatorAssignment[a.OperatorID]++
			totalWait += a.Wait
			totalService += a.ServiceTime
			if a.Wait > summary.MaxWait {
				summary.MaxWait = a.Wait
			}
		}
		n := time.Duration(len(st.Assignments))
		summary.MeanWait = totalWait / n
		summary.MeanService = totalService / n
	}

	summary.OperatorsUsed = len(summary.OperatorAssignment)

	return summary
}
