package sim

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetrics_RecordAssignments_AccumulatesWaits(t *testing.T) {
	// GIVEN metrics for a 2-operator pool
	m := NewMetrics(2)

	// WHEN two assignments are recorded
	m.RecordAssignments([]Assignment{
		{ClientID: 1, OperatorID: 1, Wait: 0, ServiceTime: 6 * time.Second},
		{ClientID: 2, OperatorID: 2, Wait: 4 * time.Second, ServiceTime: 10 * time.Second},
	})

	// THEN totals, averages and max reflect both
	assert.Equal(t, 2, m.Assignments)
	assert.Equal(t, 2*time.Second, m.AverageWait())
	assert.Equal(t, 4*time.Second, m.MaxWait)
	assert.Equal(t, 8*time.Second, m.AverageService())
}

func TestMetrics_ZeroValues_NoDivideByZero(t *testing.T) {
	m := NewMetrics(3)
	assert.Zero(t, m.AverageWait())
	assert.Zero(t, m.AverageService())
	assert.Zero(t, m.Utilization())
}

func TestMetrics_RecordTick_UtilizationAndPeak(t *testing.T) {
	// GIVEN a 2-operator pool observed over 4 ticks
	m := NewMetrics(2)
	m.RecordTick(3, 2)
	m.RecordTick(5, 2)
	m.RecordTick(1, 1)
	m.RecordTick(0, 1)

	// THEN utilization = 6 busy operator-ticks / 8
	assert.InDelta(t, 0.75, m.Utilization(), 1e-9)
	assert.Equal(t, 5, m.PeakQueueLen)
	assert.Equal(t, 4, m.Ticks)
}

func TestMetrics_Conserved(t *testing.T) {
	m := NewMetrics(1)
	m.Arrivals = 10
	m.Assignments = 7
	m.Completions = 6
	assert.Equal(t, 1, m.InService())
	assert.True(t, m.Conserved(3, 1))
	assert.False(t, m.Conserved(2, 1))
}

func TestMetrics_Print_WritesHeader(t *testing.T) {
	m := NewMetrics(1)
	m.Arrivals = 1
	m.RecordAssignments([]Assignment{{ClientID: 1, OperatorID: 1, ServiceTime: 5 * time.Second}})

	var buf bytes.Buffer
	m.Print(&buf)

	assert.Contains(t, buf.String(), "Simulation Metrics")
	assert.Contains(t, buf.String(), "Average Service      : 5s")
}
