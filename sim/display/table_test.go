package display

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facility-sim/facility-sim/sim"
)

func testSnapshot() sim.Snapshot {
	now := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	return sim.Snapshot{
		Tick: 4,
		Now:  now,
		Queue: []sim.Client{
			{ID: 5, ArrivalTime: now},
			{ID: 6, ArrivalTime: now},
		},
		Operators: []sim.Operator{
			{ID: 1, Busy: true, FreeAt: now.Add(5 * time.Second)},
			{ID: 2},
		},
	}
}

func TestRows_ClientsThenOperators(t *testing.T) {
	// GIVEN a snapshot with two waiting clients and two operators
	snap := testSnapshot()

	// WHEN flattened into rows
	rows := Rows(snap)

	// THEN waiting clients come first in FIFO order, then operators by ID
	want := []Row{
		{ClientID: "5", Status: StatusWaiting},
		{ClientID: "6", Status: StatusWaiting},
		{OperatorID: "1", Status: StatusServing},
		{OperatorID: "2", Status: StatusFree},
	}
	assert.Equal(t, want, rows)
}

func TestTableRenderer_Observe_WritesTable(t *testing.T) {
	// GIVEN a renderer writing to a buffer
	var buf bytes.Buffer
	r := NewTableRenderer(&buf, false)

	// WHEN a snapshot is observed
	require.NoError(t, r.Observe(testSnapshot()))

	// THEN the header and every row are present
	out := buf.String()
	assert.Contains(t, out, "Tick 4 @ 09:00:00")
	assert.Contains(t, out, "Client ID")
	assert.Equal(t, 2, strings.Count(out, StatusWaiting))
	assert.Equal(t, 1, strings.Count(out, StatusServing))
	assert.Equal(t, 1, strings.Count(out, StatusFree))
	assert.NotContains(t, out, "\033[2J")
}

func TestTableRenderer_ClearFirst_EmitsClearSequence(t *testing.T) {
	r := NewTableRenderer(&bytes.Buffer{}, true)
	assert.True(t, strings.HasPrefix(r.Format(testSnapshot()), "\033[H\033[2J"))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestTableRenderer_Observe_PropagatesWriteError(t *testing.T) {
	r := NewTableRenderer(failingWriter{}, false)
	assert.Error(t, r.Observe(testSnapshot()))
}

func TestTableRenderer_SatisfiesObserver(t *testing.T) {
	var _ sim.Observer = NewTableRenderer(&bytes.Buffer{}, false)
}
