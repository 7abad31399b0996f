package trace

import (
	"testing"
	"time"
)

func TestSimulationTrace_RecordAssignment_AppendsRecord(t *testing.T) {
	// GIVEN a trace configured for decisions
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})

	// WHEN an assignment record is recorded
	st.RecordAssignment(AssignmentRecord{
		Tick:        3,
		ClientID:    7,
		OperatorID:  2,
		ServiceTime: 9 * time.Second,
		Wait:        2 * time.Second,
	})

	// THEN the trace contains one assignment record with correct data
	if len(st.Assignments) != 1 {
		t.Fatalf("expected 1 assignment, got %d", len(st.Assignments))
	}
	if st.Assignments[0].ClientID != 7 {
		t.Errorf("expected client ID 7, got %d", st.Assignments[0].ClientID)
	}
	if st.Assignments[0].OperatorID != 2 {
		t.Errorf("expected operator ID 2, got %d", st.Assignments[0].OperatorID)
	}
}

func TestSimulationTrace_RecordRelease_AppendsRecord(t *testing.T) {
	// GIVEN a trace configured for decisions
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})

	// WHEN a release record is recorded
	st.RecordRelease(ReleaseRecord{Tick: 12, OperatorID: 1})

	// THEN the trace contains one release record
	if len(st.Releases) != 1 {
		t.Fatalf("expected 1 release, got %d", len(st.Releases))
	}
	if st.Releases[0].OperatorID != 1 {
		t.Errorf("expected operator 1, got %d", st.Releases[0].OperatorID)
	}
}

func TestSimulationTrace_MultipleRecords_PreservesOrder(t *testing.T) {
	// GIVEN a trace
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})

	// WHEN multiple records are added
	st.RecordAssignment(AssignmentRecord{Tick: 1, ClientID: 1, OperatorID: 1})
	st.RecordAssignment(AssignmentRecord{Tick: 1, ClientID: 2, OperatorID: 2})
	st.RecordRelease(ReleaseRecord{Tick: 9, OperatorID: 2})

	// THEN order is preserved
	if len(st.Assignments) != 2 {
		t.Fatalf("expected 2 assignments, got %d", len(st.Assignments))
	}
	if st.Assignments[0].ClientID != 1 || st.Assignments[1].ClientID != 2 {
		t.Error("assignment order not preserved")
	}
	if len(st.Releases) != 1 || st.Releases[0].OperatorID != 2 {
		t.Error("release record mismatch")
	}
}

func TestSimulationTrace_Enabled(t *testing.T) {
	var nilTrace *SimulationTrace
	if nilTrace.Enabled() {
		t.Error("nil trace must report disabled")
	}
	if NewSimulationTrace(TraceConfig{Level: TraceLevelNone}).Enabled() {
		t.Error("level none must report disabled")
	}
	if !NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions}).Enabled() {
		t.Error("level decisions must report enabled")
	}
}

func TestIsValidTraceLevel_ValidLevels(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"none", true},
		{"decisions", true},
		{"", true}, // empty defaults to none
		{"detailed", false},
		{"foobar", false},
		{"NONE", false}, // case-sensitive
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			if got := IsValidTraceLevel(tt.level); got != tt.valid {
				t.Errorf("IsValidTraceLevel(%q) = %v, want %v", tt.level, got, tt.valid)
			}
		})
	}
}
