// Package trace provides decision-trace recording for facility runs.
// This package has no dependencies on sim/; it stores pure data types.
package trace

import "time"

// AssignmentRecord captures a single client-to-operator assignment.
type AssignmentRecord struct {
	Tick        int
	ClientID    int64
	OperatorID  int
	Clock       time.Time
	ServiceTime time.Duration
	Wait        time.Duration // time the client spent queued
}

// ReleaseRecord captures an operator returning to the free pool.
type ReleaseRecord struct {
	Tick       int
	OperatorID int
	Clock      time.Time
}
