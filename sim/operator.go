package sim

import (
	"fmt"
	"time"
)

// OperatorState represents the lifecycle state of an operator.
type OperatorState string

const (
	OperatorFree OperatorState = "free"
	OperatorBusy OperatorState = "busy"
)

// Operator is one server in the facility's pool.
// Operators are created once by NewFacility and live for the whole run.
//
// State machine: Free -> Busy only through serve (called by ProcessQueue),
// Busy -> Free only through release (called by CheckOperators).
type Operator struct {
	ID     int       // 1..N, fixed at construction
	Busy   bool      // true while serving a client
	FreeAt time.Time // completion instant of the current service; zero when free
}

// State returns the operator's current state.
func (o Operator) State() OperatorState {
	if o.Busy {
		return OperatorBusy
	}
	return OperatorFree
}

// DueAt reports whether a busy operator's service has completed at now.
func (o Operator) DueAt(now time.Time) bool {
	return o.Busy && !now.Before(o.FreeAt)
}

func (o Operator) String() string {
	if o.Busy {
		return fmt.Sprintf("operator_%d(busy until %s)", o.ID, o.FreeAt.Format(time.TimeOnly))
	}
	return fmt.Sprintf("operator_%d(free)", o.ID)
}

// serve moves the operator from Free to Busy until now+d.
func (o *Operator) serve(now time.Time, d time.Duration) {
	if o.Busy {
		panic(fmt.Sprintf("Operator.serve: operator %d is already busy", o.ID))
	}
	o.Busy = true
	o.FreeAt = now.Add(d)
}

// release moves the operator from Busy to Free.
func (o *Operator) release() {
	if !o.Busy {
		panic(fmt.Sprintf("Operator.release: operator %d is already free", o.ID))
	}
	o.Busy = false
	o.FreeAt = time.Time{}
}
