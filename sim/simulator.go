package sim

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/facility-sim/facility-sim/sim/trace"
)

// Snapshot is a read-only view of the facility after a tick.
type Snapshot struct {
	Tick      int
	Now       time.Time
	Queue     []Client   // FIFO order
	Operators []Operator // ID order
}

// Observer receives a snapshot at the end of every tick. Display layers
// implement it; they never touch the facility directly.
type Observer interface {
	Observe(Snapshot) error
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(Snapshot) error

// Observe calls f(s).
func (f ObserverFunc) Observe(s Snapshot) error {
	return f(s)
}

// TickResult summarizes what a single tick changed.
type TickResult struct {
	Tick        int
	Arrived     *Client // nil when no client arrived this tick
	Assignments []Assignment
	Released    []int // operator IDs freed this tick
}

// advancer is implemented by clocks the simulator may move itself (virtual time).
type advancer interface {
	Set(time.Time)
}

// Simulator is the driving loop. Each tick it (maybe) admits a client, runs
// ProcessQueue, then CheckOperators, then hands a snapshot to the observer.
//
// Thread-safety: NOT thread-safe. Run and Tick must be called from one goroutine.
type Simulator struct {
	Config   SimConfig
	Facility *Facility
	Metrics  *Metrics
	Trace    *trace.SimulationTrace

	clock      Clock
	schedule   cron.Schedule
	arrivalRNG *rand.Rand
	ids        IDGenerator
	observer   Observer
	tick       int
}

// NewSimulator validates cfg and wires a facility, RNG and ID generator
// around the given clock. A nil observer disables rendering.
func NewSimulator(cfg SimConfig, clock Clock, observer Observer) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation config: %w", err)
	}
	if !trace.IsValidTraceLevel(cfg.TraceLevel) {
		return nil, fmt.Errorf("invalid simulation config: unknown trace level %q", cfg.TraceLevel)
	}
	if clock == nil {
		return nil, fmt.Errorf("invalid simulation config: clock must not be nil")
	}
	schedule, err := ParseCadence(cfg.Cadence)
	if err != nil {
		return nil, fmt.Errorf("invalid simulation config: %w", err)
	}
	if observer == nil {
		observer = ObserverFunc(func(Snapshot) error { return nil })
	}

	rng := NewPartitionedRNG(NewSimulationKey(cfg.Seed))
	s := &Simulator{
		Config:     cfg,
		Facility:   NewFacility(cfg.Operators, clock, rng.ForSubsystem(SubsystemService)),
		Metrics:    NewMetrics(cfg.Operators),
		clock:      clock,
		schedule:   schedule,
		arrivalRNG: rng.ForSubsystem(SubsystemArrival),
		observer:   observer,
	}
	if trace.TraceLevel(cfg.TraceLevel) == trace.TraceLevelDecisions {
		s.Trace = trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelDecisions})
	}
	return s, nil
}

// ClientsIssued returns how many client identities the loop has handed out.
func (s *Simulator) ClientsIssued() int64 {
	return s.ids.Issued()
}

// CurrentTick returns the number of ticks executed so far.
func (s *Simulator) CurrentTick() int {
	return s.tick
}

// Snapshot returns the facility's current queue and operators.
func (s *Simulator) Snapshot() Snapshot {
	return Snapshot{
		Tick:      s.tick,
		Now:       s.clock.Now(),
		Queue:     s.Facility.Queue(),
		Operators: s.Facility.Operators(),
	}
}

// Tick runs one admit/process/check/observe sequence at the clock's current time.
func (s *Simulator) Tick() (TickResult, error) {
	s.tick++
	res := TickResult{Tick: s.tick}

	if s.arrivalRNG.Float64() < s.Config.ArrivalProbability {
		c := NewClient(s.ids.Next(), s.clock.Now())
		s.Facility.AddClient(c)
		s.Metrics.Arrivals++
		res.Arrived = c
	}

	res.Assignments = s.Facility.ProcessQueue()
	s.Metrics.RecordAssignments(res.Assignments)

	res.Released = s.Facility.CheckOperators()
	s.Metrics.Completions += len(res.Released)

	s.recordTrace(res)
	s.Metrics.RecordTick(s.Facility.QueueLen(), s.Facility.BusyCount())

	if err := s.observer.Observe(s.Snapshot()); err != nil {
		return res, fmt.Errorf("tick %d: observer: %w", s.tick, err)
	}
	return res, nil
}

// Run executes ticks on the configured cadence until Config.Ticks have run
// (or forever when Ticks is 0) or ctx is done. With a clock the simulator can
// set (ManualClock) time jumps straight to the next tick; otherwise Run sleeps.
func (s *Simulator) Run(ctx context.Context) error {
	logrus.Infof("Starting simulation: operators=%d, arrival-prob=%.2f, cadence=%q, seed=%d",
		s.Config.Operators, s.Config.ArrivalProbability, s.Config.Cadence, s.Config.Seed)

	for s.Config.Ticks == 0 || s.tick < s.Config.Ticks {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := s.Tick(); err != nil {
			return err
		}
		if s.Config.Ticks != 0 && s.tick >= s.Config.Ticks {
			break
		}
		if err := s.waitNextTick(ctx); err != nil {
			return err
		}
	}

	logrus.Infof("Simulation complete after %d ticks, %d clients issued.", s.tick, s.ids.Issued())
	return nil
}

func (s *Simulator) waitNextTick(ctx context.Context) error {
	next := s.schedule.Next(s.clock.Now())
	if a, ok := s.clock.(advancer); ok {
		a.Set(next)
		return nil
	}
	timer := time.NewTimer(time.Until(next))
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *Simulator) recordTrace(res TickResult) {
	if !s.Trace.Enabled() {
		return
	}
	for _, a := range res.Assignments {
		s.Trace.RecordAssignment(trace.AssignmentRecord{
			Tick:        res.Tick,
			ClientID:    a.ClientID,
			OperatorID:  a.OperatorID,
			Clock:       a.Start,
			ServiceTime: a.ServiceTime,
			Wait:        a.Wait,
		})
	}
	now := s.clock.Now()
	for _, id := range res.Released {
		s.Trace.RecordRelease(trace.ReleaseRecord{Tick: res.Tick, OperatorID: id, Clock: now})
	}
}
