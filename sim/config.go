package sim

import (
	"fmt"

	"github.com/robfig/cron/v3"
)

// Defaults mirror the classic bank-lobby setup: three tellers, a 70% chance of
// a new client every second.
const (
	DefaultOperators          = 3
	DefaultArrivalProbability = 0.7
	DefaultCadence            = "@every 1s"
	DefaultSeed               = 42
)

// SimConfig groups the parameters of a simulation run.
type SimConfig struct {
	Operators          int     // pool size (must be > 0)
	ArrivalProbability float64 // per-tick arrival chance in [0, 1]
	Ticks              int     // number of ticks to run; 0 = until cancelled
	Cadence            string  // cron spec for the tick schedule, e.g. "@every 1s"
	Seed               int64   // master seed for PartitionedRNG
	TraceLevel         string  // "none" or "decisions"
}

// DefaultSimConfig returns a SimConfig populated with the package defaults.
func DefaultSimConfig() SimConfig {
	return SimConfig{
		Operators:          DefaultOperators,
		ArrivalProbability: DefaultArrivalProbability,
		Cadence:            DefaultCadence,
		Seed:               DefaultSeed,
	}
}

// Validate reports the first invalid field, if any.
func (c SimConfig) Validate() error {
	if c.Operators <= 0 {
		return fmt.Errorf("operators must be greater than 0, got %d", c.Operators)
	}
	if c.ArrivalProbability < 0 || c.ArrivalProbability > 1 {
		return fmt.Errorf("arrival probability must be in [0, 1], got %v", c.ArrivalProbability)
	}
	if c.Ticks < 0 {
		return fmt.Errorf("ticks must be >= 0, got %d", c.Ticks)
	}
	if _, err := ParseCadence(c.Cadence); err != nil {
		return err
	}
	return nil
}

// ParseCadence parses a cron spec (standard five-field or a descriptor such as
// "@every 1s") into the schedule that drives ticks.
func ParseCadence(spec string) (cron.Schedule, error) {
	sched, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid cadence %q: %w", spec, err)
	}
	return sched, nil
}
