// Package sim provides the tick-driven simulation kernel for a single-queue,
// multi-server service facility.
//
// # Reading Guide
//
// Start with these files to understand the kernel:
//   - client.go / operator.go: the two leaf entities and the operator Free/Busy state machine
//   - facility.go: the wait queue, the operator pool, and the ProcessQueue/CheckOperators steps
//   - simulator.go: the driving loop (admit, process, check, render) on a fixed cadence
//
// # Architecture
//
// The sim package owns the kernel and its injected inputs; collaborators live in
// sub-packages:
//   - sim/trace/: assignment and release decision recording
//   - sim/display/: snapshot rendering for terminals
//
// # Injected Inputs
//
// The kernel never reads global state. Every non-deterministic input is supplied
// by the caller:
//   - Clock: current time (WallClock for real runs, ManualClock for virtual time and tests)
//   - PartitionedRNG: one seedable source split into arrival and service subsystems
//   - IDGenerator: monotonically increasing client identities
package sim
