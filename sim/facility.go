package sim

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
)

// Service durations are whole seconds drawn uniformly from [MinServiceSeconds, MaxServiceSeconds).
const (
	MinServiceSeconds = 5
	MaxServiceSeconds = 15
)

// Assignment describes one client handed to one operator by ProcessQueue.
type Assignment struct {
	ClientID    int64
	OperatorID  int
	Start       time.Time     // clock reading at assignment
	ServiceTime time.Duration // drawn duration; operator is free at Start+ServiceTime
	Wait        time.Duration // Start - client arrival
}

// Facility owns the wait queue and the operator pool and advances them one step
// at a time. Policy: first-come-first-served, lowest free operator ID wins.
//
// Thread-safety: NOT thread-safe. The driving loop serializes all calls.
type Facility struct {
	queue     WaitQueue
	operators []Operator // index i holds operator ID i+1
	lastID    int64      // highest client ID admitted so far
	clock     Clock
	rng       *rand.Rand // service-duration source
}

// NewFacility creates operatorCount free operators with IDs 1..operatorCount
// and an empty queue. clock and rng must not be nil; rng is used for every
// service-duration draw.
func NewFacility(operatorCount int, clock Clock, rng *rand.Rand) *Facility {
	if operatorCount <= 0 {
		panic(fmt.Sprintf("NewFacility: operatorCount must be > 0, got %d", operatorCount))
	}
	if clock == nil {
		panic("NewFacility: clock must not be nil")
	}
	if rng == nil {
		panic("NewFacility: rng must not be nil")
	}
	ops := make([]Operator, operatorCount)
	for i := range ops {
		ops[i] = Operator{ID: i + 1}
	}
	return &Facility{
		operators: ops,
		clock:     clock,
		rng:       rng,
	}
}

// AddClient appends c to the tail of the queue.
// Client IDs must be positive and strictly increasing; a nil client, a
// repeated ID or one lower than a previous ID is a programming error.
func (f *Facility) AddClient(c *Client) {
	if c == nil {
		panic("AddClient: client must not be nil")
	}
	if c.ID <= f.lastID {
		panic(fmt.Sprintf("AddClient: client ID %d not above last admitted ID %d", c.ID, f.lastID))
	}
	f.lastID = c.ID
	f.queue.Enqueue(c)
	logrus.Infof("<< Arrival: %s at %s", c, c.ArrivalTime.Format(time.TimeOnly))
}

// ProcessQueue assigns waiting clients to free operators until the queue is
// empty or every operator is busy. The head client is matched with the lowest
// numbered free operator, and the search restarts after each assignment.
// If no operator is free the head stays where it is.
func (f *Facility) ProcessQueue() []Assignment {
	var made []Assignment
	for head := f.queue.Peek(); head != nil; head = f.queue.Peek() {
		op := f.firstFree()
		if op == nil {
			break
		}
		now := f.clock.Now()
		d := f.drawServiceTime()
		client := f.queue.Dequeue()
		op.serve(now, d)
		a := Assignment{
			ClientID:    client.ID,
			OperatorID:  op.ID,
			Start:       now,
			ServiceTime: d,
			Wait:        now.Sub(client.ArrivalTime),
		}
		made = append(made, a)
		logrus.Infof("<< Assign: %s -> operator_%d for %s", client, op.ID, d)
	}
	logrus.Debugf("Queue after processing: %s", &f.queue)
	return made
}

// CheckOperators frees every busy operator whose free-at instant has been
// reached. Returns the IDs of the operators released by this call.
func (f *Facility) CheckOperators() []int {
	now := f.clock.Now()
	var released []int
	for i := range f.operators {
		op := &f.operators[i]
		if op.DueAt(now) {
			op.release()
			released = append(released, op.ID)
			logrus.Infof("<< Release: operator_%d free at %s", op.ID, now.Format(time.TimeOnly))
		}
	}
	return released
}

// Queue returns a copy of the waiting clients in FIFO order.
func (f *Facility) Queue() []Client {
	return f.queue.Snapshot()
}

// Operators returns a copy of the operator pool in ID order.
func (f *Facility) Operators() []Operator {
	out := make([]Operator, len(f.operators))
	copy(out, f.operators)
	return out
}

// QueueLen returns the number of waiting clients.
func (f *Facility) QueueLen() int {
	return f.queue.Len()
}

// BusyCount returns the number of operators currently serving.
func (f *Facility) BusyCount() int {
	n := 0
	for _, op := range f.operators {
		if op.Busy {
			n++
		}
	}
	return n
}

// OperatorCount returns the fixed pool size.
func (f *Facility) OperatorCount() int {
	return len(f.operators)
}

func (f *Facility) firstFree() *Operator {
	for i := range f.operators {
		if !f.operators[i].Busy {
			return &f.operators[i]
		}
	}
	return nil
}

func (f *Facility) drawServiceTime() time.Duration {
	secs := MinServiceSeconds + f.rng.Intn(MaxServiceSeconds-MinServiceSeconds)
	return time.Duration(secs) * time.Second
}
