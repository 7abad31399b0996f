// Implements the WaitQueue, which holds all clients waiting for an operator.
// Clients are enqueued on arrival and leave from the head on assignment.

package sim

import (
	"fmt"
	"strings"
)

// WaitQueue is the facility's FIFO line of clients.
// Insertion order is service order; nothing ever reorders it.
type WaitQueue struct {
	queue []*Client
}

// Enqueue adds a client to the back of the wait queue.
func (wq *WaitQueue) Enqueue(c *Client) {
	if c == nil {
		panic("Enqueue: client must not be nil")
	}
	wq.queue = append(wq.queue, c)
}

func (wq *WaitQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, val := range wq.queue {
		sb.WriteString(fmt.Sprint(val))
		if i < len(wq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// Len returns the number of clients in the queue.
func (wq *WaitQueue) Len() int {
	return len(wq.queue)
}

// Peek returns the client at the front of the queue without removing it.
// Returns nil if the queue is empty.
func (wq *WaitQueue) Peek() *Client {
	if len(wq.queue) == 0 {
		return nil
	}
	return wq.queue[0]
}

// Dequeue removes and returns the client at the front of the queue.
// Returns nil if the queue is empty.
func (wq *WaitQueue) Dequeue() *Client {
	if len(wq.queue) == 0 {
		return nil
	}
	head := wq.queue[0]
	wq.queue[0] = nil
	wq.queue = wq.queue[1:]
	return head
}

// Snapshot returns a copy of the queued clients in FIFO order.
// Mutating the returned slice or its elements does not affect the queue.
func (wq *WaitQueue) Snapshot() []Client {
	out := make([]Client, len(wq.queue))
	for i, c := range wq.queue {
		out[i] = *c
	}
	return out
}
