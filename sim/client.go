package sim

import (
	"fmt"
	"time"
)

// Client is a customer waiting for (or about to receive) service.
// Both fields are fixed at creation.
type Client struct {
	ID          int64     // Unique, monotonically increasing, never reused
	ArrivalTime time.Time // Instant the client joined the facility
}

// NewClient creates a client that arrived at the given instant.
func NewClient(id int64, arrival time.Time) *Client {
	return &Client{ID: id, ArrivalTime: arrival}
}

func (c *Client) String() string {
	return fmt.Sprintf("client_%d", c.ID)
}

// IDGenerator hands out client identities starting at 1.
//
// Thread-safety: NOT thread-safe. Owned by the driving loop.
type IDGenerator struct {
	last int64
}

// Next returns the next identity. Values are strictly increasing.
func (g *IDGenerator) Next() int64 {
	g.last++
	return g.last
}

// Issued returns how many identities have been handed out so far.
func (g *IDGenerator) Issued() int64 {
	return g.last
}
