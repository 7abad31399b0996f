// Package display renders facility snapshots as a text table with one row per
// waiting client followed by one row per operator.
package display

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/facility-sim/facility-sim/sim"
)

// Row statuses.
const (
	StatusWaiting = "Waiting"
	StatusServing = "Serving"
	StatusFree    = "Free"
)

const (
	colWidth = 12
)

// Row is one line of the table. Exactly one of ClientID and OperatorID is set.
type Row struct {
	ClientID   string
	OperatorID string
	Status     string
}

// Rows flattens a snapshot: waiting clients in FIFO order, then operators in ID order.
func Rows(snap sim.Snapshot) []Row {
	rows := make([]Row, 0, len(snap.Queue)+len(snap.Operators))
	for _, c := range snap.Queue {
		rows = append(rows, Row{ClientID: strconv.FormatInt(c.ID, 10), Status: StatusWaiting})
	}
	for _, op := range snap.Operators {
		status := StatusFree
		if op.State() == sim.OperatorBusy {
			status = StatusServing
		}
		rows = append(rows, Row{OperatorID: strconv.Itoa(op.ID), Status: status})
	}
	return rows
}

// TableRenderer writes every snapshot it observes to W.
type TableRenderer struct {
	W          io.Writer
	ClearFirst bool // emit an ANSI clear-screen before each table
}

// NewTableRenderer creates a renderer writing to w.
func NewTableRenderer(w io.Writer, clearFirst bool) *TableRenderer {
	return &TableRenderer{W: w, ClearFirst: clearFirst}
}

// Observe renders snap; it satisfies sim.Observer.
func (r *TableRenderer) Observe(snap sim.Snapshot) error {
	_, err := io.WriteString(r.W, r.Format(snap))
	return err
}

// Format returns the rendered table for snap.
func (r *TableRenderer) Format(snap sim.Snapshot) string {
	var sb strings.Builder
	if r.ClearFirst {
		sb.WriteString("\033[H\033[2J")
	}
	fmt.Fprintf(&sb, "Tick %d @ %s  (queue=%d)\n", snap.Tick, snap.Now.Format(time.TimeOnly), len(snap.Queue))
	fmt.Fprintf(&sb, "%-*s %-*s %s\n", colWidth, "Client ID", colWidth, "Operator ID", "Status")
	sb.WriteString(strings.Repeat("-", 2*colWidth+2+len(StatusServing)))
	sb.WriteString("\n")
	for _, row := range Rows(snap) {
		fmt.Fprintf(&sb, "%-*s %-*s %s\n", colWidth, row.ClientID, colWidth, row.OperatorID, row.Status)
	}
	sb.WriteString("\n")
	return sb.String()
}
