// Package sender delivers telemetry reports to the configured sinks.
package sender

import (
	"context"
	"errors"
	"time"

	"siliconstats/internal/telemetry"
)

// ErrClosed is returned by Send after Close.
var ErrClosed = errors.New("sender is closed")

// Report is one poll's snapshot tagged with the reporting host.
type Report struct {
	Timestamp time.Time          `json:"timestamp"`
	AgentID   string             `json:"agent_id"`
	Hostname  string             `json:"hostname"`
	Snapshot  telemetry.Snapshot `json:"snapshot"`
}

// NewReport wraps a snapshot.
func NewReport(ts time.Time, agentID, hostname string, s telemetry.Snapshot) *Report {
	return &Report{
		Timestamp: ts,
		AgentID:   agentID,
		Hostname:  hostname,
		Snapshot:  s,
	}
}

// Sender delivers reports to one destination. Reports are treated as
// immutable once sent.
type Sender interface {
	// Send transmits the report.
	Send(ctx context.Context, r *Report) error

	// Close flushes and releases the destination.
	Close() error
}
