package event

import (
	"context"
	"time"
)

// Event is a single entry in the observational event log. Events record
// state changes (task completed, suggestion accepted, focus session ended)
// for external consumers such as the recommendation component.
type Event struct {
	ID        string         `json:"id"`        // UUID v7 (time-ordered)
	Type      string         `json:"type"`      // e.g. "task.completed", "suggestion.accepted"
	Source    string         `json:"source"`    // component that emitted
	Content   map[string]any `json:"content"`   // event payload
	Timestamp time.Time      `json:"timestamp"` // when the event occurred
}

// Appender is the minimal write side of the log, implemented by Log and Bus.
type Appender interface {
	Append(ctx context.Context, eventType, source string, content map[string]any) (*Event, error)
}

// Log is the contract for event storage.
type Log interface {
	Appender
	Recent(ctx context.Context, limit int) ([]Event, error)
	ByType(ctx context.Context, eventType string, limit int) ([]Event, error)
	Count(ctx context.Context) (int, error)
	EnsureTable(ctx context.Context) error
}
