package event

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

const defaultMemLogCap = 1024

// MemLog is an in-memory event log bounded to a fixed capacity. When full,
// the oldest events are discarded.
type MemLog struct {
	mu     sync.RWMutex
	events []Event
	cap    int
}

// NewMemLog creates a MemLog with the default capacity.
func NewMemLog() *MemLog {
	return &MemLog{cap: defaultMemLogCap}
}

// NewMemLogCap creates a MemLog holding at most n events.
func NewMemLogCap(n int) *MemLog {
	if n <= 0 {
		n = defaultMemLogCap
	}
	return &MemLog{cap: n}
}

// Append records an event.
func (l *MemLog) Append(_ context.Context, eventType, source string, content map[string]any) (*Event, error) {
	e := Event{
		ID:        uuid.Must(uuid.NewV7()).String(),
		Type:      eventType,
		Source:    source,
		Content:   content,
		Timestamp: time.Now(),
	}

	l.mu.Lock()
	l.events = append(l.events, e)
	if len(l.events) > l.cap {
		l.events = l.events[len(l.events)-l.cap:]
	}
	l.mu.Unlock()

	return &e, nil
}

// Recent returns up to limit events, newest first.
func (l *MemLog) Recent(_ context.Context, limit int) ([]Event, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []Event
	for i := len(l.events) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, l.events[i])
	}
	return out, nil
}

// ByType returns up to limit events of the given type, newest first.
func (l *MemLog) ByType(_ context.Context, eventType string, limit int) ([]Event, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []Event
	for i := len(l.events) - 1; i >= 0 && len(out) < limit; i-- {
		if l.events[i].Type == eventType {
			out = append(out, l.events[i])
		}
	}
	return out, nil
}

// Count returns the number of retained events.
func (l *MemLog) Count(_ context.Context) (int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.events), nil
}

// EnsureTable is a no-op for the in-memory log.
func (l *MemLog) EnsureTable(_ context.Context) error { return nil }
