package task

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"focusdash/pkg/event"
)

// MemStore is the canonical in-memory task store. All tasks are lost on
// process teardown; durable storage is the PgStore adapter's job.
type MemStore struct {
	mu     sync.RWMutex
	tasks  map[string]*Task
	order  []string // insertion order for List
	events event.Appender
}

// NewMemStore creates a MemStore. The event appender may be nil; when set,
// a status transition to done emits a task.completed event for the external
// recommendation component.
func NewMemStore(events event.Appender) *MemStore {
	return &MemStore{
		tasks:  make(map[string]*Task),
		events: events,
	}
}

// Create inserts a new task, assigning a fresh id. An id already present on
// the input is ignored.
func (s *MemStore) Create(ctx context.Context, t *Task) (*Task, error) {
	now := time.Now()
	cp := *t
	cp.ID = uuid.Must(uuid.NewV7()).String()
	cp.CreatedAt = now
	cp.UpdatedAt = now
	if cp.Status == "" {
		cp.Status = StatusTodo
	}
	if cp.Priority == 0 {
		cp.Priority = DefaultPriority
	}

	s.mu.Lock()
	s.tasks[cp.ID] = &cp
	s.order = append(s.order, cp.ID)
	s.mu.Unlock()

	out := cp
	return &out, nil
}

// Get retrieves a single task by id.
func (s *MemStore) Get(_ context.Context, id string) (*Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *t
	return &cp, nil
}

// Update merges the given fields into the task matching id. Supported keys:
// title, description, status, priority, energy_level, focus_type,
// estimated_minutes, due_date, hard_deadline, soft_deadline, source,
// dependency_count. Unknown keys are ignored; cross-field consistency is
// not validated.
func (s *MemStore) Update(ctx context.Context, id string, updates map[string]any) (*Task, error) {
	s.mu.Lock()
	t, ok := s.tasks[id]
	if !ok {
		s.mu.Unlock()
		return nil, ErrNotFound
	}

	wasDone := t.Status == StatusDone
	applyUpdates(t, updates)
	t.UpdatedAt = time.Now()
	completed := !wasDone && t.Status == StatusDone
	cp := *t
	s.mu.Unlock()

	if completed && s.events != nil {
		s.events.Append(ctx, "task.completed", "task_store", map[string]any{
			"task_id": cp.ID,
			"title":   cp.Title,
		})
	}
	return &cp, nil
}

// Remove deletes the task. Removing an unknown id is a no-op, not an error.
func (s *MemStore) Remove(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return nil
	}
	delete(s.tasks, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// List returns a snapshot of all tasks in insertion order. Sorting is a
// derived concern; see Sort.
func (s *MemStore) List(_ context.Context) ([]Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Task, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.tasks[id])
	}
	return out, nil
}

// Count returns the number of stored tasks.
func (s *MemStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks), nil
}

// EnsureTable is a no-op for the in-memory store.
func (s *MemStore) EnsureTable(_ context.Context) error { return nil }

// applyUpdates merges partial fields into t. Numeric values arrive as
// float64 when decoded from JSON.
func applyUpdates(t *Task, updates map[string]any) {
	for k, v := range updates {
		switch k {
		case "title":
			if s, ok := v.(string); ok && s != "" {
				t.Title = s
			}
		case "description":
			if s, ok := v.(string); ok {
				t.Description = s
			}
		case "status":
			if s, ok := v.(string); ok {
				t.Status = s
			}
		case "priority":
			if n, ok := toInt(v); ok {
				t.Priority = n
			}
		case "energy_level":
			if s, ok := v.(string); ok {
				t.EnergyLevel = s
			}
		case "focus_type":
			if s, ok := v.(string); ok {
				t.FocusType = s
			}
		case "estimated_minutes":
			if n, ok := toInt(v); ok {
				t.EstimatedMinutes = n
			}
		case "due_date":
			t.DueDate = toTimePtr(v)
		case "hard_deadline":
			t.HardDeadline = toTimePtr(v)
		case "soft_deadline":
			t.SoftDeadline = toTimePtr(v)
		case "source":
			if s, ok := v.(string); ok {
				t.Source = s
			}
		case "dependency_count":
			if n, ok := toInt(v); ok && n >= 0 {
				t.DependencyCount = n
			}
		}
	}
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}

func toTimePtr(v any) *time.Time {
	switch tv := v.(type) {
	case time.Time:
		return &tv
	case *time.Time:
		return tv
	case string:
		if tv == "" {
			return nil
		}
		if parsed, err := time.Parse(time.RFC3339, tv); err == nil {
			return &parsed
		}
	}
	return nil
}
