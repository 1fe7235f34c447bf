package task

import (
	"context"
	"errors"
	"time"
)

// Task statuses. Any status may follow any other; the store records
// transitions but does not enforce a workflow.
const (
	StatusTodo       = "todo"
	StatusInProgress = "in_progress"
	StatusBlocked    = "blocked"
	StatusDone       = "done"
)

// Energy levels.
const (
	EnergyHigh   = "high"
	EnergyMedium = "medium"
	EnergyLow    = "low"
)

// Focus types.
const (
	FocusCreative       = "creative"
	FocusTechnical      = "technical"
	FocusAdministrative = "administrative"
	FocusSocial         = "social"
)

// Provenance tags. Informational only.
const (
	SourceSelf        = "self"
	SourceTeam        = "team"
	SourceBoss        = "boss"
	SourceAIGenerated = "ai_generated"
)

// DefaultPriority is assumed when a task carries no priority.
const DefaultPriority = 3

// ErrNotFound is returned when an operation references an unknown task id.
var ErrNotFound = errors.New("task not found")

// Task represents a unit of work in the system.
type Task struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Description      string     `json:"description,omitempty"`
	Status           string     `json:"status"`   // todo, in_progress, blocked, done
	Priority         int        `json:"priority"` // 1-5, 5 = most urgent; 0 means unset
	EnergyLevel      string     `json:"energy_level,omitempty"`
	FocusType        string     `json:"focus_type,omitempty"`
	EstimatedMinutes int        `json:"estimated_minutes,omitempty"`
	DueDate          *time.Time `json:"due_date,omitempty"`
	HardDeadline     *time.Time `json:"hard_deadline,omitempty"`
	SoftDeadline     *time.Time `json:"soft_deadline,omitempty"`
	Source           string     `json:"source,omitempty"` // who created it
	IsOverdue        bool       `json:"is_overdue"`       // derived, recomputed by consumers
	IsBlocked        bool       `json:"is_blocked"`       // derived, recomputed by consumers
	DependencyCount  int        `json:"dependency_count"` // blocking prerequisites
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// EffectivePriority returns the task's priority on the 1-5 scale, defaulting
// to DefaultPriority when unset or out of range.
func (t *Task) EffectivePriority() int {
	if t.Priority < 1 || t.Priority > 5 {
		return DefaultPriority
	}
	return t.Priority
}

// Store is the contract for task storage. The canonical store is in-memory
// (MemStore); PgStore adapts the same contract to the external persistence
// collaborator.
type Store interface {
	Create(ctx context.Context, t *Task) (*Task, error)
	Get(ctx context.Context, id string) (*Task, error)
	Update(ctx context.Context, id string, updates map[string]any) (*Task, error)
	Remove(ctx context.Context, id string) error
	List(ctx context.Context) ([]Task, error)
	Count(ctx context.Context) (int, error)
	EnsureTable(ctx context.Context) error
}
