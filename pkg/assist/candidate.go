package assist

import (
	"time"

	"focusdash/pkg/task"
)

// Candidate priorities use the service's three-level scale.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// FlagSensitiveData marks candidates extracted from input that tripped the
// sensitive-data scanner.
const FlagSensitiveData = "sensitive_data_detected"

// Candidate is a task candidate extracted from free text. Candidates are
// ephemeral: they exist only between extraction and the accept/reject
// decision and are never stored directly.
type Candidate struct {
	ID                string     `json:"id,omitempty"` // assigned when presented
	Title             string     `json:"title"`
	Priority          string     `json:"priority"` // low, medium, high
	DueDate           *time.Time `json:"due_date,omitempty"`
	EstimatedDuration int        `json:"estimated_duration,omitempty"` // minutes
	EnergyLevel       string     `json:"energy_level,omitempty"`
	FocusType         string     `json:"focus_type,omitempty"`
	Complexity        int        `json:"complexity,omitempty"` // 1-10
	Flags             []string   `json:"flags,omitempty"`
}

// TaskPriority maps the service's three-level scale onto the task entity's
// five-level scale: high=5, medium=3, low=1. Values 2 and 4 are unreachable
// through this path; kept as-is pending a product decision.
func (c *Candidate) TaskPriority() int {
	switch c.Priority {
	case PriorityHigh:
		return 5
	case PriorityLow:
		return 1
	default:
		return task.DefaultPriority
	}
}

// ToTask converts an accepted candidate into a task ready for the store.
func (c *Candidate) ToTask() *task.Task {
	return &task.Task{
		Title:            c.Title,
		Status:           task.StatusTodo,
		Priority:         c.TaskPriority(),
		EnergyLevel:      c.EnergyLevel,
		FocusType:        c.FocusType,
		EstimatedMinutes: c.EstimatedDuration,
		DueDate:          c.DueDate,
		Source:           task.SourceAIGenerated,
	}
}

// HasFlag reports whether the candidate carries the given flag.
func (c *Candidate) HasFlag(flag string) bool {
	for _, f := range c.Flags {
		if f == flag {
			return true
		}
	}
	return false
}
