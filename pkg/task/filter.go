package task

import (
	"strings"
	"time"
)

// DateRange is an inclusive time window. It is carried on Criteria for the
// view layer but is not matched against a task field; which field it should
// bind to is still an open product question.
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Criteria is the value object driving the filter predicate. Empty sets and
// an empty search mean "no restriction". A zero PriorityMin/PriorityMax pair
// is treated as the full 1-5 range.
type Criteria struct {
	Search       string     `json:"search"`
	EnergyLevels []string   `json:"energy_levels"`
	FocusTypes   []string   `json:"focus_types"`
	Statuses     []string   `json:"statuses"`
	PriorityMin  int        `json:"priority_min"`
	PriorityMax  int        `json:"priority_max"`
	DateRange    *DateRange `json:"date_range,omitempty"`
}

// DefaultCriteria returns criteria that admit every well-formed task.
func DefaultCriteria() Criteria {
	return Criteria{PriorityMin: 1, PriorityMax: 5}
}

// Matches reports whether t passes every active clause of c. It is a pure
// predicate: no hidden state, no I/O.
func Matches(t *Task, c Criteria) bool {
	if !matchesSearch(t, c.Search) {
		return false
	}
	if len(c.EnergyLevels) > 0 && !contains(c.EnergyLevels, t.EnergyLevel) {
		return false
	}
	if len(c.FocusTypes) > 0 && !contains(c.FocusTypes, t.FocusType) {
		return false
	}
	if len(c.Statuses) > 0 && !contains(c.Statuses, t.Status) {
		return false
	}
	return matchesPriority(t, c)
}

// Filter returns the tasks matching c, preserving input order.
func Filter(tasks []Task, c Criteria) []Task {
	out := make([]Task, 0, len(tasks))
	for i := range tasks {
		if Matches(&tasks[i], c) {
			out = append(out, tasks[i])
		}
	}
	return out
}

func matchesSearch(t *Task, search string) bool {
	if search == "" {
		return true
	}
	q := strings.ToLower(search)
	if strings.Contains(strings.ToLower(t.Title), q) {
		return true
	}
	return t.Description != "" && strings.Contains(strings.ToLower(t.Description), q)
}

func matchesPriority(t *Task, c Criteria) bool {
	min, max := c.PriorityMin, c.PriorityMax
	if min == 0 && max == 0 {
		min, max = 1, 5
	}
	p := t.EffectivePriority()
	return p >= min && p <= max
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
