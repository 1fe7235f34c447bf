package task

import "testing"

func sampleTask() *Task {
	return &Task{
		Title:       "Refactor billing export",
		Description: "Split the nightly export into chunks",
		Status:      StatusTodo,
		Priority:    4,
		EnergyLevel: EnergyHigh,
		FocusType:   FocusTechnical,
	}
}

// TestEmptyCriteriaAdmitEverything verifies criteria with no active clauses
// match every well-formed task.
func TestEmptyCriteriaAdmitEverything(t *testing.T) {
	tasks := []*Task{
		sampleTask(),
		{Title: "bare minimum"},
		{Title: "no optional fields", Status: StatusDone, Priority: 1},
	}
	for _, tk := range tasks {
		if !Matches(tk, DefaultCriteria()) {
			t.Errorf("task %q: want match with empty criteria", tk.Title)
		}
		if !Matches(tk, Criteria{}) {
			t.Errorf("task %q: want match with zero criteria", tk.Title)
		}
	}
}

// TestSearchClause isolates the search clause: case-insensitive substring
// over title or description.
func TestSearchClause(t *testing.T) {
	tk := sampleTask()
	cases := []struct {
		search string
		want   bool
	}{
		{"", true},
		{"BILLING", true},   // title, case-insensitive
		{"nightly", true},   // description
		{"unrelated", false},
	}
	for _, c := range cases {
		got := Matches(tk, Criteria{Search: c.search})
		if got != c.want {
			t.Errorf("search %q: want %v, got %v", c.search, c.want, got)
		}
	}
}

// TestSearchSkipsEmptyDescription verifies a task without a description
// still matches on title and fails cleanly otherwise.
func TestSearchSkipsEmptyDescription(t *testing.T) {
	tk := &Task{Title: "standalone"}
	if !Matches(tk, Criteria{Search: "stand"}) {
		t.Error("want title match")
	}
	if Matches(tk, Criteria{Search: "chunks"}) {
		t.Error("want no match on absent description")
	}
}

// TestEnergyLevelClause verifies set membership, including that a task with
// no energy level fails when the set is non-empty.
func TestEnergyLevelClause(t *testing.T) {
	tk := sampleTask()
	if !Matches(tk, Criteria{EnergyLevels: []string{EnergyHigh, EnergyLow}}) {
		t.Error("want match when energy level is in the set")
	}
	if Matches(tk, Criteria{EnergyLevels: []string{EnergyLow}}) {
		t.Error("want no match when energy level is outside the set")
	}

	none := &Task{Title: "unlabelled"}
	if Matches(none, Criteria{EnergyLevels: []string{EnergyHigh}}) {
		t.Error("task with no energy level must fail a non-empty set")
	}
	if !Matches(none, Criteria{}) {
		t.Error("empty set must admit task with no energy level")
	}
}

// TestFocusTypeClause mirrors the energy-level pattern for focus types.
func TestFocusTypeClause(t *testing.T) {
	tk := sampleTask()
	if !Matches(tk, Criteria{FocusTypes: []string{FocusTechnical}}) {
		t.Error("want match when focus type is in the set")
	}
	if Matches(tk, Criteria{FocusTypes: []string{FocusSocial}}) {
		t.Error("want no match when focus type is outside the set")
	}
}

// TestStatusClause verifies the status set clause.
func TestStatusClause(t *testing.T) {
	tk := sampleTask()
	if !Matches(tk, Criteria{Statuses: []string{StatusTodo, StatusBlocked}}) {
		t.Error("want match when status is in the set")
	}
	if Matches(tk, Criteria{Statuses: []string{StatusDone}}) {
		t.Error("want no match when status is outside the set")
	}
}

// TestPriorityRangeClause verifies the inclusive bounds and the default-3
// behaviour for tasks without a priority.
func TestPriorityRangeClause(t *testing.T) {
	tk := sampleTask() // priority 4
	if !Matches(tk, Criteria{PriorityMin: 4, PriorityMax: 5}) {
		t.Error("want match at lower bound")
	}
	if !Matches(tk, Criteria{PriorityMin: 1, PriorityMax: 4}) {
		t.Error("want match at upper bound")
	}
	if Matches(tk, Criteria{PriorityMin: 5, PriorityMax: 5}) {
		t.Error("want no match outside the range")
	}

	unset := &Task{Title: "no priority"}
	if !Matches(unset, Criteria{PriorityMin: 3, PriorityMax: 3}) {
		t.Error("missing priority must default to 3")
	}
	if Matches(unset, Criteria{PriorityMin: 4, PriorityMax: 5}) {
		t.Error("defaulted priority 3 must fail range [4,5]")
	}
}

// TestMatchesIsDeterministic verifies the predicate is pure: repeated calls
// with the same inputs agree.
func TestMatchesIsDeterministic(t *testing.T) {
	tk := sampleTask()
	c := Criteria{Search: "billing", Statuses: []string{StatusTodo}, PriorityMin: 1, PriorityMax: 5}
	first := Matches(tk, c)
	for i := 0; i < 100; i++ {
		if Matches(tk, c) != first {
			t.Fatal("predicate result changed across calls")
		}
	}
}

// TestFilterPreservesOrder verifies Filter keeps input order of survivors.
func TestFilterPreservesOrder(t *testing.T) {
	tasks := []Task{
		{Title: "a", Status: StatusTodo},
		{Title: "b", Status: StatusDone},
		{Title: "c", Status: StatusTodo},
	}
	out := Filter(tasks, Criteria{Statuses: []string{StatusTodo}})
	if len(out) != 2 || out[0].Title != "a" || out[1].Title != "c" {
		t.Errorf("filter result: want [a c], got %+v", out)
	}
}
