package task

import "sort"

// statusRank fixes the secondary sort order: work already underway surfaces
// ahead of not-yet-started, blocked, or finished work.
var statusRank = map[string]int{
	StatusInProgress: 0,
	StatusTodo:       1,
	StatusBlocked:    2,
	StatusDone:       3,
}

// Compare orders two tasks: priority descending first, then status rank
// ascending. Returns -1 when a sorts before b, 1 when after, 0 on a tie.
func Compare(a, b *Task) int {
	pa, pb := a.EffectivePriority(), b.EffectivePriority()
	if pa != pb {
		if pa > pb {
			return -1
		}
		return 1
	}
	ra, rb := rankOf(a.Status), rankOf(b.Status)
	switch {
	case ra < rb:
		return -1
	case ra > rb:
		return 1
	}
	return 0
}

// Sort orders tasks in place by Compare. The sort is stable: ties keep their
// relative order from the input list.
func Sort(tasks []Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return Compare(&tasks[i], &tasks[j]) < 0
	})
}

func rankOf(status string) int {
	if r, ok := statusRank[status]; ok {
		return r
	}
	return len(statusRank) // unknown statuses sort last
}
