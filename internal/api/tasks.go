package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"focusdash/pkg/task"
)

// handleTaskList returns the filtered, sorted task list. Filter criteria
// come from query parameters; see criteriaFromQuery.
func (s *Server) handleTaskList(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.tasks.List(r.Context())
	if err != nil {
		writeError(w, 500, err.Error())
		return
	}

	filtered := task.Filter(tasks, criteriaFromQuery(r))
	task.Sort(filtered)
	writeJSON(w, 200, filtered)
}

func (s *Server) handleTaskGet(w http.ResponseWriter, r *http.Request) {
	t, err := s.tasks.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, task.ErrNotFound) {
			writeError(w, 404, err.Error())
			return
		}
		writeError(w, 500, err.Error())
		return
	}
	writeJSON(w, 200, t)
}

func (s *Server) handleTaskCreate(w http.ResponseWriter, r *http.Request) {
	var t task.Task
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		writeError(w, 400, "invalid JSON: "+err.Error())
		return
	}
	if t.Title == "" {
		writeError(w, 400, "title is required")
		return
	}
	if t.Source == "" {
		t.Source = task.SourceSelf
	}
	result, err := s.tasks.Create(r.Context(), &t)
	if err != nil {
		writeError(w, 500, err.Error())
		return
	}
	writeJSON(w, 201, result)
}

func (s *Server) handleTaskUpdate(w http.ResponseWriter, r *http.Request) {
	var updates map[string]any
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		writeError(w, 400, "invalid JSON: "+err.Error())
		return
	}
	t, err := s.tasks.Update(r.Context(), r.PathValue("id"), updates)
	if err != nil {
		if errors.Is(err, task.ErrNotFound) {
			writeError(w, 404, err.Error())
			return
		}
		writeError(w, 500, err.Error())
		return
	}
	writeJSON(w, 200, t)
}

func (s *Server) handleTaskRemove(w http.ResponseWriter, r *http.Request) {
	if err := s.tasks.Remove(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, 500, err.Error())
		return
	}
	w.WriteHeader(204)
}

// criteriaFromQuery builds filter criteria from query parameters:
// search, energy_levels, focus_types, statuses (comma-separated sets),
// priority_min, priority_max.
func criteriaFromQuery(r *http.Request) task.Criteria {
	q := r.URL.Query()
	c := task.DefaultCriteria()
	c.Search = q.Get("search")
	c.EnergyLevels = splitSet(q.Get("energy_levels"))
	c.FocusTypes = splitSet(q.Get("focus_types"))
	c.Statuses = splitSet(q.Get("statuses"))
	if v := q.Get("priority_min"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.PriorityMin = n
		}
	}
	if v := q.Get("priority_max"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.PriorityMax = n
		}
	}
	return c
}

func splitSet(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
