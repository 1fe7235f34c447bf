package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"focusdash/pkg/assist"
	"focusdash/pkg/event"
	"focusdash/pkg/focus"
	"focusdash/pkg/task"
)

// Server is the HTTP API server. It is thin glue over the core packages;
// all logic lives in pkg/.
type Server struct {
	tasks       task.Store
	suggestions *assist.Suggestions
	assist      *assist.Client
	scanner     *assist.Scanner
	focus       *focus.Session
	events      *event.Bus
	maxTasks    int
	mux         *http.ServeMux
}

// New creates a new Server.
func New(tasks task.Store, suggestions *assist.Suggestions, client *assist.Client, scanner *assist.Scanner, session *focus.Session, events *event.Bus, maxTasks int) *Server {
	s := &Server{
		tasks:       tasks,
		suggestions: suggestions,
		assist:      client,
		scanner:     scanner,
		focus:       session,
		events:      events,
		maxTasks:    maxTasks,
		mux:         http.NewServeMux(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) routes() {
	// Tasks
	s.mux.HandleFunc("GET /api/tasks", s.handleTaskList)
	s.mux.HandleFunc("POST /api/tasks", s.handleTaskCreate)
	s.mux.HandleFunc("GET /api/tasks/{id}", s.handleTaskGet)
	s.mux.HandleFunc("PATCH /api/tasks/{id}", s.handleTaskUpdate)
	s.mux.HandleFunc("DELETE /api/tasks/{id}", s.handleTaskRemove)

	// Extraction and suggestions
	s.mux.HandleFunc("POST /api/extract", s.handleExtract)
	s.mux.HandleFunc("POST /api/scan", s.handleScan)
	s.mux.HandleFunc("GET /api/suggestions", s.handleSuggestionList)
	s.mux.HandleFunc("POST /api/suggestions/accept-all", s.handleAcceptAll)
	s.mux.HandleFunc("POST /api/suggestions/reject-all", s.handleRejectAll)
	s.mux.HandleFunc("POST /api/suggestions/{id}/accept", s.handleAccept)
	s.mux.HandleFunc("POST /api/suggestions/{id}/reject", s.handleReject)

	// Single-task classification and chat
	s.mux.HandleFunc("POST /api/classify", s.handleClassify)
	s.mux.HandleFunc("POST /api/chat", s.handleChat)

	// Focus session
	s.mux.HandleFunc("GET /api/focus", s.handleFocusStatus)
	s.mux.HandleFunc("POST /api/focus/start", s.handleFocusStart)
	s.mux.HandleFunc("POST /api/focus/pause", s.handleFocusPause)
	s.mux.HandleFunc("POST /api/focus/resume", s.handleFocusResume)
	s.mux.HandleFunc("POST /api/focus/end", s.handleFocusEnd)
	s.mux.HandleFunc("POST /api/focus/interruption", s.handleFocusInterruption)

	// Events
	s.mux.HandleFunc("GET /api/events", s.handleEventList)
	s.mux.HandleFunc("GET /api/events/stream", s.handleEventStream)

	// System
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /api/status", s.handleStatus)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, 200, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	taskCount, err := s.tasks.Count(r.Context())
	if err != nil {
		writeError(w, 500, err.Error())
		return
	}
	eventCount, _ := s.events.Count(r.Context())
	writeJSON(w, 200, map[string]any{
		"tasks":       taskCount,
		"events":      eventCount,
		"suggestions": len(s.suggestions.Pending()),
		"focus_state": s.focus.State(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write json: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeAssistError maps an AI collaborator failure onto a status code and
// the specific, actionable message the dashboard shows next to the
// manual-fallback path.
func writeAssistError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, assist.ErrTimeout):
		writeError(w, http.StatusGatewayTimeout, "AI request timed out")
	case errors.Is(err, assist.ErrQuotaExceeded):
		writeError(w, http.StatusTooManyRequests, "AI usage limit reached")
	default:
		writeError(w, http.StatusBadGateway, "AI service error occurred")
	}
}
