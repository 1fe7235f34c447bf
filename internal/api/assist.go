package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"focusdash/pkg/assist"
)

// handleExtract submits free text for extraction and presents the resulting
// candidate batch. Overlapping submissions queue independent batches.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text     string `json:"text"`
		MaxTasks int    `json:"max_tasks"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, 400, "invalid JSON: "+err.Error())
		return
	}
	if req.Text == "" {
		writeError(w, 400, "text is required")
		return
	}
	if req.MaxTasks <= 0 {
		req.MaxTasks = s.maxTasks
	}

	batch, err := s.suggestions.Submit(r.Context(), req.Text, req.MaxTasks)
	if err != nil {
		writeAssistError(w, err)
		return
	}
	writeJSON(w, 200, batch)
}

// handleScan runs the local sensitive-data detectors so the dashboard can
// warn before the network round trip.
func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, 400, "invalid JSON: "+err.Error())
		return
	}
	writeJSON(w, 200, map[string]bool{"sensitive_data": s.scanner.Scan(req.Text)})
}

func (s *Server) handleSuggestionList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, 200, s.suggestions.Batches())
}

func (s *Server) handleAccept(w http.ResponseWriter, r *http.Request) {
	t, err := s.suggestions.Accept(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, assist.ErrCandidateNotFound) {
			writeError(w, 404, err.Error())
			return
		}
		writeError(w, 500, err.Error())
		return
	}
	writeJSON(w, 201, t)
}

func (s *Server) handleReject(w http.ResponseWriter, r *http.Request) {
	if err := s.suggestions.Reject(r.PathValue("id")); err != nil {
		writeError(w, 404, err.Error())
		return
	}
	w.WriteHeader(204)
}

func (s *Server) handleAcceptAll(w http.ResponseWriter, r *http.Request) {
	created, err := s.suggestions.AcceptAll(r.Context())
	if err != nil {
		writeError(w, 500, err.Error())
		return
	}
	writeJSON(w, 200, map[string]any{"created": created})
}

func (s *Server) handleRejectAll(w http.ResponseWriter, r *http.Request) {
	n := s.suggestions.RejectAll()
	writeJSON(w, 200, map[string]int{"rejected": n})
}

// handleClassify suggests metadata for a single manually authored task.
// Absent fields in the response leave prior form values unchanged.
func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, 400, "invalid JSON: "+err.Error())
		return
	}
	if req.Title == "" {
		writeError(w, 400, "title is required")
		return
	}

	cls, err := s.assist.Classify(r.Context(), req.Title, req.Description)
	if err != nil {
		writeAssistError(w, err)
		return
	}
	writeJSON(w, 200, cls)
}

// handleChat relays the conversation to the assistant. On failure the user
// sees a canned local reply, never a raw network error.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Messages    []assist.Message `json:"messages"`
		Temperature float64          `json:"temperature"`
		MaxTokens   int              `json:"max_tokens"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, 400, "invalid JSON: "+err.Error())
		return
	}
	if len(req.Messages) == 0 {
		writeError(w, 400, "messages are required")
		return
	}

	reply, err := s.assist.Chat(r.Context(), req.Messages, req.Temperature, req.MaxTokens)
	if err != nil {
		writeJSON(w, 200, map[string]any{"reply": assist.FallbackReply, "fallback": true})
		return
	}
	writeJSON(w, 200, map[string]any{"reply": reply})
}
