package api

import (
	"context"
	"net/http"

	"focusdash/pkg/focus"
)

func (s *Server) handleFocusStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, 200, map[string]any{
		"state":   s.focus.State(),
		"session": s.focus.Snapshot(),
	})
}

func (s *Server) handleFocusStart(w http.ResponseWriter, r *http.Request) {
	if err := s.focus.Start(); err != nil {
		writeError(w, 409, err.Error())
		return
	}
	writeJSON(w, 200, map[string]string{"state": s.focus.State()})
}

func (s *Server) handleFocusPause(w http.ResponseWriter, r *http.Request) {
	if err := s.focus.Pause(); err != nil {
		writeError(w, 409, err.Error())
		return
	}
	writeJSON(w, 200, map[string]string{"state": s.focus.State()})
}

func (s *Server) handleFocusResume(w http.ResponseWriter, r *http.Request) {
	if err := s.focus.Resume(); err != nil {
		writeError(w, 409, err.Error())
		return
	}
	writeJSON(w, 200, map[string]string{"state": s.focus.State()})
}

// handleFocusEnd stops the session and records its summary in the event log
// for the external recommendation component.
func (s *Server) handleFocusEnd(w http.ResponseWriter, r *http.Request) {
	summary, err := s.focus.End()
	if err != nil {
		writeError(w, 409, err.Error())
		return
	}
	s.logFocusEnded(r.Context(), summary)
	writeJSON(w, 200, summary)
}

func (s *Server) handleFocusInterruption(w http.ResponseWriter, r *http.Request) {
	if err := s.focus.AddInterruption(); err != nil {
		writeError(w, 409, err.Error())
		return
	}
	writeJSON(w, 200, s.focus.Snapshot())
}

func (s *Server) logFocusEnded(ctx context.Context, summary focus.Summary) {
	s.events.Append(ctx, "focus.ended", "focus_session", map[string]any{
		"elapsed_seconds": summary.ElapsedSeconds,
		"interruptions":   summary.Interruptions,
		"hyperfocus":      summary.Hyperfocus,
	})
}
