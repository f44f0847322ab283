package adapthttp

import (
	"errors"
	"net/http"

	"innerlight/internal/app"
	"innerlight/internal/domain"
)

// serviceError maps application errors onto response codes. Anything the
// services reject that is not a missing row is treated as a bad request.
func serviceError(w http.ResponseWriter, err error) {
	if errors.Is(err, app.ErrNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeError(w, http.StatusBadRequest, err)
}

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := s.journal.ListEntries(r.Context(), userFrom(r).ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if entries == nil {
		entries = []domain.JournalEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content string  `json:"content"`
		Prompt  *string `json:"prompt"`
	}
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	entry, err := s.journal.CreateEntry(r.Context(), userFrom(r).ID, req.Content, req.Prompt)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"entry": entry})
}

func (s *Server) handleGetEntry(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	entry, err := s.journal.GetEntry(r.Context(), user.ID, r.PathValue("id"))
	if err != nil {
		serviceError(w, err)
		return
	}

	beliefs, err := s.beliefs.LinkedBeliefs(r.Context(), user.ID, entry.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if beliefs == nil {
		beliefs = []domain.Belief{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"entry": entry, "beliefs": beliefs})
}

func (s *Server) handleUpdateEntry(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content string `json:"content"`
	}
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	entry, err := s.journal.UpdateEntry(r.Context(), userFrom(r).ID, r.PathValue("id"), req.Content)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entry": entry})
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	if err := s.journal.DeleteEntry(r.Context(), userFrom(r).ID, r.PathValue("id")); err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleEntryInsights(w http.ResponseWriter, r *http.Request) {
	insights, err := s.coach.JournalInsights(r.Context(), userFrom(r).ID, r.PathValue("id"))
	if errors.Is(err, app.ErrNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		aiError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"insights": insights})
}

func (s *Server) handleListReflections(w http.ResponseWriter, r *http.Request) {
	reflections, err := s.journal.ListReflections(r.Context(), userFrom(r).ID, r.PathValue("id"))
	if err != nil {
		serviceError(w, err)
		return
	}
	if reflections == nil {
		reflections = []domain.Reflection{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"reflections": reflections})
}

func (s *Server) handleAddReflection(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content string `json:"content"`
	}
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	reflection, err := s.journal.AddReflection(r.Context(), userFrom(r).ID, r.PathValue("id"), req.Content)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"reflection": reflection})
}
