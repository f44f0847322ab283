package adapthttp

import (
	"net/http"

	"innerlight/internal/domain"
)

func (s *Server) handleListVisions(w http.ResponseWriter, r *http.Request) {
	visions, err := s.visions.ListVisions(r.Context(), userFrom(r).ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if visions == nil {
		visions = []domain.LifeVision{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"visions": visions})
}

func (s *Server) handleSaveVision(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title   *string `json:"title"`
		Content string  `json:"content"`
	}
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	vision, err := s.visions.SaveVision(r.Context(), userFrom(r).ID, req.Title, req.Content)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"vision": vision})
}

func (s *Server) handleUpdateVision(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title   *string `json:"title"`
		Content string  `json:"content"`
	}
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := s.visions.UpdateVision(r.Context(), userFrom(r).ID, r.PathValue("id"), req.Title, req.Content); err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleDeleteVision(w http.ResponseWriter, r *http.Request) {
	if err := s.visions.DeleteVision(r.Context(), userFrom(r).ID, r.PathValue("id")); err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
