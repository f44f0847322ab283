package adapthttp

import (
	"net/http"

	"innerlight/internal/domain"
)

func (s *Server) handleListBeliefs(w http.ResponseWriter, r *http.Request) {
	beliefs, err := s.beliefs.ListBeliefs(r.Context(), userFrom(r).ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if beliefs == nil {
		beliefs = []domain.Belief{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"beliefs": beliefs})
}

func (s *Server) handleCreateBelief(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Statement string  `json:"statement"`
		EntryID   *string `json:"entryId"`
	}
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	belief, err := s.beliefs.CreateBelief(r.Context(), userFrom(r).ID, req.Statement, req.EntryID)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"belief": belief})
}

func (s *Server) handleGetBelief(w http.ResponseWriter, r *http.Request) {
	belief, err := s.beliefs.GetBelief(r.Context(), userFrom(r).ID, r.PathValue("id"))
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"belief": belief})
}

func (s *Server) handleUpdateBelief(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Statement        *string `json:"statement"`
		Status           *string `json:"status"`
		FunctionalBelief *string `json:"functionalBelief"`
	}
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	belief, err := s.beliefs.UpdateBelief(r.Context(), userFrom(r).ID, r.PathValue("id"), req.Statement, req.Status, req.FunctionalBelief)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"belief": belief})
}

func (s *Server) handleDeleteBelief(w http.ResponseWriter, r *http.Request) {
	if err := s.beliefs.DeleteBelief(r.Context(), userFrom(r).ID, r.PathValue("id")); err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListOrigins(w http.ResponseWriter, r *http.Request) {
	origins, remaining, err := s.beliefs.ListOrigins(r.Context(), userFrom(r).ID, r.PathValue("id"))
	if err != nil {
		serviceError(w, err)
		return
	}
	if origins == nil {
		origins = []domain.BeliefOrigin{}
	}
	if remaining == nil {
		remaining = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"origins": origins, "remainingQuestions": remaining})
}

func (s *Server) handleAnswerOrigin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Question string `json:"question"`
		Response string `json:"response"`
	}
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	origin, err := s.beliefs.AnswerOrigin(r.Context(), userFrom(r).ID, r.PathValue("id"), req.Question, req.Response)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"origin": origin})
}

func (s *Server) handleDeleteOrigin(w http.ResponseWriter, r *http.Request) {
	if err := s.beliefs.DeleteOrigin(r.Context(), userFrom(r).ID, r.PathValue("id")); err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListAffirmations(w http.ResponseWriter, r *http.Request) {
	affirmations, err := s.beliefs.ListAffirmations(r.Context(), userFrom(r).ID, r.PathValue("id"))
	if err != nil {
		serviceError(w, err)
		return
	}
	if affirmations == nil {
		affirmations = []domain.Affirmation{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"affirmations": affirmations})
}

func (s *Server) handleAddAffirmation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content       string `json:"content"`
		IsAIGenerated bool   `json:"isAiGenerated"`
	}
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	affirmation, err := s.beliefs.AddAffirmation(r.Context(), userFrom(r).ID, r.PathValue("id"), req.Content, req.IsAIGenerated)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"affirmation": affirmation})
}

func (s *Server) handleDeleteAffirmation(w http.ResponseWriter, r *http.Request) {
	if err := s.beliefs.DeleteAffirmation(r.Context(), userFrom(r).ID, r.PathValue("id")); err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListStories(w http.ResponseWriter, r *http.Request) {
	stories, err := s.beliefs.ListStories(r.Context(), userFrom(r).ID, r.PathValue("id"))
	if err != nil {
		serviceError(w, err)
		return
	}
	if stories == nil {
		stories = []domain.Story{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"stories": stories})
}

func (s *Server) handleSaveStory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title   *string `json:"title"`
		Content string  `json:"content"`
	}
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	story, err := s.beliefs.SaveStory(r.Context(), userFrom(r).ID, r.PathValue("id"), req.Title, req.Content)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"story": story})
}

func (s *Server) handleUpdateStory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title   *string `json:"title"`
		Content string  `json:"content"`
	}
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := s.beliefs.UpdateStory(r.Context(), userFrom(r).ID, r.PathValue("id"), req.Title, req.Content); err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleDeleteStory(w http.ResponseWriter, r *http.Request) {
	if err := s.beliefs.DeleteStory(r.Context(), userFrom(r).ID, r.PathValue("id")); err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
