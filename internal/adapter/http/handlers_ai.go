package adapthttp

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"innerlight/internal/app"
)

// aiError logs the upstream failure and answers with a generic message; the
// raw error can carry provider response bodies.
func aiError(w http.ResponseWriter, err error) {
	log.Printf("completion failed: %v", err)
	writeError(w, http.StatusInternalServerError, errors.New("the AI service failed, please try again"))
}

func (s *Server) handleExtractBeliefs(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, errors.New("text is required"))
		return
	}

	beliefs, err := s.coach.ExtractBeliefs(r.Context(), req.Text)
	if err != nil {
		aiError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"beliefs": beliefs})
}

func (s *Server) handleOriginInquiry(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Belief  string             `json:"belief"`
		Origins []app.OriginAnswer `json:"origins"`
	}
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if strings.TrimSpace(req.Belief) == "" {
		writeError(w, http.StatusBadRequest, errors.New("belief is required"))
		return
	}

	reflection, err := s.coach.OriginInquiry(r.Context(), userFrom(r).ID, req.Belief, req.Origins)
	if err != nil {
		aiError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"reflection": reflection})
}

func (s *Server) handleFunctionalBelief(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Belief  string             `json:"belief"`
		Origins []app.OriginAnswer `json:"origins"`
	}
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if strings.TrimSpace(req.Belief) == "" {
		writeError(w, http.StatusBadRequest, errors.New("belief is required"))
		return
	}

	functional, err := s.coach.FunctionalBelief(r.Context(), userFrom(r).ID, req.Belief, req.Origins)
	if err != nil {
		aiError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"functionalBelief": functional})
}

func (s *Server) handleAffirmation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Belief           string             `json:"belief"`
		Origins          []app.OriginAnswer `json:"origins"`
		FunctionalBelief *string            `json:"functionalBelief"`
	}
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if strings.TrimSpace(req.Belief) == "" {
		writeError(w, http.StatusBadRequest, errors.New("belief is required"))
		return
	}

	affirmation, err := s.coach.Affirmation(r.Context(), userFrom(r).ID, req.Belief, req.Origins, req.FunctionalBelief)
	if err != nil {
		aiError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"affirmation": affirmation})
}

func (s *Server) handleAIFeedback(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SourceType string `json:"sourceType"`
		SourceID   string `json:"sourceId"`
		AIOutput   string `json:"aiOutput"`
		Feedback   string `json:"feedback"`
	}
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := s.coach.RecordFeedback(r.Context(), userFrom(r).ID, req.SourceType, req.SourceID, req.AIOutput, req.Feedback); err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"saved": true})
}

func (s *Server) handleStreamStory(w http.ResponseWriter, r *http.Request) {
	fragments, errc, err := s.coach.StreamStory(r.Context(), userFrom(r).ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	relayStream(w, fragments, errc)
}

func (s *Server) handleStreamVision(w http.ResponseWriter, r *http.Request) {
	fragments, errc, err := s.coach.StreamVision(r.Context(), userFrom(r).ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	relayStream(w, fragments, errc)
}

// relayStream writes each fragment as it arrives and flushes so the client
// sees incremental output. Once bytes are on the wire the status is fixed;
// an upstream failure before the first fragment still gets a clean error.
func relayStream(w http.ResponseWriter, fragments <-chan string, errc <-chan error) {
	flusher, _ := w.(http.Flusher)
	wrote := false

	for fragment := range fragments {
		if !wrote {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.Header().Set("X-Accel-Buffering", "no")
			w.WriteHeader(http.StatusOK)
			wrote = true
		}
		if _, err := io.WriteString(w, fragment); err != nil {
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
	}

	if err := <-errc; err != nil {
		log.Printf("completion stream failed: %v", err)
		if !wrote {
			writeError(w, http.StatusInternalServerError, errors.New("the AI service failed, please try again"))
		}
	}
}
