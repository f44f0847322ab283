package adapthttp

import (
	"net/http"
)

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name         *string `json:"name"`
		Gender       *string `json:"gender"`
		DateOfBirth  *string `json:"dateOfBirth"`
		PlaceOfBirth *string `json:"placeOfBirth"`
	}
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	user, err := s.auth.UpdateProfile(r.Context(), userFrom(r).ID, req.Name, req.Gender, req.DateOfBirth, req.PlaceOfBirth)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := s.auth.ChangePassword(r.Context(), userFrom(r).ID, req.CurrentPassword, req.NewPassword); err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
