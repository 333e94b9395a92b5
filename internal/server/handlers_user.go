package server

import "net/http"

// handleProfile handles GET /api/v1/users/profile.
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request, userID string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	user, err := s.users.GetUserByID(r.Context(), userID)
	if err != nil {
		WriteError(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	WriteJSON(w, http.StatusOK, user)
}
