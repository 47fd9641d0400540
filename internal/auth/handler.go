package auth

import (
	"encoding/json"
	"net/http"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Me echoes the authenticated subject. It must run behind RequireBearer.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	subject := SubjectFromContext(r.Context())
	if subject == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": ErrMissingToken.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"subject": subject})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
