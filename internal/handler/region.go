package handler

import "net/http"

// GetRegion handles GET /region. The status is "unknown" until the startup
// check completes, then "allowed" or "blocked" for the process lifetime.
func (s *Server) GetRegion(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": string(s.gate.Status())})
}
