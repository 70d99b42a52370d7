package handler

import (
	"encoding/json"
	"net/http"

	"github.com/carlapp/ride-ledger/internal/domain"
)

// PostLocationFix handles POST /location/fix. The UI reports each device
// GPS fix here; the feed fans it out to the active ride's route and any
// pending one-shot acquisition.
func (s *Server) PostLocationFix(w http.ResponseWriter, r *http.Request) {
	var fix domain.LatLng
	if err := json.NewDecoder(r.Body).Decode(&fix); err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "body must be {lat, lng}")
		return
	}
	s.feed.Report(fix)
	respondJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}

// GetLocationCurrent handles GET /location/current: the best-effort current
// coordinate, falling back to the last known fix or the default center
// rather than stalling.
func (s *Server) GetLocationCurrent(w http.ResponseWriter, r *http.Request) {
	fix, err := s.feed.Current(r.Context())
	if err != nil {
		// Context cancelled mid-wait; still answer with the fallback.
		respondJSON(w, http.StatusOK, fix)
		return
	}
	respondJSON(w, http.StatusOK, fix)
}
