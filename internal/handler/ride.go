package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/carlapp/ride-ledger/internal/domain"
	"github.com/carlapp/ride-ledger/internal/session"
)

// rideSnapshotResponse is the display view of the current ride session.
type rideSnapshotResponse struct {
	State          session.State `json:"state"`
	ElapsedSeconds int64         `json:"elapsedSeconds"`
	ElapsedDisplay string        `json:"elapsedDisplay"`
	// EstimatedGross is the cosmetic running fare shown while tracking.
	// It is never the committed fare.
	EstimatedGross float64      `json:"estimatedGross"`
	Trip           *domain.Trip `json:"trip,omitempty"`
}

// PostRideStart handles POST /ride/start. Returns 409 when a ride is
// already active or summarizing: the in-progress ride is never replaced.
func (s *Server) PostRideStart(w http.ResponseWriter, r *http.Request) {
	trip, err := s.ride.Start(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, trip)
}

// PostRideStop handles POST /ride/stop, freezing the active ride for
// summary entry.
func (s *Server) PostRideStop(w http.ResponseWriter, _ *http.Request) {
	trip, err := s.ride.Stop()
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, trip)
}

// PostRideResume handles POST /ride/resume, returning from the summary form
// to active tracking with nothing lost.
func (s *Server) PostRideResume(w http.ResponseWriter, _ *http.Request) {
	trip, err := s.ride.Resume()
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, trip)
}

// commitRequest carries the ride summary form. Fare is raw JSON so that a
// missing, empty, or non-numeric value degrades to zero instead of
// rejecting the submission — the form is lenient by design.
type commitRequest struct {
	Fare        json.RawMessage    `json:"fare"`
	Pickup      string             `json:"pickupLocation"`
	Dropoff     string             `json:"dropoffLocation"`
	PaymentType domain.PaymentType `json:"paymentType"`
	CustomerID  string             `json:"customerId"`
	Notes       string             `json:"notes"`
}

// PostRideCommit handles POST /ride/commit, finalizing the summarizing ride
// into the ledger.
func (s *Server) PostRideCommit(w http.ResponseWriter, r *http.Request) {
	var req commitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "malformed request body")
		return
	}

	payment := req.PaymentType
	if payment == "" {
		payment = domain.PaymentCash
	}

	trip, err := s.ride.Commit(r.Context(), session.CommitInput{
		Fare:       lenientFare(req.Fare),
		Pickup:     req.Pickup,
		Dropoff:    req.Dropoff,
		Payment:    payment,
		CustomerID: req.CustomerID,
		Notes:      req.Notes,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, trip)
}

// GetRide handles GET /ride, the session snapshot for display.
func (s *Server) GetRide(w http.ResponseWriter, _ *http.Request) {
	snap := s.ride.Snapshot()
	respondJSON(w, http.StatusOK, rideSnapshotResponse{
		State:          snap.State,
		ElapsedSeconds: snap.ElapsedSeconds,
		ElapsedDisplay: session.FormatElapsed(snap.ElapsedSeconds),
		EstimatedGross: snap.EstimatedGross,
		Trip:           snap.Trip,
	})
}

// lenientFare coerces whatever the form sent — number, numeric string,
// empty, null, absent, or garbage — into a fare. Unparseable input is
// zero; negative values pass through so the session can reject them with a
// real validation message.
func lenientFare(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		if n, err := strconv.ParseFloat(str, 64); err == nil {
			return n
		}
	}
	return 0
}
