package handler

import (
	"net/http"
	"time"

	"github.com/carlapp/ride-ledger/internal/advisory"
	"github.com/carlapp/ride-ledger/internal/metrics"
)

// GetAdvice handles GET /advice. The tip is decorative and best-effort;
// this endpoint always answers 200 with some string, canned if the external
// service is unavailable.
func (s *Server) GetAdvice(w http.ResponseWriter, r *http.Request) {
	ledger := s.ledger.Snapshot()
	now := time.Now()

	tip := s.coach.Tip(r.Context(), advisory.Context{
		GrossToday:    metrics.TodayGross(ledger, now).InexactFloat64(),
		ExpensesToday: metrics.TodayExpenses(ledger, now).InexactFloat64(),
	})
	respondJSON(w, http.StatusOK, map[string]string{"tip": tip})
}
