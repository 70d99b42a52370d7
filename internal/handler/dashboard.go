package handler

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carlapp/ride-ledger/internal/metrics"
)

// dashboardResponse is today's numbers for the home screen.
type dashboardResponse struct {
	TodayGross    float64 `json:"todayGross"`
	TodayExpenses float64 `json:"todayExpenses"`
	TodayNet      float64 `json:"todayNet"`
	TripsToday    int     `json:"tripsToday"`
}

// reportResponse is the all-time performance view.
type reportResponse struct {
	TotalTrips       int                `json:"totalTrips"`
	GrossRevenue     float64            `json:"grossRevenue"`
	TotalExpenses    float64            `json:"totalExpenses"`
	NetProfit        float64            `json:"netProfit"`
	ProfitMargin     float64            `json:"profitMargin"`
	ExpenseBreakdown map[string]float64 `json:"expenseBreakdown"`
	TopCategory      string             `json:"topCategory,omitempty"`
}

// GetDashboard handles GET /dashboard. It reads the polled ledger snapshot
// rather than hitting the store, so it is as fresh as the last poll.
func (s *Server) GetDashboard(w http.ResponseWriter, _ *http.Request) {
	ledger := s.ledger.Snapshot()
	now := time.Now()

	respondJSON(w, http.StatusOK, dashboardResponse{
		TodayGross:    round2(metrics.TodayGross(ledger, now)),
		TodayExpenses: round2(metrics.TodayExpenses(ledger, now)),
		TodayNet:      round2(metrics.TodayNet(ledger, now)),
		TripsToday:    metrics.TripsToday(ledger, now),
	})
}

// GetReport handles GET /report.
func (s *Server) GetReport(w http.ResponseWriter, _ *http.Request) {
	ledger := s.ledger.Snapshot()

	gross := metrics.AllTimeGross(ledger)
	net := metrics.AllTimeNet(ledger)
	breakdown := metrics.ExpenseBreakdown(ledger)

	byCategory := make(map[string]float64, len(breakdown))
	for t, v := range breakdown {
		byCategory[string(t)] = round2(v)
	}

	resp := reportResponse{
		TotalTrips:       len(ledger.Trips),
		GrossRevenue:     round2(gross),
		TotalExpenses:    round2(metrics.AllTimeExpenses(ledger)),
		NetProfit:        round2(net),
		ProfitMargin:     metrics.ProfitMargin(gross, net).InexactFloat64(),
		ExpenseBreakdown: byCategory,
	}
	if top, ok := metrics.TopExpenseCategory(breakdown); ok {
		resp.TopCategory = string(top)
	}
	respondJSON(w, http.StatusOK, resp)
}

// round2 rounds a decimal to two places for display. Accumulation upstream
// stays at full precision; this is the presentation boundary.
func round2(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
