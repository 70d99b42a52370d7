package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/carlapp/ride-ledger/internal/region"
)

// NewRegionGate returns a middleware that rejects every request with 403
// while the gate has decided Blocked. Health and region-status probes pass
// through so a blocked client can still see why.
//
// The gate is advisory, not a security boundary; this just keeps the API
// consistent with the blocked UI.
func NewRegionGate(gate *region.Gate, exempt ...string) func(http.Handler) http.Handler {
	exemptPaths := make(map[string]bool, len(exempt))
	for _, p := range exempt {
		exemptPaths[p] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if gate.Blocked() && !exemptPaths[r.URL.Path] {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"error": map[string]string{
						"code":    "region_restricted",
						"message": "this app is only available within the Republic of Ghana",
					},
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
