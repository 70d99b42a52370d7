// Package metrics derives financial summaries from the ledger.
//
// Everything here is a pure function of a ledger value: no mutation, no
// side effects, safe to call on every render. Sums accumulate as exact
// decimals; rounding to two places happens only when a value is formatted
// for display, never mid-accumulation.
package metrics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/carlapp/ride-ledger/internal/domain"
)

// TodayGross sums fares over trips whose start time falls within
// [local midnight of now, now].
func TodayGross(ledger domain.Ledger, now time.Time) decimal.Decimal {
	start := startOfDay(now)
	sum := decimal.Zero
	for _, t := range ledger.Trips {
		if inWindow(t.StartTime, start, now) {
			sum = sum.Add(decimal.NewFromFloat(t.Fare))
		}
	}
	return sum
}

// TodayExpenses sums expense amounts dated within [local midnight of now, now].
func TodayExpenses(ledger domain.Ledger, now time.Time) decimal.Decimal {
	start := startOfDay(now)
	sum := decimal.Zero
	for _, e := range ledger.Expenses {
		if inWindow(e.Date, start, now) {
			sum = sum.Add(decimal.NewFromFloat(e.Amount))
		}
	}
	return sum
}

// TodayNet is today's gross minus today's expenses.
func TodayNet(ledger domain.Ledger, now time.Time) decimal.Decimal {
	return TodayGross(ledger, now).Sub(TodayExpenses(ledger, now))
}

// AllTimeGross sums every trip fare in the ledger.
func AllTimeGross(ledger domain.Ledger) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range ledger.Trips {
		sum = sum.Add(decimal.NewFromFloat(t.Fare))
	}
	return sum
}

// AllTimeExpenses sums every expense amount in the ledger.
func AllTimeExpenses(ledger domain.Ledger) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range ledger.Expenses {
		sum = sum.Add(decimal.NewFromFloat(e.Amount))
	}
	return sum
}

// AllTimeNet is all-time gross minus all-time expenses.
func AllTimeNet(ledger domain.Ledger) decimal.Decimal {
	return AllTimeGross(ledger).Sub(AllTimeExpenses(ledger))
}

// ProfitMargin returns net/gross, or exactly zero when gross is zero.
// Defined as 0 rather than undefined so downstream display never sees NaN.
func ProfitMargin(gross, net decimal.Decimal) decimal.Decimal {
	if gross.IsZero() {
		return decimal.Zero
	}
	// 8 digits is far beyond display precision; the quotient is only ever
	// shown as a percentage.
	return net.DivRound(gross, 8)
}

// ExpenseBreakdown sums amounts per category. Categories with a zero total
// are omitted from the result.
func ExpenseBreakdown(ledger domain.Ledger) map[domain.ExpenseType]decimal.Decimal {
	totals := make(map[domain.ExpenseType]decimal.Decimal)
	for _, e := range ledger.Expenses {
		totals[e.Type] = totals[e.Type].Add(decimal.NewFromFloat(e.Amount))
	}
	for t, v := range totals {
		if v.IsZero() {
			delete(totals, t)
		}
	}
	return totals
}

// TopExpenseCategory returns the category with the highest total, with ties
// broken by the canonical category order (FUEL first). ok is false when the
// breakdown is empty.
func TopExpenseCategory(breakdown map[domain.ExpenseType]decimal.Decimal) (domain.ExpenseType, bool) {
	var top domain.ExpenseType
	best := decimal.Zero
	found := false
	for _, t := range domain.ExpenseTypes {
		v, present := breakdown[t]
		if !present {
			continue
		}
		if !found || v.GreaterThan(best) {
			top, best, found = t, v, true
		}
	}
	return top, found
}

// CustomerLifetimeSpend sums fares over trips attributed to customerID.
// Trips with no customer reference never contribute to any total.
func CustomerLifetimeSpend(ledger domain.Ledger, customerID string) decimal.Decimal {
	sum := decimal.Zero
	if customerID == "" {
		return sum
	}
	for _, t := range ledger.Trips {
		if t.CustomerID == customerID {
			sum = sum.Add(decimal.NewFromFloat(t.Fare))
		}
	}
	return sum
}

// TripsToday counts trips started within [local midnight of now, now].
func TripsToday(ledger domain.Ledger, now time.Time) int {
	start := startOfDay(now)
	n := 0
	for _, t := range ledger.Trips {
		if inWindow(t.StartTime, start, now) {
			n++
		}
	}
	return n
}

// startOfDay returns local midnight of t, in t's location.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// inWindow reports whether ts falls within [from, to].
func inWindow(ts domain.Millis, from, to time.Time) bool {
	at := ts.Time()
	return !at.Before(from) && !at.After(to)
}
