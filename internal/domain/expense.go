package domain

// ExpenseType enumerates business cost categories.
type ExpenseType string

const (
	ExpenseFuel        ExpenseType = "FUEL"
	ExpenseMaintenance ExpenseType = "MAINTENANCE"
	ExpenseCarWash     ExpenseType = "CAR_WASH"
	ExpenseCommission  ExpenseType = "COMMISSION"
	ExpenseOther       ExpenseType = "OTHER"
)

// ExpenseTypes lists all categories in canonical order. The order matters:
// ties in expense-breakdown ranking are broken by first occurrence here.
var ExpenseTypes = []ExpenseType{
	ExpenseFuel,
	ExpenseMaintenance,
	ExpenseCarWash,
	ExpenseCommission,
	ExpenseOther,
}

// ValidExpenseType reports whether t is one of the known category tags.
func ValidExpenseType(t ExpenseType) bool {
	for _, known := range ExpenseTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Expense is a single business cost entry. Immutable once created.
type Expense struct {
	ID     string      `json:"id"`
	Date   Millis      `json:"date"`
	Amount float64     `json:"amount"`
	Type   ExpenseType `json:"type"`
	Notes  string      `json:"notes"`
}
