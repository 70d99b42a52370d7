package service

import (
	"context"
	"fmt"
	"math"

	"github.com/carlapp/ride-ledger/internal/domain"
	"github.com/carlapp/ride-ledger/internal/store"
)

// ExpenseService implements business logic for expense entries.
type ExpenseService struct {
	store store.Store
}

// NewExpenseService constructs an ExpenseService over the given store.
func NewExpenseService(s store.Store) *ExpenseService {
	return &ExpenseService{store: s}
}

// Create validates and appends a new expense. The amount must be a finite,
// non-negative number (zero is allowed) and the category must be a known
// tag. An unset date defaults to now.
func (s *ExpenseService) Create(ctx context.Context, e domain.Expense) (domain.Expense, error) {
	if e.Amount < 0 {
		return domain.Expense{}, fmt.Errorf("%w: amount must not be negative", domain.ErrValidation)
	}
	if math.IsNaN(e.Amount) || math.IsInf(e.Amount, 0) {
		return domain.Expense{}, fmt.Errorf("%w: amount must be a finite number", domain.ErrValidation)
	}
	if !domain.ValidExpenseType(e.Type) {
		return domain.Expense{}, fmt.Errorf("%w: unknown expense type %q", domain.ErrValidation, e.Type)
	}
	if e.ID == "" {
		e.ID = domain.NewID()
	}
	if e.Date == 0 {
		e.Date = domain.NowMillis()
	}
	if err := s.store.AppendExpense(ctx, e); err != nil {
		return domain.Expense{}, err
	}
	return e, nil
}

// List returns all expenses. Order is insertion order by default; newest
// first when newestFirst is set (the transaction-log view).
func (s *ExpenseService) List(ctx context.Context, newestFirst bool) ([]domain.Expense, error) {
	expenses := s.store.Load(ctx).Expenses
	if !newestFirst {
		return expenses, nil
	}
	reversed := make([]domain.Expense, len(expenses))
	for i, e := range expenses {
		reversed[len(expenses)-1-i] = e
	}
	return reversed, nil
}
