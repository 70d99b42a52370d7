// Package service contains the business logic between the HTTP layer and
// the ledger store. Services validate inputs and enforce business rules;
// no serialization or storage details live here — they depend on the store
// interface, not an implementation.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/carlapp/ride-ledger/internal/domain"
	"github.com/carlapp/ride-ledger/internal/store"
)

// CustomerService implements business logic for saved rider profiles.
type CustomerService struct {
	store store.Store
}

// NewCustomerService constructs a CustomerService over the given store.
func NewCustomerService(s store.Store) *CustomerService {
	return &CustomerService{store: s}
}

// Create validates and appends a new customer. Name is required; nickname,
// notes, and phone are optional. Duplicate names are allowed — two riders
// may genuinely share one.
func (s *CustomerService) Create(ctx context.Context, c domain.Customer) (domain.Customer, error) {
	c.Name = strings.TrimSpace(c.Name)
	c.Nickname = strings.TrimSpace(c.Nickname)
	if c.Name == "" {
		return domain.Customer{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if c.ID == "" {
		c.ID = domain.NewID()
	}
	if err := s.store.AppendCustomer(ctx, c); err != nil {
		return domain.Customer{}, err
	}
	return c, nil
}

// List returns all customers in insertion order. With a non-empty query,
// only customers whose name or nickname contains it (case-insensitive) are
// returned.
func (s *CustomerService) List(ctx context.Context, query string) ([]domain.Customer, error) {
	customers := s.store.Load(ctx).Customers
	if query == "" {
		return customers, nil
	}
	q := strings.ToLower(query)
	matched := []domain.Customer{}
	for _, c := range customers {
		if strings.Contains(strings.ToLower(c.Name), q) ||
			strings.Contains(strings.ToLower(c.Nickname), q) {
			matched = append(matched, c)
		}
	}
	return matched, nil
}

// GetByID returns a single customer, or domain.ErrNotFound.
func (s *CustomerService) GetByID(ctx context.Context, id string) (domain.Customer, error) {
	for _, c := range s.store.Load(ctx).Customers {
		if c.ID == id {
			return c, nil
		}
	}
	return domain.Customer{}, domain.ErrNotFound
}
