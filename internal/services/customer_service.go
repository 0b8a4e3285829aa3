package services

import (
	"context"
	"fmt"

	"bugstore/internal/models"
	"bugstore/internal/repositories"

	"github.com/google/uuid"
)

type CustomerService interface {
	Create(ctx context.Context, customer *models.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	Update(ctx context.Context, customer *models.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*models.Customer, error)
}

type customerService struct {
	customerRepo repositories.CustomerRepository
}

// NewCustomerService creates a new customer service instance.
func NewCustomerService(customerRepo repositories.CustomerRepository) CustomerService {
	return &customerService{customerRepo: customerRepo}
}

func (s *customerService) Create(ctx context.Context, customer *models.Customer) error {
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return fmt.Errorf("create customer: %w", err)
	}
	return nil
}

func (s *customerService) GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get customer: %w", err)
	}
	if customer == nil {
		return nil, ErrNotFound
	}
	return customer, nil
}

// Update loads the current record and issues a full replace-write with
// the new field values.
func (s *customerService) Update(ctx context.Context, customer *models.Customer) error {
	existing, err := s.customerRepo.GetByID(ctx, customer.ID)
	if err != nil {
		return fmt.Errorf("get customer for update: %w", err)
	}
	if existing == nil {
		return ErrNotFound
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	return nil
}

func (s *customerService) Delete(ctx context.Context, id uuid.UUID) error {
	existing, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get customer for delete: %w", err)
	}
	if existing == nil {
		return ErrNotFound
	}

	if err := s.customerRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	return nil
}

func (s *customerService) List(ctx context.Context) ([]*models.Customer, error) {
	return s.customerRepo.List(ctx)
}
