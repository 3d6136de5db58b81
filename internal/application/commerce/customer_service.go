package commerce

import (
	"context"

	"github.com/google/uuid"
	"github.com/orderdesk/backend/internal/domain/commerce"
	"go.uber.org/zap"
)

// CustomerService handles customer operations
type CustomerService struct {
	customers commerce.CustomerRepository
	logger    *zap.Logger
}

// NewCustomerService creates a new customer service
func NewCustomerService(customers commerce.CustomerRepository, logger *zap.Logger) *CustomerService {
	return &CustomerService{customers: customers, logger: logger}
}

// Get loads one customer by id.
func (s *CustomerService) Get(ctx context.Context, id uuid.UUID) (*commerce.Customer, error) {
	return s.customers.GetByID(ctx, nil, id)
}

// Create validates the input and persists a new customer.
func (s *CustomerService) Create(ctx context.Context, in CreateCustomerInput) (*commerce.Customer, error) {
	if err := validateInput(&in); err != nil {
		return nil, err
	}
	customer, err := commerce.NewCustomer(in.Name, in.Email)
	if err != nil {
		return nil, err
	}
	customer.Phone = in.Phone
	customer.Company = in.Company
	if err := s.customers.Create(ctx, nil, customer); err != nil {
		return nil, err
	}
	s.logger.Info("customer created",
		zap.String("customer_id", customer.ID.String()),
		zap.String("email", customer.Email))
	return customer, nil
}

// Update applies a partial update to an existing customer.
func (s *CustomerService) Update(ctx context.Context, id uuid.UUID, in UpdateCustomerInput) (*commerce.Customer, error) {
	if err := validateInput(&in); err != nil {
		return nil, err
	}
	customer, err := s.customers.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		customer.Name = *in.Name
	}
	if in.Email != nil {
		customer.Email = *in.Email
	}
	if in.Phone != nil {
		customer.Phone = *in.Phone
	}
	if in.Company != nil {
		customer.Company = *in.Company
	}
	if err := customer.Validate(); err != nil {
		return nil, err
	}
	customer.Touch()
	if err := s.customers.Update(ctx, nil, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// Delete removes a customer. Orders referencing it restrict the delete, which
// surfaces as a foreign key violation.
func (s *CustomerService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.customers.Delete(ctx, nil, id); err != nil {
		return err
	}
	s.logger.Info("customer deleted", zap.String("customer_id", id.String()))
	return nil
}
