package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkordes/travel-agency/internal/domain"
	"github.com/pkordes/travel-agency/internal/repo"
)

// CustomerInput carries the editable fields of a customer.
type CustomerInput struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// CustomerService implements business logic for customers.
// It holds the bookings repo because deletion is guarded by booking references.
type CustomerService struct {
	customers repo.CustomerRepo
	bookings  repo.BookingRepo
	flusher   repo.Flusher
}

// NewCustomerService constructs a CustomerService backed by the provided repos.
func NewCustomerService(customers repo.CustomerRepo, bookings repo.BookingRepo, flusher repo.Flusher) *CustomerService {
	return &CustomerService{customers: customers, bookings: bookings, flusher: flusher}
}

// Create validates the input and adds a new customer.
// Returns domain.ErrValidation if name or email is blank.
func (s *CustomerService) Create(ctx context.Context, in CustomerInput) (*domain.Customer, error) {
	if err := validateCustomer(in); err != nil {
		return nil, err
	}
	c := domain.NewCustomer(newID(prefixCustomer, s.customers.Taken),
		strings.TrimSpace(in.Name), strings.TrimSpace(in.Email), strings.TrimSpace(in.Phone), strings.TrimSpace(in.Address))
	if err := s.customers.Add(c); err != nil {
		return nil, fmt.Errorf("service.CustomerService.Create: %w", err)
	}
	if err := flush(ctx, s.flusher, "service.CustomerService.Create"); err != nil {
		return c, err
	}
	return c, nil
}

// GetByID returns domain.ErrNotFound if no customer has that ID.
func (s *CustomerService) GetByID(_ context.Context, id string) (*domain.Customer, error) {
	c, err := s.customers.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("service.CustomerService.GetByID: %w", err)
	}
	return c, nil
}

// List returns every customer in insertion order.
func (s *CustomerService) List(_ context.Context) []*domain.Customer {
	return s.customers.List()
}

// SearchByName returns customers whose name contains q, ignoring case.
// Always returns a non-nil slice.
func (s *CustomerService) SearchByName(_ context.Context, q string) []*domain.Customer {
	out := []*domain.Customer{}
	for _, c := range s.customers.List() {
		if containsFold(c.Name, q) {
			out = append(out, c)
		}
	}
	return out
}

// Update overwrites the editable fields of an existing customer.
// Returns domain.ErrValidation for invalid input, domain.ErrNotFound if the
// customer does not exist.
func (s *CustomerService) Update(ctx context.Context, id string, in CustomerInput) (*domain.Customer, error) {
	c, err := s.customers.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("service.CustomerService.Update: %w", err)
	}
	if err := validateCustomer(in); err != nil {
		return nil, err
	}
	c.Name = strings.TrimSpace(in.Name)
	c.Email = strings.TrimSpace(in.Email)
	c.Phone = strings.TrimSpace(in.Phone)
	c.Address = strings.TrimSpace(in.Address)
	if err := flush(ctx, s.flusher, "service.CustomerService.Update"); err != nil {
		return c, err
	}
	return c, nil
}

// Delete removes a customer. Returns domain.ErrInUse while any booking
// references the customer; the customer then stays in the collection.
func (s *CustomerService) Delete(ctx context.Context, id string) error {
	if _, err := s.customers.GetByID(id); err != nil {
		return fmt.Errorf("service.CustomerService.Delete: %w", err)
	}
	if s.inUse(id) {
		return fmt.Errorf("service.CustomerService.Delete %s: %w: customer has bookings", id, domain.ErrInUse)
	}
	if err := s.customers.Remove(id); err != nil {
		return fmt.Errorf("service.CustomerService.Delete: %w", err)
	}
	return flush(ctx, s.flusher, "service.CustomerService.Delete")
}

// InUse reports whether any booking references the customer.
func (s *CustomerService) InUse(_ context.Context, id string) (bool, error) {
	if _, err := s.customers.GetByID(id); err != nil {
		return false, fmt.Errorf("service.CustomerService.InUse: %w", err)
	}
	return s.inUse(id), nil
}

// Bookings returns every booking made by the customer, in booking order.
func (s *CustomerService) Bookings(_ context.Context, id string) ([]*domain.Booking, error) {
	if _, err := s.customers.GetByID(id); err != nil {
		return nil, fmt.Errorf("service.CustomerService.Bookings: %w", err)
	}
	return bookingsWhere(s.bookings, func(b *domain.Booking) bool { return b.Customer.ID == id }), nil
}

func (s *CustomerService) inUse(id string) bool {
	for _, b := range s.bookings.List() {
		if b.Customer.ID == id {
			return true
		}
	}
	return false
}

// validateCustomer enforces the rules shared by Create and Update.
func validateCustomer(in CustomerInput) error {
	if blank(in.Name) {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if blank(in.Email) {
		return fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	return nil
}

// bookingsWhere filters the booking collection. Always returns a non-nil slice.
func bookingsWhere(bookings repo.BookingRepo, keep func(*domain.Booking) bool) []*domain.Booking {
	out := []*domain.Booking{}
	for _, b := range bookings.List() {
		if keep(b) {
			out = append(out, b)
		}
	}
	return out
}
