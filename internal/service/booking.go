package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkordes/travel-agency/internal/domain"
	"github.com/pkordes/travel-agency/internal/repo"
)

// BookingInput carries the fields of a new booking. A zero Date means now
// and an empty Status means PENDING.
type BookingInput struct {
	CustomerID      string
	PackageID       string
	Date            time.Time
	Status          domain.BookingStatus
	Travelers       int
	SpecialRequests string
}

// BookingUpdate carries the editable fields of an existing booking.
type BookingUpdate struct {
	Travelers       int
	Status          domain.BookingStatus
	SpecialRequests string
}

// PaymentInput is a payment request against a booking.
type PaymentInput struct {
	Amount float64
	Method domain.PaymentMethod
}

// BookingService implements the booking lifecycle: creation, payment,
// cancellation and deletion.
type BookingService struct {
	bookings  repo.BookingRepo
	customers repo.CustomerRepo
	packages  repo.PackageRepo
	flusher   repo.Flusher
	now       func() time.Time
}

// NewBookingService constructs a BookingService backed by the provided repos.
func NewBookingService(bookings repo.BookingRepo, customers repo.CustomerRepo, packages repo.PackageRepo, flusher repo.Flusher, opts ...Option) *BookingService {
	o := buildOptions(opts)
	return &BookingService{bookings: bookings, customers: customers, packages: packages, flusher: flusher, now: o.now}
}

// Create books a package for a customer.
// Returns domain.ErrNotFound if the customer or package does not exist and
// domain.ErrBooking if the package is not available.
func (s *BookingService) Create(ctx context.Context, in BookingInput) (*domain.Booking, error) {
	p, err := s.packages.GetByID(in.PackageID)
	if err != nil {
		return nil, fmt.Errorf("service.BookingService.Create: %w", err)
	}
	return s.Book(ctx, p, in)
}

// Book books any travel service, including custom trips, for the customer
// named in in.CustomerID. in.PackageID is ignored.
// Returns domain.ErrBooking if the service cannot be booked or is not available.
func (s *BookingService) Book(ctx context.Context, service domain.TravelService, in BookingInput) (*domain.Booking, error) {
	c, err := s.customers.GetByID(in.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("service.BookingService.Book: %w", err)
	}
	if in.Status != "" && !in.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown booking status %q", domain.ErrValidation, in.Status)
	}
	bookable, ok := service.AsBookable()
	if !ok {
		return nil, fmt.Errorf("service.BookingService.Book %s: %w: the selected service cannot be booked", service.Info().ID, domain.ErrBooking)
	}
	if !bookable.Available() {
		return nil, fmt.Errorf("service.BookingService.Book %s: %w: the selected service is not available for booking", service.Info().ID, domain.ErrBooking)
	}

	date := in.Date
	if date.IsZero() {
		date = s.now()
	}
	b := domain.NewBooking(newID(prefixBooking, s.bookings.Taken), c, service, date,
		in.Status, in.Travelers, strings.TrimSpace(in.SpecialRequests))
	if err := s.bookings.Add(b); err != nil {
		return nil, fmt.Errorf("service.BookingService.Book: %w", err)
	}
	c.AddBooking(b)
	if err := flush(ctx, s.flusher, "service.BookingService.Book"); err != nil {
		return b, err
	}
	return b, nil
}

func (s *BookingService) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("service.BookingService.GetByID: %w", err)
	}
	return b, nil
}

func (s *BookingService) List(_ context.Context) []*domain.Booking {
	return s.bookings.List()
}

// ByStatus returns the bookings in the given status.
func (s *BookingService) ByStatus(_ context.Context, status domain.BookingStatus) []*domain.Booking {
	return bookingsWhere(s.bookings, func(b *domain.Booking) bool { return b.Status == status })
}

// ByCustomer returns the bookings made by a customer.
func (s *BookingService) ByCustomer(_ context.Context, customerID string) []*domain.Booking {
	return bookingsWhere(s.bookings, func(b *domain.Booking) bool { return b.Customer.ID == customerID })
}

// ByPackage returns the bookings of a package.
func (s *BookingService) ByPackage(_ context.Context, packageID string) []*domain.Booking {
	return bookingsWhere(s.bookings, bookedPackage(packageID))
}

// Update overwrites the traveller count, status and special requests.
// Travellers below one are stored as given and read back as one.
func (s *BookingService) Update(ctx context.Context, id string, in BookingUpdate) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("service.BookingService.Update: %w", err)
	}
	if !in.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown booking status %q", domain.ErrValidation, in.Status)
	}
	b.SetNumTravelers(in.Travelers)
	b.Status = in.Status
	b.SpecialRequests = strings.TrimSpace(in.SpecialRequests)
	if err := flush(ctx, s.flusher, "service.BookingService.Update"); err != nil {
		return b, err
	}
	return b, nil
}

// UpdateStatus sets the booking status without any lifecycle side effects.
func (s *BookingService) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("service.BookingService.UpdateStatus: %w", err)
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown booking status %q", domain.ErrValidation, status)
	}
	b.Status = status
	if err := flush(ctx, s.flusher, "service.BookingService.UpdateStatus"); err != nil {
		return b, err
	}
	return b, nil
}

// ProcessPayment attaches a new payment to the booking and processes it.
// On success the booking becomes CONFIRMED. Returns domain.ErrPayment when
// the booking does not exist, the amount is not positive, the method is
// missing, or processing fails; a failed payment stays attached with status
// FAILED and the booking status is unchanged.
func (s *BookingService) ProcessPayment(ctx context.Context, bookingID string, in PaymentInput) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(bookingID)
	if err != nil {
		return nil, fmt.Errorf("service.BookingService.ProcessPayment: %w: invalid booking: %w", domain.ErrPayment, err)
	}
	if in.Amount <= 0 {
		return nil, fmt.Errorf("service.BookingService.ProcessPayment: %w: payment amount must be greater than zero", domain.ErrPayment)
	}
	if in.Method == "" {
		return nil, fmt.Errorf("service.BookingService.ProcessPayment: %w: payment method must be specified", domain.ErrPayment)
	}

	pmt := domain.NewPayment(newID(prefixPayment, s.paymentTaken), in.Amount, in.Method, s.now())
	b.AttachPayment(pmt)
	confirmed := b.Confirm()
	if err := flush(ctx, s.flusher, "service.BookingService.ProcessPayment"); err != nil {
		return b, err
	}
	if !confirmed {
		return b, fmt.Errorf("service.BookingService.ProcessPayment %s: %w: payment processing failed", bookingID, domain.ErrPayment)
	}
	return b, nil
}

// Cancel moves a booking to CANCELLED and marks a completed payment as
// REFUNDED. No money moves. Returns domain.ErrBooking if the booking is
// already cancelled.
func (s *BookingService) Cancel(ctx context.Context, id string) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("service.BookingService.Cancel: %w", err)
	}
	if !b.Cancel() {
		return nil, fmt.Errorf("service.BookingService.Cancel %s: %w: booking is already cancelled", id, domain.ErrBooking)
	}
	if b.Payment != nil && b.Payment.Status == domain.PaymentCompleted {
		b.Payment.Status = domain.PaymentRefunded
	}
	if err := flush(ctx, s.flusher, "service.BookingService.Cancel"); err != nil {
		return b, err
	}
	return b, nil
}

// Delete removes a booking and drops it from its customer's history.
func (s *BookingService) Delete(ctx context.Context, id string) error {
	b, err := s.bookings.GetByID(id)
	if err != nil {
		return fmt.Errorf("service.BookingService.Delete: %w", err)
	}
	if err := s.bookings.Remove(id); err != nil {
		return fmt.Errorf("service.BookingService.Delete: %w", err)
	}
	b.Customer.RemoveBooking(id)
	return flush(ctx, s.flusher, "service.BookingService.Delete")
}

// paymentTaken reports whether any booking holds a payment with that ID.
func (s *BookingService) paymentTaken(id string) bool {
	for _, b := range s.bookings.List() {
		if b.Payment != nil && b.Payment.ID == id {
			return true
		}
	}
	return false
}
