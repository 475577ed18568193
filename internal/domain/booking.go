package domain

import (
	"fmt"
	"time"
)

// Booking ties a customer to a travel service.
// Customer and Service are references into their own collections; the
// booking owns at most one Payment.
type Booking struct {
	ID              string
	Customer        *Customer
	Service         TravelService
	Date            time.Time
	Status          BookingStatus
	SpecialRequests string
	Payment         *Payment

	numTravelers int
}

// NewBooking constructs a booking. An empty status becomes PENDING.
// travelers is stored as given; NumTravelers clamps on read.
func NewBooking(id string, customer *Customer, service TravelService, date time.Time, status BookingStatus, travelers int, specialRequests string) *Booking {
	if status == "" {
		status = BookingPending
	}
	return &Booking{
		ID:              id,
		Customer:        customer,
		Service:         service,
		Date:            date,
		Status:          status,
		SpecialRequests: specialRequests,
		numTravelers:    travelers,
	}
}

// NumTravelers is never less than one, whatever was stored.
func (b *Booking) NumTravelers() int {
	return max(1, b.numTravelers)
}

// SetNumTravelers stores n as given.
func (b *Booking) SetNumTravelers(n int) { b.numTravelers = n }

// TotalPrice is the current total price of the booked service.
func (b *Booking) TotalPrice() float64 {
	return b.Service.TotalPrice()
}

// Package returns the booked TravelPackage, or nil for other variants.
func (b *Booking) Package() *TravelPackage {
	if p, ok := b.Service.(*TravelPackage); ok {
		return p
	}
	return nil
}

// AttachPayment replaces the booking's payment.
func (b *Booking) AttachPayment(p *Payment) { b.Payment = p }

// Confirm processes the attached payment and confirms the booking when it
// succeeds.
func (b *Booking) Confirm() bool {
	if b.Payment != nil && b.Payment.Process() {
		b.Status = BookingConfirmed
		return true
	}
	return false
}

// Cancel moves the booking to CANCELLED. It reports false if it already was.
func (b *Booking) Cancel() bool {
	if b.Status == BookingCancelled {
		return false
	}
	b.Status = BookingCancelled
	return true
}

func (b *Booking) String() string {
	return fmt.Sprintf("Booking #%s - %s - %s - Status: %s",
		b.ID, b.Customer.Name, b.Service.Info().Name, b.Status.DisplayName())
}
