// Package domain contains the core data types for the travel agency backend:
// customers, activities, travel services (packages and custom trips),
// itineraries, bookings, payments, and reviews.
//
// Entities reference each other by pointer once loaded. Identity is the ID
// string; two values with the same ID are the same entity.
// The types here are not safe for concurrent use.
package domain

// Customer is a person who books travel services.
// The booking list is a back-reference: bookings are owned by the global
// booking collection, the customer only points at them.
type Customer struct {
	ID      string
	Name    string
	Email   string
	Phone   string
	Address string

	bookings []*Booking
}

// NewCustomer constructs a Customer with an empty booking history.
func NewCustomer(id, name, email, phone, address string) *Customer {
	return &Customer{ID: id, Name: name, Email: email, Phone: phone, Address: address}
}

// AddBooking records b in the customer's history. Adding the same booking
// ID twice is a no-op.
func (c *Customer) AddBooking(b *Booking) {
	for _, existing := range c.bookings {
		if existing.ID == b.ID {
			return
		}
	}
	c.bookings = append(c.bookings, b)
}

// RemoveBooking drops the booking with the given ID from the history.
// It reports whether anything was removed.
func (c *Customer) RemoveBooking(id string) bool {
	for i, b := range c.bookings {
		if b.ID == id {
			c.bookings = append(c.bookings[:i], c.bookings[i+1:]...)
			return true
		}
	}
	return false
}

// Bookings returns a copy of the customer's booking history.
func (c *Customer) Bookings() []*Booking {
	return append([]*Booking(nil), c.bookings...)
}

// String renders the customer as "Name (email)".
func (c *Customer) String() string {
	return c.Name + " (" + c.Email + ")"
}
