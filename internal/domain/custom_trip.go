package domain

import (
	"fmt"
	"strings"
)

// CustomTrip is a customer-assembled trip made of other travel services.
// It is Bookable but not Reviewable.
type CustomTrip struct {
	ServiceInfo
	Customer *Customer

	destinations []string
	services     []TravelService
	available    bool
}

// NewCustomTrip constructs an available custom trip with no child services.
func NewCustomTrip(id, name, description string, basePrice float64, customer *Customer) *CustomTrip {
	return &CustomTrip{
		ServiceInfo: ServiceInfo{ID: id, Name: name, Description: description, BasePrice: basePrice},
		Customer:    customer,
		available:   true,
	}
}

func (t *CustomTrip) Kind() ServiceKind { return KindCustomTrip }
func (t *CustomTrip) AsBookable() (Bookable, bool) { return t, true }
func (t *CustomTrip) AsReviewable() (Reviewable, bool) { return nil, false }
func (t *CustomTrip) isTravelService() {}

// AddDestination records a destination once.
func (t *CustomTrip) AddDestination(d string) {
	for _, existing := range t.destinations {
		if existing == d {
			return
		}
	}
	t.destinations = append(t.destinations, d)
}

// Destinations returns a copy of the destination list.
func (t *CustomTrip) Destinations() []string {
	return append([]string(nil), t.destinations...)
}

// AddService includes each given service once, keyed by service ID.
func (t *CustomTrip) AddService(services ...TravelService) {
	for _, s := range services {
		if t.hasService(s.Info().ID) {
			continue
		}
		t.services = append(t.services, s)
	}
}

func (t *CustomTrip) hasService(id string) bool {
	for _, s := range t.services {
		if s.Info().ID == id {
			return true
		}
	}
	return false
}

// Services returns a copy of the child services.
func (t *CustomTrip) Services() []TravelService {
	return append([]TravelService(nil), t.services...)
}

// TotalPrice is the base price plus the total price of every child service.
func (t *CustomTrip) TotalPrice() float64 {
	total := t.BasePrice
	for _, s := range t.services {
		total += s.TotalPrice()
	}
	return total
}

// SetAvailable toggles the trip's own availability flag.
func (t *CustomTrip) SetAvailable(v bool) { t.available = v }

// Available is false as soon as any bookable child is unavailable;
// otherwise it is the trip's own flag.
func (t *CustomTrip) Available() bool {
	for _, s := range t.services {
		if b, ok := s.AsBookable(); ok && !b.Available() {
			return false
		}
	}
	return t.available
}

// Reserve reserves every bookable child in order and stops at the first
// failure. Children reserved before the failure stay reserved: there is no
// rollback.
func (t *CustomTrip) Reserve() bool {
	if !t.Available() {
		return false
	}
	for _, s := range t.services {
		if b, ok := s.AsBookable(); ok && !b.Reserve() {
			return false
		}
	}
	return true
}

func (t *CustomTrip) String() string {
	return fmt.Sprintf("Custom Trip: %s - %s - $%.2f", t.Name, strings.Join(t.destinations, ", "), t.TotalPrice())
}
