package repo

import "time"

// The record types below are the on-disk shape of each data file: flat
// objects that reference other entities by ID. Field names follow the
// files written by the original desktop application so those files load
// unchanged. Fields added since then are optional on read.

type activityRecord struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Location string  `json:"location"`
	Duration int     `json:"duration"`
	Cost     float64 `json:"cost"`
}

// customerRecord.Address may be absent or null; both load as "".
type customerRecord struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type packageRecord struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	BasePrice     float64          `json:"basePrice"`
	Destination   string           `json:"destination"`
	Duration      int              `json:"duration"`
	Accommodation string           `json:"accommodation"`
	Available     *bool            `json:"available,omitempty"` // absent means available
	Activities    []string         `json:"activities"`
	Itinerary     *itineraryRecord `json:"itinerary,omitempty"`
}

type itineraryRecord struct {
	ID   string      `json:"id"`
	Name string      `json:"name"`
	Days []dayRecord `json:"days"`
}

type dayRecord struct {
	DayNumber  int      `json:"dayNumber"`
	Notes      string   `json:"notes"`
	Activities []string `json:"activities"`
}

// bookingRecord keeps Status and Date as raw strings so a single bad value
// skips one record instead of failing the whole file.
// PaymentID is always written (null when there is no payment); Payment
// carries the full payment and is absent in legacy files.
type bookingRecord struct {
	ID              string         `json:"id"`
	CustomerID      string         `json:"customerId"`
	ServiceID       string         `json:"serviceId"`
	Status          string         `json:"status"`
	Date            string         `json:"date"`
	PaymentID       *string        `json:"paymentId"`
	NumTravelers    *int           `json:"numTravelers,omitempty"`
	SpecialRequests string         `json:"specialRequests,omitempty"`
	Payment         *paymentRecord `json:"payment,omitempty"`
}

type paymentRecord struct {
	ID     string    `json:"id"`
	Amount float64   `json:"amount"`
	Method string    `json:"method"`
	Status string    `json:"status"`
	Date   time.Time `json:"date,omitzero"`
}

// reviewRecord.PackageID is null for a review attached to no package.
type reviewRecord struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customerId"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	PackageID  *string   `json:"packageId"`
	Date       time.Time `json:"date,omitzero"`
}
