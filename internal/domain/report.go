package domain

import "time"

// The report rows below are flat, denormalized views computed from the
// loaded collections. They carry IDs and display names so callers never
// need to walk the object graph to render them.

// PackageRevenue is one row of the revenue-by-package report.
// Only CONFIRMED and COMPLETED bookings count as revenue.
type PackageRevenue struct {
	PackageID    string
	PackageName  string
	Revenue      float64
	Bookings     int
	AverageValue float64 // Revenue / Bookings
}

// PackageRating is one row of the top-rated-packages report.
// Packages without reviews never appear.
type PackageRating struct {
	Rank          int
	PackageID     string
	PackageName   string
	AverageRating float64
	Reviews       int
	Price         float64
}

// PackagePopularity is one row of the package-popularity report.
type PackagePopularity struct {
	Rank        int
	PackageID   string
	PackageName string
	Destination string
	Bookings    int
	Price       float64
}

// BookingSummary is one booking flattened for the bookings-by-status and
// customer-history reports.
type BookingSummary struct {
	BookingID    string
	CustomerID   string
	CustomerName string
	ServiceID    string
	ServiceName  string
	Date         time.Time
	Status       BookingStatus
	Travelers    int
	Total        float64
}

// SummarizeBooking flattens b into a BookingSummary.
func SummarizeBooking(b *Booking) BookingSummary {
	return BookingSummary{
		BookingID:    b.ID,
		CustomerID:   b.Customer.ID,
		CustomerName: b.Customer.Name,
		ServiceID:    b.Service.Info().ID,
		ServiceName:  b.Service.Info().Name,
		Date:         b.Date,
		Status:       b.Status,
		Travelers:    b.NumTravelers(),
		Total:        b.TotalPrice(),
	}
}
