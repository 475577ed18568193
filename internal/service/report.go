package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/pkordes/travel-agency/internal/domain"
	"github.com/pkordes/travel-agency/internal/repo"
)

// ReportService computes read-only business reports from the collections.
// Ties keep package insertion order.
type ReportService struct {
	packages  repo.PackageRepo
	customers repo.CustomerRepo
	bookings  repo.BookingRepo
}

// NewReportService constructs a ReportService backed by the provided repos.
func NewReportService(packages repo.PackageRepo, customers repo.CustomerRepo, bookings repo.BookingRepo) *ReportService {
	return &ReportService{packages: packages, customers: customers, bookings: bookings}
}

// RevenueByPackage sums the total price of CONFIRMED and COMPLETED bookings
// per package, highest revenue first. Packages without such bookings are
// left out.
func (s *ReportService) RevenueByPackage(_ context.Context) []domain.PackageRevenue {
	byID := map[string]*domain.PackageRevenue{}
	for _, b := range s.bookings.List() {
		p := b.Package()
		if p == nil || (b.Status != domain.BookingConfirmed && b.Status != domain.BookingCompleted) {
			continue
		}
		row, ok := byID[p.ID]
		if !ok {
			row = &domain.PackageRevenue{PackageID: p.ID, PackageName: p.Name}
			byID[p.ID] = row
		}
		row.Revenue += b.TotalPrice()
		row.Bookings++
	}

	out := []domain.PackageRevenue{}
	for _, p := range s.packages.List() {
		if row, ok := byID[p.ID]; ok {
			row.AverageValue = row.Revenue / float64(row.Bookings)
			out = append(out, *row)
		}
	}
	slices.SortStableFunc(out, func(a, b domain.PackageRevenue) int {
		return cmp.Compare(b.Revenue, a.Revenue)
	})
	return out
}

// BookingsByStatus lists the bookings in one status.
func (s *ReportService) BookingsByStatus(_ context.Context, status domain.BookingStatus) []domain.BookingSummary {
	return summarize(bookingsWhere(s.bookings, func(b *domain.Booking) bool { return b.Status == status }))
}

// TopRatedPackages ranks reviewed packages by average rating, best first.
func (s *ReportService) TopRatedPackages(_ context.Context) []domain.PackageRating {
	var rated []*domain.TravelPackage
	for _, p := range s.packages.List() {
		if len(p.Reviews()) > 0 {
			rated = append(rated, p)
		}
	}
	slices.SortStableFunc(rated, func(a, b *domain.TravelPackage) int {
		return cmp.Compare(b.AverageRating(), a.AverageRating())
	})

	out := make([]domain.PackageRating, 0, len(rated))
	for i, p := range rated {
		out = append(out, domain.PackageRating{
			Rank:          i + 1,
			PackageID:     p.ID,
			PackageName:   p.Name,
			AverageRating: p.AverageRating(),
			Reviews:       len(p.Reviews()),
			Price:         p.BasePrice,
		})
	}
	return out
}

// CustomerHistory lists a customer's package bookings in booking order.
// Returns domain.ErrNotFound if the customer does not exist.
func (s *ReportService) CustomerHistory(_ context.Context, customerID string) ([]domain.BookingSummary, error) {
	if _, err := s.customers.GetByID(customerID); err != nil {
		return nil, fmt.Errorf("service.ReportService.CustomerHistory: %w", err)
	}
	return summarize(bookingsWhere(s.bookings, func(b *domain.Booking) bool {
		return b.Customer.ID == customerID && b.Package() != nil
	})), nil
}

// PackagePopularity ranks booked packages by number of bookings, most first.
func (s *ReportService) PackagePopularity(_ context.Context) []domain.PackagePopularity {
	counts := map[string]int{}
	for _, b := range s.bookings.List() {
		if p := b.Package(); p != nil {
			counts[p.ID]++
		}
	}

	var booked []*domain.TravelPackage
	for _, p := range s.packages.List() {
		if counts[p.ID] > 0 {
			booked = append(booked, p)
		}
	}
	slices.SortStableFunc(booked, func(a, b *domain.TravelPackage) int {
		return cmp.Compare(counts[b.ID], counts[a.ID])
	})

	out := make([]domain.PackagePopularity, 0, len(booked))
	for i, p := range booked {
		out = append(out, domain.PackagePopularity{
			Rank:        i + 1,
			PackageID:   p.ID,
			PackageName: p.Name,
			Destination: p.Destination,
			Bookings:    counts[p.ID],
			Price:       p.BasePrice,
		})
	}
	return out
}

func summarize(bookings []*domain.Booking) []domain.BookingSummary {
	out := make([]domain.BookingSummary, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, domain.SummarizeBooking(b))
	}
	return out
}
