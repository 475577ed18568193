// Package handler implements the HTTP handlers for the travel agency API.
// All handlers are methods on Server. Methods are split into
// resource-specific files (customer.go, booking.go, etc.) but share the same
// Server struct so they can reach every service.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/travel-agency/internal/domain"
	"github.com/pkordes/travel-agency/internal/service"
)

// The servicer interfaces below list the business operations each handler
// file depends on. They live here, in the consumer package, so handler tests
// can inject a mock without touching the data directory.

type CustomerServicer interface {
	Create(ctx context.Context, in service.CustomerInput) (*domain.Customer, error)
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	List(ctx context.Context) []*domain.Customer
	SearchByName(ctx context.Context, q string) []*domain.Customer
	Update(ctx context.Context, id string, in service.CustomerInput) (*domain.Customer, error)
	Delete(ctx context.Context, id string) error
	Bookings(ctx context.Context, id string) ([]*domain.Booking, error)
}

type ActivityServicer interface {
	Create(ctx context.Context, in service.ActivityInput) (*domain.Activity, error)
	GetByID(ctx context.Context, id string) (*domain.Activity, error)
	List(ctx context.Context) []*domain.Activity
	Update(ctx context.Context, id string, in service.ActivityInput) (*domain.Activity, error)
	Delete(ctx context.Context, id string) error
}

type PackageServicer interface {
	Create(ctx context.Context, in service.PackageInput) (*domain.TravelPackage, error)
	GetByID(ctx context.Context, id string) (*domain.TravelPackage, error)
	List(ctx context.Context) []*domain.TravelPackage
	SearchByDestination(ctx context.Context, q string) []*domain.TravelPackage
	Update(ctx context.Context, id string, in service.PackageInput) (*domain.TravelPackage, error)
	SetAvailability(ctx context.Context, id string, available bool) (*domain.TravelPackage, error)
	AddActivity(ctx context.Context, packageID, activityID string) (*domain.TravelPackage, error)
	RemoveActivity(ctx context.Context, packageID, activityID string) (*domain.TravelPackage, error)
	AddItineraryDay(ctx context.Context, packageID string, in service.DayInput) (*domain.TravelPackage, error)
	RemoveItineraryDay(ctx context.Context, packageID string, n int) (*domain.TravelPackage, error)
	Delete(ctx context.Context, id string) error
	Bookings(ctx context.Context, id string) ([]*domain.Booking, error)
}

type BookingServicer interface {
	Create(ctx context.Context, in service.BookingInput) (*domain.Booking, error)
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	List(ctx context.Context) []*domain.Booking
	ByStatus(ctx context.Context, status domain.BookingStatus) []*domain.Booking
	ByCustomer(ctx context.Context, customerID string) []*domain.Booking
	ByPackage(ctx context.Context, packageID string) []*domain.Booking
	Update(ctx context.Context, id string, in service.BookingUpdate) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) (*domain.Booking, error)
	ProcessPayment(ctx context.Context, id string, in service.PaymentInput) (*domain.Booking, error)
	Cancel(ctx context.Context, id string) (*domain.Booking, error)
	Delete(ctx context.Context, id string) error
}

type ReviewServicer interface {
	Add(ctx context.Context, in service.ReviewInput) (*domain.Review, error)
	GetByID(ctx context.Context, id string) (*domain.Review, error)
	List(ctx context.Context) []*domain.Review
	ByPackage(ctx context.Context, packageID string) ([]*domain.Review, error)
	Update(ctx context.Context, id string, in service.ReviewUpdate) (*domain.Review, error)
	Delete(ctx context.Context, id string) error
}

type ReportServicer interface {
	RevenueByPackage(ctx context.Context) []domain.PackageRevenue
	BookingsByStatus(ctx context.Context, status domain.BookingStatus) []domain.BookingSummary
	TopRatedPackages(ctx context.Context) []domain.PackageRating
	CustomerHistory(ctx context.Context, customerID string) ([]domain.BookingSummary, error)
	PackagePopularity(ctx context.Context) []domain.PackagePopularity
}

// Services groups the dependencies of Server. Nil fields are allowed in
// tests that only exercise some routes.
type Services struct {
	Customers  CustomerServicer
	Activities ActivityServicer
	Packages   PackageServicer
	Bookings   BookingServicer
	Reviews    ReviewServicer
	Reports    ReportServicer
}

// Server serves every API endpoint.
type Server struct {
	customers  CustomerServicer
	activities ActivityServicer
	packages   PackageServicer
	bookings   BookingServicer
	reviews    ReviewServicer
	reports    ReportServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(svc Services) *Server {
	return &Server{
		customers:  svc.Customers,
		activities: svc.Activities,
		packages:   svc.Packages,
		bookings:   svc.Bookings,
		reviews:    svc.Reviews,
		reports:    svc.Reports,
	}
}

// Routes returns a chi router with every endpoint registered. Mount it on
// the top-level router that carries the middleware stack.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/customers", func(r chi.Router) {
		r.Get("/", s.ListCustomers)
		r.Post("/", s.CreateCustomer)
		r.Get("/{id}", s.GetCustomer)
		r.Put("/{id}", s.UpdateCustomer)
		r.Delete("/{id}", s.DeleteCustomer)
		r.Get("/{id}/bookings", s.ListCustomerBookings)
	})

	r.Route("/activities", func(r chi.Router) {
		r.Get("/", s.ListActivities)
		r.Post("/", s.CreateActivity)
		r.Get("/{id}", s.GetActivity)
		r.Put("/{id}", s.UpdateActivity)
		r.Delete("/{id}", s.DeleteActivity)
	})

	r.Route("/packages", func(r chi.Router) {
		r.Get("/", s.ListPackages)
		r.Post("/", s.CreatePackage)
		r.Get("/{id}", s.GetPackage)
		r.Put("/{id}", s.UpdatePackage)
		r.Delete("/{id}", s.DeletePackage)
		r.Put("/{id}/availability", s.SetPackageAvailability)
		r.Post("/{id}/activities", s.AddPackageActivity)
		r.Delete("/{id}/activities/{activityID}", s.RemovePackageActivity)
		r.Put("/{id}/itinerary/days", s.PutItineraryDay)
		r.Delete("/{id}/itinerary/days/{day}", s.DeleteItineraryDay)
		r.Get("/{id}/reviews", s.ListPackageReviews)
		r.Get("/{id}/bookings", s.ListPackageBookings)
	})

	r.Route("/bookings", func(r chi.Router) {
		r.Get("/", s.ListBookings)
		r.Post("/", s.CreateBooking)
		r.Get("/{id}", s.GetBooking)
		r.Put("/{id}", s.UpdateBooking)
		r.Delete("/{id}", s.DeleteBooking)
		r.Put("/{id}/status", s.UpdateBookingStatus)
		r.Post("/{id}/payment", s.ProcessPayment)
		r.Post("/{id}/cancel", s.CancelBooking)
	})

	r.Route("/reviews", func(r chi.Router) {
		r.Get("/", s.ListReviews)
		r.Post("/", s.CreateReview)
		r.Get("/{id}", s.GetReview)
		r.Put("/{id}", s.UpdateReview)
		r.Delete("/{id}", s.DeleteReview)
	})

	r.Route("/reports", func(r chi.Router) {
		r.Get("/revenue", s.GetRevenueReport)
		r.Get("/bookings-by-status", s.GetBookingsByStatusReport)
		r.Get("/top-rated", s.GetTopRatedReport)
		r.Get("/popularity", s.GetPopularityReport)
		r.Get("/customers/{id}/history", s.GetCustomerHistoryReport)
	})

	return r
}
