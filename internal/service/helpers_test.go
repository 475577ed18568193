package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-agency/internal/domain"
	"github.com/pkordes/travel-agency/internal/repo"
	"github.com/pkordes/travel-agency/internal/service"
	"github.com/pkordes/travel-agency/testutil"
)

// mockFlusher is a hand-written test double for repo.Flusher.
// It counts calls and returns err from every Save.
type mockFlusher struct {
	calls int
	err   error
}

func (m *mockFlusher) Save(_ context.Context) error {
	m.calls++
	return m.err
}

// compile-time check: mockFlusher must satisfy repo.Flusher.
var _ repo.Flusher = (*mockFlusher)(nil)

var testNow = time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)

// env wires every service to one set of in-memory collections and a
// counting flusher. Nothing touches disk.
type env struct {
	store      *repo.DataStore
	flusher    *mockFlusher
	customers  *service.CustomerService
	activities *service.ActivityService
	packages   *service.PackageService
	bookings   *service.BookingService
	reviews    *service.ReviewService
	reports    *service.ReportService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	s := testutil.NewStore(t)
	f := &mockFlusher{}
	clock := service.WithClock(func() time.Time { return testNow })
	return &env{
		store:      s,
		flusher:    f,
		customers:  service.NewCustomerService(s.Customers(), s.Bookings(), f),
		activities: service.NewActivityService(s.Activities(), s.Packages(), f),
		packages:   service.NewPackageService(s.Packages(), s.Activities(), s.Bookings(), f),
		bookings:   service.NewBookingService(s.Bookings(), s.Customers(), s.Packages(), f, clock),
		reviews:    service.NewReviewService(s.Reviews(), s.Customers(), s.Packages(), f, clock),
		reports:    service.NewReportService(s.Packages(), s.Customers(), s.Bookings()),
	}
}

// ---- fixtures --------------------------------------------------------------

func (e *env) customer(t *testing.T, name string) *domain.Customer {
	t.Helper()
	c, err := e.customers.Create(context.Background(), service.CustomerInput{
		Name: name, Email: name + "@example.com", Phone: "555-0100",
	})
	require.NoError(t, err)
	return c
}

func (e *env) activity(t *testing.T, name string, cost float64) *domain.Activity {
	t.Helper()
	a, err := e.activities.Create(context.Background(), service.ActivityInput{
		Name: name, Location: "Somewhere", Duration: 2, Cost: cost,
	})
	require.NoError(t, err)
	return a
}

func (e *env) pkg(t *testing.T, name string, basePrice float64) *domain.TravelPackage {
	t.Helper()
	p, err := e.packages.Create(context.Background(), service.PackageInput{
		Name: name, Destination: name, BasePrice: basePrice, Duration: 5, Accommodation: "Hotel",
	})
	require.NoError(t, err)
	return p
}

func (e *env) book(t *testing.T, c *domain.Customer, p *domain.TravelPackage, status domain.BookingStatus) *domain.Booking {
	t.Helper()
	b, err := e.bookings.Create(context.Background(), service.BookingInput{
		CustomerID: c.ID, PackageID: p.ID, Status: status, Travelers: 1,
	})
	require.NoError(t, err)
	return b
}
