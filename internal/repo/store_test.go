package repo_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-agency/internal/domain"
	"github.com/pkordes/travel-agency/internal/metrics"
	"github.com/pkordes/travel-agency/internal/repo"
	"github.com/pkordes/travel-agency/testutil"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

// reload opens a second store on the same directory and loads it.
func reload(t *testing.T, dir string) *repo.DataStore {
	t.Helper()
	s, err := repo.New(dir, repo.WithLogger(testutil.Logger()), repo.WithClock(clock))
	require.NoError(t, err)
	require.NoError(t, s.Load(context.Background()))
	return s
}

// populate builds a small graph: two activities in one package with a
// two-day itinerary, one customer with a paid booking, and one review.
func populate(t *testing.T, s *repo.DataStore) {
	t.Helper()
	a1 := domain.NewActivity("A1", "Snorkeling", "Bay", 3, 100)
	a2 := domain.NewActivity("A2", "Hike", "Volcano", 5, 150)
	require.NoError(t, s.Activities().Add(a1))
	require.NoError(t, s.Activities().Add(a2))

	c := domain.NewCustomer("C1", "Alice", "alice@example.com", "555", "1 Main St")
	require.NoError(t, s.Customers().Add(c))

	p := domain.NewTravelPackage("P1", "Hawaii", "Sun", 800, "Hawaii", 7, "Resort")
	p.AddActivity(a1)
	p.AddActivity(a2)
	d3 := domain.NewItineraryDay(3, "hike day")
	d3.AddActivity(a2)
	d1 := domain.NewItineraryDay(1, "arrival")
	d1.AddActivity(a1)
	p.Itinerary.AddDay(d3)
	p.Itinerary.AddDay(d1)
	p.SetAvailable(false)
	require.NoError(t, s.Packages().Add(p))

	b := domain.NewBooking("B1", c, p, time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC), domain.BookingPending, 2, "window seat")
	b.AttachPayment(domain.NewPayment("PMT1", 1050, domain.MethodPayPal, fixedNow))
	require.True(t, b.Confirm())
	require.NoError(t, s.Bookings().Add(b))
	c.AddBooking(b)

	r := domain.NewReview("R1", c, 4, "Great", fixedNow)
	p.AddReview(r)
	require.NoError(t, s.Reviews().Add(r))

	orphan := domain.NewReview("R2", c, 3, "No package", fixedNow)
	require.NoError(t, s.Reviews().Add(orphan))
}

func TestNew_CreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	s, err := repo.New(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, dir, s.Dir())
}

func TestLoad_MissingFiles(t *testing.T) {
	s := testutil.NewStore(t)

	require.NoError(t, s.Load(context.Background()))

	assert.Zero(t, s.Activities().Len())
	assert.Zero(t, s.Customers().Len())
	assert.Zero(t, s.Packages().Len())
	assert.Zero(t, s.Bookings().Len())
	assert.Zero(t, s.Reviews().Len())
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	s := testutil.NewStore(t, repo.WithClock(clock))
	populate(t, s)
	require.NoError(t, s.Save(context.Background()))

	got := reload(t, s.Dir())

	p, err := got.Packages().GetByID("P1")
	require.NoError(t, err)
	assert.Equal(t, "Hawaii", p.Destination)
	assert.False(t, p.Available())
	assert.InDelta(t, 1050.0, p.TotalPrice(), 0.001)
	assert.Equal(t, "P1-itinerary", p.Itinerary.ID)

	days := p.Itinerary.Days()
	require.Len(t, days, 2)
	assert.Equal(t, 1, days[0].Number)
	assert.Equal(t, 3, days[1].Number)
	assert.Equal(t, "hike day", days[1].Notes)
	require.Len(t, days[1].Activities(), 1)

	a2, err := got.Activities().GetByID("A2")
	require.NoError(t, err)
	assert.Same(t, a2, days[1].Activities()[0], "days share activity pointers with the collection")

	b, err := got.Bookings().GetByID("B1")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, b.Status)
	assert.Equal(t, 2, b.NumTravelers())
	assert.Equal(t, "window seat", b.SpecialRequests)
	assert.Same(t, p, b.Package())
	require.NotNil(t, b.Payment)
	assert.Equal(t, domain.MethodPayPal, b.Payment.Method)
	assert.Equal(t, domain.PaymentCompleted, b.Payment.Status)
	assert.True(t, fixedNow.Equal(b.Payment.Date))

	c, err := got.Customers().GetByID("C1")
	require.NoError(t, err)
	require.Len(t, c.Bookings(), 1)
	assert.Same(t, b, c.Bookings()[0])

	require.Len(t, p.Reviews(), 1)
	assert.Equal(t, "R1", p.Reviews()[0].ID)
	assert.Equal(t, "P1", p.Reviews()[0].PackageID)

	orphan, err := got.Reviews().GetByID("R2")
	require.NoError(t, err)
	assert.Empty(t, orphan.PackageID)
}

func TestSave_PersistedShape(t *testing.T) {
	s := testutil.NewStore(t)
	populate(t, s)
	require.NoError(t, s.Save(context.Background()))

	bookings := testutil.ReadRecords(t, s.Dir(), repo.BookingsFile)
	require.Len(t, bookings, 1)
	assert.Equal(t, "C1", bookings[0]["customerId"])
	assert.Equal(t, "P1", bookings[0]["serviceId"])
	assert.Equal(t, "2026-06-15", bookings[0]["date"])
	assert.Equal(t, "PMT1", bookings[0]["paymentId"])
	assert.Equal(t, "CONFIRMED", bookings[0]["status"])

	reviews := testutil.ReadRecords(t, s.Dir(), repo.ReviewsFile)
	require.Len(t, reviews, 2)
	assert.Equal(t, "P1", reviews[0]["packageId"])
	v, ok := reviews[1]["packageId"]
	assert.True(t, ok, "packageId is written even when empty")
	assert.Nil(t, v)

	packages := testutil.ReadRecords(t, s.Dir(), repo.PackagesFile)
	require.Len(t, packages, 1)
	assert.Equal(t, []any{"A1", "A2"}, packages[0]["activities"])
	itinerary, ok := packages[0]["itinerary"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, itinerary["days"], 2)
}

func TestSave_BookingWithoutPaymentWritesNull(t *testing.T) {
	s := testutil.NewStore(t)
	c := domain.NewCustomer("C1", "Alice", "a@x.com", "", "")
	p := domain.NewTravelPackage("P1", "Trip", "", 100, "X", 1, "")
	require.NoError(t, s.Customers().Add(c))
	require.NoError(t, s.Packages().Add(p))
	require.NoError(t, s.Bookings().Add(domain.NewBooking("B1", c, p, fixedNow, "", 1, "")))

	require.NoError(t, s.Save(context.Background()))

	bookings := testutil.ReadRecords(t, s.Dir(), repo.BookingsFile)
	require.Len(t, bookings, 1)
	v, ok := bookings[0]["paymentId"]
	assert.True(t, ok)
	assert.Nil(t, v)
	assert.NotContains(t, bookings[0], "payment")
}

func TestSave_NoTempFilesLeft(t *testing.T) {
	s := testutil.NewStore(t)
	populate(t, s)
	require.NoError(t, s.Save(context.Background()))
	require.NoError(t, s.Save(context.Background()))

	entries, err := os.ReadDir(s.Dir())
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, repo.DataFiles(), names)
}

func TestSave_OneFileFailsOthersWritten(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	s := testutil.NewStore(t, repo.WithMetrics(metrics.NewPersistence(reg)))
	populate(t, s)

	// A directory in place of bookings.json makes the rename fail.
	require.NoError(t, os.Mkdir(filepath.Join(s.Dir(), repo.BookingsFile), 0o755))

	err := s.Save(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.Contains(t, err.Error(), repo.BookingsFile)

	for _, f := range []string{repo.ActivitiesFile, repo.CustomersFile, repo.PackagesFile, repo.ReviewsFile} {
		assert.FileExists(t, filepath.Join(s.Dir(), f))
	}
	n, gerr := promtestutil.GatherAndCount(reg, "travel_agency_store_file_errors_total")
	require.NoError(t, gerr)
	assert.Equal(t, 1, n)
}

func TestLoad_LegacyBookingSynthesisesPayment(t *testing.T) {
	s := testutil.NewStore(t)
	dir := s.Dir()
	testutil.WriteJSON(t, dir, repo.ActivitiesFile, []map[string]any{
		{"id": "A1", "name": "Snorkel", "location": "Bay", "duration": 3, "cost": 100.0},
		{"id": "A2", "name": "Hike", "location": "Volcano", "duration": 5, "cost": 150.0},
	})
	testutil.WriteJSON(t, dir, repo.CustomersFile, []map[string]any{
		{"id": "C1", "name": "Alice", "email": "a@x.com", "phone": "1"},
	})
	testutil.WriteJSON(t, dir, repo.PackagesFile, []map[string]any{
		{"id": "P1", "name": "Hawaii", "description": "", "basePrice": 800.0, "destination": "Hawaii",
			"duration": 7, "accommodation": "Resort", "activities": []string{"A1", "A2"}},
	})
	testutil.WriteJSON(t, dir, repo.BookingsFile, []map[string]any{
		{"id": "B1", "customerId": "C1", "serviceId": "P1", "status": "CONFIRMED",
			"date": "2026-06-15", "paymentId": "PMT9"},
	})

	require.NoError(t, s.Load(context.Background()))

	c, err := s.Customers().GetByID("C1")
	require.NoError(t, err)
	assert.Empty(t, c.Address, "absent address loads as empty")

	p, err := s.Packages().GetByID("P1")
	require.NoError(t, err)
	assert.True(t, p.Available(), "absent flag means available")
	assert.Equal(t, "P1-itinerary", p.Itinerary.ID, "absent itinerary keeps the default")

	b, err := s.Bookings().GetByID("B1")
	require.NoError(t, err)
	assert.Equal(t, 1, b.NumTravelers())
	require.NotNil(t, b.Payment)
	assert.Equal(t, "PMT9", b.Payment.ID)
	assert.InDelta(t, 1050.0, b.Payment.Amount, 0.001)
	assert.Equal(t, domain.MethodCreditCard, b.Payment.Method)
	assert.Equal(t, domain.PaymentCompleted, b.Payment.Status)
}

func TestLoad_SkipsUnresolvedRecords(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	s := testutil.NewStore(t, repo.WithMetrics(metrics.NewPersistence(reg)))
	dir := s.Dir()
	testutil.WriteJSON(t, dir, repo.ActivitiesFile, []map[string]any{
		{"id": "A1", "name": "Snorkel", "location": "Bay", "duration": 3, "cost": 100.0},
	})
	testutil.WriteJSON(t, dir, repo.CustomersFile, []map[string]any{
		{"id": "C1", "name": "Alice", "email": "a@x.com", "phone": "1", "address": nil},
	})
	testutil.WriteJSON(t, dir, repo.PackagesFile, []map[string]any{
		{"id": "P1", "name": "Hawaii", "basePrice": 800.0, "destination": "Hawaii", "duration": 7,
			"activities": []string{"A1", "GONE"},
			"itinerary": map[string]any{"id": "I1", "name": "Plan", "days": []map[string]any{
				{"dayNumber": 1, "notes": "", "activities": []string{"GONE", "A1"}},
			}}},
	})
	testutil.WriteJSON(t, dir, repo.BookingsFile, []map[string]any{
		{"id": "B1", "customerId": "C1", "serviceId": "P1", "status": "PENDING", "date": "2026-01-01", "paymentId": nil},
		{"id": "B2", "customerId": "NOPE", "serviceId": "P1", "status": "PENDING", "date": "2026-01-01", "paymentId": nil},
		{"id": "B3", "customerId": "C1", "serviceId": "NOPE", "status": "PENDING", "date": "2026-01-01", "paymentId": nil},
		{"id": "B4", "customerId": "C1", "serviceId": "P1", "status": "ON_HOLD", "date": "2026-01-01", "paymentId": nil},
		{"id": "B1", "customerId": "C1", "serviceId": "P1", "status": "PENDING", "date": "2026-01-01", "paymentId": nil},
	})
	testutil.WriteJSON(t, dir, repo.ReviewsFile, []map[string]any{
		{"id": "R1", "customerId": "C1", "rating": 9, "comment": "clamped", "packageId": "P1"},
		{"id": "R2", "customerId": "C1", "rating": 2, "comment": "lost package", "packageId": "NOPE"},
		{"id": "R3", "customerId": "NOPE", "rating": 2, "comment": "lost customer", "packageId": "P1"},
	})

	require.NoError(t, s.Load(context.Background()))

	p, err := s.Packages().GetByID("P1")
	require.NoError(t, err)
	require.Len(t, p.Activities(), 1)
	assert.Equal(t, "A1", p.Activities()[0].ID)
	require.NotNil(t, p.Itinerary.Day(1))
	assert.Len(t, p.Itinerary.Day(1).Activities(), 1)

	assert.Equal(t, 1, s.Bookings().Len())
	c, _ := s.Customers().GetByID("C1")
	assert.Len(t, c.Bookings(), 1)

	assert.Equal(t, 2, s.Reviews().Len())
	require.Len(t, p.Reviews(), 1)
	assert.Equal(t, domain.MaxRating, p.Reviews()[0].Rating())
	r2, err := s.Reviews().GetByID("R2")
	require.NoError(t, err)
	assert.Empty(t, r2.PackageID)

	// bookings: unknown_customer, unknown_service, unknown_status, duplicate_id
	// reviews: unknown_customer
	n, err := promtestutil.GatherAndCount(reg, "travel_agency_store_records_skipped_total")
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestLoad_CorruptFileDoesNotStopOthers(t *testing.T) {
	s := testutil.NewStore(t)
	testutil.WriteRaw(t, s.Dir(), repo.ActivitiesFile, "{not json")
	testutil.WriteJSON(t, s.Dir(), repo.CustomersFile, []map[string]any{
		{"id": "C1", "name": "Alice", "email": "a@x.com", "phone": "1", "address": "x"},
	})

	err := s.Load(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.Contains(t, err.Error(), repo.ActivitiesFile)
	assert.Zero(t, s.Activities().Len())
	assert.Equal(t, 1, s.Customers().Len())
}

func TestLoad_BadDateFallsBackToClock(t *testing.T) {
	s := testutil.NewStore(t, repo.WithClock(clock))
	testutil.WriteJSON(t, s.Dir(), repo.CustomersFile, []map[string]any{
		{"id": "C1", "name": "Alice", "email": "a@x.com", "phone": "1"},
	})
	testutil.WriteJSON(t, s.Dir(), repo.PackagesFile, []map[string]any{
		{"id": "P1", "name": "Trip", "basePrice": 10.0, "destination": "X", "duration": 1},
	})
	testutil.WriteJSON(t, s.Dir(), repo.BookingsFile, []map[string]any{
		{"id": "B1", "customerId": "C1", "serviceId": "P1", "status": "canceled", "date": "15/06/2026", "paymentId": nil},
	})

	require.NoError(t, s.Load(context.Background()))

	b, err := s.Bookings().GetByID("B1")
	require.NoError(t, err)
	assert.True(t, fixedNow.Equal(b.Date))
	assert.Equal(t, domain.BookingCancelled, b.Status, "CANCELED alias accepted")
	assert.Nil(t, b.Payment)
}

func TestLoad_ReplacesPreviousState(t *testing.T) {
	s := testutil.NewStore(t)
	populate(t, s)
	require.NoError(t, s.Save(context.Background()))

	require.NoError(t, s.Load(context.Background()))
	require.NoError(t, s.Load(context.Background()))

	assert.Equal(t, 2, s.Activities().Len())
	assert.Equal(t, 1, s.Bookings().Len())
	c, err := s.Customers().GetByID("C1")
	require.NoError(t, err)
	assert.Len(t, c.Bookings(), 1)
}

func TestBootstrap(t *testing.T) {
	fsys := fstest.MapFS{
		repo.ActivitiesFile: {Data: []byte(`[{"id":"A1","name":"x","location":"y","duration":1,"cost":1}]`)},
		repo.CustomersFile:  {Data: []byte(`[]`)},
	}

	t.Run("copies into an empty directory", func(t *testing.T) {
		s := testutil.NewStore(t)

		copied, err := s.Bootstrap(context.Background(), fsys)

		require.NoError(t, err)
		assert.True(t, copied)
		require.NoError(t, s.Load(context.Background()))
		assert.Equal(t, 1, s.Activities().Len())
	})

	t.Run("leaves an existing dataset alone", func(t *testing.T) {
		s := testutil.NewStore(t)
		testutil.WriteRaw(t, s.Dir(), repo.ReviewsFile, "[]")

		copied, err := s.Bootstrap(context.Background(), fsys)

		require.NoError(t, err)
		assert.False(t, copied)
		assert.NoFileExists(t, filepath.Join(s.Dir(), repo.ActivitiesFile))
	})
}
