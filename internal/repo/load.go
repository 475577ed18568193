package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pkordes/travel-agency/internal/domain"
)

// Skip reasons reported in logs and the records_skipped_total metric.
const (
	skipDuplicateID     = "duplicate_id"
	skipUnknownCustomer = "unknown_customer"
	skipUnknownService  = "unknown_service"
	skipUnknownStatus   = "unknown_status"
)

// Load replaces the in-memory state with the contents of the data
// directory. Files are read in dependency order so every reference can be
// resolved against collections loaded before it.
//
// A missing file loads as an empty collection. A file that cannot be read
// or parsed is logged and leaves its collection empty; the remaining files
// are still loaded and every such failure is joined into the returned error,
// each wrapping domain.ErrPersistence. Records whose references do not
// resolve are skipped.
func (s *DataStore) Load(ctx context.Context) error {
	s.activities.reset()
	s.customers.reset()
	s.packages.reset()
	s.bookings.reset()
	s.reviews.reset()

	stages := []struct {
		file string
		load func(context.Context, string) (int, error)
	}{
		{ActivitiesFile, s.loadActivities},
		{CustomersFile, s.loadCustomers},
		{PackagesFile, s.loadPackages},
		{BookingsFile, s.loadBookings},
		{ReviewsFile, s.loadReviews},
	}

	var errs []error
	for _, st := range stages {
		if err := ctx.Err(); err != nil {
			errs = append(errs, fmt.Errorf("repo.DataStore.Load: %w", err))
			break
		}
		skipped, err := st.load(ctx, s.path(st.file))
		if err != nil {
			errs = append(errs, fmt.Errorf("repo.DataStore.Load %s: %w: %w", st.file, domain.ErrPersistence, err))
		}
		if skipped > 0 {
			s.log.WarnContext(ctx, "skipped records during load", "file", st.file, "skipped", skipped)
		}
	}

	s.metrics.Loaded(s.activities.Name(), s.activities.Len())
	s.metrics.Loaded(s.customers.Name(), s.customers.Len())
	s.metrics.Loaded(s.packages.Name(), s.packages.Len())
	s.metrics.Loaded(s.bookings.Name(), s.bookings.Len())
	s.metrics.Loaded(s.reviews.Name(), s.reviews.Len())

	s.log.InfoContext(ctx, "data loaded",
		"dir", s.dir,
		"activities", s.activities.Len(),
		"customers", s.customers.Len(),
		"packages", s.packages.Len(),
		"bookings", s.bookings.Len(),
		"reviews", s.reviews.Len(),
	)
	return errors.Join(errs...)
}

// read decodes one data file, reporting read failures to logs and metrics.
func read[T any](ctx context.Context, s *DataStore, collection, path string) ([]T, error) {
	records, found, err := readRecords[T](path)
	if err != nil {
		s.log.ErrorContext(ctx, "failed to read data file", "path", path, "error", err)
		s.metrics.FileError(collection, "read")
		return nil, err
	}
	if !found {
		s.log.DebugContext(ctx, "data file not found, starting empty", "path", path)
	}
	return records, nil
}

// add inserts item, turning a duplicate ID into a skipped record.
func add[T any](ctx context.Context, s *DataStore, c *Collection[T], item T, id string) bool {
	if err := c.Add(item); err != nil {
		s.skip(ctx, c.Name(), id, skipDuplicateID)
		return false
	}
	return true
}

func (s *DataStore) skip(ctx context.Context, collection, id, reason string) {
	s.log.WarnContext(ctx, "skipping record", "collection", collection, "id", id, "reason", reason)
	s.metrics.Skipped(collection, reason)
}

func (s *DataStore) loadActivities(ctx context.Context, path string) (int, error) {
	records, err := read[activityRecord](ctx, s, s.activities.Name(), path)
	if err != nil {
		return 0, err
	}
	var skipped int
	for _, rec := range records {
		a := domain.NewActivity(rec.ID, rec.Name, rec.Location, rec.Duration, rec.Cost)
		if !add(ctx, s, s.activities, a, rec.ID) {
			skipped++
		}
	}
	return skipped, nil
}

func (s *DataStore) loadCustomers(ctx context.Context, path string) (int, error) {
	records, err := read[customerRecord](ctx, s, s.customers.Name(), path)
	if err != nil {
		return 0, err
	}
	var skipped int
	for _, rec := range records {
		c := domain.NewCustomer(rec.ID, rec.Name, rec.Email, rec.Phone, rec.Address)
		if !add(ctx, s, s.customers, c, rec.ID) {
			skipped++
		}
	}
	return skipped, nil
}

// loadPackages rebuilds each package with its activity pool and itinerary.
// Activity IDs that do not resolve are dropped silently; the package is kept.
func (s *DataStore) loadPackages(ctx context.Context, path string) (int, error) {
	records, err := read[packageRecord](ctx, s, s.packages.Name(), path)
	if err != nil {
		return 0, err
	}
	var skipped int
	for _, rec := range records {
		p := domain.NewTravelPackage(rec.ID, rec.Name, rec.Description, rec.BasePrice,
			rec.Destination, rec.Duration, rec.Accommodation)
		if rec.Available != nil {
			p.SetAvailable(*rec.Available)
		}
		for _, id := range rec.Activities {
			if a, ok := s.activities.lookup(id); ok {
				p.AddActivity(a)
			}
		}
		if rec.Itinerary != nil {
			it := domain.NewItinerary(rec.Itinerary.ID, rec.Itinerary.Name)
			for _, dr := range rec.Itinerary.Days {
				day := domain.NewItineraryDay(dr.DayNumber, dr.Notes)
				for _, id := range dr.Activities {
					if a, ok := s.activities.lookup(id); ok {
						day.AddActivity(a)
					}
				}
				it.AddDay(day)
			}
			p.Itinerary = it
		}
		if !add(ctx, s, s.packages, p, rec.ID) {
			skipped++
		}
	}
	return skipped, nil
}

// loadBookings resolves each booking's customer and service and registers
// the booking on its customer. Bookings whose customer, service or status
// do not resolve are skipped.
func (s *DataStore) loadBookings(ctx context.Context, path string) (int, error) {
	records, err := read[bookingRecord](ctx, s, s.bookings.Name(), path)
	if err != nil {
		return 0, err
	}
	var skipped int
	for _, rec := range records {
		customer, ok := s.customers.lookup(rec.CustomerID)
		if !ok {
			s.skip(ctx, s.bookings.Name(), rec.ID, skipUnknownCustomer)
			skipped++
			continue
		}
		service, ok := s.packages.lookup(rec.ServiceID)
		if !ok {
			s.skip(ctx, s.bookings.Name(), rec.ID, skipUnknownService)
			skipped++
			continue
		}
		status, err := domain.ParseBookingStatus(rec.Status)
		if err != nil {
			s.skip(ctx, s.bookings.Name(), rec.ID, skipUnknownStatus)
			skipped++
			continue
		}

		date := s.parseDate(rec.Date)
		var travelers int
		if rec.NumTravelers != nil {
			travelers = *rec.NumTravelers
		}
		b := domain.NewBooking(rec.ID, customer, service, date, status, travelers, rec.SpecialRequests)
		b.AttachPayment(s.restorePayment(rec, service, date))

		if !add(ctx, s, s.bookings, b, rec.ID) {
			skipped++
			continue
		}
		customer.AddBooking(b)
	}
	return skipped, nil
}

// restorePayment rebuilds a booking's payment. Files written before the
// full payment object was persisted only carry paymentId; for those the
// payment is reconstructed as a completed credit card payment of the
// service's current total price.
func (s *DataStore) restorePayment(rec bookingRecord, service domain.TravelService, date time.Time) *domain.Payment {
	if pr := rec.Payment; pr != nil {
		method, err := domain.ParsePaymentMethod(pr.Method)
		if err != nil {
			method = domain.MethodCreditCard
		}
		status, err := domain.ParsePaymentStatus(pr.Status)
		if err != nil {
			status = domain.PaymentCompleted
		}
		at := pr.Date
		if at.IsZero() {
			at = date
		}
		p := domain.NewPayment(pr.ID, pr.Amount, method, at)
		p.Status = status
		return p
	}
	if rec.PaymentID == nil || *rec.PaymentID == "" {
		return nil
	}
	p := domain.NewPayment(*rec.PaymentID, service.TotalPrice(), domain.MethodCreditCard, date)
	p.Status = domain.PaymentCompleted
	return p
}

// loadReviews attaches each review to its package. A review whose package
// does not resolve is kept unattached; one whose customer does not resolve
// is skipped.
func (s *DataStore) loadReviews(ctx context.Context, path string) (int, error) {
	records, err := read[reviewRecord](ctx, s, s.reviews.Name(), path)
	if err != nil {
		return 0, err
	}
	var skipped int
	for _, rec := range records {
		customer, ok := s.customers.lookup(rec.CustomerID)
		if !ok {
			s.skip(ctx, s.reviews.Name(), rec.ID, skipUnknownCustomer)
			skipped++
			continue
		}
		at := rec.Date
		if at.IsZero() {
			at = s.now()
		}
		r := domain.NewReview(rec.ID, customer, rec.Rating, rec.Comment, at)
		if !add(ctx, s, s.reviews, r, rec.ID) {
			skipped++
			continue
		}
		if rec.PackageID != nil {
			if p, ok := s.packages.lookup(*rec.PackageID); ok {
				p.AddReview(r)
			}
		}
	}
	return skipped, nil
}

// parseDate reads a yyyy-MM-dd date, falling back to the current time.
func (s *DataStore) parseDate(v string) time.Time {
	t, err := time.Parse(time.DateOnly, v)
	if err != nil {
		return s.now()
	}
	return t
}
