package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pkordes/travel-agency/internal/domain"
)

// Save writes all five collections to the data directory. Each file is
// replaced atomically and independently: a failure on one file is logged
// and joined into the returned error (wrapping domain.ErrPersistence) while
// the others are still written. Files already written are not rolled back.
func (s *DataStore) Save(ctx context.Context) error {
	start := time.Now()
	defer func() { s.metrics.ObserveSave(time.Since(start)) }()

	writes := []struct {
		collection string
		file       string
		write      func(string) error
	}{
		{s.activities.Name(), ActivitiesFile, func(p string) error { return writeRecords(p, s.activityRecords()) }},
		{s.customers.Name(), CustomersFile, func(p string) error { return writeRecords(p, s.customerRecords()) }},
		{s.packages.Name(), PackagesFile, func(p string) error { return writeRecords(p, s.packageRecords()) }},
		{s.bookings.Name(), BookingsFile, func(p string) error { return writeRecords(p, s.bookingRecords()) }},
		{s.reviews.Name(), ReviewsFile, func(p string) error { return writeRecords(p, s.reviewRecords()) }},
	}

	var errs []error
	for _, w := range writes {
		if err := ctx.Err(); err != nil {
			errs = append(errs, fmt.Errorf("repo.DataStore.Save: %w", err))
			break
		}
		path := s.path(w.file)
		if err := w.write(path); err != nil {
			s.log.ErrorContext(ctx, "failed to write data file", "path", path, "error", err)
			s.metrics.FileError(w.collection, "write")
			errs = append(errs, fmt.Errorf("repo.DataStore.Save %s: %w: %w", w.file, domain.ErrPersistence, err))
		}
	}
	return errors.Join(errs...)
}

func (s *DataStore) activityRecords() []activityRecord {
	out := make([]activityRecord, 0, s.activities.Len())
	for _, a := range s.activities.items {
		out = append(out, activityRecord{
			ID:       a.ID,
			Name:     a.Name,
			Location: a.Location,
			Duration: a.Duration,
			Cost:     a.Cost,
		})
	}
	return out
}

func (s *DataStore) customerRecords() []customerRecord {
	out := make([]customerRecord, 0, s.customers.Len())
	for _, c := range s.customers.items {
		out = append(out, customerRecord{
			ID:      c.ID,
			Name:    c.Name,
			Email:   c.Email,
			Phone:   c.Phone,
			Address: c.Address,
		})
	}
	return out
}

func (s *DataStore) packageRecords() []packageRecord {
	out := make([]packageRecord, 0, s.packages.Len())
	for _, p := range s.packages.items {
		available := p.Available()
		rec := packageRecord{
			ID:            p.ID,
			Name:          p.Name,
			Description:   p.Description,
			BasePrice:     p.BasePrice,
			Destination:   p.Destination,
			Duration:      p.Duration,
			Accommodation: p.Accommodation,
			Available:     &available,
			Activities:    activityIDs(p.Activities()),
		}
		if it := p.Itinerary; it != nil {
			ir := &itineraryRecord{ID: it.ID, Name: it.Name, Days: []dayRecord{}}
			for _, d := range it.Days() {
				ir.Days = append(ir.Days, dayRecord{
					DayNumber:  d.Number,
					Notes:      d.Notes,
					Activities: activityIDs(d.Activities()),
				})
			}
			rec.Itinerary = ir
		}
		out = append(out, rec)
	}
	return out
}

func (s *DataStore) bookingRecords() []bookingRecord {
	out := make([]bookingRecord, 0, s.bookings.Len())
	for _, b := range s.bookings.items {
		travelers := b.NumTravelers()
		rec := bookingRecord{
			ID:              b.ID,
			CustomerID:      b.Customer.ID,
			ServiceID:       b.Service.Info().ID,
			Status:          string(b.Status),
			Date:            b.Date.Format(time.DateOnly),
			NumTravelers:    &travelers,
			SpecialRequests: b.SpecialRequests,
		}
		if p := b.Payment; p != nil {
			id := p.ID
			rec.PaymentID = &id
			rec.Payment = &paymentRecord{
				ID:     p.ID,
				Amount: p.Amount,
				Method: string(p.Method),
				Status: string(p.Status),
				Date:   p.Date,
			}
		}
		out = append(out, rec)
	}
	return out
}

func (s *DataStore) reviewRecords() []reviewRecord {
	out := make([]reviewRecord, 0, s.reviews.Len())
	for _, r := range s.reviews.items {
		rec := reviewRecord{
			ID:         r.ID,
			CustomerID: r.Customer.ID,
			Rating:     r.Rating(),
			Comment:    r.Comment,
			Date:       r.Date,
		}
		if r.PackageID != "" {
			id := r.PackageID
			rec.PackageID = &id
		}
		out = append(out, rec)
	}
	return out
}

func activityIDs(list []*domain.Activity) []string {
	ids := make([]string, 0, len(list))
	for _, a := range list {
		ids = append(ids, a.ID)
	}
	return ids
}
