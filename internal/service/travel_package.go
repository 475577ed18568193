package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkordes/travel-agency/internal/domain"
	"github.com/pkordes/travel-agency/internal/repo"
)

// PackageInput carries the editable fields of a travel package.
type PackageInput struct {
	Name          string
	Description   string
	BasePrice     float64
	Destination   string
	Duration      int // days
	Accommodation string
}

// DayInput describes one itinerary day. ActivityIDs must all be in the
// package's activity pool.
type DayInput struct {
	Number      int
	Notes       string
	ActivityIDs []string
}

// PackageService implements business logic for travel packages, their
// activity pools and itineraries.
type PackageService struct {
	packages   repo.PackageRepo
	activities repo.ActivityRepo
	bookings   repo.BookingRepo
	flusher    repo.Flusher
}

// NewPackageService constructs a PackageService backed by the provided repos.
func NewPackageService(packages repo.PackageRepo, activities repo.ActivityRepo, bookings repo.BookingRepo, flusher repo.Flusher) *PackageService {
	return &PackageService{packages: packages, activities: activities, bookings: bookings, flusher: flusher}
}

// Create validates the input and adds a new, available package with an
// empty itinerary.
func (s *PackageService) Create(ctx context.Context, in PackageInput) (*domain.TravelPackage, error) {
	if err := validatePackage(in); err != nil {
		return nil, err
	}
	p := domain.NewTravelPackage(newID(prefixPackage, s.packages.Taken),
		strings.TrimSpace(in.Name), strings.TrimSpace(in.Description), in.BasePrice,
		strings.TrimSpace(in.Destination), in.Duration, strings.TrimSpace(in.Accommodation))
	if err := s.packages.Add(p); err != nil {
		return nil, fmt.Errorf("service.PackageService.Create: %w", err)
	}
	if err := flush(ctx, s.flusher, "service.PackageService.Create"); err != nil {
		return p, err
	}
	return p, nil
}

func (s *PackageService) GetByID(_ context.Context, id string) (*domain.TravelPackage, error) {
	p, err := s.packages.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("service.PackageService.GetByID: %w", err)
	}
	return p, nil
}

func (s *PackageService) List(_ context.Context) []*domain.TravelPackage {
	return s.packages.List()
}

// SearchByDestination returns packages whose destination contains q,
// ignoring case. Always returns a non-nil slice.
func (s *PackageService) SearchByDestination(_ context.Context, q string) []*domain.TravelPackage {
	out := []*domain.TravelPackage{}
	for _, p := range s.packages.List() {
		if containsFold(p.Destination, q) {
			out = append(out, p)
		}
	}
	return out
}

// Update overwrites the editable fields of a package. The activity pool,
// itinerary, reviews and availability are left as they are.
func (s *PackageService) Update(ctx context.Context, id string, in PackageInput) (*domain.TravelPackage, error) {
	p, err := s.packages.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("service.PackageService.Update: %w", err)
	}
	if err := validatePackage(in); err != nil {
		return nil, err
	}
	p.Name = strings.TrimSpace(in.Name)
	p.Description = strings.TrimSpace(in.Description)
	p.BasePrice = in.BasePrice
	p.Destination = strings.TrimSpace(in.Destination)
	p.Duration = in.Duration
	p.Accommodation = strings.TrimSpace(in.Accommodation)
	if err := flush(ctx, s.flusher, "service.PackageService.Update"); err != nil {
		return p, err
	}
	return p, nil
}

// SetAvailability opens or closes a package for new bookings.
func (s *PackageService) SetAvailability(ctx context.Context, id string, available bool) (*domain.TravelPackage, error) {
	p, err := s.packages.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("service.PackageService.SetAvailability: %w", err)
	}
	p.SetAvailable(available)
	if err := flush(ctx, s.flusher, "service.PackageService.SetAvailability"); err != nil {
		return p, err
	}
	return p, nil
}

// AddActivity puts an existing activity into the package's pool.
// Adding an activity that is already in the pool changes nothing.
func (s *PackageService) AddActivity(ctx context.Context, packageID, activityID string) (*domain.TravelPackage, error) {
	p, err := s.packages.GetByID(packageID)
	if err != nil {
		return nil, fmt.Errorf("service.PackageService.AddActivity: %w", err)
	}
	a, err := s.activities.GetByID(activityID)
	if err != nil {
		return nil, fmt.Errorf("service.PackageService.AddActivity: %w", err)
	}
	if !p.AddActivity(a) {
		return p, nil
	}
	if err := flush(ctx, s.flusher, "service.PackageService.AddActivity"); err != nil {
		return p, err
	}
	return p, nil
}

// RemoveActivity takes an activity out of the pool and off every itinerary day.
// Returns domain.ErrNotFound if the activity is not in the pool.
func (s *PackageService) RemoveActivity(ctx context.Context, packageID, activityID string) (*domain.TravelPackage, error) {
	p, err := s.packages.GetByID(packageID)
	if err != nil {
		return nil, fmt.Errorf("service.PackageService.RemoveActivity: %w", err)
	}
	if !p.RemoveActivity(activityID) {
		return nil, fmt.Errorf("service.PackageService.RemoveActivity %s: activity %s: %w", packageID, activityID, domain.ErrNotFound)
	}
	if err := flush(ctx, s.flusher, "service.PackageService.RemoveActivity"); err != nil {
		return p, err
	}
	return p, nil
}

// AddItineraryDay schedules a day in the package's itinerary, replacing any
// day with the same number.
// Returns domain.ErrValidation if the day number is below 1 or an activity
// is not in the package's pool.
func (s *PackageService) AddItineraryDay(ctx context.Context, packageID string, in DayInput) (*domain.TravelPackage, error) {
	p, err := s.packages.GetByID(packageID)
	if err != nil {
		return nil, fmt.Errorf("service.PackageService.AddItineraryDay: %w", err)
	}
	if in.Number < 1 {
		return nil, fmt.Errorf("%w: day number must be at least 1", domain.ErrValidation)
	}
	day := domain.NewItineraryDay(in.Number, strings.TrimSpace(in.Notes))
	for _, id := range in.ActivityIDs {
		if !p.HasActivity(id) {
			return nil, fmt.Errorf("%w: activity %s is not part of package %s", domain.ErrValidation, id, packageID)
		}
		a, err := s.activities.GetByID(id)
		if err != nil {
			return nil, fmt.Errorf("service.PackageService.AddItineraryDay: %w", err)
		}
		day.AddActivity(a)
	}
	if p.Itinerary == nil {
		p.Itinerary = domain.NewItinerary(p.ID+"-itinerary", p.Name+" Itinerary")
	}
	p.Itinerary.AddDay(day)
	if err := flush(ctx, s.flusher, "service.PackageService.AddItineraryDay"); err != nil {
		return p, err
	}
	return p, nil
}

// RemoveItineraryDay drops day n from the itinerary.
// Returns domain.ErrNotFound if there is no such day.
func (s *PackageService) RemoveItineraryDay(ctx context.Context, packageID string, n int) (*domain.TravelPackage, error) {
	p, err := s.packages.GetByID(packageID)
	if err != nil {
		return nil, fmt.Errorf("service.PackageService.RemoveItineraryDay: %w", err)
	}
	if p.Itinerary == nil || !p.Itinerary.RemoveDayByNumber(n) {
		return nil, fmt.Errorf("service.PackageService.RemoveItineraryDay %s: day %d: %w", packageID, n, domain.ErrNotFound)
	}
	if err := flush(ctx, s.flusher, "service.PackageService.RemoveItineraryDay"); err != nil {
		return p, err
	}
	return p, nil
}

// Delete removes a package. Returns domain.ErrInUse while any booking
// references it; the package then stays in the collection. Reviews of a
// deleted package are kept, detached from any package.
func (s *PackageService) Delete(ctx context.Context, id string) error {
	p, err := s.packages.GetByID(id)
	if err != nil {
		return fmt.Errorf("service.PackageService.Delete: %w", err)
	}
	if s.inUse(id) {
		return fmt.Errorf("service.PackageService.Delete %s: %w: package has bookings", id, domain.ErrInUse)
	}
	for _, r := range p.Reviews() {
		p.RemoveReview(r.ID)
	}
	if err := s.packages.Remove(id); err != nil {
		return fmt.Errorf("service.PackageService.Delete: %w", err)
	}
	return flush(ctx, s.flusher, "service.PackageService.Delete")
}

// InUse reports whether any booking references the package.
func (s *PackageService) InUse(_ context.Context, id string) (bool, error) {
	if _, err := s.packages.GetByID(id); err != nil {
		return false, fmt.Errorf("service.PackageService.InUse: %w", err)
	}
	return s.inUse(id), nil
}

// Bookings returns every booking of the package, in booking order.
func (s *PackageService) Bookings(_ context.Context, id string) ([]*domain.Booking, error) {
	if _, err := s.packages.GetByID(id); err != nil {
		return nil, fmt.Errorf("service.PackageService.Bookings: %w", err)
	}
	return bookingsWhere(s.bookings, bookedPackage(id)), nil
}

func (s *PackageService) inUse(id string) bool {
	return len(bookingsWhere(s.bookings, bookedPackage(id))) > 0
}

func bookedPackage(id string) func(*domain.Booking) bool {
	return func(b *domain.Booking) bool {
		p := b.Package()
		return p != nil && p.ID == id
	}
}

// validatePackage enforces the rules shared by Create and Update.
func validatePackage(in PackageInput) error {
	if blank(in.Name) {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if blank(in.Destination) {
		return fmt.Errorf("%w: destination is required", domain.ErrValidation)
	}
	if in.BasePrice < 0 {
		return fmt.Errorf("%w: base price must not be negative", domain.ErrValidation)
	}
	if in.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive", domain.ErrValidation)
	}
	return nil
}
