package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkordes/travel-agency/internal/domain"
	"github.com/pkordes/travel-agency/internal/repo"
)

// ActivityInput carries the editable fields of an activity.
type ActivityInput struct {
	Name     string
	Location string
	Duration int // hours
	Cost     float64
}

// ActivityService implements business logic for activities.
// It holds the packages repo because deleting an activity detaches it from
// every package pool and itinerary day.
type ActivityService struct {
	activities repo.ActivityRepo
	packages   repo.PackageRepo
	flusher    repo.Flusher
}

// NewActivityService constructs an ActivityService backed by the provided repos.
func NewActivityService(activities repo.ActivityRepo, packages repo.PackageRepo, flusher repo.Flusher) *ActivityService {
	return &ActivityService{activities: activities, packages: packages, flusher: flusher}
}

// Create validates the input and adds a new activity.
func (s *ActivityService) Create(ctx context.Context, in ActivityInput) (*domain.Activity, error) {
	if err := validateActivity(in); err != nil {
		return nil, err
	}
	a := domain.NewActivity(newID(prefixActivity, s.activities.Taken),
		strings.TrimSpace(in.Name), strings.TrimSpace(in.Location), in.Duration, in.Cost)
	if err := s.activities.Add(a); err != nil {
		return nil, fmt.Errorf("service.ActivityService.Create: %w", err)
	}
	if err := flush(ctx, s.flusher, "service.ActivityService.Create"); err != nil {
		return a, err
	}
	return a, nil
}

func (s *ActivityService) GetByID(_ context.Context, id string) (*domain.Activity, error) {
	a, err := s.activities.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("service.ActivityService.GetByID: %w", err)
	}
	return a, nil
}

func (s *ActivityService) List(_ context.Context) []*domain.Activity {
	return s.activities.List()
}

// Update overwrites the editable fields of an activity. Package prices that
// include it change accordingly, since packages share the same activity.
func (s *ActivityService) Update(ctx context.Context, id string, in ActivityInput) (*domain.Activity, error) {
	a, err := s.activities.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("service.ActivityService.Update: %w", err)
	}
	if err := validateActivity(in); err != nil {
		return nil, err
	}
	a.Name = strings.TrimSpace(in.Name)
	a.Location = strings.TrimSpace(in.Location)
	a.Duration = in.Duration
	a.Cost = in.Cost
	if err := flush(ctx, s.flusher, "service.ActivityService.Update"); err != nil {
		return a, err
	}
	return a, nil
}

// Delete detaches the activity from every package and itinerary day, then
// removes it.
func (s *ActivityService) Delete(ctx context.Context, id string) error {
	if _, err := s.activities.GetByID(id); err != nil {
		return fmt.Errorf("service.ActivityService.Delete: %w", err)
	}
	for _, p := range s.packages.List() {
		p.RemoveActivity(id)
	}
	if err := s.activities.Remove(id); err != nil {
		return fmt.Errorf("service.ActivityService.Delete: %w", err)
	}
	return flush(ctx, s.flusher, "service.ActivityService.Delete")
}

// validateActivity enforces the rules shared by Create and Update.
//   - Name must be non-empty.
//   - Duration must be positive.
//   - Cost must not be negative.
func validateActivity(in ActivityInput) error {
	if blank(in.Name) {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if in.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive", domain.ErrValidation)
	}
	if in.Cost < 0 {
		return fmt.Errorf("%w: cost must not be negative", domain.ErrValidation)
	}
	return nil
}
