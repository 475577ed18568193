package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkordes/travel-agency/internal/domain"
	"github.com/pkordes/travel-agency/internal/repo"
)

// ReviewInput carries the fields of a new review.
// Rating is clamped into [domain.MinRating, domain.MaxRating].
type ReviewInput struct {
	PackageID  string
	CustomerID string
	Rating     int
	Comment    string
}

// ReviewUpdate carries the editable fields of an existing review.
type ReviewUpdate struct {
	Rating  int
	Comment string
}

// sampleReviews are added by SeedSamples, in order, to the first packages
// and customers of a dataset that has none.
var sampleReviews = []struct {
	pkg, customer, rating int
	comment               string
}{
	{0, 0, 5, "Excellent experience! The travel package exceeded my expectations. The accommodations were top-notch and the activities were well-organized."},
	{1, 1, 4, "Great package, but the weather wasn't ideal. Otherwise, the service was excellent."},
	{2, 0, 3, "Average experience. Some activities were fun, but others were disappointing."},
}

// ReviewService implements business logic for package reviews.
type ReviewService struct {
	reviews   repo.ReviewRepo
	customers repo.CustomerRepo
	packages  repo.PackageRepo
	flusher   repo.Flusher
	now       func() time.Time
}

// NewReviewService constructs a ReviewService backed by the provided repos.
func NewReviewService(reviews repo.ReviewRepo, customers repo.CustomerRepo, packages repo.PackageRepo, flusher repo.Flusher, opts ...Option) *ReviewService {
	o := buildOptions(opts)
	return &ReviewService{reviews: reviews, customers: customers, packages: packages, flusher: flusher, now: o.now}
}

// Add records a customer's review of a package.
// Returns domain.ErrNotFound if the package or customer does not exist.
func (s *ReviewService) Add(ctx context.Context, in ReviewInput) (*domain.Review, error) {
	r, err := s.add(in)
	if err != nil {
		return nil, fmt.Errorf("service.ReviewService.Add: %w", err)
	}
	if err := flush(ctx, s.flusher, "service.ReviewService.Add"); err != nil {
		return r, err
	}
	return r, nil
}

func (s *ReviewService) add(in ReviewInput) (*domain.Review, error) {
	p, err := s.packages.GetByID(in.PackageID)
	if err != nil {
		return nil, err
	}
	c, err := s.customers.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	r := domain.NewReview(newID(prefixReview, s.reviews.Taken), c, in.Rating, strings.TrimSpace(in.Comment), s.now())
	if err := s.reviews.Add(r); err != nil {
		return nil, err
	}
	p.AddReview(r)
	return r, nil
}

func (s *ReviewService) GetByID(_ context.Context, id string) (*domain.Review, error) {
	r, err := s.reviews.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("service.ReviewService.GetByID: %w", err)
	}
	return r, nil
}

func (s *ReviewService) List(_ context.Context) []*domain.Review {
	return s.reviews.List()
}

// ByPackage returns the reviews attached to a package.
func (s *ReviewService) ByPackage(_ context.Context, packageID string) ([]*domain.Review, error) {
	p, err := s.packages.GetByID(packageID)
	if err != nil {
		return nil, fmt.Errorf("service.ReviewService.ByPackage: %w", err)
	}
	return p.Reviews(), nil
}

// Update changes a review's rating and comment. The rating is clamped.
func (s *ReviewService) Update(ctx context.Context, id string, in ReviewUpdate) (*domain.Review, error) {
	r, err := s.reviews.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("service.ReviewService.Update: %w", err)
	}
	r.SetRating(in.Rating)
	r.Comment = strings.TrimSpace(in.Comment)
	if err := flush(ctx, s.flusher, "service.ReviewService.Update"); err != nil {
		return r, err
	}
	return r, nil
}

// Delete removes a review and detaches it from its package.
func (s *ReviewService) Delete(ctx context.Context, id string) error {
	r, err := s.reviews.GetByID(id)
	if err != nil {
		return fmt.Errorf("service.ReviewService.Delete: %w", err)
	}
	if r.PackageID != "" {
		if p, err := s.packages.GetByID(r.PackageID); err == nil {
			p.RemoveReview(id)
		}
	}
	if err := s.reviews.Remove(id); err != nil {
		return fmt.Errorf("service.ReviewService.Delete: %w", err)
	}
	return flush(ctx, s.flusher, "service.ReviewService.Delete")
}

// SeedSamples adds up to three sample reviews when the dataset has
// customers and packages but no reviews, and flushes once. It returns the
// reviews added, which is empty when the dataset did not qualify.
func (s *ReviewService) SeedSamples(ctx context.Context) ([]*domain.Review, error) {
	customers := s.customers.List()
	packages := s.packages.List()
	if s.reviews.Len() > 0 || len(customers) == 0 || len(packages) == 0 {
		return []*domain.Review{}, nil
	}

	added := []*domain.Review{}
	for _, sample := range sampleReviews {
		if sample.pkg >= len(packages) || sample.customer >= len(customers) {
			break
		}
		r, err := s.add(ReviewInput{
			PackageID:  packages[sample.pkg].ID,
			CustomerID: customers[sample.customer].ID,
			Rating:     sample.rating,
			Comment:    sample.comment,
		})
		if err != nil {
			return added, fmt.Errorf("service.ReviewService.SeedSamples: %w", err)
		}
		added = append(added, r)
	}
	if err := flush(ctx, s.flusher, "service.ReviewService.SeedSamples"); err != nil {
		return added, err
	}
	return added, nil
}
