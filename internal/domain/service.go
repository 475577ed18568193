package domain

// ServiceKind tags the TravelService variant.
type ServiceKind string

const (
	KindPackage    ServiceKind = "package"
	KindCustomTrip ServiceKind = "custom_trip"
)

// ServiceInfo holds the fields shared by every TravelService variant.
// Variants embed it, so p.ID, p.Name and friends are promoted.
type ServiceInfo struct {
	ID          string
	Name        string
	Description string
	BasePrice   float64
}

// Info returns the shared fields of the service.
func (s *ServiceInfo) Info() *ServiceInfo { return s }

// TravelService is anything sellable with a price.
//
// The set of variants is closed: *TravelPackage and *CustomTrip. Optional
// capabilities are discovered through AsBookable and AsReviewable rather than
// by inspecting the concrete type.
type TravelService interface {
	Info() *ServiceInfo
	Kind() ServiceKind
	TotalPrice() float64
	AsBookable() (Bookable, bool)
	AsReviewable() (Reviewable, bool)

	isTravelService()
}

// Bookable is a service whose availability can be checked and reserved.
type Bookable interface {
	Available() bool
	Reserve() bool
}

// Reviewable is a service that collects customer reviews.
type Reviewable interface {
	AddReview(r *Review) bool
	AverageRating() float64
	Reviews() []*Review
}

var (
	_ TravelService = (*TravelPackage)(nil)
	_ TravelService = (*CustomTrip)(nil)
	_ Bookable      = (*TravelPackage)(nil)
	_ Reviewable    = (*TravelPackage)(nil)
	_ Bookable      = (*CustomTrip)(nil)
)
