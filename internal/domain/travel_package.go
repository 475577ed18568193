package domain

import "fmt"

// TravelPackage is a pre-built trip: a destination, accommodation, a pool
// of activities, a day-by-day itinerary, and the reviews customers left.
// It is both Bookable and Reviewable.
type TravelPackage struct {
	ServiceInfo
	Destination   string
	Duration      int // days
	Accommodation string
	Itinerary     *Itinerary

	activities []*Activity
	reviews    []*Review
	available  bool
}

// NewTravelPackage constructs an available package with no activities, no
// reviews, and an empty itinerary named after the package.
func NewTravelPackage(id, name, description string, basePrice float64, destination string, duration int, accommodation string) *TravelPackage {
	return &TravelPackage{
		ServiceInfo:   ServiceInfo{ID: id, Name: name, Description: description, BasePrice: basePrice},
		Destination:   destination,
		Duration:      duration,
		Accommodation: accommodation,
		Itinerary:     NewItinerary(id+"-itinerary", name+" Itinerary"),
		available:     true,
	}
}

func (p *TravelPackage) Kind() ServiceKind { return KindPackage }
func (p *TravelPackage) AsBookable() (Bookable, bool) { return p, true }
func (p *TravelPackage) AsReviewable() (Reviewable, bool) { return p, true }
func (p *TravelPackage) isTravelService() {}

// TotalPrice is the base price plus the cost of every activity in the pool.
func (p *TravelPackage) TotalPrice() float64 {
	total := p.BasePrice
	for _, a := range p.activities {
		total += a.Cost
	}
	return total
}

// Activities returns a copy of the package's activity pool.
func (p *TravelPackage) Activities() []*Activity {
	return append([]*Activity(nil), p.activities...)
}

// HasActivity reports whether the activity with the given ID is in the pool.
func (p *TravelPackage) HasActivity(id string) bool {
	return containsActivity(p.activities, id)
}

// AddActivity appends a to the pool. It reports false if an activity with
// the same ID is already present.
func (p *TravelPackage) AddActivity(a *Activity) bool {
	if containsActivity(p.activities, a.ID) {
		return false
	}
	p.activities = append(p.activities, a)
	return true
}

// RemoveActivity drops the activity from the pool and from every itinerary
// day, so days never reference an activity outside the pool.
func (p *TravelPackage) RemoveActivity(id string) bool {
	var removed bool
	p.activities, removed = removeActivity(p.activities, id)
	if p.Itinerary != nil {
		for _, d := range p.Itinerary.days {
			d.RemoveActivity(id)
		}
	}
	return removed
}

// Available reports the availability flag.
func (p *TravelPackage) Available() bool { return p.available }

// SetAvailable toggles whether the package can be booked.
func (p *TravelPackage) SetAvailable(v bool) { p.available = v }

// Reserve succeeds whenever the package is available; there is no capacity model.
func (p *TravelPackage) Reserve() bool { return p.available }

// AddReview attaches r to the package. Adding the same review ID twice is a
// no-op and reports false.
func (p *TravelPackage) AddReview(r *Review) bool {
	for _, existing := range p.reviews {
		if existing.ID == r.ID {
			return false
		}
	}
	p.reviews = append(p.reviews, r)
	r.PackageID = p.ID
	return true
}

// RemoveReview detaches the review with the given ID.
func (p *TravelPackage) RemoveReview(id string) bool {
	for i, r := range p.reviews {
		if r.ID == id {
			p.reviews = append(p.reviews[:i], p.reviews[i+1:]...)
			if r.PackageID == p.ID {
				r.PackageID = ""
			}
			return true
		}
	}
	return false
}

// Reviews returns a copy of the attached reviews.
func (p *TravelPackage) Reviews() []*Review {
	return append([]*Review(nil), p.reviews...)
}

// AverageRating is the mean review rating, or 0 with no reviews.
func (p *TravelPackage) AverageRating() float64 {
	if len(p.reviews) == 0 {
		return 0
	}
	var sum int
	for _, r := range p.reviews {
		sum += r.Rating()
	}
	return float64(sum) / float64(len(p.reviews))
}

func (p *TravelPackage) String() string {
	return fmt.Sprintf("%s - %s (%d days) - $%.2f", p.Name, p.Destination, p.Duration, p.TotalPrice())
}
