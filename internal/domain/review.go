package domain

import (
	"fmt"
	"time"
)

// Rating bounds.
const (
	MinRating = 1
	MaxRating = 5
)

// Review is a customer's rating of a travel package.
// PackageID is the explicit link to the reviewed package; it is set when the
// review is attached to a package and cleared when detached.
type Review struct {
	ID        string
	Customer  *Customer
	Comment   string
	Date      time.Time
	PackageID string

	rating int
}

// NewReview constructs a review with the rating clamped into [1,5].
func NewReview(id string, customer *Customer, rating int, comment string, at time.Time) *Review {
	r := &Review{ID: id, Customer: customer, Comment: comment, Date: at}
	r.SetRating(rating)
	return r
}

// Rating is always within [MinRating, MaxRating].
func (r *Review) Rating() int { return r.rating }

// SetRating clamps rating into [MinRating, MaxRating].
func (r *Review) SetRating(rating int) {
	r.rating = min(MaxRating, max(MinRating, rating))
}

func (r *Review) String() string {
	return fmt.Sprintf("%d stars - %s - by %s on %s",
		r.rating, r.Comment, r.Customer.Name, r.Date.Format(time.DateOnly))
}
