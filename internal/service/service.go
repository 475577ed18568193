// Package service implements the business rules of the travel agency on
// top of the in-memory collections in package repo.
//
// Every service follows the same transaction shape: validate the input,
// mutate the collections, then flush once through repo.Flusher. Validation
// failures return domain.ErrValidation and leave state untouched. A flush
// failure is returned wrapping domain.ErrPersistence; the in-memory change
// stands and is written again by the next successful flush.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/travel-agency/internal/repo"
)

// ID prefixes for generated entity IDs.
const (
	prefixCustomer = "C"
	prefixPackage  = "P"
	prefixActivity = "A"
	prefixBooking  = "B"
	prefixPayment  = "PMT"
	prefixReview   = "R"
)

// Option configures the services that stamp dates.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock sets the time source for booking, payment and review dates.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// newID returns prefix followed by the first eight characters of a random
// UUID, drawing again while the result is taken.
func newID(prefix string, taken func(string) bool) string {
	for {
		id := prefix + uuid.NewString()[:8]
		if !taken(id) {
			return id
		}
	}
}

// flush persists the whole dataset after a successful mutation.
func flush(ctx context.Context, f repo.Flusher, op string) error {
	if err := f.Save(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// containsFold reports whether substr occurs in s, ignoring case.
// An empty substr matches everything.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(strings.TrimSpace(substr)))
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
