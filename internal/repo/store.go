package repo

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/pkordes/travel-agency/internal/domain"
	"github.com/pkordes/travel-agency/internal/metrics"
)

// Flusher writes the in-memory state to disk. The service layer calls it
// once per successful mutation; nothing in this package saves on its own.
type Flusher interface {
	Save(ctx context.Context) error
}

// DataStore owns the five collections and the data directory they are
// persisted to. It is not safe for concurrent use; callers serialise access.
type DataStore struct {
	dir     string
	log     *slog.Logger
	metrics *metrics.Persistence
	now     func() time.Time

	activities *Collection[*domain.Activity]
	customers  *Collection[*domain.Customer]
	packages   *Collection[*domain.TravelPackage]
	bookings   *Collection[*domain.Booking]
	reviews    *Collection[*domain.Review]
}

// Option configures a DataStore.
type Option func(*DataStore)

// WithLogger sets the logger used for load and save reporting.
func WithLogger(l *slog.Logger) Option {
	return func(s *DataStore) { s.log = l }
}

// WithMetrics sets the collectors updated on load and save.
func WithMetrics(m *metrics.Persistence) Option {
	return func(s *DataStore) { s.metrics = m }
}

// WithClock sets the time source used for dates that fail to parse.
func WithClock(now func() time.Time) Option {
	return func(s *DataStore) { s.now = now }
}

// New returns an empty DataStore rooted at dir, creating dir if needed.
// Call Load to populate it.
func New(dir string, opts ...Option) (*DataStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("repo.New: create data dir: %w: %w", domain.ErrPersistence, err)
	}
	s := &DataStore{
		dir:        dir,
		log:        slog.Default(),
		now:        time.Now,
		activities: NewCollection("activities", func(a *domain.Activity) string { return a.ID }),
		customers:  NewCollection("customers", func(c *domain.Customer) string { return c.ID }),
		packages:   NewCollection("packages", func(p *domain.TravelPackage) string { return p.ID }),
		bookings:   NewCollection("bookings", func(b *domain.Booking) string { return b.ID }),
		reviews:    NewCollection("reviews", func(r *domain.Review) string { return r.ID }),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Dir is the data directory.
func (s *DataStore) Dir() string { return s.dir }

func (s *DataStore) Activities() *Collection[*domain.Activity] { return s.activities }
func (s *DataStore) Customers() *Collection[*domain.Customer] { return s.customers }
func (s *DataStore) Packages() *Collection[*domain.TravelPackage] { return s.packages }
func (s *DataStore) Bookings() *Collection[*domain.Booking] { return s.bookings }
func (s *DataStore) Reviews() *Collection[*domain.Review] { return s.reviews }

func (s *DataStore) path(file string) string {
	return filepath.Join(s.dir, file)
}

// Bootstrap copies the data files found in seed into the data directory,
// but only when none of the five files exist yet. It reports whether
// anything was copied.
func (s *DataStore) Bootstrap(ctx context.Context, seed fs.FS) (bool, error) {
	for _, file := range DataFiles() {
		if _, err := os.Stat(s.path(file)); err == nil {
			return false, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return false, fmt.Errorf("repo.DataStore.Bootstrap: %w: %w", domain.ErrPersistence, err)
		}
	}

	var copied int
	for _, file := range DataFiles() {
		data, err := fs.ReadFile(seed, file)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return copied > 0, fmt.Errorf("repo.DataStore.Bootstrap %s: %w: %w", file, domain.ErrPersistence, err)
		}
		if err := writeFileAtomic(s.path(file), data); err != nil {
			return copied > 0, fmt.Errorf("repo.DataStore.Bootstrap %s: %w: %w", file, domain.ErrPersistence, err)
		}
		copied++
	}
	s.log.InfoContext(ctx, "seeded data directory", "dir", s.dir, "files", copied)
	return copied > 0, nil
}
