// Package repo contains the persistence layer of the travel agency backend.
// Entities live in memory in one Collection per type and are loaded from and
// saved to five JSON files in a data directory. Records in those files
// reference each other by ID; loading rebuilds the object graph and saving
// flattens it back to IDs.
//
// No business rules live here: the service layer decides what may be
// mutated and when to call Save.
package repo

import (
	"fmt"

	"github.com/pkordes/travel-agency/internal/domain"
)

// Repo is the ID-indexed collection contract the service layer depends on.
// List order is insertion order.
type Repo[T any] interface {
	// Add appends item. Returns domain.ErrDuplicateID if its ID is present.
	Add(item T) error

	// GetByID returns domain.ErrNotFound if no item has that ID.
	GetByID(id string) (T, error)

	// List returns a copy of the items in insertion order.
	List() []T

	// Remove deletes the item with that ID and retires the ID.
	// Returns domain.ErrNotFound if no item has that ID.
	Remove(id string) error

	// Len is the number of items held.
	Len() int

	// Taken reports whether id is held now or was removed earlier in this
	// process. Generated IDs must avoid both.
	Taken(id string) bool
}

type (
	ActivityRepo = Repo[*domain.Activity]
	CustomerRepo = Repo[*domain.Customer]
	PackageRepo  = Repo[*domain.TravelPackage]
	BookingRepo  = Repo[*domain.Booking]
	ReviewRepo   = Repo[*domain.Review]
)

// Collection is the single source of truth for one entity type: an ordered
// slice plus an ID index, changed together by every mutator.
type Collection[T any] struct {
	name    string
	key     func(T) string
	items   []T
	index   map[string]T
	retired map[string]struct{}
}

// NewCollection creates an empty collection whose IDs are read with key.
func NewCollection[T any](name string, key func(T) string) *Collection[T] {
	return &Collection[T]{
		name:    name,
		key:     key,
		index:   make(map[string]T),
		retired: make(map[string]struct{}),
	}
}

// Name is the collection name, which is also the data file stem.
func (c *Collection[T]) Name() string { return c.name }

func (c *Collection[T]) Add(item T) error {
	id := c.key(item)
	if _, ok := c.index[id]; ok {
		return fmt.Errorf("repo.Collection[%s].Add %s: %w", c.name, id, domain.ErrDuplicateID)
	}
	c.items = append(c.items, item)
	c.index[id] = item
	return nil
}

func (c *Collection[T]) GetByID(id string) (T, error) {
	item, ok := c.index[id]
	if !ok {
		var zero T
		return zero, fmt.Errorf("repo.Collection[%s].GetByID %s: %w", c.name, id, domain.ErrNotFound)
	}
	return item, nil
}

func (c *Collection[T]) List() []T {
	return append([]T(nil), c.items...)
}

func (c *Collection[T]) Remove(id string) error {
	if _, ok := c.index[id]; !ok {
		return fmt.Errorf("repo.Collection[%s].Remove %s: %w", c.name, id, domain.ErrNotFound)
	}
	delete(c.index, id)
	for i, item := range c.items {
		if c.key(item) == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			break
		}
	}
	c.retired[id] = struct{}{}
	return nil
}

func (c *Collection[T]) Len() int { return len(c.items) }

func (c *Collection[T]) Taken(id string) bool {
	if _, ok := c.index[id]; ok {
		return true
	}
	_, ok := c.retired[id]
	return ok
}

// reset empties the collection before a load. Retired IDs are kept.
func (c *Collection[T]) reset() {
	c.items = nil
	clear(c.index)
}

// lookup is GetByID without the error, for reference resolution during load.
func (c *Collection[T]) lookup(id string) (T, bool) {
	item, ok := c.index[id]
	return item, ok
}
