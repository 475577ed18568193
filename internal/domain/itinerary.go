package domain

import (
	"cmp"
	"slices"
)

// Itinerary is the day-by-day plan of a package.
// Days are always sorted by day number and day numbers are unique:
// adding a day whose number already exists replaces the old one.
type Itinerary struct {
	ID   string
	Name string

	days []*ItineraryDay
}

// NewItinerary constructs an empty itinerary.
func NewItinerary(id, name string) *Itinerary {
	return &Itinerary{ID: id, Name: name}
}

// AddDay inserts day, replacing any existing day with the same number, and
// re-sorts the day list ascending by day number.
func (it *Itinerary) AddDay(day *ItineraryDay) {
	it.days = slices.DeleteFunc(it.days, func(d *ItineraryDay) bool {
		return d.Number == day.Number
	})
	it.days = append(it.days, day)
	slices.SortStableFunc(it.days, func(a, b *ItineraryDay) int {
		return cmp.Compare(a.Number, b.Number)
	})
}

// RemoveDay removes every day whose number matches day's number.
func (it *Itinerary) RemoveDay(day *ItineraryDay) bool {
	return it.RemoveDayByNumber(day.Number)
}

// RemoveDayByNumber removes every day numbered n and reports whether any was removed.
func (it *Itinerary) RemoveDayByNumber(n int) bool {
	before := len(it.days)
	it.days = slices.DeleteFunc(it.days, func(d *ItineraryDay) bool {
		return d.Number == n
	})
	return len(it.days) != before
}

// Day returns the day numbered n, or nil.
func (it *Itinerary) Day(n int) *ItineraryDay {
	for _, d := range it.days {
		if d.Number == n {
			return d
		}
	}
	return nil
}

// Days returns a copy of the sorted day list.
func (it *Itinerary) Days() []*ItineraryDay {
	return append([]*ItineraryDay(nil), it.days...)
}

// Clear drops every day.
func (it *Itinerary) Clear() {
	it.days = nil
}

// TotalDuration is the number of days in the itinerary.
func (it *Itinerary) TotalDuration() int {
	return len(it.days)
}

// TotalActivityHours sums the duration of every activity on every day.
func (it *Itinerary) TotalActivityHours() int {
	var hours int
	for _, d := range it.days {
		hours += d.TotalDuration()
	}
	return hours
}

// ItineraryDay is one day's schedule. An activity appears at most once per day.
type ItineraryDay struct {
	Number int // 1-based
	Notes  string

	activities []*Activity
}

// NewItineraryDay constructs a day with no activities.
func NewItineraryDay(number int, notes string) *ItineraryDay {
	return &ItineraryDay{Number: number, Notes: notes}
}

// AddActivity schedules a on this day unless it is already scheduled.
func (d *ItineraryDay) AddActivity(a *Activity) bool {
	if containsActivity(d.activities, a.ID) {
		return false
	}
	d.activities = append(d.activities, a)
	return true
}

// RemoveActivity unschedules the activity with the given ID.
func (d *ItineraryDay) RemoveActivity(id string) bool {
	var removed bool
	d.activities, removed = removeActivity(d.activities, id)
	return removed
}

// Activities returns a copy of the day's activities.
func (d *ItineraryDay) Activities() []*Activity {
	return append([]*Activity(nil), d.activities...)
}

// TotalDuration sums activity hours for the day.
func (d *ItineraryDay) TotalDuration() int {
	var hours int
	for _, a := range d.activities {
		hours += a.Duration
	}
	return hours
}

// TotalCost sums activity cost for the day.
func (d *ItineraryDay) TotalCost() float64 {
	var total float64
	for _, a := range d.activities {
		total += a.Cost
	}
	return total
}
