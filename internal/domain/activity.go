package domain

import "fmt"

// Activity is a bookable excursion or event. Activities are shared by
// pointer across packages and itinerary days; nothing owns them.
type Activity struct {
	ID       string
	Name     string
	Location string
	Duration int // hours
	Cost     float64
}

// NewActivity constructs an Activity.
func NewActivity(id, name, location string, duration int, cost float64) *Activity {
	return &Activity{ID: id, Name: name, Location: location, Duration: duration, Cost: cost}
}

func (a *Activity) String() string {
	return fmt.Sprintf("%s - %s (%d hours) - $%.2f", a.Name, a.Location, a.Duration, a.Cost)
}

// containsActivity reports whether list holds an activity with the given ID.
func containsActivity(list []*Activity, id string) bool {
	for _, a := range list {
		if a.ID == id {
			return true
		}
	}
	return false
}

// removeActivity returns list without the activity with the given ID and
// whether it was present.
func removeActivity(list []*Activity, id string) ([]*Activity, bool) {
	for i, a := range list {
		if a.ID == id {
			return append(list[:i], list[i+1:]...), true
		}
	}
	return list, false
}
