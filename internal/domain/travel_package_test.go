package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-agency/internal/domain"
)

// packageFixture returns a package priced at 1000 for five days in Lisbon.
func packageFixture() *domain.TravelPackage {
	return domain.NewTravelPackage("P0001", "Lisbon Escape", "City break", 1000, "Lisbon", 5, "Hotel Avenida")
}

func TestTravelPackage_TotalPrice_BasePlusActivities(t *testing.T) {
	p := packageFixture()
	assert.Equal(t, 1000.0, p.TotalPrice())

	p.AddActivity(domain.NewActivity("A1", "Tram Tour", "Alfama", 3, 50))
	p.AddActivity(domain.NewActivity("A2", "Fado Night", "Bairro Alto", 2, 35.5))

	assert.InDelta(t, 1085.5, p.TotalPrice(), 1e-9)
}

func TestTravelPackage_AddActivity_DedupesByID(t *testing.T) {
	p := packageFixture()

	assert.True(t, p.AddActivity(domain.NewActivity("A1", "Tram Tour", "Alfama", 3, 50)))
	assert.False(t, p.AddActivity(domain.NewActivity("A1", "Tram Tour (copy)", "Alfama", 3, 50)))

	assert.Len(t, p.Activities(), 1)
	assert.Equal(t, 1050.0, p.TotalPrice())
}

func TestTravelPackage_RemoveActivity_AlsoClearsItineraryDays(t *testing.T) {
	p := packageFixture()
	a := domain.NewActivity("A1", "Tram Tour", "Alfama", 3, 50)
	p.AddActivity(a)
	day := domain.NewItineraryDay(1, "arrival")
	day.AddActivity(a)
	p.Itinerary.AddDay(day)

	require.True(t, p.RemoveActivity("A1"))

	assert.Empty(t, p.Activities())
	assert.Empty(t, p.Itinerary.Day(1).Activities())
	assert.False(t, p.RemoveActivity("A1"))
}

func TestTravelPackage_DefaultItinerary(t *testing.T) {
	p := packageFixture()

	require.NotNil(t, p.Itinerary)
	assert.Equal(t, "P0001-itinerary", p.Itinerary.ID)
	assert.Equal(t, "Lisbon Escape Itinerary", p.Itinerary.Name)
	assert.Zero(t, p.Itinerary.TotalDuration())
}

func TestTravelPackage_AverageRating(t *testing.T) {
	p := packageFixture()
	c := domain.NewCustomer("C1", "Ana", "ana@example.com", "", "")
	assert.Zero(t, p.AverageRating(), "no reviews averages to zero")

	p.AddReview(domain.NewReview("R1", c, 5, "great", now))
	p.AddReview(domain.NewReview("R2", c, 2, "meh", now))

	assert.Equal(t, 3.5, p.AverageRating())
}

func TestTravelPackage_AddReview_SetsPackageID(t *testing.T) {
	p := packageFixture()
	r := domain.NewReview("R1", domain.NewCustomer("C1", "Ana", "a@x.io", "", ""), 4, "nice", now)

	require.True(t, p.AddReview(r))
	assert.Equal(t, "P0001", r.PackageID)
	assert.False(t, p.AddReview(r), "second add is a no-op")

	require.True(t, p.RemoveReview("R1"))
	assert.Empty(t, r.PackageID)
	assert.Empty(t, p.Reviews())
}

func TestTravelPackage_Capabilities(t *testing.T) {
	var svc domain.TravelService = packageFixture()

	b, ok := svc.AsBookable()
	require.True(t, ok)
	assert.True(t, b.Available())
	assert.True(t, b.Reserve())

	_, ok = svc.AsReviewable()
	assert.True(t, ok)
	assert.Equal(t, domain.KindPackage, svc.Kind())

	svc.(*domain.TravelPackage).SetAvailable(false)
	assert.False(t, b.Available())
	assert.False(t, b.Reserve())
}
