package repo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-agency/internal/domain"
	"github.com/pkordes/travel-agency/internal/repo"
)

func newActivities() *repo.Collection[*domain.Activity] {
	return repo.NewCollection("activities", func(a *domain.Activity) string { return a.ID })
}

func TestCollection_AddAndGet(t *testing.T) {
	c := newActivities()
	a := domain.NewActivity("A1", "Snorkeling", "Bay", 3, 100)

	require.NoError(t, c.Add(a))

	got, err := c.GetByID("A1")
	require.NoError(t, err)
	assert.Same(t, a, got)
	assert.Equal(t, 1, c.Len())
}

func TestCollection_Add_DuplicateID(t *testing.T) {
	c := newActivities()
	require.NoError(t, c.Add(domain.NewActivity("A1", "Snorkeling", "Bay", 3, 100)))

	err := c.Add(domain.NewActivity("A1", "Other", "Elsewhere", 1, 1))

	assert.ErrorIs(t, err, domain.ErrDuplicateID)
	assert.Equal(t, 1, c.Len())
	got, _ := c.GetByID("A1")
	assert.Equal(t, "Snorkeling", got.Name, "first entry wins")
}

func TestCollection_GetByID_NotFound(t *testing.T) {
	_, err := newActivities().GetByID("missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCollection_List_InsertionOrderAndCopy(t *testing.T) {
	c := newActivities()
	for _, id := range []string{"A3", "A1", "A2"} {
		require.NoError(t, c.Add(domain.NewActivity(id, id, "x", 1, 1)))
	}

	list := c.List()
	require.Len(t, list, 3)
	assert.Equal(t, "A3", list[0].ID)
	assert.Equal(t, "A1", list[1].ID)
	assert.Equal(t, "A2", list[2].ID)

	list[0] = nil
	assert.NotNil(t, c.List()[0], "List returns a copy")
}

func TestCollection_Remove(t *testing.T) {
	c := newActivities()
	require.NoError(t, c.Add(domain.NewActivity("A1", "a", "x", 1, 1)))
	require.NoError(t, c.Add(domain.NewActivity("A2", "b", "x", 1, 1)))

	require.NoError(t, c.Remove("A1"))

	assert.Equal(t, 1, c.Len())
	_, err := c.GetByID("A1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "A2", c.List()[0].ID)
}

func TestCollection_Remove_NotFound(t *testing.T) {
	assert.ErrorIs(t, newActivities().Remove("nope"), domain.ErrNotFound)
}

func TestCollection_Taken(t *testing.T) {
	c := newActivities()
	require.NoError(t, c.Add(domain.NewActivity("A1", "a", "x", 1, 1)))

	assert.True(t, c.Taken("A1"), "live id")
	assert.False(t, c.Taken("A2"))

	require.NoError(t, c.Remove("A1"))
	assert.True(t, c.Taken("A1"), "removed ids stay taken")
}
