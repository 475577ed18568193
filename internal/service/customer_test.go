package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-agency/internal/domain"
	"github.com/pkordes/travel-agency/internal/service"
)

func TestCustomerService_Create_OK(t *testing.T) {
	e := newEnv(t)

	c, err := e.customers.Create(context.Background(), service.CustomerInput{
		Name: "  Alice ", Email: "alice@example.com", Phone: "555", Address: "1 Main St",
	})

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(c.ID, "C"))
	assert.Len(t, c.ID, 9)
	assert.Equal(t, "Alice", c.Name)
	assert.Equal(t, 1, e.flusher.calls)

	got, err := e.customers.GetByID(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Same(t, c, got)
}

func TestCustomerService_Create_Validation(t *testing.T) {
	tests := []struct {
		name string
		in   service.CustomerInput
	}{
		{"blank name", service.CustomerInput{Name: "  ", Email: "a@x.com"}},
		{"missing email", service.CustomerInput{Name: "Alice"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newEnv(t)

			_, err := e.customers.Create(context.Background(), tc.in)

			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Empty(t, e.customers.List(context.Background()))
			assert.Zero(t, e.flusher.calls, "nothing to flush")
		})
	}
}

func TestCustomerService_GetByID_NotFound(t *testing.T) {
	_, err := newEnv(t).customers.GetByID(context.Background(), "C404")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCustomerService_SearchByName(t *testing.T) {
	e := newEnv(t)
	e.customer(t, "Alice Moreau")
	e.customer(t, "Ben Okafor")
	e.customer(t, "alicia keys")

	got := e.customers.SearchByName(context.Background(), "ALIC")

	require.Len(t, got, 2)
	assert.Equal(t, "Alice Moreau", got[0].Name)
	assert.Equal(t, "alicia keys", got[1].Name)
	assert.NotNil(t, e.customers.SearchByName(context.Background(), "zzz"))
}

func TestCustomerService_Update(t *testing.T) {
	e := newEnv(t)
	c := e.customer(t, "alice")

	got, err := e.customers.Update(context.Background(), c.ID, service.CustomerInput{
		Name: "Alice M", Email: "new@example.com", Phone: "1", Address: "2 Side St",
	})

	require.NoError(t, err)
	assert.Equal(t, "Alice M", got.Name)
	assert.Equal(t, "2 Side St", got.Address)
	assert.Equal(t, 2, e.flusher.calls)
}

func TestCustomerService_Update_ValidationLeavesCustomer(t *testing.T) {
	e := newEnv(t)
	c := e.customer(t, "alice")

	_, err := e.customers.Update(context.Background(), c.ID, service.CustomerInput{Name: "", Email: "x@y.z"})

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, "alice", c.Name)
}

func TestCustomerService_Delete_InUse(t *testing.T) {
	e := newEnv(t)
	c := e.customer(t, "alice")
	p := e.pkg(t, "Hawaii", 1000)
	e.book(t, c, p, domain.BookingConfirmed)

	err := e.customers.Delete(context.Background(), c.ID)

	assert.ErrorIs(t, err, domain.ErrInUse)
	_, err = e.customers.GetByID(context.Background(), c.ID)
	assert.NoError(t, err, "customer stays in the collection")

	inUse, err := e.customers.InUse(context.Background(), c.ID)
	require.NoError(t, err)
	assert.True(t, inUse)

	bookings, err := e.customers.Bookings(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Len(t, bookings, 1)
}

func TestCustomerService_Delete_OK(t *testing.T) {
	e := newEnv(t)
	c := e.customer(t, "alice")

	require.NoError(t, e.customers.Delete(context.Background(), c.ID))

	_, err := e.customers.GetByID(context.Background(), c.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 2, e.flusher.calls)
}

func TestCustomerService_FlushFailureKeepsChange(t *testing.T) {
	e := newEnv(t)
	e.flusher.err = errors.Join(domain.ErrPersistence, errors.New("disk full"))

	c, err := e.customers.Create(context.Background(), service.CustomerInput{Name: "Alice", Email: "a@x.com"})

	assert.ErrorIs(t, err, domain.ErrPersistence)
	require.NotNil(t, c)
	assert.Len(t, e.customers.List(context.Background()), 1)
}
