package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/travel-agency/internal/domain"
	"github.com/pkordes/travel-agency/internal/service"
)

// CustomerRequest is the body of POST /customers and PUT /customers/{id}.
// The email is format-checked while decoding.
type CustomerRequest struct {
	Name    string              `json:"name"`
	Email   openapi_types.Email `json:"email"`
	Phone   string              `json:"phone"`
	Address string              `json:"address"`
}

// CustomerResponse is the API representation of a customer.
type CustomerResponse struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Phone      string   `json:"phone"`
	Address    string   `json:"address"`
	BookingIDs []string `json:"bookingIds"`
}

func customerToResponse(c *domain.Customer) CustomerResponse {
	bookings := c.Bookings()
	ids := make([]string, len(bookings))
	for i, b := range bookings {
		ids[i] = b.ID
	}
	return CustomerResponse{
		ID:         c.ID,
		Name:       c.Name,
		Email:      c.Email,
		Phone:      c.Phone,
		Address:    c.Address,
		BookingIDs: ids,
	}
}

func (req CustomerRequest) input() service.CustomerInput {
	return service.CustomerInput{Name: req.Name, Email: string(req.Email), Phone: req.Phone, Address: req.Address}
}

// ListCustomers handles GET /customers.
// ?q= filters by a case-insensitive substring of the name.
func (s *Server) ListCustomers(w http.ResponseWriter, r *http.Request) {
	var customers []*domain.Customer
	if q := r.URL.Query().Get("q"); q != "" {
		customers = s.customers.SearchByName(r.Context(), q)
	} else {
		customers = s.customers.List(r.Context())
	}
	writePage(w, r, customers, customerToResponse)
}

// CreateCustomer handles POST /customers.
func (s *Server) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req CustomerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	c, err := s.customers.Create(r.Context(), req.input())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, customerToResponse(c))
}

// GetCustomer handles GET /customers/{id}.
func (s *Server) GetCustomer(w http.ResponseWriter, r *http.Request) {
	c, err := s.customers.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, customerToResponse(c))
}

// UpdateCustomer handles PUT /customers/{id}.
func (s *Server) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	var req CustomerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	c, err := s.customers.Update(r.Context(), chi.URLParam(r, "id"), req.input())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, customerToResponse(c))
}

// DeleteCustomer handles DELETE /customers/{id}.
// A customer with bookings is refused with 409.
func (s *Server) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	if err := s.customers.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListCustomerBookings handles GET /customers/{id}/bookings.
func (s *Server) ListCustomerBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := s.customers.Bookings(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writePage(w, r, bookings, bookingToResponse)
}
