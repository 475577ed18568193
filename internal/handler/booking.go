package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/travel-agency/internal/domain"
	"github.com/pkordes/travel-agency/internal/service"
)

// BookingRequest is the body of POST /bookings.
// A missing date means today and a missing status means PENDING.
type BookingRequest struct {
	CustomerID      string              `json:"customerId"`
	PackageID       string              `json:"packageId"`
	Date            *openapi_types.Date `json:"date,omitempty"`
	Status          string              `json:"status,omitempty"`
	Travelers       int                 `json:"numTravelers"`
	SpecialRequests string              `json:"specialRequests"`
}

// BookingUpdateRequest is the body of PUT /bookings/{id}.
type BookingUpdateRequest struct {
	Travelers       int    `json:"numTravelers"`
	Status          string `json:"status"`
	SpecialRequests string `json:"specialRequests"`
}

// StatusRequest is the body of PUT /bookings/{id}/status.
type StatusRequest struct {
	Status string `json:"status"`
}

// PaymentRequest is the body of POST /bookings/{id}/payment.
type PaymentRequest struct {
	Amount float64 `json:"amount"`
	Method string  `json:"method"`
}

// BookingResponse is the API representation of a booking.
type BookingResponse struct {
	ID              string               `json:"id"`
	CustomerID      string               `json:"customerId"`
	CustomerName    string               `json:"customerName"`
	ServiceID       string               `json:"serviceId"`
	ServiceName     string               `json:"serviceName"`
	ServiceKind     domain.ServiceKind   `json:"serviceKind"`
	Date            openapi_types.Date   `json:"date"`
	Status          domain.BookingStatus `json:"status"`
	NumTravelers    int                  `json:"numTravelers"`
	SpecialRequests string               `json:"specialRequests"`
	TotalPrice      float64              `json:"totalPrice"`
	Payment         *PaymentResponse     `json:"payment"`
}

// PaymentResponse is the API representation of a booking's payment.
type PaymentResponse struct {
	ID     string               `json:"id"`
	Amount float64              `json:"amount"`
	Method domain.PaymentMethod `json:"method"`
	Status domain.PaymentStatus `json:"status"`
	Date   time.Time            `json:"date"`
}

func bookingToResponse(b *domain.Booking) BookingResponse {
	resp := BookingResponse{
		ID:              b.ID,
		CustomerID:      b.Customer.ID,
		CustomerName:    b.Customer.Name,
		ServiceID:       b.Service.Info().ID,
		ServiceName:     b.Service.Info().Name,
		ServiceKind:     b.Service.Kind(),
		Date:            openapi_types.Date{Time: b.Date},
		Status:          b.Status,
		NumTravelers:    b.NumTravelers(),
		SpecialRequests: b.SpecialRequests,
		TotalPrice:      b.TotalPrice(),
	}
	if p := b.Payment; p != nil {
		resp.Payment = &PaymentResponse{ID: p.ID, Amount: p.Amount, Method: p.Method, Status: p.Status, Date: p.Date}
	}
	return resp
}

// parseOptionalStatus resolves a status name; "" stays "".
func parseOptionalStatus(s string) (domain.BookingStatus, error) {
	if s == "" {
		return "", nil
	}
	return domain.ParseBookingStatus(s)
}

// ListBookings handles GET /bookings.
// Filters: ?status=, ?customerId=, ?packageId= (first match wins, in that order).
func (s *Server) ListBookings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var bookings []*domain.Booking
	switch {
	case q.Get("status") != "":
		status, err := domain.ParseBookingStatus(q.Get("status"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		bookings = s.bookings.ByStatus(r.Context(), status)
	case q.Get("customerId") != "":
		bookings = s.bookings.ByCustomer(r.Context(), q.Get("customerId"))
	case q.Get("packageId") != "":
		bookings = s.bookings.ByPackage(r.Context(), q.Get("packageId"))
	default:
		bookings = s.bookings.List(r.Context())
	}
	writePage(w, r, bookings, bookingToResponse)
}

// CreateBooking handles POST /bookings.
// An unavailable package is refused with 409.
func (s *Server) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req BookingRequest
	if !decodeBody(w, r, &req) {
		return
	}
	status, err := parseOptionalStatus(req.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	in := service.BookingInput{
		CustomerID:      req.CustomerID,
		PackageID:       req.PackageID,
		Status:          status,
		Travelers:       req.Travelers,
		SpecialRequests: req.SpecialRequests,
	}
	if req.Date != nil {
		in.Date = req.Date.Time
	}
	b, err := s.bookings.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, bookingToResponse(b))
}

// GetBooking handles GET /bookings/{id}.
func (s *Server) GetBooking(w http.ResponseWriter, r *http.Request) {
	b, err := s.bookings.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bookingToResponse(b))
}

// UpdateBooking handles PUT /bookings/{id}.
func (s *Server) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	var req BookingUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	status, err := domain.ParseBookingStatus(req.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	b, err := s.bookings.Update(r.Context(), chi.URLParam(r, "id"), service.BookingUpdate{
		Travelers:       req.Travelers,
		Status:          status,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bookingToResponse(b))
}

// UpdateBookingStatus handles PUT /bookings/{id}/status.
// The status is set as given; no payment or lifecycle side effects.
func (s *Server) UpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	var req StatusRequest
	if !decodeBody(w, r, &req) {
		return
	}
	status, err := domain.ParseBookingStatus(req.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	b, err := s.bookings.UpdateStatus(r.Context(), chi.URLParam(r, "id"), status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bookingToResponse(b))
}

// ProcessPayment handles POST /bookings/{id}/payment.
// A processed payment confirms the booking. Any payment failure is a 402.
func (s *Server) ProcessPayment(w http.ResponseWriter, r *http.Request) {
	var req PaymentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	in := service.PaymentInput{Amount: req.Amount}
	if req.Method != "" {
		m, err := domain.ParsePaymentMethod(req.Method)
		if err != nil {
			writeError(w, r, err)
			return
		}
		in.Method = m
	}
	b, err := s.bookings.ProcessPayment(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bookingToResponse(b))
}

// CancelBooking handles POST /bookings/{id}/cancel.
// Cancelling twice is refused with 409.
func (s *Server) CancelBooking(w http.ResponseWriter, r *http.Request) {
	b, err := s.bookings.Cancel(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bookingToResponse(b))
}

// DeleteBooking handles DELETE /bookings/{id}.
func (s *Server) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	if err := s.bookings.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
