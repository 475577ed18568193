package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/travel-agency/internal/domain"
	"github.com/pkordes/travel-agency/internal/service"
)

// PackageRequest is the body of POST /packages and PUT /packages/{id}.
type PackageRequest struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	BasePrice     float64 `json:"basePrice"`
	Destination   string  `json:"destination"`
	Duration      int     `json:"duration"`
	Accommodation string  `json:"accommodation"`
}

// AvailabilityRequest is the body of PUT /packages/{id}/availability.
type AvailabilityRequest struct {
	Available *bool `json:"available"`
}

// PackageActivityRequest is the body of POST /packages/{id}/activities.
type PackageActivityRequest struct {
	ActivityID string `json:"activityId"`
}

// ItineraryDayRequest is the body of PUT /packages/{id}/itinerary/days.
type ItineraryDayRequest struct {
	DayNumber   int      `json:"dayNumber"`
	Notes       string   `json:"notes"`
	ActivityIDs []string `json:"activityIds"`
}

// PackageResponse is the API representation of a travel package.
type PackageResponse struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	Description   string             `json:"description"`
	BasePrice     float64            `json:"basePrice"`
	TotalPrice    float64            `json:"totalPrice"`
	Destination   string             `json:"destination"`
	Duration      int                `json:"duration"`
	Accommodation string             `json:"accommodation"`
	Available     bool               `json:"available"`
	AverageRating float64            `json:"averageRating"`
	ReviewCount   int                `json:"reviewCount"`
	Activities    []ActivityResponse `json:"activities"`
	Itinerary     *ItineraryResponse `json:"itinerary,omitempty"`
}

// ItineraryResponse is the day-by-day plan of a package.
type ItineraryResponse struct {
	ID                 string                 `json:"id"`
	Name               string                 `json:"name"`
	TotalDuration      int                    `json:"totalDuration"`
	TotalActivityHours int                    `json:"totalActivityHours"`
	Days               []ItineraryDayResponse `json:"days"`
}

// ItineraryDayResponse is one scheduled day.
type ItineraryDayResponse struct {
	DayNumber  int                `json:"dayNumber"`
	Notes      string             `json:"notes"`
	Hours      int                `json:"hours"`
	Cost       float64            `json:"cost"`
	Activities []ActivityResponse `json:"activities"`
}

func packageToResponse(p *domain.TravelPackage) PackageResponse {
	resp := PackageResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		BasePrice:     p.BasePrice,
		TotalPrice:    p.TotalPrice(),
		Destination:   p.Destination,
		Duration:      p.Duration,
		Accommodation: p.Accommodation,
		Available:     p.Available(),
		AverageRating: p.AverageRating(),
		ReviewCount:   len(p.Reviews()),
		Activities:    mapAll(p.Activities(), activityToResponse),
	}
	if it := p.Itinerary; it != nil {
		resp.Itinerary = &ItineraryResponse{
			ID:                 it.ID,
			Name:               it.Name,
			TotalDuration:      it.TotalDuration(),
			TotalActivityHours: it.TotalActivityHours(),
			Days:               mapAll(it.Days(), dayToResponse),
		}
	}
	return resp
}

func dayToResponse(d *domain.ItineraryDay) ItineraryDayResponse {
	return ItineraryDayResponse{
		DayNumber:  d.Number,
		Notes:      d.Notes,
		Hours:      d.TotalDuration(),
		Cost:       d.TotalCost(),
		Activities: mapAll(d.Activities(), activityToResponse),
	}
}

func (req PackageRequest) input() service.PackageInput {
	return service.PackageInput{
		Name:          req.Name,
		Description:   req.Description,
		BasePrice:     req.BasePrice,
		Destination:   req.Destination,
		Duration:      req.Duration,
		Accommodation: req.Accommodation,
	}
}

// ListPackages handles GET /packages.
// ?destination= filters by a case-insensitive substring of the destination.
func (s *Server) ListPackages(w http.ResponseWriter, r *http.Request) {
	var packages []*domain.TravelPackage
	if q := r.URL.Query().Get("destination"); q != "" {
		packages = s.packages.SearchByDestination(r.Context(), q)
	} else {
		packages = s.packages.List(r.Context())
	}
	writePage(w, r, packages, packageToResponse)
}

// CreatePackage handles POST /packages.
func (s *Server) CreatePackage(w http.ResponseWriter, r *http.Request) {
	var req PackageRequest
	if !decodeBody(w, r, &req) {
		return
	}
	p, err := s.packages.Create(r.Context(), req.input())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, packageToResponse(p))
}

// GetPackage handles GET /packages/{id}.
func (s *Server) GetPackage(w http.ResponseWriter, r *http.Request) {
	p, err := s.packages.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, packageToResponse(p))
}

// UpdatePackage handles PUT /packages/{id}.
func (s *Server) UpdatePackage(w http.ResponseWriter, r *http.Request) {
	var req PackageRequest
	if !decodeBody(w, r, &req) {
		return
	}
	p, err := s.packages.Update(r.Context(), chi.URLParam(r, "id"), req.input())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, packageToResponse(p))
}

// DeletePackage handles DELETE /packages/{id}.
// A booked package is refused with 409.
func (s *Server) DeletePackage(w http.ResponseWriter, r *http.Request) {
	if err := s.packages.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetPackageAvailability handles PUT /packages/{id}/availability.
func (s *Server) SetPackageAvailability(w http.ResponseWriter, r *http.Request) {
	var req AvailabilityRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Available == nil {
		requestError(w, "available is required")
		return
	}
	p, err := s.packages.SetAvailability(r.Context(), chi.URLParam(r, "id"), *req.Available)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, packageToResponse(p))
}

// AddPackageActivity handles POST /packages/{id}/activities.
// Adding an activity already in the pool is a no-op.
func (s *Server) AddPackageActivity(w http.ResponseWriter, r *http.Request) {
	var req PackageActivityRequest
	if !decodeBody(w, r, &req) {
		return
	}
	p, err := s.packages.AddActivity(r.Context(), chi.URLParam(r, "id"), req.ActivityID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, packageToResponse(p))
}

// RemovePackageActivity handles DELETE /packages/{id}/activities/{activityID}.
func (s *Server) RemovePackageActivity(w http.ResponseWriter, r *http.Request) {
	p, err := s.packages.RemoveActivity(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "activityID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, packageToResponse(p))
}

// PutItineraryDay handles PUT /packages/{id}/itinerary/days.
// A day with the same number is replaced.
func (s *Server) PutItineraryDay(w http.ResponseWriter, r *http.Request) {
	var req ItineraryDayRequest
	if !decodeBody(w, r, &req) {
		return
	}
	p, err := s.packages.AddItineraryDay(r.Context(), chi.URLParam(r, "id"), service.DayInput{
		Number:      req.DayNumber,
		Notes:       req.Notes,
		ActivityIDs: req.ActivityIDs,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, packageToResponse(p))
}

// DeleteItineraryDay handles DELETE /packages/{id}/itinerary/days/{day}.
func (s *Server) DeleteItineraryDay(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(chi.URLParam(r, "day"))
	if err != nil {
		requestError(w, "day must be an integer")
		return
	}
	p, err := s.packages.RemoveItineraryDay(r.Context(), chi.URLParam(r, "id"), n)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, packageToResponse(p))
}

// ListPackageReviews handles GET /packages/{id}/reviews.
func (s *Server) ListPackageReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := s.reviews.ByPackage(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writePage(w, r, reviews, reviewToResponse)
}

// ListPackageBookings handles GET /packages/{id}/bookings.
func (s *Server) ListPackageBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := s.packages.Bookings(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writePage(w, r, bookings, bookingToResponse)
}
