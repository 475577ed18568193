package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/travel-agency/internal/domain"
	"github.com/pkordes/travel-agency/internal/service"
)

// ActivityRequest is the body of POST /activities and PUT /activities/{id}.
type ActivityRequest struct {
	Name     string  `json:"name"`
	Location string  `json:"location"`
	Duration int     `json:"duration"`
	Cost     float64 `json:"cost"`
}

// ActivityResponse is the API representation of an activity.
type ActivityResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Location string  `json:"location"`
	Duration int     `json:"duration"`
	Cost     float64 `json:"cost"`
}

func activityToResponse(a *domain.Activity) ActivityResponse {
	return ActivityResponse{ID: a.ID, Name: a.Name, Location: a.Location, Duration: a.Duration, Cost: a.Cost}
}

func (req ActivityRequest) input() service.ActivityInput {
	return service.ActivityInput{Name: req.Name, Location: req.Location, Duration: req.Duration, Cost: req.Cost}
}

// ListActivities handles GET /activities.
func (s *Server) ListActivities(w http.ResponseWriter, r *http.Request) {
	writePage(w, r, s.activities.List(r.Context()), activityToResponse)
}

// CreateActivity handles POST /activities.
func (s *Server) CreateActivity(w http.ResponseWriter, r *http.Request) {
	var req ActivityRequest
	if !decodeBody(w, r, &req) {
		return
	}
	a, err := s.activities.Create(r.Context(), req.input())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, activityToResponse(a))
}

// GetActivity handles GET /activities/{id}.
func (s *Server) GetActivity(w http.ResponseWriter, r *http.Request) {
	a, err := s.activities.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, activityToResponse(a))
}

// UpdateActivity handles PUT /activities/{id}.
func (s *Server) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	var req ActivityRequest
	if !decodeBody(w, r, &req) {
		return
	}
	a, err := s.activities.Update(r.Context(), chi.URLParam(r, "id"), req.input())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, activityToResponse(a))
}

// DeleteActivity handles DELETE /activities/{id}.
// The activity is also removed from every package pool and itinerary day.
func (s *Server) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	if err := s.activities.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
