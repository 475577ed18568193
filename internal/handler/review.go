package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/travel-agency/internal/domain"
	"github.com/pkordes/travel-agency/internal/service"
)

// ReviewRequest is the body of POST /reviews.
type ReviewRequest struct {
	PackageID  string `json:"packageId"`
	CustomerID string `json:"customerId"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
}

// ReviewUpdateRequest is the body of PUT /reviews/{id}.
type ReviewUpdateRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// ReviewResponse is the API representation of a review.
// PackageID is empty for a review whose package was deleted.
type ReviewResponse struct {
	ID           string    `json:"id"`
	PackageID    string    `json:"packageId,omitempty"`
	CustomerID   string    `json:"customerId"`
	CustomerName string    `json:"customerName"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	Date         time.Time `json:"date"`
}

func reviewToResponse(rv *domain.Review) ReviewResponse {
	return ReviewResponse{
		ID:           rv.ID,
		PackageID:    rv.PackageID,
		CustomerID:   rv.Customer.ID,
		CustomerName: rv.Customer.Name,
		Rating:       rv.Rating(),
		Comment:      rv.Comment,
		Date:         rv.Date,
	}
}

// ListReviews handles GET /reviews.
func (s *Server) ListReviews(w http.ResponseWriter, r *http.Request) {
	writePage(w, r, s.reviews.List(r.Context()), reviewToResponse)
}

// CreateReview handles POST /reviews.
// Ratings outside 1..5 are clamped, not rejected.
func (s *Server) CreateReview(w http.ResponseWriter, r *http.Request) {
	var req ReviewRequest
	if !decodeBody(w, r, &req) {
		return
	}
	rv, err := s.reviews.Add(r.Context(), service.ReviewInput{
		PackageID:  req.PackageID,
		CustomerID: req.CustomerID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, reviewToResponse(rv))
}

// GetReview handles GET /reviews/{id}.
func (s *Server) GetReview(w http.ResponseWriter, r *http.Request) {
	rv, err := s.reviews.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reviewToResponse(rv))
}

// UpdateReview handles PUT /reviews/{id}.
func (s *Server) UpdateReview(w http.ResponseWriter, r *http.Request) {
	var req ReviewUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	rv, err := s.reviews.Update(r.Context(), chi.URLParam(r, "id"), service.ReviewUpdate{Rating: req.Rating, Comment: req.Comment})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reviewToResponse(rv))
}

// DeleteReview handles DELETE /reviews/{id}.
func (s *Server) DeleteReview(w http.ResponseWriter, r *http.Request) {
	if err := s.reviews.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
