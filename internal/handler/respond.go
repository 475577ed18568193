package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/pkordes/travel-agency/internal/domain"
)

// Pagination describes the page returned by a list endpoint.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// ListResponse wraps one page of a collection.
type ListResponse[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// decodeBody decodes the JSON request body into dst. On failure it writes a
// 422 (or 413 when the body limit was hit) and reports false.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Body == nil || r.Body == http.NoBody {
		requestError(w, "request body is required")
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{Error: ErrorDetail{Code: "body_too_large", Message: "request body too large"}})
			return false
		}
		requestError(w, "invalid request body: "+err.Error())
		return false
	}
	return true
}

// pageParams reads ?page= and ?limit= (defaults: page=1, limit=20, max=100).
func pageParams(r *http.Request) domain.PaginationParams {
	return domain.NewPaginationParams(queryInt(r, "page"), queryInt(r, "limit"))
}

func queryInt(r *http.Request, key string) *int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return nil
	}
	return &v
}

// writePage paginates items, maps them with conv and writes a ListResponse.
func writePage[S, T any](w http.ResponseWriter, r *http.Request, items []S, conv func(S) T) {
	params := pageParams(r)
	page, total := domain.Paginate(items, params)
	data := make([]T, len(page))
	for i, item := range page {
		data[i] = conv(item)
	}
	writeJSON(w, http.StatusOK, ListResponse[T]{
		Data:       data,
		Pagination: Pagination{Page: params.Page, Limit: params.Limit, Total: total},
	})
}

// mapAll converts every item with conv. Always returns a non-nil slice.
func mapAll[S, T any](items []S, conv func(S) T) []T {
	out := make([]T, len(items))
	for i, item := range items {
		out[i] = conv(item)
	}
	return out
}
