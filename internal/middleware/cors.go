// Package middleware provides the HTTP middleware stack of the travel agency
// API server: CORS, request body limits, request logging and the single
// writer guard around the in-memory collections.
package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// NewCORSHandler returns a middleware that applies CORS headers based on allowedOrigins.
// Each entry in allowedOrigins must be a full origin (scheme + host, no trailing slash).
// Allowed methods and headers cover the full REST surface of the API; the
// report endpoints also serve text/csv, so Content-Disposition is exposed.
func NewCORSHandler(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Accept"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	})
	return c.Handler
}
