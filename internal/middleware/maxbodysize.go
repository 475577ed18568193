package middleware

import "net/http"

// tooLargeBody matches the API's error envelope.
const tooLargeBody = `{"error":{"code":"body_too_large","message":"request body too large"}}` + "\n"

// NewMaxBodySizeHandler returns a middleware that limits incoming request body
// sizes to limit bytes. Requests advertising a larger Content-Length are
// rejected with 413 Request Entity Too Large before reaching the next handler.
// Bodies of unknown length are wrapped in http.MaxBytesReader, so reading
// past the limit fails inside the handler.
func NewMaxBodySizeHandler(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusRequestEntityTooLarge)
				_, _ = w.Write([]byte(tooLargeBody))
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
