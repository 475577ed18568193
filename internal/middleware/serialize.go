package middleware

import (
	"net/http"
	"sync"
)

// NewSerializer returns a middleware that guards the in-memory collections,
// which are not safe for concurrent use. GET and HEAD requests share a read
// lock; every other method holds the write lock for the whole request,
// including the save that follows a mutation.
func NewSerializer() func(http.Handler) http.Handler {
	var mu sync.RWMutex
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead:
				mu.RLock()
				defer mu.RUnlock()
			default:
				mu.Lock()
				defer mu.Unlock()
			}
			next.ServeHTTP(w, r)
		})
	}
}
