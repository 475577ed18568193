package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pkordes/travel-agency/internal/domain"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a stable machine-readable code and a human message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorMapping pairs a domain sentinel with its HTTP status and code.
// Order matters: the first sentinel found in the chain wins.
var errorMapping = []struct {
	sentinel error
	status   int
	code     string
}{
	{domain.ErrValidation, http.StatusUnprocessableEntity, "validation_error"},
	{domain.ErrInUse, http.StatusConflict, "in_use"},
	{domain.ErrBooking, http.StatusConflict, "booking_failed"},
	{domain.ErrPayment, http.StatusPaymentRequired, "payment_failed"},
	{domain.ErrNotFound, http.StatusNotFound, "not_found"},
	{domain.ErrDuplicateID, http.StatusConflict, "duplicate_id"},
	{domain.ErrPersistence, http.StatusInternalServerError, "persistence_error"},
}

// writeError maps err onto a status and ErrorResponse. Unknown errors are
// logged and reported as a generic 500 so internals never leak.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	for _, m := range errorMapping {
		if errors.Is(err, m.sentinel) {
			if m.status >= http.StatusInternalServerError {
				slog.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
			}
			writeJSON(w, m.status, ErrorResponse{Error: ErrorDetail{Code: m.code, Message: unwrapMessage(err, m.sentinel)}})
			return
		}
	}
	slog.ErrorContext(r.Context(), "unhandled error", "path", r.URL.Path, "error", err)
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: ErrorDetail{Code: "internal_error", Message: "internal server error"}})
}

// requestError reports a request rejected before reaching the service layer
// (e.g. missing or malformed body, bad query parameter).
func requestError(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: ErrorDetail{Code: "validation_error", Message: message}})
}

// unwrapMessage extracts the human-readable part after the sentinel text.
// e.g. "service.BookingService.Cancel B1: booking failed: booking is already cancelled"
// → "booking is already cancelled". Without a detail the sentinel text is used.
func unwrapMessage(err, sentinel error) string {
	msg := err.Error()
	marker := sentinel.Error() + ": "
	if i := strings.LastIndex(msg, marker); i >= 0 && i+len(marker) < len(msg) {
		return msg[i+len(marker):]
	}
	return sentinel.Error()
}
