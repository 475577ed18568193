package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-agency/internal/handler"
	"github.com/pkordes/travel-agency/internal/repo"
	"github.com/pkordes/travel-agency/internal/service"
	"github.com/pkordes/travel-agency/testutil"
)

var testNow = time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)

// seeded wires the real services over the embedded sample dataset in a
// temp dir, the same way main.go does in production.
type seeded struct {
	store   *repo.DataStore
	handler http.Handler
}

func newSeeded(t *testing.T) *seeded {
	t.Helper()
	s := testutil.NewSeededStore(t)
	clock := service.WithClock(func() time.Time { return testNow })
	srv := handler.NewServer(handler.Services{
		Customers:  service.NewCustomerService(s.Customers(), s.Bookings(), s),
		Activities: service.NewActivityService(s.Activities(), s.Packages(), s),
		Packages:   service.NewPackageService(s.Packages(), s.Activities(), s.Bookings(), s),
		Bookings:   service.NewBookingService(s.Bookings(), s.Customers(), s.Packages(), s, clock),
		Reviews:    service.NewReviewService(s.Reviews(), s.Customers(), s.Packages(), s, clock),
		Reports:    service.NewReportService(s.Packages(), s.Customers(), s.Bookings()),
	})
	return &seeded{store: s, handler: srv.Routes()}
}

func (e *seeded) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	return serve(t, e.handler, method, path, body)
}

// serve sends one request to h. A nil body sends no body; a string is sent
// verbatim; anything else is JSON-encoded.
func serve(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	default:
		r = jsonBody(t, b)
	}
	req := httptest.NewRequest(method, path, r)
	if r != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out), rec.Body.String())
	return out
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[handler.ErrorResponse](t, rec).Error.Code
}
