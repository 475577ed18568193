package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-agency/internal/handler"
)

// TestGetHealth_200 verifies that GET /healthz returns 200 with {"status":"ok"}.
// No services are needed: the health check never touches the data.
func TestGetHealth_200(t *testing.T) {
	h := handler.NewServer(handler.Services{}).Routes()

	rec := serve(t, h, http.MethodGet, "/healthz", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "ok", decode[handler.HealthResponse](t, rec).Status)
}

func TestGetOpenAPI_200(t *testing.T) {
	h := handler.NewServer(handler.Services{}).Routes()

	rec := serve(t, h, http.MethodGet, "/openapi.yaml", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "openapi: 3.0.3")
	assert.Contains(t, rec.Body.String(), "/bookings/{id}/payment:")
}
