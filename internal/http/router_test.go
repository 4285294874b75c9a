package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"tripgen/internal/http/middleware"
	"tripgen/internal/service"
)

func newTestRouter(t *testing.T, origins []string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := zaptest.NewLogger(t)
	r, err := NewRouter(RouterDeps{
		Planner:     service.NewTripPlanner(service.PlannerDeps{Logger: log}),
		Logger:      log,
		CORSOrigins: origins,
		MaxDays:     30,
	})
	require.NoError(t, err)
	return r
}

func TestRouter_Health(t *testing.T) {
	r := newTestRouter(t, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestRouter_GenerateWithoutProviders(t *testing.T) {
	r := newTestRouter(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(`not json at all`))
	req.Header.Set("Origin", "https://somewhere.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "fallback", w.Header().Get("X-Itinerary-Source"))
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Body.String(), `"notes":"Offline itinerary: external services were unreachable."`)
}

func TestRouter_InvalidCORSOrigin(t *testing.T) {
	_, err := NewRouter(RouterDeps{CORSOrigins: []string{"not-a-url"}})
	assert.Error(t, err)
}
