package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/reviewlens/reviewlens/internal/api"
	"github.com/reviewlens/reviewlens/internal/api/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestRouter_UnwiredRoutesReturn501(t *testing.T) {
	router := api.NewRouter(api.Dependencies{})

	paths := []string{
		"/api/v1/health",
		"/api/v1/overview",
		"/api/v1/preprocessing/stats",
		"/api/v1/preprocessing/samples/0",
		"/api/v1/clusters",
		"/api/v1/clusters/1",
		"/api/v1/sentiment",
		"/api/v1/sentiment/detail",
		"/api/v1/sentiment/samples",
	}
	for _, path := range paths {
		w := get(t, router, path)
		assert.Equal(t, http.StatusNotImplemented, w.Code, "path %s", path)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		errObj := body["error"].(map[string]any)
		assert.Equal(t, "NOT_IMPLEMENTED", errObj["code"], "path %s", path)
	}
}

func TestRouter_WiredHandlerIsServed(t *testing.T) {
	router := api.NewRouter(api.Dependencies{
		HealthHandler: func(w http.ResponseWriter, r *http.Request) {
			response.JSON(w, map[string]string{"status": "ok"})
		},
	})

	w := get(t, router, "/api/v1/health")
	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	data := body["data"].(map[string]any)
	assert.Equal(t, "ok", data["status"])
}

func TestRouter_UnknownRouteReturns404(t *testing.T) {
	router := api.NewRouter(api.Dependencies{})
	w := get(t, router, "/api/v1/nope")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	router := api.NewRouter(api.Dependencies{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/overview", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
