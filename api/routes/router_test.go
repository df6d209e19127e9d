package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/foodcart/api/middleware"
	"github.com/angelmondragon/foodcart/internal/catalog"
	"github.com/angelmondragon/foodcart/internal/storage"
	"github.com/angelmondragon/foodcart/internal/store"
	"github.com/angelmondragon/foodcart/pkg/config"
	"github.com/angelmondragon/foodcart/pkg/logger"
	"github.com/angelmondragon/foodcart/pkg/metrics"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	reg := prometheus.NewRegistry()
	sessions, err := store.NewRegistry(store.RegistryParams{
		Backend: storage.NewMemoryBackend(0),
		Metrics: metrics.NewStoreMetrics(reg),
	})
	require.NoError(t, err)

	menu := catalog.Menu{Items: []catalog.Item{{ID: "p1", Name: "Pizza", Price: "300", Image: "pizza.jpg"}}}
	cfg := &config.Config{}
	cfg.App.Env = config.AppEnvDev
	return NewRouter(cfg, logger.Nop(), stubPinger{}, sessions, menu, reg)
}

func do(t *testing.T, h http.Handler, method, path, session, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	if session != "" {
		req.Header.Set(middleware.SessionHeader, session)
	}
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	return resp
}

func TestHealthRoutes(t *testing.T) {
	h := newTestRouter(t)

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/health/live", "", "").Code)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/health/ready", "", "").Code)
}

func TestSessionHeaderIsMinted(t *testing.T) {
	h := newTestRouter(t)

	resp := do(t, h, http.MethodGet, "/api/v1/cart", "", "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.NotEmpty(t, resp.Header().Get(middleware.SessionHeader))
}

func TestStorefrontJourney(t *testing.T) {
	h := newTestRouter(t)
	const session = "journey"

	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/v1/session/login", session, "").Code)
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/v1/cart/items", session, `{"id":"p1"}`).Code)
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPatch, "/api/v1/cart/items/p1", session, `{"change":1}`).Code)

	resp := do(t, h, http.MethodPost, "/api/v1/cart/checkout", session, "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"redirect":"checkout.html"`)

	resp = do(t, h, http.MethodPost, "/api/v1/checkout", session, `{"fullName":"A","address":"B","pinCode":"1","phone":"2"}`)
	require.Equal(t, http.StatusCreated, resp.Code)

	var envelope struct {
		Data struct {
			Redirect string `json:"redirect"`
			Order    struct {
				Total int `json:"total"`
			} `json:"order"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Equal(t, "index.html#orders", envelope.Data.Redirect)
	assert.Equal(t, 600, envelope.Data.Order.Total)

	resp = do(t, h, http.MethodGet, "/api/v1/orders", session, "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Total: RS 600")

	resp = do(t, h, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "orders_committed_total 1")
}

func TestSessionsAreIsolated(t *testing.T) {
	h := newTestRouter(t)

	do(t, h, http.MethodPost, "/api/v1/session/login", "a", "")
	do(t, h, http.MethodPost, "/api/v1/cart/items", "a", `{"id":"p1"}`)

	resp := do(t, h, http.MethodGet, "/api/v1/cart", "b", "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"count":0`)
}

func TestUnknownRoute(t *testing.T) {
	h := newTestRouter(t)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/api/v1/nope", "", "").Code)
}
