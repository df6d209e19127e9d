package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/foodcart/api/middleware"
	"github.com/angelmondragon/foodcart/internal/catalog"
	"github.com/angelmondragon/foodcart/internal/render"
	"github.com/angelmondragon/foodcart/internal/schema"
	"github.com/angelmondragon/foodcart/internal/storage"
	"github.com/angelmondragon/foodcart/internal/store"
	"github.com/angelmondragon/foodcart/pkg/config"
	pkgerrors "github.com/angelmondragon/foodcart/pkg/errors"
	"github.com/angelmondragon/foodcart/pkg/types"
)

const testSession = "tab-1"

var testMenu = catalog.Menu{Items: []catalog.Item{
	{ID: "p1", Name: "Pizza", Price: "300", Image: "pizza.jpg", Category: "Mains"},
	{ID: "c1", Name: "Coke", Price: "40", Image: "coke.jpg", Category: "Drinks"},
}}

func newRegistry(t *testing.T) *store.Registry {
	t.Helper()
	reg, err := store.NewRegistry(store.RegistryParams{Backend: storage.NewMemoryBackend(0)})
	require.NoError(t, err)
	return reg
}

func newRequest(method, target, body string, params map[string]string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	ctx := middleware.WithSessionID(req.Context(), testSession)
	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for k, v := range params {
			rctx.URLParams.Add(k, v)
		}
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	return req.WithContext(ctx)
}

func serve(h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	return resp
}

func decodePage(t *testing.T, resp *httptest.ResponseRecorder) pageResponse {
	t.Helper()
	var envelope struct {
		Data pageResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope.Data
}

func decodeError(t *testing.T, resp *httptest.ResponseRecorder) types.APIError {
	t.Helper()
	var envelope types.ErrorEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope.Error
}

func login(t *testing.T, reg *store.Registry) {
	t.Helper()
	resp := serve(SessionLogin(reg, nil), newRequest(http.MethodPost, "/api/v1/session/login", "", nil))
	require.Equal(t, http.StatusOK, resp.Code)
}

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

func TestHealthReady(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.Env = "dev"
	cfg.Storage.Driver = "memory"

	resp := serve(HealthReady(cfg, nil, stubPinger{}), httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "dev", resp.Header().Get(envHeader))

	resp = serve(HealthReady(cfg, nil, stubPinger{err: errors.New("down")}), httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
	assert.Equal(t, string(pkgerrors.CodeDependency), decodeError(t, resp).Code)

	resp = serve(HealthLive(cfg), httptest.NewRequest(http.MethodGet, "/health/live", nil))
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestMenuList(t *testing.T) {
	resp := serve(MenuList(testMenu), httptest.NewRequest(http.MethodGet, "/api/v1/menu?category=Drinks", nil))
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope struct {
		Data menuResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Equal(t, []string{"Mains", "Drinks"}, envelope.Data.Categories)
	require.Len(t, envelope.Data.Items, 1)
	assert.Equal(t, "Coke", envelope.Data.Items[0].Name)
	assert.Equal(t, 40, envelope.Data.Items[0].Price)
	assert.Equal(t, "RS 40", envelope.Data.Items[0].PriceLabel)
}

func TestCartAddItemRequiresLogin(t *testing.T) {
	reg := newRegistry(t)

	resp := serve(CartAddItem(reg, testMenu, nil), newRequest(http.MethodPost, "/api/v1/cart/items", `{"id":"p1"}`, nil))
	require.Equal(t, http.StatusOK, resp.Code)

	page := decodePage(t, resp)
	assert.Empty(t, page.View.Cart.Items)
	require.NotEmpty(t, page.Notices)
	assert.Equal(t, store.MessageLoginToAdd, page.Notices[0].Message)
}

func TestCartAddItemFromMenuAndAttributes(t *testing.T) {
	reg := newRegistry(t)
	login(t, reg)

	resp := serve(CartAddItem(reg, testMenu, nil), newRequest(http.MethodPost, "/api/v1/cart/items", `{"id":"p1"}`, nil))
	require.Equal(t, http.StatusOK, resp.Code)

	resp = serve(CartAddItem(reg, testMenu, nil), newRequest(http.MethodPost, "/api/v1/cart/items",
		`{"id":"x9","name":"Special","price":"120abc","image":"s.jpg","buyNow":true}`, nil))
	require.Equal(t, http.StatusOK, resp.Code)

	page := decodePage(t, resp)
	assert.Equal(t, schema.PageCheckout, page.Redirect)
	require.Len(t, page.View.Cart.Items, 2)
	assert.Equal(t, 120, page.View.Cart.Items[1].Price)
	assert.Equal(t, 420, page.View.Cart.Total)
}

func TestCartAddItemUnknownMenuID(t *testing.T) {
	reg := newRegistry(t)
	login(t, reg)

	resp := serve(CartAddItem(reg, testMenu, nil), newRequest(http.MethodPost, "/api/v1/cart/items", `{"id":"nope"}`, nil))
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestCartAddItemBadPrice(t *testing.T) {
	reg := newRegistry(t)
	login(t, reg)

	resp := serve(CartAddItem(reg, testMenu, nil), newRequest(http.MethodPost, "/api/v1/cart/items",
		`{"id":"x9","name":"Special","price":"free"}`, nil))
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, string(pkgerrors.CodeValidation), decodeError(t, resp).Code)
}

func TestCartChangeQuantityAndRemove(t *testing.T) {
	reg := newRegistry(t)
	login(t, reg)
	serve(CartAddItem(reg, testMenu, nil), newRequest(http.MethodPost, "/api/v1/cart/items", `{"id":"p1"}`, nil))
	serve(CartAddItem(reg, testMenu, nil), newRequest(http.MethodPost, "/api/v1/cart/items", `{"id":"c1"}`, nil))

	params := map[string]string{"itemId": "p1"}
	resp := serve(CartChangeQuantity(reg, nil), newRequest(http.MethodPatch, "/api/v1/cart/items/p1", `{"change":2}`, params))
	require.Equal(t, http.StatusOK, resp.Code)
	page := decodePage(t, resp)
	assert.Equal(t, 3, page.View.Cart.Items[0].Quantity)

	resp = serve(CartChangeQuantity(reg, nil), newRequest(http.MethodPatch, "/api/v1/cart/items/p1", `{}`, params))
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = serve(CartRemoveItem(reg, nil), newRequest(http.MethodDelete, "/api/v1/cart/items/p1", "", params))
	require.Equal(t, http.StatusOK, resp.Code)
	page = decodePage(t, resp)
	require.Len(t, page.View.Cart.Items, 1)
	assert.Equal(t, "c1", page.View.Cart.Items[0].ID)
}

func TestCartCheckoutEmpty(t *testing.T) {
	reg := newRegistry(t)

	resp := serve(CartCheckout(reg, nil), newRequest(http.MethodPost, "/api/v1/cart/checkout", "", nil))
	require.Equal(t, http.StatusOK, resp.Code)

	page := decodePage(t, resp)
	assert.Equal(t, schema.PageIndex, page.Redirect)
	require.NotEmpty(t, page.Notices)
	assert.Equal(t, store.MessageCartEmpty, page.Notices[0].Message)
}

func TestCheckoutFlow(t *testing.T) {
	reg := newRegistry(t)
	login(t, reg)

	resp := serve(CheckoutFetch(reg, nil), newRequest(http.MethodGet, "/api/v1/checkout", "", nil))
	assert.Equal(t, schema.PageIndex, decodePage(t, resp).Redirect)

	serve(CartAddItem(reg, testMenu, nil), newRequest(http.MethodPost, "/api/v1/cart/items", `{"id":"p1"}`, nil))

	resp = serve(CheckoutFetch(reg, nil), newRequest(http.MethodGet, "/api/v1/checkout", "", nil))
	page := decodePage(t, resp)
	assert.Empty(t, page.Redirect)
	assert.Equal(t, "RS 300", page.View.Checkout.TotalLabel)

	resp = serve(CheckoutSubmit(reg, nil), newRequest(http.MethodPost, "/api/v1/checkout", `{"fullName":"A","address":"B"}`, nil))
	require.Equal(t, http.StatusBadRequest, resp.Code)
	apiErr := decodeError(t, resp)
	assert.Contains(t, apiErr.Details, "pinCode")

	resp = serve(CheckoutSubmit(reg, nil), newRequest(http.MethodPost, "/api/v1/checkout",
		`{"fullName":"A","address":"B","pinCode":"1","phone":"2"}`, nil))
	require.Equal(t, http.StatusCreated, resp.Code)
	page = decodePage(t, resp)
	assert.Equal(t, schema.PageOrders, page.Redirect)
	require.NotNil(t, page.Order)
	assert.Equal(t, 300, page.Order.Total)
	assert.Empty(t, page.View.Cart.Items)
	assert.Equal(t, "A", page.View.Prefill.FullName)

	resp = serve(OrdersList(reg, nil), newRequest(http.MethodGet, "/api/v1/orders", "", nil))
	require.Equal(t, http.StatusOK, resp.Code)
	var envelope struct {
		Data render.OrderHistory `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.Len(t, envelope.Data.Orders, 1)
	assert.Equal(t, "Total: RS 300", envelope.Data.Orders[0].TotalLabel)
}

func TestOrdersHiddenWhileLoggedOut(t *testing.T) {
	reg := newRegistry(t)

	resp := serve(OrdersList(reg, nil), newRequest(http.MethodGet, "/api/v1/orders?limit=5", "", nil))
	require.Equal(t, http.StatusOK, resp.Code)
	var envelope struct {
		Data render.OrderHistory `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Equal(t, render.MessageOrdersLogin, envelope.Data.Message)

	resp = serve(OrdersList(reg, nil), newRequest(http.MethodGet, "/api/v1/orders?limit=0", "", nil))
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestSessionLogout(t *testing.T) {
	reg := newRegistry(t)
	login(t, reg)
	serve(CartAddItem(reg, testMenu, nil), newRequest(http.MethodPost, "/api/v1/cart/items", `{"id":"p1"}`, nil))

	resp := serve(SessionLogout(reg, nil), newRequest(http.MethodPost, "/api/v1/session/logout", "", nil))
	require.Equal(t, http.StatusOK, resp.Code)
	page := decodePage(t, resp)
	assert.Empty(t, page.View.Cart.Items)
	assert.Equal(t, "Login", page.View.Login.Label)

	resp = serve(NoticeFetch(reg, nil), newRequest(http.MethodGet, "/api/v1/notice", "", nil))
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), store.MessageLoggedOut)
}

func TestOpenSessionWithoutSessionID(t *testing.T) {
	reg := newRegistry(t)

	resp := serve(CartFetch(reg, nil), httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = serve(CartFetch(nil, nil), newRequest(http.MethodGet, "/api/v1/cart", "", nil))
	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}

func TestOrdersPagination(t *testing.T) {
	reg := newRegistry(t)
	login(t, reg)
	for range 3 {
		serve(CartAddItem(reg, testMenu, nil), newRequest(http.MethodPost, "/api/v1/cart/items", `{"id":"c1"}`, nil))
		resp := serve(CheckoutSubmit(reg, nil), newRequest(http.MethodPost, "/api/v1/checkout",
			`{"fullName":"A","address":"B","pinCode":"1","phone":"2"}`, nil))
		require.Equal(t, http.StatusCreated, resp.Code)
	}

	resp := serve(OrdersList(reg, nil), newRequest(http.MethodGet, "/api/v1/orders?limit=2", "", nil))
	require.Equal(t, http.StatusOK, resp.Code)
	var envelope struct {
		Data ordersResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.Len(t, envelope.Data.Orders, 2)
	require.NotEmpty(t, envelope.Data.NextCursor)

	resp = serve(OrdersList(reg, nil), newRequest(http.MethodGet, "/api/v1/orders?limit=2&cursor="+envelope.Data.NextCursor, "", nil))
	require.Equal(t, http.StatusOK, resp.Code)
	envelope.Data = ordersResponse{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Len(t, envelope.Data.Orders, 1)
	assert.Empty(t, envelope.Data.NextCursor)

	resp = serve(OrdersList(reg, nil), newRequest(http.MethodGet, "/api/v1/orders?cursor=bogus!", "", nil))
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}
