package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"bakery-shop/internal/dto"
	"bakery-shop/internal/model"
	"bakery-shop/internal/repository"
	"bakery-shop/internal/service"
	"bakery-shop/internal/token"
)

func newTestServer(t *testing.T, adminContacts ...string) *httptest.Server {
	t.Helper()

	store := repository.NewMemoryStore()
	codec := token.NewCodec("test-secret", time.Hour)
	authService := service.NewAuthService(store.Users(), codec, adminContacts)
	orderService := service.NewOrderService(store.Users(), store.Orders())

	srv := NewServer(authService, orderService, codec, "", zap.NewNop())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url, bearer string, body any, out any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(res.Body).Decode(out))
	}
	return res
}

func registerBody(phone string) map[string]any {
	return map[string]any{
		"firstName":       "Anna",
		"lastName":        "Schmidt",
		"phone":           phone,
		"password":        "secret123",
		"confirmPassword": "secret123",
		"street":          "Hauptstrasse",
		"houseNumber":     "12",
		"postalCode":      "10115",
		"city":            "Berlin",
		"state":           "Berlin",
	}
}

func register(t *testing.T, ts *httptest.Server, phone string) dto.AuthResponse {
	t.Helper()

	var resp dto.AuthResponse
	res := doJSON(t, http.MethodPost, ts.URL+"/api/register", "", registerBody(phone), &resp)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.True(t, resp.Success)
	require.NotEmpty(t, resp.Token)
	return resp
}

func TestRegister_DuplicatePhoneConflicts(t *testing.T) {
	ts := newTestServer(t)

	register(t, ts, "+4915100000001")

	var errResp dto.ErrorResponse
	res := doJSON(t, http.MethodPost, ts.URL+"/api/register", "", registerBody("+4915100000001"), &errResp)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.NotEmpty(t, errResp.Error)
}

func TestRegister_MissingFields(t *testing.T) {
	ts := newTestServer(t)

	body := registerBody("+4915100000001")
	delete(body, "firstName")

	var errResp dto.ErrorResponse
	res := doJSON(t, http.MethodPost, ts.URL+"/api/register", "", body, &errResp)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.NotEmpty(t, errResp.Error)
}

func TestRegister_DoesNotLeakPasswordHash(t *testing.T) {
	ts := newTestServer(t)

	raw, err := json.Marshal(registerBody("+4915100000001"))
	require.NoError(t, err)
	res, err := http.Post(ts.URL+"/api/register", "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	defer res.Body.Close()

	payload, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.NotContains(t, string(payload), "passwordHash")
	assert.NotContains(t, string(payload), "$2a$")
}

func TestAuthStatus(t *testing.T) {
	ts := newTestServer(t)
	registered := register(t, ts, "+4915100000001")

	var anon dto.StatusResponse
	doJSON(t, http.MethodGet, ts.URL+"/api/auth/status", "", nil, &anon)
	assert.False(t, anon.Authenticated)

	var authed dto.StatusResponse
	doJSON(t, http.MethodGet, ts.URL+"/api/auth/status", registered.Token, nil, &authed)
	assert.True(t, authed.Authenticated)
	assert.Equal(t, registered.User.ID, authed.UserID)
}

func TestCurrentUser(t *testing.T) {
	ts := newTestServer(t)
	registered := register(t, ts, "+4915100000001")

	var user model.User
	res := doJSON(t, http.MethodGet, ts.URL+"/api/user", registered.Token, nil, &user)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, registered.User.ID, user.ID)

	res = doJSON(t, http.MethodGet, ts.URL+"/api/user", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestOrders_RequireAuth(t *testing.T) {
	ts := newTestServer(t)

	res := doJSON(t, http.MethodGet, ts.URL+"/api/orders", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestOrders_OwnershipFiltering(t *testing.T) {
	ts := newTestServer(t)
	userA := register(t, ts, "+4915100000001")
	userB := register(t, ts, "+4915100000002")

	var created dto.CreateOrderResponse
	res := doJSON(t, http.MethodPost, ts.URL+"/api/orders", userA.Token,
		map[string]any{"quantity": 1, "totalAmount": 3.5}, &created)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var listB dto.OrdersResponse
	doJSON(t, http.MethodGet, ts.URL+"/api/orders", userB.Token, nil, &listB)
	assert.Empty(t, listB.Orders)

	var listA dto.OrdersResponse
	doJSON(t, http.MethodGet, ts.URL+"/api/orders", userA.Token, nil, &listA)
	require.Len(t, listA.Orders, 1)
	assert.Equal(t, created.OrderID, listA.Orders[0].ID)
}

func TestOrders_ContactFallbackWithoutToken(t *testing.T) {
	ts := newTestServer(t)
	registered := register(t, ts, "+4915100000001")

	var created dto.CreateOrderResponse
	res := doJSON(t, http.MethodPost, ts.URL+"/api/orders", "",
		map[string]any{
			"quantity": 1,
			"userData": map[string]any{"phone": "+4915100000001"},
		}, &created)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.True(t, created.Success)

	var list dto.OrdersResponse
	doJSON(t, http.MethodGet, ts.URL+"/api/orders", registered.Token, nil, &list)
	require.Len(t, list.Orders, 1)
	assert.Equal(t, registered.User.ID, list.Orders[0].UserID)
}

func TestOrders_UnknownUser(t *testing.T) {
	ts := newTestServer(t)

	var errResp dto.ErrorResponse
	res := doJSON(t, http.MethodPost, ts.URL+"/api/orders", "",
		map[string]any{"quantity": 1, "userId": 999}, &errResp)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestAdmin_RoleGate(t *testing.T) {
	ts := newTestServer(t, "+4915100000009")
	customer := register(t, ts, "+4915100000001")
	admin := register(t, ts, "+4915100000009")

	res := doJSON(t, http.MethodGet, ts.URL+"/api/admin/database", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res = doJSON(t, http.MethodGet, ts.URL+"/api/admin/database", customer.Token, nil, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	var dump dto.DatabaseDumpResponse
	res = doJSON(t, http.MethodGet, ts.URL+"/api/admin/database", admin.Token, nil, &dump)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.True(t, dump.Success)
	assert.Equal(t, 2, dump.TotalUsers)
}

func TestEndToEnd_RegisterOrderDeliver(t *testing.T) {
	ts := newTestServer(t, "+4915100000009")

	// Register and place an order through a login-refreshed token.
	register(t, ts, "+4915100000001")

	var login dto.AuthResponse
	res := doJSON(t, http.MethodPost, ts.URL+"/api/login", "",
		map[string]any{"contact": "+4915100000001", "password": "secret123"}, &login)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.True(t, login.Success)

	var created dto.CreateOrderResponse
	res = doJSON(t, http.MethodPost, ts.URL+"/api/orders", login.Token,
		map[string]any{
			"items": []map[string]any{
				{"name": "Barbari-Brot", "price": 3.5, "quantity": 2},
			},
		}, &created)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var list dto.OrdersResponse
	doJSON(t, http.MethodGet, ts.URL+"/api/orders", login.Token, nil, &list)
	require.Len(t, list.Orders, 1)
	assert.Equal(t, created.OrderID, list.Orders[0].ID)
	assert.Equal(t, model.OrderStatusPending, list.Orders[0].Status)

	// Deliver as admin, twice; the status sticks and the call stays ok.
	admin := register(t, ts, "+4915100000009")
	for i := 0; i < 2; i++ {
		var marked dto.SuccessResponse
		res = doJSON(t, http.MethodPost, ts.URL+"/api/admin/mark-delivered", admin.Token,
			map[string]any{"orderId": created.OrderID}, &marked)
		require.Equal(t, http.StatusOK, res.StatusCode)
		require.True(t, marked.Success)
	}

	doJSON(t, http.MethodGet, ts.URL+"/api/orders", login.Token, nil, &list)
	require.Len(t, list.Orders, 1)
	assert.Equal(t, model.OrderStatusDelivered, list.Orders[0].Status)
	assert.NotNil(t, list.Orders[0].DeliveredAt)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	ts := newTestServer(t)
	register(t, ts, "+4915100000001")

	var unknown dto.ErrorResponse
	res := doJSON(t, http.MethodPost, ts.URL+"/api/login", "",
		map[string]any{"contact": "+4915199999999", "password": "secret123"}, &unknown)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	var wrong dto.ErrorResponse
	res = doJSON(t, http.MethodPost, ts.URL+"/api/login", "",
		map[string]any{"contact": "+4915100000001", "password": "wrongpass1"}, &wrong)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	// Same message either way, so accounts cannot be enumerated.
	assert.Equal(t, unknown.Error, wrong.Error)
}

func TestLogout(t *testing.T) {
	ts := newTestServer(t)

	var resp dto.SuccessResponse
	res := doJSON(t, http.MethodPost, ts.URL+"/api/logout", "", nil, &resp)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.True(t, resp.Success)
}
