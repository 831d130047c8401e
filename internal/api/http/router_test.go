package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	apihttp "github.com/spec-kit/mkulimalink/internal/api/http"
	"github.com/spec-kit/mkulimalink/internal/api/http/handlers"
	"github.com/spec-kit/mkulimalink/internal/auth"
	"github.com/spec-kit/mkulimalink/internal/config"
	"github.com/spec-kit/mkulimalink/internal/events"
	"github.com/spec-kit/mkulimalink/internal/observability"
	"github.com/spec-kit/mkulimalink/internal/repository/inmem"
	"github.com/spec-kit/mkulimalink/internal/service"
	"github.com/spec-kit/mkulimalink/internal/worker"
)

type stubSender struct {
	sends int
	err   error
}

func (s *stubSender) Send(_ context.Context, _, _ string) error {
	if s.err != nil {
		return s.err
	}
	s.sends++
	return nil
}

func newTestApp(t *testing.T, sender *stubSender) *fiber.App {
	t.Helper()

	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 5,
			BcryptCost:            bcrypt.MinCost,
		},
	}

	users := inmem.NewUserRepository()
	dispatcher := events.NewInMemoryDispatcher()
	logger := zap.NewNop()

	accountService := service.NewAccountService(cfg, service.AccountDependencies{
		UserRepo:   users,
		Dispatcher: dispatcher,
		Notifier:   sender,
	})
	catalogService := service.NewCatalogService(service.CatalogDependencies{
		ProduceRepo: inmem.NewProduceRepository(),
		UserRepo:    users,
		Dispatcher:  dispatcher,
	})
	orderService := service.NewOrderService(inmem.NewOrderRepository(), dispatcher)
	worker.StartNotificationWorker(service.NewNotificationService(dispatcher, sender, logger))

	authMiddleware := auth.NewAuthMiddleware(
		auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		users,
	)

	app := fiber.New()
	apihttp.RegisterMiddlewares(app, logger, observability.NewMetrics(), 0)
	apihttp.RegisterRoutes(app, apihttp.RouteConfig{
		Health:         handlers.NewHealthHandler("test", "test", nil, nil),
		Accounts:       handlers.NewAccountsHandler(accountService),
		Admin:          handlers.NewAdminHandler(accountService),
		Produce:        handlers.NewProduceHandler(catalogService),
		Orders:         handlers.NewOrdersHandler(orderService),
		AuthMiddleware: authMiddleware,
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, token string) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	payload := map[string]any{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &payload), "body: %s", raw)
	}
	return resp.StatusCode, payload
}

func registerAdmin(t *testing.T, app *fiber.App) string {
	t.Helper()

	status, _ := doJSON(t, app, http.MethodPost, "/api/register", map[string]any{
		"name": "Admin", "phone": "0700000001", "password": "admin-pw", "role": "Admin",
	}, "")
	require.Equal(t, http.StatusOK, status)

	status, body := doJSON(t, app, http.MethodPost, "/api/login", map[string]any{
		"phone": "0700000001", "password": "admin-pw",
	}, "")
	require.Equal(t, http.StatusOK, status)

	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestMarketplaceLifecycle(t *testing.T) {
	sender := &stubSender{}
	app := newTestApp(t, sender)
	adminToken := registerAdmin(t, app)

	// Farmer registers and is gated on approval.
	status, body := doJSON(t, app, http.MethodPost, "/api/register", map[string]any{
		"name": "Alice", "phone": "0712345678", "password": "secret",
		"role": "Farmer", "location": "Nakuru", "cropType": "maize",
	}, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Registration successful. Waiting for admin approval.", body["message"])

	status, body = doJSON(t, app, http.MethodPost, "/api/login", map[string]any{
		"phone": "0712345678", "password": "secret",
	}, "")
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Waiting for admin approval", body["message"])

	// Admin sees the pending farmer and approves.
	status, body = doJSON(t, app, http.MethodGet, "/api/admin/pending-farmers", nil, adminToken)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, body["farmers"], 1)

	status, body = doJSON(t, app, http.MethodPost, "/api/admin/approve-farmer", map[string]any{
		"phone": "0712345678",
	}, adminToken)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Farmer approved and SMS sent", body["message"])
	assert.Equal(t, 1, sender.sends)

	// Approval is idempotent.
	status, _ = doJSON(t, app, http.MethodPost, "/api/admin/approve-farmer", map[string]any{
		"phone": "+254712345678",
	}, adminToken)
	require.Equal(t, http.StatusOK, status)

	// Farmer can now log in; the record is redacted and canonical.
	status, body = doJSON(t, app, http.MethodPost, "/api/login", map[string]any{
		"phone": "0712345678", "password": "secret",
	}, "")
	require.Equal(t, http.StatusOK, status)
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "+254712345678", user["phone"])
	assert.NotContains(t, user, "password")
	assert.NotContains(t, user, "password_hash")

	// Farmer lists produce; quantity arrives as a string, the legacy way.
	status, body = doJSON(t, app, http.MethodPost, "/api/farmer/add-produce", map[string]any{
		"phone": "0712345678", "cropType": "maize", "quantity": "10", "price": "50",
	}, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Produce added successfully", body["message"])

	status, body = doJSON(t, app, http.MethodGet, "/api/produce", nil, "")
	require.Equal(t, http.StatusOK, status)
	require.Len(t, body["produce"], 1)

	// Buyer places an order.
	status, body = doJSON(t, app, http.MethodPost, "/api/orders", map[string]any{
		"buyerName": "Wanjiku", "buyerNationalId": "12345678",
		"buyerPhone": "0722000111", "farmerPhone": "0712345678",
		"cropType": "maize", "quantity": 3,
	}, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Order placed", body["message"])

	status, body = doJSON(t, app, http.MethodGet, "/api/farmer/orders/0712345678", nil, "")
	require.Equal(t, http.StatusOK, status)
	orders, ok := body["orders"].([]any)
	require.True(t, ok)
	require.Len(t, orders, 1)
	order := orders[0].(map[string]any)
	assert.Equal(t, "PENDING", order["status"])

	// Farmer accepts; both views reflect the terminal status.
	orderID := order["id"]
	status, body = doJSON(t, app, http.MethodPut, "/api/farmer/order-status", map[string]any{
		"orderId": orderID, "status": "ACCEPTED",
	}, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Order updated", body["message"])

	for _, path := range []string{"/api/farmer/orders/0712345678", "/api/buyer/orders/0722000111"} {
		status, body = doJSON(t, app, http.MethodGet, path, nil, "")
		require.Equal(t, http.StatusOK, status)
		orders := body["orders"].([]any)
		require.Len(t, orders, 1)
		assert.Equal(t, "ACCEPTED", orders[0].(map[string]any)["status"])
	}

	// Terminal orders reject further transitions.
	status, body = doJSON(t, app, http.MethodPut, "/api/farmer/order-status", map[string]any{
		"orderId": orderID, "status": "REJECTED",
	}, "")
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INVALID_STATUS", body["code"])
}

func TestApprovalReportsSMSFailure(t *testing.T) {
	sender := &stubSender{err: assert.AnError}
	app := newTestApp(t, sender)
	adminToken := registerAdmin(t, app)

	status, _ := doJSON(t, app, http.MethodPost, "/api/register", map[string]any{
		"name": "Alice", "phone": "0712345678", "password": "secret", "role": "Farmer",
	}, "")
	require.Equal(t, http.StatusOK, status)

	status, body := doJSON(t, app, http.MethodPost, "/api/admin/approve-farmer", map[string]any{
		"phone": "0712345678",
	}, adminToken)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Farmer approved but SMS failed", body["message"])

	// The approval itself committed.
	status, _ = doJSON(t, app, http.MethodPost, "/api/login", map[string]any{
		"phone": "0712345678", "password": "secret",
	}, "")
	assert.Equal(t, http.StatusOK, status)
}

func TestRegisterRejectsDuplicateAndInvalidPhone(t *testing.T) {
	app := newTestApp(t, &stubSender{})

	payload := map[string]any{
		"name": "Bob", "phone": "0722000111", "password": "pw", "role": "Buyer",
	}
	status, _ := doJSON(t, app, http.MethodPost, "/api/register", payload, "")
	require.Equal(t, http.StatusOK, status)

	status, body := doJSON(t, app, http.MethodPost, "/api/register", payload, "")
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "Phone already registered", body["message"])

	payload["phone"] = "12345"
	status, body = doJSON(t, app, http.MethodPost, "/api/register", payload, "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid phone format", body["message"])
}

func TestAdminEndpointsRequireAdminToken(t *testing.T) {
	app := newTestApp(t, &stubSender{})

	status, _ := doJSON(t, app, http.MethodGet, "/api/admin/pending-farmers", nil, "")
	assert.Equal(t, http.StatusUnauthorized, status)

	// A buyer token is not enough.
	st, _ := doJSON(t, app, http.MethodPost, "/api/register", map[string]any{
		"name": "Bob", "phone": "0722000111", "password": "pw", "role": "Buyer",
	}, "")
	require.Equal(t, http.StatusOK, st)
	st, body := doJSON(t, app, http.MethodPost, "/api/login", map[string]any{
		"phone": "0722000111", "password": "pw",
	}, "")
	require.Equal(t, http.StatusOK, st)
	buyerToken := body["token"].(string)

	status, _ = doJSON(t, app, http.MethodGet, "/api/admin/pending-farmers", nil, buyerToken)
	assert.Equal(t, http.StatusForbidden, status)
}
