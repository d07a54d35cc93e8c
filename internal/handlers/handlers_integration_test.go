package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"storefront/internal/database"
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/server"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testJWTSecret = "test_jwt_secret"

type recordingPublisher struct {
	mu   sync.Mutex
	keys []string
}

func (p *recordingPublisher) Publish(_ context.Context, routingKey string, _ []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, routingKey)
	return nil
}

func (p *recordingPublisher) routingKeys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.keys...)
}

type testApp struct {
	app       *fiber.App
	db        *gorm.DB
	publisher *recordingPublisher
}

// setupApp builds the full application against a private in-memory SQLite database.
func setupApp(t *testing.T) *testApp {
	t.Helper()
	db, err := database.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	publisher := &recordingPublisher{}
	app := server.New(server.Dependencies{
		DB:        db,
		JWTSecret: testJWTSecret,
		TokenTTL:  time.Hour,
		Publisher: publisher,
		AccessLog: io.Discard,
	})
	return &testApp{app: app, db: db, publisher: publisher}
}

// TestMain runs setup and teardown for all tests
func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	os.Exit(m.Run())
}

func (a *testApp) do(t *testing.T, method, path string, body interface{}, token string) (*http.Response, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.app.Test(req, -1) // -1 for no timeout
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), string(raw))
	}
	return resp, decoded
}

func (a *testApp) registerMember(t *testing.T, email string) string {
	t.Helper()
	resp, _ := a.do(t, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"first_name": "Test",
		"last_name":  "Member",
		"email":      email,
		"password":   "password123",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := a.do(t, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    email,
		"password": "password123",
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return body["token"].(string)
}

func (a *testApp) loginAdmin(t *testing.T) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("adminpass123"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, a.db.Create(&models.User{
		ID:        uuid.NewString(),
		FirstName: "Store",
		LastName:  "Admin",
		Email:     "admin@example.com",
		Password:  string(hash),
		Role:      models.RoleAdmin,
		IsActive:  true,
	}).Error)

	resp, body := a.do(t, http.MethodPost, "/api/v1/auth/login_admin", map[string]string{
		"email":    "admin@example.com",
		"password": "adminpass123",
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return body["token"].(string)
}

func (a *testApp) createProduct(t *testing.T, adminToken, sku, price string) uint {
	t.Helper()
	resp, body := a.do(t, http.MethodPost, "/api/v1/products", map[string]interface{}{
		"name":  "Product " + sku,
		"price": price,
		"stock": 10,
		"sku":   sku,
	}, adminToken)
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)
	return uint(body["id"].(float64))
}

func orderRequest(productID uint, quantity int) map[string]interface{} {
	return map[string]interface{}{
		"items":                []map[string]interface{}{{"productId": productID, "quantity": quantity}},
		"paymentMethod":        "card",
		"shippingFullName":     "Test Member",
		"shippingAddressLine1": "1 Main St",
		"shippingCity":         "Springfield",
		"shippingZip":          "12345",
		"shippingCountry":      "US",
		"shippingPhone":        "555-0100",
		"shippingState":        "IL",
		"shippingCost":         "10.00",
	}
}

func decimalField(t *testing.T, body map[string]interface{}, key string) decimal.Decimal {
	t.Helper()
	raw, ok := body[key].(string)
	require.True(t, ok, "%s is not a decimal string: %v", key, body[key])
	return decimal.RequireFromString(raw)
}

func TestAuthRegisterAndLogin(t *testing.T) {
	a := setupApp(t)

	register := map[string]string{
		"first_name": "Test",
		"last_name":  "User",
		"email":      "test@example.com",
		"password":   "password123",
	}
	resp, body := a.do(t, http.MethodPost, "/api/v1/auth/register", register, "")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "User registered successfully", body["message"])
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "member", user["role"])
	assert.NotContains(t, user, "password")

	// Test Duplicate Registration
	resp, _ = a.do(t, http.MethodPost, "/api/v1/auth/register", register, "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Test validation failure
	resp, body = a.do(t, http.MethodPost, "/api/v1/auth/register", map[string]string{"email": "not-an-email"}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Validation failed", body["message"])
	assert.Contains(t, body["errors"], "Email")
	assert.Contains(t, body["errors"], "Password")

	// Test Login
	resp, body = a.do(t, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "test@example.com",
		"password": "password123",
	}, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["token"])
	var memberCookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == middleware.MemberCookie {
			memberCookie = c
		}
	}
	require.NotNil(t, memberCookie)
	assert.True(t, memberCookie.HttpOnly)
	assert.Equal(t, body["token"], memberCookie.Value)

	// Wrong password
	resp, _ = a.do(t, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "test@example.com",
		"password": "wrong-password",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Members cannot use the admin login
	resp, _ = a.do(t, http.MethodPost, "/api/v1/auth/login_admin", map[string]string{
		"email":    "test@example.com",
		"password": "password123",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthCookieAndLogout(t *testing.T) {
	a := setupApp(t)
	token := a.registerMember(t, "cookie@example.com")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	req.AddCookie(&http.Cookie{Name: middleware.MemberCookie, Value: token})
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = a.do(t, http.MethodPost, "/api/v1/auth/logout", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	cleared := map[string]bool{}
	for _, c := range resp.Cookies() {
		if c.Value == "" {
			cleared[c.Name] = true
		}
	}
	assert.True(t, cleared[middleware.MemberCookie])
	assert.True(t, cleared[middleware.AdminCookie])
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	a := setupApp(t)

	resp, body := a.do(t, http.MethodGet, "/api/v1/orders", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Authentication token is required", body["message"])

	resp, _ = a.do(t, http.MethodGet, "/api/v1/cart", nil, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	req.Header.Set("Authorization", "Token abc")
	raw, err := a.app.Test(req, -1)
	require.NoError(t, err)
	raw.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, raw.StatusCode)
}

func TestProductEndpoints(t *testing.T) {
	a := setupApp(t)
	adminToken := a.loginAdmin(t)
	memberToken := a.registerMember(t, "shopper@example.com")

	// Members cannot manage the catalog
	resp, _ := a.do(t, http.MethodPost, "/api/v1/products", map[string]interface{}{
		"name": "Nope", "price": "1.00", "sku": "NOPE",
	}, memberToken)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	id := a.createProduct(t, adminToken, "DESK-1", "149.99")

	// Duplicate SKU
	resp, _ = a.do(t, http.MethodPost, "/api/v1/products", map[string]interface{}{
		"name": "Desk again", "price": "149.99", "sku": "DESK-1",
	}, adminToken)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Public listing and lookup
	resp, body := a.do(t, http.MethodGet, "/api/v1/products?page=1&limit=5", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["total"])
	assert.Equal(t, float64(1), body["page"])
	assert.Equal(t, float64(1), body["pageCount"])
	assert.Len(t, body["data"], 1)

	resp, body = a.do(t, http.MethodGet, "/api/v1/products/"+itoa(id), nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decimalField(t, body, "price").Equal(decimal.RequireFromString("149.99")))

	// Soft delete hides it
	resp, _ = a.do(t, http.MethodDelete, "/api/v1/products/"+itoa(id), nil, adminToken)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = a.do(t, http.MethodGet, "/api/v1/products/"+itoa(id), nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = a.do(t, http.MethodGet, "/api/v1/products/abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid id parameter", body["message"])
}

func TestCartToOrderFlow(t *testing.T) {
	a := setupApp(t)
	adminToken := a.loginAdmin(t)
	memberToken := a.registerMember(t, "buyer@example.com")
	productID := a.createProduct(t, adminToken, "LAMP-1", "100.00")

	resp, _ := a.do(t, http.MethodPost, "/api/v1/cart/items", map[string]interface{}{
		"product_id": productID, "quantity": 2,
	}, memberToken)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := a.do(t, http.MethodGet, "/api/v1/cart/count", nil, memberToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(2), body["count"])

	resp, body = a.do(t, http.MethodPost, "/api/v1/orders", orderRequest(productID, 2), memberToken)
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)
	assert.True(t, strings.HasPrefix(body["order_number"].(string), "ORD"))
	assert.Equal(t, "pending", body["order_status"])
	assert.True(t, decimalField(t, body, "subtotal").Equal(decimal.NewFromInt(200)))
	assert.True(t, decimalField(t, body, "total_price").Equal(decimal.NewFromInt(210)))
	orderID := uint(body["id"].(float64))

	// The cart was drained in the same transaction
	resp, body = a.do(t, http.MethodGet, "/api/v1/cart/count", nil, memberToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(0), body["count"])

	resp, body = a.do(t, http.MethodGet, "/api/v1/orders", nil, memberToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["total"])

	assert.Equal(t, []string{services.EventOrderCreated}, a.publisher.routingKeys())

	// Another member cannot see or cancel it
	otherToken := a.registerMember(t, "other@example.com")
	resp, _ = a.do(t, http.MethodGet, "/api/v1/orders/"+itoa(orderID), nil, otherToken)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, _ = a.do(t, http.MethodPatch, "/api/v1/orders/"+itoa(orderID)+"/cancel", nil, otherToken)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = a.do(t, http.MethodGet, "/api/v1/orders/9999", nil, memberToken)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Owner cancels once
	resp, body = a.do(t, http.MethodPatch, "/api/v1/orders/"+itoa(orderID)+"/cancel", nil, memberToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "cancelled", body["order"].(map[string]interface{})["order_status"])

	resp, _ = a.do(t, http.MethodPatch, "/api/v1/orders/"+itoa(orderID)+"/cancel", nil, memberToken)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Cancelled orders drop out of the member listing
	resp, body = a.do(t, http.MethodGet, "/api/v1/orders", nil, memberToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(0), body["total"])
}

func TestCreateOrderWithNumericAmounts(t *testing.T) {
	a := setupApp(t)
	adminToken := a.loginAdmin(t)
	memberToken := a.registerMember(t, "numbers@example.com")
	productID := a.createProduct(t, adminToken, "DESK-1", "100.00")

	body := map[string]interface{}{
		"items":                []map[string]interface{}{{"productId": productID, "quantity": 2}},
		"paymentMethod":        "card",
		"shippingFullName":     "Jane Doe",
		"shippingAddressLine1": "5 Elm St",
		"shippingAddressLine2": "Apt 2",
		"shippingCity":         "Springfield",
		"shippingZip":          "12345",
		"shippingCountry":      "US",
		"shippingPhone":        "555-0101",
		"shippingState":        "IL",
		"couponCode":           "SAVE10",
		"discountValue":        10,
		"shippingCost":         20,
	}
	resp, order := a.do(t, http.MethodPost, "/api/v1/orders", body, memberToken)
	require.Equal(t, http.StatusCreated, resp.StatusCode, order)
	assert.True(t, decimalField(t, order, "subtotal").Equal(decimal.NewFromInt(200)))
	assert.True(t, decimalField(t, order, "total_price").Equal(decimal.NewFromInt(210)))
	assert.Equal(t, "SAVE10", order["coupon_code"])
	assert.Equal(t, "Apt 2", order["shipping_address_line2"])

	items := order["items"].([]interface{})
	require.Len(t, items, 1)
	item := items[0].(map[string]interface{})
	assert.Equal(t, float64(productID), item["product_id"])
	assert.Equal(t, float64(2), item["quantity"])
}

func TestCreateOrderRejectsBadRequests(t *testing.T) {
	a := setupApp(t)
	adminToken := a.loginAdmin(t)
	memberToken := a.registerMember(t, "picky@example.com")
	productID := a.createProduct(t, adminToken, "CUP-1", "5.00")

	// No items
	req := orderRequest(productID, 1)
	req["items"] = []map[string]interface{}{}
	resp, body := a.do(t, http.MethodPost, "/api/v1/orders", req, memberToken)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["errors"], "Items")

	// Unknown product
	resp, _ = a.do(t, http.MethodPost, "/api/v1/orders", orderRequest(productID+100, 1), memberToken)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Discount larger than the subtotal
	req = orderRequest(productID, 1)
	req["discountValue"] = "50.00"
	resp, _ = a.do(t, http.MethodPost, "/api/v1/orders", req, memberToken)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Staff accounts do not place orders
	resp, _ = a.do(t, http.MethodPost, "/api/v1/orders", orderRequest(productID, 1), adminToken)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAdminOrderManagement(t *testing.T) {
	a := setupApp(t)
	adminToken := a.loginAdmin(t)
	memberToken := a.registerMember(t, "customer@example.com")
	productID := a.createProduct(t, adminToken, "BOOK-1", "20.00")

	resp, body := a.do(t, http.MethodPost, "/api/v1/orders", orderRequest(productID, 1), memberToken)
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)
	orderID := itoa(uint(body["id"].(float64)))
	orderNumber := body["order_number"].(string)

	// Members cannot use the admin endpoints
	resp, _ = a.do(t, http.MethodGet, "/api/v1/orders/admin", nil, memberToken)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, _ = a.do(t, http.MethodPatch, "/api/v1/orders/"+orderID, map[string]string{"order_status": "paid"}, memberToken)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Search by order number
	resp, body = a.do(t, http.MethodGet, "/api/v1/orders/admin?search="+orderNumber, nil, adminToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["total"])

	resp, body = a.do(t, http.MethodGet, "/api/v1/orders/admin?status=bogus", nil, adminToken)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Skipping a step is rejected
	resp, _ = a.do(t, http.MethodPatch, "/api/v1/orders/"+orderID, map[string]string{"order_status": "delivered"}, adminToken)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, body = a.do(t, http.MethodPatch, "/api/v1/orders/"+orderID, map[string]string{"order_status": "paid"}, adminToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "paid", body["order"].(map[string]interface{})["order_status"])

	resp, body = a.do(t, http.MethodPatch, "/api/v1/orders/"+orderID, map[string]string{
		"order_status":    "shipped",
		"tracking_number": "TRACK-123",
	}, adminToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	order := body["order"].(map[string]interface{})
	assert.Equal(t, "shipped", order["order_status"])
	assert.Equal(t, "TRACK-123", order["tracking_number"])

	// Admin can read any order
	resp, _ = a.do(t, http.MethodGet, "/api/v1/orders/"+orderID, nil, adminToken)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, []string{
		services.EventOrderCreated,
		services.EventOrderStatusChanged,
		services.EventOrderStatusChanged,
	}, a.publisher.routingKeys())
}

func TestPaymentMethodValidation(t *testing.T) {
	a := setupApp(t)
	token := a.registerMember(t, "payer@example.com")

	resp, body := a.do(t, http.MethodPost, "/api/v1/payment-methods", map[string]interface{}{
		"cardholder_name": "Test Payer",
		"card_number":     "4111111111111111",
		"expiry_date":     "13/29",
	}, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["errors"], "ExpiryDate")

	resp, body = a.do(t, http.MethodPost, "/api/v1/payment-methods", map[string]interface{}{
		"cardholder_name": "Test Payer",
		"card_number":     "4111111111111111",
		"expiry_date":     "12/29",
	}, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)
	assert.Equal(t, "1111", body["card_last4"])
	assert.NotContains(t, body, "card_number")
}

func TestHealthAndUnknownRoute(t *testing.T) {
	a := setupApp(t)

	resp, body := a.do(t, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "up", body["checks"].(map[string]interface{})["database"])

	resp, body = a.do(t, http.MethodGet, "/api/v1/nowhere", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.NotEmpty(t, body["message"])
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func TestUserManagement(t *testing.T) {
	a := setupApp(t)
	adminToken := a.loginAdmin(t)
	memberToken := a.registerMember(t, "regular@example.com")

	// Members keep their own profile but not the staff listing
	resp, body := a.do(t, http.MethodGet, "/api/v1/users/me", nil, memberToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "regular@example.com", body["email"])
	resp, _ = a.do(t, http.MethodGet, "/api/v1/users", nil, memberToken)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, _ = a.do(t, http.MethodGet, "/api/v1/users", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body = a.do(t, http.MethodPost, "/api/v1/users", map[string]interface{}{
		"first_name": "Sue",
		"last_name":  "Visor",
		"email":      "sue@example.com",
		"password":   "password123",
		"role":       "supervisor",
	}, adminToken)
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)
	supervisorID := body["user"].(map[string]interface{})["id"].(string)

	resp, body = a.do(t, http.MethodPost, "/api/v1/users", map[string]interface{}{
		"first_name": "Bad",
		"last_name":  "Role",
		"email":      "bad@example.com",
		"password":   "password123",
		"role":       "root",
	}, adminToken)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["errors"], "Role")

	resp, body = a.do(t, http.MethodGet, "/api/v1/users?role=member", nil, adminToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["total"])
	assert.Equal(t, float64(1), body["pageCount"])
	memberID := body["data"].([]interface{})[0].(map[string]interface{})["id"].(string)

	resp, body = a.do(t, http.MethodGet, "/api/v1/users/admins", nil, adminToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(2), body["total"])

	resp, body = a.do(t, http.MethodGet, "/api/v1/users?search=SUE", nil, adminToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["total"])

	resp, body = a.do(t, http.MethodGet, "/api/v1/users/"+memberID, nil, adminToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "regular@example.com", body["email"])

	resp, body = a.do(t, http.MethodPost, "/api/v1/users/"+memberID+"/update", map[string]interface{}{
		"first_name": "Renamed",
		"is_active":  false,
	}, adminToken)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "Renamed", user["first_name"])
	assert.Equal(t, false, user["is_active"])

	resp, _ = a.do(t, http.MethodDelete, "/api/v1/users/"+supervisorID, nil, adminToken)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = a.do(t, http.MethodGet, "/api/v1/users/"+supervisorID, nil, adminToken)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// The deleted account can no longer sign in
	resp, _ = a.do(t, http.MethodPost, "/api/v1/auth/login_admin", map[string]string{
		"email": "sue@example.com", "password": "password123",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
