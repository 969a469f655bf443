package sandbox_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naayikhata/khata-go/internal/application/dto"
	"github.com/naayikhata/khata-go/internal/domain/entity"
	"github.com/naayikhata/khata-go/internal/sandbox"
)

const testSecret = "sandbox-test-secret"

func newTestApp() *fiber.App {
	return sandbox.New(sandbox.Options{
		JWTSecret:     testSecret,
		JWTIssuer:     "khata-sandbox-test",
		JWTExpMinutes: 60,
	})
}

// doJSON sends a request with an optional JSON body and bearer token and
// decodes the response into out (when non-nil).
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body, out any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

// registerShop creates an account and returns its access token.
func registerShop(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	var tok dto.TokenResponse
	resp := doJSON(t, app, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Email:    email,
		Password: "secret-password",
		ShopName: "Sharma Salon",
		PAN:      "ABCDE1234F",
	}, &tok)
	require.Equal(t, http.StatusCreated, resp.StatusCode, "register must succeed")
	require.NotEmpty(t, tok.AccessToken)
	assert.Equal(t, "bearer", tok.TokenType)
	return tok.AccessToken
}

func TestRegister_SeedsDefaultPriceList(t *testing.T) {
	app := newTestApp()
	token := registerShop(t, app, "owner@example.com")

	var services []entity.Service
	resp := doJSON(t, app, http.MethodGet, "/api/services", token, nil, &services)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, services, 5, "a new shop starts with the default price list")

	prices := map[string]int64{}
	for _, s := range services {
		prices[s.Name] = s.PricePaise
		assert.True(t, s.Active)
		assert.NotEmpty(t, s.ID)
	}
	assert.Equal(t, int64(15000), prices["Haircut"])
	assert.Equal(t, int64(8000), prices["Beard"])
	assert.Equal(t, int64(6000), prices["Trimming"])
	assert.Equal(t, int64(25000), prices["Facial"])
	assert.Equal(t, int64(20000), prices["Haircut + Beard"])
}

func TestRegister_DuplicateEmailConflicts(t *testing.T) {
	app := newTestApp()
	registerShop(t, app, "owner@example.com")

	var errBody struct {
		Detail string `json:"detail"`
	}
	resp := doJSON(t, app, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Email:    "owner@example.com",
		Password: "another-password",
		ShopName: "Copycat",
	}, &errBody)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "Email already registered", errBody.Detail)
}

func TestRegister_ValidationDetailArray(t *testing.T) {
	app := newTestApp()

	var errBody struct {
		Detail []struct {
			Loc []any  `json:"loc"`
			Msg string `json:"msg"`
		} `json:"detail"`
	}
	resp := doJSON(t, app, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Email:    "not-an-email",
		Password: "short",
	}, &errBody)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	require.Len(t, errBody.Detail, 3, "email, password, and shop_name should each be flagged")
}

func TestLogin_WrongPasswordUnauthorized(t *testing.T) {
	app := newTestApp()
	registerShop(t, app, "owner@example.com")

	resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{
		Email:    "owner@example.com",
		Password: "wrong-password",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMe_ReturnsShopIdentity(t *testing.T) {
	app := newTestApp()
	token := registerShop(t, app, "owner@example.com")

	var me entity.Me
	resp := doJSON(t, app, http.MethodGet, "/api/users/me", token, nil, &me)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "owner@example.com", me.Email)
	assert.Equal(t, "Sharma Salon", me.ShopName)
	assert.NotEmpty(t, me.ShopID)
}

func TestProtectedRoute_RequiresToken(t *testing.T) {
	app := newTestApp()

	resp := doJSON(t, app, http.MethodGet, "/api/services", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCustomers_DuplicatePhoneConflicts(t *testing.T) {
	app := newTestApp()
	token := registerShop(t, app, "owner@example.com")

	resp := doJSON(t, app, http.MethodPost, "/api/customers", token, dto.CreateCustomerRequest{
		Name: "Ravi", Phone: "9876543210",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/customers", token, dto.CreateCustomerRequest{
		Name: "Someone Else", Phone: "9876543210",
	}, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestCustomers_ListEnvelopeAndQuery(t *testing.T) {
	app := newTestApp()
	token := registerShop(t, app, "owner@example.com")

	for i, name := range []string{"Ravi Kumar", "Ravi Shankar", "Anita"} {
		resp := doJSON(t, app, http.MethodPost, "/api/customers", token, dto.CreateCustomerRequest{
			Name: name, Phone: fmt.Sprintf("98765%05d", i),
		}, nil)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	var envelope dto.ListEnvelope[entity.Customer]
	resp := doJSON(t, app, http.MethodGet, "/api/customers?query=ravi", token, nil, &envelope)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, envelope.Items, 2, "name match is case-insensitive")
	assert.Equal(t, 2, envelope.Total)
	assert.False(t, envelope.HasMore)
}

// confirmInvoice posts a bill for the given service names and returns the
// confirmed invoice.
func confirmInvoice(t *testing.T, app *fiber.App, token string, in dto.CreateInvoiceRequest) entity.Invoice {
	t.Helper()
	var inv entity.Invoice
	resp := doJSON(t, app, http.MethodPost, "/api/invoices/", token, in, &inv)
	require.Equal(t, http.StatusCreated, resp.StatusCode, "invoice must be created")
	return inv
}

func serviceID(t *testing.T, app *fiber.App, token, name string) string {
	t.Helper()
	var services []entity.Service
	resp := doJSON(t, app, http.MethodGet, "/api/services", token, nil, &services)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	for _, s := range services {
		if s.Name == name {
			return s.ID
		}
	}
	t.Fatalf("service %q not found", name)
	return ""
}

func TestCreateInvoice_SnapshotsPricesAndHoldsInvariants(t *testing.T) {
	app := newTestApp()
	token := registerShop(t, app, "owner@example.com")
	haircut := serviceID(t, app, token, "Haircut")
	beard := serviceID(t, app, token, "Beard")

	inv := confirmInvoice(t, app, token, dto.CreateInvoiceRequest{
		Items: []dto.CreateInvoiceItem{
			{ServiceID: haircut, Qty: 2},
			{ServiceID: beard, Qty: 1},
		},
		DiscountPaise: 3000,
		PaymentMethod: entity.PaymentCash,
	})

	assert.Equal(t, int64(38000), inv.SubtotalPaise, "2×15000 + 8000")
	assert.Equal(t, int64(3000), inv.DiscountPaise)
	assert.Equal(t, int64(35000), inv.TotalPaise)
	require.Len(t, inv.Items, 2)
	assert.Equal(t, int64(15000), inv.Items[0].UnitPricePaise, "price snapshot from the catalog")
	require.Len(t, inv.Payments, 1)
	assert.Equal(t, "CASH", inv.Payments[0].Method)
	assert.Equal(t, inv.TotalPaise, inv.Payments[0].AmountPaise)
}

func TestCreateInvoice_DiscountFloorsAtZero(t *testing.T) {
	app := newTestApp()
	token := registerShop(t, app, "owner@example.com")
	trimming := serviceID(t, app, token, "Trimming")

	inv := confirmInvoice(t, app, token, dto.CreateInvoiceRequest{
		Items:         []dto.CreateInvoiceItem{{ServiceID: trimming, Qty: 1}},
		DiscountPaise: 99999,
		PaymentMethod: entity.PaymentUPI,
	})
	assert.Equal(t, int64(0), inv.TotalPaise, "total never goes negative")
}

func TestCreateInvoice_EmptyItemsRejected(t *testing.T) {
	app := newTestApp()
	token := registerShop(t, app, "owner@example.com")

	resp := doJSON(t, app, http.MethodPost, "/api/invoices/", token, dto.CreateInvoiceRequest{
		PaymentMethod: entity.PaymentCash,
	}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestCreateInvoice_UnknownPaymentMethodRejected(t *testing.T) {
	app := newTestApp()
	token := registerShop(t, app, "owner@example.com")
	haircut := serviceID(t, app, token, "Haircut")

	resp := doJSON(t, app, http.MethodPost, "/api/invoices/", token, dto.CreateInvoiceRequest{
		Items:         []dto.CreateInvoiceItem{{ServiceID: haircut, Qty: 1}},
		PaymentMethod: entity.PaymentMethod("CARD"),
	}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestListInvoices_HalfOpenRange(t *testing.T) {
	app := newTestApp()
	token := registerShop(t, app, "owner@example.com")
	haircut := serviceID(t, app, token, "Haircut")

	at := func(s string) *time.Time {
		ts, err := time.Parse(time.RFC3339, s)
		require.NoError(t, err)
		return &ts
	}
	confirmInvoice(t, app, token, dto.CreateInvoiceRequest{
		IssuedAt:      at("2025-01-01T10:00:00Z"),
		Items:         []dto.CreateInvoiceItem{{ServiceID: haircut, Qty: 1}},
		PaymentMethod: entity.PaymentCash,
	})
	confirmInvoice(t, app, token, dto.CreateInvoiceRequest{
		IssuedAt:      at("2025-01-02T10:00:00Z"),
		Items:         []dto.CreateInvoiceItem{{ServiceID: haircut, Qty: 1}},
		PaymentMethod: entity.PaymentUPI,
	})
	confirmInvoice(t, app, token, dto.CreateInvoiceRequest{
		IssuedAt:      at("2025-01-03T00:00:00Z"),
		Items:         []dto.CreateInvoiceItem{{ServiceID: haircut, Qty: 1}},
		PaymentMethod: entity.PaymentCash,
	})

	var out []entity.InvoiceSummary
	resp := doJSON(t, app, http.MethodGet,
		"/api/invoices?start=2025-01-01T00:00:00Z&end=2025-01-03T00:00:00Z", token, nil, &out)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, out, 2, "end bound is exclusive")
	assert.True(t, out[0].IssuedAt.After(out[1].IssuedAt), "newest first")
	assert.Equal(t, entity.PaymentUPI, out[0].PaymentMethod)
}

func TestReports_ServicePerformance(t *testing.T) {
	app := newTestApp()
	token := registerShop(t, app, "owner@example.com")
	haircut := serviceID(t, app, token, "Haircut")
	beard := serviceID(t, app, token, "Beard")

	confirmInvoice(t, app, token, dto.CreateInvoiceRequest{
		Items: []dto.CreateInvoiceItem{
			{ServiceID: haircut, Qty: 1},
			{ServiceID: beard, Qty: 3},
		},
		PaymentMethod: entity.PaymentCash,
	})
	confirmInvoice(t, app, token, dto.CreateInvoiceRequest{
		Items:         []dto.CreateInvoiceItem{{ServiceID: haircut, Qty: 1}},
		PaymentMethod: entity.PaymentUPI,
	})

	var report dto.ServicePerformance
	resp := doJSON(t, app, http.MethodGet, "/api/reports/services?limit=10", token, nil, &report)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, report.TopByRevenue, 2)

	assert.Equal(t, "Haircut", report.TopByRevenue[0].ServiceName, "2×15000 beats 3×8000")
	assert.Equal(t, int64(30000), report.TopByRevenue[0].RevenuePaise)
	assert.Equal(t, "Beard", report.TopByQuantity[0].ServiceName, "qty 3 beats qty 2")
	assert.Equal(t, 3, report.TopByQuantity[0].Qty)
}

func TestReports_CustomerInsights(t *testing.T) {
	app := newTestApp()
	token := registerShop(t, app, "owner@example.com")
	haircut := serviceID(t, app, token, "Haircut")

	var ravi entity.Customer
	resp := doJSON(t, app, http.MethodPost, "/api/customers", token, dto.CreateCustomerRequest{
		Name: "Ravi", Phone: "9876543210",
	}, &ravi)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = doJSON(t, app, http.MethodPost, "/api/customers", token, dto.CreateCustomerRequest{
		Name: "Never Billed", Phone: "9876500000",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	for i := 0; i < 2; i++ {
		confirmInvoice(t, app, token, dto.CreateInvoiceRequest{
			CustomerID:    &ravi.ID,
			Items:         []dto.CreateInvoiceItem{{ServiceID: haircut, Qty: 1}},
			PaymentMethod: entity.PaymentCash,
		})
	}

	var report dto.CustomerInsights
	resp = doJSON(t, app, http.MethodGet,
		"/api/reports/customers?dormant_days=30&limit=5&include_never=true", token, nil, &report)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.Len(t, report.RepeatCustomers, 1, "two bills make a repeat customer")
	assert.Equal(t, "Ravi", report.RepeatCustomers[0].CustomerName)
	assert.Equal(t, 2, report.RepeatCustomers[0].BillCount)
	assert.Equal(t, int64(30000), report.RepeatCustomers[0].NetPaise)

	require.Len(t, report.DormantCustomers, 1, "never-billed customer shows up with include_never")
	assert.Equal(t, "Never Billed", report.DormantCustomers[0].CustomerName)
	assert.Nil(t, report.DormantCustomers[0].LastInvoiceAt)
}

func TestShopIsolation(t *testing.T) {
	app := newTestApp()
	tokenA := registerShop(t, app, "a@example.com")
	tokenB := registerShop(t, app, "b@example.com")

	resp := doJSON(t, app, http.MethodPost, "/api/customers", tokenA, dto.CreateCustomerRequest{
		Name: "Only In A", Phone: "9876543210",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var envelope dto.ListEnvelope[entity.Customer]
	resp = doJSON(t, app, http.MethodGet, "/api/customers", tokenB, nil, &envelope)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, envelope.Items, "shop B never sees shop A's customers")
}
