package rest_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naayikhata/khata-go/internal/application/dto"
	"github.com/naayikhata/khata-go/internal/infrastructure/rest"
	"github.com/naayikhata/khata-go/pkg/logger"
)

func newClient(t *testing.T, handler http.HandlerFunc) *rest.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return rest.New(srv.URL, logger.Nop())
}

func TestClient_StringDetailBecomesServerError(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail": "Invoice not found"}`))
	})

	_, err := c.GetInvoice(context.Background(), "nope")
	var serverErr *rest.ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, http.StatusNotFound, serverErr.StatusCode)
	assert.Equal(t, "Invoice not found", serverErr.Message)
}

func TestClient_DetailArrayBecomesValidationError(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail": [
			{"loc": ["body", "items"], "msg": "ensure this value has at least 1 items"},
			{"loc": ["body", "discount_paise"], "msg": "ensure this value is greater than or equal to 0"}
		]}`))
	})

	_, err := c.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{})
	var valErr *rest.ValidationError
	require.ErrorAs(t, err, &valErr)
	require.Len(t, valErr.Fields, 2)
	assert.Equal(t, "body.items", valErr.Fields[0].Path)
	// one readable line per field
	assert.Equal(t,
		"body.items: ensure this value has at least 1 items\n"+
			"body.discount_paise: ensure this value is greater than or equal to 0",
		valErr.Error())
}

func TestClient_MalformedErrorBodyFallsBackToGeneric(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>upstream exploded</html>"))
	})

	_, err := c.ListServices(context.Background())
	var serverErr *rest.ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, "Request failed", serverErr.Message)
}

func TestClient_TransportFailureIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // nothing listening anymore
	c := rest.New(srv.URL, logger.Nop())

	_, err := c.Me(context.Background())
	var netErr *rest.NetworkError
	assert.ErrorAs(t, err, &netErr)
}

func TestClient_CustomerListAcceptsBareArray(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"c1","name":"Asha"},{"id":"c2","name":"Ravi"}]`))
	})

	page, err := c.ListCustomers(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, 2, page.Total)
	assert.False(t, page.HasMore)
	assert.Equal(t, "Asha", page.Items[0].Name)
}

func TestClient_CustomerListAcceptsEnvelope(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "asha", r.URL.Query().Get("query"))
		w.Write([]byte(`{"items":[{"id":"c1","name":"Asha"}],"page":1,"limit":20,"total":41,"has_more":true}`))
	})

	page, err := c.ListCustomers(context.Background(), "asha")
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 41, page.Total)
	assert.True(t, page.HasMore)
}

func TestClient_ListInvoicesSendsRFC3339Range(t *testing.T) {
	var gotStart, gotEnd, gotCustomer string
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotStart = r.URL.Query().Get("start")
		gotEnd = r.URL.Query().Get("end")
		gotCustomer = r.URL.Query().Get("customer_id")
		w.Write([]byte(`[]`))
	})

	q := dto.InvoiceQuery{CustomerID: "c9"}
	q.Start = mustTime(t, "2025-01-01T00:00:00+05:30")
	q.End = mustTime(t, "2025-01-08T00:00:00+05:30")

	invoices, err := c.ListInvoices(context.Background(), q)
	require.NoError(t, err)
	assert.Empty(t, invoices)
	assert.Equal(t, "2024-12-31T18:30:00Z", gotStart, "range goes over the wire in UTC")
	assert.Equal(t, "2025-01-07T18:30:00Z", gotEnd)
	assert.Equal(t, "c9", gotCustomer)
}

func TestClient_LoginRetainsBearerToken(t *testing.T) {
	var authHeader string
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			json.NewEncoder(w).Encode(dto.TokenResponse{AccessToken: "tok-123", TokenType: "bearer"})
		case "/api/users/me":
			authHeader = r.Header.Get("Authorization")
			w.Write([]byte(`{"id":"u1","email":"a@b.c","shop_id":"s1","shop_name":"Tip Top"}`))
		}
	})

	_, err := c.Login(context.Background(), dto.LoginRequest{Email: "a@b.c", Password: "pw"})
	require.NoError(t, err)

	me, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Tip Top", me.ShopName)
	assert.Equal(t, "Bearer tok-123", authHeader)
}

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return parsed
}
