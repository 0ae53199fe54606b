package cafeserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Apurer/cafe-api/internal/auth"
	catalogmemory "github.com/Apurer/cafe-api/internal/domains/catalog/adapters/memory"
	catalogapp "github.com/Apurer/cafe-api/internal/domains/catalog/application"
	catalogdomain "github.com/Apurer/cafe-api/internal/domains/catalog/domain"
	contactmemory "github.com/Apurer/cafe-api/internal/domains/contact/adapters/memory"
	contactapp "github.com/Apurer/cafe-api/internal/domains/contact/application"
	identitymemory "github.com/Apurer/cafe-api/internal/domains/identity/adapters/memory"
	identityapp "github.com/Apurer/cafe-api/internal/domains/identity/application"
	identitydomain "github.com/Apurer/cafe-api/internal/domains/identity/domain"
	"github.com/Apurer/cafe-api/internal/domains/orders/adapters/directory"
	ordersmemory "github.com/Apurer/cafe-api/internal/domains/orders/adapters/memory"
	ordersapp "github.com/Apurer/cafe-api/internal/domains/orders/application"
	salesmemory "github.com/Apurer/cafe-api/internal/domains/sales/adapters/memory"
	"github.com/Apurer/cafe-api/internal/domains/sales/adapters/orderstats"
	salesworkflows "github.com/Apurer/cafe-api/internal/domains/sales/adapters/workflows"
	salesapp "github.com/Apurer/cafe-api/internal/domains/sales/application"
)

const testOrigin = "http://localhost:3000"

type testServer struct {
	router     *gin.Engine
	issuer     *auth.TokenIssuer
	identities *identitymemory.Repository
	orders     *ordersmemory.Repository
	espresso   int64
	cappuccino int64
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	issuer, err := auth.NewTokenIssuer(auth.TokenConfig{
		Secret: []byte("0123456789abcdef0123456789abcdef"),
		TTL:    time.Hour,
		Issuer: auth.DefaultIssuer,
	})
	require.NoError(t, err)

	catalogService := catalogapp.NewService(catalogmemory.NewRepository())
	espresso := seedProduct(t, catalogService, "COFFEE", "Espresso", "3.00")
	cappuccino := seedProduct(t, catalogService, "COFFEE", "Cappuccino", "4.50")

	identityRepo := identitymemory.NewRepository()
	identityService := identityapp.NewService(identityRepo, issuer, identityapp.WithHashCost(bcrypt.MinCost))

	orderRepo := ordersmemory.NewRepository()
	orderService := ordersapp.NewService(
		orderRepo,
		directory.NewCatalogPrices(catalogService),
		directory.NewIdentities(identityService),
		ordersapp.WithIdempotencyStore(ordersmemory.NewIdempotencyStore()),
	)
	salesService := salesapp.NewService(salesmemory.NewRepository(), orderstats.New(orderRepo))
	contactService := contactapp.NewService(contactmemory.NewRepository())

	handlers := ApiHandleFunctions{
		AuthAPI:    NewAuthAPI(identityService),
		MenuAPI:    NewMenuAPI(catalogService),
		CartAPI:    NewCartAPI(catalogService, orderService),
		OrdersAPI:  NewOrdersAPI(orderService),
		AdminAPI:   NewAdminAPI(catalogService, orderService, salesService, salesworkflows.NewInlineSnapshots(salesService), contactService),
		ContactAPI: NewContactAPI(contactService),
	}
	router := NewRouterWithGinEngine(gin.New(), handlers,
		WithGate(auth.NewGate(issuer, auth.DefaultPolicy()).Middleware()),
		WithAllowedOrigin(testOrigin),
	)
	return &testServer{
		router:     router,
		issuer:     issuer,
		identities: identityRepo,
		orders:     orderRepo,
		espresso:   espresso,
		cappuccino: cappuccino,
	}
}

func seedProduct(t *testing.T, catalog *catalogapp.Service, category, name, price string) int64 {
	t.Helper()
	product, err := catalogdomain.NewProduct(category, name, decimal.RequireFromString(price), name+" description", catalogdomain.AvailabilityInStock)
	require.NoError(t, err)
	saved, err := catalog.CreateProduct(context.Background(), product)
	require.NoError(t, err)
	return saved.ID
}

func (s *testServer) bearer(t *testing.T, id int64, role identitydomain.Role) string {
	t.Helper()
	token, err := s.issuer.Issue(id, "caller@cafe.test", role)
	require.NoError(t, err)
	return "Bearer " + token
}

// register signs up a member through the API and returns its bearer header and id.
func (s *testServer) register(t *testing.T, email string) (string, int64) {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/auth/register", "", RegisterRequest{
		Email: email, Password: "correct-horse", FirstName: "Ada", LastName: "Lovelace",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp AuthResponse
	decode(t, rec, &resp)
	identity, err := s.identities.FindByEmail(context.Background(), email)
	require.NoError(t, err)
	return "Bearer " + resp.Token, identity.ID
}

func (s *testServer) do(t *testing.T, method, target, authorization string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
}

func problemOf(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	require.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	var body map[string]any
	decode(t, rec, &body)
	return body
}
