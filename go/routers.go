package cafeserver

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions groups the handlers for every API.
type ApiHandleFunctions struct {
	AuthAPI    AuthAPI
	MenuAPI    MenuAPI
	CartAPI    CartAPI
	OrdersAPI  OrdersAPI
	AdminAPI   AdminAPI
	ContactAPI ContactAPI
}

type routerConfig struct {
	gate          gin.HandlerFunc
	allowedOrigin string
	logger        *slog.Logger
}

type RouterOption func(*routerConfig)

// WithGate installs the authorization middleware in front of every route.
func WithGate(gate gin.HandlerFunc) RouterOption {
	return func(cfg *routerConfig) { cfg.gate = gate }
}

// WithAllowedOrigin enables CORS for a single browser origin.
func WithAllowedOrigin(origin string) RouterOption {
	return func(cfg *routerConfig) { cfg.allowedOrigin = origin }
}

// WithLogger sets the logger used for unexpected handler errors.
func WithLogger(logger *slog.Logger) RouterOption {
	return func(cfg *routerConfig) { cfg.logger = logger }
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions, opts ...RouterOption) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions, opts...)
}

// NewRouterWithGinEngine adds the routes to an existing gin engine. Middleware
// already on the engine runs before the CORS, problem, and gate middleware added here.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions, opts ...RouterOption) *gin.Engine {
	var cfg routerConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.allowedOrigin != "" {
		router.Use(corsMiddleware(cfg.allowedOrigin))
	}
	if cfg.logger != nil {
		router.Use(withResponder(newResponder(cfg.logger)))
	}
	if cfg.gate != nil {
		router.Use(cfg.gate)
	}
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		case http.MethodPut:
			router.PUT(route.Pattern, route.HandlerFunc)
		case http.MethodPatch:
			router.PATCH(route.Pattern, route.HandlerFunc)
		case http.MethodDelete:
			router.DELETE(route.Pattern, route.HandlerFunc)
		}
	}
	return router
}

// DefaultHandleFunc is the default handler for routes without an implementation.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

// Healthz reports liveness.
func Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{"Healthz", http.MethodGet, "/healthz", Healthz},
		{"Register", http.MethodPost, "/api/auth/register", handleFunctions.AuthAPI.Register},
		{"Login", http.MethodPost, "/api/auth/login", handleFunctions.AuthAPI.Login},
		{"ListMenu", http.MethodGet, "/api/menu", handleFunctions.MenuAPI.ListMenu},
		{"DescribeProduct", http.MethodGet, "/api/menu/description/:productId", handleFunctions.MenuAPI.Describe},
		{"ListCartProducts", http.MethodGet, "/api/cart", handleFunctions.CartAPI.ListProducts},
		{"GuestSubmit", http.MethodPost, "/api/cart/guest/submit", handleFunctions.CartAPI.GuestSubmit},
		{"MemberSubmit", http.MethodPost, "/api/cart/member/submit", handleFunctions.CartAPI.MemberSubmit},
		{"GetOrder", http.MethodGet, "/api/orders/:orderId", handleFunctions.OrdersAPI.GetOrder},
		{"GetOrderItems", http.MethodGet, "/api/orders/:orderId/items", handleFunctions.OrdersAPI.GetOrderItems},
		{"AdminDashboard", http.MethodGet, "/api/admin", handleFunctions.AdminAPI.Dashboard},
		{"UpdateProduct", http.MethodPatch, "/api/admin/product/:productId", handleFunctions.AdminAPI.UpdateProduct},
		{"UpdateOrderStatus", http.MethodPatch, "/api/admin/order/:orderId", handleFunctions.AdminAPI.UpdateOrderStatus},
		{"CaptureSalesSnapshot", http.MethodPost, "/api/admin/sales/snapshot", handleFunctions.AdminAPI.CaptureSnapshot},
		{"ListSalesSnapshots", http.MethodGet, "/api/admin/sales/snapshots", handleFunctions.AdminAPI.ListSnapshots},
		{"ListContactSubmissions", http.MethodGet, "/api/admin/contact", handleFunctions.AdminAPI.ListContactSubmissions},
		{"SubmitContact", http.MethodPost, "/api/contact/submit", handleFunctions.ContactAPI.Submit},
	}
}
