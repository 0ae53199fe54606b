package cafeserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/cafe-api/internal/auth"
	catalogports "github.com/Apurer/cafe-api/internal/domains/catalog/ports"
	ordersports "github.com/Apurer/cafe-api/internal/domains/orders/ports"
	apierrors "github.com/Apurer/cafe-api/internal/shared/errors"
)

// IdempotencyKeyHeader lets clients retry a checkout without placing a second order.
const IdempotencyKeyHeader = "Idempotency-Key"

// ReplayedHeader is set on a checkout response served from an earlier identical request.
const ReplayedHeader = "Idempotent-Replayed"

// CartAPI serves the product picker and both checkout flows.
type CartAPI struct {
	catalog catalogports.Service
	orders  ordersports.Service
}

func NewCartAPI(catalog catalogports.Service, orders ordersports.Service) CartAPI {
	return CartAPI{catalog: catalog, orders: orders}
}

// Get /api/cart
// List products, optionally filtered by categoryName
func (api *CartAPI) ListProducts(c *gin.Context) {
	products, err := api.catalog.ListProducts(c.Request.Context(), c.Query("categoryName"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if len(products) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, toMenuProducts(products))
}

// Post /api/cart/guest/submit
// Place an order without an account
func (api *CartAPI) GuestSubmit(c *gin.Context) {
	var payload GuestCheckoutRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	result, err := api.orders.GuestCheckout(c.Request.Context(), ordersports.GuestCheckoutInput{
		Contact: ordersports.GuestContact{
			Email:     payload.Email,
			FirstName: payload.FirstName,
			LastName:  payload.LastName,
		},
		Lines:          toCartLines(payload.Items),
		IdempotencyKey: idempotencyKey(c),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	writeCheckout(c, result)
}

// Post /api/cart/member/submit
// Place an order for the signed-in member
func (api *CartAPI) MemberSubmit(c *gin.Context) {
	principal, ok := auth.PrincipalFromGin(c)
	if !ok {
		respondProblem(c, apierrors.ErrUnauthorized.WithDetail("authentication required"))
		return
	}
	var payload MemberCheckoutRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	result, err := api.orders.MemberCheckout(c.Request.Context(), ordersports.MemberCheckoutInput{
		MemberID:       principal.ID,
		Lines:          toCartLines(payload.Items),
		IdempotencyKey: idempotencyKey(c),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	writeCheckout(c, result)
}

func idempotencyKey(c *gin.Context) string {
	return strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader))
}

func writeCheckout(c *gin.Context, result *ordersports.CheckoutResult) {
	if result.Replayed {
		c.Header(ReplayedHeader, "true")
	}
	c.JSON(http.StatusCreated, toOrderDetail(result.Order))
}
