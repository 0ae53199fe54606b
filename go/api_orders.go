package cafeserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/cafe-api/internal/auth"
	ordersports "github.com/Apurer/cafe-api/internal/domains/orders/ports"
	apierrors "github.com/Apurer/cafe-api/internal/shared/errors"
)

// OrdersAPI serves a caller's own orders. Orders owned by someone else are
// reported exactly like missing ones.
type OrdersAPI struct {
	service ordersports.Service
}

func NewOrdersAPI(service ordersports.Service) OrdersAPI {
	return OrdersAPI{service: service}
}

// Get /api/orders/:orderId
// Find one of the caller's orders
func (api *OrdersAPI) GetOrder(c *gin.Context) {
	principal, id, ok := api.ownedOrderRequest(c)
	if !ok {
		return
	}
	order, err := api.service.GetSummary(c.Request.Context(), id, principal.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderSummary(order))
}

// Get /api/orders/:orderId/items
// Find one of the caller's orders with its line items
func (api *OrdersAPI) GetOrderItems(c *gin.Context) {
	principal, id, ok := api.ownedOrderRequest(c)
	if !ok {
		return
	}
	order, err := api.service.GetDetail(c.Request.Context(), id, principal.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderDetail(order))
}

func (api *OrdersAPI) ownedOrderRequest(c *gin.Context) (auth.Principal, int64, bool) {
	principal, ok := auth.PrincipalFromGin(c)
	if !ok {
		respondProblem(c, apierrors.ErrUnauthorized.WithDetail("authentication required"))
		return auth.Principal{}, 0, false
	}
	id, ok := parseIDParam(c, "orderId")
	if !ok {
		return auth.Principal{}, 0, false
	}
	return principal, id, true
}
