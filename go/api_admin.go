package cafeserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	catalogports "github.com/Apurer/cafe-api/internal/domains/catalog/ports"
	contactports "github.com/Apurer/cafe-api/internal/domains/contact/ports"
	ordersdomain "github.com/Apurer/cafe-api/internal/domains/orders/domain"
	ordersports "github.com/Apurer/cafe-api/internal/domains/orders/ports"
	salesports "github.com/Apurer/cafe-api/internal/domains/sales/ports"
	apierrors "github.com/Apurer/cafe-api/internal/shared/errors"
)

// AdminAPI is the staff surface. The auth gate restricts it to admins.
type AdminAPI struct {
	catalog   catalogports.Service
	orders    ordersports.Service
	sales     salesports.Service
	snapshots salesports.SnapshotOrchestrator
	contact   contactports.Service
}

func NewAdminAPI(
	catalog catalogports.Service,
	orders ordersports.Service,
	sales salesports.Service,
	snapshots salesports.SnapshotOrchestrator,
	contact contactports.Service,
) AdminAPI {
	return AdminAPI{catalog: catalog, orders: orders, sales: sales, snapshots: snapshots, contact: contact}
}

// Get /api/admin
// Dashboard of every product and all open orders
func (api *AdminAPI) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	products, err := api.catalog.ListProducts(ctx, "")
	if err != nil {
		respondServiceError(c, err)
		return
	}
	orders, err := api.orders.ListOrders(ctx, ordersdomain.OpenStatuses())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, AdminDashboard{
		AllProducts: toMenuProducts(products),
		AllOrders:   toOrderSummaries(orders),
	})
}

// Patch /api/admin/product/:productId
// Update selected product fields
func (api *AdminAPI) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}
	var payload ProductPatch
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	updated, err := api.catalog.UpdateProduct(c.Request.Context(), id, toProductPatch(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMenuProduct(updated))
}

// Patch /api/admin/order/:orderId
// Move an order to another status
func (api *AdminAPI) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	var payload OrderStatusPatch
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	status, err := ordersdomain.ParseStatus(payload.Status)
	if err != nil {
		respondProblem(c, apierrors.NewValidationProblem(err.Error(), map[string]string{"status": payload.Status}))
		return
	}
	updated, err := api.orders.UpdateStatus(c.Request.Context(), id, status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderSummary(updated))
}

// Post /api/admin/sales/snapshot
// Capture the current order totals
func (api *AdminAPI) CaptureSnapshot(c *gin.Context) {
	snapshot, err := api.snapshots.Capture(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toSalesSnapshot(snapshot))
}

// Get /api/admin/sales/snapshots
// List recent snapshots, newest first
func (api *AdminAPI) ListSnapshots(c *gin.Context) {
	limit, ok := parseLimit(c)
	if !ok {
		return
	}
	snapshots, err := api.sales.List(c.Request.Context(), limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	out := make([]SalesSnapshot, 0, len(snapshots))
	for _, s := range snapshots {
		out = append(out, toSalesSnapshot(s))
	}
	c.JSON(http.StatusOK, out)
}

// Get /api/admin/contact
// List recent contact submissions, newest first
func (api *AdminAPI) ListContactSubmissions(c *gin.Context) {
	limit, ok := parseLimit(c)
	if !ok {
		return
	}
	submissions, err := api.contact.List(c.Request.Context(), limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toContactMessages(submissions))
}

// parseLimit reads an optional limit query; zero lets the service choose.
func parseLimit(c *gin.Context) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail("limit must be a non-negative integer"))
		return 0, false
	}
	return limit, true
}
