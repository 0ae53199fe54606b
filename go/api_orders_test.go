package cafeserver

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	identitydomain "github.com/Apurer/cafe-api/internal/domains/identity/domain"
)

func placeMemberOrder(t *testing.T, srv *testServer, bearer string, productID int64, quantity int) OrderDetail {
	t.Helper()
	rec := srv.do(t, http.MethodPost, "/api/cart/member/submit", bearer, MemberCheckoutRequest{
		Items: []CartItem{{ProductId: productID, Quantity: quantity}},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var order OrderDetail
	decode(t, rec, &order)
	return order
}

func TestOwnerReadsOrderSummaryAndItems(t *testing.T) {
	srv := newTestServer(t)
	bearer, _ := srv.register(t, "owner@example.com")
	placed := placeMemberOrder(t, srv, bearer, srv.espresso, 2)

	summary := srv.do(t, http.MethodGet, fmt.Sprintf("/api/orders/%d", placed.OrderId), bearer, nil)
	detail := srv.do(t, http.MethodGet, fmt.Sprintf("/api/orders/%d/items", placed.OrderId), bearer, nil)

	require.Equal(t, http.StatusOK, summary.Code, summary.Body.String())
	var s map[string]any
	decode(t, summary, &s)
	assert.Equal(t, "6.00", s["totalCost"])
	assert.NotContains(t, s, "items")

	require.Equal(t, http.StatusOK, detail.Code, detail.Body.String())
	var d OrderDetail
	decode(t, detail, &d)
	require.Len(t, d.Items, 1)
	assert.Equal(t, 2, d.Items[0].Quantity)
}

func TestForeignOrderLooksMissing(t *testing.T) {
	srv := newTestServer(t)
	ownerBearer, _ := srv.register(t, "owner@example.com")
	otherBearer, _ := srv.register(t, "other@example.com")
	placed := placeMemberOrder(t, srv, ownerBearer, srv.espresso, 1)

	foreign := srv.do(t, http.MethodGet, fmt.Sprintf("/api/orders/%d/items", placed.OrderId), otherBearer, nil)
	missing := srv.do(t, http.MethodGet, "/api/orders/987654/items", otherBearer, nil)

	require.Equal(t, http.StatusNotFound, foreign.Code)
	require.Equal(t, http.StatusNotFound, missing.Code)
	foreignBody, missingBody := problemOf(t, foreign), problemOf(t, missing)
	assert.Equal(t, missingBody["detail"], foreignBody["detail"])
	assert.Equal(t, missingBody["title"], foreignBody["title"])
}

func TestOrdersRequireAccountHolderRole(t *testing.T) {
	srv := newTestServer(t)

	anonymous := srv.do(t, http.MethodGet, "/api/orders/1", "", nil)
	guest := srv.do(t, http.MethodGet, "/api/orders/1", srv.bearer(t, 7, identitydomain.RoleGuest), nil)

	assert.Equal(t, http.StatusUnauthorized, anonymous.Code)
	assert.Equal(t, http.StatusForbidden, guest.Code)
}

func TestOrderIDMustBeNumeric(t *testing.T) {
	srv := newTestServer(t)
	bearer, _ := srv.register(t, "owner@example.com")

	rec := srv.do(t, http.MethodGet, "/api/orders/abc", bearer, nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}
