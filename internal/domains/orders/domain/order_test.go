package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var placedAt = time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

func TestPlaceOrder_TotalIsSumOfLines(t *testing.T) {
	order, err := PlaceOrder(7, StatusPending, []PricedLine{
		{ProductID: 1, ProductName: "Latte", Quantity: 2, UnitPrice: decimal.RequireFromString("4.50")},
		{ProductID: 2, ProductName: "Scone", Quantity: 3, UnitPrice: decimal.RequireFromString("0.10")},
	}, placedAt)
	require.NoError(t, err)

	assert.Equal(t, "9.30", order.TotalCost.StringFixed(2))
	assert.Equal(t, int64(7), order.OwnerID)
	assert.Equal(t, StatusPending, order.Status)
	assert.Equal(t, 5, order.ItemCount())
	require.Len(t, order.Items, 2)
	assert.Equal(t, "Latte", order.Items[0].ProductName)
}

func TestPlaceOrder_DecimalPrecision(t *testing.T) {
	lines := make([]PricedLine, 0, 10)
	for i := 0; i < 10; i++ {
		lines = append(lines, PricedLine{ProductID: int64(i + 1), Quantity: 1, UnitPrice: decimal.RequireFromString("0.10")})
	}
	order, err := PlaceOrder(1, StatusConfirmed, lines, placedAt)
	require.NoError(t, err)
	assert.True(t, order.TotalCost.Equal(decimal.NewFromInt(1)))
}

func TestPlaceOrder_Rejects(t *testing.T) {
	price := decimal.NewFromInt(1)
	cases := []struct {
		name  string
		owner int64
		lines []PricedLine
		want  error
	}{
		{"no owner", 0, []PricedLine{{ProductID: 1, Quantity: 1, UnitPrice: price}}, ErrInvalidOwner},
		{"empty", 1, nil, ErrEmptyCart},
		{"zero quantity", 1, []PricedLine{{ProductID: 1, Quantity: 0, UnitPrice: price}}, ErrInvalidQuantity},
		{"negative price", 1, []PricedLine{{ProductID: 1, Quantity: 1, UnitPrice: price.Neg()}}, ErrNegativePrice},
		{"quantity over cap", 1, []PricedLine{{ProductID: 1, Quantity: MaxLineQuantity + 1, UnitPrice: price}}, ErrInvalidQuantity},
		{"total over column", 1, []PricedLine{{ProductID: 1, Quantity: MaxLineQuantity, UnitPrice: decimal.RequireFromString("100000000")}}, ErrTotalTooLarge},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := PlaceOrder(tc.owner, StatusPending, tc.lines, placedAt)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestValidateCart(t *testing.T) {
	assert.ErrorIs(t, ValidateCart(nil), ErrEmptyCart)
	assert.NoError(t, ValidateCart([]CartLine{{ProductID: 1, Quantity: 1}}))

	err := ValidateCart([]CartLine{{ProductID: 1, Quantity: 1}, {ProductID: 2, Quantity: -1}})
	require.ErrorIs(t, err, ErrInvalidQuantity)
	var lineErr *LineError
	require.ErrorAs(t, err, &lineErr)
	assert.Equal(t, 2, lineErr.Line)

	assert.ErrorIs(t, ValidateCart([]CartLine{{ProductID: 0, Quantity: 1}}), ErrInvalidProductID)
	assert.NoError(t, ValidateCart([]CartLine{{ProductID: 1, Quantity: MaxLineQuantity}}))
	assert.ErrorIs(t, ValidateCart([]CartLine{{ProductID: 1, Quantity: 10000000000}}), ErrInvalidQuantity)
}

func TestParseStatus(t *testing.T) {
	status, err := ParseStatus("pickup")
	require.NoError(t, err)
	assert.Equal(t, StatusPickup, status)

	status, err = ParseStatus("CONFIRMED")
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, status)

	_, err = ParseStatus("shipped")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateStatus_ClosedOrdersStayClosed(t *testing.T) {
	order := &Order{OwnerID: 1, Status: StatusPending}
	require.NoError(t, order.UpdateStatus(StatusPickup))
	require.NoError(t, order.UpdateStatus(StatusCompleted))
	assert.ErrorIs(t, order.UpdateStatus(StatusPending), ErrTerminalStatus)
	assert.NoError(t, order.UpdateStatus(StatusCompleted))
	assert.ErrorIs(t, order.UpdateStatus("LOST"), ErrInvalidStatus)
}

func TestSummaryDropsItems(t *testing.T) {
	order, err := PlaceOrder(3, StatusPending, []PricedLine{{ProductID: 1, Quantity: 1, UnitPrice: decimal.NewFromInt(2)}}, placedAt)
	require.NoError(t, err)
	summary := order.Summary()
	assert.Nil(t, summary.Items)
	assert.Len(t, order.Items, 1)
	assert.True(t, summary.TotalCost.Equal(order.TotalCost))
}
