package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status enumerates order progression.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "Confirmed"
	StatusPickup    Status = "PICKUP"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

// MaxLineQuantity caps a single cart line. MaxOrderTotal is the largest value a
// numeric(12,2) money column holds.
const MaxLineQuantity = 999

var MaxOrderTotal = decimal.RequireFromString("9999999999.99")

var (
	ErrEmptyCart         = errors.New("cart must contain at least one item")
	ErrInvalidQuantity   = fmt.Errorf("quantity must be between 1 and %d", MaxLineQuantity)
	ErrInvalidProductID  = errors.New("product id must be greater than zero")
	ErrInvalidStatus     = errors.New("order status is invalid")
	ErrInvalidOwner      = errors.New("order owner is required")
	ErrNegativePrice     = errors.New("unit price must not be negative")
	ErrTotalMismatch     = errors.New("order total does not match its items")
	ErrTotalTooLarge     = errors.New("order total exceeds the supported maximum")
	ErrTerminalStatus    = errors.New("order is already closed")
	ErrMissingPlacedTime = errors.New("order placement time is required")
)

var allStatuses = []Status{StatusPending, StatusConfirmed, StatusPickup, StatusCompleted, StatusCancelled}

// ParseStatus resolves a status name case-insensitively.
func ParseStatus(value string) (Status, error) {
	value = strings.TrimSpace(value)
	for _, status := range allStatuses {
		if strings.EqualFold(string(status), value) {
			return status, nil
		}
	}
	return "", ErrInvalidStatus
}

// OpenStatuses are the states staff still have to act on.
func OpenStatuses() []Status {
	return []Status{StatusPending, StatusConfirmed, StatusPickup}
}

func (s Status) terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CartLine is a client-submitted (product, quantity) pair. It is never persisted.
type CartLine struct {
	ProductID int64
	Quantity  int
}

// LineError pins a cart validation failure to its 1-based line number.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string { return fmt.Sprintf("line %d: %v", e.Line, e.Err) }
func (e *LineError) Unwrap() error { return e.Err }

// ValidateCart checks every line before anything is read or written.
func ValidateCart(lines []CartLine) error {
	if len(lines) == 0 {
		return ErrEmptyCart
	}
	for i, line := range lines {
		if line.ProductID <= 0 {
			return &LineError{Line: i + 1, Err: ErrInvalidProductID}
		}
		if line.Quantity <= 0 || line.Quantity > MaxLineQuantity {
			return &LineError{Line: i + 1, Err: ErrInvalidQuantity}
		}
	}
	return nil
}

// PricedLine is a cart line resolved against the catalog at order time.
type PricedLine struct {
	ProductID   int64
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// Item is a persisted order line. UnitPrice is the price snapshot taken at
// placement and is never recomputed.
type Item struct {
	ID          int64
	OrderID     int64
	ProductID   int64
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// LineTotal is UnitPrice × Quantity.
func (i Item) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order is the purchase aggregate. It exclusively owns its Items.
type Order struct {
	ID        int64
	OwnerID   int64
	TotalCost decimal.Decimal
	Status    Status
	PlacedAt  time.Time
	Items     []Item
}

// PlaceOrder builds a new aggregate from priced lines and computes its total.
func PlaceOrder(ownerID int64, status Status, lines []PricedLine, placedAt time.Time) (*Order, error) {
	if ownerID <= 0 {
		return nil, ErrInvalidOwner
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	order := &Order{
		OwnerID:  ownerID,
		Status:   status,
		PlacedAt: placedAt.UTC(),
		Items:    make([]Item, 0, len(lines)),
	}
	total := decimal.Zero
	for i, line := range lines {
		if line.ProductID <= 0 {
			return nil, &LineError{Line: i + 1, Err: ErrInvalidProductID}
		}
		if line.Quantity <= 0 || line.Quantity > MaxLineQuantity {
			return nil, &LineError{Line: i + 1, Err: ErrInvalidQuantity}
		}
		if line.UnitPrice.IsNegative() {
			return nil, &LineError{Line: i + 1, Err: ErrNegativePrice}
		}
		item := Item{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
		}
		total = total.Add(item.LineTotal())
		order.Items = append(order.Items, item)
	}
	if total.GreaterThan(MaxOrderTotal) {
		return nil, ErrTotalTooLarge
	}
	order.TotalCost = total
	if err := order.Validate(); err != nil {
		return nil, err
	}
	return order, nil
}

// Validate enforces aggregate invariants on an order carrying its items.
func (o *Order) Validate() error {
	if o.OwnerID <= 0 {
		return ErrInvalidOwner
	}
	if !isValidStatus(o.Status) {
		return ErrInvalidStatus
	}
	if o.PlacedAt.IsZero() {
		return ErrMissingPlacedTime
	}
	if len(o.Items) == 0 {
		return ErrEmptyCart
	}
	sum := decimal.Zero
	for _, item := range o.Items {
		sum = sum.Add(item.LineTotal())
	}
	if !sum.Equal(o.TotalCost) {
		return ErrTotalMismatch
	}
	return nil
}

// UpdateStatus moves the order to next. Closed orders only accept their current status.
func (o *Order) UpdateStatus(next Status) error {
	if !isValidStatus(next) {
		return ErrInvalidStatus
	}
	if o.Status.terminal() && next != o.Status {
		return ErrTerminalStatus
	}
	o.Status = next
	return nil
}

// ItemCount is the total quantity across all lines.
func (o *Order) ItemCount() int {
	count := 0
	for _, item := range o.Items {
		count += item.Quantity
	}
	return count
}

// Summary returns a copy without items.
func (o *Order) Summary() *Order {
	clone := *o
	clone.Items = nil
	return &clone
}

// Clone deep-copies the aggregate.
func (o *Order) Clone() *Order {
	clone := *o
	if o.Items != nil {
		clone.Items = append([]Item(nil), o.Items...)
	}
	return &clone
}

func isValidStatus(status Status) bool {
	for _, s := range allStatuses {
		if s == status {
			return true
		}
	}
	return false
}
